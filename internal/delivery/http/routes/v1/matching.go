package v1

import (
	"skill-match/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterMatching(r fiber.Router, matchHandler *handler.MatchHandler, skillGapHandler *handler.SkillGapHandler, sessionHandler *handler.SessionHandler) {
	if r == nil {
		return
	}
	if matchHandler == nil {
		return
	}

	matchHandler.RegisterRoutes(r)
	if skillGapHandler != nil {
		skillGapHandler.RegisterRoutes(r)
	}
	if sessionHandler != nil {
		sessionHandler.RegisterRoutes(r)
	}
}

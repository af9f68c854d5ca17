package v1

import (
	"skill-match/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterJobs(r fiber.Router, jobsHandler *handler.JobsHandler, skillHandler *handler.SkillHandler) {
	if r == nil {
		return
	}

	if jobsHandler != nil {
		jobsHandler.RegisterRoutes(r)
	}
	if skillHandler != nil {
		skillHandler.RegisterRoutes(r)
	}
}

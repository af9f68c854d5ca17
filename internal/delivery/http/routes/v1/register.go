package v1

import (
	"skill-match/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Match    *handler.MatchHandler
	SkillGap *handler.SkillGapHandler
	Sessions *handler.SessionHandler
	Jobs     *handler.JobsHandler
	Skills   *handler.SkillHandler
	Courses  *handler.CourseHandler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	RegisterMatching(r, h.Match, h.SkillGap, h.Sessions)
	RegisterJobs(r, h.Jobs, h.Skills)
	RegisterCourses(r, h.Courses)
}

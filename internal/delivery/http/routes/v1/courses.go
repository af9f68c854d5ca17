package v1

import (
	"skill-match/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterCourses(r fiber.Router, courseHandler *handler.CourseHandler) {
	if r == nil {
		return
	}
	if courseHandler == nil {
		return
	}

	courseHandler.RegisterRoutes(r)
}

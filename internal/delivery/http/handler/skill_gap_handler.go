package handler

import (
	"time"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillGapHandler struct {
	uc      usecase.SkillGapUsecase
	timeout time.Duration
}

func NewSkillGapHandler(uc usecase.SkillGapUsecase, timeout time.Duration) *SkillGapHandler {
	return &SkillGapHandler{uc: uc, timeout: timeout}
}

func (h *SkillGapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/skill-gap", h.Analyze)
}

func (h *SkillGapHandler) Analyze(c fiber.Ctx) error {
	var req dto.SkillGapRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	out, err := h.uc.Analyze(ctx, usecase.SkillGapInput{
		JobID:     req.JobID,
		Skills:    req.Skills,
		SessionID: req.SessionID,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillGapResponse(out.Report, out.Courses))
}

package handler

import (
	"time"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc      usecase.MatchUsecase
	timeout time.Duration
}

func NewMatchHandler(uc usecase.MatchUsecase, timeout time.Duration) *MatchHandler {
	return &MatchHandler{uc: uc, timeout: timeout}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/matches", h.FindMatches)
}

func (h *MatchHandler) FindMatches(c fiber.Ctx) error {
	var req dto.MatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	out, err := h.uc.FindMatches(ctx, usecase.MatchInput{
		Skills:        req.Skills,
		JobPreference: req.JobPreference,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.MatchResponse{
		JobMatches: dto.NewJobMatchResponses(out.Matches),
		SessionID:  out.SessionID,
	})
}

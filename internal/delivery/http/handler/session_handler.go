package handler

import (
	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SessionHandler struct {
	uc usecase.SessionUsecase
}

func NewSessionHandler(uc usecase.SessionUsecase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

func (h *SessionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/sessions/:session_id", h.Get)
	r.Get("/sessions/:session_id/stats", h.Stats)
	r.Post("/sessions/:session_id/applications", h.RecordApplication)
}

func (h *SessionHandler) Get(c fiber.Ctx) error {
	s, err := h.uc.Get(c.Context(), c.Params("session_id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSessionResponse(s))
}

func (h *SessionHandler) Stats(c fiber.Ctx) error {
	st, err := h.uc.Stats(c.Context(), c.Params("session_id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSessionStatsResponse(st))
}

func (h *SessionHandler) RecordApplication(c fiber.Ctx) error {
	var req dto.JobApplicationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	a, err := h.uc.RecordApplication(c.Context(), c.Params("session_id"), usecase.ApplicationInput{
		JobID:  req.JobID,
		Status: req.Status,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewJobApplicationResponse(a))
}

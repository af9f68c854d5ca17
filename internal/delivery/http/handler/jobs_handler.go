package handler

import (
	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc usecase.JobUsecase
}

func NewJobsHandler(uc usecase.JobUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/jobs")
	grp.Get("/", h.List)
	grp.Get("/:job_id", h.Get)
}

func (h *JobsHandler) List(c fiber.Ctx) error {
	items, version, err := h.uc.List(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}

	out := dto.JobListResponse{
		CatalogVersion: version,
		Jobs:           make([]dto.JobListItemResponse, 0, len(items)),
	}
	for _, it := range items {
		out.Jobs = append(out.Jobs, dto.JobListItemResponse{
			JobID:       it.ID,
			Title:       it.Title,
			Description: it.Description,
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobsHandler) Get(c fiber.Ctx) error {
	p, err := h.uc.Get(c.Context(), c.Params("job_id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobDetailResponse(p))
}

package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/charatrack/charatrack/internal/model"
	"github.com/charatrack/charatrack/internal/service"
)

type StatsHandler struct {
	svc *service.QueryService
}

func NewStatsHandler(svc *service.QueryService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// List handles GET /stats — every video with cumulative and 30-day totals,
// descending by total views.
func (h *StatsHandler) List(c fiber.Ctx) error {
	entries, err := h.svc.Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(model.StatsListResponse{
			Data:    []model.StatsEntry{},
			Message: "DB Error: " + err.Error(),
		})
	}

	return c.JSON(model.StatsListResponse{Data: entries})
}

package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/charatrack/charatrack/internal/model"
	"github.com/charatrack/charatrack/internal/service"
)

type UpdateHandler struct {
	svc *service.DailyViewsService
}

func NewUpdateHandler(svc *service.DailyViewsService) *UpdateHandler {
	return &UpdateHandler{svc: svc}
}

// DailyViews handles GET /update/dailyviews — the scheduler's trigger.
// The run is all-or-nothing; on any failure nothing is committed and the
// scheduler is expected to re-invoke.
func (h *UpdateHandler) DailyViews(c fiber.Ctx) error {
	start := time.Now()

	updated, err := h.svc.Run(c.Context())
	Metrics.DailyRunDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, service.ErrUpdateRunning) {
			return c.Status(fiber.StatusConflict).JSON(model.ActionResponse{
				Success: false,
				Message: "daily views update already in progress",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(model.ActionResponse{
			Success: false,
			Message: "Daily views update failed.",
		})
	}

	Metrics.DailyVideosUpdated.Add(float64(updated))
	return c.JSON(model.ActionResponse{
		Success: true,
		Message: fmt.Sprintf("Daily views update complete: %d videos updated.", updated),
	})
}

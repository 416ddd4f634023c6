package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/charatrack/charatrack/internal/middleware"
	"github.com/charatrack/charatrack/internal/model"
	"github.com/charatrack/charatrack/internal/service"
)

type RegisterHandler struct {
	svc *service.RegisterService
}

func NewRegisterHandler(svc *service.RegisterService) *RegisterHandler {
	return &RegisterHandler{svc: svc}
}

// Channels handles POST /register/channels
func (h *RegisterHandler) Channels(c fiber.Ctx) error {
	var req model.RegisterRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if msg := middleware.ValidateItems(req.Items); msg != "" {
		return badRequest(c, msg)
	}

	res := h.svc.RegisterChannels(c.Context(), req.Items)
	recordRegistrations("channel", res)
	return registrationResponse(c, res, "channels")
}

// Videos handles POST /register/videos
func (h *RegisterHandler) Videos(c fiber.Ctx) error {
	var req model.RegisterRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if msg := middleware.ValidateItems(req.Items); msg != "" {
		return badRequest(c, msg)
	}

	res := h.svc.RegisterVideos(c.Context(), req.Items)
	recordRegistrations("video", res)
	return registrationResponse(c, res, "videos")
}

// badRequest rejects a malformed request before any side effect.
func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(model.ActionResponse{
		Success: false,
		Message: msg,
	})
}

// registrationResponse reports the aggregate outcome: success only when
// every item succeeded, otherwise a 500 with the partial count.
func registrationResponse(c fiber.Ctx, res service.RegisterResult, kind string) error {
	if res.AllSucceeded() {
		return c.JSON(model.ActionResponse{
			Success: true,
			Message: fmt.Sprintf("all %d %s registered", res.Total, kind),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(model.ActionResponse{
		Success: false,
		Message: fmt.Sprintf("registered %d of %d %s", res.Succeeded, res.Total, kind),
	})
}

func recordRegistrations(kind string, res service.RegisterResult) {
	Metrics.RegistrationsTotal.WithLabelValues(kind, "ok").Add(float64(res.Succeeded))
	Metrics.RegistrationsTotal.WithLabelValues(kind, "failed").Add(float64(res.Total - res.Succeeded))
}

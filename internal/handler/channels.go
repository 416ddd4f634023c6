package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/charatrack/charatrack/internal/model"
	"github.com/charatrack/charatrack/internal/service"
)

type ChannelHandler struct {
	svc *service.QueryService
}

func NewChannelHandler(svc *service.QueryService) *ChannelHandler {
	return &ChannelHandler{svc: svc}
}

// List handles GET /channels
func (h *ChannelHandler) List(c fiber.Ctx) error {
	entries, err := h.svc.Channels(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(model.ChannelListResponse{
			Data:    []model.ChannelEntry{},
			Message: "DB Error: " + err.Error(),
		})
	}

	return c.JSON(model.ChannelListResponse{Data: entries})
}

package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/charatrack/charatrack/internal/model"
	"github.com/charatrack/charatrack/internal/service"
)

type VideoHandler struct {
	svc *service.QueryService
}

func NewVideoHandler(svc *service.QueryService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// List handles GET /videos — tagged videos only, with channel titles.
func (h *VideoHandler) List(c fiber.Ctx) error {
	entries, err := h.svc.Videos(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(model.VideoListResponse{
			Data:    []model.VideoEntry{},
			Message: "DB Error: " + err.Error(),
		})
	}

	return c.JSON(model.VideoListResponse{Data: entries})
}

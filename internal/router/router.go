package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/charatrack/charatrack/internal/handler"
	"github.com/charatrack/charatrack/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Channel  *handler.ChannelHandler
	Video    *handler.VideoHandler
	Stats    *handler.StatsHandler
	Register *handler.RegisterHandler
	Update   *handler.UpdateHandler
	Health   *handler.HealthHandler
}

// Setup configures the middleware stack and all routes on the given Fiber app.
// Paths are flat (no /api prefix) — the spreadsheet client and the cron job
// address the service directly.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Health and metrics (no rate limits)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	readLimit := middleware.NewReadRateLimiter().Handler()
	registerLimit := middleware.NewRegisterRateLimiter().Handler()
	updateLimit := middleware.NewUpdateRateLimiter().Handler()

	// Read projections (website / spreadsheet)
	app.Get("/channels", h.Channel.List, readLimit)
	app.Get("/videos", h.Video.List, readLimit)
	app.Get("/stats", h.Stats.List, readLimit)

	// Registration (spreadsheet)
	app.Post("/register/channels", h.Register.Channels, registerLimit)
	app.Post("/register/videos", h.Register.Videos, registerLimit)

	// Daily update (cron scheduler)
	app.Get("/update/dailyviews", h.Update.DailyViews, updateLimit)
}

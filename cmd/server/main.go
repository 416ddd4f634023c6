package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/charatrack/charatrack/internal/config"
	"github.com/charatrack/charatrack/internal/db"
	"github.com/charatrack/charatrack/internal/handler"
	"github.com/charatrack/charatrack/internal/middleware"
	"github.com/charatrack/charatrack/internal/repository"
	"github.com/charatrack/charatrack/internal/router"
	"github.com/charatrack/charatrack/internal/service"
	"github.com/charatrack/charatrack/internal/youtube"
)

func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "charatrack")
	logger := middleware.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	cache := service.NewCacheService(cfg.RedisURL, logger)
	defer cache.Close()

	yt, err := youtube.NewClient(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create youtube client")
	}

	channelRepo := repository.NewChannelRepo(pool)
	videoRepo := repository.NewVideoRepo(pool)
	statsRepo := repository.NewStatsRepo(pool)

	registerSvc := service.NewRegisterService(yt, channelRepo, videoRepo, cache, logger)
	querySvc := service.NewQueryService(channelRepo, videoRepo, statsRepo, cache, logger)
	dailySvc := service.NewDailyViewsService(statsRepo, yt, cache, logger)

	handler.InitMetrics(pool)

	app := fiber.New(fiber.Config{
		AppName:      "CharaTrack API",
		ServerHeader: "CharaTrack",
	})

	router.Setup(app, &router.Handlers{
		Channel:  handler.NewChannelHandler(querySvc),
		Video:    handler.NewVideoHandler(querySvc),
		Stats:    handler.NewStatsHandler(querySvc),
		Register: handler.NewRegisterHandler(registerSvc),
		Update:   handler.NewUpdateHandler(dailySvc),
		Health:   handler.NewHealthHandler(pool, cache.Client()),
	}, cfg.CORSOrigins)

	if cfg.UpdateInterval > 0 {
		worker := service.NewUpdateWorker(dailySvc, cfg.UpdateInterval, logger)
		go worker.Start(ctx)
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("server starting")
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("shutdown failed")
	}
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teamforge/ems-api/internal/api"
	"github.com/teamforge/ems-api/internal/core/service"
	"github.com/teamforge/ems-api/internal/infrastructure/config"
	mongodb "github.com/teamforge/ems-api/internal/infrastructure/db/mongo"
	redisdb "github.com/teamforge/ems-api/internal/infrastructure/db/redis"
	"github.com/teamforge/ems-api/internal/infrastructure/queue"
	"github.com/teamforge/ems-api/internal/infrastructure/relay"
	"github.com/teamforge/ems-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load(slog.Default())

	log := logger.Init(logger.Options{
		Service: "ems-api",
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connect")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongodb ensure indexes")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect")
	}
	defer func() { _ = rdb.Close() }()

	// --- Relay hub and notification pipeline ---
	hub := relay.NewHub(log)
	notificationService := service.NewNotificationService(mongodb.NewNotificationRepository(db))
	dispatcher := queue.NewDispatcher(0, notificationService, hub, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Dependencies{
		Config:        cfg,
		DB:            db,
		Redis:         rdb,
		Hub:           hub,
		Dispatcher:    dispatcher,
		Notifications: notificationService,
		Logger:        log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
		os.Exit(1)
	}
}

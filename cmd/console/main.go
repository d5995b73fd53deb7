package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/taskops/admin-console/internal/api"
	"github.com/taskops/admin-console/internal/core/console"
	"github.com/taskops/admin-console/internal/core/session"
	"github.com/taskops/admin-console/internal/infrastructure/config"
	"github.com/taskops/admin-console/internal/infrastructure/jobs"
	"github.com/taskops/admin-console/internal/infrastructure/remote"
	"github.com/taskops/admin-console/pkg/logger"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	log := logger.Init(logger.Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: os.Getenv("ENV") != "production",
	})

	cfg := config.Load(log)

	remoteClient := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.Timeout, log)

	deps := console.Deps{
		Directory:  remote.NewAccountDirectory(remoteClient),
		Tracker:    remote.NewWorkItemTracker(remoteClient),
		SuccessTTL: cfg.Notify.SuccessTTL,
		ErrorTTL:   cfg.Notify.ErrorTTL,
		Log:        log,
	}

	sessions := session.NewManager(session.NoopVerifier{}, deps, cfg.JWTSecret, cfg.SessionTTL, log)

	if cfg.RefreshSchedule != "" {
		refresher, err := jobs.NewRefresher(cfg.RefreshSchedule, sessions, log)
		if err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.RefreshSchedule).Msg("invalid refresh schedule")
		}
		refresher.Start()
		defer refresher.Stop()
	}

	e := api.NewRouter(sessions, remoteClient, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("api_base_url", cfg.Remote.BaseURL).Msg("console listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("console stopped")
}

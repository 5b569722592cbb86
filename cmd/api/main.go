package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"geogateway/internal/geocoding"
	apphttp "geogateway/internal/http"
	"geogateway/internal/http/router"
	"geogateway/internal/realtime"
	"geogateway/platform/config"
	"geogateway/platform/logger"
	"geogateway/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting gateway", "env", cfg.Env, "addr", cfg.GetHTTPAddr(), "upstream", cfg.GeocodingServiceURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	geocodingModule := geocoding.NewModule(cfg, log)

	// The realtime transport shares the geocoding translator so both
	// transports observe identical semantics for identical inputs.
	realtimeModule := realtime.NewModule(geocodingModule.Translator(), cfg, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Modules: []apphttp.Module{
			geocodingModule,
			realtimeModule,
		},
	}

	srv := &http.Server{
		Addr:    cfg.GetHTTPAddr(),
		Handler: router.New(app),
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.GetHTTPAddr())
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

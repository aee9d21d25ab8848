package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/fincast/fincast/internal/adapter/http"
	"github.com/fincast/fincast/internal/adapter/http/handler"
	"github.com/fincast/fincast/internal/adapter/http/middleware"
	"github.com/fincast/fincast/internal/engine"
	"github.com/fincast/fincast/internal/infrastructure/config"
	"github.com/fincast/fincast/internal/infrastructure/logger"
	"github.com/fincast/fincast/internal/infrastructure/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	eng := engine.New(appLogger, engine.NewULIDGenerator(), metrics.New())

	server := newServer(cfg, httpAdapter.NewRouter(httpAdapter.RouterConfig{
		SimulationHandler: handler.NewSimulationHandler(eng, cfg.DefaultHorizonDays),
		AnalysisHandler:   handler.NewAnalysisHandler(eng, cfg.DefaultHorizonDays),
		HealthHandler:     handler.NewHealthHandler(),
		LoggingMiddleware: middleware.NewLoggingMiddleware(appLogger),
	}))

	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}

func newServer(cfg *config.Config, router http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}

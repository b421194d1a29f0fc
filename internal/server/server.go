// Package server defines the core Server struct that composes the app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database handle
//
// It provides constructors, the startup health check and shutdown logic.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/coffee-demo/internal/config"
	"github.com/deppfellow/coffee-demo/internal/database"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/coffee-demo/internal/logger"
)

// Server is the application container that holds shared resources.
type Server struct {
	// Config holds all environment/config values for the app.
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	LoggerService *loggerPkg.LoggerService

	// DB holds the database handle.
	DB *database.Database
}

// New constructs a Server and opens the database.
//
// The database is pinged on open, so an unreachable store fails here.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}, nil
}

// ErrUnhealthy is returned by CheckHealth when a dependency check fails.
var ErrUnhealthy = errors.New("dependency health check failed")

// CheckHealth runs the configured dependency checks once.
//
// Each check gets observability.health_checks.timeout. A failure is logged,
// recorded as a New Relic custom event and returned wrapped in ErrUnhealthy.
// Disabled checks return nil.
func (s *Server) CheckHealth(ctx context.Context) error {
	hc := s.Config.Observability.HealthChecks
	if !hc.Enabled {
		return nil
	}

	logger := s.Logger.With().Str("operation", "health_check").Logger()

	for _, check := range hc.Checks {
		if check != "database" {
			continue
		}

		checkCtx, cancel := context.WithTimeout(ctx, hc.Timeout)
		start := time.Now()
		err := s.DB.Ping(checkCtx)
		cancel()

		if err != nil {
			logger.Error().
				Err(err).
				Str("check", check).
				Dur("response_time", time.Since(start)).
				Msg("database health check failed")

			if app := s.LoggerService.GetApplication(); app != nil {
				app.RecordCustomEvent("HealthCheckError", map[string]any{
					"check_type":       check,
					"operation":        "health_check",
					"error_type":       "database_unhealthy",
					"response_time_ms": time.Since(start).Milliseconds(),
					"error_message":    err.Error(),
				})
			}

			return fmt.Errorf("%w: %s: %w", ErrUnhealthy, check, err)
		}

		logger.Info().
			Str("check", check).
			Dur("response_time", time.Since(start)).
			Msg("database health check passed")
	}

	return nil
}

// Shutdown closes the database and flushes New Relic.
func (s *Server) Shutdown() error {
	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	s.LoggerService.Shutdown()
	return nil
}

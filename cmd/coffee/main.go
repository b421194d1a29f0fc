package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/deppfellow/coffee-demo/internal/config"
	"github.com/deppfellow/coffee-demo/internal/database"
	"github.com/deppfellow/coffee-demo/internal/logger"
	"github.com/deppfellow/coffee-demo/internal/repository"
	"github.com/deppfellow/coffee-demo/internal/runner"
	"github.com/deppfellow/coffee-demo/internal/server"
	"github.com/deppfellow/coffee-demo/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootstrap := logger.NewLogger(config.DefaultObservabilityConfig())
		bootstrap.Fatal().Err(err).Msg("failed to load config")
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		loggerService.Shutdown()
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	if err := run(ctx, srv); err != nil {
		log.Error().Err(err).Msg("coffee-demo failed")
		shutdown(srv)
		os.Exit(1)
	}

	shutdown(srv)
}

// run migrates the schema, checks dependencies and drives the mapper once.
func run(ctx context.Context, srv *server.Server) error {
	if err := database.Migrate(ctx, srv.Logger, srv.Config, srv.DB); err != nil {
		return err
	}

	if err := srv.CheckHealth(ctx); err != nil {
		return err
	}

	repos, err := repository.NewRepositories(srv)
	if err != nil {
		return err
	}
	services := service.NewServices(srv, repos)

	_, err = runner.New(services.Coffee, srv.Logger, srv.LoggerService.GetApplication()).Run(ctx)
	return err
}

func shutdown(srv *server.Server) {
	if err := srv.Shutdown(); err != nil {
		srv.Logger.Error().Err(err).Msg("shutdown failed")
		return
	}
	srv.Logger.Info().Msg("shutdown complete")
}

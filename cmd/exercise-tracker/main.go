package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/config"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/database"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/handler"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/logger"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/repository"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/router"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/server"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/service"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	migrationTimeout = 30 * time.Second
	shutdownTimeout  = 30 * time.Second
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	appLogger := logger.NewLoggerWithService(cfg.Observability, loggerService)

	if err := run(cfg, &appLogger, loggerService); err != nil {
		appLogger.Error().Stack().Err(err).Msg("server stopped")
		loggerService.Shutdown()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zerolog.Logger, loggerService *logger.LoggerService) error {
	migrateCtx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()

	if err := database.Migrate(migrateCtx, log, cfg); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		return errors.Wrap(err, "failed to initialize server")
	}

	repos, err := repository.NewRepositories(srv)
	if err != nil {
		return errors.Wrap(err, "failed to initialize repositories")
	}

	services, err := service.NewServices(srv, repos)
	if err != nil {
		return errors.Wrap(err, "failed to initialize services")
	}

	handlers := handler.NewHandlers(srv, services)
	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return errors.Wrap(err, "failed to start server")
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
	return nil
}

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/config"
	loggerConfig "github.com/bhaumin/boilerplate-project-exercisetracker/internal/logger"
	"github.com/newrelic/go-agent/v3/integrations/nrmongo"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func newMongo(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	opts := options.Client().
		ApplyURI(cfg.Store.URI).
		SetConnectTimeout(cfg.Store.ConnectTimeout).
		SetServerSelectionTimeout(cfg.Store.ConnectTimeout)
	if cfg.Store.MaxConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.Store.MaxConns))
	}

	var slow time.Duration
	if cfg.Observability != nil {
		slow = cfg.Observability.Logging.SlowQueryThreshold
	}

	var verbose *zerolog.Logger
	if cfg.Primary.Env == "local" {
		storeLogger := loggerConfig.NewStoreLogger(logger.GetLevel(), "mongo")
		verbose = &storeLogger
	}

	monitor := newCommandMonitor(logger, verbose, slow)

	// nrmongo wraps the existing monitor so both run.
	if loggerService.GetApplication() != nil {
		monitor = nrmongo.NewCommandMonitor(monitor)
	}
	if monitor != nil {
		opts.SetMonitor(monitor)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Store.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info().Str("database", cfg.Store.Database).Msg("connected to mongo")

	return &Database{
		Driver: config.DriverMongo,
		Mongo:  client.Database(cfg.Store.Database),
		client: client,
		log:    logger,
	}, nil
}

// newCommandMonitor logs slow and failed commands on logger and, when
// verbose is set, every command at debug level. It returns nil when there
// is nothing to log.
func newCommandMonitor(logger *zerolog.Logger, verbose *zerolog.Logger, slow time.Duration) *event.CommandMonitor {
	if verbose == nil && slow <= 0 {
		return nil
	}

	return &event.CommandMonitor{
		Started: func(_ context.Context, e *event.CommandStartedEvent) {
			if verbose == nil {
				return
			}
			verbose.Debug().
				Str("command", e.CommandName).
				Str("database", e.DatabaseName).
				Int64("request_id", e.RequestID).
				Str("body", e.Command.String()).
				Msg("mongo command started")
		},
		Succeeded: func(_ context.Context, e *event.CommandSucceededEvent) {
			if slow > 0 && e.Duration >= slow {
				logger.Warn().
					Str("command", e.CommandName).
					Str("database", e.DatabaseName).
					Dur("duration", e.Duration).
					Msg("slow mongo command")
				return
			}
			if verbose != nil {
				verbose.Debug().
					Str("command", e.CommandName).
					Int64("request_id", e.RequestID).
					Dur("duration", e.Duration).
					Msg("mongo command succeeded")
			}
		},
		Failed: func(_ context.Context, e *event.CommandFailedEvent) {
			logger.Warn().
				Str("command", e.CommandName).
				Str("database", e.DatabaseName).
				Dur("duration", e.Duration).
				Str("failure", e.Failure).
				Msg("mongo command failed")
		},
	}
}

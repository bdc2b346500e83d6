// Package database owns the connection to the backing store.
//
// Three drivers are supported: MongoDB (the default), PostgreSQL through a
// pgx pool, and an in-process memory store for development and tests. The
// handle is created once at startup, shared by every request and closed on
// shutdown.
package database

import (
	"context"
	"fmt"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/config"
	loggerConfig "github.com/bhaumin/boilerplate-project-exercisetracker/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection (and table) names.
const (
	UsersCollection       = "users"
	ExerciseLogCollection = "exerciselog"
)

// Database wraps whichever store the configuration selected. Exactly one of
// Mongo, Pool and Memory is set, matching Driver.
type Database struct {
	Driver string
	Mongo  *mongo.Database
	Pool   *pgxpool.Pool
	Memory *MemoryStore

	client *mongo.Client
	log    *zerolog.Logger
}

// New connects to the configured store and verifies it is reachable.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		return newMongo(cfg, logger, loggerService)
	case config.DriverPostgres:
		return newPostgres(cfg, logger, loggerService)
	case config.DriverMemory:
		logger.Info().Msg("using in-memory store")
		return &Database{
			Driver: config.DriverMemory,
			Memory: NewMemoryStore(),
			log:    logger,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

// Users returns the mongo users collection.
func (db *Database) Users() *mongo.Collection {
	return db.Mongo.Collection(UsersCollection)
}

// ExerciseLog returns the mongo exerciselog collection.
func (db *Database) ExerciseLog() *mongo.Collection {
	return db.Mongo.Collection(ExerciseLogCollection)
}

// Ping checks that the store answers.
func (db *Database) Ping(ctx context.Context) error {
	switch db.Driver {
	case config.DriverMongo:
		return db.client.Ping(ctx, readpref.Primary())
	case config.DriverPostgres:
		return db.Pool.Ping(ctx)
	default:
		return nil
	}
}

// Close releases the store connections.
func (db *Database) Close(ctx context.Context) error {
	db.log.Info().Str("driver", db.Driver).Msg("closing store connection")

	switch db.Driver {
	case config.DriverMongo:
		if err := db.client.Disconnect(ctx); err != nil {
			return fmt.Errorf("disconnecting from mongo: %w", err)
		}
	case config.DriverPostgres:
		db.Pool.Close()
	}
	return nil
}

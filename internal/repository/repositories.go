package repository

import (
	"fmt"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/config"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/database"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	User     UserRepository
	Exercise ExerciseRepository
}

// NewRepositories builds the repositories for the store the server is
// connected to.
func NewRepositories(s *server.Server) (*Repositories, error) {
	return newRepositories(s.DB)
}

func newRepositories(db *database.Database) (*Repositories, error) {
	switch db.Driver {
	case config.DriverMongo:
		return &Repositories{
			User:     NewMongoUserRepository(db.Users()),
			Exercise: NewMongoExerciseRepository(db.ExerciseLog()),
		}, nil
	case config.DriverPostgres:
		return &Repositories{
			User:     NewPostgresUserRepository(db.Pool),
			Exercise: NewPostgresExerciseRepository(db.Pool),
		}, nil
	case config.DriverMemory:
		return &Repositories{
			User:     NewMemoryUserRepository(db.Memory),
			Exercise: NewMemoryExerciseRepository(db.Memory),
		}, nil
	default:
		return nil, fmt.Errorf("no repositories for store driver %q", db.Driver)
	}
}

// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives
// validated input, sequences the repository calls of each operation and
// records the side effects (metrics, domain events) of successful writes.
package service

import (
	"time"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/repository"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/server"
)

type Services struct {
	User     *UserService
	Exercise *ExerciseService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	userService := NewUserService(s, repos.User)

	return &Services{
		User:     userService,
		Exercise: NewExerciseService(s, userService, repos.Exercise),
	}, nil
}

// clock is swapped in tests.
type clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

package handler

import (
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/server"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health   *HealthHandler
	Landing  *LandingHandler
	User     *UserHandler
	Exercise *ExerciseHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		Landing:  NewLandingHandler(s),
		User:     NewUserHandler(s, services.User),
		Exercise: NewExerciseHandler(s, services.Exercise),
	}
}

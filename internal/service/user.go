package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/errs"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/events"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/model"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/repository"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/server"
	"github.com/rs/zerolog"
)

type UserService struct {
	server *server.Server
	users  repository.UserRepository
	now    clock
}

func NewUserService(s *server.Server, users repository.UserRepository) *UserService {
	return &UserService{
		server: s,
		users:  users,
		now:    utcNow,
	}
}

// Register returns the user named username, creating it on first use.
func (s *UserService) Register(ctx context.Context, username string) (model.User, error) {
	logger := zerolog.Ctx(ctx)

	user, created, err := s.users.Create(ctx, username)
	if err != nil {
		s.server.Metrics.RecordStoreError("user.create")
		return model.User{}, fmt.Errorf("registering user: %w", err)
	}

	s.server.Metrics.RecordUserRegistered(created)

	if !created {
		logger.Debug().Str("user_id", user.ID).Msg("username already registered")
		return user, nil
	}

	logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")

	publishEvent(ctx, s.server, events.UserRegisteredEvent, user.ID, events.UserRegistered{
		UserID:     user.ID,
		Username:   user.Username,
		OccurredAt: s.now(),
	})

	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.server.Metrics.RecordStoreError("user.list")
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// Get resolves id to a user. A malformed id is a 400 on userId and an
// unknown one a 404.
func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, model.ErrInvalidID) {
		return nil, errs.NewFieldError("userId", "must be a valid identifier")
	}
	if err != nil {
		s.server.Metrics.RecordStoreError("user.get")
		return nil, fmt.Errorf("resolving user: %w", err)
	}
	if user == nil {
		return nil, errs.NewNotFoundError("unknown userId", true, nil)
	}
	return user, nil
}

// publishEvent sends an event without failing the caller; the write it
// describes has already been stored.
func publishEvent(ctx context.Context, srv *server.Server, name, key string, payload any) {
	if err := srv.Events.Publish(ctx, name, key, payload); err != nil {
		srv.Metrics.RecordEventPublishFailure(name)
		zerolog.Ctx(ctx).Warn().Err(err).Str("event", name).Msg("failed to publish event")
	}
}

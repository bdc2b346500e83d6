package service

import (
	"context"
	"fmt"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/events"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/model"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/repository"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/server"
	"github.com/rs/zerolog"
)

type ExerciseService struct {
	server    *server.Server
	users     *UserService
	exercises repository.ExerciseRepository
	now       clock
}

func NewExerciseService(s *server.Server, users *UserService, exercises repository.ExerciseRepository) *ExerciseService {
	return &ExerciseService{
		server:    s,
		users:     users,
		exercises: exercises,
		now:       utcNow,
	}
}

// Add stores record for an existing user and returns that user along with
// the stored record. A zero date is replaced by the current time.
func (s *ExerciseService) Add(ctx context.Context, record model.ExerciseRecord) (*model.User, model.ExerciseRecord, error) {
	user, err := s.users.Get(ctx, record.UserID)
	if err != nil {
		return nil, model.ExerciseRecord{}, err
	}

	record.UserID = user.ID
	if record.Date.IsZero() {
		record.Date = s.now()
	}

	if err := s.exercises.Add(ctx, record); err != nil {
		s.server.Metrics.RecordStoreError("exercise.add")
		return nil, model.ExerciseRecord{}, fmt.Errorf("adding exercise: %w", err)
	}

	s.server.Metrics.RecordExerciseLogged()
	zerolog.Ctx(ctx).Info().
		Str("user_id", user.ID).
		Int("duration", record.Duration).
		Time("date", record.Date).
		Msg("exercise logged")

	publishEvent(ctx, s.server, events.ExerciseLoggedEvent, user.ID, events.ExerciseLogged{
		UserID:      user.ID,
		Description: record.Description,
		Duration:    record.Duration,
		Date:        record.Date,
		OccurredAt:  s.now(),
	})

	return user, record, nil
}

// Log resolves the user of q and returns its matching records.
func (s *ExerciseService) Log(ctx context.Context, q model.LogQuery) (*model.User, []model.ExerciseRecord, error) {
	user, err := s.users.Get(ctx, q.UserID)
	if err != nil {
		return nil, nil, err
	}

	q.UserID = user.ID
	records, err := s.exercises.Log(ctx, q)
	if err != nil {
		s.server.Metrics.RecordStoreError("exercise.log")
		return nil, nil, fmt.Errorf("querying exercise log: %w", err)
	}

	return user, records, nil
}

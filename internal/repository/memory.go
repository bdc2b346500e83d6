package repository

import (
	"context"
	"strings"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/database"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemoryUserRepository struct {
	store *database.MemoryStore
}

func NewMemoryUserRepository(store *database.MemoryStore) *MemoryUserRepository {
	return &MemoryUserRepository{store: store}
}

func (r *MemoryUserRepository) Create(_ context.Context, username string) (model.User, bool, error) {
	user, created := r.store.InsertUserIfAbsent(username)
	return user, created, nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, model.ErrInvalidID
	}

	// Hex ids match regardless of case, as they do in mongo.
	user, ok := r.store.FindUser(func(u model.User) bool { return strings.EqualFold(u.ID, id) })
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *MemoryUserRepository) List(_ context.Context) ([]model.User, error) {
	return r.store.Users(), nil
}

type MemoryExerciseRepository struct {
	store *database.MemoryStore
}

func NewMemoryExerciseRepository(store *database.MemoryStore) *MemoryExerciseRepository {
	return &MemoryExerciseRepository{store: store}
}

func (r *MemoryExerciseRepository) Add(_ context.Context, record model.ExerciseRecord) error {
	record.Date = record.Date.UTC()
	r.store.InsertExercise(record)
	return nil
}

func (r *MemoryExerciseRepository) Log(_ context.Context, q model.LogQuery) ([]model.ExerciseRecord, error) {
	return r.store.FindExercises(q.Matches, q.Limit), nil
}

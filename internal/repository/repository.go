// Package repository handles all interactions with the store.
//
// Each store driver has its own implementation of the user and exercise
// repositories; the query shaping for the exercise log is kept in pure
// builder functions so it can be tested without a running store.
package repository

import (
	"context"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/model"
)

// UserRepository persists registered usernames.
type UserRepository interface {
	// Create returns the user named username, inserting it when absent.
	// created is false when the user already existed.
	Create(ctx context.Context, username string) (user model.User, created bool, err error)
	// GetByID returns model.ErrInvalidID for a malformed id and (nil, nil)
	// when no user has that id.
	GetByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// ExerciseRepository persists exercise records.
type ExerciseRepository interface {
	Add(ctx context.Context, record model.ExerciseRecord) error
	// Log returns the matching records in insertion order. The returned
	// records carry only description, duration and date.
	Log(ctx context.Context, query model.LogQuery) ([]model.ExerciseRecord, error)
}

package database

import (
	"sync"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps users and exercise records in insertion order.
// It is safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	users     []model.User
	exercises []model.ExerciseRecord
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// InsertUserIfAbsent returns the user named username, creating it first if
// needed. created reports whether a new user was stored.
func (s *MemoryStore) InsertUserIfAbsent(username string) (user model.User, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, false
		}
	}

	user = model.User{ID: primitive.NewObjectID().Hex(), Username: username}
	s.users = append(s.users, user)
	return user, true
}

// FindUser returns the first user accepted by match.
func (s *MemoryStore) FindUser(match func(model.User) bool) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if match(u) {
			return u, true
		}
	}
	return model.User{}, false
}

// Users returns a copy of every stored user.
func (s *MemoryStore) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out
}

// InsertExercise appends record.
func (s *MemoryStore) InsertExercise(record model.ExerciseRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.exercises = append(s.exercises, record)
}

// FindExercises returns records accepted by match, at most limit of them
// when limit is positive.
func (s *MemoryStore) FindExercises(match func(model.ExerciseRecord) bool, limit int) []model.ExerciseRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ExerciseRecord, 0)
	for _, r := range s.exercises {
		if limit > 0 && len(out) == limit {
			break
		}
		if match(r) {
			out = append(out, r)
		}
	}
	return out
}

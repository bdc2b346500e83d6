// Package events publishes domain events to Kafka.
//
// Publishing is best effort: callers log and count failures but never fail
// the request that produced the event, since the store write already
// happened.
package events

import (
	"context"
	"time"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/config"
)

// Event names. The configured topic prefix is prepended to form the topic.
const (
	UserRegisteredEvent = "user.registered"
	ExerciseLoggedEvent = "exercise.logged"
)

// Publisher sends an event payload under key to the topic for name.
type Publisher interface {
	Publish(ctx context.Context, name string, key string, payload any) error
	Close() error
}

// UserRegistered is emitted when a username is stored for the first time.
type UserRegistered struct {
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ExerciseLogged is emitted for every stored exercise record.
type ExerciseLogged struct {
	UserID      string    `json:"user_id"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	Date        time.Time `json:"date"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewPublisher returns a Kafka publisher when brokers are configured and a
// no-op publisher otherwise.
func NewPublisher(cfg config.EventsConfig) Publisher {
	if !cfg.Enabled() {
		return NopPublisher{}
	}
	return NewKafkaPublisher(cfg.Brokers, cfg.TopicPrefix)
}

// Topic joins prefix and name with a dot, skipping an empty prefix.
func Topic(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }

func (NopPublisher) Close() error { return nil }

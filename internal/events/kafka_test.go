package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/config"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu       sync.Mutex
	topic    string
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func newTestPublisher(prefix string, err error) (*KafkaPublisher, map[string]*fakeWriter) {
	created := make(map[string]*fakeWriter)
	p := NewKafkaPublisher([]string{"localhost:9092"}, prefix)
	p.newWriter = func(topic string) messageWriter {
		w := &fakeWriter{topic: topic, err: err}
		created[topic] = w
		return w
	}
	return p, created
}

func TestKafkaPublisherWritesJSON(t *testing.T) {
	p, writers := newTestPublisher("tracker", nil)

	event := UserRegistered{UserID: "abc", Username: "alice", OccurredAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, p.Publish(context.Background(), UserRegisteredEvent, "abc", event))
	require.NoError(t, p.Publish(context.Background(), UserRegisteredEvent, "def", event))

	require.Len(t, writers, 1)
	w := writers["tracker.user.registered"]
	require.NotNil(t, w)
	require.Len(t, w.messages, 2)

	msg := w.messages[0]
	assert.Equal(t, "abc", string(msg.Key))

	var decoded UserRegistered
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event, decoded)
}

func TestKafkaPublisherWrapsWriteErrors(t *testing.T) {
	p, _ := newTestPublisher("", errors.New("broker down"))

	err := p.Publish(context.Background(), ExerciseLoggedEvent, "abc", ExerciseLogged{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exercise.logged")
	assert.Contains(t, err.Error(), "broker down")
}

func TestKafkaPublisherClose(t *testing.T) {
	p, writers := newTestPublisher("", nil)
	require.NoError(t, p.Publish(context.Background(), UserRegisteredEvent, "a", UserRegistered{}))
	require.NoError(t, p.Publish(context.Background(), ExerciseLoggedEvent, "a", ExerciseLogged{}))

	require.NoError(t, p.Close())
	for _, w := range writers {
		assert.True(t, w.closed)
	}
}

func TestNewPublisherWithoutBrokers(t *testing.T) {
	p := NewPublisher(config.EventsConfig{})
	assert.IsType(t, NopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), UserRegisteredEvent, "k", nil))
	assert.NoError(t, p.Close())

	assert.IsType(t, &KafkaPublisher{}, NewPublisher(config.EventsConfig{Brokers: []string{"kafka:9092"}}))
}

func TestTopic(t *testing.T) {
	assert.Equal(t, "user.registered", Topic("", UserRegisteredEvent))
	assert.Equal(t, "prod.exercise.logged", Topic("prod", ExerciseLoggedEvent))
}

package repository

import (
	"testing"
	"time"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	jan1  = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	jan31 = time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC)
)

func TestBuildMongoLogFilter(t *testing.T) {
	t.Run("no bounds", func(t *testing.T) {
		filter, opts := buildMongoLogFilter(model.LogQuery{UserID: "u1"})

		assert.Equal(t, bson.M{"userId": "u1"}, filter)
		assert.Nil(t, opts.Limit)
		assert.Equal(t, bson.M{"_id": 0, "description": 1, "duration": 1, "date": 1}, opts.Projection)
		assert.Equal(t, bson.D{{Key: "_id", Value: 1}}, opts.Sort)
	})

	t.Run("both bounds", func(t *testing.T) {
		filter, _ := buildMongoLogFilter(model.LogQuery{UserID: "u1", From: &jan1, To: &jan31})

		assert.Equal(t, bson.M{
			"userId": "u1",
			"date":   bson.M{"$gte": jan1, "$lte": jan31},
		}, filter)
	})

	t.Run("from only", func(t *testing.T) {
		filter, _ := buildMongoLogFilter(model.LogQuery{UserID: "u1", From: &jan1})
		assert.Equal(t, bson.M{"$gte": jan1}, filter["date"])
	})

	t.Run("to only", func(t *testing.T) {
		filter, _ := buildMongoLogFilter(model.LogQuery{UserID: "u1", To: &jan31})
		assert.Equal(t, bson.M{"$lte": jan31}, filter["date"])
	})

	t.Run("limit", func(t *testing.T) {
		_, opts := buildMongoLogFilter(model.LogQuery{UserID: "u1", Limit: 3})
		require.NotNil(t, opts.Limit)
		assert.Equal(t, int64(3), *opts.Limit)
	})

	t.Run("non positive limit is ignored", func(t *testing.T) {
		_, opts := buildMongoLogFilter(model.LogQuery{UserID: "u1", Limit: -2})
		assert.Nil(t, opts.Limit)
	})
}

func TestBuildPostgresLogQuery(t *testing.T) {
	t.Run("no bounds", func(t *testing.T) {
		query, args := buildPostgresLogQuery(model.LogQuery{UserID: "u1"})

		assert.Equal(t, "SELECT description, duration, date FROM exerciselog WHERE user_id = $1 ORDER BY id", query)
		assert.Equal(t, []any{"u1"}, args)
	})

	t.Run("everything", func(t *testing.T) {
		query, args := buildPostgresLogQuery(model.LogQuery{UserID: "u1", From: &jan1, To: &jan31, Limit: 5})

		assert.Equal(t,
			"SELECT description, duration, date FROM exerciselog WHERE user_id = $1 AND date >= $2 AND date <= $3 ORDER BY id LIMIT $4",
			query)
		assert.Equal(t, []any{"u1", jan1, jan31, 5}, args)
	})

	t.Run("to only keeps placeholders dense", func(t *testing.T) {
		query, args := buildPostgresLogQuery(model.LogQuery{UserID: "u1", To: &jan31})

		assert.Contains(t, query, "date <= $2")
		assert.Len(t, args, 2)
	})
}

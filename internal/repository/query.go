package repository

import (
	"fmt"
	"strings"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// buildMongoLogFilter builds the exerciselog find for q. The date filter is
// only present when at least one bound is set; both bounds are inclusive.
func buildMongoLogFilter(q model.LogQuery) (bson.M, *options.FindOptions) {
	filter := bson.M{"userId": q.UserID}

	if q.HasDateRange() {
		dateFilter := bson.M{}
		if q.From != nil {
			dateFilter["$gte"] = *q.From
		}
		if q.To != nil {
			dateFilter["$lte"] = *q.To
		}
		filter["date"] = dateFilter
	}

	opts := options.Find().
		SetProjection(bson.M{"_id": 0, "description": 1, "duration": 1, "date": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	return filter, opts
}

// buildPostgresLogQuery is the SQL twin of buildMongoLogFilter.
func buildPostgresLogQuery(q model.LogQuery) (string, []any) {
	var sb strings.Builder
	args := []any{q.UserID}

	sb.WriteString("SELECT description, duration, date FROM exerciselog WHERE user_id = $1")

	if q.From != nil {
		args = append(args, *q.From)
		fmt.Fprintf(&sb, " AND date >= $%d", len(args))
	}
	if q.To != nil {
		args = append(args, *q.To)
		fmt.Fprintf(&sb, " AND date <= $%d", len(args))
	}

	sb.WriteString(" ORDER BY id")

	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	return sb.String(), args
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
}

func (d userDocument) toModel() model.User {
	return model.User{ID: d.ID.Hex(), Username: d.Username}
}

type exerciseDocument struct {
	UserID      string    `bson:"userId,omitempty"`
	Description string    `bson:"description"`
	Duration    int       `bson:"duration"`
	Date        time.Time `bson:"date"`
}

type MongoUserRepository struct {
	users *mongo.Collection
}

func NewMongoUserRepository(users *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{users: users}
}

func (r *MongoUserRepository) Create(ctx context.Context, username string) (model.User, bool, error) {
	var existing userDocument
	err := r.users.FindOne(ctx, bson.M{"username": username}).Decode(&existing)
	switch {
	case err == nil:
		return existing.toModel(), false, nil
	case !errors.Is(err, mongo.ErrNoDocuments):
		return model.User{}, false, fmt.Errorf("finding user by username: %w", err)
	}

	res, err := r.users.InsertOne(ctx, userDocument{Username: username})
	if err != nil {
		return model.User{}, false, fmt.Errorf("inserting user: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return model.User{}, false, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	return model.User{ID: id.Hex(), Username: username}, true, nil
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrInvalidID
	}

	var doc userDocument
	err = r.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding user by id: %w", err)
	}

	user := doc.toModel()
	return &user, nil
}

func (r *MongoUserRepository) List(ctx context.Context) ([]model.User, error) {
	cursor, err := r.users.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding users: %w", err)
	}

	users := make([]model.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toModel())
	}
	return users, nil
}

type MongoExerciseRepository struct {
	log *mongo.Collection
}

func NewMongoExerciseRepository(log *mongo.Collection) *MongoExerciseRepository {
	return &MongoExerciseRepository{log: log}
}

func (r *MongoExerciseRepository) Add(ctx context.Context, record model.ExerciseRecord) error {
	_, err := r.log.InsertOne(ctx, exerciseDocument{
		UserID:      record.UserID,
		Description: record.Description,
		Duration:    record.Duration,
		Date:        record.Date.UTC(),
	})
	if err != nil {
		return fmt.Errorf("inserting exercise: %w", err)
	}
	return nil
}

func (r *MongoExerciseRepository) Log(ctx context.Context, q model.LogQuery) ([]model.ExerciseRecord, error) {
	filter, opts := buildMongoLogFilter(q)

	cursor, err := r.log.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("querying exercise log: %w", err)
	}

	var docs []exerciseDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding exercise log: %w", err)
	}

	records := make([]model.ExerciseRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, model.ExerciseRecord{
			UserID:      q.UserID,
			Description: d.Description,
			Duration:    d.Duration,
			Date:        d.Date.UTC(),
		})
	}
	return records, nil
}

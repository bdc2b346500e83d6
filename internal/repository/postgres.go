package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

func (r *PostgresUserRepository) Create(ctx context.Context, username string) (model.User, bool, error) {
	user := model.User{Username: username}

	err := r.pool.QueryRow(ctx,
		`SELECT id::text FROM users WHERE username = $1 ORDER BY seq LIMIT 1`,
		username,
	).Scan(&user.ID)
	switch {
	case err == nil:
		return user, false, nil
	case !errors.Is(err, pgx.ErrNoRows):
		return model.User{}, false, fmt.Errorf("finding user by username: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`INSERT INTO users (username) VALUES ($1) RETURNING id::text`,
		username,
	).Scan(&user.ID)
	if err != nil {
		return model.User{}, false, fmt.Errorf("inserting user: %w", err)
	}

	return user, true, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, model.ErrInvalidID
	}

	user := model.User{ID: parsed.String()}
	err = r.pool.QueryRow(ctx, `SELECT username FROM users WHERE id = $1`, parsed.String()).Scan(&user.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding user by id: %w", err)
	}

	return &user, nil
}

func (r *PostgresUserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT id::text, username FROM users ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.User, error) {
		var u model.User
		err := row.Scan(&u.ID, &u.Username)
		return u, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning users: %w", err)
	}
	return users, nil
}

type PostgresExerciseRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresExerciseRepository(pool *pgxpool.Pool) *PostgresExerciseRepository {
	return &PostgresExerciseRepository{pool: pool}
}

func (r *PostgresExerciseRepository) Add(ctx context.Context, record model.ExerciseRecord) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO exerciselog (user_id, description, duration, date) VALUES ($1, $2, $3, $4)`,
		record.UserID, record.Description, record.Duration, record.Date.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting exercise: %w", err)
	}
	return nil
}

func (r *PostgresExerciseRepository) Log(ctx context.Context, q model.LogQuery) ([]model.ExerciseRecord, error) {
	query, args := buildPostgresLogQuery(q)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercise log: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ExerciseRecord, error) {
		record := model.ExerciseRecord{UserID: q.UserID}
		err := row.Scan(&record.Description, &record.Duration, &record.Date)
		record.Date = record.Date.UTC()
		return record, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning exercise log: %w", err)
	}
	return records, nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"dishes-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// postgresUserRepository implements UserRepository on a JSONB table.
type postgresUserRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresUserRepository creates a PostgreSQL-backed user repository.
func NewPostgresUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &postgresUserRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

// GetByID retrieves a single user by its ID.
func (r *postgresUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var doc []byte
	err := r.pool.QueryRow(ctx, `SELECT doc FROM users WHERE id = $1`, id.Hex()).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", id.Hex()).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	var u model.User
	if err := json.Unmarshal(doc, &u); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &u, nil
}

// GetByIDs retrieves the users matching ids. Unknown ids are skipped.
func (r *postgresUserRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	hex := make([]string, len(ids))
	for i, id := range ids {
		hex[i] = id.Hex()
	}

	rows, err := r.pool.Query(ctx, `SELECT doc FROM users WHERE id = ANY($1)`, hex)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query users by IDs")
		return nil, fmt.Errorf("failed to query users by IDs: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		var u model.User
		if err := json.Unmarshal(doc, &u); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// Save inserts or replaces the user document.
func (r *postgresUserRepository) Save(ctx context.Context, user *model.User) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO users (id, doc) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc`,
		user.ID.Hex(), doc,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to save user")
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

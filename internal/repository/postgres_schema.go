package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema stores each dish and user as a JSONB document keyed by its hex
// ObjectID. Dish names are lifted into a column to enforce uniqueness.
const Schema = `
	CREATE TABLE IF NOT EXISTS dishes (
		id VARCHAR(24) PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		doc JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(24) PRIMARY KEY,
		doc JSONB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_dishes_created_at ON dishes(created_at);
`

// EnsureSchema creates the document tables if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dishes-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const uniqueViolation = "23505"

// PostgresDishRepository implements DishRepository on a JSONB table.
type PostgresDishRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
	now    func() time.Time
}

// NewPostgresDishRepository creates a PostgreSQL-backed dish repository.
func NewPostgresDishRepository(pool *pgxpool.Pool, logger zerolog.Logger) *PostgresDishRepository {
	return &PostgresDishRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "dish").Logger(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// GetAll retrieves every dish in creation order.
func (r *PostgresDishRepository) GetAll(ctx context.Context) ([]model.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT doc FROM dishes ORDER BY created_at, id`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query dishes")
		return nil, fmt.Errorf("failed to query dishes: %w", err)
	}
	defer rows.Close()

	dishes := []model.Dish{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan dish row")
			return nil, fmt.Errorf("failed to scan dish: %w", err)
		}
		d, err := decodeDish(doc)
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, *d)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating dish rows")
		return nil, fmt.Errorf("error iterating dishes: %w", err)
	}
	return dishes, nil
}

// GetByID retrieves a single dish by its ID.
func (r *PostgresDishRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var doc []byte
	err := r.pool.QueryRow(ctx, `SELECT doc FROM dishes WHERE id = $1`, id.Hex()).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("dish_id", id.Hex()).Msg("dish not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("dish_id", id.Hex()).Msg("failed to query dish")
		return nil, fmt.Errorf("failed to query dish: %w", err)
	}
	return decodeDish(doc)
}

// Count returns the number of stored dishes.
func (r *PostgresDishRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM dishes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count dishes: %w", err)
	}
	return n, nil
}

// Create inserts a new dish.
func (r *PostgresDishRepository) Create(ctx context.Context, dish *model.Dish) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	dish.Normalize(r.now())

	doc, err := json.Marshal(dish)
	if err != nil {
		return fmt.Errorf("failed to encode dish: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO dishes (id, name, doc, created_at) VALUES ($1, $2, $3, $4)`,
		dish.ID.Hex(), dish.Name, doc, dish.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		r.logger.Error().Err(err).Str("name", dish.Name).Msg("failed to insert dish")
		return fmt.Errorf("failed to insert dish: %w", err)
	}

	r.logger.Info().Str("dish_id", dish.ID.Hex()).Str("name", dish.Name).Msg("dish created")
	return nil
}

// Update merges the patch into the stored document.
func (r *PostgresDishRepository) Update(ctx context.Context, id primitive.ObjectID, patch model.DishPatch) (*model.Dish, error) {
	d, _, err := r.mutate(ctx, id, func(d *model.Dish, now time.Time) bool {
		patch.Apply(d, now)
		return true
	})
	return d, err
}

// DeleteAll removes every dish.
func (r *PostgresDishRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM dishes`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to delete dishes")
		return 0, fmt.Errorf("failed to delete dishes: %w", err)
	}

	r.logger.Info().Int64("deleted", tag.RowsAffected()).Msg("dishes deleted")
	return tag.RowsAffected(), nil
}

// Delete removes a dish and returns the removed document.
func (r *PostgresDishRepository) Delete(ctx context.Context, id primitive.ObjectID) (*model.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	var doc []byte
	err := r.pool.QueryRow(ctx, `DELETE FROM dishes WHERE id = $1 RETURNING doc`, id.Hex()).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("dish_id", id.Hex()).Msg("failed to delete dish")
		return nil, fmt.Errorf("failed to delete dish: %w", err)
	}
	return decodeDish(doc)
}

// AddComment appends a comment to the dish.
func (r *PostgresDishRepository) AddComment(ctx context.Context, dishID primitive.ObjectID, comment model.Comment) (bool, error) {
	_, ok, err := r.mutate(ctx, dishID, func(d *model.Dish, now time.Time) bool {
		d.Comments = append(d.Comments, comment)
		d.UpdatedAt = now
		return true
	})
	return ok, err
}

// UpdateComment applies the patch to a comment written by authorID.
func (r *PostgresDishRepository) UpdateComment(ctx context.Context, dishID, commentID, authorID primitive.ObjectID, patch model.CommentPatch) (bool, error) {
	_, ok, err := r.mutate(ctx, dishID, func(d *model.Dish, now time.Time) bool {
		c, found := d.Comments.FindByID(commentID)
		if !found || c.Author != authorID {
			return false
		}
		d.Comments, _ = d.Comments.UpdateByID(commentID, patch, now)
		d.UpdatedAt = now
		return true
	})
	return ok, err
}

// RemoveComment removes a comment written by authorID.
func (r *PostgresDishRepository) RemoveComment(ctx context.Context, dishID, commentID, authorID primitive.ObjectID) (bool, error) {
	_, ok, err := r.mutate(ctx, dishID, func(d *model.Dish, now time.Time) bool {
		c, found := d.Comments.FindByID(commentID)
		if !found || c.Author != authorID {
			return false
		}
		d.Comments, _ = d.Comments.RemoveByID(commentID)
		d.UpdatedAt = now
		return true
	})
	return ok, err
}

// ClearComments removes every comment from the dish.
func (r *PostgresDishRepository) ClearComments(ctx context.Context, dishID primitive.ObjectID) (bool, error) {
	_, ok, err := r.mutate(ctx, dishID, func(d *model.Dish, now time.Time) bool {
		d.Comments = model.Comments{}
		d.UpdatedAt = now
		return true
	})
	return ok, err
}

// mutate loads the dish row under FOR UPDATE, lets fn change it and writes
// it back in the same transaction. When fn returns false nothing is
// written. A missing dish yields (nil, false, nil).
func (r *PostgresDishRepository) mutate(ctx context.Context, id primitive.ObjectID, fn func(*model.Dish, time.Time) bool) (*model.Dish, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			r.logger.Error().Err(err).Msg("failed to rollback transaction")
		}
	}()

	var doc []byte
	err = tx.QueryRow(ctx, `SELECT doc FROM dishes WHERE id = $1 FOR UPDATE`, id.Hex()).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to lock dish: %w", err)
	}

	d, err := decodeDish(doc)
	if err != nil {
		return nil, false, err
	}
	if !fn(d, r.now()) {
		return nil, false, nil
	}

	doc, err = json.Marshal(d)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode dish: %w", err)
	}

	_, err = tx.Exec(ctx, `UPDATE dishes SET name = $2, doc = $3 WHERE id = $1`, id.Hex(), d.Name, doc)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, false, ErrDuplicateName
		}
		r.logger.Error().Err(err).Str("dish_id", id.Hex()).Msg("failed to write dish")
		return nil, false, fmt.Errorf("failed to write dish: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit transaction")
		return nil, false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return d, true, nil
}

func decodeDish(doc []byte) (*model.Dish, error) {
	var d model.Dish
	if err := json.Unmarshal(doc, &d); err != nil {
		return nil, fmt.Errorf("failed to decode dish: %w", err)
	}
	if d.Comments == nil {
		d.Comments = model.Comments{}
	}
	return &d, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

package repository

import (
	"context"
	"time"

	"dishes-api/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store-side bounds on a single repository call.
const (
	readTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
)

// DishRepository defines the interface for dish data access operations.
//
// Lookups of a single dish return (nil, nil) when the dish does not exist.
// Comment mutations report whether a matching dish (and, where an author
// is given, a comment owned by that author) was found and changed.
type DishRepository interface {
	// GetAll retrieves every dish.
	GetAll(ctx context.Context) ([]model.Dish, error)

	// GetByID retrieves a single dish by its ID.
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Dish, error)

	// Count returns the number of stored dishes.
	Count(ctx context.Context) (int64, error)

	// Create inserts a new dish, assigning any missing identifiers.
	Create(ctx context.Context, dish *model.Dish) error

	// Update merges the patch into the dish and returns the updated dish.
	Update(ctx context.Context, id primitive.ObjectID, patch model.DishPatch) (*model.Dish, error)

	// DeleteAll removes every dish and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)

	// Delete removes a dish and returns the removed document.
	Delete(ctx context.Context, id primitive.ObjectID) (*model.Dish, error)

	// AddComment appends a comment to the dish.
	AddComment(ctx context.Context, dishID primitive.ObjectID, comment model.Comment) (bool, error)

	// UpdateComment applies the patch to a comment written by authorID.
	UpdateComment(ctx context.Context, dishID, commentID, authorID primitive.ObjectID, patch model.CommentPatch) (bool, error)

	// RemoveComment removes a comment written by authorID.
	RemoveComment(ctx context.Context, dishID, commentID, authorID primitive.ObjectID) (bool, error)

	// ClearComments removes every comment from the dish.
	ClearComments(ctx context.Context, dishID primitive.ObjectID) (bool, error)
}

// UserRepository defines the interface for reading user records.
type UserRepository interface {
	// GetByID retrieves a single user, or nil when it does not exist.
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)

	// GetByIDs retrieves the users that exist among ids.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.User, error)

	// Save inserts or replaces a user.
	Save(ctx context.Context, user *model.User) error
}

// Pinger reports whether the underlying store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

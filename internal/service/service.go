package service

import (
	"context"

	"dishes-api/internal/model"
)

// DishService defines operations on the dish collection.
type DishService interface {
	// List retrieves every dish with comment authors expanded.
	List(ctx context.Context) ([]model.DishView, error)

	// Create validates and stores a new dish.
	Create(ctx context.Context, req model.DishRequest) (*model.Dish, error)

	// DeleteAll removes every dish.
	DeleteAll(ctx context.Context) (*model.DeleteResult, error)

	// Get retrieves a single dish with comment authors expanded.
	Get(ctx context.Context, id string) (*model.DishView, error)

	// Update merges the provided fields into a dish.
	Update(ctx context.Context, id string, patch model.DishPatch) (*model.Dish, error)

	// Delete removes a dish and returns it.
	Delete(ctx context.Context, id string) (*model.Dish, error)
}

// CommentService defines operations on the comments embedded in a dish.
type CommentService interface {
	// List retrieves the expanded comments of a dish.
	List(ctx context.Context, dishID string) ([]model.CommentView, error)

	// Add appends a comment written by the caller and returns the dish.
	Add(ctx context.Context, caller model.Identity, dishID string, req model.CommentRequest) (*model.DishView, error)

	// DeleteAll removes every comment of a dish and returns the dish.
	DeleteAll(ctx context.Context, dishID string) (*model.DishView, error)

	// Get retrieves a single expanded comment.
	Get(ctx context.Context, dishID, commentID string) (*model.CommentView, error)

	// Update changes a comment owned by the caller and returns the dish.
	Update(ctx context.Context, caller model.Identity, dishID, commentID string, patch model.CommentPatch) (*model.DishView, error)

	// Delete removes a comment owned by the caller and returns the dish.
	Delete(ctx context.Context, caller model.Identity, dishID, commentID string) (*model.DishView, error)
}

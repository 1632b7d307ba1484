package repository

import (
	"context"
	"fmt"

	"dishes-api/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Expander reads dishes and resolves the author reference of every
// comment against the users collection.
type Expander struct {
	dishes DishRepository
	users  UserRepository
}

// NewExpander creates an expander over the given repositories.
func NewExpander(dishes DishRepository, users UserRepository) *Expander {
	return &Expander{
		dishes: dishes,
		users:  users,
	}
}

// GetDishExpanded loads one dish with its comment authors resolved.
// It returns (nil, nil) when the dish does not exist.
func (e *Expander) GetDishExpanded(ctx context.Context, id primitive.ObjectID) (*model.DishView, error) {
	dish, err := e.dishes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, nil
	}

	views, err := e.Expand(ctx, *dish)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListDishesExpanded loads every dish with comment authors resolved.
func (e *Expander) ListDishesExpanded(ctx context.Context) ([]model.DishView, error) {
	dishes, err := e.dishes.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return e.Expand(ctx, dishes...)
}

// Expand resolves comment authors of already loaded dishes with a single
// users lookup.
func (e *Expander) Expand(ctx context.Context, dishes ...model.Dish) ([]model.DishView, error) {
	index := make(map[primitive.ObjectID]model.User)

	if ids := model.AuthorIDs(dishes...); len(ids) > 0 {
		users, err := e.users.GetByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve comment authors: %w", err)
		}
		for _, u := range users {
			index[u.ID] = u
		}
	}

	views := make([]model.DishView, 0, len(dishes))
	for _, d := range dishes {
		views = append(views, model.NewDishView(d, index))
	}
	return views, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"dishes-api/internal/model"
	"dishes-api/internal/repository"

	"github.com/rs/zerolog"
)

// dishService implements DishService.
type dishService struct {
	dishRepo repository.DishRepository
	expander *repository.Expander
	logger   zerolog.Logger
	now      func() time.Time
}

// NewDishService creates a new dish service.
func NewDishService(dishRepo repository.DishRepository, userRepo repository.UserRepository, logger zerolog.Logger) DishService {
	return &dishService{
		dishRepo: dishRepo,
		expander: repository.NewExpander(dishRepo, userRepo),
		logger:   logger.With().Str("service", "dish").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// List retrieves every dish with comment authors expanded.
func (s *dishService) List(ctx context.Context) ([]model.DishView, error) {
	dishes, err := s.expander.ListDishesExpanded(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list dishes")
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}

	s.logger.Debug().Int("count", len(dishes)).Msg("retrieved dishes")
	return dishes, nil
}

// Create validates and stores a new dish.
func (s *dishService) Create(ctx context.Context, req model.DishRequest) (*model.Dish, error) {
	if err := validatePayload(req); err != nil {
		s.logger.Warn().Err(err).Msg("invalid dish payload")
		return nil, err
	}

	dish := model.NewDish(req, s.now())
	if err := s.dishRepo.Create(ctx, dish); err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to create dish")
		return nil, fmt.Errorf("failed to create dish: %w", err)
	}

	s.logger.Info().Str("dish_id", dish.ID.Hex()).Msg("dish created")
	return dish, nil
}

// DeleteAll removes every dish.
func (s *dishService) DeleteAll(ctx context.Context) (*model.DeleteResult, error) {
	n, err := s.dishRepo.DeleteAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to delete dishes")
		return nil, fmt.Errorf("failed to delete dishes: %w", err)
	}

	s.logger.Info().Int64("deleted", n).Msg("dishes deleted")
	return &model.DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}

// Get retrieves a single dish with comment authors expanded.
func (s *dishService) Get(ctx context.Context, id string) (*model.DishView, error) {
	oid, ok := model.ParseID(id)
	if !ok {
		s.logger.Debug().Str("dish_id", id).Msg("malformed dish ID")
		return nil, model.ErrDishNotFound(id)
	}

	view, err := s.expander.GetDishExpanded(ctx, oid)
	if err != nil {
		s.logger.Error().Err(err).Str("dish_id", id).Msg("failed to get dish")
		return nil, fmt.Errorf("failed to get dish: %w", err)
	}
	if view == nil {
		return nil, model.ErrDishNotFound(id)
	}
	return view, nil
}

// Update merges the provided fields into a dish.
func (s *dishService) Update(ctx context.Context, id string, patch model.DishPatch) (*model.Dish, error) {
	oid, ok := model.ParseID(id)
	if !ok {
		return nil, model.ErrDishNotFound(id)
	}
	if err := validatePayload(patch); err != nil {
		s.logger.Warn().Err(err).Str("dish_id", id).Msg("invalid dish patch")
		return nil, err
	}

	dish, err := s.dishRepo.Update(ctx, oid, patch)
	if err != nil {
		s.logger.Error().Err(err).Str("dish_id", id).Msg("failed to update dish")
		return nil, fmt.Errorf("failed to update dish: %w", err)
	}
	if dish == nil {
		return nil, model.ErrDishNotFound(id)
	}

	s.logger.Info().Str("dish_id", id).Msg("dish updated")
	return dish, nil
}

// Delete removes a dish and returns it.
func (s *dishService) Delete(ctx context.Context, id string) (*model.Dish, error) {
	oid, ok := model.ParseID(id)
	if !ok {
		return nil, model.ErrDishNotFound(id)
	}

	dish, err := s.dishRepo.Delete(ctx, oid)
	if err != nil {
		s.logger.Error().Err(err).Str("dish_id", id).Msg("failed to delete dish")
		return nil, fmt.Errorf("failed to delete dish: %w", err)
	}
	if dish == nil {
		return nil, model.ErrDishNotFound(id)
	}

	s.logger.Info().Str("dish_id", id).Msg("dish deleted")
	return dish, nil
}

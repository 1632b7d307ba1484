package service

import (
	"context"
	"fmt"
	"time"

	"dishes-api/internal/model"
	"dishes-api/internal/repository"

	"github.com/rs/zerolog"
)

// commentService implements CommentService.
type commentService struct {
	dishRepo repository.DishRepository
	expander *repository.Expander
	logger   zerolog.Logger
	now      func() time.Time
}

// NewCommentService creates a new comment service.
func NewCommentService(dishRepo repository.DishRepository, userRepo repository.UserRepository, logger zerolog.Logger) CommentService {
	return &commentService{
		dishRepo: dishRepo,
		expander: repository.NewExpander(dishRepo, userRepo),
		logger:   logger.With().Str("service", "comment").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// List retrieves the expanded comments of a dish.
func (s *commentService) List(ctx context.Context, dishID string) ([]model.CommentView, error) {
	view, err := s.expanded(ctx, dishID)
	if err != nil {
		return nil, err
	}
	return view.Comments, nil
}

// Add appends a comment written by the caller. Whatever author the client
// may have sent is ignored.
func (s *commentService) Add(ctx context.Context, caller model.Identity, dishID string, req model.CommentRequest) (*model.DishView, error) {
	dish, err := s.load(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if err := validatePayload(req); err != nil {
		s.logger.Warn().Err(err).Str("dish_id", dishID).Msg("invalid comment payload")
		return nil, err
	}

	comment := model.NewComment(req, caller.UserID, s.now())
	ok, err := s.dishRepo.AddComment(ctx, dish.ID, comment)
	if err != nil {
		s.logger.Error().Err(err).Str("dish_id", dishID).Msg("failed to add comment")
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	if !ok {
		return nil, model.ErrDishNotFound(dishID)
	}

	s.logger.Info().
		Str("dish_id", dishID).
		Str("comment_id", comment.ID.Hex()).
		Str("author", caller.UserID.Hex()).
		Msg("comment added")

	return s.expanded(ctx, dishID)
}

// DeleteAll removes every comment of a dish. Repeating it is harmless.
func (s *commentService) DeleteAll(ctx context.Context, dishID string) (*model.DishView, error) {
	dish, err := s.load(ctx, dishID)
	if err != nil {
		return nil, err
	}

	ok, err := s.dishRepo.ClearComments(ctx, dish.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("dish_id", dishID).Msg("failed to clear comments")
		return nil, fmt.Errorf("failed to clear comments: %w", err)
	}
	if !ok {
		return nil, model.ErrDishNotFound(dishID)
	}

	s.logger.Info().Str("dish_id", dishID).Int("removed", len(dish.Comments)).Msg("comments cleared")
	return s.expanded(ctx, dishID)
}

// Get retrieves a single expanded comment.
func (s *commentService) Get(ctx context.Context, dishID, commentID string) (*model.CommentView, error) {
	dish, err := s.load(ctx, dishID)
	if err != nil {
		return nil, err
	}

	comment, err := findComment(dish, commentID)
	if err != nil {
		return nil, err
	}

	views, err := s.expander.Expand(ctx, model.Dish{Comments: model.Comments{comment}})
	if err != nil {
		s.logger.Error().Err(err).Str("dish_id", dishID).Msg("failed to expand comment")
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &views[0].Comments[0], nil
}

// Update changes a comment owned by the caller.
func (s *commentService) Update(ctx context.Context, caller model.Identity, dishID, commentID string, patch model.CommentPatch) (*model.DishView, error) {
	dish, err := s.load(ctx, dishID)
	if err != nil {
		return nil, err
	}

	comment, err := findComment(dish, commentID)
	if err != nil {
		return nil, err
	}
	if comment.Author != caller.UserID {
		s.logger.Warn().
			Str("comment_id", commentID).
			Str("caller", caller.UserID.Hex()).
			Msg("rejected update of another user's comment")
		return nil, model.ErrNotCommentAuthor
	}
	if err := validatePayload(patch); err != nil {
		return nil, err
	}

	ok, err := s.dishRepo.UpdateComment(ctx, dish.ID, comment.ID, caller.UserID, patch)
	if err != nil {
		s.logger.Error().Err(err).Str("comment_id", commentID).Msg("failed to update comment")
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	if !ok {
		return nil, model.ErrCommentNotFound(commentID)
	}

	s.logger.Info().Str("dish_id", dishID).Str("comment_id", commentID).Msg("comment updated")
	return s.expanded(ctx, dishID)
}

// Delete removes a comment owned by the caller.
func (s *commentService) Delete(ctx context.Context, caller model.Identity, dishID, commentID string) (*model.DishView, error) {
	dish, err := s.load(ctx, dishID)
	if err != nil {
		return nil, err
	}

	comment, err := findComment(dish, commentID)
	if err != nil {
		return nil, err
	}
	if comment.Author != caller.UserID {
		s.logger.Warn().
			Str("comment_id", commentID).
			Str("caller", caller.UserID.Hex()).
			Msg("rejected delete of another user's comment")
		return nil, model.ErrNotCommentAuthorDelete
	}

	ok, err := s.dishRepo.RemoveComment(ctx, dish.ID, comment.ID, caller.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("comment_id", commentID).Msg("failed to delete comment")
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}
	if !ok {
		return nil, model.ErrCommentNotFound(commentID)
	}

	s.logger.Info().Str("dish_id", dishID).Str("comment_id", commentID).Msg("comment deleted")
	return s.expanded(ctx, dishID)
}

// load fetches the raw dish or fails with a not-found error.
func (s *commentService) load(ctx context.Context, dishID string) (*model.Dish, error) {
	oid, ok := model.ParseID(dishID)
	if !ok {
		return nil, model.ErrDishNotFound(dishID)
	}

	dish, err := s.dishRepo.GetByID(ctx, oid)
	if err != nil {
		s.logger.Error().Err(err).Str("dish_id", dishID).Msg("failed to get dish")
		return nil, fmt.Errorf("failed to get dish: %w", err)
	}
	if dish == nil {
		return nil, model.ErrDishNotFound(dishID)
	}
	return dish, nil
}

// expanded reloads the dish with its comment authors resolved.
func (s *commentService) expanded(ctx context.Context, dishID string) (*model.DishView, error) {
	oid, ok := model.ParseID(dishID)
	if !ok {
		return nil, model.ErrDishNotFound(dishID)
	}

	view, err := s.expander.GetDishExpanded(ctx, oid)
	if err != nil {
		s.logger.Error().Err(err).Str("dish_id", dishID).Msg("failed to load dish")
		return nil, fmt.Errorf("failed to get dish: %w", err)
	}
	if view == nil {
		return nil, model.ErrDishNotFound(dishID)
	}
	return view, nil
}

func findComment(dish *model.Dish, commentID string) (model.Comment, error) {
	cid, ok := model.ParseID(commentID)
	if !ok {
		return model.Comment{}, model.ErrCommentNotFound(commentID)
	}
	comment, found := dish.Comments.FindByID(cid)
	if !found {
		return model.Comment{}, model.ErrCommentNotFound(commentID)
	}
	return comment, nil
}


package handler

import (
	"context"
	"net/http"

	"dishes-api/internal/model"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/mock"
)

// MockDishService is a mock implementation of DishService.
type MockDishService struct {
	mock.Mock
}

func (m *MockDishService) List(ctx context.Context) ([]model.DishView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DishView), args.Error(1)
}

func (m *MockDishService) Create(ctx context.Context, req model.DishRequest) (*model.Dish, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dish), args.Error(1)
}

func (m *MockDishService) DeleteAll(ctx context.Context) (*model.DeleteResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeleteResult), args.Error(1)
}

func (m *MockDishService) Get(ctx context.Context, id string) (*model.DishView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DishView), args.Error(1)
}

func (m *MockDishService) Update(ctx context.Context, id string, patch model.DishPatch) (*model.Dish, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dish), args.Error(1)
}

func (m *MockDishService) Delete(ctx context.Context, id string) (*model.Dish, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dish), args.Error(1)
}

// MockCommentService is a mock implementation of CommentService.
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) List(ctx context.Context, dishID string) ([]model.CommentView, error) {
	args := m.Called(ctx, dishID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CommentView), args.Error(1)
}

func (m *MockCommentService) Add(ctx context.Context, caller model.Identity, dishID string, req model.CommentRequest) (*model.DishView, error) {
	args := m.Called(ctx, caller, dishID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DishView), args.Error(1)
}

func (m *MockCommentService) DeleteAll(ctx context.Context, dishID string) (*model.DishView, error) {
	args := m.Called(ctx, dishID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DishView), args.Error(1)
}

func (m *MockCommentService) Get(ctx context.Context, dishID, commentID string) (*model.CommentView, error) {
	args := m.Called(ctx, dishID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CommentView), args.Error(1)
}

func (m *MockCommentService) Update(ctx context.Context, caller model.Identity, dishID, commentID string, patch model.CommentPatch) (*model.DishView, error) {
	args := m.Called(ctx, caller, dishID, commentID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DishView), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, caller model.Identity, dishID, commentID string) (*model.DishView, error) {
	args := m.Called(ctx, caller, dishID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DishView), args.Error(1)
}

// MockVerifier is a mock implementation of Verifier.
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Authenticate(r *http.Request) (model.Identity, error) {
	args := m.Called(r)
	return args.Get(0).(model.Identity), args.Error(1)
}

func (m *MockVerifier) RequireAdmin(identity model.Identity) error {
	args := m.Called(identity)
	return args.Error(0)
}

// withURLParams attaches chi route parameters to r.
func withURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

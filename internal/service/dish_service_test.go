package service

import (
	"context"
	"errors"
	"testing"

	"dishes-api/internal/model"
	"dishes-api/internal/repository"
	"dishes-api/internal/repository/memory"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func price(v float64) *float64 { return &v }

func validDishRequest(name string) model.DishRequest {
	return model.DishRequest{
		Name:        name,
		Description: "A unique combination of Indian Uthappam and Italian pizza",
		Image:       "images/uthappizza.png",
		Category:    "mains",
		Label:       "Hot",
		Price:       price(4.99),
	}
}

func TestDishService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       model.DishRequest
		wantErr   bool
		wantCode  string
		wantInMsg string
	}{
		{
			name: "valid payload",
			req:  validDishRequest("uthappizza"),
		},
		{
			name:      "missing name",
			req:       validDishRequest(""),
			wantErr:   true,
			wantCode:  model.ErrCodeValidation,
			wantInMsg: "name is required",
		},
		{
			name:      "negative price",
			req:       func() model.DishRequest { r := validDishRequest("x"); r.Price = price(-1); return r }(),
			wantErr:   true,
			wantCode:  model.ErrCodeValidation,
			wantInMsg: "price must be at least 0",
		},
		{
			name:      "missing price",
			req:       func() model.DishRequest { r := validDishRequest("x"); r.Price = nil; return r }(),
			wantErr:   true,
			wantCode:  model.ErrCodeValidation,
			wantInMsg: "price is required",
		},
		{
			name: "zero price is allowed",
			req:  func() model.DishRequest { r := validDishRequest("free"); r.Price = price(0); return r }(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewDishService(memory.NewDishRepository(), memory.NewUserRepository(), zerolog.Nop())

			dish, err := svc.Create(context.Background(), tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, model.HasCode(err, tt.wantCode))
				assert.Contains(t, err.Error(), tt.wantInMsg)
				return
			}

			require.NoError(t, err)
			assert.False(t, dish.ID.IsZero())
			assert.Equal(t, tt.req.Name, dish.Name)
			assert.NotNil(t, dish.Comments)
		})
	}
}

func TestDishService_CreateRepositoryError(t *testing.T) {
	repo := new(MockDishRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Dish")).Return(repository.ErrDuplicateName)

	svc := NewDishService(repo, new(MockUserRepository), zerolog.Nop())

	_, err := svc.Create(context.Background(), validDishRequest("uthappizza"))
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrDuplicateName)

	var de *model.DomainError
	assert.False(t, errors.As(err, &de))
	repo.AssertExpectations(t)
}

func TestDishService_Get(t *testing.T) {
	ctx := context.Background()
	dishes := memory.NewDishRepository()
	svc := NewDishService(dishes, memory.NewUserRepository(), zerolog.Nop())

	created, err := svc.Create(ctx, validDishRequest("uthappizza"))
	require.NoError(t, err)

	t.Run("existing dish", func(t *testing.T) {
		view, err := svc.Get(ctx, created.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, "uthappizza", view.Name)
	})

	t.Run("missing dish", func(t *testing.T) {
		id := primitive.NewObjectID().Hex()
		_, err := svc.Get(ctx, id)
		require.Error(t, err)
		assert.True(t, model.HasCode(err, model.ErrCodeDishNotFound))
		assert.Equal(t, "Dish "+id+" not found", err.Error())
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := svc.Get(ctx, "not-an-id")
		require.Error(t, err)
		assert.Equal(t, "Dish not-an-id not found", err.Error())
	})
}

func TestDishService_GetRepositoryError(t *testing.T) {
	repo := new(MockDishRepository)
	repo.On("GetByID", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	svc := NewDishService(repo, new(MockUserRepository), zerolog.Nop())

	_, err := svc.Get(context.Background(), primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestDishService_List(t *testing.T) {
	ctx := context.Background()
	svc := NewDishService(memory.NewDishRepository(), memory.NewUserRepository(), zerolog.Nop())

	views, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, views)

	for _, name := range []string{"uthappizza", "zucchipakoda"} {
		_, err := svc.Create(ctx, validDishRequest(name))
		require.NoError(t, err)
	}

	views, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestDishService_Update(t *testing.T) {
	ctx := context.Background()
	svc := NewDishService(memory.NewDishRepository(), memory.NewUserRepository(), zerolog.Nop())

	created, err := svc.Create(ctx, validDishRequest("uthappizza"))
	require.NoError(t, err)

	t.Run("merges provided fields only", func(t *testing.T) {
		label := "New"
		updated, err := svc.Update(ctx, created.ID.Hex(), model.DishPatch{Label: &label})
		require.NoError(t, err)
		assert.Equal(t, "New", updated.Label)
		assert.Equal(t, "uthappizza", updated.Name)
		assert.Equal(t, 4.99, updated.Price)
	})

	t.Run("rejects invalid patch", func(t *testing.T) {
		_, err := svc.Update(ctx, created.ID.Hex(), model.DishPatch{Price: price(-3)})
		require.Error(t, err)
		assert.True(t, model.HasCode(err, model.ErrCodeValidation))
	})

	t.Run("missing dish", func(t *testing.T) {
		_, err := svc.Update(ctx, primitive.NewObjectID().Hex(), model.DishPatch{Price: price(1)})
		require.Error(t, err)
		assert.True(t, model.HasCode(err, model.ErrCodeDishNotFound))
	})
}

func TestDishService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := NewDishService(memory.NewDishRepository(), memory.NewUserRepository(), zerolog.Nop())

	created, err := svc.Create(ctx, validDishRequest("uthappizza"))
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	_, err = svc.Delete(ctx, created.ID.Hex())
	require.Error(t, err)
	assert.True(t, model.HasCode(err, model.ErrCodeDishNotFound))
}

func TestDishService_DeleteAll(t *testing.T) {
	ctx := context.Background()
	svc := NewDishService(memory.NewDishRepository(), memory.NewUserRepository(), zerolog.Nop())

	for _, name := range []string{"a", "b", "c"} {
		_, err := svc.Create(ctx, validDishRequest(name))
		require.NoError(t, err)
	}

	res, err := svc.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, &model.DeleteResult{Acknowledged: true, DeletedCount: 3}, res)

	views, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestDishService_DeleteAllRepositoryError(t *testing.T) {
	repo := new(MockDishRepository)
	repo.On("DeleteAll", mock.Anything).Return(int64(0), errors.New("timeout"))

	svc := NewDishService(repo, new(MockUserRepository), zerolog.Nop())

	_, err := svc.DeleteAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
	repo.AssertExpectations(t)
}

package repository

import (
	"context"
	"testing"
	"time"

	"dishes-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleDish(name string) *model.Dish {
	return &model.Dish{
		Name:        name,
		Description: "A unique combination of Indian Uthappam and Italian pizza",
		Image:       "images/" + name + ".png",
		Category:    "mains",
		Label:       "Hot",
		Price:       4.99,
	}
}

// runDishRepositoryContract exercises behaviour every backend must share.
func runDishRepositoryContract(t *testing.T, repo DishRepository, users UserRepository) {
	ctx := context.Background()
	author := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	reset := func(t *testing.T) {
		t.Helper()
		_, err := repo.DeleteAll(ctx)
		require.NoError(t, err)
	}

	t.Run("Create assigns identifiers", func(t *testing.T) {
		reset(t)

		dish := sampleDish("uthappizza")
		require.NoError(t, repo.Create(ctx, dish))
		assert.False(t, dish.ID.IsZero())

		got, err := repo.GetByID(ctx, dish.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "uthappizza", got.Name)
		assert.Equal(t, 4.99, got.Price)
		assert.Empty(t, got.Comments)
	})

	t.Run("Create rejects duplicate names", func(t *testing.T) {
		reset(t)

		require.NoError(t, repo.Create(ctx, sampleDish("zucchipakoda")))
		err := repo.Create(ctx, sampleDish("zucchipakoda"))
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("GetByID returns nil for non-existent dish", func(t *testing.T) {
		reset(t)

		got, err := repo.GetByID(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("GetAll and Count", func(t *testing.T) {
		reset(t)

		for _, name := range []string{"a", "b", "c"} {
			require.NoError(t, repo.Create(ctx, sampleDish(name)))
			time.Sleep(2 * time.Millisecond)
		}

		dishes, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, dishes, 3)
		assert.Equal(t, "a", dishes[0].Name)

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	t.Run("Update merges provided fields", func(t *testing.T) {
		reset(t)

		dish := sampleDish("vadonut")
		require.NoError(t, repo.Create(ctx, dish))

		featured := true
		updated, err := repo.Update(ctx, dish.ID, model.DishPatch{Featured: &featured})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.True(t, updated.Featured)
		assert.Equal(t, "vadonut", updated.Name)
		assert.Equal(t, "Hot", updated.Label)

		missing, err := repo.Update(ctx, primitive.NewObjectID(), model.DishPatch{Featured: &featured})
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Delete returns the removed dish", func(t *testing.T) {
		reset(t)

		dish := sampleDish("elaicheesecake")
		require.NoError(t, repo.Create(ctx, dish))

		removed, err := repo.Delete(ctx, dish.ID)
		require.NoError(t, err)
		require.NotNil(t, removed)
		assert.Equal(t, dish.ID, removed.ID)

		again, err := repo.Delete(ctx, dish.ID)
		require.NoError(t, err)
		assert.Nil(t, again)
	})

	t.Run("DeleteAll reports the removed count", func(t *testing.T) {
		reset(t)

		require.NoError(t, repo.Create(ctx, sampleDish("a")))
		require.NoError(t, repo.Create(ctx, sampleDish("b")))

		n, err := repo.DeleteAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("comment lifecycle honours ownership", func(t *testing.T) {
		reset(t)

		dish := sampleDish("a")
		require.NoError(t, repo.Create(ctx, dish))

		c := model.NewComment(model.CommentRequest{Rating: 4, Comment: "nice"}, author, time.Now().UTC())
		ok, err := repo.AddComment(ctx, dish.ID, c)
		require.NoError(t, err)
		require.True(t, ok)

		rating := 2
		text := "changed my mind"

		ok, err = repo.UpdateComment(ctx, dish.ID, c.ID, stranger, model.CommentPatch{Rating: &rating})
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = repo.UpdateComment(ctx, dish.ID, c.ID, author, model.CommentPatch{Rating: &rating, Comment: &text})
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := repo.GetByID(ctx, dish.ID)
		require.NoError(t, err)
		require.Len(t, got.Comments, 1)
		assert.Equal(t, 2, got.Comments[0].Rating)
		assert.Equal(t, text, got.Comments[0].Comment)
		assert.Equal(t, author, got.Comments[0].Author)

		ok, err = repo.RemoveComment(ctx, dish.ID, c.ID, stranger)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = repo.RemoveComment(ctx, dish.ID, c.ID, author)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err = repo.GetByID(ctx, dish.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Comments)
	})

	t.Run("ClearComments is idempotent", func(t *testing.T) {
		reset(t)

		dish := sampleDish("a")
		require.NoError(t, repo.Create(ctx, dish))
		for i := 0; i < 2; i++ {
			c := model.NewComment(model.CommentRequest{Rating: 3, Comment: "ok"}, author, time.Now().UTC())
			_, err := repo.AddComment(ctx, dish.ID, c)
			require.NoError(t, err)
		}

		for i := 0; i < 2; i++ {
			ok, err := repo.ClearComments(ctx, dish.ID)
			require.NoError(t, err)
			assert.True(t, ok)
		}

		got, err := repo.GetByID(ctx, dish.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Comments)

		ok, err := repo.ClearComments(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("users save and lookup", func(t *testing.T) {
		alice := &model.User{ID: primitive.NewObjectID(), Username: "alice"}
		require.NoError(t, users.Save(ctx, alice))

		alice.Admin = true
		require.NoError(t, users.Save(ctx, alice))

		got, err := users.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.Admin)

		found, err := users.GetByIDs(ctx, []primitive.ObjectID{alice.ID, primitive.NewObjectID()})
		require.NoError(t, err)
		assert.Len(t, found, 1)

		missing, err := users.GetByID(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

// Package memory provides in-process dish and user stores. They back the
// API when no database is configured and are used throughout the tests.
package memory

import (
	"context"
	"sync"
	"time"

	"dishes-api/internal/model"
	"dishes-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DishRepository is a mutex-guarded dish store that keeps insertion order.
type DishRepository struct {
	mu     sync.RWMutex
	order  []primitive.ObjectID
	dishes map[primitive.ObjectID]model.Dish
	now    func() time.Time
}

var _ repository.DishRepository = (*DishRepository)(nil)

// NewDishRepository creates an empty dish store.
func NewDishRepository() *DishRepository {
	return &DishRepository{
		dishes: make(map[primitive.ObjectID]model.Dish),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Ping always succeeds.
func (r *DishRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// GetAll returns copies of every dish.
func (r *DishRepository) GetAll(ctx context.Context) ([]model.Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Dish, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.dishes[id].Clone())
	}
	return out, nil
}

// GetByID returns a copy of the dish, or nil when absent.
func (r *DishRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.dishes[id]
	if !ok {
		return nil, nil
	}
	out := d.Clone()
	return &out, nil
}

// Count returns the number of stored dishes.
func (r *DishRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.order)), nil
}

// Create stores a copy of the dish.
func (r *DishRepository) Create(ctx context.Context, dish *model.Dish) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dish.Normalize(r.now())
	if r.nameTaken(dish.Name, primitive.NilObjectID) {
		return repository.ErrDuplicateName
	}

	r.dishes[dish.ID] = dish.Clone()
	r.order = append(r.order, dish.ID)
	return nil
}

// Update merges the patch into the stored dish.
func (r *DishRepository) Update(ctx context.Context, id primitive.ObjectID, patch model.DishPatch) (*model.Dish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.dishes[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil && r.nameTaken(*patch.Name, id) {
		return nil, repository.ErrDuplicateName
	}

	d = d.Clone()
	patch.Apply(&d, r.now())
	r.dishes[id] = d

	out := d.Clone()
	return &out, nil
}

// DeleteAll empties the store.
func (r *DishRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.order))
	r.order = nil
	r.dishes = make(map[primitive.ObjectID]model.Dish)
	return n, nil
}

// Delete removes the dish and returns it.
func (r *DishRepository) Delete(ctx context.Context, id primitive.ObjectID) (*model.Dish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.dishes[id]
	if !ok {
		return nil, nil
	}
	delete(r.dishes, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	return &d, nil
}

// AddComment appends a comment to the dish.
func (r *DishRepository) AddComment(ctx context.Context, dishID primitive.ObjectID, comment model.Comment) (bool, error) {
	return r.mutate(dishID, func(d *model.Dish, now time.Time) bool {
		d.Comments = append(d.Comments, comment)
		d.UpdatedAt = now
		return true
	}), nil
}

// UpdateComment applies the patch to a comment written by authorID.
func (r *DishRepository) UpdateComment(ctx context.Context, dishID, commentID, authorID primitive.ObjectID, patch model.CommentPatch) (bool, error) {
	return r.mutate(dishID, func(d *model.Dish, now time.Time) bool {
		c, ok := d.Comments.FindByID(commentID)
		if !ok || c.Author != authorID {
			return false
		}
		d.Comments, _ = d.Comments.UpdateByID(commentID, patch, now)
		d.UpdatedAt = now
		return true
	}), nil
}

// RemoveComment removes a comment written by authorID.
func (r *DishRepository) RemoveComment(ctx context.Context, dishID, commentID, authorID primitive.ObjectID) (bool, error) {
	return r.mutate(dishID, func(d *model.Dish, now time.Time) bool {
		c, ok := d.Comments.FindByID(commentID)
		if !ok || c.Author != authorID {
			return false
		}
		d.Comments, _ = d.Comments.RemoveByID(commentID)
		d.UpdatedAt = now
		return true
	}), nil
}

// ClearComments removes every comment from the dish.
func (r *DishRepository) ClearComments(ctx context.Context, dishID primitive.ObjectID) (bool, error) {
	return r.mutate(dishID, func(d *model.Dish, now time.Time) bool {
		d.Comments = model.Comments{}
		d.UpdatedAt = now
		return true
	}), nil
}

func (r *DishRepository) mutate(id primitive.ObjectID, fn func(*model.Dish, time.Time) bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.dishes[id]
	if !ok {
		return false
	}
	d = d.Clone()
	if !fn(&d, r.now()) {
		return false
	}
	r.dishes[id] = d
	return true
}

// nameTaken must be called with mu held.
func (r *DishRepository) nameTaken(name string, except primitive.ObjectID) bool {
	for id, d := range r.dishes {
		if id != except && d.Name == name {
			return true
		}
	}
	return false
}

// UserRepository is a mutex-guarded user store.
type UserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]model.User
}

var _ repository.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a user store holding the given users.
func NewUserRepository(users ...model.User) *UserRepository {
	r := &UserRepository{users: make(map[primitive.ObjectID]model.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

// GetByID returns the user, or nil when absent.
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// GetByIDs returns the known users among ids, in the order requested.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// Save inserts or replaces the user.
func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = *user
	return nil
}

// Delete removes a user. Comments they wrote keep the dangling reference.
func (r *UserRepository) Delete(id primitive.ObjectID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

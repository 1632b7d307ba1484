package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dishes-api/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DishesCollection is the collection holding dish documents.
const DishesCollection = "dishes"

// MongoDishRepository implements DishRepository on a MongoDB collection.
type MongoDishRepository struct {
	coll   *mongo.Collection
	logger zerolog.Logger
	now    func() time.Time
}

// NewMongoDishRepository creates a MongoDB-backed dish repository.
func NewMongoDishRepository(db *mongo.Database, logger zerolog.Logger) *MongoDishRepository {
	return &MongoDishRepository{
		coll:   db.Collection(DishesCollection),
		logger: logger.With().Str("repository", "dish").Logger(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// EnsureIndexes creates the unique index on dish names.
func (r *MongoDishRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("dishes_name_unique"),
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to create dish indexes")
		return fmt.Errorf("failed to create dish indexes: %w", err)
	}
	return nil
}

// GetAll retrieves every dish in insertion order.
func (r *MongoDishRepository) GetAll(ctx context.Context) ([]model.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query dishes")
		return nil, fmt.Errorf("failed to query dishes: %w", err)
	}
	defer cursor.Close(ctx)

	dishes := []model.Dish{}
	if err := cursor.All(ctx, &dishes); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode dishes")
		return nil, fmt.Errorf("failed to decode dishes: %w", err)
	}
	return dishes, nil
}

// GetByID retrieves a single dish by its ID.
func (r *MongoDishRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var d model.Dish
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("dish_id", id.Hex()).Msg("dish not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("dish_id", id.Hex()).Msg("failed to query dish")
		return nil, fmt.Errorf("failed to query dish: %w", err)
	}
	return &d, nil
}

// Count returns the number of stored dishes.
func (r *MongoDishRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count dishes: %w", err)
	}
	return n, nil
}

// Create inserts a new dish.
func (r *MongoDishRepository) Create(ctx context.Context, dish *model.Dish) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	dish.Normalize(r.now())

	if _, err := r.coll.InsertOne(ctx, dish); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateName
		}
		r.logger.Error().Err(err).Str("name", dish.Name).Msg("failed to insert dish")
		return fmt.Errorf("failed to insert dish: %w", err)
	}

	r.logger.Info().Str("dish_id", dish.ID.Hex()).Str("name", dish.Name).Msg("dish created")
	return nil
}

// Update applies the patched fields with a single $set and returns the
// dish as stored afterwards.
func (r *MongoDishRepository) Update(ctx context.Context, id primitive.ObjectID, patch model.DishPatch) (*model.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	set := bson.M{"updatedAt": r.now()}
	for k, v := range patch.Fields() {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var d model.Dish
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		r.logger.Error().Err(err).Str("dish_id", id.Hex()).Msg("failed to update dish")
		return nil, fmt.Errorf("failed to update dish: %w", err)
	}
	return &d, nil
}

// DeleteAll removes every dish.
func (r *MongoDishRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to delete dishes")
		return 0, fmt.Errorf("failed to delete dishes: %w", err)
	}

	r.logger.Info().Int64("deleted", res.DeletedCount).Msg("dishes deleted")
	return res.DeletedCount, nil
}

// Delete removes a dish and returns the removed document.
func (r *MongoDishRepository) Delete(ctx context.Context, id primitive.ObjectID) (*model.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	var d model.Dish
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("dish_id", id.Hex()).Msg("failed to delete dish")
		return nil, fmt.Errorf("failed to delete dish: %w", err)
	}
	return &d, nil
}

// AddComment pushes a comment onto the dish.
func (r *MongoDishRepository) AddComment(ctx context.Context, dishID primitive.ObjectID, comment model.Comment) (bool, error) {
	update := bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updatedAt": r.now()},
	}
	return r.updateOne(ctx, bson.M{"_id": dishID}, update, "add comment")
}

// UpdateComment sets the patched fields on the matched array element.
// The filter carries the ownership condition so the write cannot land on
// a comment by another author.
func (r *MongoDishRepository) UpdateComment(ctx context.Context, dishID, commentID, authorID primitive.ObjectID, patch model.CommentPatch) (bool, error) {
	now := r.now()
	set := bson.M{
		"updatedAt":            now,
		"comments.$.updatedAt": now,
	}
	if patch.Rating != nil {
		set["comments.$.rating"] = *patch.Rating
	}
	if patch.Comment != nil {
		set["comments.$.comment"] = *patch.Comment
	}

	return r.updateOne(ctx, ownedCommentFilter(dishID, commentID, authorID), bson.M{"$set": set}, "update comment")
}

// RemoveComment pulls the comment owned by authorID out of the dish.
func (r *MongoDishRepository) RemoveComment(ctx context.Context, dishID, commentID, authorID primitive.ObjectID) (bool, error) {
	update := bson.M{
		"$pull": bson.M{"comments": bson.M{"_id": commentID, "author": authorID}},
		"$set":  bson.M{"updatedAt": r.now()},
	}
	return r.updateOne(ctx, ownedCommentFilter(dishID, commentID, authorID), update, "remove comment")
}

// ClearComments empties the comment list of the dish.
func (r *MongoDishRepository) ClearComments(ctx context.Context, dishID primitive.ObjectID) (bool, error) {
	update := bson.M{"$set": bson.M{"comments": bson.A{}, "updatedAt": r.now()}}
	return r.updateOne(ctx, bson.M{"_id": dishID}, update, "clear comments")
}

func (r *MongoDishRepository) updateOne(ctx context.Context, filter, update bson.M, op string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.Error().Err(err).Str("op", op).Msg("dish update failed")
		return false, fmt.Errorf("failed to %s: %w", op, err)
	}
	return res.MatchedCount > 0, nil
}

func ownedCommentFilter(dishID, commentID, authorID primitive.ObjectID) bson.M {
	return bson.M{
		"_id": dishID,
		"comments": bson.M{"$elemMatch": bson.M{
			"_id":    commentID,
			"author": authorID,
		}},
	}
}

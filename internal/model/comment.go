package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a rating left on a dish by a user.
type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Rating    int                `json:"rating" bson:"rating"`
	Comment   string             `json:"comment" bson:"comment"`
	Author    primitive.ObjectID `json:"author" bson:"author"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CommentRequest represents the request payload for adding a comment.
// The author is always the caller, so the payload carries no author field.
type CommentRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

// NewComment builds a comment authored by author.
func NewComment(req CommentRequest, author primitive.ObjectID, now time.Time) Comment {
	return Comment{
		ID:        primitive.NewObjectID(),
		Rating:    req.Rating,
		Comment:   req.Comment,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CommentPatch holds the updatable fields of a comment.
type CommentPatch struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,min=1"`
}

// Apply merges the patch into c. The author is never touched.
func (p CommentPatch) Apply(c *Comment, now time.Time) {
	if p.Rating != nil {
		c.Rating = *p.Rating
	}
	if p.Comment != nil {
		c.Comment = *p.Comment
	}
	c.UpdatedAt = now
}

// Comments is the ordered list of comments embedded in a dish.
type Comments []Comment

// FindByID returns the comment with the given id.
func (cs Comments) FindByID(id primitive.ObjectID) (Comment, bool) {
	for _, c := range cs {
		if c.ID == id {
			return c, true
		}
	}
	return Comment{}, false
}

// UpdateByID returns a copy of cs with the patch applied to the comment
// identified by id. The boolean reports whether the comment was found.
func (cs Comments) UpdateByID(id primitive.ObjectID, patch CommentPatch, now time.Time) (Comments, bool) {
	out := make(Comments, len(cs))
	copy(out, cs)
	for i := range out {
		if out[i].ID == id {
			patch.Apply(&out[i], now)
			return out, true
		}
	}
	return out, false
}

// RemoveByID returns a copy of cs without the comment identified by id,
// preserving the order of the remaining comments.
func (cs Comments) RemoveByID(id primitive.ObjectID) (Comments, bool) {
	out := make(Comments, 0, len(cs))
	found := false
	for _, c := range cs {
		if c.ID == id && !found {
			found = true
			continue
		}
		out = append(out, c)
	}
	return out, found
}

package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentView is a comment with its author reference expanded.
// Author is nil when the referenced user no longer exists.
type CommentView struct {
	ID        primitive.ObjectID `json:"id"`
	Rating    int                `json:"rating"`
	Comment   string             `json:"comment"`
	Author    *User              `json:"author"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// DishView is a dish whose comment authors have been expanded.
type DishView struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Image       string             `json:"image"`
	Category    string             `json:"category"`
	Label       string             `json:"label"`
	Price       float64            `json:"price"`
	Featured    bool               `json:"featured"`
	Comments    []CommentView      `json:"comments"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// NewCommentView expands c using the users index.
func NewCommentView(c Comment, users map[primitive.ObjectID]User) CommentView {
	v := CommentView{
		ID:        c.ID,
		Rating:    c.Rating,
		Comment:   c.Comment,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if u, ok := users[c.Author]; ok {
		author := u
		v.Author = &author
	}
	return v
}

// NewDishView expands every comment of d using the users index.
func NewDishView(d Dish, users map[primitive.ObjectID]User) DishView {
	comments := make([]CommentView, 0, len(d.Comments))
	for _, c := range d.Comments {
		comments = append(comments, NewCommentView(c, users))
	}
	return DishView{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Image:       d.Image,
		Category:    d.Category,
		Label:       d.Label,
		Price:       d.Price,
		Featured:    d.Featured,
		Comments:    comments,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// AuthorIDs returns the distinct author ids referenced by the dishes, in
// first-seen order.
func AuthorIDs(dishes ...Dish) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	for _, d := range dishes {
		for _, c := range d.Comments {
			if _, ok := seen[c.Author]; ok {
				continue
			}
			seen[c.Author] = struct{}{}
			ids = append(ids, c.Author)
		}
	}
	return ids
}

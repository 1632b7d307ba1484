package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dish represents a menu item together with its embedded comments.
type Dish struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Image       string             `json:"image" bson:"image"`
	Category    string             `json:"category" bson:"category"`
	Label       string             `json:"label" bson:"label"`
	Price       float64            `json:"price" bson:"price"`
	Featured    bool               `json:"featured" bson:"featured"`
	Comments    Comments           `json:"comments" bson:"comments"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Normalize fills in identifiers and timestamps that the store is
// responsible for assigning before a dish is first persisted.
func (d *Dish) Normalize(now time.Time) {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = now
	}
	if d.Comments == nil {
		d.Comments = Comments{}
	}
	for i := range d.Comments {
		c := &d.Comments[i]
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		if c.UpdatedAt.IsZero() {
			c.UpdatedAt = now
		}
	}
}

// Clone returns a copy of the dish that shares no comment storage with d.
func (d Dish) Clone() Dish {
	out := d
	out.Comments = make(Comments, len(d.Comments))
	copy(out.Comments, d.Comments)
	return out
}

// DishRequest represents the request payload for creating a dish.
type DishRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Image       string   `json:"image" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Label       string   `json:"label"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Featured    bool     `json:"featured"`
}

// NewDish builds an unsaved dish from a create request.
func NewDish(req DishRequest, now time.Time) *Dish {
	d := &Dish{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
		Label:       req.Label,
		Featured:    req.Featured,
		Comments:    Comments{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Price != nil {
		d.Price = *req.Price
	}
	return d
}

// DishPatch holds the fields of a partial dish update. Nil fields are left
// untouched. Comments cannot be replaced through a patch.
type DishPatch struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Description *string  `json:"description" validate:"omitempty,min=1"`
	Image       *string  `json:"image" validate:"omitempty,min=1"`
	Category    *string  `json:"category" validate:"omitempty,min=1"`
	Label       *string  `json:"label"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Featured    *bool    `json:"featured"`
}

// Fields returns the patched fields keyed by their stored field name.
func (p DishPatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Image != nil {
		fields["image"] = *p.Image
	}
	if p.Category != nil {
		fields["category"] = *p.Category
	}
	if p.Label != nil {
		fields["label"] = *p.Label
	}
	if p.Price != nil {
		fields["price"] = *p.Price
	}
	if p.Featured != nil {
		fields["featured"] = *p.Featured
	}
	return fields
}

// Apply merges the patch into d and bumps its update time.
func (p DishPatch) Apply(d *Dish, now time.Time) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Image != nil {
		d.Image = *p.Image
	}
	if p.Category != nil {
		d.Category = *p.Category
	}
	if p.Label != nil {
		d.Label = *p.Label
	}
	if p.Price != nil {
		d.Price = *p.Price
	}
	if p.Featured != nil {
		d.Featured = *p.Featured
	}
	d.UpdatedAt = now
}

// DeleteResult is the acknowledgment returned after a bulk removal.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// ParseID converts a hex identifier into an ObjectID.
// The boolean is false when s is not a valid identifier.
func ParseID(s string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

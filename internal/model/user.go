package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a registered account. Users are managed by the authentication
// service; this API only reads them to resolve comment authors.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Username  string             `json:"username" bson:"username"`
	Firstname string             `json:"firstname" bson:"firstname"`
	Lastname  string             `json:"lastname" bson:"lastname"`
	Admin     bool               `json:"admin" bson:"admin"`
}

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID   primitive.ObjectID
	Username string
	Admin    bool
}

// IdentityFromUser derives the request identity of u.
func IdentityFromUser(u User) Identity {
	return Identity{
		UserID:   u.ID,
		Username: u.Username,
		Admin:    u.Admin,
	}
}

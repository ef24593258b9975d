package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user in the system. UpdatedAt stays unset until the
// first real update.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FirstName string             `bson:"firstName" json:"firstName"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"` // Not serialized
	ImgURL    string             `bson:"imgUrl" json:"imgUrl"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// UserProfile is the public projection of a user; the password never
// appears here. UpdatedAt serializes as null for never-updated records.
type UserProfile struct {
	ID        primitive.ObjectID `json:"_id"`
	FirstName string             `json:"firstName"`
	Email     string             `json:"email"`
	ImgURL    string             `json:"imgUrl"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt *time.Time         `json:"updatedAt"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction represents a single income or expense record. The direction
// lives in Type ("income" or "expense"); Amount carries no sign convention.
type Transaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Type      string             `bson:"type" json:"type"`
	Category  string             `bson:"category,omitempty" json:"category,omitempty"`
	Amount    float64            `bson:"amount" json:"amount"`
	Date      time.Time          `bson:"date" json:"date"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

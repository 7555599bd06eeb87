package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	Type        string             `bson:"type" json:"type"`
	BudgetLimit *float64           `bson:"budgetLimit" json:"budgetLimit"`
	Color       string             `bson:"color" json:"color"`
	IsDefault   bool               `bson:"isDefault" json:"isDefault"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

type CategoryFilter struct {
	UserID primitive.ObjectID
	Type   string
}

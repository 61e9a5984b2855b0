package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WishlistItem struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserEmail  string             `json:"userEmail" bson:"userEmail"`
	PropertyID string             `json:"propertyId" bson:"propertyId"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

type WishlistRequest struct {
	PropertyID string `json:"propertyId" validate:"required"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PropertyID string             `json:"propertyId" bson:"propertyId"`
	// ReviewerEmail and UserEmail carry the same value; both are kept so
	// older clients reading either field keep working.
	ReviewerEmail string    `json:"reviewerEmail" bson:"reviewerEmail"`
	UserEmail     string    `json:"userEmail" bson:"userEmail"`
	ReviewerName  string    `json:"reviewerName,omitempty" bson:"reviewerName,omitempty"`
	Rating        int       `json:"rating" bson:"rating"`
	Comment       string    `json:"comment" bson:"comment"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

type ReviewRequest struct {
	PropertyID string `json:"propertyId" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"required"`
}

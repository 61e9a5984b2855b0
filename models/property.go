package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PropertyPending  = "pending"
	PropertyVerified = "verified"
	PropertyRejected = "rejected"
)

type Property struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Location    string             `json:"location" bson:"location"`
	// PriceRange is the display string ("350000 - 420000 USD"); Price holds
	// its leading numeral, parsed once at write time, for range filtering.
	PriceRange  string    `json:"priceRange" bson:"priceRange"`
	Price       float64   `json:"price" bson:"price"`
	Description string    `json:"description" bson:"description"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	AgentEmail  string    `json:"agentEmail" bson:"agentEmail"`
	AgentName   string    `json:"agentName,omitempty" bson:"agentName,omitempty"`
	Status      string    `json:"status" bson:"status"`
	Advertised  bool      `json:"advertised" bson:"advertised"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

type PropertyRequest struct {
	Title       string `json:"title" validate:"required"`
	Location    string `json:"location" validate:"required"`
	PriceRange  string `json:"priceRange" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

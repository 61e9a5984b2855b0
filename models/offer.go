package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OfferPending  = "pending"
	OfferAccepted = "accepted"
	OfferRejected = "rejected"
	OfferBought   = "bought"
)

type Offer struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PropertyID    string             `json:"propertyId" bson:"propertyId"`
	PropertyTitle string             `json:"propertyTitle,omitempty" bson:"propertyTitle,omitempty"`
	Location      string             `json:"location,omitempty" bson:"location,omitempty"`
	BuyerEmail    string             `json:"buyerEmail" bson:"buyerEmail"`
	BuyerName     string             `json:"buyerName,omitempty" bson:"buyerName,omitempty"`
	AgentEmail    string             `json:"agentEmail" bson:"agentEmail"`
	OfferedAmount float64            `json:"offeredAmount" bson:"offeredAmount"`
	Status        string             `json:"status" bson:"status"`
	TransactionID string             `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
	PaymentDate   *time.Time         `json:"paymentDate,omitempty" bson:"paymentDate,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

type OfferRequest struct {
	PropertyID    string  `json:"propertyId" validate:"required"`
	OfferedAmount float64 `json:"offeredAmount" validate:"required,gt=0"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Report struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ReporterEmail string             `json:"reporterEmail" bson:"reporterEmail"`
	Subject       string             `json:"subject" bson:"subject"`
	Message       string             `json:"message" bson:"message"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

type ReportRequest struct {
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

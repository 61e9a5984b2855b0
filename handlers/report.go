package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shakil880/B11-Assignment-12-category-008-server/config"
	"github.com/shakil880/B11-Assignment-12-category-008-server/models"
)

type ReportController struct {
	collection *mongo.Collection
}

func NewReportController() *ReportController {
	return &ReportController{
		collection: config.GetCollection(config.CollectionName("MONGODB_COLLECTION_REPORTS", "reports")),
	}
}

func (rc *ReportController) CreateReport(c echo.Context) error {
	email, _ := c.Get("user_email").(string)

	var req models.ReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	report := models.Report{
		ID:            primitive.NewObjectID(),
		ReporterEmail: email,
		Subject:       req.Subject,
		Message:       req.Message,
		CreatedAt:     time.Now(),
	}

	if _, err := rc.collection.InsertOne(context.Background(), report); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create report"})
	}

	return c.JSON(http.StatusCreated, report)
}

func (rc *ReportController) GetAllReports(c echo.Context) error {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := rc.collection.Find(context.Background(), bson.M{}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch reports"})
	}
	defer cursor.Close(context.Background())

	reports := []models.Report{}
	for cursor.Next(context.Background()) {
		var report models.Report
		if err := cursor.Decode(&report); err != nil {
			continue
		}
		reports = append(reports, report)
	}

	return c.JSON(http.StatusOK, reports)
}

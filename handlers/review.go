package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shakil880/B11-Assignment-12-category-008-server/config"
	"github.com/shakil880/B11-Assignment-12-category-008-server/models"
	"github.com/shakil880/B11-Assignment-12-category-008-server/utils"
)

type ReviewController struct {
	collection         *mongo.Collection
	propertyCollection *mongo.Collection
	userCollection     *mongo.Collection
}

func NewReviewController() *ReviewController {
	return &ReviewController{
		collection:         config.GetCollection(config.CollectionName("MONGODB_COLLECTION_REVIEWS", "reviews")),
		propertyCollection: config.GetCollection(config.CollectionName("MONGODB_COLLECTION_PROPERTIES", "properties")),
		userCollection:     config.GetCollection(config.CollectionName("MONGODB_COLLECTION_USERS", "users")),
	}
}

func (rc *ReviewController) CreateReview(c echo.Context) error {
	email, _ := c.Get("user_email").(string)

	var req models.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if !utils.IsValidObjectID(req.PropertyID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	propertyID, _ := primitive.ObjectIDFromHex(req.PropertyID)
	count, err := rc.propertyCollection.CountDocuments(context.Background(), bson.M{"_id": propertyID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check property"})
	}
	if count == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
	}

	review := models.Review{
		ID:            primitive.NewObjectID(),
		PropertyID:    req.PropertyID,
		ReviewerEmail: email,
		UserEmail:     email,
		Rating:        req.Rating,
		Comment:       req.Comment,
		CreatedAt:     time.Now(),
	}

	var reviewer models.User
	if err := rc.userCollection.FindOne(context.Background(), bson.M{"email": email}).Decode(&reviewer); err == nil {
		review.ReviewerName = reviewer.Name
	}

	if _, err := rc.collection.InsertOne(context.Background(), review); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create review"})
	}

	return c.JSON(http.StatusCreated, review)
}

// GetLatestReviews backs the homepage review strip, newest first.
func (rc *ReviewController) GetLatestReviews(c echo.Context) error {
	limit := int64(10)
	if l := c.QueryParam("limit"); l != "" {
		if num, err := strconv.ParseInt(l, 10, 64); err == nil && num > 0 {
			limit = num
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := rc.collection.Find(context.Background(), bson.M{}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch reviews"})
	}
	defer cursor.Close(context.Background())

	return c.JSON(http.StatusOK, decodeReviews(cursor))
}

func (rc *ReviewController) GetReviewsByProperty(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidObjectID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	cursor, err := rc.collection.Find(context.Background(), bson.M{"propertyId": id})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch reviews"})
	}
	defer cursor.Close(context.Background())

	return c.JSON(http.StatusOK, decodeReviews(cursor))
}

func (rc *ReviewController) GetReviewsByUser(c echo.Context) error {
	email := c.Param("email")

	callerEmail, _ := c.Get("user_email").(string)
	callerRole, _ := c.Get("user_role").(string)
	if callerEmail != email && callerRole != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Access denied"})
	}

	cursor, err := rc.collection.Find(context.Background(), bson.M{"reviewerEmail": email})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch reviews"})
	}
	defer cursor.Close(context.Background())

	return c.JSON(http.StatusOK, decodeReviews(cursor))
}

// DeleteReview is the only mutation after create; there is no edit path.
func (rc *ReviewController) DeleteReview(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidObjectID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid review ID"})
	}
	objID, _ := primitive.ObjectIDFromHex(id)

	var review models.Review
	err := rc.collection.FindOne(context.Background(), bson.M{"_id": objID}).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Review not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch review"})
	}

	callerEmail, _ := c.Get("user_email").(string)
	callerRole, _ := c.Get("user_role").(string)
	if review.ReviewerEmail != callerEmail && callerRole != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to delete this review"})
	}

	result, err := rc.collection.DeleteOne(context.Background(), bson.M{"_id": objID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete review"})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Review not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Review deleted successfully"})
}

func decodeReviews(cursor *mongo.Cursor) []models.Review {
	reviews := []models.Review{}
	for cursor.Next(context.Background()) {
		var review models.Review
		if err := cursor.Decode(&review); err != nil {
			continue
		}
		reviews = append(reviews, review)
	}
	return reviews
}

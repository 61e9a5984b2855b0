package handlers

import (
	"context"
	"errors"
	"net/http"
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

type WishlistController struct {
	collection         *mongo.Collection
	propertyCollection *mongo.Collection
}

func NewWishlistController() *WishlistController {
	return &WishlistController{
		collection:         config.GetCollection(config.CollectionName("MONGODB_COLLECTION_WISHLIST", "wishlist")),
		propertyCollection: config.GetCollection(config.CollectionName("MONGODB_COLLECTION_PROPERTIES", "properties")),
	}
}

var errAlreadyWishlisted = errors.New("property already in wishlist")

type wishlistWriter interface {
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// addWishlistItem inserts the (userEmail, propertyId) pair unless it is
// already present, so sequential duplicate calls report errAlreadyWishlisted
// instead of stacking copies. There is no unique index backing this under
// concurrent inserts.
func addWishlistItem(ctx context.Context, store wishlistWriter, email, propertyID string) (models.WishlistItem, error) {
	count, err := store.CountDocuments(ctx, bson.M{"userEmail": email, "propertyId": propertyID})
	if err != nil {
		return models.WishlistItem{}, err
	}
	if count > 0 {
		return models.WishlistItem{}, errAlreadyWishlisted
	}

	item := models.WishlistItem{
		ID:         primitive.NewObjectID(),
		UserEmail:  email,
		PropertyID: propertyID,
		CreatedAt:  time.Now(),
	}
	if _, err := store.InsertOne(ctx, item); err != nil {
		return models.WishlistItem{}, err
	}
	return item, nil
}

func (wc *WishlistController) AddToWishlist(c echo.Context) error {
	email, _ := c.Get("user_email").(string)

	var req models.WishlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if !utils.IsValidObjectID(req.PropertyID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	propertyID, _ := primitive.ObjectIDFromHex(req.PropertyID)
	count, err := wc.propertyCollection.CountDocuments(context.Background(), bson.M{"_id": propertyID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check property"})
	}
	if count == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
	}

	item, err := addWishlistItem(context.Background(), wc.collection, email, req.PropertyID)
	if err != nil {
		if errors.Is(err, errAlreadyWishlisted) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "Property already exists in wishlist"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to add to wishlist"})
	}

	return c.JSON(http.StatusCreated, item)
}

func (wc *WishlistController) GetWishlist(c echo.Context) error {
	email := c.Param("email")

	callerEmail, _ := c.Get("user_email").(string)
	callerRole, _ := c.Get("user_role").(string)
	if callerEmail != email && callerRole != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Access denied"})
	}

	cursor, err := wc.collection.Find(context.Background(), bson.M{"userEmail": email})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wishlist"})
	}
	defer cursor.Close(context.Background())

	items := []models.WishlistItem{}
	for cursor.Next(context.Background()) {
		var item models.WishlistItem
		if err := cursor.Decode(&item); err != nil {
			continue
		}
		items = append(items, item)
	}

	return c.JSON(http.StatusOK, items)
}

func (wc *WishlistController) RemoveFromWishlist(c echo.Context) error {
	email := c.Param("email")
	propertyID := c.Param("propertyId")
	if !utils.IsValidObjectID(propertyID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	callerEmail, _ := c.Get("user_email").(string)
	callerRole, _ := c.Get("user_role").(string)
	if callerEmail != email && callerRole != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Access denied"})
	}

	result, err := wc.collection.DeleteOne(context.Background(), bson.M{"userEmail": email, "propertyId": propertyID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to remove from wishlist"})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Wishlist item not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Removed from wishlist"})
}

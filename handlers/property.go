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

const (
	advertisedCacheKey = "properties:advertised"
	advertisedCacheTTL = 5 * time.Minute
	advertisedLimit    = 4
)

type PropertyController struct {
	collection     *mongo.Collection
	userCollection *mongo.Collection
}

func NewPropertyController() *PropertyController {
	return &PropertyController{
		collection:     config.GetCollection(config.CollectionName("MONGODB_COLLECTION_PROPERTIES", "properties")),
		userCollection: config.GetCollection(config.CollectionName("MONGODB_COLLECTION_USERS", "users")),
	}
}

// initialStatus picks the starting verification state by author role:
// admin-authored listings go live immediately, everything else waits for
// admin review.
func initialStatus(role string) string {
	if role == models.RoleAdmin {
		return models.PropertyVerified
	}
	return models.PropertyPending
}

func (pc *PropertyController) CreateProperty(c echo.Context) error {
	var req models.PropertyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	role, _ := c.Get("user_role").(string)
	email, _ := c.Get("user_email").(string)

	property := models.Property{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Location:    req.Location,
		PriceRange:  req.PriceRange,
		Price:       utils.ParseLeadingPrice(req.PriceRange),
		Description: req.Description,
		Image:       req.Image,
		AgentEmail:  email,
		Status:      initialStatus(role),
		Advertised:  false,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	var agent models.User
	if err := pc.userCollection.FindOne(context.Background(), bson.M{"email": email}).Decode(&agent); err == nil {
		property.AgentName = agent.Name
	}

	if _, err := pc.collection.InsertOne(context.Background(), property); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create property"})
	}

	return c.JSON(http.StatusCreated, property)
}

// buildPropertyQuery translates list query params into a Mongo filter.
func buildPropertyQuery(search, status, minPrice, maxPrice string) bson.M {
	query := bson.M{}

	if search != "" {
		regex := bson.M{"$regex": search, "$options": "i"}
		query["$or"] = []bson.M{
			{"title": regex},
			{"location": regex},
			{"description": regex},
		}
	}
	if status != "" {
		query["status"] = status
	}

	price := bson.M{}
	if minPrice != "" {
		if min, err := strconv.ParseFloat(minPrice, 64); err == nil {
			price["$gte"] = min
		}
	}
	if maxPrice != "" {
		if max, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			price["$lte"] = max
		}
	}
	if len(price) > 0 {
		query["price"] = price
	}

	return query
}

func sortOption(sort string) bson.D {
	switch sort {
	case "price_asc":
		return bson.D{{Key: "price", Value: 1}}
	case "price_desc":
		return bson.D{{Key: "price", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

func (pc *PropertyController) ListProperties(c echo.Context) error {
	query := buildPropertyQuery(
		c.QueryParam("search"),
		c.QueryParam("status"),
		c.QueryParam("minPrice"),
		c.QueryParam("maxPrice"),
	)

	page := 1
	limit := 10
	if p := c.QueryParam("page"); p != "" {
		if num, err := strconv.Atoi(p); err == nil && num > 0 {
			page = num
		}
	}
	if l := c.QueryParam("limit"); l != "" {
		if num, err := strconv.Atoi(l); err == nil && num > 0 {
			limit = num
		}
	}
	skip := (page - 1) * limit

	opts := options.Find().
		SetSort(sortOption(c.QueryParam("sort"))).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := pc.collection.Find(context.Background(), query, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch properties"})
	}
	defer cursor.Close(context.Background())

	properties := []models.Property{}
	for cursor.Next(context.Background()) {
		var property models.Property
		if err := cursor.Decode(&property); err != nil {
			continue
		}
		properties = append(properties, property)
	}

	return c.JSON(http.StatusOK, properties)
}

func (pc *PropertyController) GetProperty(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidObjectID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}
	objID, _ := primitive.ObjectIDFromHex(id)

	var property models.Property
	err := pc.collection.FindOne(context.Background(), bson.M{"_id": objID}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}

	return c.JSON(http.StatusOK, property)
}

func (pc *PropertyController) GetPropertiesByAgent(c echo.Context) error {
	email := c.Param("email")

	callerEmail, _ := c.Get("user_email").(string)
	callerRole, _ := c.Get("user_role").(string)
	if callerEmail != email && callerRole != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Access denied"})
	}

	cursor, err := pc.collection.Find(context.Background(), bson.M{"agentEmail": email})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch properties"})
	}
	defer cursor.Close(context.Background())

	properties := []models.Property{}
	for cursor.Next(context.Background()) {
		var property models.Property
		if err := cursor.Decode(&property); err != nil {
			continue
		}
		properties = append(properties, property)
	}

	return c.JSON(http.StatusOK, properties)
}

func (pc *PropertyController) UpdateProperty(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidObjectID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}
	objID, _ := primitive.ObjectIDFromHex(id)

	var property models.Property
	err := pc.collection.FindOne(context.Background(), bson.M{"_id": objID}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}

	callerEmail, _ := c.Get("user_email").(string)
	callerRole, _ := c.Get("user_role").(string)
	if property.AgentEmail != callerEmail && callerRole != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to update this property"})
	}

	var req models.PropertyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	updateDoc := bson.M{
		"title":       req.Title,
		"location":    req.Location,
		"priceRange":  req.PriceRange,
		"price":       utils.ParseLeadingPrice(req.PriceRange),
		"description": req.Description,
		"image":       req.Image,
		"updatedAt":   time.Now(),
	}

	if _, err := pc.collection.UpdateOne(context.Background(), bson.M{"_id": objID}, bson.M{"$set": updateDoc}); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update property"})
	}

	if err := pc.collection.FindOne(context.Background(), bson.M{"_id": objID}).Decode(&property); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch updated property"})
	}

	utils.InvalidateCache(context.Background(), advertisedCacheKey)

	return c.JSON(http.StatusOK, property)
}

func (pc *PropertyController) DeleteProperty(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidObjectID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}
	objID, _ := primitive.ObjectIDFromHex(id)

	var property models.Property
	err := pc.collection.FindOne(context.Background(), bson.M{"_id": objID}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}

	callerEmail, _ := c.Get("user_email").(string)
	callerRole, _ := c.Get("user_role").(string)
	if property.AgentEmail != callerEmail && callerRole != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to delete this property"})
	}

	result, err := pc.collection.DeleteOne(context.Background(), bson.M{"_id": objID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete property"})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
	}

	utils.InvalidateCache(context.Background(), advertisedCacheKey)

	return c.JSON(http.StatusOK, map[string]string{"message": "Property deleted successfully"})
}

// VerifyProperty, RejectProperty and AdvertiseProperty are the admin
// transitions; each sets a single field.
func (pc *PropertyController) VerifyProperty(c echo.Context) error {
	return pc.patchProperty(c, bson.M{"status": models.PropertyVerified})
}

func (pc *PropertyController) RejectProperty(c echo.Context) error {
	return pc.patchProperty(c, bson.M{"status": models.PropertyRejected})
}

func (pc *PropertyController) AdvertiseProperty(c echo.Context) error {
	return pc.patchProperty(c, bson.M{"advertised": true})
}

func (pc *PropertyController) patchProperty(c echo.Context, fields bson.M) error {
	id := c.Param("id")
	if !utils.IsValidObjectID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}
	objID, _ := primitive.ObjectIDFromHex(id)

	fields["updatedAt"] = time.Now()

	result, err := pc.collection.UpdateOne(context.Background(), bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update property"})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
	}

	utils.InvalidateCache(context.Background(), advertisedCacheKey)

	var property models.Property
	if err := pc.collection.FindOne(context.Background(), bson.M{"_id": objID}).Decode(&property); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch updated property"})
	}

	return c.JSON(http.StatusOK, property)
}

// GetAdvertisedProperties serves the homepage strip: the four newest
// verified listings flagged for advertisement, cached in Redis.
func (pc *PropertyController) GetAdvertisedProperties(c echo.Context) error {
	ctx := context.Background()

	var cached []models.Property
	if hit, err := utils.GetCached(ctx, advertisedCacheKey, &cached); err == nil && hit {
		return c.JSON(http.StatusOK, cached)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(advertisedLimit)

	cursor, err := pc.collection.Find(ctx, bson.M{
		"status":     models.PropertyVerified,
		"advertised": true,
	}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch properties"})
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	for cursor.Next(ctx) {
		var property models.Property
		if err := cursor.Decode(&property); err != nil {
			continue
		}
		properties = append(properties, property)
	}

	if err := utils.SetCached(ctx, advertisedCacheKey, properties, advertisedCacheTTL); err != nil {
		c.Logger().Warnf("failed to cache advertised properties: %v", err)
	}

	return c.JSON(http.StatusOK, properties)
}

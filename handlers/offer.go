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
	"github.com/shakil880/B11-Assignment-12-category-008-server/utils"
)

type OfferController struct {
	collection         *mongo.Collection
	propertyCollection *mongo.Collection
	userCollection     *mongo.Collection
}

func NewOfferController() *OfferController {
	return &OfferController{
		collection:         config.GetCollection(config.CollectionName("MONGODB_COLLECTION_OFFERS", "offers")),
		propertyCollection: config.GetCollection(config.CollectionName("MONGODB_COLLECTION_PROPERTIES", "properties")),
		userCollection:     config.GetCollection(config.CollectionName("MONGODB_COLLECTION_USERS", "users")),
	}
}

func (oc *OfferController) CreateOffer(c echo.Context) error {
	buyerEmail, _ := c.Get("user_email").(string)

	var req models.OfferRequest
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
	var property models.Property
	err := oc.propertyCollection.FindOne(context.Background(), bson.M{"_id": propertyID}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}
	if property.Status != models.PropertyVerified {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Offers are only accepted on verified properties"})
	}

	offer := models.Offer{
		ID:            primitive.NewObjectID(),
		PropertyID:    req.PropertyID,
		PropertyTitle: property.Title,
		Location:      property.Location,
		BuyerEmail:    buyerEmail,
		AgentEmail:    property.AgentEmail,
		OfferedAmount: req.OfferedAmount,
		Status:        models.OfferPending,
		CreatedAt:     time.Now(),
	}

	var buyer models.User
	if err := oc.userCollection.FindOne(context.Background(), bson.M{"email": buyerEmail}).Decode(&buyer); err == nil {
		offer.BuyerName = buyer.Name
	}

	if _, err := oc.collection.InsertOne(context.Background(), offer); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create offer"})
	}

	return c.JSON(http.StatusCreated, offer)
}

func (oc *OfferController) GetOffersByBuyer(c echo.Context) error {
	return oc.listOffers(c, "buyerEmail")
}

func (oc *OfferController) GetOffersByAgent(c echo.Context) error {
	return oc.listOffers(c, "agentEmail")
}

func (oc *OfferController) listOffers(c echo.Context, field string) error {
	email := c.Param("email")

	callerEmail, _ := c.Get("user_email").(string)
	callerRole, _ := c.Get("user_role").(string)
	if callerEmail != email && callerRole != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Access denied"})
	}

	cursor, err := oc.collection.Find(context.Background(), bson.M{field: email})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch offers"})
	}
	defer cursor.Close(context.Background())

	offers := []models.Offer{}
	for cursor.Next(context.Background()) {
		var offer models.Offer
		if err := cursor.Decode(&offer); err != nil {
			continue
		}
		offers = append(offers, offer)
	}

	return c.JSON(http.StatusOK, offers)
}

type offerWriter interface {
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

// acceptOfferCascade marks the offer accepted and every sibling offer on the
// same property rejected, leaving at most one accepted offer per property.
// Callers run it inside a transaction.
func acceptOfferCascade(ctx context.Context, offers offerWriter, offerID primitive.ObjectID, propertyID string) error {
	if _, err := offers.UpdateOne(ctx,
		bson.M{"_id": offerID},
		bson.M{"$set": bson.M{"status": models.OfferAccepted}},
	); err != nil {
		return err
	}
	_, err := offers.UpdateMany(ctx,
		bson.M{"propertyId": propertyID, "_id": bson.M{"$ne": offerID}},
		bson.M{"$set": bson.M{"status": models.OfferRejected}},
	)
	return err
}

// AcceptOffer marks one offer accepted and every sibling offer on the same
// property rejected. Both writes run in a single transaction so at most one
// offer per property can ever be accepted.
func (oc *OfferController) AcceptOffer(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidObjectID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid offer ID"})
	}
	objID, _ := primitive.ObjectIDFromHex(id)

	var offer models.Offer
	err := oc.collection.FindOne(context.Background(), bson.M{"_id": objID}).Decode(&offer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Offer not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch offer"})
	}

	callerEmail, _ := c.Get("user_email").(string)
	callerRole, _ := c.Get("user_role").(string)
	if offer.AgentEmail != callerEmail && callerRole != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to accept this offer"})
	}

	session, err := config.Client.StartSession()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to start session"})
	}
	defer session.EndSession(context.Background())

	_, err = session.WithTransaction(context.Background(), func(sc mongo.SessionContext) (interface{}, error) {
		return nil, acceptOfferCascade(sc, oc.collection, objID, offer.PropertyID)
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to accept offer"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Offer accepted, other offers rejected"})
}

func (oc *OfferController) RejectOffer(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidObjectID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid offer ID"})
	}
	objID, _ := primitive.ObjectIDFromHex(id)

	var offer models.Offer
	err := oc.collection.FindOne(context.Background(), bson.M{"_id": objID}).Decode(&offer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Offer not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch offer"})
	}

	callerEmail, _ := c.Get("user_email").(string)
	callerRole, _ := c.Get("user_role").(string)
	if offer.AgentEmail != callerEmail && callerRole != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to reject this offer"})
	}

	if _, err := oc.collection.UpdateOne(context.Background(),
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"status": models.OfferRejected}},
	); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to reject offer"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Offer rejected"})
}

// MarkBought completes the purchase after payment: accepted offers only.
func (oc *OfferController) MarkBought(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidObjectID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid offer ID"})
	}
	objID, _ := primitive.ObjectIDFromHex(id)

	var req struct {
		TransactionID string `json:"transactionId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.TransactionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "transactionId is required"})
	}

	var offer models.Offer
	err := oc.collection.FindOne(context.Background(), bson.M{"_id": objID}).Decode(&offer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Offer not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch offer"})
	}

	callerEmail, _ := c.Get("user_email").(string)
	callerRole, _ := c.Get("user_role").(string)
	if offer.BuyerEmail != callerEmail && callerRole != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to complete this offer"})
	}
	if offer.Status != models.OfferAccepted {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Only accepted offers can be bought"})
	}

	now := time.Now()
	if _, err := oc.collection.UpdateOne(context.Background(),
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{
			"status":        models.OfferBought,
			"transactionId": req.TransactionID,
			"paymentDate":   now,
		}},
	); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update offer"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Payment recorded, offer marked as bought"})
}

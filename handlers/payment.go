package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shakil880/B11-Assignment-12-category-008-server/config"
	"github.com/shakil880/B11-Assignment-12-category-008-server/models"
	"github.com/shakil880/B11-Assignment-12-category-008-server/utils"
)

type PaymentController struct {
	offerCollection *mongo.Collection
}

func NewPaymentController() *PaymentController {
	return &PaymentController{
		offerCollection: config.GetCollection(config.CollectionName("MONGODB_COLLECTION_OFFERS", "offers")),
	}
}

// CreatePaymentIntent is a stub: no gateway is called, the transaction id is
// fabricated locally. The offer must be accepted and belong to the caller.
func (pc *PaymentController) CreatePaymentIntent(c echo.Context) error {
	var req struct {
		OfferID string `json:"offerId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if !utils.IsValidObjectID(req.OfferID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid offer ID"})
	}

	offerID, _ := primitive.ObjectIDFromHex(req.OfferID)
	var offer models.Offer
	err := pc.offerCollection.FindOne(context.Background(), bson.M{"_id": offerID}).Decode(&offer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Offer not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch offer"})
	}

	callerEmail, _ := c.Get("user_email").(string)
	if offer.BuyerEmail != callerEmail {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to pay for this offer"})
	}
	if offer.Status != models.OfferAccepted {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Only accepted offers can be paid for"})
	}

	transactionID := primitive.NewObjectID().Hex()

	return c.JSON(http.StatusOK, map[string]interface{}{
		"transactionId": transactionID,
		"clientSecret":  "pi_" + transactionID + "_secret",
		"amount":        offer.OfferedAmount,
	})
}

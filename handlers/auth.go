package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shakil880/B11-Assignment-12-category-008-server/config"
	"github.com/shakil880/B11-Assignment-12-category-008-server/models"
	"github.com/shakil880/B11-Assignment-12-category-008-server/utils"
)

type AuthController struct {
	userCollection *mongo.Collection
}

func NewAuthController() *AuthController {
	return &AuthController{
		userCollection: config.GetCollection(config.CollectionName("MONGODB_COLLECTION_USERS", "users")),
	}
}

// IssueToken mints a bearer token for a registered user. The role comes
// from the stored record, not the request, so a caller cannot sign
// themselves into a role they do not hold.
func (ac *AuthController) IssueToken(c echo.Context) error {
	var req models.TokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var user models.User
	err := ac.userCollection.FindOne(context.Background(), bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found, register first"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch user"})
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

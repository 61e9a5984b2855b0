package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shakil880/B11-Assignment-12-category-008-server/config"
	"github.com/shakil880/B11-Assignment-12-category-008-server/models"
	"github.com/shakil880/B11-Assignment-12-category-008-server/utils"
)

type UserController struct {
	collection         *mongo.Collection
	propertyCollection *mongo.Collection
}

func NewUserController() *UserController {
	return &UserController{
		collection:         config.GetCollection(config.CollectionName("MONGODB_COLLECTION_USERS", "users")),
		propertyCollection: config.GetCollection(config.CollectionName("MONGODB_COLLECTION_PROPERTIES", "properties")),
	}
}

// Register is the explicit registration step: a user record exists only
// after this call, never as a side effect of another request.
func (uc *UserController) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	count, err := uc.collection.CountDocuments(context.Background(), bson.M{"email": req.Email})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check user existence"})
	}
	if count > 0 {
		return c.JSON(http.StatusConflict, map[string]string{"error": "User with this email already exists"})
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Email:     req.Email,
		Name:      req.Name,
		Phone:     req.Phone,
		Role:      models.RoleUser,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if req.Password != "" {
		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
		}
		user.Password = hashed
	}

	if _, err := uc.collection.InsertOne(context.Background(), user); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create user"})
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	user.Password = ""

	return c.JSON(http.StatusCreated, models.LoginResponse{Token: token, User: user})
}

func (uc *UserController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var user models.User
	err := uc.collection.FindOne(context.Background(), bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}

	if err := utils.CheckPassword(user.Password, req.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	user.Password = ""

	return c.JSON(http.StatusOK, models.LoginResponse{Token: token, User: user})
}

func (uc *UserController) GetAllUsers(c echo.Context) error {
	cursor, err := uc.collection.Find(context.Background(), bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch users"})
	}
	defer cursor.Close(context.Background())

	users := []models.User{}
	for cursor.Next(context.Background()) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			continue
		}
		user.Password = ""
		users = append(users, user)
	}

	return c.JSON(http.StatusOK, users)
}

func (uc *UserController) GetUserByEmail(c echo.Context) error {
	email := c.Param("email")

	callerEmail, _ := c.Get("user_email").(string)
	callerRole, _ := c.Get("user_role").(string)
	if callerEmail != email && callerRole != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Access denied"})
	}

	var user models.User
	err := uc.collection.FindOne(context.Background(), bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch user"})
	}

	user.Password = ""

	return c.JSON(http.StatusOK, user)
}

// MakeAdmin and MakeAgent are single-field role promotions.
func (uc *UserController) MakeAdmin(c echo.Context) error {
	return uc.setRole(c, models.RoleAdmin)
}

func (uc *UserController) MakeAgent(c echo.Context) error {
	return uc.setRole(c, models.RoleAgent)
}

func (uc *UserController) setRole(c echo.Context, role string) error {
	id := c.Param("id")
	if !utils.IsValidObjectID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
	}
	objID, _ := primitive.ObjectIDFromHex(id)

	result, err := uc.collection.UpdateOne(
		context.Background(),
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update user"})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "User role updated to " + role})
}

// MarkFraud flips the user's role to fraud and rejects every property that
// user listed. Both writes run in one transaction so a crash cannot leave a
// fraud agent with live listings. The property filter uses the email of the
// user fetched by id, never a caller-supplied one.
func (uc *UserController) MarkFraud(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidObjectID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
	}
	objID, _ := primitive.ObjectIDFromHex(id)

	var user models.User
	err := uc.collection.FindOne(context.Background(), bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch user"})
	}

	session, err := config.Client.StartSession()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to start session"})
	}
	defer session.EndSession(context.Background())

	_, err = session.WithTransaction(context.Background(), func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := uc.collection.UpdateOne(sc,
			bson.M{"_id": objID},
			bson.M{"$set": bson.M{"role": models.RoleFraud, "updatedAt": time.Now()}},
		); err != nil {
			return nil, err
		}
		if _, err := uc.propertyCollection.UpdateMany(sc,
			bson.M{"agentEmail": user.Email},
			bson.M{"$set": bson.M{"status": models.PropertyRejected, "updatedAt": time.Now()}},
		); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to mark user as fraud"})
	}

	utils.InvalidateCache(context.Background(), advertisedCacheKey)

	return c.JSON(http.StatusOK, map[string]string{"message": "User marked as fraud and their properties rejected"})
}

func (uc *UserController) DeleteUser(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidObjectID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
	}
	objID, _ := primitive.ObjectIDFromHex(id)

	result, err := uc.collection.DeleteOne(context.Background(), bson.M{"_id": objID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete user"})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

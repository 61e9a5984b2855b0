package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/shakil880/B11-Assignment-12-category-008-server/handlers"
	"github.com/shakil880/B11-Assignment-12-category-008-server/middleware"
	"github.com/shakil880/B11-Assignment-12-category-008-server/models"
)

func RegisterRoutes(e *echo.Echo) {
	authController := handlers.NewAuthController()
	userController := handlers.NewUserController()
	propertyController := handlers.NewPropertyController()
	wishlistController := handlers.NewWishlistController()
	offerController := handlers.NewOfferController()
	reviewController := handlers.NewReviewController()
	reportController := handlers.NewReportController()
	paymentController := handlers.NewPaymentController()

	e.GET("/health", handlers.HealthCheck)

	// Public
	e.POST("/jwt", authController.IssueToken)
	e.POST("/users", userController.Register)
	e.POST("/login", userController.Login)
	e.GET("/properties", propertyController.ListProperties)
	e.GET("/properties/:id", propertyController.GetProperty)
	e.GET("/advertised-properties", propertyController.GetAdvertisedProperties)
	e.GET("/reviews", reviewController.GetLatestReviews)
	e.GET("/reviews/property/:id", reviewController.GetReviewsByProperty)

	// Authenticated
	auth := e.Group("", middleware.Auth())

	auth.GET("/users/:email", userController.GetUserByEmail)
	auth.GET("/wishlist/:email", wishlistController.GetWishlist)
	auth.POST("/wishlist", wishlistController.AddToWishlist)
	auth.DELETE("/wishlist/:email/:propertyId", wishlistController.RemoveFromWishlist)
	auth.GET("/offers/user/:email", offerController.GetOffersByBuyer)
	auth.GET("/offers/agent/:email", offerController.GetOffersByAgent)
	auth.POST("/offers", offerController.CreateOffer, middleware.RequireRoles(models.RoleUser))
	auth.PATCH("/offers/bought/:id", offerController.MarkBought)
	auth.GET("/reviews/user/:email", reviewController.GetReviewsByUser)
	auth.POST("/reviews", reviewController.CreateReview)
	auth.DELETE("/reviews/:id", reviewController.DeleteReview)
	auth.POST("/reports", reportController.CreateReport)
	auth.POST("/create-payment-intent", paymentController.CreatePaymentIntent)

	// Agent and admin
	agent := auth.Group("", middleware.RequireRoles(models.RoleAgent, models.RoleAdmin))

	agent.POST("/properties", propertyController.CreateProperty)
	agent.PUT("/properties/:id", propertyController.UpdateProperty)
	agent.DELETE("/properties/:id", propertyController.DeleteProperty)
	agent.GET("/properties/agent/:email", propertyController.GetPropertiesByAgent)
	agent.PATCH("/offers/accept/:id", offerController.AcceptOffer)
	agent.PATCH("/offers/reject/:id", offerController.RejectOffer)

	// Admin only
	admin := auth.Group("", middleware.RequireRoles(models.RoleAdmin))

	admin.GET("/users", userController.GetAllUsers)
	admin.PATCH("/users/admin/:id", userController.MakeAdmin)
	admin.PATCH("/users/agent/:id", userController.MakeAgent)
	admin.PATCH("/users/fraud/:id", userController.MarkFraud)
	admin.DELETE("/users/:id", userController.DeleteUser)
	admin.PATCH("/properties/verify/:id", propertyController.VerifyProperty)
	admin.PATCH("/properties/reject/:id", propertyController.RejectProperty)
	admin.PATCH("/properties/advertise/:id", propertyController.AdvertiseProperty)
	admin.GET("/reports", reportController.GetAllReports)
}

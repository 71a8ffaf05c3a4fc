package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rewear/api-go/controllers"
	"github.com/rewear/api-go/middleware"
	"github.com/rewear/api-go/sustainability"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// The sustainability service is shared, so badge catalog seeding
	// happens once here before any request is served.
	ecoService := sustainability.NewService(db)
	if err := ecoService.SeedCatalog(); err != nil {
		log.Fatalf("Failed to seed badge catalog: %v", err)
	}

	// Initialize controllers
	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db, ecoService)
	interactionController := controllers.NewInteractionController(db)
	commentController := controllers.NewCommentController(db)
	rentalController := controllers.NewRentalController(db)
	scoreController := controllers.NewScoreController(db)
	leaderboardController := controllers.NewLeaderboardController(db)
	feedController := controllers.NewFeedController(db)
	uploadController := controllers.NewUploadController(db)
	validationController := controllers.NewValidationController(db)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/auth/google", authController.GoogleLogin)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)
		protected.POST("/refresh-token", authController.RefreshToken)
		// User routes
		protected.GET("/profile", authController.GetProfile)
		protected.PUT("/profile", authController.UpdateProfile)

		// Setup other routes within the protected group
		SetupPostRoutes(protected, postController)
		SetupInteractionRoutes(protected, interactionController, commentController)
		SetupRentalRoutes(protected, rentalController)
		SetupScoreRoutes(protected, scoreController, leaderboardController)
		SetupFeedRoutes(protected, feedController)
		SetupUploadRoutes(protected, uploadController)
		SetupValidationRoutes(protected, validationController)
	}
}

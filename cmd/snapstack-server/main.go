package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/sathwik/snapstack/pkg/snapstack/auth"
	"github.com/sathwik/snapstack/pkg/snapstack/content"
	"github.com/sathwik/snapstack/pkg/snapstack/database"
	"github.com/sathwik/snapstack/pkg/snapstack/models"
	"github.com/sathwik/snapstack/pkg/snapstack/share"
)

// @title Snapstack API
// @version 1.0
// @description A bookmark-sharing backend with user accounts and public share links.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token, sent as the bare header value (no Bearer prefix)

func main() {
	// Optional .env file for local development
	if err := godotenv.Load(); err == nil {
		logrus.Info("Loaded environment from .env")
	}

	dbPath := os.Getenv("SNAPSTACK_DB_PATH")
	if dbPath == "" {
		dbPath = "snapstack.db"
	}

	if err := database.Connect(dbPath); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	if err := models.AutoMigrate(database.GetDB()); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}
	logrus.Info("Database migrations completed")

	if os.Getenv("JWT_SECRET") == "" {
		logrus.Warn("JWT_SECRET not set - using development default")
	}

	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	db := database.GetDB()

	api := r.Group("/api/v1")
	{
		// Auth routes (public)
		authHandler := auth.NewHandler(db)
		authHandler.RegisterRoutes(api)

		// Share resolve route (public - the hash is the viewer's only credential)
		shareHandler := share.NewHandler(db)
		shareHandler.RegisterPublicRoutes(api)

		// Protected routes
		protected := api.Group("", auth.AuthMiddleware())
		contentHandler := content.NewHandler(db)
		contentHandler.RegisterRoutes(protected)
		shareHandler.RegisterRoutes(protected)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logrus.Infof("Starting snapstack server on :%s", port)
	if err := r.Run(":" + port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}

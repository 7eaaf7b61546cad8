package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"printshop_backend/internal/database"
	"printshop_backend/internal/middleware"
	"printshop_backend/internal/router"
	"printshop_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize Logger
	utils.InitLogger()

	// Load database configuration from environment variables
	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "printshop_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "printshop_password")
	dbName := utils.Getenv("DB_NAME", "printshop_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
	dbSchemaPath := utils.Getenv("DB_SCHEMA_PATH", "")

	db, err := database.Connect(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode)
	if err != nil {
		utils.LogError(err, "Failed to initialize database")
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	if err := database.ApplySchema(db, dbSchemaPath); err != nil {
		utils.LogError(err, "Failed to apply database schema")
		log.Fatalf("Failed to apply database schema: %v", err)
	}
	utils.LogInfo("Database initialized", map[string]interface{}{"configured_from_env": true})

	// Token verification is delegated to the configured OIDC issuer.
	issuerURL := utils.Getenv("OIDC_ISSUER_URL", "https://accounts.google.com")
	clientID := os.Getenv("OIDC_CLIENT_ID")
	verifier, err := middleware.NewOIDCVerifier(context.Background(), issuerURL, clientID)
	if err != nil {
		utils.LogError(err, "Failed to initialize OIDC verifier")
		log.Fatalf("Failed to initialize OIDC verifier: %v", err)
	}

	engine := gin.Default()

	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"} // Default origins
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Setup all application routes
	router.Setup(engine, db, verifier)

	// Server port configuration
	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port, "configured_from_env": true})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}

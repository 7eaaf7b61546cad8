package router

import (
	"database/sql"

	"printshop_backend/internal/handlers"
	"printshop_backend/internal/middleware"
	"printshop_backend/internal/pdf"
	"printshop_backend/internal/repositories"
	"printshop_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, verifier middleware.TokenVerifier) {
	// Initialize Repositories
	clientRepo := repositories.NewClientRepository(db)
	productRepo := repositories.NewProductRepository(db)
	inventoryRepo := repositories.NewInventoryRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)
	txManager := repositories.NewTxManager(db)

	// Initialize Services
	clientService := services.NewClientService(clientRepo, orderRepo, txManager)
	productService := services.NewProductService(productRepo, inventoryRepo, txManager)
	inventoryService := services.NewInventoryService(inventoryRepo, productRepo, txManager)
	orderService := services.NewOrderService(orderRepo, clientRepo, productRepo, inventoryRepo, txManager)
	settingsService := services.NewSettingsService(settingsRepo, txManager)
	dashboardService := services.NewDashboardService(orderRepo, clientRepo)

	// Initialize Handlers
	clientHandler := handlers.NewClientHandler(clientService)
	productHandler := handlers.NewProductHandler(productService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	orderHandler := handlers.NewOrderHandler(orderService, settingsService, pdf.NewChromeRenderer())
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	apiV1 := engine.Group("/api/v1")

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware(verifier))
	{
		SetupClientRoutes(authenticated, clientHandler)
		SetupProductRoutes(authenticated, productHandler)
		SetupInventoryRoutes(authenticated, inventoryHandler)
		SetupOrderRoutes(authenticated, orderHandler)
		SetupDashboardRoutes(authenticated, dashboardHandler)
		SetupSettingsRoutes(authenticated, settingsHandler)
	}
}

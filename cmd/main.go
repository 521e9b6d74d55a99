package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"softbarter/internal/auth"
	"softbarter/internal/config"
	"softbarter/internal/database"
	"softbarter/internal/handlers"
	"softbarter/internal/repository"
	"softbarter/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed demo data on an empty database
	if cfg.App.SeedData {
		if err := database.Seed(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize repository
	repo := repository.NewRepository(database.GetDB())

	// Initialize services
	authService := services.NewAuthService(repo)
	userService := services.NewUserService(repo)
	tradeService := services.NewTradeService(repo)
	offerService := services.NewOfferService(repo)
	txService := services.NewTransactionService(repo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	tradeHandler := handlers.NewTradeHandler(tradeService)
	offerHandler := handlers.NewOfferHandler(offerService)
	txHandler := handlers.NewTransactionHandler(txService)

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173", // Vite dev server
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	// Add additional frontend URL from environment if provided
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	authRoutes := router.Group("/api/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	// Authenticated profile route
	authProtected := router.Group("/api/auth")
	authProtected.Use(auth.AuthMiddleware())
	{
		authProtected.GET("/profile", userHandler.GetProfile)
	}

	// Public trade routes
	router.GET("/api/trades", tradeHandler.ListTrades)
	router.GET("/api/trades/active", tradeHandler.GetActiveTrades)
	router.GET("/api/trades/:id", tradeHandler.GetTrade)

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		// Trade endpoints
		api.GET("/trades/my-trades", tradeHandler.GetMyTrades)
		api.POST("/trades", tradeHandler.CreateTrade)
		api.PUT("/trades/:id", tradeHandler.UpdateTrade)
		api.DELETE("/trades/:id", tradeHandler.DeleteTrade)

		// Offer endpoints
		api.GET("/offers/trade/:tradeId", offerHandler.GetOffersByTrade)
		api.POST("/offers/trade/:tradeId", offerHandler.CreateOffer)
		api.GET("/offers/my-offers", offerHandler.GetMyOffers)
		api.PUT("/offers/:id/respond", offerHandler.RespondToOffer)
		api.DELETE("/offers/:id", offerHandler.WithdrawOffer)

		// Transaction endpoints
		api.GET("/transactions/my-transactions", txHandler.GetMyTransactions)
		api.GET("/transactions/:id", txHandler.GetTransaction)
		api.POST("/transactions/:id/complete", txHandler.CompleteTransaction)
		api.POST("/transactions/:id/rate", txHandler.RateTransaction)
		api.POST("/transactions/:id/cancel", txHandler.CancelTransaction)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

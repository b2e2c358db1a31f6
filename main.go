package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Liamshmuel20/Rant.GO/config"
	"github.com/Liamshmuel20/Rant.GO/handler"
	"github.com/Liamshmuel20/Rant.GO/middleware"
	"github.com/Liamshmuel20/Rant.GO/pkg/logger"
	"github.com/Liamshmuel20/Rant.GO/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Open the database and migrate the schema
	store, err := service.OpenStore(cfg.Database.DSN)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}

	// Initialize object storage for product images
	minioSvc, err := service.NewMinioService(&cfg.Minio)
	if err != nil {
		slog.Error("failed to initialize MINIO service", "error", err)
		os.Exit(1)
	}
	if err := minioSvc.EnsureBucket(context.Background()); err != nil {
		slog.Error("failed to ensure MINIO bucket", "error", err)
		os.Exit(1)
	}

	mailer := service.NewMailer(&cfg.Email)
	rentals := service.NewRentalService(store, mailer, cfg)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(store, cfg)
	productHandler := handler.NewProductHandler(store, minioSvc)
	rentalHandler := handler.NewRentalHandler(store, rentals)
	contractHandler := handler.NewContractHandler(store, rentals, minioSvc)
	paymentHandler := handler.NewPaymentHandler(store, rentals)
	chatHandler := handler.NewChatHandler(store, rentals)
	notificationHandler := handler.NewNotificationHandler(store)
	adminHandler := handler.NewAdminHandler(store, rentals)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())                 // Request ID for tracing
	router.Use(middleware.Recovery())                  // Panic recovery
	router.Use(middleware.RequestLogger())             // Access logging
	router.Use(corsMiddleware())                       // CORS
	router.Use(middleware.RateLimit(100, time.Minute)) // Rate limiting: 100 requests per minute

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)
		protected.PUT("/auth/me", authHandler.UpdateProfile)

		protected.POST("/products", productHandler.Create)
		protected.GET("/products", productHandler.List)
		protected.GET("/products/:id", productHandler.Get)
		protected.POST("/products/:id/image", productHandler.UploadImage)
		protected.DELETE("/products/:id", productHandler.Delete)

		protected.POST("/requests", rentalHandler.Submit)
		protected.GET("/requests", rentalHandler.List)
		protected.POST("/requests/:id/approve", rentalHandler.Approve)
		protected.POST("/requests/:id/reject", rentalHandler.Reject)

		protected.GET("/contracts", contractHandler.List)
		protected.POST("/contracts", contractHandler.CreateDraft)
		protected.GET("/contracts/:id", contractHandler.Get)
		protected.POST("/contracts/:id/send", contractHandler.Send)
		protected.POST("/contracts/:id/sign", contractHandler.Sign)
		protected.POST("/contracts/:id/export", contractHandler.Export)
		protected.POST("/contracts/:id/cancel", contractHandler.Cancel)

		protected.POST("/payments/:id/confirm", paymentHandler.Confirm)
		protected.GET("/payments", paymentHandler.List)

		protected.GET("/contracts/:id/messages", chatHandler.ListMessages)
		protected.POST("/contracts/:id/messages", chatHandler.SendMessage)

		protected.GET("/notifications", notificationHandler.List)
		protected.POST("/notifications/:id/read", notificationHandler.MarkRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllRead)
		protected.DELETE("/notifications/:id", notificationHandler.Delete)
		protected.GET("/notifications/badges", notificationHandler.Badges)
	}

	// Admin routes
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/payments", adminHandler.ListPendingPayments)
		admin.POST("/payments/:id/approve", adminHandler.ApprovePayment)
		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/users/:id", adminHandler.GetUser)
		admin.GET("/stats", adminHandler.Stats)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

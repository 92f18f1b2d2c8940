package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dukalink/duka_api/internal/cache"
	"github.com/dukalink/duka_api/internal/config"
	"github.com/dukalink/duka_api/internal/database"
	"github.com/dukalink/duka_api/internal/handler"
	"github.com/dukalink/duka_api/internal/middleware"
	"github.com/dukalink/duka_api/internal/migrations"
	"github.com/dukalink/duka_api/internal/models"
	"github.com/dukalink/duka_api/internal/repository"
	"github.com/dukalink/duka_api/internal/service"
	"github.com/dukalink/duka_api/internal/storage"
	"github.com/dukalink/duka_api/internal/utils"
)

// main is the application entrypoint for the Duka API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting duka api")

	utils.SetJWTSecret(cfg.JWTSecret)

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations against the explicit schema registry
	registry := models.NewRegistry()
	if err := migrations.Apply(db.DB, registry); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	catalogCache := cache.NewCatalogCache(redisClient)

	// 3c. Initialize S3 image store
	var imageStore *storage.ImageStore
	imageStore, err = storage.NewImageStore(context.Background(), &cfg.S3)
	if err != nil {
		log.Warn().Err(err).Msg("S3 image store initialization failed - product image upload will be disabled")
		imageStore = nil
	}

	// 4. Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// 5. Initialize services
	authSvc := service.NewAuthService(userRepo)
	userSvc := service.NewUserService(userRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	var uploader service.ImageUploader
	if imageStore != nil {
		uploader = imageStore
	}
	productSvc := service.NewProductService(productRepo, categoryRepo, catalogCache, uploader)
	orderSvc := service.NewOrderService(orderRepo, productRepo)

	// 6. Initialize handlers
	handlers := &Handlers{
		Health:   handler.NewHealthHandler(db, redisClient),
		Auth:     handler.NewAuthHandler(authSvc),
		User:     handler.NewUserHandler(userSvc),
		Category: handler.NewCategoryHandler(categorySvc),
		Product:  handler.NewProductHandler(productSvc),
		Order:    handler.NewOrderHandler(orderSvc),
	}

	// 7. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware()

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 9. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 11. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health   *handler.HealthHandler
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Order    *handler.OrderHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Public auth endpoints
	auth := router.Group("/v1/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
	}

	// Public catalog endpoints
	router.GET("/v1/categories", handlers.Category.ListCategories)
	router.GET("/v1/categories/:id", handlers.Category.GetCategory)
	router.GET("/v1/products", handlers.Product.ListProducts)
	router.GET("/v1/products/:id", handlers.Product.GetProduct)

	// Authenticated user endpoints
	users := router.Group("/v1/users")
	users.Use(jwtMiddleware.Handle())
	{
		users.GET("/me", handlers.User.GetMe)
		users.PUT("/me", handlers.User.UpdateMe)
	}

	// Authenticated order endpoints
	orders := router.Group("/v1/orders")
	orders.Use(jwtMiddleware.Handle())
	{
		orders.POST("", handlers.Order.CreateOrder)
		orders.GET("", handlers.Order.ListMyOrders)
		orders.GET("/:id", handlers.Order.GetOrder)
	}

	// Admin routes
	admin := router.Group("/v1/admin")
	admin.Use(jwtMiddleware.Handle(), jwtMiddleware.RequireAdmin())
	{
		// User management
		admin.GET("/users", handlers.User.ListUsers)
		admin.PUT("/users/:id/active", handlers.User.SetUserActive)

		// Category management
		admin.POST("/categories", handlers.Category.CreateCategory)
		admin.PUT("/categories/:id", handlers.Category.UpdateCategory)
		admin.DELETE("/categories/:id", handlers.Category.DeleteCategory)

		// Product management
		admin.POST("/products", handlers.Product.CreateProduct)
		admin.PUT("/products/:id", handlers.Product.UpdateProduct)
		admin.DELETE("/products/:id", handlers.Product.DeleteProduct)
		admin.POST("/products/:id/image", handlers.Product.UploadImage)

		// Order management
		admin.GET("/orders", handlers.Order.ListOrders)
		admin.PUT("/orders/:id/status", handlers.Order.UpdateOrderStatus)
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"github.com/redis/go-redis/v9"

	"techmart/internal/caching"
	"techmart/internal/handlers"
	"techmart/internal/jobs/background"
	"techmart/internal/middleware"
	"techmart/internal/repositories"
	"techmart/internal/services"
	"techmart/pkg/database"
)

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", err, redisAddr)
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	imageBucket := os.Getenv("IMAGE_BUCKET")
	if imageBucket == "" {
		imageBucket = "techmart-images"
	}

	minioSvc, err := services.NewMinioService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}
	if err := minioSvc.EnsureBucketExists(context.Background(), imageBucket); err != nil {
		log.Printf("WARN: Failed to ensure image bucket exists: %v", err)
	}

	// Create repositories
	categoryRepo := repositories.NewCategoryRepo(pool)
	subcategoryRepo := repositories.NewSubcategoryRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	categoryDescRepo := repositories.NewCategoryDescriptionRepo(pool)
	descriptionRepo := repositories.NewDescriptionRepo(pool)
	rowRepo := repositories.NewDescriptionRowRepo(pool)
	userRepo := repositories.NewUserRepo(pool)

	// Create cache service
	cacheSvc := caching.NewCacheServiceWithClient(redisClient)

	// Create services
	materializer := services.NewMaterializer(categoryRepo, subcategoryRepo, productRepo, categoryDescRepo, descriptionRepo, rowRepo, cacheSvc)
	catalogSvc := services.NewCatalogService(categoryRepo, subcategoryRepo, productRepo, categoryDescRepo, descriptionRepo, rowRepo, materializer, cacheSvc)
	authSvc := services.NewAuthService(cacheSvc, jwtSecret, 15*time.Minute, 7*24*time.Hour)
	otpSvc := services.NewOTPService(cacheSvc, services.NewLogMailer(), nil, nil)

	// Create handlers
	categoryHandlers := handlers.NewCategoryHandlers(catalogSvc)
	subcategoryHandlers := handlers.NewSubcategoryHandlers(catalogSvc)
	productHandlers := handlers.NewProductHandlers(catalogSvc, minioSvc, imageBucket)
	descriptionHandlers := handlers.NewDescriptionHandlers(catalogSvc)
	authHandlers := handlers.NewAuthHandlers(userRepo, authSvc, otpSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, redisClient, minioSvc, imageBucket)

	// Background jobs
	scheduler := background.NewJobScheduler(materializer, catalogSvc, cacheSvc)
	if err := scheduler.Start(); err != nil {
		log.Printf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())

	requireAuth := middleware.JWT(authSvc)

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	v1 := e.Group("/v1")

	// Auth endpoints
	auth := v1.Group("/auth")
	auth.POST("/signup", authHandlers.Signup)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)
	auth.POST("/logout", authHandlers.Logout)
	auth.POST("/forgot-password", authHandlers.ForgotPassword)
	auth.POST("/reset-password", authHandlers.ResetPassword)
	auth.POST("/change-password", authHandlers.ChangePassword, requireAuth)
	auth.GET("/profile", authHandlers.GetProfile, requireAuth)
	auth.PATCH("/profile", authHandlers.UpdateProfile, requireAuth)

	// Public catalog reads
	v1.GET("/categories", categoryHandlers.ListCategories)
	v1.GET("/categories/:slug", categoryHandlers.GetCategory)
	v1.GET("/subcategories", subcategoryHandlers.ListSubcategories)
	v1.GET("/subcategories/:slug", subcategoryHandlers.GetSubcategory)
	v1.GET("/products", productHandlers.ListProducts)
	v1.GET("/products/:slug", productHandlers.GetProduct)
	v1.GET("/products/:slug/image", productHandlers.GetProductImageURL)
	v1.GET("/descriptions/:id", descriptionHandlers.GetDescription)
	v1.GET("/description-rows/:id", descriptionHandlers.GetDescriptionRow)

	// Catalog writes require authentication
	v1.POST("/categories", categoryHandlers.CreateCategory, requireAuth)
	v1.PATCH("/categories/:slug", categoryHandlers.UpdateCategory, requireAuth)
	v1.DELETE("/categories/:slug", categoryHandlers.DeleteCategory, requireAuth)

	v1.POST("/subcategories", subcategoryHandlers.CreateSubcategory, requireAuth)
	v1.PATCH("/subcategories/:slug", subcategoryHandlers.UpdateSubcategory, requireAuth)
	v1.DELETE("/subcategories/:slug", subcategoryHandlers.DeleteSubcategory, requireAuth)

	v1.POST("/subcategory-descriptions", subcategoryHandlers.CreateSubcategoryDescription, requireAuth)
	v1.PATCH("/subcategory-descriptions/:id", subcategoryHandlers.UpdateSubcategoryDescription, requireAuth)
	v1.DELETE("/subcategory-descriptions/:id", subcategoryHandlers.DeleteSubcategoryDescription, requireAuth)

	v1.POST("/products", productHandlers.CreateProduct, requireAuth)
	v1.PATCH("/products/:slug", productHandlers.UpdateProduct, requireAuth)
	v1.DELETE("/products/:slug", productHandlers.DeleteProduct, requireAuth)
	v1.POST("/products/:slug/image", productHandlers.UploadProductImage, requireAuth)
	v1.DELETE("/products/:slug/image", productHandlers.DeleteProductImage, requireAuth)

	v1.POST("/descriptions", descriptionHandlers.CreateDescription, requireAuth)
	v1.PATCH("/descriptions/:id", descriptionHandlers.UpdateDescription, requireAuth)
	v1.DELETE("/descriptions/:id", descriptionHandlers.DeleteDescription, requireAuth)

	v1.POST("/description-rows", descriptionHandlers.CreateDescriptionRow, requireAuth)
	v1.PATCH("/description-rows/:id", descriptionHandlers.UpdateDescriptionRow, requireAuth)
	v1.DELETE("/description-rows/:id", descriptionHandlers.DeleteDescriptionRow, requireAuth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		if err := e.Start(":" + port); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
}

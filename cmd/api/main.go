package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"milyem/internal/config"
	"milyem/internal/database"
	"milyem/internal/handlers"
	"milyem/internal/logger"
	"milyem/internal/mailer"
	"milyem/internal/marketdata"
	"milyem/internal/middleware"
	"milyem/internal/services"
	"milyem/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "milyem/internal/docs" // Import swagger docs
)

// @title           Milyem API
// @version         1.0
// @description     Milyem is a jewelry cost-analysis service: it prices quoted products against live gold and currency rates, reference rate tables and per-stone lookups, and reports profit or loss per piece and per batch.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	validator.Register()

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	manufacturerService := services.NewManufacturerService(db)
	rateService := services.NewRateService(db)
	referenceService := services.NewReferenceService(db)
	analysisService := services.NewAnalysisService(db, rateService, referenceService, manufacturerService)
	batchService := services.NewBatchService(db, manufacturerService)
	reportService := services.NewReportService(db, mailer.New(appConfig), appConfig)
	auditService := services.NewAuditService(db)

	// Market data refresher: on-demand endpoint plus a scheduled fan-out.
	provider := marketdata.NewYahooProvider(nil)
	refresher := marketdata.NewRefresher(db, provider, rateService, appConfig.BaseCurrency, appConfig.RateFetchTimeout)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(appConfig.RateRefreshSchedule, func() {
		if err := refresher.RefreshAll(context.Background()); err != nil {
			log.Errorw("Scheduled market rate refresh failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule rate refresh %q: %w", appConfig.RateRefreshSchedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	manufacturerHandler := handlers.NewManufacturerHandler(manufacturerService, auditService)
	rateHandler := handlers.NewRateHandler(rateService, refresher, auditService)
	referenceHandler := handlers.NewReferenceHandler(referenceService, auditService)
	analysisHandler := handlers.NewAnalysisHandler(analysisService, auditService)
	batchHandler := handlers.NewBatchHandler(batchService, auditService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Manufacturer routes
	manufacturers := protected.Group("/manufacturers")
	manufacturers.POST("", manufacturerHandler.CreateManufacturer)
	manufacturers.GET("", manufacturerHandler.GetUserManufacturers)
	manufacturers.GET("/:id", manufacturerHandler.GetManufacturerByID)
	manufacturers.PUT("/:id", manufacturerHandler.UpdateManufacturer)
	manufacturers.DELETE("/:id", manufacturerHandler.DeleteManufacturer)

	// Market rate routes
	rates := protected.Group("/rates")
	rates.POST("", rateHandler.RecordRate)
	rates.GET("", rateHandler.GetRates)
	rates.GET("/latest", rateHandler.GetLatestRate)
	rates.POST("/refresh", rateHandler.RefreshRate)

	// Reference table routes
	reference := protected.Group("/reference")
	reference.POST("/labor-rates", referenceHandler.CreateLaborRate)
	reference.GET("/labor-rates", referenceHandler.ListLaborRates)
	reference.PUT("/labor-rates/:id", referenceHandler.UpdateLaborRate)
	reference.DELETE("/labor-rates/:id", referenceHandler.DeleteLaborRate)
	reference.POST("/polish-rates", referenceHandler.CreatePolishRate)
	reference.GET("/polish-rates", referenceHandler.ListPolishRates)
	reference.PUT("/polish-rates/:id", referenceHandler.UpdatePolishRate)
	reference.DELETE("/polish-rates/:id", referenceHandler.DeletePolishRate)
	reference.POST("/setting-rates", referenceHandler.CreateSettingRate)
	reference.GET("/setting-rates", referenceHandler.ListSettingRates)
	reference.PUT("/setting-rates/:id", referenceHandler.UpdateSettingRate)
	reference.DELETE("/setting-rates/:id", referenceHandler.DeleteSettingRate)
	reference.POST("/gemstone-prices", referenceHandler.CreateGemstonePrice)
	reference.GET("/gemstone-prices", referenceHandler.ListGemstonePrices)
	reference.PUT("/gemstone-prices/:id", referenceHandler.UpdateGemstonePrice)
	reference.DELETE("/gemstone-prices/:id", referenceHandler.DeleteGemstonePrice)
	reference.POST("/diamond-prices", referenceHandler.CreateDiamondPrice)
	reference.GET("/diamond-prices", referenceHandler.ListDiamondPrices)
	reference.PUT("/diamond-prices/:id", referenceHandler.UpdateDiamondPrice)
	reference.DELETE("/diamond-prices/:id", referenceHandler.DeleteDiamondPrice)
	reference.POST("/diamond-discounts", referenceHandler.CreateDiamondDiscount)
	reference.GET("/diamond-discounts", referenceHandler.ListDiamondDiscounts)
	reference.PUT("/diamond-discounts/:id", referenceHandler.UpdateDiamondDiscount)
	reference.DELETE("/diamond-discounts/:id", referenceHandler.DeleteDiamondDiscount)

	// Analysis routes
	analyses := protected.Group("/analyses")
	analyses.POST("", analysisHandler.CreateAnalysis)
	analyses.GET("", analysisHandler.GetUserAnalyses)
	analyses.GET("/export/excel", reportHandler.GetAnalysesExcel)
	analyses.GET("/export/csv", reportHandler.GetAnalysesCSV)
	analyses.GET("/:id", analysisHandler.GetAnalysisByID)
	analyses.PUT("/:id", analysisHandler.UpdateAnalysis)
	analyses.DELETE("/:id", analysisHandler.DeleteAnalysis)

	// Batch routes
	batches := protected.Group("/batches")
	batches.POST("", batchHandler.CreateBatch)
	batches.GET("", batchHandler.GetUserBatches)
	batches.GET("/:id", batchHandler.GetBatchByID)
	batches.GET("/:id/summary", batchHandler.GetBatchSummary)
	batches.GET("/:id/report", reportHandler.GetBatchPDF)
	batches.POST("/:id/report/email", reportHandler.EmailBatchReport)
	batches.DELETE("/:id", batchHandler.DeleteBatch)

	log.Infof("Starting Milyem backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

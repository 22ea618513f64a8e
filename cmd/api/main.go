package main

import (
	"fmt"
	"net/http"
	"os"

	"debentra/internal/config"
	"debentra/internal/database"
	"debentra/internal/engine"
	"debentra/internal/handlers"
	"debentra/internal/logger"
	"debentra/internal/middleware"
	"debentra/internal/rbac"
	"debentra/internal/services"
	"debentra/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "debentra/internal/docs" // Import swagger docs
)

// @title           Debentra API
// @version         1.0
// @description     Debentra is an NCD debenture platform: series lifecycle management, an investor ledger with lock-in-aware redemptions, and compliance tracking.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	policy := engine.Policy{
		EarlyExitPenaltyBps:      appConfig.EarlyExitPenaltyBps,
		ComplianceMinFundsRaised: appConfig.ComplianceMinFundsRaised,
		ComplianceMinInvestors:   appConfig.ComplianceMinInvestors,
		RetentionWindowDays:      appConfig.RetentionWindowDays,
	}

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db)
	ledgerService := services.NewLedgerService(db, policy)
	seriesService := services.NewSeriesService(db, ledgerService, policy)
	investorService := services.NewInvestorService(db)
	complianceService := services.NewComplianceService(db, policy)
	dashboardService := services.NewDashboardService(db, policy)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	seriesHandler := handlers.NewSeriesHandler(seriesService, auditService)
	investorHandler := handlers.NewInvestorHandler(investorService, auditService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService, auditService)
	complianceHandler := handlers.NewComplianceHandler(complianceService, auditService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

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

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Series lifecycle routes
	series := protected.Group("/series")
	series.POST("", middleware.RequirePermission(rbac.ModuleSeries, rbac.ActionCreate), seriesHandler.CreateSeries)
	series.GET("", middleware.RequirePermission(rbac.ModuleSeries, rbac.ActionView), seriesHandler.ListSeries)
	series.GET("/:id", middleware.RequirePermission(rbac.ModuleSeries, rbac.ActionView), seriesHandler.GetSeries)
	series.POST("/:id/approve", middleware.RequirePermission(rbac.ModuleSeries, rbac.ActionEdit), seriesHandler.ApproveSeries)
	series.POST("/:id/reject", middleware.RequirePermission(rbac.ModuleSeries, rbac.ActionEdit), seriesHandler.RejectSeries)
	series.PUT("/:id", middleware.RequirePermission(rbac.ModuleSeries, rbac.ActionEdit), seriesHandler.RenameSeries)
	series.DELETE("/:id", middleware.RequirePermission(rbac.ModuleSeries, rbac.ActionDelete), seriesHandler.DeleteSeries)

	// Compliance routes
	series.PUT("/:id/compliance", middleware.RequirePermission(rbac.ModuleCompliance, rbac.ActionEdit), complianceHandler.UpdateBucket)
	series.GET("/:id/compliance", middleware.RequirePermission(rbac.ModuleCompliance, rbac.ActionView), complianceHandler.GetSeriesCompliance)
	protected.GET("/compliance/dashboard", middleware.RequirePermission(rbac.ModuleCompliance, rbac.ActionView), complianceHandler.GetComplianceDashboard)

	// Investor and ledger routes
	investors := protected.Group("/investors")
	investors.POST("", middleware.RequirePermission(rbac.ModuleInvestors, rbac.ActionCreate), investorHandler.OnboardInvestor)
	investors.GET("", middleware.RequirePermission(rbac.ModuleInvestors, rbac.ActionView), investorHandler.ListInvestors)
	investors.GET("/:id", middleware.RequirePermission(rbac.ModuleInvestors, rbac.ActionView), investorHandler.GetInvestor)
	investors.POST("/:id/investments", middleware.RequirePermission(rbac.ModuleLedger, rbac.ActionCreate), ledgerHandler.AddInvestment)
	investors.GET("/:id/investments/:seriesId/preview", middleware.RequirePermission(rbac.ModuleLedger, rbac.ActionView), ledgerHandler.PreviewExit)
	investors.DELETE("/:id/investments/:seriesId", middleware.RequirePermission(rbac.ModuleLedger, rbac.ActionDelete), ledgerHandler.RemoveInvestment)
	investors.GET("/:id/preview-delete", middleware.RequirePermission(rbac.ModuleLedger, rbac.ActionView), ledgerHandler.PreviewAccountExit)
	investors.DELETE("/:id", middleware.RequirePermission(rbac.ModuleLedger, rbac.ActionDelete), ledgerHandler.DeleteInvestor)

	// Dashboard routes
	protected.GET("/dashboard/retention", middleware.RequirePermission(rbac.ModuleDashboard, rbac.ActionView), dashboardHandler.GetRetention)

	log.Infof("Starting Debentra backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

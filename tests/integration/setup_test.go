package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"debentra/internal/engine"
	"debentra/internal/handlers"
	"debentra/internal/logger"
	"debentra/internal/middleware"
	"debentra/internal/models"
	"debentra/internal/rbac"
	"debentra/internal/services"
	"debentra/internal/testutil"
	"debentra/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Series{},
		&models.Investor{},
		&models.Investment{},
		&models.ComplianceRecord{},
		&models.ExitEvent{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	policy := engine.DefaultPolicy()

	// Services
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db)
	ledgerService := services.NewLedgerService(db, policy)
	seriesService := services.NewSeriesService(db, ledgerService, policy)
	investorService := services.NewInvestorService(db)
	complianceService := services.NewComplianceService(db, policy)
	dashboardService := services.NewDashboardService(db, policy)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	seriesHandler := handlers.NewSeriesHandler(seriesService, auditService)
	investorHandler := handlers.NewInvestorHandler(investorService, auditService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService, auditService)
	complianceHandler := handlers.NewComplianceHandler(complianceService, auditService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	series := protected.Group("/series")
	series.POST("", middleware.RequirePermission(rbac.ModuleSeries, rbac.ActionCreate), seriesHandler.CreateSeries)
	series.GET("", middleware.RequirePermission(rbac.ModuleSeries, rbac.ActionView), seriesHandler.ListSeries)
	series.GET("/:id", middleware.RequirePermission(rbac.ModuleSeries, rbac.ActionView), seriesHandler.GetSeries)
	series.POST("/:id/approve", middleware.RequirePermission(rbac.ModuleSeries, rbac.ActionEdit), seriesHandler.ApproveSeries)
	series.POST("/:id/reject", middleware.RequirePermission(rbac.ModuleSeries, rbac.ActionEdit), seriesHandler.RejectSeries)
	series.PUT("/:id", middleware.RequirePermission(rbac.ModuleSeries, rbac.ActionEdit), seriesHandler.RenameSeries)
	series.DELETE("/:id", middleware.RequirePermission(rbac.ModuleSeries, rbac.ActionDelete), seriesHandler.DeleteSeries)
	series.PUT("/:id/compliance", middleware.RequirePermission(rbac.ModuleCompliance, rbac.ActionEdit), complianceHandler.UpdateBucket)
	series.GET("/:id/compliance", middleware.RequirePermission(rbac.ModuleCompliance, rbac.ActionView), complianceHandler.GetSeriesCompliance)
	protected.GET("/compliance/dashboard", middleware.RequirePermission(rbac.ModuleCompliance, rbac.ActionView), complianceHandler.GetComplianceDashboard)

	investors := protected.Group("/investors")
	investors.POST("", middleware.RequirePermission(rbac.ModuleInvestors, rbac.ActionCreate), investorHandler.OnboardInvestor)
	investors.GET("", middleware.RequirePermission(rbac.ModuleInvestors, rbac.ActionView), investorHandler.ListInvestors)
	investors.GET("/:id", middleware.RequirePermission(rbac.ModuleInvestors, rbac.ActionView), investorHandler.GetInvestor)
	investors.POST("/:id/investments", middleware.RequirePermission(rbac.ModuleLedger, rbac.ActionCreate), ledgerHandler.AddInvestment)
	investors.GET("/:id/investments/:seriesId/preview", middleware.RequirePermission(rbac.ModuleLedger, rbac.ActionView), ledgerHandler.PreviewExit)
	investors.DELETE("/:id/investments/:seriesId", middleware.RequirePermission(rbac.ModuleLedger, rbac.ActionDelete), ledgerHandler.RemoveInvestment)
	investors.GET("/:id/preview-delete", middleware.RequirePermission(rbac.ModuleLedger, rbac.ActionView), ledgerHandler.PreviewAccountExit)
	investors.DELETE("/:id", middleware.RequirePermission(rbac.ModuleLedger, rbac.ActionDelete), ledgerHandler.DeleteInvestor)

	protected.GET("/dashboard/retention", middleware.RequirePermission(rbac.ModuleDashboard, rbac.ActionView), dashboardHandler.GetRetention)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a portal user with the given role and returns the token.
func (app *testApp) registerUser(t *testing.T, email, role string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":"password123","name":"Test User","role":%q}`, email, role)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["token"].(string)
}

// adminToken registers an admin user with a unique email and returns the token.
func (app *testApp) adminToken(t *testing.T) string {
	t.Helper()
	n := dbCounter.Add(1)
	return app.registerUser(t, fmt.Sprintf("admin%d@test.com", n), "admin")
}

// createSeries creates and approves a series through the API, returning its ID.
func (app *testApp) createSeries(t *testing.T, token, name string, lockInOffset int) string {
	t.Helper()
	body := fmt.Sprintf(`{
		"name": %q,
		"issue_date": %q,
		"maturity_date": %q,
		"lock_in_date": %q,
		"min_investment": 10000,
		"target_amount": 1000000,
		"face_value": 1000,
		"interest_rate": 12
	}`, name, testutil.Day(-30), testutil.Day(365), testutil.Day(lockInOffset))

	rec := app.request("POST", "/api/v1/series", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create series failed: %d %s", rec.Code, rec.Body.String())
	}
	series := parseJSON(t, rec)["series"].(map[string]interface{})
	id := series["id"].(string)

	rec = app.request("POST", "/api/v1/series/"+id+"/approve", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("approve series failed: %d %s", rec.Code, rec.Body.String())
	}
	return id
}

// onboardInvestor creates an investor through the API and returns its ID.
func (app *testApp) onboardInvestor(t *testing.T, token, businessKey string) string {
	t.Helper()
	body := fmt.Sprintf(`{"investor_id":%q,"name":"Test Investor"}`, businessKey)
	rec := app.request("POST", "/api/v1/investors", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("onboard investor failed: %d %s", rec.Code, rec.Body.String())
	}
	investor := parseJSON(t, rec)["investor"].(map[string]interface{})
	return investor["id"].(string)
}

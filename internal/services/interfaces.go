package services

import (
	"time"

	"gorm.io/gorm"

	"debentra/internal/engine"
	"debentra/internal/models"
	"debentra/internal/pagination"
)

// UserServicer defines the contract for admin-user business logic.
type UserServicer interface {
	CreateUser(email, password, name string, role models.Role) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
}

// SeriesInput carries the fields for creating a series. Dates arrive in
// either DD/MM/YYYY or ISO 8601 form and are stored as given.
type SeriesInput struct {
	Name                  string
	SeriesCode            string
	IssueDate             string
	MaturityDate          string
	LockInDate            string
	SubscriptionStartDate string
	SubscriptionEndDate   string
	FaceValue             int64
	MinInvestment         int64
	TargetAmount          int64
	TotalIssueSize        int64
	InterestRate          float64
}

// SeriesServicer defines the contract for series lifecycle management.
type SeriesServicer interface {
	CreateSeries(input SeriesInput) (*models.Series, error)
	GetSeriesByID(id string) (*models.Series, error)
	ListSeries(page pagination.PageRequest) (*pagination.PageResponse[models.Series], error)
	ApproveSeries(id string) (*models.Series, error)
	RejectSeries(id string) (*models.Series, error)
	RenameSeries(id, newName string) (*models.Series, error)
	DeleteSeries(id string) error
}

// InvestorServicer defines the contract for investor onboarding and views.
type InvestorServicer interface {
	OnboardInvestor(investorID, name, email, phone string) (*models.Investor, error)
	GetInvestorByID(id string) (*models.Investor, error)
	ListInvestors(page pagination.PageRequest) (*pagination.PageResponse[models.Investor], error)
}

// ExitLine is the quoted exit of one holding, surfaced to the operator for
// confirmation before any mutation happens.
type ExitLine struct {
	SeriesID   string           `json:"series_id"`
	SeriesName string           `json:"series_name"`
	Amount     int64            `json:"amount"`
	Quote      engine.ExitQuote `json:"quote"`
}

// ExitResult is the outcome of a committed partial exit.
type ExitResult struct {
	Investor *models.Investor `json:"investor"`
	Series   *models.Series   `json:"series"`
	Line     ExitLine         `json:"line"`
}

// AccountExit aggregates the per-series quotes for a full account deletion.
type AccountExit struct {
	Investor      *models.Investor `json:"investor"`
	Lines         []ExitLine       `json:"lines"`
	RefundAmount  int64            `json:"refund_amount"`
	PenaltyAmount int64            `json:"penalty_amount"`
}

// LedgerServicer owns every mutation of the investor/series relationship.
// All methods are atomic read-modify-write units; concurrent calls are
// serialized internally (single-writer chokepoint).
type LedgerServicer interface {
	AddInvestment(investorID, seriesID string, amount int64, date string) (*models.Investor, *models.Series, error)
	PreviewExit(investorID, seriesID string, today time.Time) (*ExitLine, error)
	RemoveInvestment(investorID, seriesID string, today time.Time) (*ExitResult, error)
	PreviewAccountExit(investorID string, today time.Time) (*AccountExit, error)
	DeleteInvestor(investorID string, today time.Time) (*AccountExit, error)
	// RenameSeriesEverywhere rewrites the denormalized series name on every
	// holding, inside the caller's transaction.
	RenameSeriesEverywhere(tx *gorm.DB, oldName, newName string) error
}

// BucketSummary is the display form of one compliance bucket.
type BucketSummary struct {
	Phase      models.CompliancePhase `json:"phase"`
	Completed  int                    `json:"completed"`
	Total      int                    `json:"total"`
	Percentage int                    `json:"percentage"`
}

// ComplianceSummary is the full compliance picture for one series.
type ComplianceSummary struct {
	SeriesID   string          `json:"series_id"`
	SeriesName string          `json:"series_name"`
	Eligible   bool            `json:"eligible"`
	Buckets    []BucketSummary `json:"buckets"`
	Average    int             `json:"average"`
	Category   engine.Category `json:"category"`
}

// ComplianceServicer defines the contract for compliance tracking.
type ComplianceServicer interface {
	UpdateBucket(seriesID string, phase models.CompliancePhase, completed, total int) (*models.ComplianceRecord, error)
	SeriesCompliance(seriesID string, today time.Time) (*ComplianceSummary, error)
	Dashboard(today time.Time) (map[engine.Category][]ComplianceSummary, error)
}

// RetentionSummary is the dashboard view of the trailing retention window.
type RetentionSummary struct {
	TotalInvestors   int       `json:"total_investors"`
	ChurnCount       int       `json:"churn_count"`
	EarlyRedemptions int       `json:"early_redemptions"`
	RetentionRate    int       `json:"retention_rate"`
	WindowDays       int       `json:"window_days"`
	WindowStart      time.Time `json:"window_start"`
}

// DashboardServicer defines the contract for aggregate dashboards.
type DashboardServicer interface {
	Retention(now time.Time) (*RetentionSummary, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(actorName, actorRole, action, entityType, entityID, ipAddress string, changes map[string]interface{})
}

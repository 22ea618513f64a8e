package models

// SeriesStatus is the effective lifecycle state of a series. Except for the
// terminal REJECTED state it is always derived from the stored dates and the
// approval flag, never written directly.
type SeriesStatus string

const (
	SeriesStatusDraft     SeriesStatus = "DRAFT"
	SeriesStatusRejected  SeriesStatus = "REJECTED"
	SeriesStatusUpcoming  SeriesStatus = "upcoming"
	SeriesStatusAccepting SeriesStatus = "accepting"
	SeriesStatusActive    SeriesStatus = "active"
	SeriesStatusMatured   SeriesStatus = "matured"
)

// ApprovalStatus tracks the manual approval workflow of a series.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// InterestFrequency is fixed to monthly non-cumulative payouts for all NCD
// series issued on the platform.
const InterestFrequencyMonthly = "monthly"

// Series represents one NCD issuance instrument. Dates are kept as the raw
// strings received from the admin forms or the data service (DD/MM/YYYY or
// ISO 8601) and parsed at read time. All monetary figures are whole rupees.
type Series struct {
	Base
	Name       string `gorm:"uniqueIndex;not null" json:"name"`
	SeriesCode string `gorm:"not null" json:"series_code"`

	IssueDate             string `json:"issue_date"`
	MaturityDate          string `json:"maturity_date"`
	LockInDate            string `json:"lock_in_date"`
	SubscriptionStartDate string `json:"subscription_start_date"`
	SubscriptionEndDate   string `json:"subscription_end_date"`
	ReleaseDate           string `json:"release_date"`

	FaceValue         int64   `gorm:"type:bigint;not null" json:"face_value"`
	MinInvestment     int64   `gorm:"type:bigint;not null" json:"min_investment"`
	TargetAmount      int64   `gorm:"type:bigint;not null" json:"target_amount"`
	TotalIssueSize    int64   `gorm:"type:bigint;not null" json:"total_issue_size"`
	InterestRate      float64 `gorm:"not null" json:"interest_rate"`
	InterestFrequency string  `gorm:"not null;default:'monthly'" json:"interest_frequency"`

	// Aggregates owned by the ledger. FundsRaised is the sum of live
	// investment amounts; InvestorCount is the number of distinct investors
	// currently holding the series. Never set outside ledger mutations.
	FundsRaised   int64 `gorm:"type:bigint;not null;default:0" json:"funds_raised"`
	InvestorCount int   `gorm:"not null;default:0" json:"investors"`

	ApprovalStatus ApprovalStatus `gorm:"not null;default:'pending'" json:"approval_status"`

	// Populated at read time by the status resolver.
	Status SeriesStatus `gorm:"-" json:"status"`
	// Populated at read time: funding progress against target, 0-100.
	ProgressPct int `gorm:"-" json:"progress_pct"`
	// Populated at read time: monthly interest payout per face value unit.
	MonthlyPayout int64 `gorm:"-" json:"monthly_payout"`

	Holdings   []Investment       `gorm:"foreignKey:SeriesID" json:"holdings,omitempty"`
	Compliance []ComplianceRecord `gorm:"foreignKey:SeriesID" json:"compliance,omitempty"`
}

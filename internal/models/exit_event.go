package models

import "time"

// ExitEventKind classifies money-out events for the retention dashboard.
type ExitEventKind string

const (
	// ExitChurn is a full account deletion.
	ExitChurn ExitEventKind = "churn"
	// ExitEarlyRedemption is a partial exit before the series lock-in date.
	ExitEarlyRedemption ExitEventKind = "early_redemption"
	// ExitRedemption is a partial exit at or after lock-in (no penalty).
	ExitRedemption ExitEventKind = "redemption"
)

// ExitEvent records one churn or redemption event emitted by the ledger.
// The retention aggregator folds these over a trailing window.
type ExitEvent struct {
	Base
	InvestorID    string        `gorm:"type:uuid;not null;index" json:"investor_id"`
	SeriesID      string        `gorm:"type:uuid;index" json:"series_id,omitempty"`
	Kind          ExitEventKind `gorm:"not null;index" json:"kind"`
	Amount        int64         `gorm:"type:bigint;not null" json:"amount"`
	RefundAmount  int64         `gorm:"type:bigint;not null" json:"refund_amount"`
	PenaltyAmount int64         `gorm:"type:bigint;not null" json:"penalty_amount"`
	OccurredAt    time.Time     `gorm:"not null;index" json:"occurred_at"`
}

package services

import (
	"time"

	"gorm.io/gorm"

	"debentra/internal/engine"
	apperrors "debentra/internal/errors"
	"debentra/internal/models"
)

// dashboardService folds ledger exit events into retention figures.
type dashboardService struct {
	db     *gorm.DB
	policy engine.Policy
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, policy engine.Policy) DashboardServicer {
	return &dashboardService{db: db, policy: policy}
}

// Retention computes the retention rate over the trailing window ending now.
// Events exactly at the window edge count; the investor base includes every
// onboarded investor, churned or not, so the rate reflects the whole book.
func (s *dashboardService) Retention(now time.Time) (*RetentionSummary, error) {
	windowStart := now.AddDate(0, 0, -s.policy.RetentionWindowDays)

	var total int64
	if err := s.db.Model(&models.Investor{}).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var churn int64
	if err := s.db.Model(&models.ExitEvent{}).
		Where("kind = ? AND occurred_at >= ? AND occurred_at <= ?", models.ExitChurn, windowStart, now).
		Count(&churn).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var early int64
	if err := s.db.Model(&models.ExitEvent{}).
		Where("kind = ? AND occurred_at >= ? AND occurred_at <= ?", models.ExitEarlyRedemption, windowStart, now).
		Count(&early).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &RetentionSummary{
		TotalInvestors:   int(total),
		ChurnCount:       int(churn),
		EarlyRedemptions: int(early),
		RetentionRate:    engine.RetentionRate(int(total), int(churn), int(early)),
		WindowDays:       s.policy.RetentionWindowDays,
		WindowStart:      windowStart,
	}, nil
}

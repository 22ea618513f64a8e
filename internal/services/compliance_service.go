package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"debentra/internal/engine"
	apperrors "debentra/internal/errors"
	"debentra/internal/models"
)

// complianceService tracks per-series obligation buckets and derives the
// dashboard categorization.
type complianceService struct {
	db     *gorm.DB
	policy engine.Policy
}

// NewComplianceService creates a new ComplianceServicer.
func NewComplianceService(db *gorm.DB, policy engine.Policy) ComplianceServicer {
	return &complianceService{db: db, policy: policy}
}

// UpdateBucket upserts the completed/total counts for one series phase.
// Fails fast without touching state when the counts are inconsistent.
func (s *complianceService) UpdateBucket(seriesID string, phase models.CompliancePhase, completed, total int) (*models.ComplianceRecord, error) {
	if !models.ValidPhase(phase) {
		return nil, apperrors.ErrUnknownPhase
	}
	if completed < 0 || total < 0 || completed > total {
		return nil, apperrors.ErrInvalidBucketCounts
	}

	var series models.Series
	if err := s.db.First(&series, "id = ?", seriesID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSeriesNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var record models.ComplianceRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txErr := tx.Where("series_id = ? AND phase = ?", seriesID, phase).First(&record).Error
		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			record = models.ComplianceRecord{SeriesID: seriesID, Phase: phase, Completed: completed, Total: total}
			if txErr = tx.Create(&record).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
			return nil
		case txErr != nil:
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		record.Completed = completed
		record.Total = total
		if txErr = tx.Model(&record).Updates(map[string]interface{}{
			"completed": completed,
			"total":     total,
		}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// SeriesCompliance returns the full compliance picture for one series as of
// today. Series that have not passed the eligibility gate report zero across
// every bucket regardless of stored counts.
func (s *complianceService) SeriesCompliance(seriesID string, today time.Time) (*ComplianceSummary, error) {
	var series models.Series
	if err := s.db.First(&series, "id = ?", seriesID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSeriesNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var records []models.ComplianceRecord
	if err := s.db.Where("series_id = ?", seriesID).Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.summarize(&series, records, today), nil
}

func (s *complianceService) summarize(series *models.Series, records []models.ComplianceRecord, today time.Time) *ComplianceSummary {
	status := engine.ResolveStatus(series, today)
	eligible := engine.ComplianceEligible(status, series.FundsRaised, series.InvestorCount, s.policy)

	byPhase := make(map[models.CompliancePhase]models.ComplianceRecord, len(records))
	for _, r := range records {
		byPhase[r.Phase] = r
	}

	summary := &ComplianceSummary{
		SeriesID:   series.ID,
		SeriesName: series.Name,
		Eligible:   eligible,
	}

	var pcts [3]int
	for i, phase := range models.Phases {
		bucket := BucketSummary{Phase: phase}
		if r, ok := byPhase[phase]; ok && eligible {
			bucket.Completed = r.Completed
			bucket.Total = r.Total
			bucket.Percentage = engine.BucketPercentage(r.Completed, r.Total)
		}
		pcts[i] = bucket.Percentage
		summary.Buckets = append(summary.Buckets, bucket)
	}

	summary.Average = engine.AverageCompletion(pcts[0], pcts[1], pcts[2])
	summary.Category = engine.Categorize(summary.Average)
	return summary
}

// Dashboard categorizes every series into the three compliance buckets used
// on the admin dashboard.
func (s *complianceService) Dashboard(today time.Time) (map[engine.Category][]ComplianceSummary, error) {
	var allSeries []models.Series
	if err := s.db.Order("created_at").Find(&allSeries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var records []models.ComplianceRecord
	if err := s.db.Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	bySeries := make(map[string][]models.ComplianceRecord)
	for _, r := range records {
		bySeries[r.SeriesID] = append(bySeries[r.SeriesID], r)
	}

	dashboard := map[engine.Category][]ComplianceSummary{
		engine.CategorySubmitted:     {},
		engine.CategoryPending:       {},
		engine.CategoryYetToBeSubmit: {},
	}
	for i := range allSeries {
		summary := s.summarize(&allSeries[i], bySeries[allSeries[i].ID], today)
		dashboard[summary.Category] = append(dashboard[summary.Category], *summary)
	}
	return dashboard, nil
}

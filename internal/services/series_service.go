package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"debentra/internal/dateutil"
	"debentra/internal/engine"
	apperrors "debentra/internal/errors"
	"debentra/internal/models"
	"debentra/internal/pagination"
)

// seriesService handles series lifecycle business logic. Status is never
// stored: it is resolved from dates and the approval flag every time a
// series is read, in this one place.
type seriesService struct {
	db     *gorm.DB
	ledger LedgerServicer
	policy engine.Policy
}

// NewSeriesService creates a new SeriesServicer.
func NewSeriesService(db *gorm.DB, ledger LedgerServicer, policy engine.Policy) SeriesServicer {
	return &seriesService{db: db, ledger: ledger, policy: policy}
}

// decorate fills the read-time derived fields on a series.
func (s *seriesService) decorate(series *models.Series, today time.Time) {
	series.Status = engine.ResolveStatus(series, today)
	series.ProgressPct = engine.ProgressPct(series.FundsRaised, series.TargetAmount)
	series.MonthlyPayout = engine.MonthlyPayout(series.FaceValue, series.InterestRate)
}

// CreateSeries creates a series in the DRAFT state, pending approval.
func (s *seriesService) CreateSeries(input SeriesInput) (*models.Series, error) {
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "series name is required")
	}
	for _, d := range []string{input.IssueDate, input.MaturityDate} {
		if _, err := dateutil.Parse(d); err != nil {
			return nil, err
		}
	}
	// Lock-in and subscription window are optional but must parse when set.
	for _, d := range []string{input.LockInDate, input.SubscriptionStartDate, input.SubscriptionEndDate} {
		if d == "" {
			continue
		}
		if _, err := dateutil.Parse(d); err != nil {
			return nil, err
		}
	}

	var count int64
	s.db.Model(&models.Series{}).Where("name = ?", input.Name).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateSeries
	}

	series := &models.Series{
		Name:                  input.Name,
		SeriesCode:            input.SeriesCode,
		IssueDate:             input.IssueDate,
		MaturityDate:          input.MaturityDate,
		LockInDate:            input.LockInDate,
		SubscriptionStartDate: input.SubscriptionStartDate,
		SubscriptionEndDate:   input.SubscriptionEndDate,
		FaceValue:             input.FaceValue,
		MinInvestment:         input.MinInvestment,
		TargetAmount:          input.TargetAmount,
		TotalIssueSize:        input.TotalIssueSize,
		InterestRate:          input.InterestRate,
		InterestFrequency:     models.InterestFrequencyMonthly,
		ApprovalStatus:        models.ApprovalPending,
	}
	if err := s.db.Create(series).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.decorate(series, time.Now())
	return series, nil
}

// GetSeriesByID returns a series with its resolved status and progress.
func (s *seriesService) GetSeriesByID(id string) (*models.Series, error) {
	var series models.Series
	if err := s.db.First(&series, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSeriesNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.decorate(&series, time.Now())
	return &series, nil
}

// ListSeries returns a paginated list of series with resolved statuses.
func (s *seriesService) ListSeries(page pagination.PageRequest) (*pagination.PageResponse[models.Series], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Series{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var series []models.Series
	if err := s.db.Order("created_at").Scopes(pagination.Paginate(page)).Find(&series).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	today := time.Now()
	for i := range series {
		s.decorate(&series[i], today)
	}

	result := pagination.NewPageResponse(series, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// ApproveSeries approves a draft series: the approval flag flips and the
// release date is set to the issue date. From here on the status is derived
// from dates alone.
func (s *seriesService) ApproveSeries(id string) (*models.Series, error) {
	series, err := s.GetSeriesByID(id)
	if err != nil {
		return nil, err
	}
	if series.ApprovalStatus == models.ApprovalRejected {
		return nil, apperrors.ErrSeriesRejected
	}

	if err := s.db.Model(series).Updates(map[string]interface{}{
		"approval_status": models.ApprovalApproved,
		"release_date":    series.IssueDate,
	}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetSeriesByID(id)
}

// RejectSeries moves a series to the terminal REJECTED state.
func (s *seriesService) RejectSeries(id string) (*models.Series, error) {
	series, err := s.GetSeriesByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(series).
		Update("approval_status", models.ApprovalRejected).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetSeriesByID(id)
}

// RenameSeries renames a series and propagates the new name to every holding
// through the ledger, atomically. An investor's derived series list and the
// names on their entries must never disagree.
func (s *seriesService) RenameSeries(id, newName string) (*models.Series, error) {
	if newName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "series name is required")
	}
	series, err := s.GetSeriesByID(id)
	if err != nil {
		return nil, err
	}
	if series.Name == newName {
		return series, nil
	}

	var count int64
	s.db.Model(&models.Series{}).Where("name = ? AND id <> ?", newName, id).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateSeries
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Model(&models.Series{}).Where("id = ?", id).
			Update("name", newName).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return s.ledger.RenameSeriesEverywhere(tx, series.Name, newName)
	})
	if err != nil {
		return nil, err
	}
	return s.GetSeriesByID(id)
}

// DeleteSeries removes a series. Permitted only while no money has moved:
// the series must still be DRAFT or upcoming.
func (s *seriesService) DeleteSeries(id string) error {
	series, err := s.GetSeriesByID(id)
	if err != nil {
		return err
	}
	switch series.Status {
	case models.SeriesStatusDraft, models.SeriesStatusUpcoming:
	default:
		return apperrors.ErrSeriesNotDeletable
	}

	if err := s.db.Delete(&models.Series{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

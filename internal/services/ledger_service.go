package services

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"debentra/internal/dateutil"
	"debentra/internal/engine"
	apperrors "debentra/internal/errors"
	"debentra/internal/models"
)

// ledgerService owns the investor/series relationship. Every mutation runs
// under one mutex and one database transaction: the engine assumes no
// interleaving mid-computation, so this service is the single-writer
// chokepoint the rest of the system routes through.
type ledgerService struct {
	db     *gorm.DB
	policy engine.Policy
	mu     sync.Mutex
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB, policy engine.Policy) LedgerServicer {
	return &ledgerService{db: db, policy: policy}
}

// loadInvestorForWrite fetches an investor that is still mutable.
func loadInvestorForWrite(tx *gorm.DB, investorID string) (*models.Investor, error) {
	var investor models.Investor
	if err := tx.First(&investor, "id = ?", investorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestorNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if investor.Status == models.InvestorStatusDeleted {
		return nil, apperrors.ErrInvestorDeleted
	}
	return &investor, nil
}

func loadSeries(tx *gorm.DB, seriesID string) (*models.Series, error) {
	var series models.Series
	if err := tx.First(&series, "id = ?", seriesID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSeriesNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &series, nil
}

// liveHoldings returns the investor's live entries in one series.
func liveHoldings(tx *gorm.DB, investorID, seriesID string) ([]models.Investment, error) {
	var holdings []models.Investment
	if err := tx.Where("investor_id = ? AND series_id = ?", investorID, seriesID).
		Order("created_at").Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return holdings, nil
}

// recomputeSeriesAggregates rewrites funds_raised and investor_count from the
// live holdings. The holdings table is the single source of truth; the
// cached aggregates are never patched incrementally.
func recomputeSeriesAggregates(tx *gorm.DB, seriesID string) error {
	var row struct {
		Funds     int64
		Investors int
	}
	if err := tx.Model(&models.Investment{}).
		Select("COALESCE(SUM(amount), 0) AS funds, COUNT(DISTINCT investor_id) AS investors").
		Where("series_id = ?", seriesID).
		Scan(&row).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := tx.Model(&models.Series{}).Where("id = ?", seriesID).Updates(map[string]interface{}{
		"funds_raised":   row.Funds,
		"investor_count": row.Investors,
	}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// recomputeInvestorTotal rewrites the cached invested sum from live holdings.
func recomputeInvestorTotal(tx *gorm.DB, investorID string) error {
	var total int64
	if err := tx.Model(&models.Investment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("investor_id = ?", investorID).
		Scan(&total).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := tx.Model(&models.Investor{}).Where("id = ?", investorID).
		Update("total_invested", total).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// verifySeriesAggregates fails fast with InvariantViolation when the cached
// series aggregates have drifted from the live holdings, so no mutation is
// built on top of corrupted state.
func verifySeriesAggregates(tx *gorm.DB, series *models.Series) error {
	var row struct {
		Funds     int64
		Investors int
	}
	if err := tx.Model(&models.Investment{}).
		Select("COALESCE(SUM(amount), 0) AS funds, COUNT(DISTINCT investor_id) AS investors").
		Where("series_id = ?", series.ID).
		Scan(&row).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if row.Funds != series.FundsRaised || row.Investors != series.InvestorCount {
		return apperrors.WithMessage(apperrors.ErrInvariantViolation,
			"Series aggregates do not match live holdings for "+series.Name)
	}
	return nil
}

// AddInvestment appends a subscription entry and recomputes every dependent
// aggregate in the same transaction.
func (s *ledgerService) AddInvestment(investorID, seriesID string, amount int64, date string) (*models.Investor, *models.Series, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if date == "" {
		date = dateutil.Format(time.Now())
	} else if _, err := dateutil.Parse(date); err != nil {
		return nil, nil, err
	}

	var investor *models.Investor
	var series *models.Series
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		investor, txErr = loadInvestorForWrite(tx, investorID)
		if txErr != nil {
			return txErr
		}
		series, txErr = loadSeries(tx, seriesID)
		if txErr != nil {
			return txErr
		}
		if amount < series.MinInvestment {
			return apperrors.ErrBelowMinimum
		}
		if txErr = verifySeriesAggregates(tx, series); txErr != nil {
			return txErr
		}

		entry := &models.Investment{
			InvestorID: investor.ID,
			SeriesID:   series.ID,
			SeriesName: series.Name,
			Amount:     amount,
			Date:       date,
		}
		if txErr = tx.Create(entry).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		if txErr = recomputeSeriesAggregates(tx, series.ID); txErr != nil {
			return txErr
		}
		return recomputeInvestorTotal(tx, investor.ID)
	})
	if err != nil {
		return nil, nil, err
	}

	return s.reload(investor.ID, series.ID)
}

// PreviewExit quotes a partial exit without mutating anything. The operator
// confirms this quote before RemoveInvestment commits it.
func (s *ledgerService) PreviewExit(investorID, seriesID string, today time.Time) (*ExitLine, error) {
	investor, err := loadInvestorForWrite(s.db, investorID)
	if err != nil {
		return nil, err
	}
	series, err := loadSeries(s.db, seriesID)
	if err != nil {
		return nil, err
	}
	holdings, err := liveHoldings(s.db, investor.ID, series.ID)
	if err != nil {
		return nil, err
	}
	if len(holdings) == 0 {
		return nil, apperrors.ErrNotInvested
	}
	line := quoteHoldings(series, holdings, today, s.policy)
	return &line, nil
}

// quoteHoldings folds per-entry quotes into one exit line. The penalty for
// each entry is computed from its original amount, never from a discounted
// figure claimed by an earlier preview.
func quoteHoldings(series *models.Series, holdings []models.Investment, today time.Time, p engine.Policy) ExitLine {
	line := ExitLine{SeriesID: series.ID, SeriesName: series.Name}
	for i := range holdings {
		q := engine.ComputeExit(holdings[i].Amount, series.LockInDate, today, p)
		line.Amount += holdings[i].Amount
		line.Quote.RefundAmount += q.RefundAmount
		line.Quote.PenaltyAmount += q.PenaltyAmount
		line.Quote.LockInStatus = q.LockInStatus
	}
	return line
}

// RemoveInvestment exits the investor from one series: soft-deletes the
// matching entries and recomputes the aggregates from what remains. The
// series gives back the original invested amount, not the penalized refund.
func (s *ledgerService) RemoveInvestment(investorID, seriesID string, today time.Time) (*ExitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var line ExitLine
	var investorRef, seriesRef string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		investor, txErr := loadInvestorForWrite(tx, investorID)
		if txErr != nil {
			return txErr
		}
		series, txErr := loadSeries(tx, seriesID)
		if txErr != nil {
			return txErr
		}
		if txErr = verifySeriesAggregates(tx, series); txErr != nil {
			return txErr
		}
		holdings, txErr := liveHoldings(tx, investor.ID, series.ID)
		if txErr != nil {
			return txErr
		}
		if len(holdings) == 0 {
			return apperrors.ErrNotInvested
		}

		line = quoteHoldings(series, holdings, today, s.policy)
		investorRef, seriesRef = investor.ID, series.ID

		if txErr = tx.Where("investor_id = ? AND series_id = ?", investor.ID, series.ID).
			Delete(&models.Investment{}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		if txErr = recomputeSeriesAggregates(tx, series.ID); txErr != nil {
			return txErr
		}
		if txErr = recomputeInvestorTotal(tx, investor.ID); txErr != nil {
			return txErr
		}

		kind := models.ExitRedemption
		if line.Quote.LockInStatus == engine.LockInEarlyExit {
			kind = models.ExitEarlyRedemption
		}
		event := &models.ExitEvent{
			InvestorID:    investor.ID,
			SeriesID:      series.ID,
			Kind:          kind,
			Amount:        line.Amount,
			RefundAmount:  line.Quote.RefundAmount,
			PenaltyAmount: line.Quote.PenaltyAmount,
			OccurredAt:    time.Now(),
		}
		if txErr = tx.Create(event).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	investor, series, err := s.reload(investorRef, seriesRef)
	if err != nil {
		return nil, err
	}
	return &ExitResult{Investor: investor, Series: series, Line: line}, nil
}

// PreviewAccountExit quotes the full deletion of an investor account across
// every held series, without mutating anything.
func (s *ledgerService) PreviewAccountExit(investorID string, today time.Time) (*AccountExit, error) {
	investor, err := loadInvestorForWrite(s.db, investorID)
	if err != nil {
		return nil, err
	}
	return s.quoteAccountExit(s.db, investor, today)
}

func (s *ledgerService) quoteAccountExit(tx *gorm.DB, investor *models.Investor, today time.Time) (*AccountExit, error) {
	var holdings []models.Investment
	if err := tx.Where("investor_id = ?", investor.ID).Order("created_at").Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	bySeries := make(map[string][]models.Investment)
	var order []string
	for _, h := range holdings {
		if _, seen := bySeries[h.SeriesID]; !seen {
			order = append(order, h.SeriesID)
		}
		bySeries[h.SeriesID] = append(bySeries[h.SeriesID], h)
	}

	exit := &AccountExit{Investor: investor, Lines: []ExitLine{}}
	for _, seriesID := range order {
		series, err := loadSeries(tx, seriesID)
		if err != nil {
			return nil, err
		}
		line := quoteHoldings(series, bySeries[seriesID], today, s.policy)
		exit.Lines = append(exit.Lines, line)
		exit.RefundAmount += line.Quote.RefundAmount
		exit.PenaltyAmount += line.Quote.PenaltyAmount
	}
	return exit, nil
}

// DeleteInvestor performs a full churn: every holding exits its series, the
// aggregate refund/penalty breakdown is recorded on the investor, and the
// record flips to the terminal deleted state. The row is never removed;
// soft-deleted holdings stay readable for audit display.
func (s *ledgerService) DeleteInvestor(investorID string, today time.Time) (*AccountExit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exit *AccountExit
	err := s.db.Transaction(func(tx *gorm.DB) error {
		investor, txErr := loadInvestorForWrite(tx, investorID)
		if txErr != nil {
			return txErr
		}

		exit, txErr = s.quoteAccountExit(tx, investor, today)
		if txErr != nil {
			return txErr
		}

		for _, line := range exit.Lines {
			if txErr = tx.Where("investor_id = ? AND series_id = ?", investor.ID, line.SeriesID).
				Delete(&models.Investment{}).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
			if txErr = recomputeSeriesAggregates(tx, line.SeriesID); txErr != nil {
				return txErr
			}
		}

		if txErr = tx.Model(investor).Updates(map[string]interface{}{
			"status":         models.InvestorStatusDeleted,
			"active":         false,
			"total_invested": 0,
			"refund_amount":  exit.RefundAmount,
			"penalty_amount": exit.PenaltyAmount,
		}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		event := &models.ExitEvent{
			InvestorID:    investor.ID,
			Kind:          models.ExitChurn,
			Amount:        sumLineAmounts(exit.Lines),
			RefundAmount:  exit.RefundAmount,
			PenaltyAmount: exit.PenaltyAmount,
			OccurredAt:    time.Now(),
		}
		if txErr = tx.Create(event).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Re-read the terminal record with its soft-deleted holdings for display.
	var investor models.Investor
	if err := s.db.First(&investor, "id = ?", investorID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Unscoped().Where("investor_id = ?", investorID).
		Order("created_at").Find(&investor.Holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	investor.DeriveSeriesNames()
	exit.Investor = &investor
	return exit, nil
}

func sumLineAmounts(lines []ExitLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Amount
	}
	return total
}

// RenameSeriesEverywhere rewrites the denormalized series name on every
// holding, live and exited, inside the caller's transaction. This keeps the
// derived per-investor series list equal to the holdings at all times.
func (s *ledgerService) RenameSeriesEverywhere(tx *gorm.DB, oldName, newName string) error {
	if err := tx.Unscoped().Model(&models.Investment{}).
		Where("series_name = ?", oldName).
		Update("series_name", newName).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// reload fetches fresh investor and series snapshots with derived fields.
func (s *ledgerService) reload(investorID, seriesID string) (*models.Investor, *models.Series, error) {
	var investor models.Investor
	if err := s.db.Preload("Holdings").First(&investor, "id = ?", investorID).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	investor.DeriveSeriesNames()

	var series models.Series
	if err := s.db.First(&series, "id = ?", seriesID).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investor, &series, nil
}

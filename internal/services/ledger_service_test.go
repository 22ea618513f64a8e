package services

import (
	"testing"
	"time"

	"debentra/internal/engine"
	"debentra/internal/models"
	"debentra/internal/testutil"
)

// assertLedgerInvariants checks the two cross-entity invariants after a
// mutation: the derived series list equals the distinct holding names, and
// the series aggregates equal the live holdings.
func assertLedgerInvariants(t *testing.T, investorSvc InvestorServicer, seriesSvc SeriesServicer, investorID string, seriesIDs ...string) {
	t.Helper()

	investor, err := investorSvc.GetInvestorByID(investorID)
	testutil.AssertNoError(t, err)

	if investor.Status != models.InvestorStatusDeleted {
		var total int64
		names := make(map[string]bool)
		for _, h := range investor.Holdings {
			total += h.Amount
			names[h.SeriesName] = true
		}
		if investor.TotalInvested != total {
			t.Errorf("cached total %d != live sum %d", investor.TotalInvested, total)
		}
		if len(investor.SeriesNames) != len(names) {
			t.Errorf("derived series list %v does not match holdings %v", investor.SeriesNames, names)
		}
		for _, n := range investor.SeriesNames {
			if !names[n] {
				t.Errorf("derived series %q has no matching holding", n)
			}
		}
	}

	for _, id := range seriesIDs {
		series, err := seriesSvc.GetSeriesByID(id)
		testutil.AssertNoError(t, err)
		if series.FundsRaised < 0 || series.InvestorCount < 0 {
			t.Errorf("series %s aggregates went negative: %d / %d", series.Name, series.FundsRaised, series.InvestorCount)
		}
	}
}

func TestAddInvestment(t *testing.T) {
	policy := engine.DefaultPolicy()

	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db, policy)
		seriesSvc := NewSeriesService(db, svc, policy)
		investorSvc := NewInvestorService(db)
		series := testutil.CreateTestSeries(t, db)
		inv := testutil.CreateTestInvestor(t, db)

		investor, updated, err := svc.AddInvestment(inv.ID, series.ID, 50_000, "15/08/2025")
		testutil.AssertNoError(t, err)

		if investor.TotalInvested != 50_000 {
			t.Errorf("expected cached total 50000, got %d", investor.TotalInvested)
		}
		if len(investor.SeriesNames) != 1 || investor.SeriesNames[0] != series.Name {
			t.Errorf("expected derived series [%s], got %v", series.Name, investor.SeriesNames)
		}
		if updated.FundsRaised != 50_000 {
			t.Errorf("expected funds raised 50000, got %d", updated.FundsRaised)
		}
		if updated.InvestorCount != 1 {
			t.Errorf("expected 1 investor, got %d", updated.InvestorCount)
		}
		assertLedgerInvariants(t, investorSvc, seriesSvc, inv.ID, series.ID)
	})

	t.Run("below_minimum", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db, policy)
		series := testutil.CreateTestSeries(t, db)
		inv := testutil.CreateTestInvestor(t, db)

		_, _, err := svc.AddInvestment(inv.ID, series.ID, 9_999, "")
		testutil.AssertAppError(t, err, "BELOW_MINIMUM")

		// Fail-fast: nothing was written.
		var count int64
		db.Model(&models.Investment{}).Where("investor_id = ?", inv.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected no holdings after failed add, got %d", count)
		}
	})

	t.Run("unknown_series", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db, policy)
		inv := testutil.CreateTestInvestor(t, db)

		_, _, err := svc.AddInvestment(inv.ID, "no-such-series", 50_000, "")
		testutil.AssertAppError(t, err, "SERIES_NOT_FOUND")
	})

	t.Run("unknown_investor", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db, policy)
		series := testutil.CreateTestSeries(t, db)

		_, _, err := svc.AddInvestment("no-such-investor", series.ID, 50_000, "")
		testutil.AssertAppError(t, err, "INVESTOR_NOT_FOUND")
	})

	t.Run("bad_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db, policy)
		series := testutil.CreateTestSeries(t, db)
		inv := testutil.CreateTestInvestor(t, db)

		_, _, err := svc.AddInvestment(inv.ID, series.ID, 50_000, "31-31-2025oops")
		testutil.AssertAppError(t, err, "INVALID_DATE_FORMAT")
	})

	t.Run("deleted_investor_is_immutable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db, policy)
		series := testutil.CreateTestSeries(t, db)
		inv := testutil.CreateTestInvestor(t, db)

		_, _, err := svc.AddInvestment(inv.ID, series.ID, 50_000, "")
		testutil.AssertNoError(t, err)
		_, err = svc.DeleteInvestor(inv.ID, time.Now())
		testutil.AssertNoError(t, err)

		_, _, err = svc.AddInvestment(inv.ID, series.ID, 50_000, "")
		testutil.AssertAppError(t, err, "INVESTOR_DELETED")
	})

	t.Run("second_investor_increments_count", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db, policy)
		series := testutil.CreateTestSeries(t, db)
		a := testutil.CreateTestInvestor(t, db)
		b := testutil.CreateTestInvestor(t, db)

		_, _, err := svc.AddInvestment(a.ID, series.ID, 50_000, "")
		testutil.AssertNoError(t, err)
		_, updated, err := svc.AddInvestment(b.ID, series.ID, 30_000, "")
		testutil.AssertNoError(t, err)

		if updated.InvestorCount != 2 {
			t.Errorf("expected 2 investors, got %d", updated.InvestorCount)
		}
		if updated.FundsRaised != 80_000 {
			t.Errorf("expected funds 80000, got %d", updated.FundsRaised)
		}
	})

	t.Run("top_up_keeps_single_investor_count", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db, policy)
		series := testutil.CreateTestSeries(t, db)
		inv := testutil.CreateTestInvestor(t, db)

		_, _, err := svc.AddInvestment(inv.ID, series.ID, 50_000, "")
		testutil.AssertNoError(t, err)
		investor, updated, err := svc.AddInvestment(inv.ID, series.ID, 25_000, "")
		testutil.AssertNoError(t, err)

		if updated.InvestorCount != 1 {
			t.Errorf("top-up must not double-count the investor, got %d", updated.InvestorCount)
		}
		if investor.TotalInvested != 75_000 {
			t.Errorf("expected total 75000, got %d", investor.TotalInvested)
		}
		if len(investor.SeriesNames) != 1 {
			t.Errorf("expected one derived series, got %v", investor.SeriesNames)
		}
	})
}

func TestRemoveInvestment(t *testing.T) {
	policy := engine.DefaultPolicy()

	t.Run("round_trip_after_lock_in", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db, policy)
		series := testutil.CreateTestSeriesWithLockIn(t, db, -10) // lock-in completed
		inv := testutil.CreateTestInvestor(t, db)

		_, _, err := svc.AddInvestment(inv.ID, series.ID, 50_000, "")
		testutil.AssertNoError(t, err)

		result, err := svc.RemoveInvestment(inv.ID, series.ID, time.Now())
		testutil.AssertNoError(t, err)

		if result.Line.Quote.LockInStatus != engine.LockInCompleted {
			t.Errorf("expected completed lock-in, got %s", result.Line.Quote.LockInStatus)
		}
		if result.Line.Quote.RefundAmount != 50_000 || result.Line.Quote.PenaltyAmount != 0 {
			t.Errorf("expected full refund, got %+v", result.Line.Quote)
		}
		// Pre-add state restored.
		if result.Investor.TotalInvested != 0 {
			t.Errorf("expected cached total 0, got %d", result.Investor.TotalInvested)
		}
		if result.Series.FundsRaised != 0 || result.Series.InvestorCount != 0 {
			t.Errorf("expected empty series aggregates, got %d / %d", result.Series.FundsRaised, result.Series.InvestorCount)
		}
		if len(result.Investor.SeriesNames) != 0 {
			t.Errorf("expected empty derived series list, got %v", result.Investor.SeriesNames)
		}
	})

	t.Run("early_exit_penalty_to_series_original_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db, policy)
		series := testutil.CreateTestSeriesWithLockIn(t, db, 10) // lock-in 10 days out
		inv := testutil.CreateTestInvestor(t, db)

		_, _, err := svc.AddInvestment(inv.ID, series.ID, 100_000, "")
		testutil.AssertNoError(t, err)

		result, err := svc.RemoveInvestment(inv.ID, series.ID, time.Now())
		testutil.AssertNoError(t, err)

		if result.Line.Quote.LockInStatus != engine.LockInEarlyExit {
			t.Errorf("expected early_exit, got %s", result.Line.Quote.LockInStatus)
		}
		if result.Line.Quote.PenaltyAmount != 2_000 || result.Line.Quote.RefundAmount != 98_000 {
			t.Errorf("unexpected quote: %+v", result.Line.Quote)
		}
		// The series gives back the ORIGINAL amount, not the penalized refund.
		if result.Series.FundsRaised != 0 {
			t.Errorf("expected funds raised 0, got %d", result.Series.FundsRaised)
		}

		// An early-redemption event was recorded for the retention window.
		var count int64
		db.Model(&models.ExitEvent{}).Where("kind = ?", models.ExitEarlyRedemption).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 early_redemption event, got %d", count)
		}
	})

	t.Run("not_invested", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db, policy)
		series := testutil.CreateTestSeries(t, db)
		inv := testutil.CreateTestInvestor(t, db)

		_, err := svc.RemoveInvestment(inv.ID, series.ID, time.Now())
		testutil.AssertAppError(t, err, "NOT_INVESTED")
	})

	t.Run("other_holdings_survive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db, policy)
		seriesA := testutil.CreateTestSeriesWithLockIn(t, db, -10)
		seriesB := testutil.CreateTestSeries(t, db)
		inv := testutil.CreateTestInvestor(t, db)

		_, _, err := svc.AddInvestment(inv.ID, seriesA.ID, 50_000, "")
		testutil.AssertNoError(t, err)
		_, _, err = svc.AddInvestment(inv.ID, seriesB.ID, 30_000, "")
		testutil.AssertNoError(t, err)

		result, err := svc.RemoveInvestment(inv.ID, seriesA.ID, time.Now())
		testutil.AssertNoError(t, err)

		if result.Investor.TotalInvested != 30_000 {
			t.Errorf("expected remaining total 30000, got %d", result.Investor.TotalInvested)
		}
		if len(result.Investor.SeriesNames) != 1 || result.Investor.SeriesNames[0] != seriesB.Name {
			t.Errorf("expected derived series [%s], got %v", seriesB.Name, result.Investor.SeriesNames)
		}
	})
}

func TestPreviewExit(t *testing.T) {
	policy := engine.DefaultPolicy()

	t.Run("preview_does_not_mutate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db, policy)
		series := testutil.CreateTestSeriesWithLockIn(t, db, 10)
		inv := testutil.CreateTestInvestor(t, db)

		_, _, err := svc.AddInvestment(inv.ID, series.ID, 100_000, "")
		testutil.AssertNoError(t, err)

		// Quote twice: compute-confirm-commit means previews must be free of
		// side effects and never compound the penalty.
		first, err := svc.PreviewExit(inv.ID, series.ID, time.Now())
		testutil.AssertNoError(t, err)
		second, err := svc.PreviewExit(inv.ID, series.ID, time.Now())
		testutil.AssertNoError(t, err)

		if first.Quote != second.Quote {
			t.Errorf("previews differ: %+v vs %+v", first.Quote, second.Quote)
		}
		if first.Quote.PenaltyAmount != 2_000 {
			t.Errorf("expected penalty 2000, got %d", first.Quote.PenaltyAmount)
		}

		var count int64
		db.Model(&models.Investment{}).Where("investor_id = ?", inv.ID).Count(&count)
		if count != 1 {
			t.Errorf("preview mutated holdings: %d rows", count)
		}
	})

	t.Run("no_lock_in_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db, policy)
		series := testutil.CreateTestSeriesNoLockIn(t, db)
		inv := testutil.CreateTestInvestor(t, db)

		_, _, err := svc.AddInvestment(inv.ID, series.ID, 40_000, "")
		testutil.AssertNoError(t, err)

		line, err := svc.PreviewExit(inv.ID, series.ID, time.Now())
		testutil.AssertNoError(t, err)
		if line.Quote.LockInStatus != engine.LockInNone {
			t.Errorf("expected no_lockin, got %s", line.Quote.LockInStatus)
		}
		if line.Quote.RefundAmount != 40_000 {
			t.Errorf("expected full refund, got %d", line.Quote.RefundAmount)
		}
	})
}

func TestDeleteInvestor(t *testing.T) {
	policy := engine.DefaultPolicy()

	t.Run("full_churn_across_two_series", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db, policy)
		early := testutil.CreateTestSeriesWithLockIn(t, db, 10)  // inside lock-in
		mature := testutil.CreateTestSeriesWithLockIn(t, db, -5) // lock-in done
		other := testutil.CreateTestInvestor(t, db)
		inv := testutil.CreateTestInvestor(t, db)

		// A bystander holding keeps the early series' aggregates non-trivial.
		_, _, err := svc.AddInvestment(other.ID, early.ID, 20_000, "")
		testutil.AssertNoError(t, err)
		_, _, err = svc.AddInvestment(inv.ID, early.ID, 100_000, "")
		testutil.AssertNoError(t, err)
		_, _, err = svc.AddInvestment(inv.ID, mature.ID, 50_000, "")
		testutil.AssertNoError(t, err)

		exit, err := svc.DeleteInvestor(inv.ID, time.Now())
		testutil.AssertNoError(t, err)

		// 2% of 100000 inside lock-in; the matured holding refunds in full.
		if exit.PenaltyAmount != 2_000 {
			t.Errorf("expected penalty 2000, got %d", exit.PenaltyAmount)
		}
		if exit.RefundAmount != 148_000 {
			t.Errorf("expected refund 148000, got %d", exit.RefundAmount)
		}

		if exit.Investor.Status != models.InvestorStatusDeleted {
			t.Errorf("expected deleted status, got %s", exit.Investor.Status)
		}
		if exit.Investor.Active {
			t.Error("expected active=false after deletion")
		}
		if exit.Investor.RefundAmount != 148_000 || exit.Investor.PenaltyAmount != 2_000 {
			t.Errorf("breakdown not recorded: refund=%d penalty=%d", exit.Investor.RefundAmount, exit.Investor.PenaltyAmount)
		}
		// The holdings stay readable for audit even though they are exited.
		if len(exit.Investor.Holdings) != 2 {
			t.Errorf("expected 2 audit-readable holdings, got %d", len(exit.Investor.Holdings))
		}

		// Both series lost this investor's contribution.
		var earlyAfter, matureAfter models.Series
		db.First(&earlyAfter, "id = ?", early.ID)
		db.First(&matureAfter, "id = ?", mature.ID)
		if earlyAfter.FundsRaised != 20_000 || earlyAfter.InvestorCount != 1 {
			t.Errorf("early series aggregates wrong: %d / %d", earlyAfter.FundsRaised, earlyAfter.InvestorCount)
		}
		if matureAfter.FundsRaised != 0 || matureAfter.InvestorCount != 0 {
			t.Errorf("mature series aggregates wrong: %d / %d", matureAfter.FundsRaised, matureAfter.InvestorCount)
		}

		// One churn event for the retention window.
		var churn int64
		db.Model(&models.ExitEvent{}).Where("kind = ?", models.ExitChurn).Count(&churn)
		if churn != 1 {
			t.Errorf("expected 1 churn event, got %d", churn)
		}
	})

	t.Run("preview_matches_commit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db, policy)
		series := testutil.CreateTestSeriesWithLockIn(t, db, 10)
		inv := testutil.CreateTestInvestor(t, db)

		_, _, err := svc.AddInvestment(inv.ID, series.ID, 100_000, "")
		testutil.AssertNoError(t, err)

		preview, err := svc.PreviewAccountExit(inv.ID, time.Now())
		testutil.AssertNoError(t, err)
		committed, err := svc.DeleteInvestor(inv.ID, time.Now())
		testutil.AssertNoError(t, err)

		if preview.RefundAmount != committed.RefundAmount || preview.PenaltyAmount != committed.PenaltyAmount {
			t.Errorf("preview %+v does not match commit %+v", preview, committed)
		}
	})

	t.Run("delete_twice", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db, policy)
		inv := testutil.CreateTestInvestor(t, db)

		_, err := svc.DeleteInvestor(inv.ID, time.Now())
		testutil.AssertNoError(t, err)
		_, err = svc.DeleteInvestor(inv.ID, time.Now())
		testutil.AssertAppError(t, err, "INVESTOR_DELETED")
	})
}

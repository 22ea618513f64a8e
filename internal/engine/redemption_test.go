package engine

import (
	"testing"
	"time"

	"debentra/internal/dateutil"
)

func TestComputeExit(t *testing.T) {
	policy := DefaultPolicy()
	today := time.Now()

	t.Run("before_lock_in_incurs_penalty", func(t *testing.T) {
		lockIn := dateutil.Format(today.AddDate(0, 0, 10))
		quote := ComputeExit(100_000, lockIn, today, policy)

		if quote.LockInStatus != LockInEarlyExit {
			t.Errorf("expected early_exit, got %s", quote.LockInStatus)
		}
		if quote.PenaltyAmount != 2_000 {
			t.Errorf("expected penalty 2000, got %d", quote.PenaltyAmount)
		}
		if quote.RefundAmount != 98_000 {
			t.Errorf("expected refund 98000, got %d", quote.RefundAmount)
		}
	})

	t.Run("on_lock_in_day_is_completed", func(t *testing.T) {
		quote := ComputeExit(100_000, dateutil.Format(today), today, policy)
		if quote.LockInStatus != LockInCompleted {
			t.Errorf("expected completed, got %s", quote.LockInStatus)
		}
		if quote.PenaltyAmount != 0 || quote.RefundAmount != 100_000 {
			t.Errorf("expected full refund, got refund=%d penalty=%d", quote.RefundAmount, quote.PenaltyAmount)
		}
	})

	t.Run("after_lock_in_full_refund", func(t *testing.T) {
		lockIn := dateutil.Format(today.AddDate(0, 0, -30))
		quote := ComputeExit(250_000, lockIn, today, policy)
		if quote.LockInStatus != LockInCompleted || quote.RefundAmount != 250_000 {
			t.Errorf("unexpected quote: %+v", quote)
		}
	})

	t.Run("missing_lock_in_date", func(t *testing.T) {
		quote := ComputeExit(50_000, "", today, policy)
		if quote.LockInStatus != LockInNone {
			t.Errorf("expected no_lockin, got %s", quote.LockInStatus)
		}
		if quote.RefundAmount != 50_000 || quote.PenaltyAmount != 0 {
			t.Errorf("unexpected quote: %+v", quote)
		}
	})

	t.Run("unparseable_lock_in_date", func(t *testing.T) {
		quote := ComputeExit(50_000, "soon", today, policy)
		if quote.LockInStatus != LockInNone {
			t.Errorf("expected no_lockin, got %s", quote.LockInStatus)
		}
	})

	t.Run("penalty_rounds_half_up", func(t *testing.T) {
		lockIn := dateutil.Format(today.AddDate(0, 0, 10))
		// 2% of 125 = 2.5, rounds to 3.
		quote := ComputeExit(125, lockIn, today, policy)
		if quote.PenaltyAmount != 3 {
			t.Errorf("expected penalty 3, got %d", quote.PenaltyAmount)
		}
		if quote.RefundAmount != 122 {
			t.Errorf("expected refund 122, got %d", quote.RefundAmount)
		}
	})

	t.Run("repeated_quotes_never_compound", func(t *testing.T) {
		lockIn := dateutil.Format(today.AddDate(0, 0, 10))
		first := ComputeExit(100_000, lockIn, today, policy)
		second := ComputeExit(100_000, lockIn, today, policy)
		if first != second {
			t.Errorf("quotes differ: %+v vs %+v", first, second)
		}
	})

	t.Run("configured_penalty_rate", func(t *testing.T) {
		custom := policy
		custom.EarlyExitPenaltyBps = 500
		lockIn := dateutil.Format(today.AddDate(0, 0, 10))
		quote := ComputeExit(100_000, lockIn, today, custom)
		if quote.PenaltyAmount != 5_000 {
			t.Errorf("expected penalty 5000 at 5%%, got %d", quote.PenaltyAmount)
		}
	})
}

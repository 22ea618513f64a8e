package engine

import (
	"time"

	"debentra/internal/dateutil"
)

// LockInStatus classifies an exit relative to the series lock-in date.
type LockInStatus string

const (
	// LockInNone: the series has no usable lock-in date.
	LockInNone LockInStatus = "no_lockin"
	// LockInCompleted: the exit happens at or after the lock-in date.
	LockInCompleted LockInStatus = "completed"
	// LockInEarlyExit: the exit happens before the lock-in date and incurs
	// the early-exit penalty.
	LockInEarlyExit LockInStatus = "early_exit"
)

// ExitQuote is the penalty/refund split for exiting one investment entry.
type ExitQuote struct {
	RefundAmount  int64        `json:"refund_amount"`
	PenaltyAmount int64        `json:"penalty_amount"`
	LockInStatus  LockInStatus `json:"lock_in_status"`
}

// ComputeExit quotes the exit of an investment of the given original amount
// from a series whose lock-in date is lockInDate (raw stored form), as of
// today. The penalty is always computed from the original amount with
// round-half-up, so repeated calls never compound. Pure: safe to call any
// number of times for preview before the ledger commits anything.
func ComputeExit(amount int64, lockInDate string, today time.Time, p Policy) ExitQuote {
	lockIn, err := dateutil.Parse(lockInDate)
	if err != nil {
		return ExitQuote{RefundAmount: amount, LockInStatus: LockInNone}
	}

	if !dateutil.Midnight(today).Before(lockIn) {
		return ExitQuote{RefundAmount: amount, LockInStatus: LockInCompleted}
	}

	penalty := (amount*p.EarlyExitPenaltyBps + 5_000) / 10_000
	return ExitQuote{
		RefundAmount:  amount - penalty,
		PenaltyAmount: penalty,
		LockInStatus:  LockInEarlyExit,
	}
}

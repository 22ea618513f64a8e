// Package engine holds the pure business rules of the platform: series
// lifecycle resolution, lock-in-aware redemption math, compliance
// aggregation and retention. Nothing in this package touches the database or
// mutates its inputs; services call into it and persist the results.
package engine

// Policy carries the tunable business figures. The sampled values (2% early
// exit penalty, 1 Cr / 10 investor compliance gate, 30 day retention window)
// are placeholders pending final policy sign-off, so they are configuration
// rather than constants.
type Policy struct {
	// EarlyExitPenaltyBps is the penalty on early exits, in basis points of
	// the original investment amount.
	EarlyExitPenaltyBps int64
	// ComplianceMinFundsRaised is the funds-raised floor (whole rupees,
	// exclusive) below which a series reports zero compliance.
	ComplianceMinFundsRaised int64
	// ComplianceMinInvestors is the investor-count floor (exclusive).
	ComplianceMinInvestors int
	// RetentionWindowDays is the trailing window for churn and
	// early-redemption events, inclusive at the far edge.
	RetentionWindowDays int
}

// DefaultPolicy returns the figures observed in production to date.
func DefaultPolicy() Policy {
	return Policy{
		EarlyExitPenaltyBps:      200,
		ComplianceMinFundsRaised: 10_000_000,
		ComplianceMinInvestors:   10,
		RetentionWindowDays:      30,
	}
}

// roundPct returns round-half-up of 100*num/den, clamped to [0,100].
// den must be positive; negative num clamps to 0.
func roundPct(num, den int64) int {
	if num <= 0 {
		return 0
	}
	pct := (200*num + den) / (2 * den)
	if pct > 100 {
		return 100
	}
	return int(pct)
}

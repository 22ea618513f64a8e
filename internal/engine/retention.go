package engine

// RetentionRate folds churn and early-redemption counts over the trailing
// window into a retention percentage clamped to [0,100]. With no investors
// there is nobody to lose, so the rate is vacuously 100.
func RetentionRate(totalInvestors, churnCount, earlyRedemptionCount int) int {
	if totalInvestors <= 0 {
		return 100
	}
	retained := int64(totalInvestors - churnCount - earlyRedemptionCount)
	return roundPct(retained, int64(totalInvestors))
}

package engine

import "math"

// MonthlyPayout returns the simple monthly non-cumulative interest figure
// shown next to a series: amount * annual rate / 12, rounded half up to
// whole rupees. Display only; schedule generation lives outside this core.
func MonthlyPayout(amount int64, annualRatePct float64) int64 {
	if amount <= 0 || annualRatePct <= 0 {
		return 0
	}
	return int64(math.Floor(float64(amount)*annualRatePct/100/12 + 0.5))
}

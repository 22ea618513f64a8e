package engine

import "debentra/internal/models"

// Category is the 3-way compliance bucket used on the dashboard.
type Category string

const (
	CategorySubmitted     Category = "submitted"
	CategoryPending       Category = "pending"
	CategoryYetToBeSubmit Category = "yet-to-be-submitted"
)

// BucketPercentage converts one (completed, total) obligation bucket into a
// rounded percentage clamped to [0,100]. An empty bucket (total 0) reports 0
// rather than erroring: compliance figures are display-path values.
func BucketPercentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return roundPct(int64(completed), int64(total))
}

// AverageCompletion averages the three bucket percentages with round-half-up.
func AverageCompletion(pre, post, recurring int) int {
	sum := int64(pre + post + recurring)
	if sum <= 0 {
		return 0
	}
	avg := (2*sum + 3) / 6
	if avg > 100 {
		return 100
	}
	return int(avg)
}

// Categorize maps an average completion percentage to a dashboard category.
// Boundaries are inclusive: 100 is submitted, 50-99 pending, below 50
// yet-to-be-submitted.
func Categorize(avg int) Category {
	switch {
	case avg >= 100:
		return CategorySubmitted
	case avg >= 50:
		return CategoryPending
	default:
		return CategoryYetToBeSubmit
	}
}

// ComplianceEligible reports whether a series has started compliance work at
// all. New or small series (not yet active, funds at or below the floor, or
// too few investors) report zero across every bucket regardless of any
// stored counts.
func ComplianceEligible(status models.SeriesStatus, fundsRaised int64, investors int, p Policy) bool {
	return status == models.SeriesStatusActive &&
		fundsRaised > p.ComplianceMinFundsRaised &&
		investors > p.ComplianceMinInvestors
}

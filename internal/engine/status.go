package engine

import (
	"time"

	"debentra/internal/dateutil"
	"debentra/internal/models"
)

// ResolveStatus derives the effective lifecycle state of a series from its
// stored dates and approval flag. Rules are evaluated in order, first match
// wins:
//
//  1. rejected approval          -> REJECTED (terminal, manual)
//  2. not yet approved           -> DRAFT
//  3. maturity date in the past  -> matured
//  4. release date in the future -> upcoming
//  5. today inside the subscription window (inclusive) -> accepting
//  6. otherwise                  -> active
//
// Missing or unparseable dates simply make their rule never match, so a
// series with a broken subscription window degrades to active rather than
// erroring: this is a display-path calculation. The function never mutates
// the series and is idempotent for identical inputs.
func ResolveStatus(s *models.Series, today time.Time) models.SeriesStatus {
	if s.ApprovalStatus == models.ApprovalRejected {
		return models.SeriesStatusRejected
	}
	if s.ApprovalStatus != models.ApprovalApproved {
		return models.SeriesStatusDraft
	}

	today = dateutil.Midnight(today)

	if maturity, err := dateutil.Parse(s.MaturityDate); err == nil && maturity.Before(today) {
		return models.SeriesStatusMatured
	}
	if release, err := dateutil.Parse(s.ReleaseDate); err == nil && release.After(today) {
		return models.SeriesStatusUpcoming
	}

	start, startErr := dateutil.Parse(s.SubscriptionStartDate)
	end, endErr := dateutil.Parse(s.SubscriptionEndDate)
	if startErr == nil && endErr == nil && dateutil.Within(today, start, end) {
		return models.SeriesStatusAccepting
	}

	return models.SeriesStatusActive
}

// ProgressPct returns the funding progress of a series against its target as
// a rounded percentage clamped to [0,100]. A zero target reports 0.
func ProgressPct(fundsRaised, targetAmount int64) int {
	if targetAmount <= 0 {
		return 0
	}
	return roundPct(fundsRaised, targetAmount)
}

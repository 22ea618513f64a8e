// Package dateutil parses the dual date representations used across series
// records (DD/MM/YYYY from the admin forms, ISO 8601 from the data service)
// and answers day-granularity window questions.
package dateutil

import (
	"strings"
	"time"

	apperrors "debentra/internal/errors"
)

// Accepted layouts, tried in order. All comparisons happen at day granularity
// after normalizing to midnight local time, so same-day boundaries compare
// inclusive.
var layouts = []string{
	"02/01/2006",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Parse parses s in DD/MM/YYYY or ISO 8601 form and normalizes the result to
// midnight local time. Returns ErrInvalidDateFormat for empty or unparseable
// input.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidDateFormat, "empty date")
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Midnight(t), nil
		}
	}
	return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidDateFormat, "unrecognized date: "+s)
}

// Midnight truncates t to midnight in its own location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Within reports whether day is inside [start, end], all three normalized to
// midnight. Both bounds are inclusive.
func Within(day, start, end time.Time) bool {
	day = Midnight(day)
	return !day.Before(Midnight(start)) && !day.After(Midnight(end))
}

// DaysUntil returns the whole number of days from 'from' until 'to',
// negative when 'to' is in the past.
func DaysUntil(from, to time.Time) int {
	d := Midnight(to).Sub(Midnight(from))
	// Round absorbs DST-shortened or -lengthened days.
	return int(d.Round(24*time.Hour) / (24 * time.Hour))
}

// Format renders t in the ISO form used for persisted series dates.
func Format(t time.Time) string {
	return t.Format("2006-01-02")
}

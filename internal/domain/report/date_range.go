package report

import (
	"time"

	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

// RangePreset is a named reporting period resolved to concrete date
// bounds at query time.
type RangePreset string

const (
	PresetThisMonth    RangePreset = "THIS_MONTH"
	PresetThisQuarter  RangePreset = "THIS_QUARTER"
	PresetLast12Months RangePreset = "LAST_12_MONTHS"
	PresetThisYear     RangePreset = "THIS_YEAR"
)

// IsValid checks if the preset is a known RangePreset
func (p RangePreset) IsValid() bool {
	switch p {
	case PresetThisMonth, PresetThisQuarter, PresetLast12Months, PresetThisYear:
		return true
	}
	return false
}

// DateRange is a half-open-free inclusive reporting period [Start, End].
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange creates a date range, validating order
func NewDateRange(start, end time.Time) (DateRange, error) {
	if end.Before(start) {
		return DateRange{}, shared.NewDomainError("INVALID_RANGE", "Range end cannot be before range start")
	}
	return DateRange{Start: start, End: end}, nil
}

// Contains reports whether t falls inside the range (inclusive)
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ResolvePreset resolves a named preset to concrete bounds relative to now.
// End is always the end of the current day so that same-day events are
// included.
func ResolvePreset(preset RangePreset, now time.Time) (DateRange, error) {
	if !preset.IsValid() {
		return DateRange{}, shared.NewDomainError("INVALID_PRESET", "Unknown reporting period preset")
	}

	end := endOfDay(now)
	switch preset {
	case PresetThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return DateRange{Start: start, End: end}, nil
	case PresetThisQuarter:
		quarterStartMonth := time.Month((int(now.Month())-1)/3*3 + 1)
		start := time.Date(now.Year(), quarterStartMonth, 1, 0, 0, 0, 0, now.Location())
		return DateRange{Start: start, End: end}, nil
	case PresetLast12Months:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(-1, 0, 0)
		return DateRange{Start: start, End: end}, nil
	case PresetThisYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return DateRange{Start: start, End: end}, nil
	}
	return DateRange{}, shared.NewDomainError("INVALID_PRESET", "Unknown reporting period preset")
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

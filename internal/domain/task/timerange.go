package task

import (
	"fmt"
	"time"

	"github.com/lensflow/backend/internal/domain/shared"
)

const clockLayout = "15:04"

// TimeRange is a half-open [Start, End) wall-clock interval within a
// single day, expressed in "HH:MM" form.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// NewTimeRange validates and builds a time range
func NewTimeRange(start, end string) (TimeRange, error) {
	startAt, err := time.Parse(clockLayout, start)
	if err != nil {
		return TimeRange{}, shared.NewDomainError("INVALID_TIME", fmt.Sprintf("Invalid start time %q, expected HH:MM", start))
	}
	endAt, err := time.Parse(clockLayout, end)
	if err != nil {
		return TimeRange{}, shared.NewDomainError("INVALID_TIME", fmt.Sprintf("Invalid end time %q, expected HH:MM", end))
	}
	if !startAt.Before(endAt) {
		return TimeRange{}, shared.NewDomainError("INVALID_TIME_RANGE", "Start time must be before end time")
	}
	return TimeRange{Start: start, End: end}, nil
}

// MustTimeRange builds a time range, panicking on invalid input.
// For use in tests and static task templates only.
func MustTimeRange(start, end string) TimeRange {
	r, err := NewTimeRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// Overlaps reports whether two half-open intervals intersect:
// start1 < end2 && start2 < end1. Zero-width touching boundaries
// (one range ending exactly when another starts) do not overlap.
// "HH:MM" strings compare correctly lexicographically.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start < other.End && other.Start < r.End
}

// StartOn anchors the range's start time onto a calendar day
func (r TimeRange) StartOn(day time.Time) time.Time {
	clock, err := time.Parse(clockLayout, r.Start)
	if err != nil {
		return day
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, day.Location())
}

// WindowBefore returns the half-open interval of length d that ends
// exactly at the given "HH:MM" instant, clamped to midnight when the
// window would cross into the previous day.
func WindowBefore(end string, d time.Duration) (TimeRange, error) {
	endAt, err := time.Parse(clockLayout, end)
	if err != nil {
		return TimeRange{}, shared.NewDomainError("INVALID_TIME", fmt.Sprintf("Invalid time %q, expected HH:MM", end))
	}
	day := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	endOnDay := time.Date(day.Year(), day.Month(), day.Day(), endAt.Hour(), endAt.Minute(), 0, 0, time.UTC)
	start := endOnDay.Add(-d)
	if start.Before(day) {
		start = day
	}
	if !start.Before(endOnDay) {
		return TimeRange{}, shared.NewDomainError("INVALID_TIME_RANGE", "Window collapses to zero width")
	}
	return TimeRange{Start: start.Format(clockLayout), End: endOnDay.Format(clockLayout)}, nil
}

// String returns the range in "HH:MM-HH:MM" form
func (r TimeRange) String() string {
	return r.Start + "-" + r.End
}

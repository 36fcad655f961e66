package models

import (
	"time"

	appErrors "github.com/fojia/lms/pkg/errors"
)

// DateTimeRange is a span of instants. A nil End means the range is
// open-ended on the upper bound. Build ranges through NewDateTimeRange
// so Start <= End always holds.
type DateTimeRange struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// NewDateTimeRange constructs a bounded or open-ended range.
func NewDateTimeRange(start time.Time, end *time.Time) (DateTimeRange, error) {
	if end != nil && start.After(*end) {
		return DateTimeRange{}, appErrors.Clone(appErrors.ErrValidation, "start date must be before or equal to end date")
	}
	return DateTimeRange{Start: start, End: end}, nil
}

// Contains reports whether t falls within the range.
func (r DateTimeRange) Contains(t time.Time) bool {
	if t.Before(r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// HasStarted reports whether the range has begun at t.
func (r DateTimeRange) HasStarted(t time.Time) bool {
	return !t.Before(r.Start)
}

// HasEnded reports whether the range is over at t. An open-ended range
// never ends.
func (r DateTimeRange) HasEnded(t time.Time) bool {
	return r.End != nil && t.After(*r.End)
}

// IsActive reports whether the range has started and not yet ended at t.
func (r DateTimeRange) IsActive(t time.Time) bool {
	return r.HasStarted(t) && !r.HasEnded(t)
}

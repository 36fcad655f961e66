package models

import (
	"time"

	appErrors "github.com/fojia/lms/pkg/errors"
)

// Enrolment binds a student to a course over a period. The student and
// course are referenced by identifier only; full entities live behind
// their repositories. The period is the only mutable state and changes
// exclusively through UpdatePeriod.
type Enrolment struct {
	ID        EnrolmentID `json:"id"`
	StudentID StudentID   `json:"student_id"`
	CourseID  CourseID    `json:"course_id"`

	period DateTimeRange
}

// NewEnrolment constructs an enrolment, generating an identifier when
// none is supplied.
func NewEnrolment(id EnrolmentID, studentID StudentID, courseID CourseID, period DateTimeRange) *Enrolment {
	if id == "" {
		id = NewEnrolmentID()
	}
	return &Enrolment{ID: id, StudentID: studentID, CourseID: courseID, period: period}
}

// Period returns the current enrolment period.
func (e *Enrolment) Period() DateTimeRange {
	return e.period
}

// IsActiveAt reports whether the enrolment is active at t.
func (e *Enrolment) IsActiveAt(t time.Time) bool {
	return e.period.IsActive(t)
}

// UpdatePeriod replaces the enrolment period. The current instant is
// captured at call time: a period that has already ended is rejected,
// as is a new start lying beyond the committed end of the existing
// period. The replacement is atomic; no partial state is observable.
func (e *Enrolment) UpdatePeriod(newPeriod DateTimeRange) error {
	now := time.Now().UTC()
	if newPeriod.HasEnded(now) {
		return appErrors.Clone(appErrors.ErrInvalidEnrolmentPeriod,
			"cannot update enrolment to a period that has already ended")
	}
	if e.period.End != nil && newPeriod.Start.After(*e.period.End) {
		return appErrors.Clone(appErrors.ErrInvalidEnrolmentPeriod,
			"new period start date cannot be after the current period end date")
	}
	e.period = newPeriod
	return nil
}

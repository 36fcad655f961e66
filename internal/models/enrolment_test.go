package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/fojia/lms/pkg/errors"
)

func mayEnrolment(t *testing.T) *Enrolment {
	t.Helper()
	period, err := NewDateTimeRange(ts("2025-05-01 00:00:00"), tsp("2025-05-30 23:59:59"))
	require.NoError(t, err)
	return NewEnrolment("enrolment-id", "student-id", "course-id", period)
}

func TestEnrolmentGeneratesIDWhenMissing(t *testing.T) {
	period, err := NewDateTimeRange(ts("2025-05-01 00:00:00"), nil)
	require.NoError(t, err)

	enrolment := NewEnrolment("", "student-id", "course-id", period)
	assert.NotEmpty(t, enrolment.ID)
}

func TestEnrolmentIsActiveAt(t *testing.T) {
	enrolment := mayEnrolment(t)

	assert.False(t, enrolment.IsActiveAt(ts("2025-04-30 23:59:59")))
	assert.True(t, enrolment.IsActiveAt(ts("2025-05-01 00:00:00")))
	assert.True(t, enrolment.IsActiveAt(ts("2025-05-15 12:00:00")))
	assert.True(t, enrolment.IsActiveAt(ts("2025-05-30 23:59:59")))
	assert.False(t, enrolment.IsActiveAt(ts("2025-06-01 00:00:00")))
}

func TestEnrolmentUpdatePeriodSucceeds(t *testing.T) {
	enrolment := mayEnrolment(t)

	// A new start on or before the committed end with an end still in the
	// future passes both checks.
	newEnd := time.Now().UTC().Add(30 * 24 * time.Hour)
	newPeriod, err := NewDateTimeRange(ts("2025-05-10 00:00:00"), &newEnd)
	require.NoError(t, err)

	require.NoError(t, enrolment.UpdatePeriod(newPeriod))
	assert.Equal(t, newPeriod, enrolment.Period())
}

func TestEnrolmentUpdatePeriodIsIdempotent(t *testing.T) {
	enrolment := mayEnrolment(t)

	newEnd := time.Now().UTC().Add(30 * 24 * time.Hour)
	newPeriod, err := NewDateTimeRange(ts("2025-05-10 00:00:00"), &newEnd)
	require.NoError(t, err)

	require.NoError(t, enrolment.UpdatePeriod(newPeriod))
	first := enrolment.Period()

	// Applying the same period again succeeds and changes nothing.
	require.NoError(t, enrolment.UpdatePeriod(newPeriod))
	assert.Equal(t, first, enrolment.Period())
}

func TestEnrolmentUpdatePeriodToOpenEnded(t *testing.T) {
	enrolment := mayEnrolment(t)

	newPeriod, err := NewDateTimeRange(ts("2025-05-10 00:00:00"), nil)
	require.NoError(t, err)

	require.NoError(t, enrolment.UpdatePeriod(newPeriod))
	assert.Nil(t, enrolment.Period().End)
}

func TestEnrolmentUpdatePeriodRejectsEndedPeriod(t *testing.T) {
	enrolment := mayEnrolment(t)

	pastPeriod, err := NewDateTimeRange(ts("2025-05-01 00:00:00"), tsp("2025-05-20 23:59:59"))
	require.NoError(t, err)

	err = enrolment.UpdatePeriod(pastPeriod)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidEnrolmentPeriod.Code))
	assert.Contains(t, err.Error(), "already ended")

	// The failed update leaves the period untouched.
	assert.Equal(t, tsp("2025-05-30 23:59:59"), enrolment.Period().End)
}

func TestEnrolmentUpdatePeriodRejectsStartBeyondCommittedEnd(t *testing.T) {
	enrolment := mayEnrolment(t)

	start := time.Now().UTC().Add(365 * 24 * time.Hour)
	end := start.Add(30 * 24 * time.Hour)
	newPeriod, err := NewDateTimeRange(start, &end)
	require.NoError(t, err)

	err = enrolment.UpdatePeriod(newPeriod)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidEnrolmentPeriod.Code))
	assert.Contains(t, err.Error(), "cannot be after the current period end date")
	assert.Equal(t, ts("2025-05-01 00:00:00"), enrolment.Period().Start)
}

func TestEnrolmentUpdatePeriodAllowsStartBeyondOpenEnd(t *testing.T) {
	period, err := NewDateTimeRange(ts("2025-05-01 00:00:00"), nil)
	require.NoError(t, err)
	enrolment := NewEnrolment("enrolment-id", "student-id", "course-id", period)

	start := time.Now().UTC().Add(365 * 24 * time.Hour)
	newPeriod, err := NewDateTimeRange(start, nil)
	require.NoError(t, err)

	require.NoError(t, enrolment.UpdatePeriod(newPeriod))
	assert.Equal(t, start, enrolment.Period().Start)
}

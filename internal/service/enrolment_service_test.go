package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fojia/lms/internal/models"
	appErrors "github.com/fojia/lms/pkg/errors"
)

type mockEnrolmentRepository struct {
	byID       *models.Enrolment
	byIDErr    error
	byPair     *models.Enrolment
	byPairErr  error
	createErr  error
	saveErr    error
	created    *models.Enrolment
	saved      *models.Enrolment
	saveCalled bool
}

func (m *mockEnrolmentRepository) FindByID(ctx context.Context, id models.EnrolmentID) (*models.Enrolment, error) {
	return m.byID, m.byIDErr
}

func (m *mockEnrolmentRepository) FindByStudentAndCourse(ctx context.Context, studentID models.StudentID, courseID models.CourseID) (*models.Enrolment, error) {
	return m.byPair, m.byPairErr
}

func (m *mockEnrolmentRepository) Create(ctx context.Context, enrolment *models.Enrolment) error {
	m.created = enrolment
	return m.createErr
}

func (m *mockEnrolmentRepository) Save(ctx context.Context, enrolment *models.Enrolment) error {
	m.saveCalled = true
	m.saved = enrolment
	return m.saveErr
}

func TestEnrolmentServiceEnroll(t *testing.T) {
	f := newBiologyFixture(t)
	repo := &mockEnrolmentRepository{byPairErr: sql.ErrNoRows}
	svc := NewEnrolmentService(repo, &mockStudentReader{student: f.student}, &mockCourseReader{course: f.course}, nil, nil)

	enrolment, err := svc.Enroll(context.Background(), EnrollStudentRequest{
		StudentID: "student-emma",
		CourseID:  "course-biology",
		StartDate: at(t, "2025-05-01 00:00:00"),
		EndDate:   atp(t, "2025-05-30 23:59:59"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, enrolment.ID)
	assert.Equal(t, models.StudentID("student-emma"), enrolment.StudentID)
	assert.Equal(t, enrolment, repo.created)
}

func TestEnrolmentServiceEnrollConflict(t *testing.T) {
	f := newBiologyFixture(t)
	repo := &mockEnrolmentRepository{byPair: f.enrolment}
	svc := NewEnrolmentService(repo, &mockStudentReader{student: f.student}, &mockCourseReader{course: f.course}, nil, nil)

	_, err := svc.Enroll(context.Background(), EnrollStudentRequest{
		StudentID: "student-emma",
		CourseID:  "course-biology",
		StartDate: at(t, "2025-05-01 00:00:00"),
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict.Code))
	assert.Nil(t, repo.created)
}

func TestEnrolmentServiceEnrollUnknownStudent(t *testing.T) {
	f := newBiologyFixture(t)
	repo := &mockEnrolmentRepository{byPairErr: sql.ErrNoRows}
	svc := NewEnrolmentService(repo, &mockStudentReader{err: sql.ErrNoRows}, &mockCourseReader{course: f.course}, nil, nil)

	_, err := svc.Enroll(context.Background(), EnrollStudentRequest{
		StudentID: "nobody",
		CourseID:  "course-biology",
		StartDate: at(t, "2025-05-01 00:00:00"),
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}

func TestEnrolmentServiceUpdatePeriod(t *testing.T) {
	f := newBiologyFixture(t)
	repo := &mockEnrolmentRepository{byID: f.enrolment}
	svc := NewEnrolmentService(repo, nil, nil, nil, nil)

	newEnd := time.Now().UTC().Add(30 * 24 * time.Hour)
	err := svc.UpdatePeriod(context.Background(), "enrolment-emma-biology", UpdateEnrolmentPeriodRequest{
		StartDate: at(t, "2025-05-10 00:00:00"),
		EndDate:   newEnd,
	})
	require.NoError(t, err)
	assert.True(t, repo.saveCalled)
	assert.Equal(t, at(t, "2025-05-10 00:00:00"), repo.saved.Period().Start)
}

func TestEnrolmentServiceUpdatePeriodNotFound(t *testing.T) {
	repo := &mockEnrolmentRepository{byIDErr: sql.ErrNoRows}
	svc := NewEnrolmentService(repo, nil, nil, nil, nil)

	err := svc.UpdatePeriod(context.Background(), "missing", UpdateEnrolmentPeriodRequest{
		StartDate: at(t, "2025-05-10 00:00:00"),
		EndDate:   time.Now().UTC().Add(24 * time.Hour),
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}

func TestEnrolmentServiceUpdatePeriodRejectsEndedPeriodWithoutSaving(t *testing.T) {
	f := newBiologyFixture(t)
	repo := &mockEnrolmentRepository{byID: f.enrolment}
	svc := NewEnrolmentService(repo, nil, nil, nil, nil)

	err := svc.UpdatePeriod(context.Background(), "enrolment-emma-biology", UpdateEnrolmentPeriodRequest{
		StartDate: at(t, "2025-05-01 00:00:00"),
		EndDate:   at(t, "2025-05-20 23:59:59"),
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidEnrolmentPeriod.Code))
	assert.False(t, repo.saveCalled)
}

func TestEnrolmentServiceUpdatePeriodRejectsInvertedRangeWithoutSaving(t *testing.T) {
	f := newBiologyFixture(t)
	repo := &mockEnrolmentRepository{byID: f.enrolment}
	svc := NewEnrolmentService(repo, nil, nil, nil, nil)

	err := svc.UpdatePeriod(context.Background(), "enrolment-emma-biology", UpdateEnrolmentPeriodRequest{
		StartDate: at(t, "2025-06-01 00:00:00"),
		EndDate:   at(t, "2025-05-01 00:00:00"),
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))
	assert.False(t, repo.saveCalled)
}

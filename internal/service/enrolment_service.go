package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fojia/lms/internal/models"
	appErrors "github.com/fojia/lms/pkg/errors"
)

type enrolmentRepository interface {
	FindByID(ctx context.Context, id models.EnrolmentID) (*models.Enrolment, error)
	FindByStudentAndCourse(ctx context.Context, studentID models.StudentID, courseID models.CourseID) (*models.Enrolment, error)
	Create(ctx context.Context, enrolment *models.Enrolment) error
	Save(ctx context.Context, enrolment *models.Enrolment) error
}

// EnrollStudentRequest describes enrolment creation payload.
type EnrollStudentRequest struct {
	StudentID string     `json:"student_id" validate:"required"`
	CourseID  string     `json:"course_id" validate:"required"`
	StartDate time.Time  `json:"start_date" validate:"required"`
	EndDate   *time.Time `json:"end_date"`
}

// UpdateEnrolmentPeriodRequest describes the period update payload.
type UpdateEnrolmentPeriodRequest struct {
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

// EnrolmentService orchestrates enrolment workflows.
type EnrolmentService struct {
	repo      enrolmentRepository
	students  studentReader
	courses   courseReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrolmentService constructs EnrolmentService.
func NewEnrolmentService(repo enrolmentRepository, students studentReader, courses courseReader, validate *validator.Validate, logger *zap.Logger) *EnrolmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrolmentService{repo: repo, students: students, courses: courses, validator: validate, logger: logger}
}

// Enroll registers a student to a course over a period.
func (s *EnrolmentService) Enroll(ctx context.Context, req EnrollStudentRequest) (*models.Enrolment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrolment payload")
	}

	if _, err := s.students.FindByID(ctx, models.StudentID(req.StudentID)); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if _, err := s.courses.FindByID(ctx, models.CourseID(req.CourseID)); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	if _, err := s.repo.FindByStudentAndCourse(ctx, models.StudentID(req.StudentID), models.CourseID(req.CourseID)); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student already enrolled in course")
	} else if err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrolment")
	}

	period, err := models.NewDateTimeRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	enrolment := models.NewEnrolment("", models.StudentID(req.StudentID), models.CourseID(req.CourseID), period)
	if err := s.repo.Create(ctx, enrolment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrolment")
	}
	return enrolment, nil
}

// Get returns an enrolment by ID.
func (s *EnrolmentService) Get(ctx context.Context, id string) (*models.Enrolment, error) {
	enrolment, err := s.repo.FindByID(ctx, models.EnrolmentID(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrolment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrolment")
	}
	return enrolment, nil
}

// UpdatePeriod replaces an enrolment's active period. The decision logic
// lives on the enrolment itself; this is an orchestration shim that
// resolves, mutates and persists. Period construction failures and
// INVALID_ENROLMENT_PERIOD both propagate unmodified.
func (s *EnrolmentService) UpdatePeriod(ctx context.Context, id string, req UpdateEnrolmentPeriodRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid period payload")
	}

	enrolment, err := s.repo.FindByID(ctx, models.EnrolmentID(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "enrolment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrolment")
	}

	endDate := req.EndDate
	newPeriod, err := models.NewDateTimeRange(req.StartDate, &endDate)
	if err != nil {
		return err
	}

	if err := enrolment.UpdatePeriod(newPeriod); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, enrolment); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save enrolment")
	}

	s.logger.Info("enrolment period updated",
		zap.String("enrolment_id", id),
		zap.Time("start_date", req.StartDate),
		zap.Time("end_date", req.EndDate),
	)
	return nil
}

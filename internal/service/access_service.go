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

type studentReader interface {
	FindByID(ctx context.Context, id models.StudentID) (*models.Student, error)
}

type courseReader interface {
	FindByID(ctx context.Context, id models.CourseID) (*models.Course, error)
}

type enrolmentReader interface {
	FindByStudentAndCourse(ctx context.Context, studentID models.StudentID, courseID models.CourseID) (*models.Enrolment, error)
}

// CheckContentAccessRequest identifies the student, course and content
// under evaluation. A zero AccessTime means "now".
type CheckContentAccessRequest struct {
	StudentID  string    `json:"student_id" validate:"required"`
	CourseID   string    `json:"course_id" validate:"required"`
	ContentID  string    `json:"content_id" validate:"required"`
	AccessTime time.Time `json:"access_time"`
}

// CheckContentAccessResult is the structured access decision.
type CheckContentAccessResult struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// AccessService orchestrates the check-content-access query: it resolves
// the entities through the repositories and delegates the decision to
// ContentAccessControl.
type AccessService struct {
	accessControl *ContentAccessControl
	students      studentReader
	courses       courseReader
	enrolments    enrolmentReader
	metrics       *MetricsService
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewAccessService constructs AccessService.
func NewAccessService(accessControl *ContentAccessControl, students studentReader, courses courseReader, enrolments enrolmentReader, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AccessService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccessService{
		accessControl: accessControl,
		students:      students,
		courses:       courses,
		enrolments:    enrolments,
		metrics:       metrics,
		validator:     validate,
		logger:        logger,
	}
}

// Check resolves the entities and evaluates access. Only two failure
// kinds become a negative result instead of an error: an access denial
// and a content identifier unknown to the resolved course, both
// expected business outcomes of this query. An unknown student, course
// or enrolment indicates a malformed request and propagates as an error.
func (s *AccessService) Check(ctx context.Context, req CheckContentAccessRequest) (*CheckContentAccessResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid access check payload")
	}

	accessTime := req.AccessTime
	if accessTime.IsZero() {
		accessTime = time.Now().UTC()
	}

	student, err := s.students.FindByID(ctx, models.StudentID(req.StudentID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	course, err := s.courses.FindByID(ctx, models.CourseID(req.CourseID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	content, err := course.Content(models.ContentID(req.ContentID))
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrContentNotFound.Code) {
			return s.denied(appErrors.FromError(err).Message), nil
		}
		return nil, err
	}

	enrolment, err := s.enrolments.FindByStudentAndCourse(ctx, student.ID, course.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrolment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrolment")
	}

	if err := s.accessControl.CheckAccess(student, course, content, enrolment, accessTime); err != nil {
		if appErrors.HasCode(err, appErrors.ErrAccessDenied.Code) {
			s.logger.Info("content access denied",
				zap.String("student_id", req.StudentID),
				zap.String("course_id", req.CourseID),
				zap.String("content_id", req.ContentID),
				zap.Time("access_time", accessTime),
			)
			return s.denied(appErrors.FromError(err).Message), nil
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncAccessDecision("allowed")
	}
	return &CheckContentAccessResult{Allowed: true}, nil
}

func (s *AccessService) denied(reason string) *CheckContentAccessResult {
	if s.metrics != nil {
		s.metrics.IncAccessDecision("denied")
	}
	return &CheckContentAccessResult{Allowed: false, Reason: reason}
}

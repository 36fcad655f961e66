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

type courseRepository interface {
	FindByID(ctx context.Context, id models.CourseID) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Save(ctx context.Context, course *models.Course) error
}

// CreateCourseRequest describes course creation payload.
type CreateCourseRequest struct {
	Name      string     `json:"name" validate:"required"`
	StartDate time.Time  `json:"start_date" validate:"required"`
	EndDate   *time.Time `json:"end_date"`
}

// AddLessonRequest schedules a lesson within a course.
type AddLessonRequest struct {
	Title       string    `json:"title" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

// AddHomeworkRequest adds a homework; a missing availability instant
// defaults to the course start.
type AddHomeworkRequest struct {
	Title         string     `json:"title" validate:"required"`
	AvailableFrom *time.Time `json:"available_from"`
}

// AddPrepMaterialRequest adds preparatory material, available from the
// course start date.
type AddPrepMaterialRequest struct {
	Title string `json:"title" validate:"required"`
}

// ContentSummary is the listing shape for course contents.
type ContentSummary struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	Title         string    `json:"title"`
	AvailableFrom time.Time `json:"available_from"`
}

// CourseService orchestrates course and content management.
type CourseService struct {
	repo      courseRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs CourseService.
func NewCourseService(repo courseRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, validator: validate, logger: logger}
}

// Create adds a new course.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	period, err := models.NewDateTimeRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	course := models.NewCourse("", req.Name, period)
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	return course, nil
}

// Get returns a course aggregate by ID.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, models.CourseID(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// AddLesson schedules a lesson on a course.
func (s *CourseService) AddLesson(ctx context.Context, courseID string, req AddLessonRequest) (*ContentSummary, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lesson payload")
	}

	course, err := s.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	lesson := models.Lesson{ID: models.NewContentID(), Title: req.Title, ScheduledAt: req.ScheduledAt}
	course.AddLesson(lesson)

	if err := s.repo.Save(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save course")
	}
	return summarize(lesson), nil
}

// AddHomework adds a homework to a course.
func (s *CourseService) AddHomework(ctx context.Context, courseID string, req AddHomeworkRequest) (*ContentSummary, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid homework payload")
	}

	course, err := s.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	availableFrom := course.Period.Start
	if req.AvailableFrom != nil {
		availableFrom = *req.AvailableFrom
	}
	homework := models.Homework{ID: models.NewContentID(), Title: req.Title, AvailableFrom: availableFrom}
	course.AddHomework(homework)

	if err := s.repo.Save(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save course")
	}
	return summarize(homework), nil
}

// AddPrepMaterial adds preparatory material to a course.
func (s *CourseService) AddPrepMaterial(ctx context.Context, courseID string, req AddPrepMaterialRequest) (*ContentSummary, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid prep material payload")
	}

	course, err := s.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	material := models.PrepMaterial{ID: models.NewContentID(), Title: req.Title, CourseStartAt: course.Period.Start}
	course.AddPrepMaterial(material)

	if err := s.repo.Save(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save course")
	}
	return summarize(material), nil
}

// ListContents returns all content of a course in insertion order.
func (s *CourseService) ListContents(ctx context.Context, courseID string) ([]ContentSummary, error) {
	course, err := s.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	contents := course.Contents()
	out := make([]ContentSummary, 0, len(contents))
	for _, content := range contents {
		out = append(out, *summarize(content))
	}
	return out, nil
}

func summarize(content models.CourseContent) *ContentSummary {
	return &ContentSummary{
		ID:            string(content.ContentID()),
		Kind:          string(content.Kind()),
		Title:         content.ContentTitle(),
		AvailableFrom: models.ContentAvailableFrom(content),
	}
}

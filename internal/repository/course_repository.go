package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fojia/lms/internal/models"
	appErrors "github.com/fojia/lms/pkg/errors"
)

// courseCacheMetrics records cache outcomes for course lookups.
type courseCacheMetrics interface {
	IncCourseCacheHit()
	IncCourseCacheMiss()
}

// CourseRepository handles persistence of course aggregates. Reads go
// through an optional Redis cache-aside; writes invalidate it.
type CourseRepository struct {
	db      *sqlx.DB
	cache   *CacheRepository
	ttl     time.Duration
	metrics courseCacheMetrics
}

// NewCourseRepository constructs the repository. cache may be nil to
// disable the cache-aside path.
func NewCourseRepository(db *sqlx.DB, cache *CacheRepository, ttl time.Duration, metrics courseCacheMetrics) *CourseRepository {
	return &CourseRepository{db: db, cache: cache, ttl: ttl, metrics: metrics}
}

type courseRow struct {
	ID        string     `db:"id"`
	Name      string     `db:"name"`
	StartDate time.Time  `db:"start_date"`
	EndDate   *time.Time `db:"end_date"`
}

type contentRow struct {
	ID            string    `db:"id"`
	CourseID      string    `db:"course_id"`
	Kind          string    `db:"kind"`
	Title         string    `db:"title"`
	AvailableFrom time.Time `db:"available_from"`
	Position      int       `db:"position"`
}

// courseDoc is the flat cache representation of a course aggregate.
type courseDoc struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Start    time.Time    `json:"start"`
	End      *time.Time   `json:"end,omitempty"`
	Contents []contentDoc `json:"contents"`
}

type contentDoc struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	Title         string    `json:"title"`
	AvailableFrom time.Time `json:"available_from"`
}

func courseKey(id models.CourseID) string {
	return fmt.Sprintf("course:%s", id)
}

// FindByID returns the course aggregate including its contents in
// insertion order.
func (r *CourseRepository) FindByID(ctx context.Context, id models.CourseID) (*models.Course, error) {
	if r.cache != nil {
		var doc courseDoc
		if err := r.cache.Get(ctx, courseKey(id), &doc); err == nil {
			if r.metrics != nil {
				r.metrics.IncCourseCacheHit()
			}
			return buildCourse(doc)
		}
		if r.metrics != nil {
			r.metrics.IncCourseCacheMiss()
		}
	}

	const query = `SELECT id, name, start_date, end_date FROM courses WHERE id = $1`
	var row courseRow
	if err := r.db.GetContext(ctx, &row, query, string(id)); err != nil {
		return nil, err
	}

	const contentsQuery = `SELECT id, course_id, kind, title, available_from, position
        FROM course_contents WHERE course_id = $1 ORDER BY position`
	var contents []contentRow
	if err := r.db.SelectContext(ctx, &contents, contentsQuery, string(id)); err != nil {
		return nil, fmt.Errorf("load course contents: %w", err)
	}

	doc := courseDoc{ID: row.ID, Name: row.Name, Start: row.StartDate, End: row.EndDate}
	for _, c := range contents {
		doc.Contents = append(doc.Contents, contentDoc{ID: c.ID, Kind: c.Kind, Title: c.Title, AvailableFrom: c.AvailableFrom})
	}

	course, err := buildCourse(doc)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		_ = r.cache.Set(ctx, courseKey(id), doc, r.ttl)
	}
	return course, nil
}

func buildCourse(doc courseDoc) (*models.Course, error) {
	period, err := models.NewDateTimeRange(doc.Start, doc.End)
	if err != nil {
		return nil, fmt.Errorf("course %s period: %w", doc.ID, err)
	}
	course := models.NewCourse(models.CourseID(doc.ID), doc.Name, period)
	for _, c := range doc.Contents {
		id := models.ContentID(c.ID)
		switch models.ContentKind(c.Kind) {
		case models.ContentKindLesson:
			course.AddLesson(models.Lesson{ID: id, Title: c.Title, ScheduledAt: c.AvailableFrom})
		case models.ContentKindHomework:
			course.AddHomework(models.Homework{ID: id, Title: c.Title, AvailableFrom: c.AvailableFrom})
		case models.ContentKindPrepMaterial:
			course.AddPrepMaterial(models.PrepMaterial{ID: id, Title: c.Title, CourseStartAt: c.AvailableFrom})
		default:
			return nil, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("unknown content kind %q", c.Kind))
		}
	}
	return course, nil
}

// Create persists a new course record.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	const query = `INSERT INTO courses (id, name, start_date, end_date) VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, query, string(course.ID), course.Name, course.Period.Start, course.Period.End); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Save writes the course row and replaces its content collection, then
// invalidates the cached aggregate.
func (r *CourseRepository) Save(ctx context.Context, course *models.Course) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save course: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const upsert = `INSERT INTO courses (id, name, start_date, end_date) VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, start_date = EXCLUDED.start_date, end_date = EXCLUDED.end_date`
	if _, err := tx.ExecContext(ctx, upsert, string(course.ID), course.Name, course.Period.Start, course.Period.End); err != nil {
		return fmt.Errorf("save course: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM course_contents WHERE course_id = $1`, string(course.ID)); err != nil {
		return fmt.Errorf("clear course contents: %w", err)
	}

	const insertContent = `INSERT INTO course_contents (id, course_id, kind, title, available_from, position)
        VALUES ($1, $2, $3, $4, $5, $6)`
	for i, content := range course.Contents() {
		if _, err := tx.ExecContext(ctx, insertContent,
			string(content.ContentID()), string(course.ID), string(content.Kind()),
			content.ContentTitle(), models.ContentAvailableFrom(content), i); err != nil {
			return fmt.Errorf("save course content: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save course: %w", err)
	}

	if r.cache != nil {
		_ = r.cache.Delete(ctx, courseKey(course.ID))
	}
	return nil
}

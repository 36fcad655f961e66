package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fojia/lms/internal/models"
)

func TestCourseRepositoryFindByIDBuildsAggregate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db, nil, 0, nil)

	start := time.Date(2025, 5, 13, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 12, 23, 59, 59, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, start_date, end_date FROM courses WHERE id = $1")).
		WithArgs("course-biology").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "start_date", "end_date"}).
			AddRow("course-biology", "A-Level Biology", start, end))
	mock.ExpectQuery("SELECT id, course_id, kind, title, available_from, position").
		WithArgs("course-biology").
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "kind", "title", "available_from", "position"}).
			AddRow("c-1", "course-biology", "LESSON", "Cell Structure", time.Date(2025, 5, 15, 10, 0, 0, 0, time.UTC), 0).
			AddRow("c-2", "course-biology", "HOMEWORK", "Label a Plant Cell", start, 1).
			AddRow("c-3", "course-biology", "PREP_MATERIAL", "Biology Reading Guide", start, 2))

	course, err := repo.FindByID(context.Background(), "course-biology")
	require.NoError(t, err)
	assert.Equal(t, "A-Level Biology", course.Name)

	contents := course.Contents()
	require.Len(t, contents, 3)
	assert.Equal(t, models.ContentKindLesson, contents[0].Kind())
	assert.Equal(t, models.ContentKindHomework, contents[1].Kind())
	assert.Equal(t, models.ContentKindPrepMaterial, contents[2].Kind())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryFindByIDUnknownKind(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db, nil, 0, nil)

	start := time.Date(2025, 5, 13, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, start_date, end_date FROM courses WHERE id = $1")).
		WithArgs("course-biology").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "start_date", "end_date"}).
			AddRow("course-biology", "A-Level Biology", start, nil))
	mock.ExpectQuery("SELECT id, course_id, kind, title, available_from, position").
		WithArgs("course-biology").
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "kind", "title", "available_from", "position"}).
			AddRow("c-1", "course-biology", "QUIZ", "Pop Quiz", start, 0))

	_, err := repo.FindByID(context.Background(), "course-biology")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown content kind "QUIZ"`)
}

func TestCourseRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db, nil, 0, nil)

	period, err := models.NewDateTimeRange(time.Date(2025, 5, 13, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	course := models.NewCourse("course-biology", "A-Level Biology", period)

	mock.ExpectExec("INSERT INTO courses").
		WithArgs("course-biology", "A-Level Biology", period.Start, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), course))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositorySaveReplacesContents(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db, nil, 0, nil)

	start := time.Date(2025, 5, 13, 0, 0, 0, 0, time.UTC)
	period, err := models.NewDateTimeRange(start, nil)
	require.NoError(t, err)
	course := models.NewCourse("course-biology", "A-Level Biology", period)
	course.AddLesson(models.Lesson{ID: "c-1", Title: "Cell Structure", ScheduledAt: time.Date(2025, 5, 15, 10, 0, 0, 0, time.UTC)})
	course.AddHomework(models.Homework{ID: "c-2", Title: "Label a Plant Cell", AvailableFrom: start})

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO courses").
		WithArgs("course-biology", "A-Level Biology", start, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("DELETE FROM course_contents").
		WithArgs("course-biology").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO course_contents").
		WithArgs("c-1", "course-biology", "LESSON", "Cell Structure", sqlmock.AnyArg(), 0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO course_contents").
		WithArgs("c-2", "course-biology", "HOMEWORK", "Label a Plant Cell", sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), course))
	assert.NoError(t, mock.ExpectationsWereMet())
}

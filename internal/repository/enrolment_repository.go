package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fojia/lms/internal/models"
)

// EnrolmentRepository handles persistence of enrolments.
type EnrolmentRepository struct {
	db *sqlx.DB
}

// NewEnrolmentRepository constructs the repository.
func NewEnrolmentRepository(db *sqlx.DB) *EnrolmentRepository {
	return &EnrolmentRepository{db: db}
}

type enrolmentRow struct {
	ID        string     `db:"id"`
	StudentID string     `db:"student_id"`
	CourseID  string     `db:"course_id"`
	StartDate time.Time  `db:"start_date"`
	EndDate   *time.Time `db:"end_date"`
}

func buildEnrolment(row enrolmentRow) (*models.Enrolment, error) {
	period, err := models.NewDateTimeRange(row.StartDate, row.EndDate)
	if err != nil {
		return nil, fmt.Errorf("enrolment %s period: %w", row.ID, err)
	}
	return models.NewEnrolment(
		models.EnrolmentID(row.ID),
		models.StudentID(row.StudentID),
		models.CourseID(row.CourseID),
		period,
	), nil
}

// FindByID returns an enrolment by its ID.
func (r *EnrolmentRepository) FindByID(ctx context.Context, id models.EnrolmentID) (*models.Enrolment, error) {
	const query = `SELECT id, student_id, course_id, start_date, end_date FROM enrolments WHERE id = $1`
	var row enrolmentRow
	if err := r.db.GetContext(ctx, &row, query, string(id)); err != nil {
		return nil, err
	}
	return buildEnrolment(row)
}

// FindByStudentAndCourse returns the enrolment binding a student to a course.
func (r *EnrolmentRepository) FindByStudentAndCourse(ctx context.Context, studentID models.StudentID, courseID models.CourseID) (*models.Enrolment, error) {
	const query = `SELECT id, student_id, course_id, start_date, end_date FROM enrolments
        WHERE student_id = $1 AND course_id = $2`
	var row enrolmentRow
	if err := r.db.GetContext(ctx, &row, query, string(studentID), string(courseID)); err != nil {
		return nil, err
	}
	return buildEnrolment(row)
}

// Create persists a new enrolment record.
func (r *EnrolmentRepository) Create(ctx context.Context, enrolment *models.Enrolment) error {
	const query = `INSERT INTO enrolments (id, student_id, course_id, start_date, end_date)
        VALUES ($1, $2, $3, $4, $5)`
	period := enrolment.Period()
	if _, err := r.db.ExecContext(ctx, query,
		string(enrolment.ID), string(enrolment.StudentID), string(enrolment.CourseID),
		period.Start, period.End); err != nil {
		return fmt.Errorf("create enrolment: %w", err)
	}
	return nil
}

// Save updates the period of an existing enrolment.
func (r *EnrolmentRepository) Save(ctx context.Context, enrolment *models.Enrolment) error {
	const query = `UPDATE enrolments SET start_date = $2, end_date = $3 WHERE id = $1`
	period := enrolment.Period()
	if _, err := r.db.ExecContext(ctx, query, string(enrolment.ID), period.Start, period.End); err != nil {
		return fmt.Errorf("save enrolment: %w", err)
	}
	return nil
}

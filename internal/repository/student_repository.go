package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fojia/lms/internal/models"
)

// StudentRepository handles persistence of students.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByID returns a student by its ID.
func (r *StudentRepository) FindByID(ctx context.Context, id models.StudentID) (*models.Student, error) {
	const query = `SELECT id, full_name FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, string(id)); err != nil {
		return nil, err
	}
	return &student, nil
}

// Create persists a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = models.NewStudentID()
	}
	const query = `INSERT INTO students (id, full_name) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, string(student.ID), student.Name); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

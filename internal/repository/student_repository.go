package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studentportal/portal-api/internal/models"
)

// StudentRepository manages persistence for student identity records and
// their ordered course lists.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByCode fetches a student record with its course list. Returns
// sql.ErrNoRows when the code is unknown.
func (r *StudentRepository) FindByCode(ctx context.Context, code string) (*models.Student, error) {
	query := `SELECT code, name, nid, level, major, division, photo, updated_at
        FROM students WHERE code = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, code); err != nil {
		return nil, err
	}

	courses, err := r.coursesFor(ctx, code)
	if err != nil {
		return nil, err
	}
	student.Courses = courses
	return &student, nil
}

func (r *StudentRepository) coursesFor(ctx context.Context, code string) ([]models.Course, error) {
	query := `SELECT code, name, credits, grade FROM student_courses
        WHERE student_code = $1 ORDER BY position`
	rows, err := r.db.QueryxContext(ctx, query, code)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		if err := rows.StructScan(&c); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Upsert replaces the identity record and its full course list in one
// transaction. The caller sees an atomic write: either both the record and
// the ordered course list land, or neither does.
func (r *StudentRepository) Upsert(ctx context.Context, student *models.Student) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	query := `INSERT INTO students (code, name, nid, level, major, division, photo, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (code) DO UPDATE SET
            name = EXCLUDED.name,
            nid = EXCLUDED.nid,
            level = EXCLUDED.level,
            major = EXCLUDED.major,
            division = EXCLUDED.division,
            photo = EXCLUDED.photo,
            updated_at = EXCLUDED.updated_at`
	if _, err := tx.ExecContext(ctx, query,
		student.Code, student.Name, student.NID, student.Level,
		student.Major, student.Division, student.Photo, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("upsert student: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM student_courses WHERE student_code = $1`, student.Code); err != nil {
		return fmt.Errorf("clear courses: %w", err)
	}

	insert := `INSERT INTO student_courses (student_code, position, code, name, credits, grade)
        VALUES ($1, $2, $3, $4, $5, $6)`
	for i, course := range student.Courses {
		if _, err := tx.ExecContext(ctx, insert,
			student.Code, i, course.Code, course.Name, float64(course.Credits), course.Grade,
		); err != nil {
			return fmt.Errorf("insert course %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

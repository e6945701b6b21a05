package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oguzk/courseapi/internal/app/models"
	"github.com/oguzk/courseapi/internal/pkg/apperrors"
)

// CourseRepository handles database operations for courses and their
// content rows. Content is authored by external tooling, so this
// repository is read-only.
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	query := `
		SELECT id, name, number, org, start_date, end_date
		FROM courses
		WHERE id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Name,
		&course.Number,
		&course.Org,
		&course.Start,
		&course.End,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// Exists checks whether a course exists
func (r *CourseRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`,
		id).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking course existence: %w", err)
	}

	return exists, nil
}

// GetAll retrieves all courses
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	query := `
		SELECT id, name, number, org, start_date, end_date
		FROM courses
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.Name,
			&course.Number,
			&course.Org,
			&course.Start,
			&course.End,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// GetContentRows retrieves every content row of a course. The tree is
// assembled in memory by the content package.
func (r *CourseRepository) GetContentRows(ctx context.Context, courseID string) ([]*models.CourseContent, error) {
	query := `
		SELECT id, course_id, parent_id, category, display_name, position, due, graded, format, body
		FROM course_content
		WHERE course_id = $1
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var content []*models.CourseContent
	for rows.Next() {
		var node models.CourseContent
		if err := rows.Scan(
			&node.ID,
			&node.CourseID,
			&node.ParentID,
			&node.Category,
			&node.DisplayName,
			&node.Position,
			&node.Due,
			&node.Graded,
			&node.Format,
			&node.Body,
		); err != nil {
			return nil, err
		}
		content = append(content, &node)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return content, nil
}

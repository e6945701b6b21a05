package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oguzk/courseapi/internal/app/models"
	"github.com/oguzk/courseapi/internal/pkg/apperrors"
	"github.com/oguzk/courseapi/internal/pkg/dberrors"
)

// EnrollmentRepository handles database operations for course
// enrollments and pending enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// Enroll inserts an enrollment. A duplicate enrollment is surfaced by
// the unique pair constraint.
func (r *EnrollmentRepository) Enroll(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO course_enrollments (course_id, user_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	enrollment.CreatedAt = time.Now()
	err := r.db.QueryRow(ctx, query, enrollment.CourseID, enrollment.UserID, enrollment.CreatedAt).Scan(&enrollment.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "course_enrollments_course_id_user_id_key") {
			return apperrors.ErrAlreadyEnrolled
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// Unenroll removes an enrollment. Removing an absent enrollment is not
// an error.
func (r *EnrollmentRepository) Unenroll(ctx context.Context, courseID string, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM course_enrollments WHERE course_id = $1 AND user_id = $2`, courseID, userID)
	if err != nil {
		return fmt.Errorf("error removing enrollment: %w", err)
	}
	return nil
}

// IsEnrolled checks whether a user is enrolled in a course
func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, courseID string, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM course_enrollments WHERE course_id = $1 AND user_id = $2)`,
		courseID, userID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}

	return exists, nil
}

// CountEnrolled returns the number of active users enrolled in a course
func (r *EnrollmentRepository) CountEnrolled(ctx context.Context, courseID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM course_enrollments ce
		JOIN users u ON u.id = ce.user_id
		WHERE ce.course_id = $1 AND u.is_active`,
		courseID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}

	return count, nil
}

// GetEnrolledUsers returns the active users enrolled in a course,
// optionally restricted to or excluding given group memberships
func (r *EnrollmentRepository) GetEnrolledUsers(ctx context.Context, courseID string, groups, excludeGroups []int64) ([]*models.User, error) {
	if groups == nil {
		groups = []int64{}
	}
	if excludeGroups == nil {
		excludeGroups = []int64{}
	}

	query := `
		SELECT u.id, u.username, u.email, u.password_hash, u.first_name, u.last_name,
		       u.title, u.avatar_url, u.city, u.is_active, u.created_at, u.updated_at
		FROM users u
		JOIN course_enrollments ce ON ce.user_id = u.id
		WHERE ce.course_id = $1
		  AND u.is_active
		  AND (cardinality($2::bigint[]) = 0 OR EXISTS(
			SELECT 1 FROM group_users gu WHERE gu.user_id = u.id AND gu.group_id = ANY($2)))
		  AND NOT EXISTS(
			SELECT 1 FROM group_users gu WHERE gu.user_id = u.id AND gu.group_id = ANY($3))
		ORDER BY ce.id
	`

	rows, err := r.db.Query(ctx, query, courseID, groups, excludeGroups)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// CreatePending records a pending enrollment for an email address.
// Re-posting the same email updates the auto enroll flag.
func (r *EnrollmentRepository) CreatePending(ctx context.Context, pending *models.PendingEnrollment) error {
	query := `
		INSERT INTO pending_enrollments (course_id, email, auto_enroll, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT pending_enrollments_course_id_email_key
		DO UPDATE SET auto_enroll = EXCLUDED.auto_enroll
		RETURNING id
	`

	pending.CreatedAt = time.Now()
	err := r.db.QueryRow(ctx, query, pending.CourseID, pending.Email, pending.AutoEnroll, pending.CreatedAt).Scan(&pending.ID)
	if err != nil {
		return fmt.Errorf("error creating pending enrollment: %w", err)
	}

	return nil
}

// GetPending returns the pending enrollments of a course
func (r *EnrollmentRepository) GetPending(ctx context.Context, courseID string) ([]*models.PendingEnrollment, error) {
	query := `
		SELECT id, course_id, email, auto_enroll, created_at
		FROM pending_enrollments
		WHERE course_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []*models.PendingEnrollment
	for rows.Next() {
		var p models.PendingEnrollment
		if err := rows.Scan(&p.ID, &p.CourseID, &p.Email, &p.AutoEnroll, &p.CreatedAt); err != nil {
			return nil, err
		}
		pending = append(pending, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pending, nil
}

// DeletePendingByEmail removes pending enrollments once the email is
// claimed by a real account
func (r *EnrollmentRepository) DeletePendingByEmail(ctx context.Context, email string) ([]*models.PendingEnrollment, error) {
	query := `
		DELETE FROM pending_enrollments
		WHERE email = $1
		RETURNING id, course_id, email, auto_enroll, created_at
	`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("error claiming pending enrollments: %w", err)
	}
	defer rows.Close()

	var claimed []*models.PendingEnrollment
	for rows.Next() {
		var p models.PendingEnrollment
		if err := rows.Scan(&p.ID, &p.CourseID, &p.Email, &p.AutoEnroll, &p.CreatedAt); err != nil {
			return nil, err
		}
		claimed = append(claimed, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return claimed, nil
}

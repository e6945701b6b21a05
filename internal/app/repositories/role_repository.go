package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oguzk/courseapi/internal/app/models"
	"github.com/oguzk/courseapi/internal/pkg/apperrors"
)

// RoleRepository handles database operations for per-course role grants
type RoleRepository struct {
	db *pgxpool.Pool
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{
		db: db,
	}
}

// Grant assigns a role to a user on a course. Granting an existing role
// is a no-op, so the operation is idempotent.
func (r *RoleRepository) Grant(ctx context.Context, assignment *models.CourseRoleAssignment) error {
	query := `
		INSERT INTO course_roles (course_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT course_roles_course_id_user_id_role_key DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, assignment.CourseID, assignment.UserID, assignment.Role)
	if err != nil {
		return fmt.Errorf("error granting role: %w", err)
	}

	return nil
}

// Revoke removes a role grant. An absent grant maps to ErrRoleNotFound.
func (r *RoleRepository) Revoke(ctx context.Context, courseID string, userID int64, role models.CourseRole) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM course_roles WHERE course_id = $1 AND user_id = $2 AND role = $3`,
		courseID, userID, role)
	if err != nil {
		return fmt.Errorf("error revoking role: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRoleNotFound
	}

	return nil
}

// List returns the role grants of a course, optionally filtered by user
// and role
func (r *RoleRepository) List(ctx context.Context, courseID string, userID int64, role string) ([]*models.CourseRoleAssignment, error) {
	query := `
		SELECT id, course_id, user_id, role
		FROM course_roles
		WHERE course_id = $1
		  AND ($2 = 0 OR user_id = $2)
		  AND ($3 = '' OR role = $3)
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, courseID, userID, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.CourseRoleAssignment
	for rows.Next() {
		var assignment models.CourseRoleAssignment
		if err := rows.Scan(&assignment.ID, &assignment.CourseID, &assignment.UserID, &assignment.Role); err != nil {
			return nil, err
		}
		assignments = append(assignments, &assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// UsersWithRole returns the user ids holding a role on a course. The
// leaderboards use this to exclude observers from scoring.
func (r *RoleRepository) UsersWithRole(ctx context.Context, courseID string, role models.CourseRole) ([]int64, error) {
	query := `
		SELECT user_id
		FROM course_roles
		WHERE course_id = $1 AND role = $2
		ORDER BY user_id
	`

	rows, err := r.db.Query(ctx, query, courseID, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return userIDs, nil
}

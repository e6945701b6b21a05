package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oguzk/courseapi/internal/app/models"
	"github.com/oguzk/courseapi/internal/pkg/apperrors"
	"github.com/oguzk/courseapi/internal/pkg/dberrors"
)

// GroupRepository handles database operations for groups, group
// membership and course/content group bindings
type GroupRepository struct {
	db *pgxpool.Pool
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{
		db: db,
	}
}

// Create inserts a new group
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	query := `
		INSERT INTO groups (name, group_type, data, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	group.CreatedAt = time.Now()
	err := r.db.QueryRow(ctx, query, group.Name, group.GroupType, group.Data, group.CreatedAt).Scan(&group.ID)
	if err != nil {
		return fmt.Errorf("error creating group: %w", err)
	}

	return nil
}

// GetByID retrieves a group by ID
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	query := `
		SELECT id, name, group_type, data, created_at
		FROM groups
		WHERE id = $1
	`

	var group models.Group
	err := r.db.QueryRow(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.GroupType,
		&group.Data,
		&group.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("error retrieving group: %w", err)
	}

	return &group, nil
}

// GetAll retrieves all groups, optionally filtered by group type
func (r *GroupRepository) GetAll(ctx context.Context, groupType string) ([]*models.Group, error) {
	query := `
		SELECT id, name, group_type, data, created_at
		FROM groups
		WHERE ($1 = '' OR group_type = $1)
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, groupType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		var group models.Group
		if err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.GroupType,
			&group.Data,
			&group.CreatedAt,
		); err != nil {
			return nil, err
		}
		groups = append(groups, &group)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}

// Update updates a group's profile fields
func (r *GroupRepository) Update(ctx context.Context, group *models.Group) error {
	query := `
		UPDATE groups
		SET name = $1, group_type = $2, data = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, group.Name, group.GroupType, group.Data, group.ID)
	if err != nil {
		return fmt.Errorf("error updating group: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGroupNotFound
	}

	return nil
}

// Delete deletes a group by ID
func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting group: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGroupNotFound
	}

	return nil
}

// Exists checks whether a group exists
func (r *GroupRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM groups WHERE id = $1)`,
		id).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking group existence: %w", err)
	}

	return exists, nil
}

// AddMember adds a user to a group. A duplicate membership is surfaced
// by the unique pair constraint, so concurrent adds resolve cleanly.
func (r *GroupRepository) AddMember(ctx context.Context, groupID, userID int64) error {
	query := `
		INSERT INTO group_users (group_id, user_id)
		VALUES ($1, $2)
	`

	_, err := r.db.Exec(ctx, query, groupID, userID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "group_users_group_id_user_id_key") {
			return apperrors.ErrGroupMemberExists
		}
		return fmt.Errorf("error adding group member: %w", err)
	}

	return nil
}

// RemoveMember removes a user from a group. Removing an absent
// membership is not an error.
func (r *GroupRepository) RemoveMember(ctx context.Context, groupID, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM group_users WHERE group_id = $1 AND user_id = $2`, groupID, userID)
	if err != nil {
		return fmt.Errorf("error removing group member: %w", err)
	}
	return nil
}

// IsMember checks whether a user belongs to a group
func (r *GroupRepository) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM group_users WHERE group_id = $1 AND user_id = $2)`,
		groupID, userID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking group membership: %w", err)
	}

	return exists, nil
}

// GetMembers retrieves the users of a group
func (r *GroupRepository) GetMembers(ctx context.Context, groupID int64) ([]*models.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.password_hash, u.first_name, u.last_name,
		       u.title, u.avatar_url, u.city, u.is_active, u.created_at, u.updated_at
		FROM users u
		JOIN group_users gu ON gu.user_id = u.id
		WHERE gu.group_id = $1
		ORDER BY u.id
	`

	rows, err := r.db.Query(ctx, query, groupID)
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

// BindToCourse binds a group to a course. A duplicate binding is
// surfaced by the unique pair constraint.
func (r *GroupRepository) BindToCourse(ctx context.Context, courseID string, groupID int64) error {
	query := `
		INSERT INTO course_groups (course_id, group_id)
		VALUES ($1, $2)
	`

	_, err := r.db.Exec(ctx, query, courseID, groupID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "course_groups_course_id_group_id_key") {
			return apperrors.ErrRelationshipExists
		}
		return fmt.Errorf("error binding group to course: %w", err)
	}

	return nil
}

// UnbindFromCourse removes a course group binding. Removing an absent
// binding is not an error.
func (r *GroupRepository) UnbindFromCourse(ctx context.Context, courseID string, groupID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM course_groups WHERE course_id = $1 AND group_id = $2`, courseID, groupID)
	if err != nil {
		return fmt.Errorf("error unbinding group from course: %w", err)
	}
	return nil
}

// IsBoundToCourse checks whether a group is bound to a course
func (r *GroupRepository) IsBoundToCourse(ctx context.Context, courseID string, groupID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM course_groups WHERE course_id = $1 AND group_id = $2)`,
		courseID, groupID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking course group binding: %w", err)
	}

	return exists, nil
}

// GetCourseGroups retrieves the groups bound to a course in insertion
// order, optionally filtered by group type
func (r *GroupRepository) GetCourseGroups(ctx context.Context, courseID, groupType string) ([]*models.Group, error) {
	query := `
		SELECT g.id, g.name, g.group_type, g.data, g.created_at
		FROM groups g
		JOIN course_groups cg ON cg.group_id = g.id
		WHERE cg.course_id = $1 AND ($2 = '' OR g.group_type = $2)
		ORDER BY cg.id
	`

	rows, err := r.db.Query(ctx, query, courseID, groupType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		var group models.Group
		if err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.GroupType,
			&group.Data,
			&group.CreatedAt,
		); err != nil {
			return nil, err
		}
		groups = append(groups, &group)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}

// GetContentUsers retrieves the distinct users belonging to groups
// bound to a content node, keeping only users whose course-enrollment
// status matches enrolled. A positive groupID or a non-empty groupType
// narrows the candidate groups.
func (r *GroupRepository) GetContentUsers(ctx context.Context, courseID, contentID string, groupID int64, groupType string, enrolled bool) ([]*models.User, error) {
	query := `
		SELECT DISTINCT u.id, u.username, u.email, u.password_hash, u.first_name, u.last_name,
		       u.title, u.avatar_url, u.city, u.is_active, u.created_at, u.updated_at
		FROM users u
		JOIN group_users gu ON gu.user_id = u.id
		JOIN groups g ON g.id = gu.group_id
		JOIN course_content_groups ccg ON ccg.group_id = g.id
		WHERE ccg.course_id = $1 AND ccg.content_id = $2
		  AND ($3 = 0 OR g.id = $3)
		  AND ($4 = '' OR g.group_type = $4)
		  AND EXISTS(
		      SELECT 1 FROM course_enrollments ce
		      WHERE ce.course_id = ccg.course_id AND ce.user_id = u.id
		  ) = $5
		ORDER BY u.id
	`

	rows, err := r.db.Query(ctx, query, courseID, contentID, groupID, groupType, enrolled)
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

// BindToContent binds a group to a content node within a course
func (r *GroupRepository) BindToContent(ctx context.Context, courseID, contentID string, groupID int64) error {
	query := `
		INSERT INTO course_content_groups (course_id, content_id, group_id)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query, courseID, contentID, groupID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "course_content_groups_course_id_content_id_group_id_key") {
			return apperrors.ErrRelationshipExists
		}
		return fmt.Errorf("error binding group to content: %w", err)
	}

	return nil
}

// UnbindFromContent removes a content group binding. Removing an absent
// binding is not an error.
func (r *GroupRepository) UnbindFromContent(ctx context.Context, courseID, contentID string, groupID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM course_content_groups WHERE course_id = $1 AND content_id = $2 AND group_id = $3`,
		courseID, contentID, groupID)
	if err != nil {
		return fmt.Errorf("error unbinding group from content: %w", err)
	}
	return nil
}

// IsBoundToContent checks whether a group is bound to a content node
func (r *GroupRepository) IsBoundToContent(ctx context.Context, courseID, contentID string, groupID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM course_content_groups WHERE course_id = $1 AND content_id = $2 AND group_id = $3)`,
		courseID, contentID, groupID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking content group binding: %w", err)
	}

	return exists, nil
}

// GetContentGroups retrieves the groups bound to a content node in
// insertion order, optionally filtered by group type
func (r *GroupRepository) GetContentGroups(ctx context.Context, courseID, contentID, groupType string) ([]*models.Group, error) {
	query := `
		SELECT g.id, g.name, g.group_type, g.data, g.created_at
		FROM groups g
		JOIN course_content_groups ccg ON ccg.group_id = g.id
		WHERE ccg.course_id = $1 AND ccg.content_id = $2 AND ($3 = '' OR g.group_type = $3)
		ORDER BY ccg.id
	`

	rows, err := r.db.Query(ctx, query, courseID, contentID, groupType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		var group models.Group
		if err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.GroupType,
			&group.Data,
			&group.CreatedAt,
		); err != nil {
			return nil, err
		}
		groups = append(groups, &group)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}

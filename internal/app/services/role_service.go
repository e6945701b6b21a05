package services

import (
	"context"
	"fmt"

	"github.com/oguzk/courseapi/internal/app/models"
	"github.com/oguzk/courseapi/internal/app/models/dto"
	"github.com/oguzk/courseapi/internal/pkg/apperrors"
)

// roleStore is the slice of the role repository this package needs
type roleStore interface {
	Grant(ctx context.Context, assignment *models.CourseRoleAssignment) error
	Revoke(ctx context.Context, courseID string, userID int64, role models.CourseRole) error
	List(ctx context.Context, courseID string, userID int64, role string) ([]*models.CourseRoleAssignment, error)
}

// roleUserStore checks that a grantee exists
type roleUserStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// RoleService manages per-course role assignments
type RoleService interface {
	GrantRole(ctx context.Context, courseID string, req *dto.GrantRoleRequest) error
	RevokeRole(ctx context.Context, courseID string, userID int64, role string) error
	ListRoles(ctx context.Context, courseID string, userID int64, role string) ([]dto.RoleEntry, error)
}

type roleService struct {
	roles   roleStore
	courses courseStore
	users   roleUserStore
}

// NewRoleService creates a new role service
func NewRoleService(roles roleStore, courses courseStore, users roleUserStore) RoleService {
	return &roleService{
		roles:   roles,
		courses: courses,
		users:   users,
	}
}

func (s *roleService) requireCourse(ctx context.Context, courseID string) error {
	exists, err := s.courses.Exists(ctx, courseID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// GrantRole assigns a role to a user in a course; granting a role the
// user already holds succeeds
func (s *roleService) GrantRole(ctx context.Context, courseID string, req *dto.GrantRoleRequest) error {
	if err := s.requireCourse(ctx, courseID); err != nil {
		return err
	}

	if !models.ValidCourseRole(req.Role) {
		return apperrors.ErrInvalidRole
	}

	// An unknown grantee is a malformed request, not a missing resource
	exists, err := s.users.Exists(ctx, req.UserID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewBadRequestError(fmt.Sprintf("user_id %d is invalid", req.UserID))
	}

	return s.roles.Grant(ctx, &models.CourseRoleAssignment{
		CourseID: courseID,
		UserID:   req.UserID,
		Role:     models.CourseRole(req.Role),
	})
}

// RevokeRole removes a role assignment; revoking an absent assignment
// reports not found. A role outside the known set addresses an
// assignment that cannot exist, so it is not found rather than invalid.
func (s *roleService) RevokeRole(ctx context.Context, courseID string, userID int64, role string) error {
	if err := s.requireCourse(ctx, courseID); err != nil {
		return err
	}

	if !models.ValidCourseRole(role) {
		return apperrors.ErrRoleNotFound
	}

	return s.roles.Revoke(ctx, courseID, userID, models.CourseRole(role))
}

// ListRoles lists role assignments in a course, optionally narrowed by
// user and by role
func (s *roleService) ListRoles(ctx context.Context, courseID string, userID int64, role string) ([]dto.RoleEntry, error) {
	if err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}

	if role != "" && !models.ValidCourseRole(role) {
		return nil, apperrors.ErrInvalidRole
	}

	assignments, err := s.roles.List(ctx, courseID, userID, role)
	if err != nil {
		return nil, fmt.Errorf("error retrieving roles: %w", err)
	}

	out := make([]dto.RoleEntry, 0, len(assignments))
	for _, assignment := range assignments {
		out = append(out, dto.RoleEntry{
			ID:   assignment.UserID,
			Role: string(assignment.Role),
		})
	}

	return out, nil
}

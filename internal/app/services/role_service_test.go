package services

import (
	"context"
	"errors"
	"testing"

	"github.com/oguzk/courseapi/internal/app/models"
	"github.com/oguzk/courseapi/internal/app/models/dto"
	"github.com/oguzk/courseapi/internal/pkg/apperrors"
)

// fakeRoleStore keeps role assignments in memory
type fakeRoleStore struct {
	assignments []*models.CourseRoleAssignment
}

func (f *fakeRoleStore) Grant(_ context.Context, assignment *models.CourseRoleAssignment) error {
	for _, existing := range f.assignments {
		if existing.CourseID == assignment.CourseID &&
			existing.UserID == assignment.UserID &&
			existing.Role == assignment.Role {
			return nil
		}
	}
	f.assignments = append(f.assignments, assignment)
	return nil
}

func (f *fakeRoleStore) Revoke(_ context.Context, courseID string, userID int64, role models.CourseRole) error {
	for i, existing := range f.assignments {
		if existing.CourseID == courseID && existing.UserID == userID && existing.Role == role {
			f.assignments = append(f.assignments[:i], f.assignments[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrRoleNotFound
}

func (f *fakeRoleStore) List(_ context.Context, courseID string, userID int64, role string) ([]*models.CourseRoleAssignment, error) {
	var out []*models.CourseRoleAssignment
	for _, existing := range f.assignments {
		if existing.CourseID != courseID {
			continue
		}
		if userID > 0 && existing.UserID != userID {
			continue
		}
		if role != "" && string(existing.Role) != role {
			continue
		}
		out = append(out, existing)
	}
	return out, nil
}

func newRoleServiceFixture() (RoleService, *fakeRoleStore) {
	courses := newFakeCourseStore()
	fixtureCourse(courses, "c1")
	store := &fakeRoleStore{}
	users := newFakeUserStore(
		&models.User{ID: 1, Username: "alice"},
		&models.User{ID: 2, Username: "bob"},
	)
	return NewRoleService(store, courses, users), store
}

func TestGrantRole(t *testing.T) {
	svc, store := newRoleServiceFixture()
	ctx := context.Background()

	if err := svc.GrantRole(ctx, "c1", &dto.GrantRoleRequest{UserID: 1, Role: "staff"}); err != nil {
		t.Fatalf("GrantRole returned error: %v", err)
	}
	// Granting a held role succeeds without a second row.
	if err := svc.GrantRole(ctx, "c1", &dto.GrantRoleRequest{UserID: 1, Role: "staff"}); err != nil {
		t.Fatalf("repeated GrantRole returned error: %v", err)
	}
	if len(store.assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(store.assignments))
	}

	if err := svc.GrantRole(ctx, "missing", &dto.GrantRoleRequest{UserID: 1, Role: "staff"}); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
	if err := svc.GrantRole(ctx, "c1", &dto.GrantRoleRequest{UserID: 1, Role: "admiral"}); !errors.Is(err, apperrors.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	// Granting to an unknown user is a bad request, not a missing resource.
	if err := svc.GrantRole(ctx, "c1", &dto.GrantRoleRequest{UserID: 99, Role: "staff"}); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestRevokeRole(t *testing.T) {
	svc, _ := newRoleServiceFixture()
	ctx := context.Background()

	if err := svc.GrantRole(ctx, "c1", &dto.GrantRoleRequest{UserID: 1, Role: "observer"}); err != nil {
		t.Fatalf("GrantRole returned error: %v", err)
	}
	if err := svc.RevokeRole(ctx, "c1", 1, "observer"); err != nil {
		t.Fatalf("RevokeRole returned error: %v", err)
	}
	// Unlike granting, revoking an absent assignment reports not found.
	if err := svc.RevokeRole(ctx, "c1", 1, "observer"); !errors.Is(err, apperrors.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
	// A role outside the known set addresses an assignment that cannot
	// exist, so revoking it is not found rather than invalid.
	if err := svc.RevokeRole(ctx, "c1", 1, "admiral"); !errors.Is(err, apperrors.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestListRoles(t *testing.T) {
	svc, _ := newRoleServiceFixture()
	ctx := context.Background()

	grants := []dto.GrantRoleRequest{
		{UserID: 1, Role: "staff"},
		{UserID: 1, Role: "observer"},
		{UserID: 2, Role: "staff"},
	}
	for _, grant := range grants {
		g := grant
		if err := svc.GrantRole(ctx, "c1", &g); err != nil {
			t.Fatalf("GrantRole returned error: %v", err)
		}
	}

	all, err := svc.ListRoles(ctx, "c1", 0, "")
	if err != nil {
		t.Fatalf("ListRoles returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(all))
	}

	staff, err := svc.ListRoles(ctx, "c1", 0, "staff")
	if err != nil {
		t.Fatalf("ListRoles returned error: %v", err)
	}
	if len(staff) != 2 {
		t.Fatalf("expected 2 staff assignments, got %d", len(staff))
	}

	mine, err := svc.ListRoles(ctx, "c1", 1, "")
	if err != nil {
		t.Fatalf("ListRoles returned error: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != 1 {
		t.Fatalf("unexpected user-filtered assignments %+v", mine)
	}

	if _, err := svc.ListRoles(ctx, "c1", 0, "admiral"); !errors.Is(err, apperrors.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

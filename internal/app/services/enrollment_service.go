package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/oguzk/courseapi/internal/app/models"
	"github.com/oguzk/courseapi/internal/app/models/dto"
	"github.com/oguzk/courseapi/internal/pkg/apperrors"
	"github.com/oguzk/courseapi/internal/pkg/helpers"
)

// enrollmentStore is the slice of the enrollment repository this
// package needs
type enrollmentStore interface {
	Enroll(ctx context.Context, enrollment *models.Enrollment) error
	Unenroll(ctx context.Context, courseID string, userID int64) error
	IsEnrolled(ctx context.Context, courseID string, userID int64) (bool, error)
	CountEnrolled(ctx context.Context, courseID string) (int64, error)
	GetEnrolledUsers(ctx context.Context, courseID string, groups, excludeGroups []int64) ([]*models.User, error)
	CreatePending(ctx context.Context, pending *models.PendingEnrollment) error
	GetPending(ctx context.Context, courseID string) ([]*models.PendingEnrollment, error)
}

// enrollmentUserStore resolves users during enrollment
type enrollmentUserStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// enrollmentRankStore supplies the completion rank shown on an
// enrollment detail
type enrollmentRankStore interface {
	UserCompletionCount(ctx context.Context, courseID string, contentIDs []string, userID int64) (int64, error)
	UsersAhead(ctx context.Context, courseID string, contentIDs []string, excludeUsers []int64, total int64) (int64, error)
}

// EnrollmentService manages course enrollments, pending invitations,
// and enrollment-derived metrics
type EnrollmentService interface {
	Enroll(ctx context.Context, courseID string, req *dto.EnrollUserRequest) error
	Unenroll(ctx context.Context, courseID string, userID int64) error
	ListEnrollments(ctx context.Context, base, courseID string, filter *dto.EnrollmentUserFilter) (*dto.EnrollmentListResponse, error)
	GetEnrollment(ctx context.Context, base, courseID string, userID int64) (*dto.EnrollmentDetailResponse, error)
	Metrics(ctx context.Context, courseID string) (*dto.CourseMetricsResponse, error)
}

type enrollmentService struct {
	enrollments enrollmentStore
	courses     courseStore
	users       enrollmentUserStore
	rank        enrollmentRankStore
	roles       observerStore
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(enrollments enrollmentStore, courses courseStore, users enrollmentUserStore, rank enrollmentRankStore, roles observerStore) EnrollmentService {
	return &enrollmentService{
		enrollments: enrollments,
		courses:     courses,
		users:       users,
		rank:        rank,
		roles:       roles,
	}
}

func (s *enrollmentService) requireCourse(ctx context.Context, courseID string) error {
	exists, err := s.courses.Exists(ctx, courseID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Enroll adds a user to a course. A user_id must match an account; an
// email falls back to a pending enrollment when allow_pending is set,
// to be claimed when the account registers.
func (s *enrollmentService) Enroll(ctx context.Context, courseID string, req *dto.EnrollUserRequest) error {
	if err := s.requireCourse(ctx, courseID); err != nil {
		return err
	}

	if req.UserID > 0 {
		exists, err := s.users.Exists(ctx, req.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrUserNotFound
		}
		return s.enrollments.Enroll(ctx, &models.Enrollment{
			CourseID: courseID,
			UserID:   req.UserID,
		})
	}

	if req.Email == "" {
		return apperrors.NewBadRequestError("user_id or email is required")
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err == nil {
		return s.enrollments.Enroll(ctx, &models.Enrollment{
			CourseID: courseID,
			UserID:   user.ID,
		})
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	if !req.AllowPending {
		return apperrors.ErrUserNotFound
	}

	return s.enrollments.CreatePending(ctx, &models.PendingEnrollment{
		CourseID:   courseID,
		Email:      req.Email,
		AutoEnroll: req.AutoEnroll,
	})
}

// Unenroll removes a user from a course; removing an absent enrollment
// succeeds
func (s *enrollmentService) Unenroll(ctx context.Context, courseID string, userID int64) error {
	if err := s.requireCourse(ctx, courseID); err != nil {
		return err
	}
	return s.enrollments.Unenroll(ctx, courseID, userID)
}

// ListEnrollments lists enrolled accounts and pending invitations of a
// course, optionally narrowed by group membership
func (s *enrollmentService) ListEnrollments(ctx context.Context, base, courseID string, filter *dto.EnrollmentUserFilter) (*dto.EnrollmentListResponse, error) {
	if err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}

	var groups, excludeGroups []int64
	if filter != nil {
		groups = filter.Groups
		excludeGroups = filter.ExcludeGroups
	}

	users, err := s.enrollments.GetEnrolledUsers(ctx, courseID, groups, excludeGroups)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollments: %w", err)
	}

	pending, err := s.enrollments.GetPending(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving pending enrollments: %w", err)
	}

	out := &dto.EnrollmentListResponse{
		URI:                helpers.CourseURI(base, courseID) + "/users",
		Enrollments:        make([]dto.EnrolledUser, 0, len(users)),
		PendingEnrollments: make([]dto.PendingEnrolledUser, 0, len(pending)),
	}
	for _, user := range users {
		out.Enrollments = append(out.Enrollments, dto.EnrolledUser{
			ID:       user.ID,
			Email:    user.Email,
			Username: user.Username,
		})
	}
	for _, invite := range pending {
		out.PendingEnrollments = append(out.PendingEnrollments, dto.PendingEnrolledUser{
			Email:      invite.Email,
			AutoEnroll: invite.AutoEnroll,
		})
	}

	return out, nil
}

// GetEnrollment returns one user's enrollment, with the user's rank by
// completion count among non-observer users
func (s *enrollmentService) GetEnrollment(ctx context.Context, base, courseID string, userID int64) (*dto.EnrollmentDetailResponse, error) {
	if err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}

	enrolled, err := s.enrollments.IsEnrolled(ctx, courseID, userID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, apperrors.ErrNotEnrolled
	}

	observers, err := s.roles.UsersWithRole(ctx, courseID, models.RoleObserver)
	if err != nil {
		return nil, fmt.Errorf("error resolving observers: %w", err)
	}

	completions, err := s.rank.UserCompletionCount(ctx, courseID, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("error counting user completions: %w", err)
	}
	ahead, err := s.rank.UsersAhead(ctx, courseID, nil, observers, completions)
	if err != nil {
		return nil, fmt.Errorf("error ranking user: %w", err)
	}

	return &dto.EnrollmentDetailResponse{
		CourseID: courseID,
		UserID:   userID,
		URI:      helpers.CourseURI(base, courseID) + fmt.Sprintf("/users/%d", userID),
		Position: int(ahead) + 1,
	}, nil
}

// Metrics reports enrollment figures for a course
func (s *enrollmentService) Metrics(ctx context.Context, courseID string) (*dto.CourseMetricsResponse, error) {
	if err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}

	enrolled, err := s.enrollments.CountEnrolled(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error counting enrollments: %w", err)
	}

	return &dto.CourseMetricsResponse{UsersEnrolled: enrolled}, nil
}

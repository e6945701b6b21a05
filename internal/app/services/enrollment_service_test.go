package services

import (
	"context"
	"errors"
	"testing"

	"github.com/oguzk/courseapi/internal/app/models"
	"github.com/oguzk/courseapi/internal/app/models/dto"
	"github.com/oguzk/courseapi/internal/pkg/apperrors"
)

// fakeEnrollmentStore keeps enrollments and pending invitations in
// memory
type fakeEnrollmentStore struct {
	enrolled map[string][]int64
	pending  map[string][]*models.PendingEnrollment
	users    map[int64]*models.User
}

func newFakeEnrollmentStore(users ...*models.User) *fakeEnrollmentStore {
	f := &fakeEnrollmentStore{
		enrolled: make(map[string][]int64),
		pending:  make(map[string][]*models.PendingEnrollment),
		users:    make(map[int64]*models.User),
	}
	for _, user := range users {
		f.users[user.ID] = user
	}
	return f
}

func (f *fakeEnrollmentStore) Enroll(_ context.Context, enrollment *models.Enrollment) error {
	for _, id := range f.enrolled[enrollment.CourseID] {
		if id == enrollment.UserID {
			return apperrors.ErrAlreadyEnrolled
		}
	}
	f.enrolled[enrollment.CourseID] = append(f.enrolled[enrollment.CourseID], enrollment.UserID)
	return nil
}

func (f *fakeEnrollmentStore) Unenroll(_ context.Context, courseID string, userID int64) error {
	kept := f.enrolled[courseID][:0]
	for _, id := range f.enrolled[courseID] {
		if id != userID {
			kept = append(kept, id)
		}
	}
	f.enrolled[courseID] = kept
	return nil
}

func (f *fakeEnrollmentStore) IsEnrolled(_ context.Context, courseID string, userID int64) (bool, error) {
	for _, id := range f.enrolled[courseID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEnrollmentStore) CountEnrolled(_ context.Context, courseID string) (int64, error) {
	return int64(len(f.enrolled[courseID])), nil
}

func (f *fakeEnrollmentStore) GetEnrolledUsers(_ context.Context, courseID string, _, _ []int64) ([]*models.User, error) {
	var out []*models.User
	for _, id := range f.enrolled[courseID] {
		if user, ok := f.users[id]; ok {
			out = append(out, user)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) CreatePending(_ context.Context, pending *models.PendingEnrollment) error {
	f.pending[pending.CourseID] = append(f.pending[pending.CourseID], pending)
	return nil
}

func (f *fakeEnrollmentStore) GetPending(_ context.Context, courseID string) ([]*models.PendingEnrollment, error) {
	return f.pending[courseID], nil
}

func (f *fakeEnrollmentStore) DeletePendingByEmail(_ context.Context, email string) ([]*models.PendingEnrollment, error) {
	var claimed []*models.PendingEnrollment
	for courseID, invites := range f.pending {
		kept := invites[:0]
		for _, invite := range invites {
			if invite.Email == email {
				claimed = append(claimed, invite)
			} else {
				kept = append(kept, invite)
			}
		}
		f.pending[courseID] = kept
	}
	return claimed, nil
}

func newEnrollmentServiceFixture() (EnrollmentService, *fakeEnrollmentStore, *fakeCompletionAggregates) {
	courses := newFakeCourseStore()
	fixtureCourse(courses, "c1")

	alice := &models.User{ID: 1, Username: "alice", Email: "alice@example.com"}
	bob := &models.User{ID: 2, Username: "bob", Email: "bob@example.com"}
	store := newFakeEnrollmentStore(alice, bob)
	users := newFakeUserStore(alice, bob)
	rank := &fakeCompletionAggregates{users: map[int64]string{1: "alice", 2: "bob"}}

	svc := NewEnrollmentService(store, courses, users, rank, &fakeObserverStore{})
	return svc, store, rank
}

func TestEnrollByUserID(t *testing.T) {
	svc, store, _ := newEnrollmentServiceFixture()
	ctx := context.Background()

	if err := svc.Enroll(ctx, "c1", &dto.EnrollUserRequest{UserID: 1}); err != nil {
		t.Fatalf("Enroll returned error: %v", err)
	}
	if len(store.enrolled["c1"]) != 1 {
		t.Fatalf("expected 1 enrollment, got %d", len(store.enrolled["c1"]))
	}

	if err := svc.Enroll(ctx, "c1", &dto.EnrollUserRequest{UserID: 1}); !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}
	if err := svc.Enroll(ctx, "c1", &dto.EnrollUserRequest{UserID: 99}); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := svc.Enroll(ctx, "missing", &dto.EnrollUserRequest{UserID: 1}); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
	if err := svc.Enroll(ctx, "c1", &dto.EnrollUserRequest{}); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("expected bad request for empty payload, got %v", err)
	}
}

func TestEnrollByEmail(t *testing.T) {
	svc, store, _ := newEnrollmentServiceFixture()
	ctx := context.Background()

	// A known email enrolls the matching account directly.
	if err := svc.Enroll(ctx, "c1", &dto.EnrollUserRequest{Email: "bob@example.com"}); err != nil {
		t.Fatalf("Enroll returned error: %v", err)
	}
	if len(store.enrolled["c1"]) != 1 || store.enrolled["c1"][0] != 2 {
		t.Fatalf("expected bob enrolled, got %v", store.enrolled["c1"])
	}

	// An unknown email without allow_pending is an error.
	err := svc.Enroll(ctx, "c1", &dto.EnrollUserRequest{Email: "new@example.com"})
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	// With allow_pending it parks an invitation instead.
	err = svc.Enroll(ctx, "c1", &dto.EnrollUserRequest{Email: "new@example.com", AllowPending: true, AutoEnroll: true})
	if err != nil {
		t.Fatalf("Enroll returned error: %v", err)
	}
	if len(store.pending["c1"]) != 1 || !store.pending["c1"][0].AutoEnroll {
		t.Fatalf("expected one auto-enroll invitation, got %+v", store.pending["c1"])
	}
}

func TestUnenrollIsIdempotent(t *testing.T) {
	svc, _, _ := newEnrollmentServiceFixture()
	ctx := context.Background()

	if err := svc.Enroll(ctx, "c1", &dto.EnrollUserRequest{UserID: 1}); err != nil {
		t.Fatalf("Enroll returned error: %v", err)
	}
	if err := svc.Unenroll(ctx, "c1", 1); err != nil {
		t.Fatalf("Unenroll returned error: %v", err)
	}
	if err := svc.Unenroll(ctx, "c1", 1); err != nil {
		t.Fatalf("second Unenroll returned error: %v", err)
	}
	if err := svc.Unenroll(ctx, "missing", 1); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestListEnrollments(t *testing.T) {
	svc, store, _ := newEnrollmentServiceFixture()
	ctx := context.Background()

	if err := svc.Enroll(ctx, "c1", &dto.EnrollUserRequest{UserID: 1}); err != nil {
		t.Fatalf("Enroll returned error: %v", err)
	}
	store.pending["c1"] = append(store.pending["c1"], &models.PendingEnrollment{
		CourseID: "c1", Email: "new@example.com", AutoEnroll: true,
	})

	list, err := svc.ListEnrollments(ctx, testBase, "c1", nil)
	if err != nil {
		t.Fatalf("ListEnrollments returned error: %v", err)
	}
	if list.URI != testBase+"/api/courses/c1/users" {
		t.Fatalf("unexpected listing URI %s", list.URI)
	}
	if len(list.Enrollments) != 1 || list.Enrollments[0].Username != "alice" {
		t.Fatalf("unexpected enrollments %+v", list.Enrollments)
	}
	if len(list.PendingEnrollments) != 1 || list.PendingEnrollments[0].Email != "new@example.com" {
		t.Fatalf("unexpected pending enrollments %+v", list.PendingEnrollments)
	}
}

func TestGetEnrollmentPosition(t *testing.T) {
	svc, _, rank := newEnrollmentServiceFixture()
	ctx := context.Background()

	if err := svc.Enroll(ctx, "c1", &dto.EnrollUserRequest{UserID: 1}); err != nil {
		t.Fatalf("Enroll returned error: %v", err)
	}
	if err := svc.Enroll(ctx, "c1", &dto.EnrollUserRequest{UserID: 2}); err != nil {
		t.Fatalf("Enroll returned error: %v", err)
	}

	// alice holds two completions, bob one.
	rank.records = []completionRecord{
		{userID: 1, contentID: "vert-1"},
		{userID: 1, contentID: "seq-2"},
		{userID: 2, contentID: "vert-1"},
	}

	detail, err := svc.GetEnrollment(ctx, testBase, "c1", 2)
	if err != nil {
		t.Fatalf("GetEnrollment returned error: %v", err)
	}
	if detail.Position != 2 {
		t.Fatalf("expected position 2, got %d", detail.Position)
	}
	if detail.URI != testBase+"/api/courses/c1/users/2" {
		t.Fatalf("unexpected enrollment URI %s", detail.URI)
	}

	_, err = svc.GetEnrollment(ctx, testBase, "c1", 99)
	if !errors.Is(err, apperrors.ErrNotEnrolled) {
		t.Fatalf("expected ErrNotEnrolled, got %v", err)
	}
}

func TestCourseMetrics(t *testing.T) {
	svc, _, _ := newEnrollmentServiceFixture()
	ctx := context.Background()

	if err := svc.Enroll(ctx, "c1", &dto.EnrollUserRequest{UserID: 1}); err != nil {
		t.Fatalf("Enroll returned error: %v", err)
	}
	if err := svc.Enroll(ctx, "c1", &dto.EnrollUserRequest{UserID: 2}); err != nil {
		t.Fatalf("Enroll returned error: %v", err)
	}

	metrics, err := svc.Metrics(ctx, "c1")
	if err != nil {
		t.Fatalf("Metrics returned error: %v", err)
	}
	if metrics.UsersEnrolled != 2 {
		t.Fatalf("expected 2 enrolled users, got %d", metrics.UsersEnrolled)
	}

	_, err = svc.Metrics(ctx, "missing")
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oguzk/courseapi/internal/app/models"
	"github.com/oguzk/courseapi/internal/app/models/dto"
	"github.com/oguzk/courseapi/internal/pkg/apperrors"
	"github.com/oguzk/courseapi/internal/pkg/auth"
)

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
}

func newAuthServiceFixture(throttle *LoginThrottle, users ...*models.User) (AuthService, *fakeUserStore, *fakeEnrollmentStore) {
	store := newFakeUserStore(users...)
	enrollments := newFakeEnrollmentStore()
	return NewAuthService(store, enrollments, testJWTService(), throttle), store, enrollments
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthServiceFixture(nil)
	ctx := context.Background()

	cases := []struct {
		name string
		req  dto.CreateUserRequest
		want error
	}{
		{"bad email", dto.CreateUserRequest{Email: "not-an-email", Username: "alice", Password: "Sup3r-secret"}, apperrors.ErrInvalidEmail},
		{"bad username", dto.CreateUserRequest{Email: "a@example.com", Username: "a!", Password: "Sup3r-secret"}, apperrors.ErrValidationFailed},
		{"weak password", dto.CreateUserRequest{Email: "a@example.com", Username: "alice", Password: "alllowercase"}, apperrors.ErrInvalidPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			if _, err := svc.Register(ctx, testBase, &req); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newAuthServiceFixture(nil)
	ctx := context.Background()

	user, err := svc.Register(ctx, testBase, &dto.CreateUserRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "Sup3r-secret",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 || !user.IsActive {
		t.Fatalf("unexpected account %+v", user)
	}
	if user.URI != testBase+"/api/users/1" {
		t.Fatalf("unexpected account URI %s", user.URI)
	}

	session, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "Sup3r-secret"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if session.Token == "" || session.ExpiresIn <= 0 {
		t.Fatalf("unexpected session %+v", session)
	}
	if session.User.Username != "alice" {
		t.Fatalf("unexpected session user %+v", session.User)
	}

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "wrong-password"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "Sup3r-secret"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestRegisterClaimsPendingEnrollments(t *testing.T) {
	svc, _, enrollments := newAuthServiceFixture(nil)
	ctx := context.Background()

	enrollments.pending["c1"] = []*models.PendingEnrollment{
		{CourseID: "c1", Email: "alice@example.com", AutoEnroll: true},
	}
	enrollments.pending["c2"] = []*models.PendingEnrollment{
		{CourseID: "c2", Email: "alice@example.com", AutoEnroll: false},
	}

	user, err := svc.Register(ctx, testBase, &dto.CreateUserRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "Sup3r-secret",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	// The auto-enroll invitation converts into an enrollment; the plain
	// invitation is consumed without enrolling.
	if len(enrollments.enrolled["c1"]) != 1 || enrollments.enrolled["c1"][0] != user.ID {
		t.Fatalf("expected auto-enroll conversion, got %v", enrollments.enrolled["c1"])
	}
	if len(enrollments.enrolled["c2"]) != 0 {
		t.Fatal("plain invitations must not auto-enroll")
	}
	if len(enrollments.pending["c1"]) != 0 || len(enrollments.pending["c2"]) != 0 {
		t.Fatal("expected invitations consumed on registration")
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	hashed, err := auth.HashPassword("Sup3r-secret")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	svc, _, _ := newAuthServiceFixture(nil, &models.User{
		ID: 1, Username: "alice", Email: "alice@example.com", Password: hashed, IsActive: false,
	})

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "Sup3r-secret"})
	if !errors.Is(err, apperrors.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestLoginThrottleLockout(t *testing.T) {
	hashed, err := auth.HashPassword("Sup3r-secret")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	throttle := NewLoginThrottle(2, time.Minute)
	svc, _, _ := newAuthServiceFixture(throttle, &models.User{
		ID: 1, Username: "alice", Email: "alice@example.com", Password: hashed, IsActive: true,
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "wrong"})
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	}

	// The third attempt is refused outright, correct password or not.
	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "Sup3r-secret"})
	if !errors.Is(err, apperrors.ErrLoginLocked) {
		t.Fatalf("expected ErrLoginLocked, got %v", err)
	}

	// Other usernames are unaffected.
	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "bob", Password: "wrong"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for other username, got %v", err)
	}
}

func TestLoginThrottleResetOnSuccess(t *testing.T) {
	hashed, err := auth.HashPassword("Sup3r-secret")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	throttle := NewLoginThrottle(2, time.Minute)
	svc, _, _ := newAuthServiceFixture(throttle, &models.User{
		ID: 1, Username: "alice", Email: "alice@example.com", Password: hashed, IsActive: true,
	})
	ctx := context.Background()

	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "wrong"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "Sup3r-secret"}); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	// The success cleared the slate: one more failure does not lock.
	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "wrong"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.Locked("alice") {
		t.Fatal("expected a single failure after reset, not a lockout")
	}
}

func TestLoginThrottleWindow(t *testing.T) {
	throttle := NewLoginThrottle(2, 10*time.Millisecond)

	throttle.RecordFailure("alice")
	throttle.RecordFailure("alice")
	if !throttle.Locked("alice") {
		t.Fatal("expected lockout at the limit")
	}

	time.Sleep(20 * time.Millisecond)
	if throttle.Locked("alice") {
		t.Fatal("expected failures to age out of the window")
	}
}

func TestLoginThrottleDisabled(t *testing.T) {
	throttle := NewLoginThrottle(0, time.Minute)

	for i := 0; i < 10; i++ {
		throttle.RecordFailure("alice")
	}
	if throttle.Locked("alice") {
		t.Fatal("a non-positive limit disables throttling")
	}
}

func TestGetUser(t *testing.T) {
	svc, _, _ := newAuthServiceFixture(nil, &models.User{
		ID: 1, Username: "alice", Email: "alice@example.com", IsActive: true,
	})
	ctx := context.Background()

	user, err := svc.GetUser(ctx, testBase, 1)
	if err != nil {
		t.Fatalf("GetUser returned error: %v", err)
	}
	if user.Username != "alice" || user.URI != testBase+"/api/users/1" {
		t.Fatalf("unexpected user %+v", user)
	}

	_, err = svc.GetUser(ctx, testBase, 99)
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

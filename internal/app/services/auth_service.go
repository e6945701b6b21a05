package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/oguzk/courseapi/internal/app/models"
	"github.com/oguzk/courseapi/internal/app/models/dto"
	"github.com/oguzk/courseapi/internal/pkg/apperrors"
	"github.com/oguzk/courseapi/internal/pkg/auth"
	"github.com/oguzk/courseapi/internal/pkg/helpers"
	"github.com/oguzk/courseapi/internal/pkg/validation"
)

// authUserStore is the slice of the user repository this package needs
type authUserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// pendingClaimStore claims pending enrollments when an account
// registers
type pendingClaimStore interface {
	Enroll(ctx context.Context, enrollment *models.Enrollment) error
	DeletePendingByEmail(ctx context.Context, email string) ([]*models.PendingEnrollment, error)
}

// AuthService registers accounts and issues session tokens
type AuthService interface {
	Register(ctx context.Context, base string, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	GetUser(ctx context.Context, base string, userID int64) (*dto.UserResponse, error)
}

// LoginThrottle caps failed login attempts per username within a
// sliding window
type LoginThrottle struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	failures map[string][]time.Time
}

// NewLoginThrottle creates a login throttle. A non-positive limit
// disables throttling.
func NewLoginThrottle(limit int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{
		limit:    limit,
		window:   window,
		failures: make(map[string][]time.Time),
	}
}

// Locked reports whether the username has exhausted its attempts
func (t *LoginThrottle) Locked(username string) bool {
	if t.limit <= 0 {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.prune(username)) >= t.limit
}

// RecordFailure registers a failed attempt for the username
func (t *LoginThrottle) RecordFailure(username string) {
	if t.limit <= 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.failures[username] = append(t.prune(username), time.Now())
}

// Reset clears the failure history of the username
func (t *LoginThrottle) Reset(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.failures, username)
}

// prune drops failures older than the window; callers hold the lock
func (t *LoginThrottle) prune(username string) []time.Time {
	cutoff := time.Now().Add(-t.window)
	kept := t.failures[username][:0]
	for _, at := range t.failures[username] {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	if len(kept) == 0 {
		delete(t.failures, username)
		return nil
	}
	t.failures[username] = kept
	return kept
}

type authService struct {
	users       authUserStore
	enrollments pendingClaimStore
	jwtService  *auth.JWTService
	throttle    *LoginThrottle
}

// NewAuthService creates a new auth service
func NewAuthService(users authUserStore, enrollments pendingClaimStore, jwtService *auth.JWTService, throttle *LoginThrottle) AuthService {
	return &authService{
		users:       users,
		enrollments: enrollments,
		jwtService:  jwtService,
		throttle:    throttle,
	}
}

func serializeUser(base string, user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Title:     user.Title,
		City:      user.City,
		IsActive:  user.IsActive,
		URI:       helpers.UserURI(base, user.ID),
	}
}

// Register creates an account and converts any pending enrollments
// held for its email address
func (s *authService) Register(ctx context.Context, base string, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !validation.ValidEmail(req.Email) {
		return nil, apperrors.ErrInvalidEmail
	}
	if !validation.ValidUsername(req.Username) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "username must be 3-30 characters of letters, digits, _ or -")
	}
	if issue := validation.CheckPassword(req.Password); issue != validation.PasswordOK {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidPassword, string(issue))
	}
	if !validation.ValidName(req.FirstName) || !validation.ValidName(req.LastName) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "names must be 2-100 characters")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Title:     req.Title,
		City:      req.City,
		IsActive:  true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.claimPendingEnrollments(ctx, user)

	out := serializeUser(base, user)
	return &out, nil
}

// claimPendingEnrollments converts the auto-enroll invitations held for
// a new account. A failed conversion is logged, not surfaced; the
// account itself already exists.
func (s *authService) claimPendingEnrollments(ctx context.Context, user *models.User) {
	pending, err := s.enrollments.DeletePendingByEmail(ctx, user.Email)
	if err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("Failed to claim pending enrollments")
		return
	}

	for _, invite := range pending {
		if !invite.AutoEnroll {
			continue
		}
		err := s.enrollments.Enroll(ctx, &models.Enrollment{
			CourseID: invite.CourseID,
			UserID:   user.ID,
		})
		if err != nil && !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
			log.Error().Err(err).
				Str("course_id", invite.CourseID).
				Int64("user_id", user.ID).
				Msg("Failed to convert pending enrollment")
		}
	}
}

// Login verifies credentials and issues a session token. Repeated
// failures lock the username out for the configured window.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.throttle != nil && s.throttle.Locked(req.Username) {
		return nil, apperrors.ErrLoginLocked
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			if s.throttle != nil {
				s.throttle.RecordFailure(req.Username)
			}
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		if s.throttle != nil {
			s.throttle.RecordFailure(req.Username)
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	if s.throttle != nil {
		s.throttle.Reset(req.Username)
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Username)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		User:      serializeUser("", user),
	}, nil
}

// GetUser retrieves one account
func (s *authService) GetUser(ctx context.Context, base string, userID int64) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := serializeUser(base, user)
	return &out, nil
}

package services

import (
	"time"

	"github.com/oguzk/courseapi/internal/app/repositories"
	"github.com/oguzk/courseapi/internal/pkg/auth"
)

// Services aggregates all business services
type Services struct {
	CourseService      CourseService
	GroupService       GroupService
	CompletionService  CompletionService
	LeaderboardService LeaderboardService
	EnrollmentService  EnrollmentService
	RoleService        RoleService
	AuthService        AuthService
}

// NewServices wires the services onto the repository layer
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, loginLimit int, loginWindow time.Duration) *Services {
	throttle := NewLoginThrottle(loginLimit, loginWindow)

	return &Services{
		CourseService:      NewCourseService(repos.CourseRepository),
		GroupService:       NewGroupService(repos.GroupRepository, repos.CourseRepository, repos.UserRepository),
		CompletionService:  NewCompletionService(repos.CompletionRepository, repos.CourseRepository, repos.UserRepository),
		LeaderboardService: NewLeaderboardService(repos.GradeRepository, repos.CompletionRepository, repos.RoleRepository, repos.CourseRepository),
		EnrollmentService:  NewEnrollmentService(repos.EnrollmentRepository, repos.CourseRepository, repos.UserRepository, repos.CompletionRepository, repos.RoleRepository),
		RoleService:        NewRoleService(repos.RoleRepository, repos.CourseRepository, repos.UserRepository),
		AuthService:        NewAuthService(repos.UserRepository, repos.EnrollmentRepository, jwtService, throttle),
	}
}

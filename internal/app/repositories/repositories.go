package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories is a container for all repository instances
type Repositories struct {
	CourseRepository     *CourseRepository
	GroupRepository      *GroupRepository
	CompletionRepository *CompletionRepository
	EnrollmentRepository *EnrollmentRepository
	GradeRepository      *GradeRepository
	RoleRepository       *RoleRepository
	UserRepository       *UserRepository
}

// NewRepositories creates a new Repositories container
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CourseRepository:     NewCourseRepository(db),
		GroupRepository:      NewGroupRepository(db),
		CompletionRepository: NewCompletionRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		GradeRepository:      NewGradeRepository(db),
		RoleRepository:       NewRoleRepository(db),
		UserRepository:       NewUserRepository(db),
	}
}

package services

import (
	"context"
	"fmt"
	"math"

	"github.com/oguzk/courseapi/internal/app/models"
	"github.com/oguzk/courseapi/internal/app/models/dto"
	"github.com/oguzk/courseapi/internal/app/repositories"
	"github.com/oguzk/courseapi/internal/pkg/apperrors"
)

// gradeStore is the slice of the grade repository this package needs
type gradeStore interface {
	List(ctx context.Context, courseID string, contentIDs []string, userID int64) ([]*repositories.GradeRow, error)
	Totals(ctx context.Context, courseID string, contentIDs []string, userID int64) (scored, possible float64, users int64, err error)
	AggregateTotals(ctx context.Context, courseID string, contentIDs []string, excludeUsers []int64) (total float64, users int64, err error)
	TopLeaders(ctx context.Context, courseID string, contentIDs []string, excludeUsers []int64, count int) ([]*repositories.ProficiencyLeaderRow, error)
	UserPoints(ctx context.Context, courseID string, contentIDs []string, userID int64) (float64, error)
	UsersAhead(ctx context.Context, courseID string, contentIDs []string, excludeUsers []int64, points float64) (int64, error)
}

// completionAggregateStore is the aggregate slice of the completion
// repository used for leaderboards
type completionAggregateStore interface {
	AggregateTotals(ctx context.Context, courseID string, contentIDs []string, excludeUsers []int64) (total int64, users int64, err error)
	TopLeaders(ctx context.Context, courseID string, contentIDs []string, excludeUsers []int64, count int) ([]*repositories.CompletionLeaderRow, error)
	UserCompletionCount(ctx context.Context, courseID string, contentIDs []string, userID int64) (int64, error)
	UsersAhead(ctx context.Context, courseID string, contentIDs []string, excludeUsers []int64, total int64) (int64, error)
}

// observerStore resolves which users are excluded from social metrics
type observerStore interface {
	UsersWithRole(ctx context.Context, courseID string, role models.CourseRole) ([]int64, error)
}

// LeaderboardService ranks course users by grade points and by
// completion counts, and rolls up raw grades
type LeaderboardService interface {
	ProficiencyLeaderboard(ctx context.Context, courseID, contentID string, userID int64, count int) (*dto.ProficiencyLeaderboardResponse, error)
	CompletionLeaderboard(ctx context.Context, courseID, contentID string, userID int64, count int) (*dto.CompletionLeaderboardResponse, error)
	Grades(ctx context.Context, courseID, contentID string, userID int64) (*dto.GradesResponse, error)
}

type leaderboardService struct {
	grades      gradeStore
	completions completionAggregateStore
	roles       observerStore
	courses     courseStore
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(grades gradeStore, completions completionAggregateStore, roles observerStore, courses courseStore) LeaderboardService {
	return &leaderboardService{
		grades:      grades,
		completions: completions,
		roles:       roles,
		courses:     courses,
	}
}

// roundAvg rounds half away from zero to one decimal place
func roundAvg(value float64) float64 {
	return math.Round(value*10) / 10
}

// scopeContentIDs resolves the optional content_id filter to the IDs of
// the node and its descendants. An empty return means the whole course.
func (s *leaderboardService) scopeContentIDs(ctx context.Context, courseID, contentID string) ([]string, error) {
	exists, err := s.courses.Exists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrCourseNotFound
	}

	if contentID == "" {
		return nil, nil
	}

	tree, err := loadTree(ctx, s.courses, courseID)
	if err != nil {
		return nil, err
	}

	node, ok := tree.Node(contentID)
	if !ok {
		return nil, apperrors.ErrContentNotFound
	}

	descendants, _ := tree.Descendants(contentID)
	ids := make([]string, 0, len(descendants)+1)
	ids = append(ids, node.ID())
	for _, descendant := range descendants {
		ids = append(ids, descendant.ID())
	}

	return ids, nil
}

// ProficiencyLeaderboard ranks users by summed grade points. Observers
// never appear and never count toward the course average. When userID
// is set the response carries that user's points and rank; ties rank
// the earlier account first.
func (s *leaderboardService) ProficiencyLeaderboard(ctx context.Context, courseID, contentID string, userID int64, count int) (*dto.ProficiencyLeaderboardResponse, error) {
	contentIDs, err := s.scopeContentIDs(ctx, courseID, contentID)
	if err != nil {
		return nil, err
	}

	observers, err := s.roles.UsersWithRole(ctx, courseID, models.RoleObserver)
	if err != nil {
		return nil, fmt.Errorf("error resolving observers: %w", err)
	}

	total, users, err := s.grades.AggregateTotals(ctx, courseID, contentIDs, observers)
	if err != nil {
		return nil, fmt.Errorf("error aggregating grades: %w", err)
	}

	out := &dto.ProficiencyLeaderboardResponse{
		Leaders: []dto.ProficiencyLeader{},
	}
	if users > 0 {
		out.CourseAvg = roundAvg(total / float64(users))
	}

	leaders, err := s.grades.TopLeaders(ctx, courseID, contentIDs, observers, count)
	if err != nil {
		return nil, fmt.Errorf("error retrieving leaders: %w", err)
	}
	for _, leader := range leaders {
		out.Leaders = append(out.Leaders, dto.ProficiencyLeader{
			ID:        leader.UserID,
			Username:  leader.Username,
			Title:     leader.Title,
			AvatarURL: leader.AvatarURL,
			Points:    leader.Points,
		})
	}

	if userID > 0 {
		points, err := s.grades.UserPoints(ctx, courseID, contentIDs, userID)
		if err != nil {
			return nil, fmt.Errorf("error retrieving user points: %w", err)
		}
		ahead, err := s.grades.UsersAhead(ctx, courseID, contentIDs, observers, points)
		if err != nil {
			return nil, fmt.Errorf("error ranking user: %w", err)
		}
		position := int(ahead) + 1
		out.Position = &position
		out.Points = &points
	}

	return out, nil
}

// CompletionLeaderboard ranks users by completion count with the same
// observer exclusion and ranking rules as the proficiency board
func (s *leaderboardService) CompletionLeaderboard(ctx context.Context, courseID, contentID string, userID int64, count int) (*dto.CompletionLeaderboardResponse, error) {
	contentIDs, err := s.scopeContentIDs(ctx, courseID, contentID)
	if err != nil {
		return nil, err
	}

	observers, err := s.roles.UsersWithRole(ctx, courseID, models.RoleObserver)
	if err != nil {
		return nil, fmt.Errorf("error resolving observers: %w", err)
	}

	total, users, err := s.completions.AggregateTotals(ctx, courseID, contentIDs, observers)
	if err != nil {
		return nil, fmt.Errorf("error aggregating completions: %w", err)
	}

	out := &dto.CompletionLeaderboardResponse{
		Leaders: []dto.CompletionLeader{},
	}
	if users > 0 {
		out.CourseAvg = roundAvg(float64(total) / float64(users))
	}

	leaders, err := s.completions.TopLeaders(ctx, courseID, contentIDs, observers, count)
	if err != nil {
		return nil, fmt.Errorf("error retrieving leaders: %w", err)
	}
	for _, leader := range leaders {
		out.Leaders = append(out.Leaders, dto.CompletionLeader{
			ID:          leader.UserID,
			Username:    leader.Username,
			Title:       leader.Title,
			AvatarURL:   leader.AvatarURL,
			Completions: leader.Completions,
		})
	}

	if userID > 0 {
		completions, err := s.completions.UserCompletionCount(ctx, courseID, contentIDs, userID)
		if err != nil {
			return nil, fmt.Errorf("error counting user completions: %w", err)
		}
		ahead, err := s.completions.UsersAhead(ctx, courseID, contentIDs, observers, completions)
		if err != nil {
			return nil, fmt.Errorf("error ranking user: %w", err)
		}
		position := int(ahead) + 1
		out.Position = &position
		out.Completions = &completions
	}

	return out, nil
}

// Grades rolls up gradeable activity for a course. The user-scoped
// figures narrow to userID when set; the course_* figures always cover
// every graded user.
func (s *leaderboardService) Grades(ctx context.Context, courseID, contentID string, userID int64) (*dto.GradesResponse, error) {
	contentIDs, err := s.scopeContentIDs(ctx, courseID, contentID)
	if err != nil {
		return nil, err
	}

	scored, possible, users, err := s.grades.Totals(ctx, courseID, contentIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("error aggregating grades: %w", err)
	}

	courseScored, coursePossible, courseUsers, err := s.grades.Totals(ctx, courseID, contentIDs, 0)
	if err != nil {
		return nil, fmt.Errorf("error aggregating course grades: %w", err)
	}

	rows, err := s.grades.List(ctx, courseID, contentIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving grades: %w", err)
	}

	out := &dto.GradesResponse{
		PointsScored:         scored,
		PointsPossible:       possible,
		CoursePointsScored:   courseScored,
		CoursePointsPossible: coursePossible,
		Grades:               make([]dto.GradeEntry, 0, len(rows)),
	}
	if users > 0 {
		out.AverageGrade = roundAvg(scored / float64(users))
	}
	if courseUsers > 0 {
		out.CourseAverageGrade = roundAvg(courseScored / float64(courseUsers))
	}

	for _, row := range rows {
		out.Grades = append(out.Grades, dto.GradeEntry{
			UserID:    row.UserID,
			ContentID: row.ContentID,
			Grade:     row.Grade,
			MaxGrade:  row.MaxGrade,
		})
	}

	return out, nil
}

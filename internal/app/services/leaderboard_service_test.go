package services

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/oguzk/courseapi/internal/app/models"
	"github.com/oguzk/courseapi/internal/app/repositories"
	"github.com/oguzk/courseapi/internal/pkg/apperrors"
)

type gradeRecord struct {
	userID    int64
	contentID string
	grade     float64
	maxGrade  float64
}

// fakeGradeStore aggregates grade records in memory the way the SQL
// queries do
type fakeGradeStore struct {
	records []gradeRecord
	users   map[int64]string
}

func (f *fakeGradeStore) inScope(record gradeRecord, contentIDs []string) bool {
	if len(contentIDs) == 0 {
		return true
	}
	for _, id := range contentIDs {
		if record.contentID == id {
			return true
		}
	}
	return false
}

func excluded(userID int64, excludeUsers []int64) bool {
	for _, id := range excludeUsers {
		if id == userID {
			return true
		}
	}
	return false
}

func (f *fakeGradeStore) pointsByUser(contentIDs []string, excludeUsers []int64) map[int64]float64 {
	points := make(map[int64]float64)
	for _, record := range f.records {
		if !f.inScope(record, contentIDs) || excluded(record.userID, excludeUsers) {
			continue
		}
		points[record.userID] += record.grade
	}
	return points
}

func (f *fakeGradeStore) List(_ context.Context, _ string, contentIDs []string, userID int64) ([]*repositories.GradeRow, error) {
	var out []*repositories.GradeRow
	for _, record := range f.records {
		if !f.inScope(record, contentIDs) {
			continue
		}
		if userID > 0 && record.userID != userID {
			continue
		}
		out = append(out, &repositories.GradeRow{
			UserID:    record.userID,
			ContentID: record.contentID,
			Grade:     record.grade,
			MaxGrade:  record.maxGrade,
		})
	}
	return out, nil
}

func (f *fakeGradeStore) Totals(_ context.Context, _ string, contentIDs []string, userID int64) (float64, float64, int64, error) {
	var scored, possible float64
	users := make(map[int64]bool)
	for _, record := range f.records {
		if !f.inScope(record, contentIDs) {
			continue
		}
		if userID > 0 && record.userID != userID {
			continue
		}
		scored += record.grade
		possible += record.maxGrade
		users[record.userID] = true
	}
	return scored, possible, int64(len(users)), nil
}

func (f *fakeGradeStore) AggregateTotals(_ context.Context, _ string, contentIDs []string, excludeUsers []int64) (float64, int64, error) {
	points := f.pointsByUser(contentIDs, excludeUsers)
	var total float64
	for _, p := range points {
		total += p
	}
	return total, int64(len(points)), nil
}

func (f *fakeGradeStore) TopLeaders(_ context.Context, _ string, contentIDs []string, excludeUsers []int64, count int) ([]*repositories.ProficiencyLeaderRow, error) {
	points := f.pointsByUser(contentIDs, excludeUsers)
	var leaders []*repositories.ProficiencyLeaderRow
	for userID, p := range points {
		leaders = append(leaders, &repositories.ProficiencyLeaderRow{
			UserID:   userID,
			Username: f.users[userID],
			Points:   p,
		})
	}
	sort.Slice(leaders, func(i, j int) bool {
		if leaders[i].Points != leaders[j].Points {
			return leaders[i].Points > leaders[j].Points
		}
		return leaders[i].UserID < leaders[j].UserID
	})
	if len(leaders) > count {
		leaders = leaders[:count]
	}
	return leaders, nil
}

func (f *fakeGradeStore) UserPoints(_ context.Context, _ string, contentIDs []string, userID int64) (float64, error) {
	return f.pointsByUser(contentIDs, nil)[userID], nil
}

func (f *fakeGradeStore) UsersAhead(_ context.Context, _ string, contentIDs []string, excludeUsers []int64, points float64) (int64, error) {
	var ahead int64
	for _, p := range f.pointsByUser(contentIDs, excludeUsers) {
		if p > points {
			ahead++
		}
	}
	return ahead, nil
}

type completionRecord struct {
	userID    int64
	contentID string
}

// fakeCompletionAggregates mirrors the completion repository's
// leaderboard queries over in-memory records
type fakeCompletionAggregates struct {
	records []completionRecord
	users   map[int64]string
}

func (f *fakeCompletionAggregates) countsByUser(contentIDs []string, excludeUsers []int64) map[int64]int64 {
	counts := make(map[int64]int64)
	for _, record := range f.records {
		if excluded(record.userID, excludeUsers) {
			continue
		}
		if len(contentIDs) > 0 {
			found := false
			for _, id := range contentIDs {
				if record.contentID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		counts[record.userID]++
	}
	return counts
}

func (f *fakeCompletionAggregates) AggregateTotals(_ context.Context, _ string, contentIDs []string, excludeUsers []int64) (int64, int64, error) {
	counts := f.countsByUser(contentIDs, excludeUsers)
	var total int64
	for _, c := range counts {
		total += c
	}
	return total, int64(len(counts)), nil
}

func (f *fakeCompletionAggregates) TopLeaders(_ context.Context, _ string, contentIDs []string, excludeUsers []int64, count int) ([]*repositories.CompletionLeaderRow, error) {
	counts := f.countsByUser(contentIDs, excludeUsers)
	var leaders []*repositories.CompletionLeaderRow
	for userID, c := range counts {
		leaders = append(leaders, &repositories.CompletionLeaderRow{
			UserID:      userID,
			Username:    f.users[userID],
			Completions: c,
		})
	}
	sort.Slice(leaders, func(i, j int) bool {
		if leaders[i].Completions != leaders[j].Completions {
			return leaders[i].Completions > leaders[j].Completions
		}
		return leaders[i].UserID < leaders[j].UserID
	})
	if len(leaders) > count {
		leaders = leaders[:count]
	}
	return leaders, nil
}

func (f *fakeCompletionAggregates) UserCompletionCount(_ context.Context, _ string, contentIDs []string, userID int64) (int64, error) {
	return f.countsByUser(contentIDs, nil)[userID], nil
}

func (f *fakeCompletionAggregates) UsersAhead(_ context.Context, _ string, contentIDs []string, excludeUsers []int64, total int64) (int64, error) {
	var ahead int64
	for _, c := range f.countsByUser(contentIDs, excludeUsers) {
		if c > total {
			ahead++
		}
	}
	return ahead, nil
}

// fakeObserverStore returns a fixed observer set
type fakeObserverStore struct {
	observers []int64
}

func (f *fakeObserverStore) UsersWithRole(_ context.Context, _ string, role models.CourseRole) ([]int64, error) {
	if role != models.RoleObserver {
		return nil, nil
	}
	return f.observers, nil
}

func TestRoundAvg(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{3.44, 3.4},
		{3.45, 3.5},
		{6.25, 6.3},
		{-1.25, -1.3},
		{0, 0},
	}
	for _, tc := range cases {
		if got := roundAvg(tc.in); got != tc.want {
			t.Errorf("roundAvg(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func newLeaderboardFixture(observers ...int64) (LeaderboardService, *fakeGradeStore, *fakeCompletionAggregates) {
	courses := newFakeCourseStore()
	fixtureCourse(courses, "c1")

	names := map[int64]string{1: "alice", 2: "bob", 3: "carol", 4: "dana"}
	grades := &fakeGradeStore{
		users: names,
		// Grades picked to stay exact in binary floating point.
		records: []gradeRecord{
			{userID: 1, contentID: "vert-1", grade: 0.75, maxGrade: 1},
			{userID: 1, contentID: "seq-2", grade: 0.75, maxGrade: 1},
			{userID: 2, contentID: "vert-1", grade: 0.5, maxGrade: 1},
			{userID: 3, contentID: "vert-1", grade: 0.75, maxGrade: 1},
		},
	}
	completions := &fakeCompletionAggregates{
		users: names,
		records: []completionRecord{
			{userID: 1, contentID: "vert-1"},
			{userID: 1, contentID: "seq-2"},
			{userID: 2, contentID: "vert-1"},
		},
	}

	roles := &fakeObserverStore{observers: observers}
	return NewLeaderboardService(grades, completions, roles, courses), grades, completions
}

func TestProficiencyLeaderboard(t *testing.T) {
	svc, _, _ := newLeaderboardFixture()

	board, err := svc.ProficiencyLeaderboard(context.Background(), "c1", "", 0, 3)
	if err != nil {
		t.Fatalf("ProficiencyLeaderboard returned error: %v", err)
	}

	// (1.5 + 0.5 + 0.75) / 3 = 0.9166 -> 0.9
	if board.CourseAvg != 0.9 {
		t.Fatalf("expected course_avg 0.9, got %v", board.CourseAvg)
	}
	if len(board.Leaders) != 3 {
		t.Fatalf("expected 3 leaders, got %d", len(board.Leaders))
	}
	if board.Leaders[0].Username != "alice" || board.Leaders[0].Points != 1.5 {
		t.Fatalf("unexpected top leader %+v", board.Leaders[0])
	}
	if board.Leaders[1].Username != "carol" {
		t.Fatalf("expected carol second, got %s", board.Leaders[1].Username)
	}
	if board.Position != nil || board.Points != nil {
		t.Fatal("position and points belong to user-scoped requests only")
	}
}

func TestProficiencyLeaderboardUserRank(t *testing.T) {
	svc, _, _ := newLeaderboardFixture()

	board, err := svc.ProficiencyLeaderboard(context.Background(), "c1", "", 2, 3)
	if err != nil {
		t.Fatalf("ProficiencyLeaderboard returned error: %v", err)
	}

	if board.Points == nil || *board.Points != 0.5 {
		t.Fatalf("expected points 0.5, got %v", board.Points)
	}
	// alice and carol are strictly ahead of bob.
	if board.Position == nil || *board.Position != 3 {
		t.Fatalf("expected position 3, got %v", board.Position)
	}
}

func TestProficiencyLeaderboardExcludesObservers(t *testing.T) {
	svc, _, _ := newLeaderboardFixture(1)

	board, err := svc.ProficiencyLeaderboard(context.Background(), "c1", "", 0, 3)
	if err != nil {
		t.Fatalf("ProficiencyLeaderboard returned error: %v", err)
	}

	// Without alice: (0.5 + 0.75) / 2 = 0.625 -> 0.6
	if board.CourseAvg != 0.6 {
		t.Fatalf("expected course_avg 0.6, got %v", board.CourseAvg)
	}
	for _, leader := range board.Leaders {
		if leader.Username == "alice" {
			t.Fatal("observer must not appear on the board")
		}
	}
}

func TestProficiencyLeaderboardContentScope(t *testing.T) {
	svc, _, _ := newLeaderboardFixture()
	ctx := context.Background()

	// Scoping to chapter-1 covers seq-1, seq-2, vert-1.
	board, err := svc.ProficiencyLeaderboard(ctx, "c1", "chapter-1", 0, 3)
	if err != nil {
		t.Fatalf("ProficiencyLeaderboard returned error: %v", err)
	}
	if board.Leaders[0].Points != 1.5 {
		t.Fatalf("expected scoped points 1.5, got %v", board.Leaders[0].Points)
	}

	// Scoping to seq-2 drops the vert-1 grades.
	board, err = svc.ProficiencyLeaderboard(ctx, "c1", "seq-2", 0, 3)
	if err != nil {
		t.Fatalf("ProficiencyLeaderboard returned error: %v", err)
	}
	if len(board.Leaders) != 1 || board.Leaders[0].Points != 0.75 {
		t.Fatalf("unexpected scoped leaders %+v", board.Leaders)
	}

	_, err = svc.ProficiencyLeaderboard(ctx, "c1", "bogus", 0, 3)
	if !errors.Is(err, apperrors.ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
	_, err = svc.ProficiencyLeaderboard(ctx, "missing", "", 0, 3)
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestProficiencyLeaderboardEmptyCourse(t *testing.T) {
	courses := newFakeCourseStore()
	fixtureCourse(courses, "c1")
	svc := NewLeaderboardService(
		&fakeGradeStore{users: map[int64]string{}},
		&fakeCompletionAggregates{users: map[int64]string{}},
		&fakeObserverStore{},
		courses,
	)

	board, err := svc.ProficiencyLeaderboard(context.Background(), "c1", "", 5, 3)
	if err != nil {
		t.Fatalf("ProficiencyLeaderboard returned error: %v", err)
	}
	if board.CourseAvg != 0 {
		t.Fatalf("expected course_avg 0 without activity, got %v", board.CourseAvg)
	}
	if board.Leaders == nil || len(board.Leaders) != 0 {
		t.Fatal("expected an empty leaders array, not a missing one")
	}
	// A user with no activity still ranks first: nobody is ahead.
	if board.Position == nil || *board.Position != 1 {
		t.Fatalf("expected position 1, got %v", board.Position)
	}
}

func TestCompletionLeaderboard(t *testing.T) {
	svc, _, _ := newLeaderboardFixture()

	board, err := svc.CompletionLeaderboard(context.Background(), "c1", "", 2, 3)
	if err != nil {
		t.Fatalf("CompletionLeaderboard returned error: %v", err)
	}

	// (2 + 1) / 2 users = 1.5
	if board.CourseAvg != 1.5 {
		t.Fatalf("expected course_avg 1.5, got %v", board.CourseAvg)
	}
	if len(board.Leaders) != 2 || board.Leaders[0].Username != "alice" || board.Leaders[0].Completions != 2 {
		t.Fatalf("unexpected leaders %+v", board.Leaders)
	}
	if board.Completions == nil || *board.Completions != 1 {
		t.Fatalf("expected user completions 1, got %v", board.Completions)
	}
	if board.Position == nil || *board.Position != 2 {
		t.Fatalf("expected position 2, got %v", board.Position)
	}
}

func TestCompletionLeaderboardExcludesObservers(t *testing.T) {
	svc, _, _ := newLeaderboardFixture(1)

	board, err := svc.CompletionLeaderboard(context.Background(), "c1", "", 0, 3)
	if err != nil {
		t.Fatalf("CompletionLeaderboard returned error: %v", err)
	}
	if board.CourseAvg != 1.0 {
		t.Fatalf("expected course_avg 1.0 without the observer, got %v", board.CourseAvg)
	}
	if len(board.Leaders) != 1 || board.Leaders[0].Username != "bob" {
		t.Fatalf("unexpected leaders %+v", board.Leaders)
	}
}

func TestGradesRollup(t *testing.T) {
	svc, _, _ := newLeaderboardFixture()

	grades, err := svc.Grades(context.Background(), "c1", "", 2)
	if err != nil {
		t.Fatalf("Grades returned error: %v", err)
	}

	if grades.PointsScored != 0.5 || grades.PointsPossible != 1 {
		t.Fatalf("unexpected user figures %+v", grades)
	}
	if grades.AverageGrade != 0.5 {
		t.Fatalf("expected average_grade 0.5, got %v", grades.AverageGrade)
	}

	// Course figures cover every graded user: 2.75 points over 4 rows.
	if grades.CoursePointsScored != 2.75 || grades.CoursePointsPossible != 4 {
		t.Fatalf("unexpected course figures %+v", grades)
	}
	// 2.75 / 3 users = 0.9166 -> 0.9
	if grades.CourseAverageGrade != 0.9 {
		t.Fatalf("expected course_average_grade 0.9, got %v", grades.CourseAverageGrade)
	}

	if len(grades.Grades) != 1 || grades.Grades[0].UserID != 2 || grades.Grades[0].Grade != 0.5 {
		t.Fatalf("unexpected grade rows %+v", grades.Grades)
	}
}

package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GradeRepository handles database operations for the grade ledger the
// external courseware writes. All access is read-only aggregation.
type GradeRepository struct {
	db *pgxpool.Pool
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{
		db: db,
	}
}

// GradeRow is the scan target for raw grade listings
type GradeRow struct {
	UserID    int64
	ContentID string
	Grade     float64
	MaxGrade  float64
}

// ProficiencyLeaderRow is the scan target for grade leaderboard rows
type ProficiencyLeaderRow struct {
	UserID    int64
	Username  string
	Title     string
	AvatarURL string
	Points    float64
}

// gradeScope restricts rows to scorable grades of one course,
// optionally narrowed to a content id set
const gradeScope = `
	sg.course_id = $1
	AND (cardinality($2::text[]) = 0 OR sg.content_id = ANY($2))
	AND sg.max_grade > 0
`

// List returns the raw grade rows of a course, optionally narrowed to
// one user and a content id set
func (r *GradeRepository) List(ctx context.Context, courseID string, contentIDs []string, userID int64) ([]*GradeRow, error) {
	if contentIDs == nil {
		contentIDs = []string{}
	}

	query := `
		SELECT sg.user_id, sg.content_id, sg.grade, sg.max_grade
		FROM student_grades sg
		WHERE ` + gradeScope + `
		  AND ($3 = 0 OR sg.user_id = $3)
		ORDER BY sg.id
	`

	rows, err := r.db.Query(ctx, query, courseID, contentIDs, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []*GradeRow
	for rows.Next() {
		var grade GradeRow
		if err := rows.Scan(&grade.UserID, &grade.ContentID, &grade.Grade, &grade.MaxGrade); err != nil {
			return nil, err
		}
		grades = append(grades, &grade)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return grades, nil
}

// Totals returns the summed points, summed maximum points and distinct
// graded users of a course, optionally narrowed to one user
func (r *GradeRepository) Totals(ctx context.Context, courseID string, contentIDs []string, userID int64) (scored, possible float64, users int64, err error) {
	if contentIDs == nil {
		contentIDs = []string{}
	}

	query := `
		SELECT COALESCE(SUM(sg.grade), 0), COALESCE(SUM(sg.max_grade), 0), COUNT(DISTINCT sg.user_id)
		FROM student_grades sg
		WHERE ` + gradeScope + `
		  AND ($3 = 0 OR sg.user_id = $3)
	`

	err = r.db.QueryRow(ctx, query, courseID, contentIDs, userID).Scan(&scored, &possible, &users)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("error aggregating grades: %w", err)
	}

	return scored, possible, users, nil
}

// AggregateTotals returns the total points and distinct graded users of
// a course, skipping excluded users and inactive accounts
func (r *GradeRepository) AggregateTotals(ctx context.Context, courseID string, contentIDs []string, excludeUsers []int64) (total float64, users int64, err error) {
	if contentIDs == nil {
		contentIDs = []string{}
	}
	if excludeUsers == nil {
		excludeUsers = []int64{}
	}

	query := `
		SELECT COALESCE(SUM(sg.grade), 0), COUNT(DISTINCT sg.user_id)
		FROM student_grades sg
		JOIN users u ON u.id = sg.user_id
		WHERE ` + gradeScope + `
		  AND NOT (sg.user_id = ANY($3))
		  AND u.is_active
	`

	err = r.db.QueryRow(ctx, query, courseID, contentIDs, excludeUsers).Scan(&total, &users)
	if err != nil {
		return 0, 0, fmt.Errorf("error aggregating grade totals: %w", err)
	}

	return total, users, nil
}

// TopLeaders returns the highest point totals of a course, skipping
// excluded users and inactive accounts. Ties break on user id.
func (r *GradeRepository) TopLeaders(ctx context.Context, courseID string, contentIDs []string, excludeUsers []int64, count int) ([]*ProficiencyLeaderRow, error) {
	if contentIDs == nil {
		contentIDs = []string{}
	}
	if excludeUsers == nil {
		excludeUsers = []int64{}
	}

	query := `
		SELECT u.id, u.username, u.title, u.avatar_url, SUM(sg.grade) AS points
		FROM student_grades sg
		JOIN users u ON u.id = sg.user_id
		WHERE ` + gradeScope + `
		  AND NOT (sg.user_id = ANY($3))
		  AND u.is_active
		GROUP BY u.id, u.username, u.title, u.avatar_url
		ORDER BY points DESC, u.id ASC
		LIMIT $4
	`

	rows, err := r.db.Query(ctx, query, courseID, contentIDs, excludeUsers, count)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaders []*ProficiencyLeaderRow
	for rows.Next() {
		var leader ProficiencyLeaderRow
		if err := rows.Scan(&leader.UserID, &leader.Username, &leader.Title, &leader.AvatarURL, &leader.Points); err != nil {
			return nil, err
		}
		leaders = append(leaders, &leader)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return leaders, nil
}

// UserPoints returns a user's summed points for a course
func (r *GradeRepository) UserPoints(ctx context.Context, courseID string, contentIDs []string, userID int64) (float64, error) {
	if contentIDs == nil {
		contentIDs = []string{}
	}

	var points float64
	query := `
		SELECT COALESCE(SUM(sg.grade), 0)
		FROM student_grades sg
		WHERE ` + gradeScope + `
		  AND sg.user_id = $3
	`
	err := r.db.QueryRow(ctx, query, courseID, contentIDs, userID).Scan(&points)
	if err != nil {
		return 0, fmt.Errorf("error summing user points: %w", err)
	}

	return points, nil
}

// UsersAhead returns how many counted users hold strictly more points
// than the given total
func (r *GradeRepository) UsersAhead(ctx context.Context, courseID string, contentIDs []string, excludeUsers []int64, points float64) (int64, error) {
	if contentIDs == nil {
		contentIDs = []string{}
	}
	if excludeUsers == nil {
		excludeUsers = []int64{}
	}

	var ahead int64
	query := `
		SELECT COUNT(*) FROM (
			SELECT sg.user_id
			FROM student_grades sg
			JOIN users u ON u.id = sg.user_id
			WHERE ` + gradeScope + `
			  AND NOT (sg.user_id = ANY($3))
			  AND u.is_active
			GROUP BY sg.user_id
			HAVING SUM(sg.grade) > $4
		) ranked
	`
	err := r.db.QueryRow(ctx, query, courseID, contentIDs, excludeUsers, points).Scan(&ahead)
	if err != nil {
		return 0, fmt.Errorf("error ranking user points: %w", err)
	}

	return ahead, nil
}

package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oguzk/courseapi/internal/app/models"
	"github.com/oguzk/courseapi/internal/pkg/apperrors"
	"github.com/oguzk/courseapi/internal/pkg/dberrors"
	"github.com/oguzk/courseapi/internal/pkg/helpers"
)

// CompletionRepository handles database operations for content
// completion records
type CompletionRepository struct {
	db *pgxpool.Pool
}

// NewCompletionRepository creates a new completion repository
func NewCompletionRepository(db *pgxpool.Pool) *CompletionRepository {
	return &CompletionRepository{
		db: db,
	}
}

// Create inserts a completion record. The coalesced unique index on
// (user, course, content, stage) surfaces duplicates, so concurrent
// posts resolve to exactly one success.
func (r *CompletionRepository) Create(ctx context.Context, completion *models.Completion) error {
	query := `
		INSERT INTO course_completions (user_id, course_id, content_id, stage, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	now := time.Now()
	completion.CreatedAt = now
	completion.ModifiedAt = now

	err := r.db.QueryRow(ctx, query,
		completion.UserID, completion.CourseID, completion.ContentID,
		helpers.GetNullString(completion.Stage),
		completion.CreatedAt, completion.ModifiedAt,
	).Scan(&completion.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "course_completions_user_course_content_stage_key") {
			return apperrors.ErrCompletionExists
		}
		return fmt.Errorf("error creating completion: %w", err)
	}

	return nil
}

// completionFilterClause builds the shared WHERE parameters for
// completion listings. userIDs and stage are optional.
const completionFilterClause = `
	course_id = $1
	AND (cardinality($2::bigint[]) = 0 OR user_id = ANY($2))
	AND ($3 = '' OR content_id = $3)
	AND ($4::text IS NULL OR stage = $4)
`

// Count returns the number of completion records matching the filter
func (r *CompletionRepository) Count(ctx context.Context, courseID string, userIDs []int64, contentID string, stage *string) (int64, error) {
	if userIDs == nil {
		userIDs = []int64{}
	}

	var count int64
	query := `SELECT COUNT(*) FROM course_completions WHERE` + completionFilterClause
	err := r.db.QueryRow(ctx, query, courseID, userIDs, contentID, helpers.GetNullString(stage)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting completions: %w", err)
	}

	return count, nil
}

// List returns a page of completion records matching the filter,
// ordered by creation
func (r *CompletionRepository) List(ctx context.Context, courseID string, userIDs []int64, contentID string, stage *string, offset uint64, limit int) ([]*models.Completion, error) {
	if userIDs == nil {
		userIDs = []int64{}
	}

	query := `
		SELECT id, user_id, course_id, content_id, stage, created_at, modified_at
		FROM course_completions
		WHERE` + completionFilterClause + `
		ORDER BY id
		OFFSET $5 LIMIT $6
	`

	rows, err := r.db.Query(ctx, query, courseID, userIDs, contentID, helpers.GetNullString(stage), offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []*models.Completion
	for rows.Next() {
		var completion models.Completion
		if err := rows.Scan(
			&completion.ID,
			&completion.UserID,
			&completion.CourseID,
			&completion.ContentID,
			&completion.Stage,
			&completion.CreatedAt,
			&completion.ModifiedAt,
		); err != nil {
			return nil, err
		}
		completions = append(completions, &completion)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return completions, nil
}

// AggregateTotals returns the total completion count and the number of
// distinct completing users for a course, skipping excluded users and
// inactive accounts
func (r *CompletionRepository) AggregateTotals(ctx context.Context, courseID string, contentIDs []string, excludeUsers []int64) (total int64, users int64, err error) {
	if contentIDs == nil {
		contentIDs = []string{}
	}
	if excludeUsers == nil {
		excludeUsers = []int64{}
	}

	query := `
		SELECT COUNT(*), COUNT(DISTINCT cc.user_id)
		FROM course_completions cc
		JOIN users u ON u.id = cc.user_id
		WHERE cc.course_id = $1
		  AND (cardinality($2::text[]) = 0 OR cc.content_id = ANY($2))
		  AND NOT (cc.user_id = ANY($3))
		  AND u.is_active
	`

	err = r.db.QueryRow(ctx, query, courseID, contentIDs, excludeUsers).Scan(&total, &users)
	if err != nil {
		return 0, 0, fmt.Errorf("error aggregating completions: %w", err)
	}

	return total, users, nil
}

// TopLeaders returns the highest completion counts for a course,
// skipping excluded users and inactive accounts. Ties break on user id.
func (r *CompletionRepository) TopLeaders(ctx context.Context, courseID string, contentIDs []string, excludeUsers []int64, count int) ([]*CompletionLeaderRow, error) {
	if contentIDs == nil {
		contentIDs = []string{}
	}
	if excludeUsers == nil {
		excludeUsers = []int64{}
	}

	query := `
		SELECT u.id, u.username, u.title, u.avatar_url, COUNT(cc.id) AS completions
		FROM course_completions cc
		JOIN users u ON u.id = cc.user_id
		WHERE cc.course_id = $1
		  AND (cardinality($2::text[]) = 0 OR cc.content_id = ANY($2))
		  AND NOT (cc.user_id = ANY($3))
		  AND u.is_active
		GROUP BY u.id, u.username, u.title, u.avatar_url
		ORDER BY completions DESC, u.id ASC
		LIMIT $4
	`

	rows, err := r.db.Query(ctx, query, courseID, contentIDs, excludeUsers, count)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaders []*CompletionLeaderRow
	for rows.Next() {
		var leader CompletionLeaderRow
		if err := rows.Scan(&leader.UserID, &leader.Username, &leader.Title, &leader.AvatarURL, &leader.Completions); err != nil {
			return nil, err
		}
		leaders = append(leaders, &leader)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return leaders, nil
}

// UserCompletionCount returns a user's completion count for a course
func (r *CompletionRepository) UserCompletionCount(ctx context.Context, courseID string, contentIDs []string, userID int64) (int64, error) {
	if contentIDs == nil {
		contentIDs = []string{}
	}

	var count int64
	query := `
		SELECT COUNT(*)
		FROM course_completions
		WHERE course_id = $1
		  AND (cardinality($2::text[]) = 0 OR content_id = ANY($2))
		  AND user_id = $3
	`
	err := r.db.QueryRow(ctx, query, courseID, contentIDs, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting user completions: %w", err)
	}

	return count, nil
}

// UsersAhead returns how many counted users hold strictly more
// completions than the given total
func (r *CompletionRepository) UsersAhead(ctx context.Context, courseID string, contentIDs []string, excludeUsers []int64, total int64) (int64, error) {
	if contentIDs == nil {
		contentIDs = []string{}
	}
	if excludeUsers == nil {
		excludeUsers = []int64{}
	}

	var ahead int64
	query := `
		SELECT COUNT(*) FROM (
			SELECT cc.user_id
			FROM course_completions cc
			JOIN users u ON u.id = cc.user_id
			WHERE cc.course_id = $1
			  AND (cardinality($2::text[]) = 0 OR cc.content_id = ANY($2))
			  AND NOT (cc.user_id = ANY($3))
			  AND u.is_active
			GROUP BY cc.user_id
			HAVING COUNT(cc.id) > $4
		) ranked
	`
	err := r.db.QueryRow(ctx, query, courseID, contentIDs, excludeUsers, total).Scan(&ahead)
	if err != nil {
		return 0, fmt.Errorf("error ranking user completions: %w", err)
	}

	return ahead, nil
}

// CompletionLeaderRow is the scan target for completion leaderboard rows
type CompletionLeaderRow struct {
	UserID      int64
	Username    string
	Title       string
	AvatarURL   string
	Completions int64
}

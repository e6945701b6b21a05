package dto

// ProficiencyLeader is one leaderboard entry ranked by grade points
type ProficiencyLeader struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Title     string  `json:"title,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Points    float64 `json:"points"`
}

// ProficiencyLeaderboardResponse ranks course users by grade points.
// Position and Points are present only when a user_id was requested.
type ProficiencyLeaderboardResponse struct {
	CourseAvg float64             `json:"course_avg"`
	Position  *int                `json:"position,omitempty"`
	Points    *float64            `json:"points,omitempty"`
	Leaders   []ProficiencyLeader `json:"leaders"`
}

// CompletionLeader is one leaderboard entry ranked by completion count
type CompletionLeader struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Title       string `json:"title,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Completions int64  `json:"completions"`
}

// CompletionLeaderboardResponse ranks course users by completion count
type CompletionLeaderboardResponse struct {
	CourseAvg   float64            `json:"course_avg"`
	Position    *int               `json:"position,omitempty"`
	Completions *int64             `json:"completions,omitempty"`
	Leaders     []CompletionLeader `json:"leaders"`
}

// GradeEntry is one raw grade row of a grades rollup
type GradeEntry struct {
	UserID    int64   `json:"user_id"`
	ContentID string  `json:"content_id"`
	Grade     float64 `json:"grade"`
	MaxGrade  float64 `json:"max_grade"`
}

// GradesResponse aggregates grades for a course, optionally filtered by
// user and content. The course_* figures are always course-wide.
type GradesResponse struct {
	AverageGrade         float64      `json:"average_grade"`
	PointsScored         float64      `json:"points_scored"`
	PointsPossible       float64      `json:"points_possible"`
	CourseAverageGrade   float64      `json:"course_average_grade"`
	CoursePointsScored   float64      `json:"course_points_scored"`
	CoursePointsPossible float64      `json:"course_points_possible"`
	Grades               []GradeEntry `json:"grades"`
}

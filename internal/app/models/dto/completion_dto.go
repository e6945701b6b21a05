package dto

// CreateCompletionRequest records a completed content node for a user.
// Fields are checked by hand so each absence maps to its documented
// error message.
type CreateCompletionRequest struct {
	UserID    int64   `json:"user_id"`
	ContentID string  `json:"content_id"`
	Stage     *string `json:"stage"`
}

// CompletionFilter narrows a completion listing
type CompletionFilter struct {
	UserIDs   []int64
	ContentID string
	Stage     *string
	Page      int
	PageSize  int
}

package dto

// CreateGroupRequest creates a new group
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
	Data string `json:"data,omitempty"`
}

// UpdateGroupRequest updates a group's profile payload
type UpdateGroupRequest struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
	Data string `json:"data,omitempty"`
}

// GroupResponse is a serialized group
type GroupResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data,omitempty"`
	URI  string `json:"uri"`
}

// AddGroupMemberRequest adds an existing user to a group
type AddGroupMemberRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

// GroupMemberResponse is a serialized group membership
type GroupMemberResponse struct {
	GroupID  int64  `json:"group_id"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	URI      string `json:"uri"`
}

// BindGroupRequest binds a group to a course or content node
type BindGroupRequest struct {
	GroupID int64 `json:"group_id" binding:"required"`
}

// GroupBindingResponse is a serialized course or content group binding
type GroupBindingResponse struct {
	CourseID  string `json:"course_id"`
	ContentID string `json:"content_id,omitempty"`
	GroupID   int64  `json:"group_id"`
	URI       string `json:"uri"`
}

// ContentUser is a user reached through a group bound to a content node
type ContentUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	URI      string `json:"uri"`
}

package dto

// GrantRoleRequest grants a course role to a user
type GrantRoleRequest struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

// RoleEntry is one row of a course role listing
type RoleEntry struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
}

package dto

// CreateUserRequest registers a new account
type CreateUserRequest struct {
	Email     string `json:"email" binding:"required" validate:"required,email"`
	Username  string `json:"username" binding:"required" validate:"required,min=3,max=30"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Title     string `json:"title,omitempty"`
	City      string `json:"city,omitempty"`
}

// UserResponse is a serialized account
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Title     string `json:"title,omitempty"`
	City      string `json:"city,omitempty"`
	IsActive  bool   `json:"is_active"`
	URI       string `json:"uri,omitempty"`
}

// LoginRequest starts a session
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued session token
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"`
	User      UserResponse `json:"user"`
}

package request

// LoginRequest represents a login request
type LoginRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateUserRequest represents an admin creating a user
type CreateUserRequest struct {
	Name      string  `json:"name" binding:"required,max=255"`
	Password  string  `json:"password" binding:"required,min=6"`
	Role      string  `json:"role" binding:"required,oneof=admin user"`
	ExpiredAt *string `json:"expired_at"` // YYYY-MM-DD, null for no expiry
}

// UpdateUserRequest represents an admin updating a user. An empty password
// keeps the current one.
type UpdateUserRequest struct {
	Name      string  `json:"name" binding:"required,max=255"`
	Password  string  `json:"password" binding:"omitempty,min=6"`
	Role      string  `json:"role" binding:"required,oneof=admin user"`
	ExpiredAt *string `json:"expired_at"`
}

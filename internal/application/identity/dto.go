package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/infrastructure/auth"
)

// LoginRequest is the login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResult carries tokens plus a snapshot of the signed-in user
type LoginResult struct {
	User   *UserResponse   `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// ChangePasswordRequest is the self-service password change payload
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// CreateUserRequest is the admin user creation payload
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=100"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
	DisplayName string `json:"display_name" binding:"omitempty,max=200"`
	Role        string `json:"role" binding:"required,oneof=cashier admin"`
}

// UpdateUserRequest is the admin user update payload
type UpdateUserRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=200"`
	Role        *string `json:"role" binding:"omitempty,oneof=cashier admin"`
	Password    *string `json:"password" binding:"omitempty,min=8,max=128"`
}

// UserListFilter carries user listing parameters
type UserListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// UserResponse is the outward representation of a user
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToUserResponse converts a domain user to its response form
func ToUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.GetDisplayNameOrUsername(),
		Role:        string(u.Role),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/identity"
)

// RegisterRequest signs up a new company with its chairman account
type RegisterRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Phone       string `json:"phone" binding:"omitempty,max=20"`
}

// LoginRequest authenticates a user by email and password
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new token pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest revokes the caller's tokens
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"omitempty"`
}

// ChangePasswordRequest changes the caller's own password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// CreateUserRequest creates a user within the caller's company
type CreateUserRequest struct {
	Name     string     `json:"name" binding:"required"`
	Email    string     `json:"email" binding:"required,email"`
	Password string     `json:"password" binding:"required,min=8"`
	Role     string     `json:"role" binding:"required,oneof=chairman company_admin branch_head staff"`
	BranchID *uuid.UUID `json:"branch_id" binding:"omitempty"`
	Phone    string     `json:"phone" binding:"omitempty,max=20"`
}

// UpdateUserRequest applies a partial update to a user
type UpdateUserRequest struct {
	Name     *string    `json:"name" binding:"omitempty"`
	Phone    *string    `json:"phone" binding:"omitempty,max=20"`
	Role     *string    `json:"role" binding:"omitempty,oneof=chairman company_admin branch_head staff"`
	BranchID *uuid.UUID `json:"branch_id" binding:"omitempty"`
}

// ResetPasswordRequest sets a new password for another user (admin reset)
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UserResponse is the API representation of a user
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	CompanyID   uuid.UUID  `json:"company_id"`
	BranchID    *uuid.UUID `json:"branch_id,omitempty"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CompanyResponse is the API representation of a company
type CompanyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse carries a token pair plus the authenticated user
type AuthResponse struct {
	AccessToken           string       `json:"access_token"`
	RefreshToken          string       `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time    `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time    `json:"refresh_token_expires_at"`
	TokenType             string       `json:"token_type"`
	User                  UserResponse `json:"user"`
}

// TokenResponse carries a refreshed token pair
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// UserListFilter narrows user listings
type UserListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	Role     string `form:"role" binding:"omitempty,oneof=chairman company_admin branch_head staff"`
	Status   string `form:"status" binding:"omitempty,oneof=ACTIVE LOCKED DEACTIVATED"`
}

// ToUserResponse maps a user aggregate to its API representation
func ToUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		BranchID:    u.BranchID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        u.Role.String(),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ToUserResponses maps a slice of users
func ToUserResponses(users []identity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *ToUserResponse(&users[i]))
	}
	return out
}

// ToCompanyResponse maps a company aggregate to its API representation
func ToCompanyResponse(c *identity.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
	}
}

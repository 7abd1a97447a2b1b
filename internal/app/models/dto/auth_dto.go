package dto

import "github.com/smartexam/backend/internal/app/models"

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	FullName string          `json:"fullname" binding:"required"`
	Password string          `json:"password" binding:"required,min=8"`
	Role     models.RoleType `json:"role" binding:"required"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required"`
	Role     models.RoleType `json:"role" binding:"required"`
}

// RefreshTokenRequest carries a refresh token when no cookie is present
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UserResponse represents sanitized user information
type UserResponse struct {
	ID       int64           `json:"id"`
	Role     models.RoleType `json:"role"`
	Email    string          `json:"email"`
	FullName string          `json:"fullname"`
}

// NewUserResponse strips credentials and session state from a user record
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Role:     user.Role,
		Email:    user.Email,
		FullName: user.FullName,
	}
}

// LoginResponse represents a successful authentication response
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// RefreshResponse carries the rotated access token
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// ThemeResponse represents the stored UI theme preference
type ThemeResponse struct {
	Theme string `json:"theme"`
}

// UpdateThemeRequest updates the UI theme preference
type UpdateThemeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

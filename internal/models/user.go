package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type User struct {
	ID            string    `json:"id" gorm:"primaryKey;size:36"`
	DisplayName   string    `json:"display_name"`
	Email         string    `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Bio           string    `json:"bio,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	Password      string    `json:"-"`              // Store hashed password, ignore for JSON serialization
	ExternalLogin bool      `json:"external_login"` // Account created via GitHub OAuth, no local password
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=2,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GitHubLoginRequest struct {
	Code string `json:"code" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,min=2,max=50"`
	Bio         string `json:"bio,omitempty" validate:"omitempty,max=500"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

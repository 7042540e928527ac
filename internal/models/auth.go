package models

import "github.com/golang-jwt/jwt/v5"

// SignupRequest creates a student or admin account.
type SignupRequest struct {
	Role     UserRole `json:"role" validate:"required"`
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required"`
	Password string   `json:"password" validate:"required"`
}

// LoginRequest authenticates any role. Teachers put their faculty name in Email.
type LoginRequest struct {
	Role     UserRole `json:"role" validate:"required"`
	Email    string   `json:"email" validate:"required"`
	Password string   `json:"password" validate:"required"`
}

// LoginResponse returns the issued token.
type LoginResponse struct {
	Token string   `json:"token"`
	Role  UserRole `json:"role"`
	Name  string   `json:"name"`
}

// JWTClaims is the token payload. Teacher tokens carry no ID.
type JWTClaims struct {
	UserID string   `json:"id,omitempty"`
	Role   UserRole `json:"role"`
	Name   string   `json:"name"`
	jwt.RegisteredClaims
}

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest is the passwordless sign-in form: a display name and an
// email address are all the session needs.
type LoginRequest struct {
	Name  string `json:"name" binding:"required" example:"Dana"`
	Email string `json:"email" binding:"required,email" example:"dana@example.com"`
}

// AuthResponse represents the response for a successful login
type AuthResponse struct {
	Token     string `json:"token"`
	Name      string `json:"name" example:"Dana"`
	Email     string `json:"email" example:"dana@example.com"`
	ExpiresAt string `json:"expires_at" example:"2025-08-31T12:15:30Z"`
}

// SessionClaims are the JWT claims carried by a session token.
type SessionClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

package dto

import "github.com/golang-jwt/jwt/v5"

// LoginRequest is the credential payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token issued on a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// ProfileResponse is the server-side view of the logged-in admin.
type ProfileResponse struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

// AuthClaims are the identity claims carried in the bearer token payload.
// The client decodes them locally; it holds no signing key, so the expiry
// claim is the only freshness check available without a round-trip.
type AuthClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

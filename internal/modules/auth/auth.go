package auth

import (
	"context"

	"github.com/georgemunganga/intloko-backend/internal/modules/profile"
	"github.com/georgemunganga/intloko-backend/internal/session"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	Login(ctx context.Context, email, password string) (*Token, error)
	Register(ctx context.Context, req RegisterRequest) (*Token, error)
	ValidateToken(tokenString string) (session.Session, error)
}

// Token is the bearer credential handed to the admin dashboard.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest creates a login principal and its staff profile.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	profile.Input
}

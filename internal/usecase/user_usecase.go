// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Email    string
	Password string
	Address  string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// UserView is the public projection of a user. Credentials and coordinates
// are never exposed.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

// LoginOutput returns the issued bearer credential after a successful login.
type LoginOutput struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserUsecase defines the interface for user-related business operations.
type UserUsecase interface {
	// Register creates a new user, geocoding the address exactly once.
	Register(ctx context.Context, input *RegisterUserInput) (*UserView, error)

	// Login verifies credentials and issues a persisted access token.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}

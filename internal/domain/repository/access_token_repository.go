// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"agrimap/internal/domain/entity"
)

// ErrAccessTokenNotFound is returned when an access token is not found.
var ErrAccessTokenNotFound = errors.New("access token not found")

// AccessTokenRepository defines persistence for issued bearer credentials.
type AccessTokenRepository interface {
	// Create persists a newly issued access token.
	Create(ctx context.Context, token *entity.AccessToken) error

	// FindByToken retrieves a token record by its raw token string with the
	// owning user eagerly joined.
	FindByToken(ctx context.Context, token string) (*entity.AccessToken, error)

	// DeleteExpired removes every token whose expiry has passed.
	DeleteExpired(ctx context.Context) error
}

// Package auth provides implementations for authentication-related domain
// services, such as password hashing and token management.
package auth

import (
	"agrimap/config"
	"agrimap/internal/domain/service"
	"agrimap/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptHasher implements the service.PasswordHasher interface using the bcrypt algorithm.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a new hasher with the configured cost factor.
// A zero cost falls back to the bcrypt default.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash generates a bcrypt hash from a plaintext password.
func (h *bcryptHasher) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}

	return string(hashedBytes), nil
}

// Check compares a plaintext password with a stored hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

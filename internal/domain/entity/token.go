// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AccessToken represents an issued bearer credential bound to one user.
// It is created at login, read on every authenticated request and never
// mutated; expired rows are eligible for deletion.
type AccessToken struct {
	ID        uuid.UUID // The unique ID for this token record.
	UserID    uuid.UUID // Links this token to the user it was issued to.
	User      *User     // The owning user, populated when loaded with an eager join.
	Token     string    // The signed JWT string presented by clients.
	ExpiresAt time.Time // The exact time this token stops being accepted.
	CreatedAt time.Time // Timestamp of when this token was issued.
}

// Expired reports whether the token is no longer valid at the given instant.
func (t *AccessToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

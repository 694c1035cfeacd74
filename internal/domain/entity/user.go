// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// User is the core identity in the system. A user owns zero or more farms.
// Coordinates are resolved from the address exactly once at registration and
// are never recomputed afterwards; there is no address-update path.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email        string    // The user's unique email, used as the login identifier.
	PasswordHash string    // Stores the bcrypt-hashed password.
	Address      string    // The free-text address given at registration.
	Coordinates  orb.Point // Geocoded home location. orb.Point keeps latitude and longitude behind named accessors.
	CreatedAt    time.Time // Timestamp of when this user account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this user's data.
}

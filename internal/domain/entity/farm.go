// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Farm is a registered farm record. Every farm belongs to exactly one user.
// The pair (Address, Name) is unique system-wide.
type Farm struct {
	ID          uuid.UUID // The Global Unique Identifier (GUID) for the farm.
	UserID      uuid.UUID // The ID of the owning user. Mandatory, never nil.
	Owner       *User     // The owning user, populated when loaded with an eager join. May be nil otherwise.
	Address     string    // The farm's street address.
	Name        string    // The farm's display name.
	Size        float64   // Farm size in hectares, two fraction digits.
	Yield       float64   // Yearly yield in tons, two fraction digits.
	Coordinates orb.Point // Geocoded farm location, resolved once at creation.
	CreatedAt   time.Time // Timestamp of when this farm was registered.
	UpdatedAt   time.Time // Timestamp of the last modification.
}

// OwnerEmail returns the owning user's email, or an empty string when the
// owner relation was not loaded.
func (f *Farm) OwnerEmail() string {
	if f.Owner == nil {
		return ""
	}

	return f.Owner.Email
}

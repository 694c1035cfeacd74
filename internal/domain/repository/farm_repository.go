// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"agrimap/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrFarmNotFound is a domain-specific error returned when a farm is not found.
var ErrFarmNotFound = errors.New("farm not found")

// FarmRepository defines the standard operations for farm persistence.
type FarmRepository interface {
	// FindByID retrieves a single farm by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Farm, error)

	// ListWithOwners retrieves every farm with its owning user eagerly joined,
	// in a stable storage order. The listing pipeline depends on the join so
	// owner emails never trigger per-row lookups.
	ListWithOwners(ctx context.Context) ([]*entity.Farm, error)

	// ExistsByAddressAndName reports whether a farm with the exact
	// (address, name) pair already exists for any owner.
	ExistsByAddressAndName(ctx context.Context, address, name string) (bool, error)

	// Create persists a new farm entity to the storage.
	Create(ctx context.Context, farm *entity.Farm) error

	// Delete removes a farm by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

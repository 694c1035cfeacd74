// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"agrimap/internal/domain/entity"

	"github.com/google/uuid"
)

// SortKey names a listing sort order. Keys are validated at the delivery
// boundary; the pipeline only ever sees one of the constants below.
type SortKey string

// Valid sort keys for the farm listing.
const (
	SortKeyNone            SortKey = ""
	SortKeyName            SortKey = "name"
	SortKeyCreatedAt       SortKey = "createdAt"
	SortKeyDrivingDistance SortKey = "drivingDistance"
)

// --- Input DTOs ---

// CreateFarmInput defines the data required to register a new farm.
type CreateFarmInput struct {
	Address string
	Name    string
	Size    float64
	Yield   float64
}

// ListFarmsInput carries the listing options parsed from the query string.
type ListFarmsInput struct {
	IncludeOutliers bool
	SortKey         SortKey
}

// --- Output DTOs ---

// FarmView is the public projection of a farm. Owner and DrivingDistance are
// derived per listing request and absent from creation/deletion responses.
type FarmView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Address         string    `json:"address"`
	Size            float64   `json:"size"`
	Yield           float64   `json:"yield"`
	Owner           *string   `json:"owner,omitempty"`
	DrivingDistance *float64  `json:"drivingDistance,omitempty"`
	CreatedAt       string    `json:"createdAt"`
	UpdatedAt       string    `json:"updatedAt"`
}

// FarmUsecase defines the interface for farm-related business operations.
// This is the contract that the delivery layer (HTTP handlers) depends on.
type FarmUsecase interface {
	// CreateFarm registers a new farm for the owner. The duplicate
	// (address, name) check runs before any geocoder call or write.
	CreateFarm(ctx context.Context, owner *entity.User, input *CreateFarmInput) (*FarmView, error)

	// ListFarms runs the listing pipeline for the requesting user: eager-join
	// load, one distance-matrix call, optional outlier filter, optional sort,
	// view projection.
	ListFarms(ctx context.Context, requester *entity.User, input *ListFarmsInput) ([]*FarmView, error)

	// DeleteFarm removes the farm when the requester owns it and returns the
	// pre-deletion view.
	DeleteFarm(ctx context.Context, requester *entity.User, farmID uuid.UUID) (*FarmView, error)
}

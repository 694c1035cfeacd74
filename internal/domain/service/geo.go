package service

import (
	"context"

	"github.com/paulmach/orb"
)

// Geocoder resolves a free-text address to a coordinate pair. It is consumed
// as an opaque external service, invoked exactly once per user or farm
// creation.
type Geocoder interface {
	// Geocode resolves the address. An address that yields no location is a
	// domain error (unprocessable input), not a transport failure.
	Geocode(ctx context.Context, address string) (orb.Point, error)
}

// DistanceGateway returns road-network driving distances from the first
// point to every point in the list, aligned to input order. Element 0 is the
// origin's distance to itself.
type DistanceGateway interface {
	// DrivingDistances returns one distance row in meters. Any transport or
	// parse failure surfaces as an error; callers do not retry.
	DrivingDistances(ctx context.Context, points []orb.Point) ([]float64, error)
}

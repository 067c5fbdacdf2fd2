package location

import (
	"context"
	"errors"
)

// ErrNoResults is returned when the geocoding service answers but finds nothing.
var ErrNoResults = errors.New("no results")

// Geocoder is the place-suggestion and geocoding service.
type Geocoder interface {
	// Predict returns place suggestions for text, restricted to one country
	// (ISO 3166-1 alpha-2).
	Predict(ctx context.Context, text, country string) ([]Suggestion, error)
	// Resolve turns a suggestion's place id into an address and coordinates.
	Resolve(ctx context.Context, placeID string) (*Location, error)
	// Reverse finds a display address for a coordinate pair.
	Reverse(ctx context.Context, p Point) (string, error)
}

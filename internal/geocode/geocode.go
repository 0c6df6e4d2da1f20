// Package geocode resolves place names to coordinates and UTC offsets.
// Resolvers are external collaborators; their output is untrusted and is
// validated like directly supplied coordinates before use.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/jyotish-engine/internal/astro"
)

// ErrGeocodingFailure indicates a place could not be resolved. Callers
// receive the failure as-is; no default location is ever substituted.
var ErrGeocodingFailure = errors.New("geocoding failure")

// Place is a resolved location with its UTC offset in hours. The offset
// is fixed per entry; daylight saving is the caller's concern.
type Place struct {
	Location    astro.Location
	OffsetHours float64
}

// Resolver turns a place name into coordinates and an offset.
type Resolver interface {
	Resolve(ctx context.Context, name string) (Place, error)
}

// Validate checks a resolver's output against the same bounds applied to
// direct coordinate input.
func Validate(place Place) error {
	if _, err := astro.NewLocation(place.Location.Latitude, place.Location.Longitude); err != nil {
		return fmt.Errorf("%w: %v", ErrGeocodingFailure, err)
	}
	if place.OffsetHours < -12 || place.OffsetHours > 14 {
		return fmt.Errorf("%w: utc offset %v out of range", ErrGeocodingFailure, place.OffsetHours)
	}
	return nil
}

// Validated wraps a resolver so every result passes Validate before it
// reaches the caller.
func Validated(resolver Resolver) Resolver {
	return validated{resolver: resolver}
}

type validated struct {
	resolver Resolver
}

func (v validated) Resolve(ctx context.Context, name string) (Place, error) {
	place, err := v.resolver.Resolve(ctx, name)
	if err != nil {
		return Place{}, err
	}
	if err := Validate(place); err != nil {
		return Place{}, err
	}
	return place, nil
}

// Gazetteer is a fixed in-memory resolver. Lookups are case-insensitive
// on the trimmed place name.
type Gazetteer struct {
	entries map[string]Place
}

// NewGazetteer builds a resolver over a fixed entry set.
func NewGazetteer(entries map[string]Place) *Gazetteer {
	normalized := make(map[string]Place, len(entries))
	for name, place := range entries {
		normalized[normalize(name)] = place
	}
	return &Gazetteer{entries: normalized}
}

// Resolve looks the place up in the entry table.
func (g *Gazetteer) Resolve(ctx context.Context, name string) (Place, error) {
	if err := ctx.Err(); err != nil {
		return Place{}, err
	}
	place, ok := g.entries[normalize(name)]
	if !ok {
		return Place{}, fmt.Errorf("%w: unknown place %q", ErrGeocodingFailure, name)
	}
	return place, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DefaultGazetteer covers a small set of cities for offline use.
func DefaultGazetteer() *Gazetteer {
	place := func(lat, lon, offset float64) Place {
		return Place{Location: astro.Location{Latitude: lat, Longitude: lon}, OffsetHours: offset}
	}
	return NewGazetteer(map[string]Place{
		"Mumbai":    place(19.076, 72.877, 5.5),
		"New Delhi": place(28.614, 77.209, 5.5),
		"Chennai":   place(13.083, 80.270, 5.5),
		"Kolkata":   place(22.573, 88.364, 5.5),
		"London":    place(51.507, -0.128, 0),
		"New York":  place(40.713, -74.006, -5),
		"Tokyo":     place(35.676, 139.650, 9),
		"Sydney":    place(-33.869, 151.209, 10),
	})
}

// Package ephemeris defines the celestial position provider contract and its
// adapters. Positions are pure functions of (body, instant, zodiac mode):
// the same inputs always yield the same result for a given provider model.
package ephemeris

import (
	"context"
	"errors"

	"github.com/louisbranch/jyotish-engine/internal/astro"
	"github.com/louisbranch/jyotish-engine/internal/julian"
)

// ErrUnavailable indicates the provider cannot resolve a body or instant:
// an unsupported body identifier, or a date outside the model's validity
// window. Callers must not substitute fabricated positions for this error.
var ErrUnavailable = errors.New("ephemeris unavailable")

// Position is the computed ecliptic state of a body at one instant.
type Position struct {
	// Longitude is the ecliptic longitude in degrees, in [0, 360).
	Longitude float64
	// Latitude is the ecliptic latitude in degrees.
	Latitude float64
	// Distance is the geocentric distance in astronomical units.
	Distance float64
	// DailyMotion is the signed longitude change in degrees per day.
	// Negative motion means the body is retrograde.
	DailyMotion float64
	// Approximate marks positions produced by a fallback approximation so
	// they are never indistinguishable from a precise lookup.
	Approximate bool
}

// Retrograde reports whether the body is moving backwards through the zodiac.
func (p Position) Retrograde() bool {
	return p.DailyMotion < 0
}

// Provider resolves body positions. Implementations must be deterministic
// for a fixed model version and must return ErrUnavailable rather than
// placeholder values when they cannot resolve a request.
type Provider interface {
	Position(ctx context.Context, body astro.Body, day julian.Day, mode astro.ZodiacMode) (Position, error)
}

// AyanamsaFunc computes the precession correction, in degrees, subtracted
// from a tropical longitude to obtain the sidereal longitude at an instant.
type AyanamsaFunc func(day julian.Day) float64

// LahiriAyanamsa approximates the Lahiri (Chitrapaksha) ayanamsa. The
// polynomial is fitted around 1900 and is accurate to roughly an arcminute
// over the supported date window.
func LahiriAyanamsa(day julian.Day) float64 {
	t := (float64(day) - 2415020.0) / 36525.0
	return 22.460148 + 1.396042*t + 0.000308*t*t
}

// FixedAyanamsa returns an AyanamsaFunc holding a constant offset.
func FixedAyanamsa(degrees float64) AyanamsaFunc {
	return func(julian.Day) float64 { return degrees }
}

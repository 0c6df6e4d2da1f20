package ephemeris

import (
	"context"
	"fmt"

	"github.com/louisbranch/jyotish-engine/internal/astro"
	"github.com/louisbranch/jyotish-engine/internal/julian"
)

// Fixed is a deterministic test-double provider backed by a table of
// tabulated positions. Lookups ignore the instant and mode; a body missing
// from the table fails with ErrUnavailable, mirroring the production
// contract.
type Fixed struct {
	positions map[astro.Body]Position
}

// NewFixed constructs a fixed provider from tabulated positions.
func NewFixed(positions map[astro.Body]Position) *Fixed {
	table := make(map[astro.Body]Position, len(positions))
	for body, position := range positions {
		position.Longitude = astro.Normalize(position.Longitude)
		table[body] = position
	}
	return &Fixed{positions: table}
}

// Position returns the tabulated position for a body.
func (f *Fixed) Position(ctx context.Context, body astro.Body, _ julian.Day, _ astro.ZodiacMode) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}
	position, ok := f.positions[body]
	if !ok {
		return Position{}, fmt.Errorf("%w: body %v not tabulated", ErrUnavailable, body)
	}
	return position, nil
}

// Package chart assembles body positions and house cusps into a unified
// chart: house assignment, sign decomposition, nakshatra placement, and the
// aspect list. A natal chart and a transit chart share the same structure;
// only the instant and location differ.
package chart

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/jyotish-engine/internal/aspect"
	"github.com/louisbranch/jyotish-engine/internal/astro"
	"github.com/louisbranch/jyotish-engine/internal/ephemeris"
	"github.com/louisbranch/jyotish-engine/internal/houses"
	"github.com/louisbranch/jyotish-engine/internal/julian"
)

var tracer = otel.Tracer("jyotish-engine/chart")

// Placement is one body's computed state within a chart.
type Placement struct {
	Body              astro.Body
	Position          ephemeris.Position
	Sign              astro.Sign
	DegreeInSign      float64
	House             int
	Nakshatra         astro.Nakshatra
	NakshatraFraction float64
}

// Chart is the assembled, read-only result. It carries the moment and
// location that produced it for provenance.
type Chart struct {
	Moment     julian.Moment
	Day        julian.Day
	Location   astro.Location
	Mode       astro.ZodiacMode
	Houses     houses.Result
	Placements []Placement
	Aspects    []aspect.Aspect
}

// Placement returns the placement for a body, if present.
func (c Chart) Placement(body astro.Body) (Placement, bool) {
	for _, placement := range c.Placements {
		if placement.Body == body {
			return placement, true
		}
	}
	return Placement{}, false
}

// Request describes one chart assembly.
type Request struct {
	Moment   julian.Moment
	Location astro.Location
	Mode     astro.ZodiacMode
	System   houses.System
	// FallbackWholeSign is forwarded to the house calculator.
	FallbackWholeSign bool
}

// Options tunes an assembler. Zero values select the chart bodies and the
// default orb table.
type Options struct {
	Bodies []astro.Body
	Orbs   aspect.Orbs
}

// Assembler builds charts from an ephemeris provider. Collaborators are
// fixed at construction and never mutated afterwards.
type Assembler struct {
	provider ephemeris.Provider
	bodies   []astro.Body
	orbs     aspect.Orbs
}

// NewAssembler constructs an assembler around a provider.
func NewAssembler(provider ephemeris.Provider, options Options) *Assembler {
	bodies := options.Bodies
	if len(bodies) == 0 {
		bodies = astro.ChartBodies
	}
	orbs := options.Orbs
	if orbs == nil {
		orbs = aspect.DefaultOrbs()
	}
	return &Assembler{provider: provider, bodies: bodies, orbs: orbs}
}

// Assemble computes a chart for a request. Ephemeris failures propagate
// unchanged; no placement is ever fabricated.
func (a *Assembler) Assemble(ctx context.Context, request Request) (Chart, error) {
	day := request.Moment.ToDay()
	ctx, span := tracer.Start(ctx, "chart.Assemble", trace.WithAttributes(
		attribute.Float64("chart.julian_day", float64(day)),
		attribute.String("chart.mode", request.Mode.String()),
		attribute.String("chart.system", request.System.String()),
	))
	defer span.End()

	cusps, err := houses.Calculate(houses.Request{
		Day:               day,
		Location:          request.Location,
		System:            request.System,
		FallbackWholeSign: request.FallbackWholeSign,
	})
	if err != nil {
		return Chart{}, fmt.Errorf("calculate houses: %w", err)
	}

	placements := make([]Placement, 0, len(a.bodies))
	points := make([]aspect.Point, 0, len(a.bodies))
	for _, body := range a.bodies {
		position, err := a.provider.Position(ctx, body, day, request.Mode)
		if err != nil {
			return Chart{}, fmt.Errorf("position %v: %w", body, err)
		}
		nakshatra, fraction := astro.NakshatraOf(position.Longitude)
		placements = append(placements, Placement{
			Body:              body,
			Position:          position,
			Sign:              astro.SignOf(position.Longitude),
			DegreeInSign:      astro.DegreeInSign(position.Longitude),
			House:             HouseOf(position.Longitude, cusps.Cusps),
			Nakshatra:         nakshatra,
			NakshatraFraction: fraction,
		})
		points = append(points, aspect.Point{Body: body, Longitude: position.Longitude})
	}

	return Chart{
		Moment:     request.Moment,
		Day:        day,
		Location:   request.Location,
		Mode:       request.Mode,
		Houses:     cusps,
		Placements: placements,
		Aspects:    aspect.Analyze(points, a.orbs),
	}, nil
}

// HouseOf returns the 1-based house containing a longitude: house k spans
// [cusp_k, cusp_k+1) walking the circle modulo 360, so the wrap at 0 is
// handled by arc arithmetic rather than raw comparison.
func HouseOf(longitude float64, cusps [12]float64) int {
	for i := 0; i < 12; i++ {
		next := cusps[(i+1)%12]
		if astro.Arc(cusps[i], longitude) < astro.Arc(cusps[i], next) {
			return i + 1
		}
	}
	// Unreachable for cusps that partition the circle; house 12 closes the
	// walk when every forward gap excluded the longitude by rounding.
	return 12
}

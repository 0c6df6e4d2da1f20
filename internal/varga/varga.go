// Package varga derives divisional (harmonic) charts from a base chart by
// re-mapping longitudes through a divisor scheme.
//
// The transform rule is pluggable per scheme. Most divisions use the
// multiplicative rule (longitude × divisor mod 360). The navamsa (D9)
// multiplicative result coincides with the classical movable/fixed/dual
// counting, so D9 needs no special case; the dashamsa (D10) and
// dwadashamsa (D12) do differ classically and carry their sign-cycle rules
// here. Overriding a registered scheme, or applying a custom one, is a
// policy decision left to the caller via Apply.
package varga

import (
	"errors"
	"fmt"
	"math"

	"github.com/louisbranch/jyotish-engine/internal/aspect"
	"github.com/louisbranch/jyotish-engine/internal/astro"
	"github.com/louisbranch/jyotish-engine/internal/chart"
)

// ErrUnknownDivisor indicates a divisor with no registered scheme.
var ErrUnknownDivisor = errors.New("no divisional scheme for divisor")

// Scheme describes one divisional chart transform.
type Scheme struct {
	Divisor int
	Name    string
	// Purpose is the classical analysis theme of the division.
	Purpose string
	// Transform maps a base longitude to the divisional longitude.
	Transform func(longitude float64) float64
}

// Divisional is a read-only chart derived from a base chart. Houses are
// whole-sign from the transformed ascendant, per classical practice.
type Divisional struct {
	Scheme     Scheme
	Base       chart.Chart
	Ascendant  float64
	Cusps      [12]float64
	Placements []chart.Placement
	Aspects    []aspect.Aspect
}

// multiplicative is the canonical harmonic transform.
func multiplicative(divisor int) func(float64) float64 {
	return func(longitude float64) float64 {
		return astro.Normalize(astro.Normalize(longitude) * float64(divisor))
	}
}

// signCycle implements the classical counting rules: the division index
// within the sign advances from a starting sign determined by the occupied
// sign, and the remainder stretches across the divisional sign.
func signCycle(divisor int, start func(astro.Sign) int) func(float64) float64 {
	span := 30.0 / float64(divisor)
	return func(longitude float64) float64 {
		sign := astro.SignOf(longitude)
		within := astro.DegreeInSign(longitude)
		part := int(within / span)
		if part >= divisor {
			part = divisor - 1
		}
		target := (start(sign) + part) % 12
		offset := math.Mod(within*float64(divisor), 30)
		return astro.Normalize(float64(target)*30 + offset)
	}
}

// dashamsaStart counts odd signs from themselves and even signs from the
// ninth sign onwards.
func dashamsaStart(sign astro.Sign) int {
	if sign%2 == 0 {
		return int(sign)
	}
	return (int(sign) + 8) % 12
}

// dwadashamsaStart counts every sign from itself.
func dwadashamsaStart(sign astro.Sign) int {
	return int(sign)
}

// schemes registers the classical divisions by divisor.
var schemes = map[int]Scheme{
	1:  {Divisor: 1, Name: "Rashi", Purpose: "natal chart", Transform: multiplicative(1)},
	2:  {Divisor: 2, Name: "Hora", Purpose: "wealth", Transform: multiplicative(2)},
	3:  {Divisor: 3, Name: "Drekkana", Purpose: "siblings", Transform: multiplicative(3)},
	4:  {Divisor: 4, Name: "Chaturthamsa", Purpose: "property", Transform: multiplicative(4)},
	7:  {Divisor: 7, Name: "Saptamsa", Purpose: "children", Transform: multiplicative(7)},
	9:  {Divisor: 9, Name: "Navamsa", Purpose: "relationships", Transform: multiplicative(9)},
	10: {Divisor: 10, Name: "Dashamsa", Purpose: "career", Transform: signCycle(10, dashamsaStart)},
	12: {Divisor: 12, Name: "Dwadashamsa", Purpose: "parents", Transform: signCycle(12, dwadashamsaStart)},
	16: {Divisor: 16, Name: "Shodashamsa", Purpose: "vehicles", Transform: multiplicative(16)},
	20: {Divisor: 20, Name: "Vimshamsa", Purpose: "spiritual practice", Transform: multiplicative(20)},
	24: {Divisor: 24, Name: "Chaturvimshamsa", Purpose: "learning", Transform: multiplicative(24)},
	27: {Divisor: 27, Name: "Bhamsha", Purpose: "strengths", Transform: multiplicative(27)},
	30: {Divisor: 30, Name: "Trimshamsa", Purpose: "misfortunes", Transform: multiplicative(30)},
	40: {Divisor: 40, Name: "Khavedamsa", Purpose: "maternal legacy", Transform: multiplicative(40)},
	45: {Divisor: 45, Name: "Akshavedamsa", Purpose: "paternal legacy", Transform: multiplicative(45)},
	60: {Divisor: 60, Name: "Shashtiamsa", Purpose: "accumulated karma", Transform: multiplicative(60)},
}

// Lookup returns the registered scheme for a divisor.
func Lookup(divisor int) (Scheme, error) {
	scheme, ok := schemes[divisor]
	if !ok {
		return Scheme{}, fmt.Errorf("%w: %d", ErrUnknownDivisor, divisor)
	}
	return scheme, nil
}

// Divisors lists the registered divisors in ascending order.
func Divisors() []int {
	return []int{1, 2, 3, 4, 7, 9, 10, 12, 16, 20, 24, 27, 30, 40, 45, 60}
}

// Calculate derives the divisional chart for a registered divisor.
func Calculate(base chart.Chart, divisor int) (Divisional, error) {
	scheme, err := Lookup(divisor)
	if err != nil {
		return Divisional{}, err
	}
	return Apply(base, scheme)
}

// Apply derives a divisional chart under an explicit scheme. The base
// chart is not modified.
func Apply(base chart.Chart, scheme Scheme) (Divisional, error) {
	if scheme.Transform == nil {
		return Divisional{}, fmt.Errorf("%w: %d", ErrUnknownDivisor, scheme.Divisor)
	}

	ascendant := scheme.Transform(base.Houses.Ascendant)
	var cusps [12]float64
	first := math.Floor(astro.Normalize(ascendant)/30) * 30
	for i := range cusps {
		cusps[i] = astro.Normalize(first + float64(i)*30)
	}

	placements := make([]chart.Placement, 0, len(base.Placements))
	points := make([]aspect.Point, 0, len(base.Placements))
	for _, placement := range base.Placements {
		longitude := scheme.Transform(placement.Position.Longitude)
		derived := placement
		derived.Position.Longitude = longitude
		derived.Sign = astro.SignOf(longitude)
		derived.DegreeInSign = astro.DegreeInSign(longitude)
		derived.House = chart.HouseOf(longitude, cusps)
		nakshatra, fraction := astro.NakshatraOf(longitude)
		derived.Nakshatra = nakshatra
		derived.NakshatraFraction = fraction
		placements = append(placements, derived)
		points = append(points, aspect.Point{Body: derived.Body, Longitude: longitude})
	}

	return Divisional{
		Scheme:     scheme,
		Base:       base,
		Ascendant:  ascendant,
		Cusps:      cusps,
		Placements: placements,
		Aspects:    aspect.Analyze(points, nil),
	}, nil
}

// Package aspect classifies pairwise angular separations between chart
// points into the five major aspects with per-aspect orb tolerances.
package aspect

import (
	"math"
	"sort"

	"github.com/louisbranch/jyotish-engine/internal/astro"
)

// Type identifies a major aspect.
type Type int

const (
	TypeConjunction Type = iota
	TypeSextile
	TypeSquare
	TypeTrine
	TypeOpposition
)

func (t Type) String() string {
	switch t {
	case TypeConjunction:
		return "conjunction"
	case TypeSextile:
		return "sextile"
	case TypeSquare:
		return "square"
	case TypeTrine:
		return "trine"
	case TypeOpposition:
		return "opposition"
	default:
		return "unknown"
	}
}

// Angle returns the exact separation of the aspect in degrees.
func (t Type) Angle() float64 {
	switch t {
	case TypeConjunction:
		return 0
	case TypeSextile:
		return 60
	case TypeSquare:
		return 90
	case TypeTrine:
		return 120
	case TypeOpposition:
		return 180
	default:
		return math.NaN()
	}
}

// Orbs maps each aspect to its allowed deviation from the exact angle, in
// degrees.
type Orbs map[Type]float64

// DefaultOrbs are the conventional tolerances: tighter for the minor
// sextile, widest for conjunction and opposition.
func DefaultOrbs() Orbs {
	return Orbs{
		TypeConjunction: 8,
		TypeSextile:     4,
		TypeSquare:      6,
		TypeTrine:       6,
		TypeOpposition:  8,
	}
}

// Aspect is one classified pair. First and Second preserve the order the
// bodies were listed in.
type Aspect struct {
	First      astro.Body
	Second     astro.Body
	Type       Type
	Separation float64
	// Orb is the absolute deviation from the exact aspect angle.
	Orb float64
}

// Point is a chart point considered for aspects.
type Point struct {
	Body      astro.Body
	Longitude float64
}

// Classify matches a single separation against the aspect table. When a
// separation falls inside more than one orb window the smallest deviation
// wins. The second return is false when no aspect applies.
func Classify(separation float64, orbs Orbs) (Type, float64, bool) {
	if orbs == nil {
		orbs = DefaultOrbs()
	}
	best := TypeConjunction
	bestOrb := math.MaxFloat64
	found := false
	for _, t := range []Type{TypeConjunction, TypeSextile, TypeSquare, TypeTrine, TypeOpposition} {
		allowed, ok := orbs[t]
		if !ok {
			continue
		}
		deviation := math.Abs(separation - t.Angle())
		if deviation <= allowed && deviation < bestOrb {
			best = t
			bestOrb = deviation
			found = true
		}
	}
	return best, bestOrb, found
}

// Analyze computes the aspect list over every unordered pair of points.
// The result is ordered by the input point order and bounded by C(n, 2).
func Analyze(points []Point, orbs Orbs) []Aspect {
	var aspects []Aspect
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			separation := astro.Separation(points[i].Longitude, points[j].Longitude)
			t, orb, ok := Classify(separation, orbs)
			if !ok {
				continue
			}
			aspects = append(aspects, Aspect{
				First:      points[i].Body,
				Second:     points[j].Body,
				Type:       t,
				Separation: separation,
				Orb:        orb,
			})
		}
	}
	sort.SliceStable(aspects, func(a, b int) bool {
		if aspects[a].First != aspects[b].First {
			return aspects[a].First < aspects[b].First
		}
		return aspects[a].Second < aspects[b].Second
	})
	return aspects
}

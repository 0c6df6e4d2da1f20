// Package ashtakavarga computes Bhinnashtakavarga and Sarvashtakavarga
// bindu distributions from a natal chart.
//
// Each of the seven classical planets has a fixed rule set: from each of
// eight reference points (the seven planets and the ascendant), certain
// house offsets counted from the reference sign receive one bindu. The
// rule tables follow Brihat Parashara Hora Shastra; the per-planet bindu
// totals across all twelve signs are 48, 49, 39, 54, 56, 52, and 39 for
// Sun through Saturn, summing to 337.
package ashtakavarga

import (
	"errors"
	"fmt"

	"github.com/louisbranch/jyotish-engine/internal/astro"
	"github.com/louisbranch/jyotish-engine/internal/chart"
)

// ErrMissingPlacement indicates the chart lacks a placement required as a
// reference point.
var ErrMissingPlacement = errors.New("chart missing required placement")

// ErrNoRules indicates a body with no Bhinnashtakavarga rule set.
var ErrNoRules = errors.New("no ashtakavarga rules for body")

// references orders the planetary reference points; the ascendant is the
// implicit eighth.
var references = [7]astro.Body{
	astro.BodySun,
	astro.BodyMoon,
	astro.BodyMars,
	astro.BodyMercury,
	astro.BodyJupiter,
	astro.BodyVenus,
	astro.BodySaturn,
}

// benefic lists, per planet, the house offsets (counted inclusively from
// each reference point's sign) that contribute one bindu. Index 0..6
// follow the references order; index 7 is the ascendant.
var benefic = map[astro.Body][8][]int{
	astro.BodySun: {
		{1, 2, 4, 7, 8, 9, 10, 11},
		{3, 6, 10, 11},
		{1, 2, 4, 7, 8, 9, 10, 11},
		{3, 5, 6, 9, 10, 11, 12},
		{5, 6, 9, 11},
		{6, 7, 12},
		{1, 2, 4, 7, 8, 9, 10, 11},
		{3, 4, 6, 10, 11, 12},
	},
	astro.BodyMoon: {
		{3, 6, 7, 8, 10, 11},
		{1, 3, 6, 7, 10, 11},
		{2, 3, 5, 6, 9, 10, 11},
		{1, 3, 4, 5, 7, 8, 10, 11},
		{1, 4, 7, 8, 10, 11, 12},
		{3, 4, 5, 7, 9, 10, 11},
		{3, 5, 6, 11},
		{3, 6, 10, 11},
	},
	astro.BodyMars: {
		{3, 5, 6, 10, 11},
		{3, 6, 11},
		{1, 2, 4, 7, 8, 10, 11},
		{3, 5, 6, 11},
		{6, 10, 11, 12},
		{6, 8, 11, 12},
		{1, 4, 7, 8, 9, 10, 11},
		{1, 3, 6, 10, 11},
	},
	astro.BodyMercury: {
		{5, 6, 9, 11, 12},
		{2, 4, 6, 8, 10, 11},
		{1, 2, 4, 7, 8, 9, 10, 11},
		{1, 3, 5, 6, 9, 10, 11, 12},
		{6, 8, 11, 12},
		{1, 2, 3, 4, 5, 8, 9, 11},
		{1, 2, 4, 7, 8, 9, 10, 11},
		{1, 2, 4, 6, 8, 10, 11},
	},
	astro.BodyJupiter: {
		{1, 2, 3, 4, 7, 8, 9, 10, 11},
		{2, 5, 7, 9, 11},
		{1, 2, 4, 7, 8, 10, 11},
		{1, 2, 4, 5, 6, 9, 10, 11},
		{1, 2, 3, 4, 7, 8, 10, 11},
		{2, 5, 6, 9, 10, 11},
		{3, 5, 6, 12},
		{1, 2, 4, 5, 6, 7, 9, 10, 11},
	},
	astro.BodyVenus: {
		{8, 11, 12},
		{1, 2, 3, 4, 5, 8, 9, 11, 12},
		{3, 5, 6, 9, 11, 12},
		{3, 5, 6, 9, 11},
		{5, 8, 9, 10, 11},
		{1, 2, 3, 4, 5, 8, 9, 10, 11},
		{3, 4, 5, 8, 9, 10, 11},
		{1, 2, 3, 4, 5, 8, 9, 11},
	},
	astro.BodySaturn: {
		{1, 2, 4, 7, 8, 10, 11},
		{3, 6, 11},
		{3, 5, 6, 10, 11, 12},
		{6, 8, 9, 10, 11, 12},
		{5, 6, 11, 12},
		{6, 11, 12},
		{3, 5, 6, 11},
		{1, 3, 4, 6, 10, 11},
	},
}

// Result holds the per-planet and combined bindu distributions. Arrays
// index by sign, Aries first.
type Result struct {
	Bhinna map[astro.Body][12]int
	Sarva  [12]int
}

// referenceSigns resolves the eight reference point signs from a chart.
func referenceSigns(c chart.Chart) ([8]astro.Sign, error) {
	var signs [8]astro.Sign
	for i, body := range references {
		placement, ok := c.Placement(body)
		if !ok {
			return signs, fmt.Errorf("%w: %v", ErrMissingPlacement, body)
		}
		signs[i] = placement.Sign
	}
	signs[7] = astro.SignOf(c.Houses.Ascendant)
	return signs, nil
}

// Bhinna computes the Bhinnashtakavarga bindu array for one planet. Each
// sign holds between 0 and 8 bindus.
func Bhinna(c chart.Chart, planet astro.Body) ([12]int, error) {
	rules, ok := benefic[planet]
	if !ok {
		return [12]int{}, fmt.Errorf("%w: %v", ErrNoRules, planet)
	}
	signs, err := referenceSigns(c)
	if err != nil {
		return [12]int{}, err
	}

	var bindus [12]int
	for i, offsets := range rules {
		for _, offset := range offsets {
			bindus[(int(signs[i])+offset-1)%12]++
		}
	}
	return bindus, nil
}

// Calculate computes all seven Bhinnashtakavarga arrays and their
// Sarvashtakavarga sum.
func Calculate(c chart.Chart) (Result, error) {
	result := Result{Bhinna: make(map[astro.Body][12]int, len(references))}
	for _, planet := range references {
		bindus, err := Bhinna(c, planet)
		if err != nil {
			return Result{}, err
		}
		result.Bhinna[planet] = bindus
		for sign, count := range bindus {
			result.Sarva[sign] += count
		}
	}
	return result, nil
}

// Package domain defines the MCP tool surface for the computation engine.
// Each tool has an input/result pair, a schema constructor, and a handler
// factory that closes over the engine dependencies.
package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/jyotish-engine/internal/aspect"
	"github.com/louisbranch/jyotish-engine/internal/astro"
	"github.com/louisbranch/jyotish-engine/internal/chart"
	"github.com/louisbranch/jyotish-engine/internal/dasha"
	"github.com/louisbranch/jyotish-engine/internal/dignity"
	enginerrors "github.com/louisbranch/jyotish-engine/internal/errors"
	"github.com/louisbranch/jyotish-engine/internal/geocode"
	"github.com/louisbranch/jyotish-engine/internal/houses"
	"github.com/louisbranch/jyotish-engine/internal/julian"
	"github.com/louisbranch/jyotish-engine/internal/scan"
	"github.com/louisbranch/jyotish-engine/internal/storage"
)

// Engine bundles the dependencies shared by all tool handlers.
type Engine struct {
	Assembler *chart.Assembler
	Scanner   *scan.Scanner
	Resolver  geocode.Resolver
	Records   storage.BirthRecordStore
	// Snapshots persists computed charts when configured; nil disables
	// snapshotting.
	Snapshots storage.ChartSnapshotStore
}

// BirthInput carries the civil instant and location fields shared by the
// chart tools. Either coordinates or a place name must be provided; a
// place name is resolved through the geocoder.
type BirthInput struct {
	Year        int     `json:"year" jsonschema:"civil year"`
	Month       int     `json:"month" jsonschema:"civil month (1-12)"`
	Day         int     `json:"day" jsonschema:"civil day of month"`
	Hour        int     `json:"hour" jsonschema:"civil hour (0-23)"`
	Minute      int     `json:"minute" jsonschema:"civil minute"`
	Second      float64 `json:"second,omitempty" jsonschema:"civil second"`
	OffsetHours float64 `json:"offset_hours" jsonschema:"UTC offset in hours, e.g. 5.5"`

	Latitude  *float64 `json:"latitude,omitempty" jsonschema:"geographic latitude in degrees, north positive"`
	Longitude *float64 `json:"longitude,omitempty" jsonschema:"geographic longitude in degrees, east positive"`
	Place     string   `json:"place,omitempty" jsonschema:"place name to geocode when coordinates are absent"`

	ZodiacMode  string `json:"zodiac_mode,omitempty" jsonschema:"tropical or sidereal (default sidereal)"`
	HouseSystem string `json:"house_system,omitempty" jsonschema:"whole-sign, equal, or placidus (default whole-sign)"`
}

// chartRequest resolves a birth input into an assembler request.
func (e Engine) chartRequest(ctx context.Context, input BirthInput) (chart.Request, error) {
	moment, err := julian.NewMoment(input.Year, input.Month, input.Day, input.Hour, input.Minute, input.Second, input.OffsetHours)
	if err != nil {
		return chart.Request{}, codedError("invalid birth moment", err)
	}

	location, err := e.chartLocation(ctx, input.Latitude, input.Longitude, input.Place)
	if err != nil {
		return chart.Request{}, err
	}

	mode, err := parseZodiacMode(input.ZodiacMode)
	if err != nil {
		return chart.Request{}, err
	}
	system, err := parseHouseSystem(input.HouseSystem)
	if err != nil {
		return chart.Request{}, err
	}

	return chart.Request{
		Moment:   moment,
		Location: location,
		Mode:     mode,
		System:   system,
	}, nil
}

// chartLocation resolves coordinates or a place name into a validated
// location. Coordinates win when both are present.
func (e Engine) chartLocation(ctx context.Context, latitude, longitude *float64, place string) (astro.Location, error) {
	switch {
	case latitude != nil && longitude != nil:
		location, err := astro.NewLocation(*latitude, *longitude)
		if err != nil {
			return astro.Location{}, codedError("invalid coordinates", err)
		}
		return location, nil
	case strings.TrimSpace(place) != "":
		if e.Resolver == nil {
			return astro.Location{}, fmt.Errorf("no geocoder configured for place lookup")
		}
		resolved, err := e.Resolver.Resolve(ctx, place)
		if err != nil {
			return astro.Location{}, codedError("resolve place", err)
		}
		return resolved.Location, nil
	default:
		return astro.Location{}, fmt.Errorf("either coordinates or a place name is required")
	}
}

func parseZodiacMode(value string) (astro.ZodiacMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "sidereal":
		return astro.ModeSidereal, nil
	case "tropical":
		return astro.ModeTropical, nil
	default:
		return 0, fmt.Errorf("invalid zodiac mode %q: must be 'tropical' or 'sidereal'", value)
	}
}

func parseHouseSystem(value string) (houses.System, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "whole-sign", "whole_sign":
		return houses.SystemWholeSign, nil
	case "equal":
		return houses.SystemEqual, nil
	case "placidus":
		return houses.SystemPlacidus, nil
	default:
		return 0, fmt.Errorf("invalid house system %q: must be 'whole-sign', 'equal', or 'placidus'", value)
	}
}

func parseDashaLevel(value string) (dasha.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "maha":
		return dasha.LevelMaha, nil
	case "", "antar":
		return dasha.LevelAntar, nil
	case "pratyantar":
		return dasha.LevelPratyantar, nil
	default:
		return 0, fmt.Errorf("invalid dasha depth %q: must be 'maha', 'antar', or 'pratyantar'", value)
	}
}

// codedError wraps an engine error with the boundary code so MCP clients
// can branch without parsing prose.
func codedError(action string, err error) error {
	return fmt.Errorf("%s: [%s] %w", action, enginerrors.CodeOf(err), err)
}

// PlacementResult is one body placement in tool output.
type PlacementResult struct {
	Body              string  `json:"body" jsonschema:"celestial body name"`
	Longitude         float64 `json:"longitude" jsonschema:"ecliptic longitude in [0,360)"`
	Latitude          float64 `json:"latitude" jsonschema:"ecliptic latitude in degrees"`
	Distance          float64 `json:"distance,omitempty" jsonschema:"distance in AU"`
	DailyMotion       float64 `json:"daily_motion" jsonschema:"signed daily motion in degrees"`
	Retrograde        bool    `json:"retrograde" jsonschema:"whether the body moves backwards"`
	Approximate       bool    `json:"approximate,omitempty" jsonschema:"whether the position is an approximation"`
	Sign              string  `json:"sign" jsonschema:"zodiac sign"`
	DegreeInSign      float64 `json:"degree_in_sign" jsonschema:"degrees into the sign [0,30)"`
	House             int     `json:"house" jsonschema:"occupied house (1-12)"`
	Nakshatra         string  `json:"nakshatra" jsonschema:"lunar mansion"`
	NakshatraFraction float64 `json:"nakshatra_fraction" jsonschema:"fraction of the mansion traversed [0,1)"`
	Dignity           string  `json:"dignity,omitempty" jsonschema:"rulership status for classical bodies"`
}

// AspectResult is one aspect in tool output.
type AspectResult struct {
	First      string  `json:"first" jsonschema:"first body"`
	Second     string  `json:"second" jsonschema:"second body"`
	Type       string  `json:"type" jsonschema:"aspect type"`
	Separation float64 `json:"separation" jsonschema:"angular separation in [0,180]"`
	Orb        float64 `json:"orb" jsonschema:"deviation from the exact aspect angle"`
}

// ChartResult is the shared chart representation in tool output.
type ChartResult struct {
	JulianDay    float64           `json:"julian_day" jsonschema:"instant as a fractional Julian day"`
	ZodiacMode   string            `json:"zodiac_mode" jsonschema:"tropical or sidereal"`
	HouseSystem  string            `json:"house_system" jsonschema:"house system used"`
	Ascendant    float64           `json:"ascendant" jsonschema:"ascendant longitude"`
	MC           float64           `json:"mc" jsonschema:"midheaven longitude"`
	Cusps        []float64         `json:"cusps" jsonschema:"twelve house cusp longitudes, house 1 first"`
	UsedFallback bool              `json:"used_fallback,omitempty" jsonschema:"whether whole-sign cusps were substituted"`
	Placements   []PlacementResult `json:"placements" jsonschema:"body placements"`
	Aspects      []AspectResult    `json:"aspects" jsonschema:"aspects between placed bodies"`
}

func modeLabel(mode astro.ZodiacMode) string {
	if mode == astro.ModeTropical {
		return "tropical"
	}
	return "sidereal"
}

func chartResult(c chart.Chart) ChartResult {
	result := ChartResult{
		JulianDay:    float64(c.Day),
		ZodiacMode:   modeLabel(c.Mode),
		HouseSystem:  c.Houses.System.String(),
		Ascendant:    c.Houses.Ascendant,
		MC:           c.Houses.MC,
		Cusps:        append([]float64(nil), c.Houses.Cusps[:]...),
		UsedFallback: c.Houses.UsedFallback,
		Placements:   make([]PlacementResult, 0, len(c.Placements)),
		Aspects:      make([]AspectResult, 0, len(c.Aspects)),
	}
	for _, placement := range c.Placements {
		result.Placements = append(result.Placements, placementResult(placement))
	}
	for _, a := range c.Aspects {
		result.Aspects = append(result.Aspects, aspectResult(a))
	}
	return result
}

func placementResult(placement chart.Placement) PlacementResult {
	result := PlacementResult{
		Body:              placement.Body.String(),
		Longitude:         placement.Position.Longitude,
		Latitude:          placement.Position.Latitude,
		Distance:          placement.Position.Distance,
		DailyMotion:       placement.Position.DailyMotion,
		Retrograde:        placement.Position.Retrograde(),
		Approximate:       placement.Position.Approximate,
		Sign:              placement.Sign.String(),
		DegreeInSign:      placement.DegreeInSign,
		House:             placement.House,
		Nakshatra:         placement.Nakshatra.String(),
		NakshatraFraction: placement.NakshatraFraction,
	}
	for _, body := range astro.ClassicalBodies {
		if body == placement.Body {
			result.Dignity = dignity.Evaluate(placement.Body, placement.Sign).String()
			break
		}
	}
	return result
}

func aspectResult(a aspect.Aspect) AspectResult {
	return AspectResult{
		First:      a.First.String(),
		Second:     a.Second.String(),
		Type:       a.Type.String(),
		Separation: a.Separation,
		Orb:        a.Orb,
	}
}

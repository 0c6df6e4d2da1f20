// Package houses computes the ascendant and the twelve house cusps for an
// instant and location under a selectable house system.
package houses

import (
	"errors"
	"fmt"
	"math"

	"github.com/louisbranch/jyotish-engine/internal/astro"
	"github.com/louisbranch/jyotish-engine/internal/julian"
)

// ErrDegenerateLatitude indicates a quadrant house system is numerically
// undefined at the requested latitude. Callers may retry with
// FallbackWholeSign to receive flagged whole-sign cusps instead.
var ErrDegenerateLatitude = errors.New("quadrant house system undefined at this latitude")

// ErrUnknownSystem indicates an unsupported house system identifier.
var ErrUnknownSystem = errors.New("unknown house system")

// quadrantLatitudeLimit is the absolute latitude beyond which Placidus
// semi-arcs stop being solvable (circumpolar ecliptic degrees).
const quadrantLatitudeLimit = 66.0

// System selects the house division method.
type System int

const (
	SystemWholeSign System = iota
	SystemEqual
	SystemPlacidus
)

func (s System) String() string {
	switch s {
	case SystemWholeSign:
		return "whole-sign"
	case SystemEqual:
		return "equal"
	case SystemPlacidus:
		return "placidus"
	default:
		return "unknown"
	}
}

// Request describes one house computation.
type Request struct {
	Day      julian.Day
	Location astro.Location
	System   System
	// FallbackWholeSign switches to whole-sign cusps instead of failing
	// when the requested quadrant system is degenerate at the latitude.
	// The substitution is recorded on the result, never silent.
	FallbackWholeSign bool
}

// Result holds the ascendant, midheaven, and the twelve cusp longitudes.
// Cusps[0] is house 1. Walking the cusps in order modulo 360 covers the
// full circle exactly once.
type Result struct {
	System    System
	Ascendant float64
	MC        float64
	Cusps     [12]float64
	// UsedFallback reports that whole-sign cusps were substituted for a
	// degenerate quadrant request.
	UsedFallback bool
}

// Calculate computes the ascendant and house cusps for a request.
func Calculate(request Request) (Result, error) {
	ramc := localSiderealTime(request.Day, request.Location.Longitude)
	obliquity := meanObliquity(request.Day)
	ascendant := ascendantLongitude(ramc, obliquity, request.Location.Latitude)
	mc := equatorialToEclipticLongitude(ramc, obliquity)

	switch request.System {
	case SystemWholeSign:
		return wholeSignResult(SystemWholeSign, ascendant, mc, false), nil
	case SystemEqual:
		result := Result{System: SystemEqual, Ascendant: ascendant, MC: mc}
		for i := range result.Cusps {
			result.Cusps[i] = astro.Normalize(ascendant + float64(i)*30)
		}
		return result, nil
	case SystemPlacidus:
		if math.Abs(request.Location.Latitude) >= quadrantLatitudeLimit {
			if request.FallbackWholeSign {
				return wholeSignResult(SystemPlacidus, ascendant, mc, true), nil
			}
			return Result{}, fmt.Errorf("%w: latitude %.2f", ErrDegenerateLatitude, request.Location.Latitude)
		}
		return placidusResult(ramc, obliquity, request.Location.Latitude, ascendant, mc)
	default:
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownSystem, request.System)
	}
}

func wholeSignResult(system System, ascendant, mc float64, fallback bool) Result {
	result := Result{
		System:       system,
		Ascendant:    ascendant,
		MC:           mc,
		UsedFallback: fallback,
	}
	first := math.Floor(astro.Normalize(ascendant)/30) * 30
	for i := range result.Cusps {
		result.Cusps[i] = astro.Normalize(first + float64(i)*30)
	}
	return result
}

// placidusResult solves the four intermediate cusps by iterating the
// semi-arc condition on local sidereal time, then mirrors them across the
// horizon for the remaining houses.
func placidusResult(ramc, obliquity, latitude, ascendant, mc float64) (Result, error) {
	cusp11, err := placidusCusp(ramc, obliquity, latitude, 30, 1.0/3.0, false)
	if err != nil {
		return Result{}, err
	}
	cusp12, err := placidusCusp(ramc, obliquity, latitude, 60, 2.0/3.0, false)
	if err != nil {
		return Result{}, err
	}
	cusp2, err := placidusCusp(ramc, obliquity, latitude, 120, 2.0/3.0, true)
	if err != nil {
		return Result{}, err
	}
	cusp3, err := placidusCusp(ramc, obliquity, latitude, 150, 1.0/3.0, true)
	if err != nil {
		return Result{}, err
	}

	result := Result{System: SystemPlacidus, Ascendant: ascendant, MC: mc}
	result.Cusps[0] = astro.Normalize(ascendant)
	result.Cusps[1] = cusp2
	result.Cusps[2] = cusp3
	result.Cusps[3] = astro.Normalize(mc + 180)
	result.Cusps[4] = astro.Normalize(cusp11 + 180)
	result.Cusps[5] = astro.Normalize(cusp12 + 180)
	result.Cusps[6] = astro.Normalize(ascendant + 180)
	result.Cusps[7] = astro.Normalize(cusp2 + 180)
	result.Cusps[8] = astro.Normalize(cusp3 + 180)
	result.Cusps[9] = astro.Normalize(mc)
	result.Cusps[10] = cusp11
	result.Cusps[11] = cusp12
	return result, nil
}

// placidusCusp iterates the Placidus condition RA = RAMC + f*SA for one
// intermediate cusp and converts the converged right ascension to an
// ecliptic longitude. offset seeds the iteration; nocturnal selects the
// mirrored condition used for houses 2 and 3.
func placidusCusp(ramc, obliquity, latitude, offset, fraction float64, nocturnal bool) (float64, error) {
	tanPhi := math.Tan(latitude * radPerDeg)
	tanEps := math.Tan(obliquity * radPerDeg)

	ra := ramc + offset
	for i := 0; i < 50; i++ {
		arg := math.Sin(ra*radPerDeg) * tanEps * tanPhi
		if math.Abs(arg) >= 1 {
			return 0, fmt.Errorf("%w: latitude %.2f", ErrDegenerateLatitude, latitude)
		}
		var next float64
		if nocturnal {
			next = ramc + 180 - fraction*math.Acos(arg)*degPerRad
		} else {
			next = ramc + fraction*math.Acos(-arg)*degPerRad
		}
		if math.Abs(next-ra) < 1e-7 {
			ra = next
			break
		}
		ra = next
	}
	return equatorialToEclipticLongitude(ra, obliquity), nil
}

const (
	radPerDeg = math.Pi / 180
	degPerRad = 180 / math.Pi
)

// localSiderealTime returns the right ascension of the local meridian in
// degrees for an instant and geographic longitude (east positive).
func localSiderealTime(day julian.Day, longitude float64) float64 {
	d := float64(day) - 2451545.0
	t := d / 36525.0
	gmst := 280.46061837 + 360.98564736629*d + 0.000387933*t*t - t*t*t/38710000
	return astro.Normalize(gmst + longitude)
}

// meanObliquity returns the mean obliquity of the ecliptic in degrees.
func meanObliquity(day julian.Day) float64 {
	t := (float64(day) - 2451545.0) / 36525.0
	return 23.43929111 - 0.01300417*t - 1.638e-7*t*t + 5.036e-7*t*t*t
}

// ascendantLongitude returns the ecliptic longitude rising on the eastern
// horizon for a meridian right ascension, obliquity, and latitude.
func ascendantLongitude(ramc, obliquity, latitude float64) float64 {
	ramcRad := ramc * radPerDeg
	epsRad := obliquity * radPerDeg
	phiRad := latitude * radPerDeg

	longitude := math.Atan2(
		math.Cos(ramcRad),
		-(math.Sin(ramcRad)*math.Cos(epsRad)+math.Tan(phiRad)*math.Sin(epsRad)),
	) * degPerRad
	return astro.Normalize(longitude)
}

// equatorialToEclipticLongitude converts the right ascension of a point on
// the ecliptic into its ecliptic longitude.
func equatorialToEclipticLongitude(ra, obliquity float64) float64 {
	raRad := ra * radPerDeg
	longitude := math.Atan2(math.Sin(raRad), math.Cos(raRad)*math.Cos(obliquity*radPerDeg)) * degPerRad
	return astro.Normalize(longitude)
}

// Package astro defines the shared value types for the Jyotish engine core
// logic: celestial bodies, zodiac signs, nakshatras, zodiac modes, and the
// angular arithmetic every calculator builds on.
package astro

import "errors"

// Body identifies a celestial body tracked by the engine.
type Body int

const (
	BodyUnspecified Body = iota
	BodySun
	BodyMoon
	BodyMars
	BodyMercury
	BodyJupiter
	BodyVenus
	BodySaturn
	BodyRahu
	BodyKetu
)

func (b Body) String() string {
	switch b {
	case BodySun:
		return "Sun"
	case BodyMoon:
		return "Moon"
	case BodyMars:
		return "Mars"
	case BodyMercury:
		return "Mercury"
	case BodyJupiter:
		return "Jupiter"
	case BodyVenus:
		return "Venus"
	case BodySaturn:
		return "Saturn"
	case BodyRahu:
		return "Rahu"
	case BodyKetu:
		return "Ketu"
	default:
		return "Unspecified"
	}
}

// ClassicalBodies lists the seven classical bodies in their traditional order.
var ClassicalBodies = []Body{
	BodySun, BodyMoon, BodyMars, BodyMercury, BodyJupiter, BodyVenus, BodySaturn,
}

// ChartBodies lists the bodies placed in a chart: the classical seven plus
// the lunar nodes.
var ChartBodies = []Body{
	BodySun, BodyMoon, BodyMars, BodyMercury, BodyJupiter, BodyVenus, BodySaturn,
	BodyRahu, BodyKetu,
}

// Sign identifies a zodiac sign, zero-indexed from Aries.
type Sign int

const (
	SignAries Sign = iota
	SignTaurus
	SignGemini
	SignCancer
	SignLeo
	SignVirgo
	SignLibra
	SignScorpio
	SignSagittarius
	SignCapricorn
	SignAquarius
	SignPisces
)

func (s Sign) String() string {
	names := [...]string{
		"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
		"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
	}
	if s < 0 || int(s) >= len(names) {
		return "Unknown"
	}
	return names[s]
}

// ZodiacMode selects the reference frame for mapping longitudes to signs.
type ZodiacMode int

const (
	ModeTropical ZodiacMode = iota
	ModeSidereal
)

func (m ZodiacMode) String() string {
	switch m {
	case ModeTropical:
		return "tropical"
	case ModeSidereal:
		return "sidereal"
	default:
		return "unknown"
	}
}

// ErrUnknownBody indicates a body identifier outside the supported set.
var ErrUnknownBody = errors.New("unknown celestial body")

// ErrInvalidLatitude indicates a geographic latitude outside [-90, 90].
var ErrInvalidLatitude = errors.New("latitude must be between -90 and 90")

// ErrInvalidLongitude indicates a geographic longitude outside [-180, 180].
var ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")

// Location is a validated geographic coordinate pair.
type Location struct {
	Latitude  float64
	Longitude float64
}

// NewLocation validates and constructs a Location. East longitudes and north
// latitudes are positive.
func NewLocation(latitude, longitude float64) (Location, error) {
	if latitude < -90 || latitude > 90 {
		return Location{}, ErrInvalidLatitude
	}
	if longitude < -180 || longitude > 180 {
		return Location{}, ErrInvalidLongitude
	}
	return Location{Latitude: latitude, Longitude: longitude}, nil
}

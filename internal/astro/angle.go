package astro

import "math"

// Normalize reduces an angle in degrees into [0, 360).
func Normalize(degrees float64) float64 {
	value := math.Mod(degrees, 360)
	if value < 0 {
		value += 360
	}
	return value
}

// Separation returns the angular separation between two longitudes,
// normalized into [0, 180].
func Separation(a, b float64) float64 {
	diff := math.Abs(Normalize(a) - Normalize(b))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// Arc returns the forward arc from one longitude to another, walking the
// circle in increasing direction. The result is in [0, 360).
func Arc(from, to float64) float64 {
	return Normalize(to - from)
}

// SignOf returns the zodiac sign containing a longitude.
func SignOf(longitude float64) Sign {
	return Sign(int(Normalize(longitude)/30) % 12)
}

// DegreeInSign returns the offset of a longitude within its sign, in [0, 30).
func DegreeInSign(longitude float64) float64 {
	return math.Mod(Normalize(longitude), 30)
}

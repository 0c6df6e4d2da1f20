package astro

// NakshatraSpan is the width of one lunar mansion: 13 degrees 20 minutes.
const NakshatraSpan = 360.0 / 27.0

// Nakshatra identifies one of the 27 equal lunar mansions, zero-indexed
// from Ashwini.
type Nakshatra int

func (n Nakshatra) String() string {
	names := [...]string{
		"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
		"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni",
		"Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha", "Anuradha",
		"Jyeshtha", "Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana",
		"Dhanishta", "Shatabhisha", "Purva Bhadrapada", "Uttara Bhadrapada",
		"Revati",
	}
	if n < 0 || int(n) >= len(names) {
		return "Unknown"
	}
	return names[n]
}

// NakshatraOf returns the lunar mansion containing a longitude together with
// the fraction of the mansion already traversed, in [0, 1).
func NakshatraOf(longitude float64) (Nakshatra, float64) {
	lon := Normalize(longitude)
	index := int(lon / NakshatraSpan)
	if index > 26 {
		index = 26
	}
	fraction := (lon - float64(index)*NakshatraSpan) / NakshatraSpan
	return Nakshatra(index), fraction
}

package ephemeris

import (
	"context"
	"fmt"
	"math"

	"github.com/louisbranch/jyotish-engine/internal/astro"
	"github.com/louisbranch/jyotish-engine/internal/julian"
)

// Analytic validity window, proleptic Gregorian 1800-01-01 to 2200-01-01.
const (
	minSupportedDay = julian.Day(2378496.5)
	maxSupportedDay = julian.Day(2524593.5)
)

const (
	radPerDeg = math.Pi / 180
	degPerRad = 180 / math.Pi
	kmPerAU   = 149597870.7
)

// Analytic is the production ephemeris adapter. It evaluates truncated
// analytical planetary theory: the geometric solar theory for the Sun,
// the principal lunar series for the Moon, mean orbital elements with a
// Kepler solve for the planets, and the mean lunar node for Rahu/Ketu.
// Accuracy is at the arcminute level, sufficient for sign, house, and
// nakshatra placement.
type Analytic struct {
	ayanamsa AyanamsaFunc
}

// NewAnalytic constructs the analytic provider. A nil ayanamsa selects the
// Lahiri approximation for sidereal longitudes.
func NewAnalytic(ayanamsa AyanamsaFunc) *Analytic {
	if ayanamsa == nil {
		ayanamsa = LahiriAyanamsa
	}
	return &Analytic{ayanamsa: ayanamsa}
}

// Position resolves a body at an instant. Instants outside the supported
// window and unknown bodies fail with ErrUnavailable.
func (a *Analytic) Position(ctx context.Context, body astro.Body, day julian.Day, mode astro.ZodiacMode) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}
	if day < minSupportedDay || day >= maxSupportedDay {
		return Position{}, fmt.Errorf("%w: instant %f outside supported window", ErrUnavailable, float64(day))
	}

	lon, lat, dist, err := tropicalState(body, day)
	if err != nil {
		return Position{}, err
	}

	// Central difference over one day captures retrograde loops without a
	// per-body velocity series.
	before, _, _, err := tropicalState(body, day-0.5)
	if err != nil {
		return Position{}, err
	}
	after, _, _, err := tropicalState(body, day+0.5)
	if err != nil {
		return Position{}, err
	}
	motion := signedArc(after - before)

	if mode == astro.ModeSidereal {
		lon = astro.Normalize(lon - a.ayanamsa(day))
	}

	return Position{
		Longitude:   astro.Normalize(lon),
		Latitude:    lat,
		Distance:    dist,
		DailyMotion: motion,
	}, nil
}

// tropicalState returns the tropical geocentric longitude, latitude, and
// distance of a body.
func tropicalState(body astro.Body, day julian.Day) (lon, lat, dist float64, err error) {
	t := centuriesSinceJ2000(day)
	switch body {
	case astro.BodySun:
		lon, dist = solarPosition(t)
		return lon, 0, dist, nil
	case astro.BodyMoon:
		lon, lat, dist = lunarPosition(t)
		return lon, lat, dist, nil
	case astro.BodyMercury, astro.BodyVenus, astro.BodyMars, astro.BodyJupiter, astro.BodySaturn:
		lon, lat, dist = planetPosition(body, t)
		return lon, lat, dist, nil
	case astro.BodyRahu:
		return meanLunarNode(t), 0, meanLunarDistanceAU, nil
	case astro.BodyKetu:
		return astro.Normalize(meanLunarNode(t) + 180), 0, meanLunarDistanceAU, nil
	default:
		return 0, 0, 0, fmt.Errorf("%w: body %v", ErrUnavailable, body)
	}
}

func centuriesSinceJ2000(day julian.Day) float64 {
	return (float64(day) - 2451545.0) / 36525.0
}

// solarPosition evaluates the geometric solar theory: mean longitude plus
// the equation of center.
func solarPosition(t float64) (lon, dist float64) {
	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := (357.52911 + 35999.05029*t - 0.0001537*t*t) * radPerDeg
	e := 0.016708634 - 0.000042037*t - 0.0000001267*t*t

	center := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(m) +
		(0.019993-0.000101*t)*math.Sin(2*m) +
		0.000289*math.Sin(3*m)

	trueAnomaly := m + center*radPerDeg
	dist = 1.000001018 * (1 - e*e) / (1 + e*math.Cos(trueAnomaly))
	return astro.Normalize(l0 + center), dist
}

const meanLunarDistanceAU = 0.00257

// lunarPosition evaluates the principal terms of the lunar longitude,
// latitude, and distance series.
func lunarPosition(t float64) (lon, lat, dist float64) {
	lp := 218.3164477 + 481267.88123421*t - 0.0015786*t*t
	d := (297.8501921 + 445267.1114034*t - 0.0018819*t*t) * radPerDeg
	m := (357.5291092 + 35999.0502909*t - 0.0001536*t*t) * radPerDeg
	mp := (134.9633964 + 477198.8675055*t + 0.0087414*t*t) * radPerDeg
	f := (93.2720950 + 483202.0175233*t - 0.0036539*t*t) * radPerDeg

	lon = lp +
		6.288774*math.Sin(mp) +
		1.274027*math.Sin(2*d-mp) +
		0.658314*math.Sin(2*d) +
		0.213618*math.Sin(2*mp) -
		0.185116*math.Sin(m) -
		0.114332*math.Sin(2*f) +
		0.058793*math.Sin(2*d-2*mp) +
		0.057066*math.Sin(2*d-m-mp) +
		0.053322*math.Sin(2*d+mp) +
		0.045758*math.Sin(2*d-m) -
		0.040923*math.Sin(m-mp) -
		0.034720*math.Sin(d) -
		0.030383*math.Sin(m+mp)

	lat = 5.128122*math.Sin(f) +
		0.280602*math.Sin(mp+f) +
		0.277693*math.Sin(mp-f) +
		0.173237*math.Sin(2*d-f) +
		0.055413*math.Sin(2*d+f-mp) +
		0.046271*math.Sin(2*d-f-mp)

	distKm := 385000.56 -
		20905.355*math.Cos(mp) -
		3699.111*math.Cos(2*d-mp) -
		2955.968*math.Cos(2*d)

	return astro.Normalize(lon), lat, distKm / kmPerAU
}

// meanLunarNode returns the mean ascending node of the lunar orbit. The
// node regresses, so its daily motion is negative.
func meanLunarNode(t float64) float64 {
	return astro.Normalize(125.0445479 - 1934.1362891*t + 0.0020754*t*t)
}

// orbitalElements holds mean Keplerian elements at J2000 and their
// per-century rates: semi-major axis (AU), eccentricity, inclination,
// mean longitude, longitude of perihelion, longitude of ascending node
// (all angles in degrees).
type orbitalElements struct {
	a, e, i, l, peri, node             float64
	aDot, eDot, iDot, lDot, pDot, nDot float64
}

var planetElements = map[astro.Body]orbitalElements{
	astro.BodyMercury: {
		a: 0.38709927, e: 0.20563593, i: 7.00497902,
		l: 252.25032350, peri: 77.45779628, node: 48.33076593,
		aDot: 0.00000037, eDot: 0.00001906, iDot: -0.00594749,
		lDot: 149472.67411175, pDot: 0.16047689, nDot: -0.12534081,
	},
	astro.BodyVenus: {
		a: 0.72333566, e: 0.00677672, i: 3.39467605,
		l: 181.97909950, peri: 131.60246718, node: 76.67984255,
		aDot: 0.00000390, eDot: -0.00004107, iDot: -0.00078890,
		lDot: 58517.81538729, pDot: 0.00268329, nDot: -0.27769418,
	},
	astro.BodyMars: {
		a: 1.52371034, e: 0.09339410, i: 1.84969142,
		l: -4.55343205, peri: -23.94362959, node: 49.55953891,
		aDot: 0.00001847, eDot: 0.00007882, iDot: -0.00813131,
		lDot: 19140.30268499, pDot: 0.44441088, nDot: -0.29257343,
	},
	astro.BodyJupiter: {
		a: 5.20288700, e: 0.04838624, i: 1.30439695,
		l: 34.39644051, peri: 14.72847983, node: 100.47390909,
		aDot: -0.00011607, eDot: -0.00013253, iDot: -0.00183714,
		lDot: 3034.74612775, pDot: 0.21252668, nDot: 0.20469106,
	},
	astro.BodySaturn: {
		a: 9.53667594, e: 0.05386179, i: 2.48599187,
		l: 49.95424423, peri: 92.59887831, node: 113.66242448,
		aDot: -0.00125060, eDot: -0.00050991, iDot: 0.00193609,
		lDot: 1222.49362201, pDot: -0.41897216, nDot: -0.28867794,
	},
}

// earthElements are the Earth-Moon barycenter elements used to translate
// heliocentric planet vectors into geocentric ones.
var earthElements = orbitalElements{
	a: 1.00000261, e: 0.01671123, i: -0.00001531,
	l: 100.46457166, peri: 102.93768193, node: 0,
	aDot: 0.00000562, eDot: -0.00004392, iDot: -0.01294668,
	lDot: 35999.37244981, pDot: 0.32327364, nDot: 0,
}

// planetPosition computes the geocentric ecliptic position of a planet from
// mean elements: Kepler solve per body, heliocentric vectors, then the
// Earth-relative difference.
func planetPosition(body astro.Body, t float64) (lon, lat, dist float64) {
	px, py, pz := heliocentric(planetElements[body], t)
	ex, ey, ez := heliocentric(earthElements, t)

	gx, gy, gz := px-ex, py-ey, pz-ez
	lon = astro.Normalize(math.Atan2(gy, gx) * degPerRad)
	lat = math.Atan2(gz, math.Hypot(gx, gy)) * degPerRad
	dist = math.Sqrt(gx*gx + gy*gy + gz*gz)
	return lon, lat, dist
}

// heliocentric evaluates mean elements at t centuries and returns the
// heliocentric ecliptic vector in AU.
func heliocentric(el orbitalElements, t float64) (x, y, z float64) {
	a := el.a + el.aDot*t
	e := el.e + el.eDot*t
	i := (el.i + el.iDot*t) * radPerDeg
	l := el.l + el.lDot*t
	peri := el.peri + el.pDot*t
	node := el.node + el.nDot*t

	omega := (peri - node) * radPerDeg
	nodeRad := node * radPerDeg
	m := astro.Normalize(l-peri) * radPerDeg

	ecc := solveKepler(m, e)

	xp := a * (math.Cos(ecc) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(ecc)

	cosO, sinO := math.Cos(omega), math.Sin(omega)
	cosN, sinN := math.Cos(nodeRad), math.Sin(nodeRad)
	cosI, sinI := math.Cos(i), math.Sin(i)

	x = (cosO*cosN-sinO*sinN*cosI)*xp + (-sinO*cosN-cosO*sinN*cosI)*yp
	y = (cosO*sinN+sinO*cosN*cosI)*xp + (-sinO*sinN+cosO*cosN*cosI)*yp
	z = (sinO*sinI)*xp + (cosO*sinI)*yp
	return x, y, z
}

// solveKepler iterates Newton's method on Kepler's equation. Inputs and
// output are in radians.
func solveKepler(m, e float64) float64 {
	ecc := m + e*math.Sin(m)
	for i := 0; i < 20; i++ {
		delta := (m - (ecc - e*math.Sin(ecc))) / (1 - e*math.Cos(ecc))
		ecc += delta
		if math.Abs(delta) < 1e-9 {
			break
		}
	}
	return ecc
}

// signedArc maps a longitude difference into (-180, 180].
func signedArc(diff float64) float64 {
	value := math.Mod(diff, 360)
	if value <= -180 {
		value += 360
	}
	if value > 180 {
		value -= 360
	}
	return value
}

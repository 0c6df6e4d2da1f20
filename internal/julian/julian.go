// Package julian converts civil Gregorian date/times into fractional Julian
// Day numbers and back. The conversion uses the proleptic Gregorian calendar
// throughout, without leap-second handling.
package julian

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDate indicates a civil date/time component is out of range.
var ErrInvalidDate = errors.New("invalid civil date")

// ErrInvalidOffset indicates a UTC offset outside [-12, +14] hours.
var ErrInvalidOffset = errors.New("utc offset must be between -12 and +14 hours")

// Day is a fractional Julian Day number. Its total ordering matches
// chronological order.
type Day float64

// Moment is a validated civil instant: date, time of day, and UTC offset.
// It is immutable once constructed.
type Moment struct {
	Year        int
	Month       int
	Day         int
	Hour        int
	Minute      int
	Second      float64
	OffsetHours float64
}

// NewMoment validates the civil components and constructs a Moment.
func NewMoment(year, month, day, hour, minute int, second, offsetHours float64) (Moment, error) {
	if month < 1 || month > 12 {
		return Moment{}, fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > daysInMonth(year, month) {
		return Moment{}, fmt.Errorf("%w: day %d of %d-%02d", ErrInvalidDate, day, year, month)
	}
	if hour < 0 || hour > 23 {
		return Moment{}, fmt.Errorf("%w: hour %d", ErrInvalidDate, hour)
	}
	if minute < 0 || minute > 59 {
		return Moment{}, fmt.Errorf("%w: minute %d", ErrInvalidDate, minute)
	}
	if second < 0 || second >= 60 {
		return Moment{}, fmt.Errorf("%w: second %g", ErrInvalidDate, second)
	}
	if offsetHours < -12 || offsetHours > 14 {
		return Moment{}, ErrInvalidOffset
	}
	return Moment{
		Year:        year,
		Month:       month,
		Day:         day,
		Hour:        hour,
		Minute:      minute,
		Second:      second,
		OffsetHours: offsetHours,
	}, nil
}

// ToDay converts the moment into a fractional Julian Day in Universal Time.
func (m Moment) ToDay() Day {
	a := (14 - m.Month) / 12
	y := m.Year + 4800 - a
	mo := m.Month + 12*a - 3

	jdn := m.Day + (153*mo+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045

	dayFraction := (float64(m.Hour)-12)/24 +
		float64(m.Minute)/1440 +
		m.Second/86400 -
		m.OffsetHours/24

	return Day(float64(jdn) + dayFraction)
}

// millisPerDay is the clock resolution FromDay decomposes at. A double
// holding a Julian Day near epoch carries roughly 40 microseconds of
// representation error, so anything finer than a millisecond would expose
// that noise as off-by-one civil minutes.
const millisPerDay = 86_400_000

// FromDay converts a Julian Day back into a civil moment at the given UTC
// offset. The time of day is rounded to the nearest millisecond, so
// round-tripping a Moment through ToDay and FromDay reproduces the
// original instant to that resolution.
func FromDay(day Day, offsetHours float64) (Moment, error) {
	if offsetHours < -12 || offsetHours > 14 {
		return Moment{}, ErrInvalidOffset
	}

	local := float64(day) + offsetHours/24
	z := math.Floor(local + 0.5)
	f := local + 0.5 - z

	// An instant within half a millisecond of midnight rounds up to a full
	// day and carries into the next calendar date.
	dayMillis := math.Round(f * millisPerDay)
	if dayMillis >= millisPerDay {
		dayMillis = 0
		z++
	}

	// Always invert through the Gregorian branch so the proleptic forward
	// conversion and this inverse stay symmetric for any year.
	alpha := math.Floor((z - 1867216.25) / 36524.25)
	a := z + 1 + alpha - math.Floor(alpha/4)
	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	dayOfMonth := b - d - math.Floor(30.6001*e)
	month := int(e) - 1
	if e >= 14 {
		month = int(e) - 13
	}
	year := int(c) - 4716
	if month <= 2 {
		year = int(c) - 4715
	}

	millis := int64(dayMillis)
	hour := int(millis / 3_600_000)
	millis -= int64(hour) * 3_600_000
	minute := int(millis / 60_000)
	millis -= int64(minute) * 60_000
	second := float64(millis) / 1000

	return Moment{
		Year:        year,
		Month:       month,
		Day:         int(dayOfMonth),
		Hour:        hour,
		Minute:      minute,
		Second:      second,
		OffsetHours: offsetHours,
	}, nil
}

// daysInMonth returns the day count of a proleptic Gregorian month.
func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeap(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

func isLeap(year int) bool {
	if year%400 == 0 {
		return true
	}
	if year%100 == 0 {
		return false
	}
	return year%4 == 0
}

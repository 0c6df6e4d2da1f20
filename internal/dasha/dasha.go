// Package dasha computes Vimshottari planetary period timelines anchored
// on the natal Moon's nakshatra.
package dasha

import (
	"errors"
	"fmt"

	"github.com/louisbranch/jyotish-engine/internal/astro"
	"github.com/louisbranch/jyotish-engine/internal/julian"
)

// ErrInvalidDepth indicates a subdivision depth outside the supported
// levels.
var ErrInvalidDepth = errors.New("invalid dasha depth")

// daysPerYear is the dasha year length in days. The tradition varies
// between solar and savana years; the Julian year keeps the timeline
// deterministic and within a day of either convention per decade.
const daysPerYear = 365.25

// cycleYears is the full Vimshottari cycle length.
const cycleYears = 120.0

// Level identifies a subdivision depth in the period tree.
type Level int

const (
	LevelMaha Level = iota
	LevelAntar
	LevelPratyantar
)

func (l Level) String() string {
	switch l {
	case LevelMaha:
		return "maha"
	case LevelAntar:
		return "antar"
	case LevelPratyantar:
		return "pratyantar"
	default:
		return "unknown"
	}
}

// lords is the Vimshottari lord sequence starting from Ashwini.
var lords = [9]astro.Body{
	astro.BodyKetu,
	astro.BodyVenus,
	astro.BodySun,
	astro.BodyMoon,
	astro.BodyMars,
	astro.BodyRahu,
	astro.BodyJupiter,
	astro.BodySaturn,
	astro.BodyMercury,
}

// lordYears maps each lord to its share of the 120-year cycle.
var lordYears = map[astro.Body]float64{
	astro.BodyKetu:    7,
	astro.BodyVenus:   20,
	astro.BodySun:     6,
	astro.BodyMoon:    10,
	astro.BodyMars:    7,
	astro.BodyRahu:    18,
	astro.BodyJupiter: 16,
	astro.BodySaturn:  19,
	astro.BodyMercury: 17,
}

// Period is one span of the timeline. Sub, when populated, partitions
// [Start, End) exactly.
type Period struct {
	Lord  astro.Body
	Level Level
	Start julian.Day
	End   julian.Day
	Sub   []Period
}

// Timeline is the Vimshottari result for one birth.
type Timeline struct {
	// Nakshatra is the natal Moon's lunar mansion.
	Nakshatra astro.Nakshatra
	// Balance is the unelapsed fraction of the first major period at
	// birth.
	Balance float64
	// Periods holds the nine major periods from birth onward. The first
	// starts at birth and runs for Balance of its full length.
	Periods []Period
}

// Vimshottari builds the period timeline for a natal Moon longitude and
// birth instant, subdividing down to the requested level.
func Vimshottari(moonLongitude float64, birth julian.Day, depth Level) (Timeline, error) {
	if depth < LevelMaha || depth > LevelPratyantar {
		return Timeline{}, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}

	nakshatra, fraction := astro.NakshatraOf(moonLongitude)
	startIndex := int(nakshatra) % 9
	first := lords[startIndex]

	// The first major period notionally began before birth; build the
	// full tree from that instant and clip the elapsed part away so the
	// surviving sub-periods keep their classical proportions.
	elapsed := fraction * lordYears[first] * daysPerYear
	cursor := birth - julian.Day(elapsed)

	periods := make([]Period, 0, len(lords))
	for i := range lords {
		lord := lords[(startIndex+i)%9]
		span := lordYears[lord] * daysPerYear
		period := Period{Lord: lord, Level: LevelMaha, Start: cursor, End: cursor + julian.Day(span)}
		if depth > LevelMaha {
			period.Sub = subdivide(period, LevelAntar, depth)
		}
		cursor = period.End
		if clipped, ok := clip(period, birth); ok {
			periods = append(periods, clipped)
		}
	}

	return Timeline{Nakshatra: nakshatra, Balance: 1 - fraction, Periods: periods}, nil
}

// subdivide partitions a period among the nine lords starting from its
// own lord, each child sized by its share of the cycle. The last child
// ends exactly at the parent end.
func subdivide(parent Period, level, depth Level) []Period {
	startIndex := 0
	for i, lord := range lords {
		if lord == parent.Lord {
			startIndex = i
			break
		}
	}

	total := parent.End - parent.Start
	cursor := parent.Start
	children := make([]Period, 0, len(lords))
	for i := range lords {
		lord := lords[(startIndex+i)%9]
		end := cursor + total*julian.Day(lordYears[lord]/cycleYears)
		if i == len(lords)-1 {
			end = parent.End
		}
		child := Period{Lord: lord, Level: level, Start: cursor, End: end}
		if level < depth {
			child.Sub = subdivide(child, level+1, depth)
		}
		children = append(children, child)
		cursor = end
	}
	return children
}

// clip trims a period tree to the part on or after birth. It reports
// false when the whole period elapsed before birth.
func clip(period Period, birth julian.Day) (Period, bool) {
	if period.End <= birth {
		return Period{}, false
	}
	if period.Start < birth {
		period.Start = birth
	}
	if len(period.Sub) == 0 {
		return period, true
	}
	kept := make([]Period, 0, len(period.Sub))
	for _, sub := range period.Sub {
		if clipped, ok := clip(sub, birth); ok {
			kept = append(kept, clipped)
		}
	}
	period.Sub = kept
	return period, true
}

// ActiveAt returns the chain of periods running at an instant, outermost
// first. The bool reports whether the instant falls inside the timeline.
func (t Timeline) ActiveAt(day julian.Day) ([]Period, bool) {
	var chain []Period
	periods := t.Periods
	for len(periods) > 0 {
		found := false
		for _, period := range periods {
			if day >= period.Start && day < period.End {
				chain = append(chain, period)
				periods = period.Sub
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	return chain, len(chain) > 0
}

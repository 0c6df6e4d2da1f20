package chart

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/louisbranch/jyotish-engine/internal/aspect"
	"github.com/louisbranch/jyotish-engine/internal/astro"
	"github.com/louisbranch/jyotish-engine/internal/ephemeris"
	"github.com/louisbranch/jyotish-engine/internal/houses"
	"github.com/louisbranch/jyotish-engine/internal/julian"
)

func mumbaiMoment(t *testing.T) julian.Moment {
	t.Helper()
	moment, err := julian.NewMoment(1990, 6, 15, 14, 30, 0, 5.5)
	if err != nil {
		t.Fatalf("new moment: %v", err)
	}
	return moment
}

func mumbaiLocation(t *testing.T) astro.Location {
	t.Helper()
	location, err := astro.NewLocation(19.076, 72.877)
	if err != nil {
		t.Fatalf("new location: %v", err)
	}
	return location
}

func fixedProvider() *ephemeris.Fixed {
	return ephemeris.NewFixed(map[astro.Body]ephemeris.Position{
		astro.BodySun:     {Longitude: 84, DailyMotion: 0.95},
		astro.BodyMoon:    {Longitude: 145, DailyMotion: 13.2},
		astro.BodyMars:    {Longitude: 266, DailyMotion: 0.5},
		astro.BodyMercury: {Longitude: 95, DailyMotion: -0.2},
		astro.BodyJupiter: {Longitude: 100, DailyMotion: 0.2},
		astro.BodyVenus:   {Longitude: 42, DailyMotion: 1.1},
		astro.BodySaturn:  {Longitude: 295, DailyMotion: -0.05},
		astro.BodyRahu:    {Longitude: 310, DailyMotion: -0.0529},
		astro.BodyKetu:    {Longitude: 130, DailyMotion: -0.0529},
	})
}

func TestAssembleBuildsFullChart(t *testing.T) {
	assembler := NewAssembler(fixedProvider(), Options{})
	got, err := assembler.Assemble(context.Background(), Request{
		Moment:   mumbaiMoment(t),
		Location: mumbaiLocation(t),
		Mode:     astro.ModeTropical,
		System:   houses.SystemEqual,
	})
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	if len(got.Placements) != len(astro.ChartBodies) {
		t.Fatalf("placement count = %d, want %d", len(got.Placements), len(astro.ChartBodies))
	}

	for _, placement := range got.Placements {
		if placement.House < 1 || placement.House > 12 {
			t.Fatalf("%v house = %d, want 1..12", placement.Body, placement.House)
		}
		if placement.Sign != astro.SignOf(placement.Position.Longitude) {
			t.Fatalf("%v sign mismatch", placement.Body)
		}
	}

	sun, ok := got.Placement(astro.BodySun)
	if !ok {
		t.Fatal("missing Sun placement")
	}
	if sun.Sign != astro.SignGemini {
		t.Fatalf("Sun sign = %v, want Gemini", sun.Sign)
	}

	// The chart carries its provenance.
	if got.Moment != mumbaiMoment(t) {
		t.Fatal("chart must carry the originating moment")
	}
	if got.Mode != astro.ModeTropical {
		t.Fatalf("chart mode = %v, want tropical", got.Mode)
	}
}

func TestAssembleCuspGapsSumTo360(t *testing.T) {
	assembler := NewAssembler(fixedProvider(), Options{})
	for _, system := range []houses.System{houses.SystemWholeSign, houses.SystemEqual, houses.SystemPlacidus} {
		got, err := assembler.Assemble(context.Background(), Request{
			Moment:   mumbaiMoment(t),
			Location: mumbaiLocation(t),
			Mode:     astro.ModeTropical,
			System:   system,
		})
		if err != nil {
			t.Fatalf("Assemble(%v) returned error: %v", system, err)
		}

		sum := 0.0
		for i := 0; i < 12; i++ {
			gap := astro.Arc(got.Houses.Cusps[i], got.Houses.Cusps[(i+1)%12])
			if gap <= 0 {
				t.Fatalf("%v cusp gap %d is not positive: %v", system, i+1, gap)
			}
			sum += gap
		}
		if math.Abs(sum-360) > 1e-6 {
			t.Fatalf("%v cusp gaps sum to %v, want 360", system, sum)
		}
	}
}

func TestAssembleSunMoonAspectMatchesMinorArc(t *testing.T) {
	assembler := NewAssembler(fixedProvider(), Options{})
	got, err := assembler.Assemble(context.Background(), Request{
		Moment:   mumbaiMoment(t),
		Location: mumbaiLocation(t),
		Mode:     astro.ModeTropical,
		System:   houses.SystemEqual,
	})
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	sun, _ := got.Placement(astro.BodySun)
	moon, _ := got.Placement(astro.BodyMoon)
	diff := math.Abs(sun.Position.Longitude - moon.Position.Longitude)
	want := math.Min(diff, 360-diff)

	for _, asp := range got.Aspects {
		if asp.First == astro.BodySun && asp.Second == astro.BodyMoon {
			if math.Abs(asp.Separation-want) > 1e-9 {
				t.Fatalf("Sun-Moon separation = %v, want %v", asp.Separation, want)
			}
			if asp.Type != aspect.TypeSextile {
				t.Fatalf("Sun-Moon aspect = %v, want sextile", asp.Type)
			}
			return
		}
	}
	t.Fatal("expected a Sun-Moon aspect at separation 61")
}

func TestAssemblePropagatesEphemerisFailure(t *testing.T) {
	// A provider missing Saturn must fail the whole assembly rather than
	// fabricate a placement.
	provider := ephemeris.NewFixed(map[astro.Body]ephemeris.Position{
		astro.BodySun: {Longitude: 84},
	})
	assembler := NewAssembler(provider, Options{})
	_, err := assembler.Assemble(context.Background(), Request{
		Moment:   mumbaiMoment(t),
		Location: mumbaiLocation(t),
		Mode:     astro.ModeTropical,
		System:   houses.SystemEqual,
	})
	if !errors.Is(err, ephemeris.ErrUnavailable) {
		t.Fatalf("Assemble error = %v, want %v", err, ephemeris.ErrUnavailable)
	}
}

func TestHouseOfWalksCuspsModulo360(t *testing.T) {
	var cusps [12]float64
	for i := range cusps {
		cusps[i] = astro.Normalize(350 + float64(i)*30)
	}

	tcs := []struct {
		lon  float64
		want int
	}{
		{350, 1}, // exactly on cusp 1
		{355, 1}, // inside the wrap segment
		{5, 1},   // past 0, still house 1
		{20, 2},  // exactly on cusp 2
		{349.9, 12},
		{200, 8},
	}
	for _, tc := range tcs {
		if got := HouseOf(tc.lon, cusps); got != tc.want {
			t.Fatalf("HouseOf(%v) = %d, want %d", tc.lon, got, tc.want)
		}
	}
}

func TestTransitChartSharesStructure(t *testing.T) {
	assembler := NewAssembler(fixedProvider(), Options{})
	natal, err := assembler.Assemble(context.Background(), Request{
		Moment:   mumbaiMoment(t),
		Location: mumbaiLocation(t),
		Mode:     astro.ModeSidereal,
		System:   houses.SystemWholeSign,
	})
	if err != nil {
		t.Fatalf("natal chart: %v", err)
	}

	transitMoment, err := julian.NewMoment(2024, 3, 1, 6, 0, 0, 0)
	if err != nil {
		t.Fatalf("transit moment: %v", err)
	}
	transit, err := assembler.Assemble(context.Background(), Request{
		Moment:   transitMoment,
		Location: mumbaiLocation(t),
		Mode:     astro.ModeSidereal,
		System:   houses.SystemWholeSign,
	})
	if err != nil {
		t.Fatalf("transit chart: %v", err)
	}

	if len(natal.Placements) != len(transit.Placements) {
		t.Fatal("natal and transit charts must place the same bodies")
	}
	if natal.Day == transit.Day {
		t.Fatal("charts for different instants must carry different days")
	}
}

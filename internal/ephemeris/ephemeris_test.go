package ephemeris

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/louisbranch/jyotish-engine/internal/astro"
	"github.com/louisbranch/jyotish-engine/internal/julian"
)

// mumbaiDay is 1990-06-15 14:30 UTC+5:30.
const mumbaiDay = julian.Day(2448057.875)

func TestAnalyticSunInGeminiForMumbaiExample(t *testing.T) {
	provider := NewAnalytic(nil)
	position, err := provider.Position(context.Background(), astro.BodySun, mumbaiDay, astro.ModeTropical)
	if err != nil {
		t.Fatalf("Position returned error: %v", err)
	}
	if position.Longitude < 75 || position.Longitude >= 95 {
		t.Fatalf("tropical Sun longitude = %v, want within [75, 95)", position.Longitude)
	}
	if astro.SignOf(position.Longitude) != astro.SignGemini {
		t.Fatalf("Sun sign = %v, want Gemini", astro.SignOf(position.Longitude))
	}
	if position.DailyMotion < 0.9 || position.DailyMotion > 1.1 {
		t.Fatalf("solar daily motion = %v, want near 1 degree/day", position.DailyMotion)
	}
	if position.Approximate {
		t.Fatal("analytic positions must not be flagged approximate")
	}
}

func TestAnalyticIsDeterministic(t *testing.T) {
	provider := NewAnalytic(nil)
	ctx := context.Background()
	for _, body := range astro.ChartBodies {
		first, err := provider.Position(ctx, body, mumbaiDay, astro.ModeSidereal)
		if err != nil {
			t.Fatalf("Position(%v) returned error: %v", body, err)
		}
		second, err := provider.Position(ctx, body, mumbaiDay, astro.ModeSidereal)
		if err != nil {
			t.Fatalf("Position(%v) returned error: %v", body, err)
		}
		if first != second {
			t.Fatalf("Position(%v) not deterministic: %+v vs %+v", body, first, second)
		}
		if first.Longitude < 0 || first.Longitude >= 360 {
			t.Fatalf("Position(%v) longitude %v outside [0, 360)", body, first.Longitude)
		}
	}
}

func TestAnalyticSiderealSubtractsAyanamsa(t *testing.T) {
	fixed := 24.0
	provider := NewAnalytic(FixedAyanamsa(fixed))
	ctx := context.Background()

	tropical, err := provider.Position(ctx, astro.BodySun, mumbaiDay, astro.ModeTropical)
	if err != nil {
		t.Fatalf("tropical position: %v", err)
	}
	sidereal, err := provider.Position(ctx, astro.BodySun, mumbaiDay, astro.ModeSidereal)
	if err != nil {
		t.Fatalf("sidereal position: %v", err)
	}

	want := astro.Normalize(tropical.Longitude - fixed)
	if math.Abs(sidereal.Longitude-want) > 1e-9 {
		t.Fatalf("sidereal longitude = %v, want %v", sidereal.Longitude, want)
	}
}

func TestAnalyticNodesOpposeAndRegress(t *testing.T) {
	provider := NewAnalytic(nil)
	ctx := context.Background()

	rahu, err := provider.Position(ctx, astro.BodyRahu, mumbaiDay, astro.ModeTropical)
	if err != nil {
		t.Fatalf("rahu position: %v", err)
	}
	ketu, err := provider.Position(ctx, astro.BodyKetu, mumbaiDay, astro.ModeTropical)
	if err != nil {
		t.Fatalf("ketu position: %v", err)
	}

	if sep := astro.Separation(rahu.Longitude, ketu.Longitude); math.Abs(sep-180) > 1e-9 {
		t.Fatalf("node separation = %v, want 180", sep)
	}
	if !rahu.Retrograde() || !ketu.Retrograde() {
		t.Fatal("lunar nodes must regress")
	}
	if math.Abs(rahu.DailyMotion+0.0529) > 0.01 {
		t.Fatalf("node daily motion = %v, want near -0.0529", rahu.DailyMotion)
	}
}

func TestAnalyticMoonMotionIsFast(t *testing.T) {
	provider := NewAnalytic(nil)
	moon, err := provider.Position(context.Background(), astro.BodyMoon, mumbaiDay, astro.ModeTropical)
	if err != nil {
		t.Fatalf("moon position: %v", err)
	}
	if moon.DailyMotion < 11 || moon.DailyMotion > 16 {
		t.Fatalf("lunar daily motion = %v, want within [11, 16]", moon.DailyMotion)
	}
	if moon.Distance <= 0 || moon.Distance > 0.01 {
		t.Fatalf("lunar distance = %v AU, want a small positive value", moon.Distance)
	}
}

func TestAnalyticRejectsOutOfWindowInstants(t *testing.T) {
	provider := NewAnalytic(nil)
	ctx := context.Background()
	for _, day := range []julian.Day{minSupportedDay - 1, maxSupportedDay + 1} {
		_, err := provider.Position(ctx, astro.BodySun, day, astro.ModeTropical)
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("Position(%v) error = %v, want %v", day, err, ErrUnavailable)
		}
	}
}

func TestAnalyticRejectsUnknownBody(t *testing.T) {
	provider := NewAnalytic(nil)
	_, err := provider.Position(context.Background(), astro.BodyUnspecified, mumbaiDay, astro.ModeTropical)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Position error = %v, want %v", err, ErrUnavailable)
	}
}

func TestLahiriAyanamsaNearJ2000(t *testing.T) {
	ayanamsa := LahiriAyanamsa(julian.Day(2451545.0))
	if ayanamsa < 23.5 || ayanamsa > 24.2 {
		t.Fatalf("Lahiri ayanamsa at J2000 = %v, want near 23.86", ayanamsa)
	}
}

type countingProvider struct {
	inner Provider
	calls int
}

func (c *countingProvider) Position(ctx context.Context, body astro.Body, day julian.Day, mode astro.ZodiacMode) (Position, error) {
	c.calls++
	return c.inner.Position(ctx, body, day, mode)
}

func TestMemoCachesByTriple(t *testing.T) {
	counting := &countingProvider{inner: NewAnalytic(nil)}
	memo, err := NewMemo(counting, 16)
	if err != nil {
		t.Fatalf("NewMemo returned error: %v", err)
	}
	ctx := context.Background()

	first, err := memo.Position(ctx, astro.BodySun, mumbaiDay, astro.ModeTropical)
	if err != nil {
		t.Fatalf("memo position: %v", err)
	}
	second, err := memo.Position(ctx, astro.BodySun, mumbaiDay, astro.ModeTropical)
	if err != nil {
		t.Fatalf("memo position: %v", err)
	}
	if counting.calls != 1 {
		t.Fatalf("inner provider called %d times, want 1", counting.calls)
	}
	if first != second {
		t.Fatalf("cached position differs: %+v vs %+v", first, second)
	}

	// A different mode is a different key.
	if _, err := memo.Position(ctx, astro.BodySun, mumbaiDay, astro.ModeSidereal); err != nil {
		t.Fatalf("memo position: %v", err)
	}
	if counting.calls != 2 {
		t.Fatalf("inner provider called %d times, want 2", counting.calls)
	}
}

func TestMemoDoesNotCacheErrors(t *testing.T) {
	counting := &countingProvider{inner: NewAnalytic(nil)}
	memo, err := NewMemo(counting, 0)
	if err != nil {
		t.Fatalf("NewMemo returned error: %v", err)
	}
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := memo.Position(ctx, astro.BodySun, minSupportedDay-10, astro.ModeTropical)
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("memo error = %v, want %v", err, ErrUnavailable)
		}
	}
	if counting.calls != 2 {
		t.Fatalf("inner provider called %d times, want 2", counting.calls)
	}
}

func TestFixedProviderRoundTrip(t *testing.T) {
	fixture := NewFixed(map[astro.Body]Position{
		astro.BodySun:  {Longitude: 84.5, DailyMotion: 0.95},
		astro.BodyMoon: {Longitude: 372, DailyMotion: 13.2},
	})
	ctx := context.Background()

	sun, err := fixture.Position(ctx, astro.BodySun, 0, astro.ModeTropical)
	if err != nil {
		t.Fatalf("fixed position: %v", err)
	}
	if sun.Longitude != 84.5 {
		t.Fatalf("sun longitude = %v, want 84.5", sun.Longitude)
	}

	moon, err := fixture.Position(ctx, astro.BodyMoon, 0, astro.ModeTropical)
	if err != nil {
		t.Fatalf("fixed position: %v", err)
	}
	if moon.Longitude != 12 {
		t.Fatalf("moon longitude = %v, want normalized 12", moon.Longitude)
	}

	if _, err := fixture.Position(ctx, astro.BodySaturn, 0, astro.ModeTropical); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("missing body error = %v, want %v", err, ErrUnavailable)
	}
}

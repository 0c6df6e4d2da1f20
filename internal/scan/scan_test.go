package scan

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/louisbranch/jyotish-engine/internal/astro"
	"github.com/louisbranch/jyotish-engine/internal/chart"
	"github.com/louisbranch/jyotish-engine/internal/ephemeris"
	"github.com/louisbranch/jyotish-engine/internal/houses"
	"github.com/louisbranch/jyotish-engine/internal/julian"
)

const startDay = julian.Day(2448057.875)

func testScanner(bodies map[astro.Body]ephemeris.Position) *Scanner {
	return NewScanner(chart.NewAssembler(ephemeris.NewFixed(bodies), chart.Options{}))
}

func fullBodies() map[astro.Body]ephemeris.Position {
	positions := make(map[astro.Body]ephemeris.Position, len(astro.ChartBodies))
	for i, body := range astro.ChartBodies {
		positions[body] = ephemeris.Position{Longitude: float64(i) * 37, DailyMotion: 1}
	}
	return positions
}

func testLocation(t *testing.T) astro.Location {
	t.Helper()
	location, err := astro.NewLocation(19.076, 72.877)
	if err != nil {
		t.Fatalf("new location: %v", err)
	}
	return location
}

func TestRunReturnsOrderedSamples(t *testing.T) {
	scanner := testScanner(fullBodies())
	request := Request{
		Start:    startDay,
		End:      startDay + 9,
		StepDays: 1,
		Location: testLocation(t),
		Mode:     astro.ModeTropical,
		System:   houses.SystemWholeSign,
		Workers:  4,
	}

	got, err := scanner.Run(context.Background(), request)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("sample count = %d, want 10", len(got))
	}
	for i, sample := range got {
		want := startDay + julian.Day(i)
		if math.Abs(float64(sample.Day-want)) > 1e-9 {
			t.Fatalf("sample %d day = %v, want %v", i, sample.Day, want)
		}
		if len(sample.Chart.Placements) != len(astro.ChartBodies) {
			t.Fatalf("sample %d has %d placements, want %d", i, len(sample.Chart.Placements), len(astro.ChartBodies))
		}
	}
}

func TestRunFractionalStep(t *testing.T) {
	scanner := testScanner(fullBodies())
	got, err := scanner.Run(context.Background(), Request{
		Start:    startDay,
		End:      startDay + 1,
		StepDays: 0.25,
		Location: testLocation(t),
		System:   houses.SystemEqual,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("sample count = %d, want 5", len(got))
	}
}

func TestRunInvalidRange(t *testing.T) {
	scanner := testScanner(fullBodies())
	tests := []struct {
		name    string
		request Request
	}{
		{"zero step", Request{Start: startDay, End: startDay + 1, StepDays: 0}},
		{"negative step", Request{Start: startDay, End: startDay + 1, StepDays: -1}},
		{"inverted range", Request{Start: startDay + 1, End: startDay, StepDays: 1}},
		{"oversized range", Request{Start: startDay, End: startDay + 200_000, StepDays: 1}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test.request.Location = testLocation(t)
			if _, err := scanner.Run(context.Background(), test.request); !errors.Is(err, ErrInvalidRange) {
				t.Fatalf("Run error = %v, want ErrInvalidRange", err)
			}
		})
	}
}

func TestRunPropagatesAssemblyError(t *testing.T) {
	bodies := fullBodies()
	delete(bodies, astro.BodySaturn)
	scanner := testScanner(bodies)

	_, err := scanner.Run(context.Background(), Request{
		Start:    startDay,
		End:      startDay + 3,
		StepDays: 1,
		Location: testLocation(t),
		System:   houses.SystemWholeSign,
	})
	if !errors.Is(err, ephemeris.ErrUnavailable) {
		t.Fatalf("Run error = %v, want ephemeris.ErrUnavailable", err)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	scanner := testScanner(fullBodies())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := scanner.Run(ctx, Request{
		Start:    startDay,
		End:      startDay + 30,
		StepDays: 1,
		Location: testLocation(t),
		System:   houses.SystemWholeSign,
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
}

package astro

import (
	"errors"
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tcs := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{360, 0},
		{361.5, 1.5},
		{-30, 330},
		{-720, 0},
		{725, 5},
	}
	for _, tc := range tcs {
		if got := Normalize(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Normalize(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSeparationIsSymmetricAndBounded(t *testing.T) {
	tcs := []struct {
		a, b float64
		want float64
	}{
		{10, 350, 20},
		{0, 180, 180},
		{90, 90, 0},
		{359, 1, 2},
		{75, 255, 180},
	}
	for _, tc := range tcs {
		got := Separation(tc.a, tc.b)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Separation(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
		if rev := Separation(tc.b, tc.a); math.Abs(rev-got) > 1e-9 {
			t.Fatalf("Separation is not symmetric: %v vs %v", got, rev)
		}
		if got < 0 || got > 180 {
			t.Fatalf("Separation(%v, %v) = %v outside [0, 180]", tc.a, tc.b, got)
		}
	}
}

func TestSignOf(t *testing.T) {
	tcs := []struct {
		lon  float64
		want Sign
	}{
		{0, SignAries},
		{29.999, SignAries},
		{30, SignTaurus},
		{75, SignGemini},
		{359.9, SignPisces},
		{-10, SignPisces},
	}
	for _, tc := range tcs {
		if got := SignOf(tc.lon); got != tc.want {
			t.Fatalf("SignOf(%v) = %v, want %v", tc.lon, got, tc.want)
		}
	}
}

func TestNakshatraOf(t *testing.T) {
	nak, fraction := NakshatraOf(0)
	if nak != 0 || fraction != 0 {
		t.Fatalf("NakshatraOf(0) = (%v, %v), want (Ashwini, 0)", nak, fraction)
	}

	// Middle of Bharani: one and a half spans into the circle.
	nak, fraction = NakshatraOf(1.5 * NakshatraSpan)
	if nak != 1 {
		t.Fatalf("expected Bharani, got %v", nak)
	}
	if math.Abs(fraction-0.5) > 1e-9 {
		t.Fatalf("expected fraction 0.5, got %v", fraction)
	}

	nak, _ = NakshatraOf(359.999)
	if nak != 26 {
		t.Fatalf("expected Revati near 360, got %v", nak)
	}
}

func TestNewLocationValidates(t *testing.T) {
	if _, err := NewLocation(19.076, 72.877); err != nil {
		t.Fatalf("NewLocation returned error: %v", err)
	}
	if _, err := NewLocation(91, 0); !errors.Is(err, ErrInvalidLatitude) {
		t.Fatalf("NewLocation error = %v, want %v", err, ErrInvalidLatitude)
	}
	if _, err := NewLocation(0, -181); !errors.Is(err, ErrInvalidLongitude) {
		t.Fatalf("NewLocation error = %v, want %v", err, ErrInvalidLongitude)
	}
}

func TestBodyAndSignNames(t *testing.T) {
	if BodySun.String() != "Sun" || BodyKetu.String() != "Ketu" {
		t.Fatal("unexpected body names")
	}
	if SignAries.String() != "Aries" || SignPisces.String() != "Pisces" {
		t.Fatal("unexpected sign names")
	}
	if len(ClassicalBodies) != 7 {
		t.Fatalf("expected 7 classical bodies, got %d", len(ClassicalBodies))
	}
	if len(ChartBodies) != 9 {
		t.Fatalf("expected 9 chart bodies, got %d", len(ChartBodies))
	}
}

package dasha

import (
	"errors"
	"math"
	"testing"

	"github.com/louisbranch/jyotish-engine/internal/astro"
	"github.com/louisbranch/jyotish-engine/internal/julian"
)

const birthDay = julian.Day(2448057.875)

func TestVimshottariFromAshwiniStart(t *testing.T) {
	got, err := Vimshottari(0, birthDay, LevelMaha)
	if err != nil {
		t.Fatalf("Vimshottari returned error: %v", err)
	}
	if got.Nakshatra != astro.Nakshatra(0) {
		t.Fatalf("Nakshatra = %v, want Ashwini", got.Nakshatra)
	}
	if got.Balance != 1 {
		t.Fatalf("Balance = %v, want 1", got.Balance)
	}
	if len(got.Periods) != 9 {
		t.Fatalf("period count = %d, want 9", len(got.Periods))
	}

	wantLords := []astro.Body{
		astro.BodyKetu, astro.BodyVenus, astro.BodySun, astro.BodyMoon,
		astro.BodyMars, astro.BodyRahu, astro.BodyJupiter, astro.BodySaturn,
		astro.BodyMercury,
	}
	for i, period := range got.Periods {
		if period.Lord != wantLords[i] {
			t.Fatalf("period %d lord = %v, want %v", i, period.Lord, wantLords[i])
		}
		if period.Level != LevelMaha {
			t.Fatalf("period %d level = %v, want maha", i, period.Level)
		}
	}

	first := got.Periods[0]
	if first.Start != birthDay {
		t.Fatalf("first period start = %v, want birth %v", first.Start, birthDay)
	}
	if wantEnd := birthDay + 7*365.25; math.Abs(float64(first.End-wantEnd)) > 1e-6 {
		t.Fatalf("first period end = %v, want %v", first.End, wantEnd)
	}
	last := got.Periods[len(got.Periods)-1]
	if wantEnd := birthDay + 120*365.25; math.Abs(float64(last.End-wantEnd)) > 1e-6 {
		t.Fatalf("timeline end = %v, want %v", last.End, wantEnd)
	}
}

func TestVimshottariHalfElapsedBalance(t *testing.T) {
	got, err := Vimshottari(astro.NakshatraSpan/2, birthDay, LevelMaha)
	if err != nil {
		t.Fatalf("Vimshottari returned error: %v", err)
	}
	if math.Abs(got.Balance-0.5) > 1e-12 {
		t.Fatalf("Balance = %v, want 0.5", got.Balance)
	}
	first := got.Periods[0]
	if first.Start != birthDay {
		t.Fatalf("first period start = %v, want birth", first.Start)
	}
	if want := 0.5 * 7 * 365.25; math.Abs(float64(first.End-first.Start)-want) > 1e-6 {
		t.Fatalf("first period span = %v days, want %v", float64(first.End-first.Start), want)
	}
}

func TestVimshottariLordFromNakshatra(t *testing.T) {
	tests := []struct {
		name      string
		longitude float64
		want      astro.Body
	}{
		{"ashwini ketu", 1, astro.BodyKetu},
		{"bharani venus", astro.NakshatraSpan + 1, astro.BodyVenus},
		{"rohini moon", 3*astro.NakshatraSpan + 1, astro.BodyMoon},
		{"magha restarts cycle", 9*astro.NakshatraSpan + 1, astro.BodyKetu},
		{"revati mercury", 26*astro.NakshatraSpan + 1, astro.BodyMercury},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Vimshottari(test.longitude, birthDay, LevelMaha)
			if err != nil {
				t.Fatalf("Vimshottari returned error: %v", err)
			}
			if got.Periods[0].Lord != test.want {
				t.Fatalf("first lord = %v, want %v", got.Periods[0].Lord, test.want)
			}
		})
	}
}

func TestVimshottariSubPeriodsPartitionExactly(t *testing.T) {
	got, err := Vimshottari(0, birthDay, LevelPratyantar)
	if err != nil {
		t.Fatalf("Vimshottari returned error: %v", err)
	}

	var check func(parent Period)
	check = func(parent Period) {
		if len(parent.Sub) == 0 {
			return
		}
		if len(parent.Sub) != 9 {
			t.Fatalf("%v %v has %d sub-periods, want 9", parent.Level, parent.Lord, len(parent.Sub))
		}
		if parent.Sub[0].Start != parent.Start {
			t.Fatalf("%v %v first sub starts at %v, want %v", parent.Level, parent.Lord, parent.Sub[0].Start, parent.Start)
		}
		if parent.Sub[len(parent.Sub)-1].End != parent.End {
			t.Fatalf("%v %v last sub ends at %v, want %v", parent.Level, parent.Lord, parent.Sub[len(parent.Sub)-1].End, parent.End)
		}
		for i := 1; i < len(parent.Sub); i++ {
			if parent.Sub[i].Start != parent.Sub[i-1].End {
				t.Fatalf("%v %v sub %d starts at %v, want %v", parent.Level, parent.Lord, i, parent.Sub[i].Start, parent.Sub[i-1].End)
			}
		}
		if parent.Sub[0].Lord != parent.Lord {
			t.Fatalf("%v %v first sub lord = %v, want parent lord", parent.Level, parent.Lord, parent.Sub[0].Lord)
		}
		for _, sub := range parent.Sub {
			check(sub)
		}
	}
	for _, period := range got.Periods {
		check(period)
	}
}

func TestVimshottariClipsElapsedSubPeriods(t *testing.T) {
	got, err := Vimshottari(astro.NakshatraSpan*0.9, birthDay, LevelAntar)
	if err != nil {
		t.Fatalf("Vimshottari returned error: %v", err)
	}

	first := got.Periods[0]
	if first.Start != birthDay {
		t.Fatalf("first period start = %v, want birth", first.Start)
	}
	if len(first.Sub) == 0 || len(first.Sub) >= 9 {
		t.Fatalf("first period keeps %d sub-periods, want a strict subset", len(first.Sub))
	}
	if first.Sub[0].Start != birthDay {
		t.Fatalf("first surviving sub starts at %v, want birth", first.Sub[0].Start)
	}
	if first.Sub[len(first.Sub)-1].End != first.End {
		t.Fatalf("last sub ends at %v, want %v", first.Sub[len(first.Sub)-1].End, first.End)
	}

	second := got.Periods[1]
	if len(second.Sub) != 9 {
		t.Fatalf("second period keeps %d sub-periods, want 9", len(second.Sub))
	}
}

func TestActiveAt(t *testing.T) {
	timeline, err := Vimshottari(0, birthDay, LevelAntar)
	if err != nil {
		t.Fatalf("Vimshottari returned error: %v", err)
	}

	chain, ok := timeline.ActiveAt(birthDay + 10)
	if !ok {
		t.Fatal("ActiveAt reported no active period just after birth")
	}
	if len(chain) != 2 {
		t.Fatalf("chain length = %d, want 2", len(chain))
	}
	if chain[0].Level != LevelMaha || chain[1].Level != LevelAntar {
		t.Fatalf("chain levels = %v, %v, want maha then antar", chain[0].Level, chain[1].Level)
	}
	if chain[0].Lord != astro.BodyKetu || chain[1].Lord != astro.BodyKetu {
		t.Fatalf("chain lords = %v, %v, want Ketu, Ketu", chain[0].Lord, chain[1].Lord)
	}

	if _, ok := timeline.ActiveAt(birthDay - 1); ok {
		t.Fatal("ActiveAt reported an active period before birth")
	}
	if _, ok := timeline.ActiveAt(birthDay + 121*365.25); ok {
		t.Fatal("ActiveAt reported an active period after the cycle end")
	}
}

func TestVimshottariInvalidDepth(t *testing.T) {
	if _, err := Vimshottari(0, birthDay, Level(5)); !errors.Is(err, ErrInvalidDepth) {
		t.Fatalf("Vimshottari error = %v, want ErrInvalidDepth", err)
	}
}

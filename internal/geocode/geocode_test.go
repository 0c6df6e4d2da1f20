package geocode

import (
	"context"
	"errors"
	"testing"

	"github.com/louisbranch/jyotish-engine/internal/astro"
)

func TestGazetteerResolve(t *testing.T) {
	gazetteer := DefaultGazetteer()

	tests := []struct {
		name       string
		query      string
		wantLat    float64
		wantOffset float64
	}{
		{"exact", "Mumbai", 19.076, 5.5},
		{"case insensitive", "mumbai", 19.076, 5.5},
		{"trimmed", "  London  ", 51.507, 0},
		{"southern hemisphere", "Sydney", -33.869, 10},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := gazetteer.Resolve(context.Background(), test.query)
			if err != nil {
				t.Fatalf("Resolve(%q) returned error: %v", test.query, err)
			}
			if got.Location.Latitude != test.wantLat {
				t.Fatalf("latitude = %v, want %v", got.Location.Latitude, test.wantLat)
			}
			if got.OffsetHours != test.wantOffset {
				t.Fatalf("offset = %v, want %v", got.OffsetHours, test.wantOffset)
			}
		})
	}
}

func TestGazetteerUnknownPlace(t *testing.T) {
	_, err := DefaultGazetteer().Resolve(context.Background(), "Atlantis")
	if !errors.Is(err, ErrGeocodingFailure) {
		t.Fatalf("Resolve error = %v, want ErrGeocodingFailure", err)
	}
}

func TestGazetteerHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := DefaultGazetteer().Resolve(ctx, "Mumbai"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Resolve error = %v, want context.Canceled", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		place   Place
		wantErr bool
	}{
		{"valid", Place{Location: astro.Location{Latitude: 19, Longitude: 72}, OffsetHours: 5.5}, false},
		{"latitude out of range", Place{Location: astro.Location{Latitude: 91, Longitude: 0}}, true},
		{"longitude out of range", Place{Location: astro.Location{Latitude: 0, Longitude: 181}}, true},
		{"offset too low", Place{Location: astro.Location{Latitude: 0, Longitude: 0}, OffsetHours: -12.5}, true},
		{"offset too high", Place{Location: astro.Location{Latitude: 0, Longitude: 0}, OffsetHours: 14.5}, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := Validate(test.place)
			if test.wantErr {
				if !errors.Is(err, ErrGeocodingFailure) {
					t.Fatalf("Validate error = %v, want ErrGeocodingFailure", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate returned error: %v", err)
			}
		})
	}
}

type fixedResolver struct {
	place Place
}

func (f fixedResolver) Resolve(ctx context.Context, name string) (Place, error) {
	return f.place, nil
}

func TestValidatedRejectsBadResolverOutput(t *testing.T) {
	resolver := Validated(fixedResolver{place: Place{
		Location:    astro.Location{Latitude: 120, Longitude: 0},
		OffsetHours: 0,
	}})
	if _, err := resolver.Resolve(context.Background(), "anywhere"); !errors.Is(err, ErrGeocodingFailure) {
		t.Fatalf("Resolve error = %v, want ErrGeocodingFailure", err)
	}

	good := Validated(fixedResolver{place: Place{
		Location:    astro.Location{Latitude: 19, Longitude: 72},
		OffsetHours: 5.5,
	}})
	if _, err := good.Resolve(context.Background(), "anywhere"); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
}

// Package chart parses chart command flags and prints a computed chart as JSON.
package chart

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	chartcore "github.com/louisbranch/jyotish-engine/internal/chart"
	"github.com/louisbranch/jyotish-engine/internal/ephemeris"
	"github.com/louisbranch/jyotish-engine/internal/geocode"
	"github.com/louisbranch/jyotish-engine/internal/services/mcp/domain"
)

// Config holds chart command configuration.
type Config struct {
	Birth   domain.BirthInput
	Divisor int
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	var latitude, longitude float64
	var hasCoords bool

	fs.IntVar(&cfg.Birth.Year, "year", 0, "birth year (astronomical numbering)")
	fs.IntVar(&cfg.Birth.Month, "month", 1, "birth month (1-12)")
	fs.IntVar(&cfg.Birth.Day, "day", 1, "birth day of month")
	fs.IntVar(&cfg.Birth.Hour, "hour", 0, "birth hour (0-23)")
	fs.IntVar(&cfg.Birth.Minute, "minute", 0, "birth minute")
	fs.Float64Var(&cfg.Birth.Second, "second", 0, "birth second")
	fs.Float64Var(&cfg.Birth.OffsetHours, "offset", 0, "UTC offset in hours, east positive")
	fs.Float64Var(&latitude, "lat", 0, "geographic latitude in degrees")
	fs.Float64Var(&longitude, "lon", 0, "geographic longitude in degrees")
	fs.StringVar(&cfg.Birth.Place, "place", "", "place name to geocode when coordinates are absent")
	fs.StringVar(&cfg.Birth.ZodiacMode, "mode", "", "zodiac mode: tropical or sidereal (default sidereal)")
	fs.StringVar(&cfg.Birth.HouseSystem, "system", "", "house system: whole-sign, equal, or placidus")
	fs.IntVar(&cfg.Divisor, "divisor", 1, "divisional chart divisor (1 = rashi)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "lat" || f.Name == "lon" {
			hasCoords = true
		}
	})
	if hasCoords {
		cfg.Birth.Latitude = &latitude
		cfg.Birth.Longitude = &longitude
	}
	return cfg, nil
}

// Run computes the requested chart and writes it to out as indented JSON.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	assembler := chartcore.NewAssembler(ephemeris.NewAnalytic(nil), chartcore.Options{})
	engine := domain.Engine{
		Assembler: assembler,
		Resolver:  geocode.Validated(geocode.DefaultGazetteer()),
	}

	var result any
	if cfg.Divisor > 1 {
		handler := domain.DivisionalChartHandler(engine)
		_, divisional, err := handler(ctx, nil, domain.DivisionalChartInput{BirthInput: cfg.Birth, Divisor: cfg.Divisor})
		if err != nil {
			return err
		}
		result = divisional
	} else {
		handler := domain.ChartComputeHandler(engine)
		_, computed, err := handler(ctx, nil, domain.ChartComputeInput{BirthInput: cfg.Birth})
		if err != nil {
			return err
		}
		result = computed
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	return nil
}

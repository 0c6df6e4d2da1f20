package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/jyotish-engine/internal/astro"
	"github.com/louisbranch/jyotish-engine/internal/julian"
	"github.com/louisbranch/jyotish-engine/internal/scan"
)

// CivilDate is a calendar date with a UTC offset for scan boundaries.
type CivilDate struct {
	Year        int     `json:"year" jsonschema:"civil year"`
	Month       int     `json:"month" jsonschema:"civil month (1-12)"`
	Day         int     `json:"day" jsonschema:"civil day of month"`
	OffsetHours float64 `json:"offset_hours,omitempty" jsonschema:"UTC offset in hours"`
}

// TransitScanInput represents the MCP tool input for transit scans.
type TransitScanInput struct {
	Start CivilDate `json:"start" jsonschema:"first instant of the scan"`
	End   CivilDate `json:"end" jsonschema:"last instant of the scan"`
	// StepDays defaults to one sample per day.
	StepDays float64 `json:"step_days,omitempty" jsonschema:"sample spacing in days (default 1)"`

	Latitude  *float64 `json:"latitude,omitempty" jsonschema:"geographic latitude in degrees"`
	Longitude *float64 `json:"longitude,omitempty" jsonschema:"geographic longitude in degrees"`
	Place     string   `json:"place,omitempty" jsonschema:"place name to geocode when coordinates are absent"`

	ZodiacMode  string `json:"zodiac_mode,omitempty" jsonschema:"tropical or sidereal (default sidereal)"`
	HouseSystem string `json:"house_system,omitempty" jsonschema:"whole-sign, equal, or placidus (default whole-sign)"`
}

// TransitSample is one scanned instant in tool output.
type TransitSample struct {
	JulianDay  float64           `json:"julian_day" jsonschema:"sample instant as a Julian day"`
	Ascendant  float64           `json:"ascendant" jsonschema:"ascendant longitude"`
	Placements []PlacementResult `json:"placements" jsonschema:"body placements at the instant"`
	Aspects    []AspectResult    `json:"aspects" jsonschema:"aspects at the instant"`
}

// TransitScanResult represents the MCP tool output for transit scans.
type TransitScanResult struct {
	Samples []TransitSample `json:"samples" jsonschema:"chronologically ordered samples"`
}

// TransitScanTool defines the MCP tool schema for transit scans.
func TransitScanTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "transit_scan",
		Description: "Assembles transit charts across a date range at a fixed step",
	}
}

// TransitScanHandler expands the date range and runs the scanner.
func TransitScanHandler(engine Engine) mcp.ToolHandlerFor[TransitScanInput, TransitScanResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TransitScanInput) (*mcp.CallToolResult, TransitScanResult, error) {
		start, err := scanBoundary(input.Start)
		if err != nil {
			return nil, TransitScanResult{}, err
		}
		end, err := scanBoundary(input.End)
		if err != nil {
			return nil, TransitScanResult{}, err
		}

		location, err := engine.scanLocation(ctx, input)
		if err != nil {
			return nil, TransitScanResult{}, err
		}
		mode, err := parseZodiacMode(input.ZodiacMode)
		if err != nil {
			return nil, TransitScanResult{}, err
		}
		system, err := parseHouseSystem(input.HouseSystem)
		if err != nil {
			return nil, TransitScanResult{}, err
		}

		step := input.StepDays
		if step == 0 {
			step = 1
		}

		samples, err := engine.Scanner.Run(ctx, scan.Request{
			Start:    start,
			End:      end,
			StepDays: step,
			Location: location,
			Mode:     mode,
			System:   system,
		})
		if err != nil {
			return nil, TransitScanResult{}, codedError("scan transits", err)
		}

		result := TransitScanResult{Samples: make([]TransitSample, 0, len(samples))}
		for _, sample := range samples {
			out := TransitSample{
				JulianDay:  float64(sample.Day),
				Ascendant:  sample.Chart.Houses.Ascendant,
				Placements: make([]PlacementResult, 0, len(sample.Chart.Placements)),
				Aspects:    make([]AspectResult, 0, len(sample.Chart.Aspects)),
			}
			for _, placement := range sample.Chart.Placements {
				out.Placements = append(out.Placements, placementResult(placement))
			}
			for _, a := range sample.Chart.Aspects {
				out.Aspects = append(out.Aspects, aspectResult(a))
			}
			result.Samples = append(result.Samples, out)
		}
		return nil, result, nil
	}
}

func scanBoundary(date CivilDate) (julian.Day, error) {
	moment, err := julian.NewMoment(date.Year, date.Month, date.Day, 0, 0, 0, date.OffsetHours)
	if err != nil {
		return 0, codedError("invalid scan boundary", err)
	}
	return moment.ToDay(), nil
}

func (e Engine) scanLocation(ctx context.Context, input TransitScanInput) (astro.Location, error) {
	return e.chartLocation(ctx, input.Latitude, input.Longitude, input.Place)
}

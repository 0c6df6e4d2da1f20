package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/jyotish-engine/internal/ashtakavarga"
	"github.com/louisbranch/jyotish-engine/internal/astro"
	"github.com/louisbranch/jyotish-engine/internal/dasha"
)

// DashaPeriodsInput represents the MCP tool input for Vimshottari
// periods.
type DashaPeriodsInput struct {
	BirthInput
	Depth string `json:"depth,omitempty" jsonschema:"subdivision depth: maha, antar, or pratyantar (default antar)"`
}

// The period structs mirror the three subdivision levels explicitly so
// the tool's output schema stays acyclic.

// DashaPratyantarPeriod is one pratyantar dasha in tool output.
type DashaPratyantarPeriod struct {
	Lord     string  `json:"lord" jsonschema:"ruling body"`
	StartDay float64 `json:"start_day" jsonschema:"period start as a Julian day"`
	EndDay   float64 `json:"end_day" jsonschema:"period end as a Julian day"`
}

// DashaAntarPeriod is one antar dasha; Pratyantar partitions it exactly
// when present.
type DashaAntarPeriod struct {
	Lord       string                  `json:"lord" jsonschema:"ruling body"`
	StartDay   float64                 `json:"start_day" jsonschema:"period start as a Julian day"`
	EndDay     float64                 `json:"end_day" jsonschema:"period end as a Julian day"`
	Pratyantar []DashaPratyantarPeriod `json:"pratyantar,omitempty" jsonschema:"pratyantar periods partitioning this one"`
}

// DashaMahaPeriod is one maha dasha; Antar partitions it exactly when
// present.
type DashaMahaPeriod struct {
	Lord     string             `json:"lord" jsonschema:"ruling body"`
	StartDay float64            `json:"start_day" jsonschema:"period start as a Julian day"`
	EndDay   float64            `json:"end_day" jsonschema:"period end as a Julian day"`
	Antar    []DashaAntarPeriod `json:"antar,omitempty" jsonschema:"antar periods partitioning this one"`
}

// DashaPeriodsResult represents the MCP tool output for Vimshottari
// periods.
type DashaPeriodsResult struct {
	Nakshatra string            `json:"nakshatra" jsonschema:"natal Moon's lunar mansion"`
	Balance   float64           `json:"balance" jsonschema:"unelapsed fraction of the first major period"`
	Periods   []DashaMahaPeriod `json:"periods" jsonschema:"major periods from birth onward"`
}

// DashaPeriodsTool defines the MCP tool schema for Vimshottari periods.
func DashaPeriodsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "dasha_periods",
		Description: "Computes the Vimshottari dasha timeline anchored on the natal Moon",
	}
}

// DashaPeriodsHandler assembles the chart and partitions the Vimshottari
// cycle.
func DashaPeriodsHandler(engine Engine) mcp.ToolHandlerFor[DashaPeriodsInput, DashaPeriodsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DashaPeriodsInput) (*mcp.CallToolResult, DashaPeriodsResult, error) {
		depth, err := parseDashaLevel(input.Depth)
		if err != nil {
			return nil, DashaPeriodsResult{}, err
		}
		request, err := engine.chartRequest(ctx, input.BirthInput)
		if err != nil {
			return nil, DashaPeriodsResult{}, err
		}
		assembled, err := engine.Assembler.Assemble(ctx, request)
		if err != nil {
			return nil, DashaPeriodsResult{}, codedError("assemble chart", err)
		}
		moon, ok := assembled.Placement(astro.BodyMoon)
		if !ok {
			return nil, DashaPeriodsResult{}, fmt.Errorf("chart has no Moon placement")
		}

		timeline, err := dasha.Vimshottari(moon.Position.Longitude, assembled.Day, depth)
		if err != nil {
			return nil, DashaPeriodsResult{}, codedError("compute dasha timeline", err)
		}

		result := DashaPeriodsResult{
			Nakshatra: timeline.Nakshatra.String(),
			Balance:   timeline.Balance,
			Periods:   make([]DashaMahaPeriod, 0, len(timeline.Periods)),
		}
		for _, period := range timeline.Periods {
			result.Periods = append(result.Periods, mahaPeriod(period))
		}
		return nil, result, nil
	}
}

func mahaPeriod(period dasha.Period) DashaMahaPeriod {
	out := DashaMahaPeriod{
		Lord:     period.Lord.String(),
		StartDay: float64(period.Start),
		EndDay:   float64(period.End),
	}
	for _, sub := range period.Sub {
		out.Antar = append(out.Antar, antarPeriod(sub))
	}
	return out
}

func antarPeriod(period dasha.Period) DashaAntarPeriod {
	out := DashaAntarPeriod{
		Lord:     period.Lord.String(),
		StartDay: float64(period.Start),
		EndDay:   float64(period.End),
	}
	for _, sub := range period.Sub {
		out.Pratyantar = append(out.Pratyantar, DashaPratyantarPeriod{
			Lord:     sub.Lord.String(),
			StartDay: float64(sub.Start),
			EndDay:   float64(sub.End),
		})
	}
	return out
}

// AshtakavargaInput represents the MCP tool input for bindu tables.
type AshtakavargaInput struct {
	BirthInput
}

// BinduTable is one planet's bindu distribution across the signs.
type BinduTable struct {
	Body   string `json:"body" jsonschema:"planet the table belongs to"`
	Bindus []int  `json:"bindus" jsonschema:"bindu count per sign, Aries first"`
}

// AshtakavargaResult represents the MCP tool output for bindu tables.
type AshtakavargaResult struct {
	Tables []BinduTable `json:"tables" jsonschema:"per-planet Bhinnashtakavarga tables"`
	Sarva  []int        `json:"sarva" jsonschema:"Sarvashtakavarga sums per sign, Aries first"`
}

// AshtakavargaTool defines the MCP tool schema for bindu tables.
func AshtakavargaTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "ashtakavarga",
		Description: "Computes Bhinnashtakavarga and Sarvashtakavarga bindu tables",
	}
}

// AshtakavargaHandler assembles the chart and accumulates bindu tables.
func AshtakavargaHandler(engine Engine) mcp.ToolHandlerFor[AshtakavargaInput, AshtakavargaResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AshtakavargaInput) (*mcp.CallToolResult, AshtakavargaResult, error) {
		request, err := engine.chartRequest(ctx, input.BirthInput)
		if err != nil {
			return nil, AshtakavargaResult{}, err
		}
		assembled, err := engine.Assembler.Assemble(ctx, request)
		if err != nil {
			return nil, AshtakavargaResult{}, codedError("assemble chart", err)
		}
		computed, err := ashtakavarga.Calculate(assembled)
		if err != nil {
			return nil, AshtakavargaResult{}, codedError("compute ashtakavarga", err)
		}

		result := AshtakavargaResult{
			Tables: make([]BinduTable, 0, len(astro.ClassicalBodies)),
			Sarva:  append([]int(nil), computed.Sarva[:]...),
		}
		for _, body := range astro.ClassicalBodies {
			bindus := computed.Bhinna[body]
			result.Tables = append(result.Tables, BinduTable{
				Body:   body.String(),
				Bindus: append([]int(nil), bindus[:]...),
			})
		}
		return nil, result, nil
	}
}

package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/jyotish-engine/internal/varga"
)

// ChartComputeInput represents the MCP tool input for natal chart
// computation.
type ChartComputeInput struct {
	BirthInput
}

// ChartComputeResult represents the MCP tool output for natal chart
// computation.
type ChartComputeResult struct {
	Chart ChartResult `json:"chart" jsonschema:"assembled chart"`
}

// ChartComputeTool defines the MCP tool schema for chart computation.
func ChartComputeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "chart_compute",
		Description: "Computes a natal or transit chart for an instant and location",
	}
}

// ChartComputeHandler assembles a chart from birth data.
func ChartComputeHandler(engine Engine) mcp.ToolHandlerFor[ChartComputeInput, ChartComputeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ChartComputeInput) (*mcp.CallToolResult, ChartComputeResult, error) {
		request, err := engine.chartRequest(ctx, input.BirthInput)
		if err != nil {
			return nil, ChartComputeResult{}, err
		}
		assembled, err := engine.Assembler.Assemble(ctx, request)
		if err != nil {
			return nil, ChartComputeResult{}, codedError("assemble chart", err)
		}
		return nil, ChartComputeResult{Chart: chartResult(assembled)}, nil
	}
}

// DivisionalChartInput represents the MCP tool input for divisional
// charts.
type DivisionalChartInput struct {
	BirthInput
	Divisor int `json:"divisor" jsonschema:"divisional chart divisor, e.g. 9 for navamsa"`
}

// DivisionalPlacement is one placement of a divisional chart.
type DivisionalPlacement struct {
	Body         string  `json:"body" jsonschema:"celestial body name"`
	Longitude    float64 `json:"longitude" jsonschema:"divisional longitude"`
	Sign         string  `json:"sign" jsonschema:"divisional sign"`
	DegreeInSign float64 `json:"degree_in_sign" jsonschema:"degrees into the divisional sign"`
	House        int     `json:"house" jsonschema:"divisional house (1-12)"`
}

// DivisionalChartResult represents the MCP tool output for divisional
// charts.
type DivisionalChartResult struct {
	Divisor    int                   `json:"divisor" jsonschema:"applied divisor"`
	Name       string                `json:"name" jsonschema:"classical division name"`
	Purpose    string                `json:"purpose" jsonschema:"analysis theme of the division"`
	Ascendant  float64               `json:"ascendant" jsonschema:"divisional ascendant longitude"`
	Cusps      []float64             `json:"cusps" jsonschema:"whole-sign cusps from the divisional ascendant"`
	Placements []DivisionalPlacement `json:"placements" jsonschema:"divisional placements"`
	Aspects    []AspectResult        `json:"aspects" jsonschema:"aspects between divisional positions"`
}

// DivisionalChartTool defines the MCP tool schema for divisional charts.
func DivisionalChartTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "divisional_chart",
		Description: "Derives a classical divisional (harmonic) chart from birth data",
	}
}

// DivisionalChartHandler assembles the base chart and applies the
// requested division.
func DivisionalChartHandler(engine Engine) mcp.ToolHandlerFor[DivisionalChartInput, DivisionalChartResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DivisionalChartInput) (*mcp.CallToolResult, DivisionalChartResult, error) {
		request, err := engine.chartRequest(ctx, input.BirthInput)
		if err != nil {
			return nil, DivisionalChartResult{}, err
		}
		base, err := engine.Assembler.Assemble(ctx, request)
		if err != nil {
			return nil, DivisionalChartResult{}, codedError("assemble chart", err)
		}
		divisional, err := varga.Calculate(base, input.Divisor)
		if err != nil {
			return nil, DivisionalChartResult{}, codedError("derive divisional chart", err)
		}

		result := DivisionalChartResult{
			Divisor:    divisional.Scheme.Divisor,
			Name:       divisional.Scheme.Name,
			Purpose:    divisional.Scheme.Purpose,
			Ascendant:  divisional.Ascendant,
			Cusps:      append([]float64(nil), divisional.Cusps[:]...),
			Placements: make([]DivisionalPlacement, 0, len(divisional.Placements)),
			Aspects:    make([]AspectResult, 0, len(divisional.Aspects)),
		}
		for _, placement := range divisional.Placements {
			result.Placements = append(result.Placements, DivisionalPlacement{
				Body:         placement.Body.String(),
				Longitude:    placement.Position.Longitude,
				Sign:         placement.Sign.String(),
				DegreeInSign: placement.DegreeInSign,
				House:        placement.House,
			})
		}
		for _, a := range divisional.Aspects {
			result.Aspects = append(result.Aspects, aspectResult(a))
		}
		return nil, result, nil
	}
}

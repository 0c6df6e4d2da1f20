package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/jyotish-engine/internal/geocode"
	"github.com/louisbranch/jyotish-engine/internal/julian"
	"github.com/louisbranch/jyotish-engine/internal/platform/id"
	"github.com/louisbranch/jyotish-engine/internal/storage"
)

// BirthRecordSaveInput represents the MCP tool input for saving a birth
// record.
type BirthRecordSaveInput struct {
	// ID updates an existing record when set; otherwise one is generated.
	ID   string `json:"id,omitempty" jsonschema:"record id to update; omit to create"`
	Name string `json:"name" jsonschema:"label for the record"`
	BirthInput
}

// BirthRecordSaveResult represents the MCP tool output for saving a birth
// record.
type BirthRecordSaveResult struct {
	ID string `json:"id" jsonschema:"stored record id"`
}

// BirthRecordSaveTool defines the MCP tool schema for saving birth
// records.
func BirthRecordSaveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "birth_record_save",
		Description: "Validates and stores a natal data set for later chart computation",
	}
}

// BirthRecordSaveHandler validates birth data and persists it.
func BirthRecordSaveHandler(engine Engine) mcp.ToolHandlerFor[BirthRecordSaveInput, BirthRecordSaveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BirthRecordSaveInput) (*mcp.CallToolResult, BirthRecordSaveResult, error) {
		if engine.Records == nil {
			return nil, BirthRecordSaveResult{}, fmt.Errorf("no record store configured")
		}
		if strings.TrimSpace(input.Name) == "" {
			return nil, BirthRecordSaveResult{}, fmt.Errorf("record name is required")
		}
		if _, err := julian.NewMoment(input.Year, input.Month, input.Day, input.Hour, input.Minute, input.Second, input.OffsetHours); err != nil {
			return nil, BirthRecordSaveResult{}, codedError("invalid birth moment", err)
		}

		var place geocode.Place
		switch {
		case input.Latitude != nil && input.Longitude != nil:
			location, err := engine.chartLocation(ctx, input.Latitude, input.Longitude, "")
			if err != nil {
				return nil, BirthRecordSaveResult{}, err
			}
			place.Location = location
		case strings.TrimSpace(input.Place) != "":
			if engine.Resolver == nil {
				return nil, BirthRecordSaveResult{}, fmt.Errorf("no geocoder configured for place lookup")
			}
			resolved, err := engine.Resolver.Resolve(ctx, input.Place)
			if err != nil {
				return nil, BirthRecordSaveResult{}, codedError("resolve place", err)
			}
			place = resolved
		default:
			return nil, BirthRecordSaveResult{}, fmt.Errorf("either coordinates or a place name is required")
		}

		recordID := strings.TrimSpace(input.ID)
		if recordID == "" {
			generated, err := id.NewID()
			if err != nil {
				return nil, BirthRecordSaveResult{}, fmt.Errorf("generate record id: %w", err)
			}
			recordID = generated
		}

		record := storage.BirthRecord{
			ID:          recordID,
			Name:        strings.TrimSpace(input.Name),
			Year:        input.Year,
			Month:       input.Month,
			Day:         input.Day,
			Hour:        input.Hour,
			Minute:      input.Minute,
			Second:      input.Second,
			OffsetHours: input.OffsetHours,
			Latitude:    place.Location.Latitude,
			Longitude:   place.Location.Longitude,
			Place:       strings.TrimSpace(input.Place),
		}
		if err := engine.Records.SaveBirthRecord(ctx, record); err != nil {
			return nil, BirthRecordSaveResult{}, codedError("save birth record", err)
		}
		return nil, BirthRecordSaveResult{ID: recordID}, nil
	}
}

// BirthRecordGetInput represents the MCP tool input for loading a birth
// record.
type BirthRecordGetInput struct {
	ID string `json:"id" jsonschema:"record id returned by birth_record_save"`
	// WithChart also assembles the record's natal chart.
	WithChart   bool   `json:"with_chart,omitempty" jsonschema:"include the computed natal chart"`
	ZodiacMode  string `json:"zodiac_mode,omitempty" jsonschema:"tropical or sidereal (default sidereal)"`
	HouseSystem string `json:"house_system,omitempty" jsonschema:"whole-sign, equal, or placidus (default whole-sign)"`
}

// BirthRecordGetResult represents the MCP tool output for loading a birth
// record.
type BirthRecordGetResult struct {
	ID          string       `json:"id" jsonschema:"record id"`
	Name        string       `json:"name" jsonschema:"record label"`
	Year        int          `json:"year" jsonschema:"civil year"`
	Month       int          `json:"month" jsonschema:"civil month"`
	Day         int          `json:"day" jsonschema:"civil day"`
	Hour        int          `json:"hour" jsonschema:"civil hour"`
	Minute      int          `json:"minute" jsonschema:"civil minute"`
	Second      float64      `json:"second" jsonschema:"civil second"`
	OffsetHours float64      `json:"offset_hours" jsonschema:"UTC offset in hours"`
	Latitude    float64      `json:"latitude" jsonschema:"geographic latitude"`
	Longitude   float64      `json:"longitude" jsonschema:"geographic longitude"`
	Place       string       `json:"place,omitempty" jsonschema:"place name, when stored"`
	Chart       *ChartResult `json:"chart,omitempty" jsonschema:"natal chart when requested"`
	SnapshotID  string       `json:"snapshot_id,omitempty" jsonschema:"id of the persisted chart snapshot, when stored"`
}

// BirthRecordGetTool defines the MCP tool schema for loading birth
// records.
func BirthRecordGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "birth_record_get",
		Description: "Loads a stored natal data set, optionally with its chart",
	}
}

// BirthRecordGetHandler loads a record and optionally assembles its
// chart.
func BirthRecordGetHandler(engine Engine) mcp.ToolHandlerFor[BirthRecordGetInput, BirthRecordGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BirthRecordGetInput) (*mcp.CallToolResult, BirthRecordGetResult, error) {
		if engine.Records == nil {
			return nil, BirthRecordGetResult{}, fmt.Errorf("no record store configured")
		}
		record, err := engine.Records.GetBirthRecord(ctx, input.ID)
		if err != nil {
			return nil, BirthRecordGetResult{}, codedError("get birth record", err)
		}

		result := BirthRecordGetResult{
			ID:          record.ID,
			Name:        record.Name,
			Year:        record.Year,
			Month:       record.Month,
			Day:         record.Day,
			Hour:        record.Hour,
			Minute:      record.Minute,
			Second:      record.Second,
			OffsetHours: record.OffsetHours,
			Latitude:    record.Latitude,
			Longitude:   record.Longitude,
			Place:       record.Place,
		}
		if !input.WithChart {
			return nil, result, nil
		}

		request, err := engine.chartRequest(ctx, BirthInput{
			Year:        record.Year,
			Month:       record.Month,
			Day:         record.Day,
			Hour:        record.Hour,
			Minute:      record.Minute,
			Second:      record.Second,
			OffsetHours: record.OffsetHours,
			Latitude:    &record.Latitude,
			Longitude:   &record.Longitude,
			ZodiacMode:  input.ZodiacMode,
			HouseSystem: input.HouseSystem,
		})
		if err != nil {
			return nil, BirthRecordGetResult{}, err
		}
		assembled, err := engine.Assembler.Assemble(ctx, request)
		if err != nil {
			return nil, BirthRecordGetResult{}, codedError("assemble chart", err)
		}
		chartOut := chartResult(assembled)
		result.Chart = &chartOut

		if engine.Snapshots != nil {
			payload, err := json.Marshal(chartOut)
			if err != nil {
				return nil, BirthRecordGetResult{}, fmt.Errorf("encode chart snapshot: %w", err)
			}
			snapshotID, err := id.NewID()
			if err != nil {
				return nil, BirthRecordGetResult{}, fmt.Errorf("generate snapshot id: %w", err)
			}
			snapshot := storage.ChartSnapshot{
				ID:          snapshotID,
				RecordID:    record.ID,
				ZodiacMode:  chartOut.ZodiacMode,
				HouseSystem: chartOut.HouseSystem,
				JulianDay:   chartOut.JulianDay,
				Payload:     payload,
			}
			if err := engine.Snapshots.SaveChartSnapshot(ctx, snapshot); err != nil {
				return nil, BirthRecordGetResult{}, codedError("save chart snapshot", err)
			}
			result.SnapshotID = snapshot.ID
		}
		return nil, result, nil
	}
}

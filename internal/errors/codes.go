// Package errors maps engine sentinel errors to machine-readable codes
// for the service boundary.
package errors

import (
	stderrors "errors"

	"github.com/louisbranch/jyotish-engine/internal/ashtakavarga"
	"github.com/louisbranch/jyotish-engine/internal/astro"
	"github.com/louisbranch/jyotish-engine/internal/dasha"
	"github.com/louisbranch/jyotish-engine/internal/ephemeris"
	"github.com/louisbranch/jyotish-engine/internal/geocode"
	"github.com/louisbranch/jyotish-engine/internal/houses"
	"github.com/louisbranch/jyotish-engine/internal/julian"
	"github.com/louisbranch/jyotish-engine/internal/scan"
	"github.com/louisbranch/jyotish-engine/internal/storage"
	"github.com/louisbranch/jyotish-engine/internal/varga"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unclassified error.
	CodeUnknown Code = "UNKNOWN"

	// Input validation errors
	CodeInvalidDate      Code = "INVALID_DATE"
	CodeInvalidOffset    Code = "INVALID_UTC_OFFSET"
	CodeInvalidLatitude  Code = "INVALID_LATITUDE"
	CodeInvalidLongitude Code = "INVALID_LONGITUDE"
	CodeUnknownBody      Code = "UNKNOWN_BODY"

	// Computation errors
	CodeEphemerisUnavailable  Code = "EPHEMERIS_UNAVAILABLE"
	CodeDegenerateHouseSystem Code = "DEGENERATE_HOUSE_SYSTEM"
	CodeUnknownHouseSystem    Code = "UNKNOWN_HOUSE_SYSTEM"
	CodeUnknownDivisor        Code = "UNKNOWN_DIVISOR"
	CodeInvalidDashaDepth     Code = "INVALID_DASHA_DEPTH"
	CodeNoAshtakavargaRules   Code = "NO_ASHTAKAVARGA_RULES"
	CodeMissingPlacement      Code = "MISSING_PLACEMENT"
	CodeInvalidScanRange      Code = "INVALID_SCAN_RANGE"

	// Collaborator errors
	CodeGeocodingFailure Code = "GEOCODING_FAILURE"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// codeTable pairs each sentinel with its boundary code. Order matters
// only for readability; sentinels are disjoint.
var codeTable = []struct {
	sentinel error
	code     Code
}{
	{julian.ErrInvalidDate, CodeInvalidDate},
	{julian.ErrInvalidOffset, CodeInvalidOffset},
	{astro.ErrInvalidLatitude, CodeInvalidLatitude},
	{astro.ErrInvalidLongitude, CodeInvalidLongitude},
	{astro.ErrUnknownBody, CodeUnknownBody},
	{ephemeris.ErrUnavailable, CodeEphemerisUnavailable},
	{houses.ErrDegenerateLatitude, CodeDegenerateHouseSystem},
	{houses.ErrUnknownSystem, CodeUnknownHouseSystem},
	{varga.ErrUnknownDivisor, CodeUnknownDivisor},
	{dasha.ErrInvalidDepth, CodeInvalidDashaDepth},
	{ashtakavarga.ErrNoRules, CodeNoAshtakavargaRules},
	{ashtakavarga.ErrMissingPlacement, CodeMissingPlacement},
	{scan.ErrInvalidRange, CodeInvalidScanRange},
	{geocode.ErrGeocodingFailure, CodeGeocodingFailure},
	{storage.ErrNotFound, CodeNotFound},
}

// CodeOf classifies an error into its boundary code.
func CodeOf(err error) Code {
	for _, entry := range codeTable {
		if stderrors.Is(err, entry.sentinel) {
			return entry.code
		}
	}
	return CodeUnknown
}

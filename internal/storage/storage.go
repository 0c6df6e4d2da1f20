// Package storage defines persistence contracts for birth records and
// computed chart snapshots.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// BirthRecord stores one natal data set. The civil instant is kept in its
// original components so charts can be recomputed under any zodiac mode or
// house system later.
type BirthRecord struct {
	ID          string
	Name        string
	Year        int
	Month       int
	Day         int
	Hour        int
	Minute      int
	Second      float64
	OffsetHours float64
	Latitude    float64
	Longitude   float64
	// Place is the optional resolved place name.
	Place     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BirthRecordStore persists birth records.
type BirthRecordStore interface {
	SaveBirthRecord(ctx context.Context, record BirthRecord) error
	GetBirthRecord(ctx context.Context, id string) (BirthRecord, error)
	ListBirthRecords(ctx context.Context, limit int) ([]BirthRecord, error)
	DeleteBirthRecord(ctx context.Context, id string) error
}

// ChartSnapshot stores one computed chart, serialized as JSON, so repeat
// reads of a record do not pay for reassembly.
type ChartSnapshot struct {
	ID          string
	RecordID    string
	ZodiacMode  string
	HouseSystem string
	JulianDay   float64
	Payload     []byte
	CreatedAt   time.Time
}

// ChartSnapshotStore persists computed chart snapshots.
type ChartSnapshotStore interface {
	SaveChartSnapshot(ctx context.Context, snapshot ChartSnapshot) error
	GetChartSnapshot(ctx context.Context, id string) (ChartSnapshot, error)
	ListChartSnapshots(ctx context.Context, recordID string, limit int) ([]ChartSnapshot, error)
}

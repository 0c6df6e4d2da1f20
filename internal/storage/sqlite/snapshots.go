package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/jyotish-engine/internal/storage"
)

// SaveChartSnapshot inserts one computed chart snapshot.
func (s *Store) SaveChartSnapshot(ctx context.Context, snapshot storage.ChartSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(snapshot.ID)
	if id == "" {
		return fmt.Errorf("snapshot id is required")
	}
	recordID := strings.TrimSpace(snapshot.RecordID)
	if recordID == "" {
		return fmt.Errorf("snapshot record id is required")
	}
	if len(snapshot.Payload) == 0 {
		return fmt.Errorf("snapshot payload is required")
	}

	createdAt := snapshot.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO chart_snapshots (
		   id, record_id, zodiac_mode, house_system, julian_day, payload, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		recordID,
		snapshot.ZodiacMode,
		snapshot.HouseSystem,
		snapshot.JulianDay,
		snapshot.Payload,
		toMillis(createdAt),
	)
	if err != nil {
		return fmt.Errorf("save chart snapshot: %w", err)
	}
	return nil
}

// GetChartSnapshot loads one snapshot by id.
func (s *Store) GetChartSnapshot(ctx context.Context, id string) (storage.ChartSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return storage.ChartSnapshot{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ChartSnapshot{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.ChartSnapshot{}, fmt.Errorf("snapshot id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, record_id, zodiac_mode, house_system, julian_day, payload, created_at
		 FROM chart_snapshots WHERE id = ?`,
		id,
	)
	snapshot, err := scanSnapshot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ChartSnapshot{}, storage.ErrNotFound
		}
		return storage.ChartSnapshot{}, fmt.Errorf("get chart snapshot: %w", err)
	}
	return snapshot, nil
}

// ListChartSnapshots returns a record's snapshots newest first, up to limit.
func (s *Store) ListChartSnapshots(ctx context.Context, recordID string, limit int) ([]storage.ChartSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return nil, fmt.Errorf("snapshot record id is required")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, record_id, zodiac_mode, house_system, julian_day, payload, created_at
		 FROM chart_snapshots WHERE record_id = ?
		 ORDER BY created_at DESC, id LIMIT ?`,
		recordID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list chart snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []storage.ChartSnapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chart snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chart snapshots: %w", err)
	}
	return snapshots, nil
}

func scanSnapshot(row rowScanner) (storage.ChartSnapshot, error) {
	var snapshot storage.ChartSnapshot
	var createdAt int64
	err := row.Scan(
		&snapshot.ID,
		&snapshot.RecordID,
		&snapshot.ZodiacMode,
		&snapshot.HouseSystem,
		&snapshot.JulianDay,
		&snapshot.Payload,
		&createdAt,
	)
	if err != nil {
		return storage.ChartSnapshot{}, err
	}
	snapshot.CreatedAt = fromMillis(createdAt)
	return snapshot, nil
}

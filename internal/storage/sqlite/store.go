// Package sqlite provides a SQLite-backed store for birth records and
// chart snapshots.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	sqlitemigrate "github.com/louisbranch/jyotish-engine/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/jyotish-engine/internal/storage"
	"github.com/louisbranch/jyotish-engine/internal/storage/sqlite/migrations"
)

// Store persists birth records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite birth record store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveBirthRecord inserts or replaces one birth record.
func (s *Store) SaveBirthRecord(ctx context.Context, record storage.BirthRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(record.ID)
	if id == "" {
		return fmt.Errorf("record id is required")
	}

	createdAt := record.CreatedAt.UTC()
	updatedAt := record.UpdatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO birth_records (
		   id, name, year, month, day, hour, minute, second,
		   offset_hours, latitude, longitude, place, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   year = excluded.year,
		   month = excluded.month,
		   day = excluded.day,
		   hour = excluded.hour,
		   minute = excluded.minute,
		   second = excluded.second,
		   offset_hours = excluded.offset_hours,
		   latitude = excluded.latitude,
		   longitude = excluded.longitude,
		   place = excluded.place,
		   updated_at = excluded.updated_at`,
		id,
		strings.TrimSpace(record.Name),
		record.Year,
		record.Month,
		record.Day,
		record.Hour,
		record.Minute,
		record.Second,
		record.OffsetHours,
		record.Latitude,
		record.Longitude,
		strings.TrimSpace(record.Place),
		toMillis(createdAt),
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("save birth record: %w", err)
	}
	return nil
}

// GetBirthRecord loads one birth record by id.
func (s *Store) GetBirthRecord(ctx context.Context, id string) (storage.BirthRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.BirthRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.BirthRecord{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.BirthRecord{}, fmt.Errorf("record id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, year, month, day, hour, minute, second,
		        offset_hours, latitude, longitude, place, created_at, updated_at
		 FROM birth_records WHERE id = ?`,
		id,
	)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.BirthRecord{}, storage.ErrNotFound
		}
		return storage.BirthRecord{}, fmt.Errorf("get birth record: %w", err)
	}
	return record, nil
}

// ListBirthRecords returns records newest first, up to limit.
func (s *Store) ListBirthRecords(ctx context.Context, limit int) ([]storage.BirthRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, year, month, day, hour, minute, second,
		        offset_hours, latitude, longitude, place, created_at, updated_at
		 FROM birth_records ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list birth records: %w", err)
	}
	defer rows.Close()

	var records []storage.BirthRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan birth record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate birth records: %w", err)
	}
	return records, nil
}

// DeleteBirthRecord removes one birth record by id.
func (s *Store) DeleteBirthRecord(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("record id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, "DELETE FROM birth_records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete birth record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete birth record: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (storage.BirthRecord, error) {
	var record storage.BirthRecord
	var createdAt, updatedAt int64
	err := row.Scan(
		&record.ID,
		&record.Name,
		&record.Year,
		&record.Month,
		&record.Day,
		&record.Hour,
		&record.Minute,
		&record.Second,
		&record.OffsetHours,
		&record.Latitude,
		&record.Longitude,
		&record.Place,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return storage.BirthRecord{}, err
	}
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	return record, nil
}

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// UpsertROM registers a ROM file or refreshes an existing record. A record
// whose platform or size changed drops its hash and returns to pending.
func (s *Store) UpsertROM(ctx context.Context, slug, path string, size int64) (*ROM, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("rom path required")
	}
	if strings.TrimSpace(slug) == "" {
		return nil, errors.New("platform slug required")
	}
	timestamp := timestampNow()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO roms (platform_slug, file_path, file_size, hash_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(file_path) DO UPDATE SET
			hash_status = CASE
				WHEN roms.platform_slug != excluded.platform_slug OR roms.file_size != excluded.file_size
				THEN excluded.hash_status ELSE roms.hash_status END,
			ra_hash = CASE
				WHEN roms.platform_slug != excluded.platform_slug OR roms.file_size != excluded.file_size
				THEN NULL ELSE roms.ra_hash END,
			hash_error = CASE
				WHEN roms.platform_slug != excluded.platform_slug OR roms.file_size != excluded.file_size
				THEN NULL ELSE roms.hash_error END,
			platform_slug = excluded.platform_slug,
			file_size = excluded.file_size,
			updated_at = excluded.updated_at`,
		slug, path, size, HashStatusPending, timestamp, timestamp,
	)
	if err != nil {
		return nil, wrapErr("upsert rom", err)
	}
	rom, err := s.GetByPath(ctx, path)
	if err != nil {
		return nil, err
	}
	if rom == nil {
		return nil, fmt.Errorf("upsert rom: record for %s missing after insert", path)
	}
	return rom, nil
}

// RecordHash stores a validated RetroAchievements hash for the ROM.
func (s *Store) RecordHash(ctx context.Context, id int64, hash string) error {
	if strings.TrimSpace(hash) == "" {
		return errors.New("hash required")
	}
	timestamp := timestampNow()
	res, err := s.db.ExecContext(ctx, `
		UPDATE roms
		SET ra_hash = ?, hash_status = ?, hash_error = NULL, hashed_at = ?, updated_at = ?
		WHERE id = ?`,
		hash, HashStatusHashed, timestamp, timestamp, id,
	)
	if err != nil {
		return wrapErr("record hash", err)
	}
	return requireRow(res, id)
}

// RecordFailure marks the ROM as failed (or unsupported) and clears any
// previously stored hash.
func (s *Store) RecordFailure(ctx context.Context, id int64, status HashStatus, message string) error {
	switch status {
	case HashStatusFailed, HashStatusUnsupported:
	default:
		return fmt.Errorf("record failure: invalid status %q", status)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE roms
		SET ra_hash = NULL, hash_status = ?, hash_error = ?, hashed_at = NULL, updated_at = ?
		WHERE id = ?`,
		status, nullableString(message), timestampNow(), id,
	)
	if err != nil {
		return wrapErr("record failure", err)
	}
	return requireRow(res, id)
}

// GetByID fetches a ROM by ID. It returns nil when no record exists.
func (s *Store) GetByID(ctx context.Context, id int64) (*ROM, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+romColumns+" FROM roms WHERE id = ?", id)
	rom, err := scanROM(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("get rom %d", id), err)
	}
	return rom, nil
}

// GetByPath fetches a ROM by file path. It returns nil when no record exists.
func (s *Store) GetByPath(ctx context.Context, path string) (*ROM, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+romColumns+" FROM roms WHERE file_path = ?", path)
	rom, err := scanROM(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("get rom by path", err)
	}
	return rom, nil
}

// FindByHash returns every hashed ROM carrying the given hash.
func (s *Store) FindByHash(ctx context.Context, hash string) ([]*ROM, error) {
	hash = strings.ToLower(strings.TrimSpace(hash))
	if hash == "" {
		return nil, nil
	}
	return s.query(ctx,
		"SELECT "+romColumns+" FROM roms WHERE ra_hash = ? AND hash_status = ? ORDER BY file_path",
		hash, HashStatusHashed,
	)
}

// List returns ROMs ordered by path. An empty slug lists every platform.
func (s *Store) List(ctx context.Context, slug string) ([]*ROM, error) {
	if slug == "" {
		return s.query(ctx, "SELECT "+romColumns+" FROM roms ORDER BY file_path")
	}
	return s.query(ctx,
		"SELECT "+romColumns+" FROM roms WHERE platform_slug = ? ORDER BY file_path",
		slug,
	)
}

// Stats returns the number of ROMs per hash status.
func (s *Store) Stats(ctx context.Context) (map[HashStatus]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT hash_status, COUNT(*) FROM roms GROUP BY hash_status")
	if err != nil {
		return nil, wrapErr("catalog stats", err)
	}
	defer rows.Close()

	stats := make(map[HashStatus]int, len(allHashStatuses))
	for _, status := range allHashStatuses {
		stats[status] = 0
	}
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, wrapErr("scan stats row", err)
		}
		stats[HashStatus(status)] = count
	}
	return stats, rows.Err()
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]*ROM, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("query roms", err)
	}
	defer rows.Close()

	var roms []*ROM
	for rows.Next() {
		rom, err := scanROM(rows)
		if err != nil {
			return nil, wrapErr("scan rom", err)
		}
		roms = append(roms, rom)
	}
	return roms, rows.Err()
}

func requireRow(res sql.Result, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapErr("rows affected", err)
	}
	if affected == 0 {
		return fmt.Errorf("rom %d not found", id)
	}
	return nil
}

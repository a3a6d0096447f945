package catalog

import (
	"database/sql"
	"errors"
	"time"
)

const romColumns = "id, platform_slug, file_path, file_size, ra_hash, hash_status, hash_error, hashed_at, created_at, updated_at"

func scanROM(scanner interface{ Scan(dest ...any) error }) (*ROM, error) {
	var (
		id         int64
		slug       string
		filePath   string
		fileSize   sql.NullInt64
		raHash     sql.NullString
		statusStr  string
		hashError  sql.NullString
		hashedRaw  sql.NullString
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&slug,
		&filePath,
		&fileSize,
		&raHash,
		&statusStr,
		&hashError,
		&hashedRaw,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	rom := &ROM{
		ID:           id,
		PlatformSlug: slug,
		FilePath:     filePath,
		FileSize:     fileSize.Int64,
		RAHash:       raHash.String,
		HashStatus:   HashStatus(statusStr),
		HashError:    hashError.String,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		rom.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		rom.UpdatedAt = updated
	}
	if hashedRaw.Valid {
		if hashed, err := parseTimeString(hashedRaw.String); err == nil {
			rom.HashedAt = &hashed
		}
	}
	return rom, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func timestampNow() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

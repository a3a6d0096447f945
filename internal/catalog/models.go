package catalog

import "time"

// HashStatus represents the hashing lifecycle of a catalog ROM.
type HashStatus string

const (
	HashStatusPending     HashStatus = "pending"
	HashStatusHashed      HashStatus = "hashed"
	HashStatusFailed      HashStatus = "failed"
	HashStatusUnsupported HashStatus = "unsupported"
)

var allHashStatuses = []HashStatus{
	HashStatusPending,
	HashStatusHashed,
	HashStatusFailed,
	HashStatusUnsupported,
}

// AllHashStatuses returns every known status in display order.
func AllHashStatuses() []HashStatus {
	return append([]HashStatus(nil), allHashStatuses...)
}

// ROM is a single file tracked by the catalog.
type ROM struct {
	ID           int64
	PlatformSlug string
	FilePath     string
	FileSize     int64
	RAHash       string
	HashStatus   HashStatus
	HashError    string
	HashedAt     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsHashed reports whether the ROM carries a validated hash.
func (r *ROM) IsHashed() bool {
	return r != nil && r.HashStatus == HashStatusHashed && r.RAHash != ""
}

package testsupport

import (
	"context"
	"testing"

	"romhash/internal/catalog"
	"romhash/internal/config"
)

// MustOpenCatalog opens a catalog.Store for tests and registers cleanup.
func MustOpenCatalog(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewROM registers a ROM record for tests using the provided store.
func NewROM(t testing.TB, store *catalog.Store, slug, path string, size int64) *catalog.ROM {
	t.Helper()

	rom, err := store.UpsertROM(context.Background(), slug, path, size)
	if err != nil {
		t.Fatalf("store.UpsertROM: %v", err)
	}
	return rom
}

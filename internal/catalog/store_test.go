package catalog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"romhash/internal/catalog"
	"romhash/internal/testsupport"
)

const sampleHash = "0123456789abcdef0123456789abcdef"

func TestOpenCreatesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)

	if store.Path() != cfg.Paths.CatalogPath {
		t.Fatalf("expected path %q, got %q", cfg.Paths.CatalogPath, store.Path())
	}
	if _, err := os.Stat(cfg.Paths.CatalogPath); err != nil {
		t.Fatalf("expected catalog database to exist: %v", err)
	}

	// Reopening an existing database keeps the schema.
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	reopened, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
}

func TestOpenRejectsMismatchedSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	store.Close()

	db := openRaw(t, cfg.Paths.CatalogPath)
	if _, err := db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	db.Close()

	_, err := catalog.OpenPath(cfg.Paths.CatalogPath)
	if !errors.Is(err, catalog.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestUpsertROMRegistersAndRefreshes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()
	path := filepath.Join(testsupport.BaseDir(cfg), "roms", "game.sfc")

	rom := testsupport.NewROM(t, store, "snes", path, 1024)
	if rom.ID == 0 {
		t.Fatal("expected rom ID to be assigned")
	}
	if rom.HashStatus != catalog.HashStatusPending {
		t.Fatalf("expected pending status, got %s", rom.HashStatus)
	}

	if err := store.RecordHash(ctx, rom.ID, sampleHash); err != nil {
		t.Fatalf("RecordHash: %v", err)
	}

	same, err := store.UpsertROM(ctx, "snes", path, 1024)
	if err != nil {
		t.Fatalf("UpsertROM: %v", err)
	}
	if same.ID != rom.ID {
		t.Fatalf("expected same ID %d, got %d", rom.ID, same.ID)
	}
	if !same.IsHashed() || same.RAHash != sampleHash {
		t.Fatalf("expected unchanged file to keep hash, got %#v", same)
	}

	changed, err := store.UpsertROM(ctx, "snes", path, 2048)
	if err != nil {
		t.Fatalf("UpsertROM: %v", err)
	}
	if changed.HashStatus != catalog.HashStatusPending || changed.RAHash != "" {
		t.Fatalf("expected size change to reset hash, got %#v", changed)
	}
	if changed.FileSize != 2048 {
		t.Fatalf("expected size 2048, got %d", changed.FileSize)
	}
}

func TestUpsertROMRequiresPathAndSlug(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()

	if _, err := store.UpsertROM(ctx, "snes", "", 1); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := store.UpsertROM(ctx, "", "/roms/a.sfc", 1); err == nil {
		t.Fatal("expected error for empty slug")
	}
}

func TestRecordHashAndFindByHash(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()

	first := testsupport.NewROM(t, store, "genesis", "/roms/a.md", 10)
	second := testsupport.NewROM(t, store, "megadrive", "/roms/b.md", 10)
	testsupport.NewROM(t, store, "genesis", "/roms/c.md", 10)

	for _, id := range []int64{first.ID, second.ID} {
		if err := store.RecordHash(ctx, id, sampleHash); err != nil {
			t.Fatalf("RecordHash(%d): %v", id, err)
		}
	}

	matches, err := store.FindByHash(ctx, "  0123456789ABCDEF0123456789ABCDEF ")
	if err != nil {
		t.Fatalf("FindByHash: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].FilePath != "/roms/a.md" || matches[1].FilePath != "/roms/b.md" {
		t.Fatalf("unexpected match order: %s, %s", matches[0].FilePath, matches[1].FilePath)
	}
	if matches[0].HashedAt == nil {
		t.Fatal("expected hashed_at to be set")
	}

	none, err := store.FindByHash(ctx, "")
	if err != nil || len(none) != 0 {
		t.Fatalf("expected no matches for empty hash, got %v, %v", none, err)
	}
}

func TestRecordFailureClearsHash(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()

	rom := testsupport.NewROM(t, store, "snes", "/roms/a.sfc", 10)
	if err := store.RecordHash(ctx, rom.ID, sampleHash); err != nil {
		t.Fatalf("RecordHash: %v", err)
	}
	if err := store.RecordFailure(ctx, rom.ID, catalog.HashStatusFailed, "RAHasher failed with code 2"); err != nil {
		t.Fatalf("RecordFailure: %v", err)
	}

	got, err := store.GetByID(ctx, rom.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.HashStatus != catalog.HashStatusFailed {
		t.Fatalf("expected failed status, got %s", got.HashStatus)
	}
	if got.RAHash != "" || got.HashedAt != nil {
		t.Fatalf("expected hash cleared, got %#v", got)
	}
	if got.HashError != "RAHasher failed with code 2" {
		t.Fatalf("unexpected hash error %q", got.HashError)
	}

	if err := store.RecordFailure(ctx, rom.ID, catalog.HashStatusHashed, "nope"); err == nil {
		t.Fatal("expected error for non-failure status")
	}
	if err := store.RecordFailure(ctx, 9999, catalog.HashStatusFailed, "missing"); err == nil {
		t.Fatal("expected error for unknown rom")
	}
}

func TestGetReturnsNilWhenMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()

	rom, err := store.GetByPath(ctx, "/does/not/exist")
	if err != nil || rom != nil {
		t.Fatalf("expected nil rom, got %#v, %v", rom, err)
	}
	rom, err = store.GetByID(ctx, 42)
	if err != nil || rom != nil {
		t.Fatalf("expected nil rom, got %#v, %v", rom, err)
	}
}

func TestListAndStats(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()

	a := testsupport.NewROM(t, store, "snes", "/roms/snes/a.sfc", 1)
	testsupport.NewROM(t, store, "snes", "/roms/snes/b.sfc", 1)
	c := testsupport.NewROM(t, store, "gba", "/roms/gba/c.gba", 1)

	if err := store.RecordHash(ctx, a.ID, sampleHash); err != nil {
		t.Fatalf("RecordHash: %v", err)
	}
	if err := store.RecordFailure(ctx, c.ID, catalog.HashStatusUnsupported, "unsupported"); err != nil {
		t.Fatalf("RecordFailure: %v", err)
	}

	snes, err := store.List(ctx, "snes")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(snes) != 2 {
		t.Fatalf("expected 2 snes roms, got %d", len(snes))
	}
	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 roms, got %d", len(all))
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := map[catalog.HashStatus]int{
		catalog.HashStatusPending:     1,
		catalog.HashStatusHashed:      1,
		catalog.HashStatusFailed:      0,
		catalog.HashStatusUnsupported: 1,
	}
	for status, count := range want {
		if stats[status] != count {
			t.Fatalf("status %s: expected %d, got %d", status, count, stats[status])
		}
	}
}

func TestWritesReportBusyWhileAnotherProcessHoldsTheLock(t *testing.T) {
	catalog.SetBusyTimeout(t, 50*time.Millisecond)
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()
	path := filepath.Join(testsupport.BaseDir(cfg), "roms", "locked.sfc")

	db := openRaw(t, cfg.Paths.CatalogPath)
	defer db.Close()
	conn, err := db.Conn(ctx)
	if err != nil {
		t.Fatalf("conn: %v", err)
	}
	defer conn.Close()
	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		t.Fatalf("begin immediate: %v", err)
	}

	_, err = store.UpsertROM(ctx, "snes", path, 10)
	if !errors.Is(err, catalog.ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	if _, err := conn.ExecContext(ctx, "ROLLBACK"); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if _, err := store.UpsertROM(ctx, "snes", path, 10); err != nil {
		t.Fatalf("UpsertROM after release: %v", err)
	}
}

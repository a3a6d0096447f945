package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"romhash/internal/catalog"
	"romhash/internal/logging"
	"romhash/internal/services"
	"romhash/internal/services/rahasher"
	"romhash/internal/testsupport"
)

func TestPlatformsCommandSkipsConfig(t *testing.T) {
	out, _, err := runCLI(t, []string{"platforms", "--config", "/nonexistent/romhash.toml"}, "")
	if err != nil {
		t.Fatalf("platforms: %v", err)
	}
	requireContains(t, out, "snes")
	requireContains(t, out, "megadrive")
	requireContains(t, out, "genesis")
}

func TestPlatformsJSONReportsAliases(t *testing.T) {
	out, _, err := runCLI(t, []string{"platforms", "--json"}, "")
	if err != nil {
		t.Fatalf("platforms --json: %v", err)
	}
	var views []platformView
	if err := json.Unmarshal([]byte(out), &views); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	found := false
	for _, view := range views {
		if view.Code <= 0 {
			t.Fatalf("platform %s has non-positive code %d", view.Slug, view.Code)
		}
		if view.Slug == "nes" {
			found = true
			if view.Code != 7 || len(view.Aliases) != 1 || view.Aliases[0] != "famicom" {
				t.Fatalf("unexpected nes entry: %+v", view)
			}
		}
	}
	if !found {
		t.Fatal("nes missing from platform list")
	}
}

func TestHashCommandPrintsHash(t *testing.T) {
	env := setupCLITestEnv(t)
	rom := filepath.Join(env.romDir, "Chrono Trigger.sfc")

	out, _, err := runCLI(t, []string{"hash", " SNES ", rom}, env.configPath)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if strings.TrimSpace(out) != stubHash {
		t.Fatalf("expected %q, got %q", stubHash, out)
	}
}

func TestHashCommandUnsupportedPlatform(t *testing.T) {
	env := setupCLITestEnv(t)
	rom := filepath.Join(env.romDir, "Chrono Trigger.sfc")

	_, _, err := runCLI(t, []string{"hash", "commodore64", rom}, env.configPath)
	if err == nil {
		t.Fatal("expected unsupported platform error")
	}
	if kind, _ := rahasher.KindOf(err); kind != rahasher.KindUnsupportedPlatform {
		t.Fatalf("expected unsupported platform kind, got %v", err)
	}
}

func TestHashCommandToolFailureJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	rom := filepath.Join(env.romDir, "Chrono Trigger.sfc")

	out, _, err := runCLI(t, []string{"hash", "gba", rom, "--json"}, env.configPath)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	var result hashResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if result.Kind != string(rahasher.KindToolExecution) || result.Hash != "" {
		t.Fatalf("unexpected result: %+v", result)
	}
	requireContains(t, result.Error, "unexpected console 5")
}

func TestHashCommandMissingFile(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"hash", "snes", filepath.Join(env.romDir, "missing.sfc")}, env.configPath)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestHashRecordThenLookup(t *testing.T) {
	env := setupCLITestEnv(t)
	rom := filepath.Join(env.romDir, "Earthbound.sfc")

	out, _, err := runCLI(t, []string{"hash", "snes", rom, "--record", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("hash --record: %v", err)
	}
	var result hashResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.ROMID == 0 || result.Hash != stubHash {
		t.Fatalf("unexpected result: %+v", result)
	}

	out, _, err = runCLI(t, []string{"lookup", strings.ToUpper(stubHash)}, env.configPath)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	requireContains(t, out, "Earthbound.sfc")
	requireContains(t, out, "hashed")
}

func TestHashRecordFailureMarksUnsupported(t *testing.T) {
	env := setupCLITestEnv(t)
	rom := filepath.Join(env.romDir, "Earthbound.sfc")

	if _, _, err := runCLI(t, []string{"hash", "c64", rom, "--record"}, env.configPath); err == nil {
		t.Fatal("expected hash failure")
	}

	store := testsupport.MustOpenCatalog(t, env.cfg)
	got, err := store.GetByPath(t.Context(), rom)
	if err != nil {
		t.Fatalf("GetByPath: %v", err)
	}
	if got == nil || got.HashStatus != catalog.HashStatusUnsupported {
		t.Fatalf("expected unsupported record, got %+v", got)
	}
}

func TestLookupRejectsMalformedHash(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"lookup", "not-a-hash"}, env.configPath)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLookupNoMatches(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"lookup", stubHash}, env.configPath)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	requireContains(t, out, "No ROMs match "+stubHash)
}

func TestScanCommandRecordsDirectory(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"scan", "snes", env.romDir, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	var stats struct {
		Scanned int `json:"scanned"`
		Hashed  int `json:"hashed"`
		Added   int `json:"added"`
	}
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if stats.Scanned != 2 || stats.Hashed != 2 || stats.Added != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	out, _, err = runCLI(t, []string{"list", "snes"}, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "Chrono Trigger.sfc")
	requireContains(t, out, "Earthbound.sfc")
}

func TestScanLibraryRendersTable(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"scan-library", filepath.Dir(env.romDir)}, env.configPath)
	if err != nil {
		t.Fatalf("scan-library: %v", err)
	}
	requireContains(t, out, "Platforms")
	requireContains(t, out, "Hashed")
}

func TestScanFailsPreflightWithoutBinary(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.RAHasher.Binary = filepath.Join(env.baseDir, "missing", "RAHasher")
	writeTestConfig(t, env.configPath, env.cfg)

	_, _, err := runCLI(t, []string{"scan", "snes", env.romDir}, env.configPath)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	requireContains(t, err.Error(), "RAHasher")
}

func TestListEmptyCatalog(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"list"}, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "Catalog is empty")
}

func TestStatusCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "== System ==")
	requireContains(t, out, "RAHasher:")
	requireContains(t, out, "[OK]")
	requireContains(t, out, "== Catalog ==")
	requireContains(t, out, "pending")
}

func TestConfigValidateCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+env.configPath)
	requireContains(t, out, "rahasher.binary")
	requireContains(t, out, env.cfg.RAHasher.Binary)
	requireContains(t, out, "Configuration valid")
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "romhash.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration to "+target)
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected sample config: %v", err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestLogsCommandPrintsTail(t *testing.T) {
	env := setupCLITestEnv(t)
	path := logging.DailyLogPath(env.cfg.Paths.LogDir, time.Now())
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	out, _, err := runCLI(t, []string{"logs", "-n", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if out != "two\nthree\n" {
		t.Fatalf("unexpected tail %q", out)
	}
}

func TestLogsCommandMissingDay(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"logs", "--date", "2001-02-03"}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "No log file at")
	requireContains(t, out, "romhash-20010203.log")
}

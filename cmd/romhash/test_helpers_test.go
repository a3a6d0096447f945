package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"romhash/internal/config"
	"romhash/internal/testsupport"
)

const stubHash = "0123456789abcdef0123456789abcdef"

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	romDir     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	t.Setenv("ROMHASH_RAHASHER_BINARY", "")
	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))

	binary := testsupport.WriteExecutable(t, filepath.Join(base, "bin"), "RAHasher",
		"case \"$1\" in\n"+
			"  3) printf '"+stubHash+"\\n'; exit 1 ;;\n"+
			"  *) echo \"unexpected console $1\" >&2; exit 2 ;;\n"+
			"esac\n")
	cfg.RAHasher.Binary = binary
	cfg.Logging.Level = "error"

	romDir := filepath.Join(base, "roms", "snes")
	testsupport.WriteFile(t, filepath.Join(romDir, "Chrono Trigger.sfc"), 64)
	testsupport.WriteFile(t, filepath.Join(romDir, "Earthbound.sfc"), 128)

	configPath := filepath.Join(base, "romhash.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
		romDir:     romDir,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\nlog_dir = %q\ncatalog_path = %q\n\n"+
			"[rahasher]\nbinary = %q\ntimeout_seconds = %d\n\n"+
			"[scan]\nconcurrency = %d\nskip_hashed = %t\n\n"+
			"[logging]\nformat = %q\nlevel = %q\n",
		cfg.Paths.DataDir,
		cfg.Paths.LogDir,
		cfg.Paths.CatalogPath,
		cfg.RAHasher.Binary,
		cfg.RAHasher.TimeoutSeconds,
		cfg.Scan.Concurrency,
		cfg.Scan.SkipHashed,
		"json",
		cfg.Logging.Level,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

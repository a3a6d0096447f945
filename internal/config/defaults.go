package config

import "runtime"

const (
	defaultConfigPath     = "~/.config/romhash/config.toml"
	defaultDataDir        = "~/.local/share/romhash"
	defaultLogDir         = "~/.local/share/romhash/logs"
	defaultCatalogName    = "catalog.db"
	defaultRAHasherBinary = "RAHasher"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultLogRetention   = 30
	rahasherBinaryEnv     = "ROMHASH_RAHASHER_BINARY"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		RAHasher: RAHasher{
			Binary: defaultRAHasherBinary,
		},
		Scan: Scan{
			Concurrency: defaultScanConcurrency(),
			SkipHashed:  true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetention,
		},
	}
}

func defaultScanConcurrency() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}

package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PruneDailyLogs removes daily log files in dir whose date, read from the file
// name, is more than retentionDays before now. Today's file is never removed
// and retentionDays <= 0 keeps everything. It returns the number removed.
func PruneDailyLogs(logger *slog.Logger, dir string, retentionDays int, now time.Time) int {
	if retentionDays <= 0 || strings.TrimSpace(dir) == "" {
		return 0
	}
	names, err := filepath.Glob(filepath.Join(dir, LogFilePattern))
	if err != nil {
		return 0
	}
	today := truncateDay(now)
	cutoff := today.AddDate(0, 0, -retentionDays)

	removed := 0
	for _, path := range names {
		day, ok := logDay(filepath.Base(path), now.Location())
		if !ok || !day.Before(cutoff) || !day.Before(today) {
			continue
		}
		if err := os.Remove(path); err != nil {
			WarnWithContext(logger, "log retention remove failed; file remains", "log_retention_failed",
				String("path", path),
				Error(err),
				String(FieldErrorHint, "check ownership of paths.log_dir"),
				String(FieldImpact, "old log file stays on disk"),
			)
			continue
		}
		removed++
	}
	return removed
}

// logDay parses the date out of a "romhash-YYYYMMDD.log" name.
func logDay(name string, loc *time.Location) (time.Time, bool) {
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, "romhash-"), ".log")
	day, err := time.ParseInLocation(dailyLogLayout, stamp, loc)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

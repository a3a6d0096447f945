package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"romhash/internal/catalog"
	"romhash/internal/config"
	"romhash/internal/logging"
	"romhash/internal/platform"
	"romhash/internal/services"
	"romhash/internal/services/rahasher"
)

// ErrScanInProgress reports that another process holds the catalog scan lock.
var ErrScanInProgress = errors.New("another scan is already running against this catalog")

// Scanner hashes ROM files and records results in the catalog.
type Scanner struct {
	store       *catalog.Store
	hasher      rahasher.Hasher
	logger      *slog.Logger
	lock        *flock.Flock
	concurrency int
	extensions  []string
	skipHashed  bool
}

// New constructs a Scanner using the scan settings from cfg.
func New(cfg *config.Config, store *catalog.Store, hasher rahasher.Hasher, logger *slog.Logger) (*Scanner, error) {
	if cfg == nil {
		return nil, errors.New("scanner requires config")
	}
	if store == nil {
		return nil, errors.New("scanner requires catalog store")
	}
	if hasher == nil {
		return nil, errors.New("scanner requires hasher")
	}
	concurrency := cfg.Scan.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Scanner{
		store:       store,
		hasher:      hasher,
		logger:      logging.NewComponentLogger(logger, "scan"),
		lock:        flock.New(cfg.CatalogLockPath()),
		concurrency: concurrency,
		extensions:  append([]string(nil), cfg.Scan.Extensions...),
		skipHashed:  cfg.Scan.SkipHashed,
	}, nil
}

// Scan hashes every matching file below root as platform slug. An unsupported
// slug fails before the directory is read.
func (s *Scanner) Scan(ctx context.Context, slug, root string) (Stats, error) {
	if _, err := platform.Resolve(slug); err != nil {
		return Stats{}, services.Wrap(services.ErrConfiguration, "scan", "resolve platform", "run `romhash platforms` for supported slugs", err)
	}
	release, err := s.acquire()
	if err != nil {
		return Stats{}, err
	}
	defer release()

	ctx = services.WithRequestID(ctx, uuid.NewString())
	start := time.Now()
	stats, err := s.scanPlatform(ctx, slug, root)
	s.logSummary(ctx, root, stats, time.Since(start), err)
	return stats, err
}

// ScanLibrary scans each immediate subdirectory of root as the platform named
// by the directory, compared case-insensitively ("SNES/" is snes). Files under
// directories whose name is not a supported slug are recorded as unsupported
// without launching RAHasher.
func (s *Scanner) ScanLibrary(ctx context.Context, root string) (Stats, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return Stats{}, services.Wrap(services.ErrNotFound, "scan", "read library", root, err)
	}
	release, err := s.acquire()
	if err != nil {
		return Stats{}, err
	}
	defer release()

	ctx = services.WithRequestID(ctx, uuid.NewString())
	start := time.Now()
	var total Stats
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		slug := platform.Normalize(entry.Name())
		var stats Stats
		if _, ok := platform.Lookup(slug); ok {
			stats, err = s.scanPlatform(ctx, slug, dir)
		} else {
			stats, err = s.recordUnsupported(ctx, slug, dir)
		}
		total.Add(stats)
		if err != nil {
			s.logSummary(ctx, root, total, time.Since(start), err)
			return total, err
		}
	}
	s.logSummary(ctx, root, total, time.Since(start), nil)
	return total, nil
}

func (s *Scanner) acquire() (func(), error) {
	ok, err := s.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire scan lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrScanInProgress, s.lock.Path())
	}
	return func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("failed to release scan lock",
				logging.Error(err),
				logging.String(logging.FieldEventType, "scan_lock_release_failed"),
				logging.String(logging.FieldImpact, "next scan may report a scan in progress"),
			)
		}
	}, nil
}

func (s *Scanner) scanPlatform(ctx context.Context, slug, root string) (Stats, error) {
	files, err := s.collect(root)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{Platforms: 1}
	var mu sync.Mutex
	update := func(fn func(*Stats)) {
		mu.Lock()
		fn(&stats)
		mu.Unlock()
	}

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, file := range files {
		g.Go(func() error {
			return s.scanFile(groupCtx, slug, file, update)
		})
	}
	err = g.Wait()
	return stats, err
}

type romFile struct {
	path string
	size int64
}

func (s *Scanner) collect(root string) ([]romFile, error) {
	var files []romFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || strings.HasPrefix(d.Name(), ".") || !s.matchesExtension(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, romFile{path: path, size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "scan", "walk directory", root, err)
	}
	return files, nil
}

func (s *Scanner) matchesExtension(path string) bool {
	if len(s.extensions) == 0 {
		return true
	}
	return slices.Contains(s.extensions, strings.ToLower(filepath.Ext(path)))
}

func (s *Scanner) scanFile(ctx context.Context, slug string, file romFile, update func(func(*Stats))) error {
	existing, err := s.store.GetByPath(ctx, file.path)
	if err != nil {
		return err
	}
	rom, err := s.store.UpsertROM(ctx, slug, file.path, file.size)
	if err != nil {
		return err
	}
	update(func(st *Stats) {
		st.Scanned++
		if existing == nil {
			st.Added++
		}
	})

	if s.skipHashed && rom.IsHashed() {
		update(func(st *Stats) { st.Skipped++ })
		return nil
	}

	ctx = services.WithROMID(ctx, rom.ID)
	ctx = services.WithPlatform(ctx, slug)
	ctx = services.WithROMPath(ctx, file.path)
	logger := logging.WithContext(ctx, s.logger)

	hash, hashErr := s.hasher.CalculateHash(ctx, slug, file.path)
	if hashErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		status := services.FailureStatus(hashErr)
		if err := s.store.RecordFailure(ctx, rom.ID, status, hashErr.Error()); err != nil {
			return err
		}
		kind, _ := rahasher.KindOf(hashErr)
		logging.WarnWithContext(logger, "rom hash failed", "hash_failed",
			logging.Error(hashErr),
			logging.String(logging.FieldErrorKind, string(kind)),
			logging.String(logging.FieldErrorHint, "verify the file is a valid dump for this platform"),
			logging.String(logging.FieldImpact, "rom cannot be matched by hash"),
		)
		update(func(st *Stats) {
			if status == catalog.HashStatusUnsupported {
				st.Unsupported++
			} else {
				st.Failed++
			}
		})
		return nil
	}

	if err := s.store.RecordHash(ctx, rom.ID, hash); err != nil {
		return err
	}
	logger.Info("rom hashed",
		logging.String(logging.FieldEventType, "hash_recorded"),
		logging.String(logging.FieldHash, hash),
	)
	update(func(st *Stats) { st.Hashed++ })
	return nil
}

func (s *Scanner) recordUnsupported(ctx context.Context, slug, dir string) (Stats, error) {
	files, err := s.collect(dir)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{Platforms: 1}
	message := (&platform.UnsupportedError{Slug: slug}).Error()
	for _, file := range files {
		existing, err := s.store.GetByPath(ctx, file.path)
		if err != nil {
			return stats, err
		}
		rom, err := s.store.UpsertROM(ctx, slug, file.path, file.size)
		if err != nil {
			return stats, err
		}
		if err := s.store.RecordFailure(ctx, rom.ID, catalog.HashStatusUnsupported, message); err != nil {
			return stats, err
		}
		stats.Scanned++
		stats.Unsupported++
		if existing == nil {
			stats.Added++
		}
	}
	if len(files) > 0 {
		s.logger.Info("platform directory not supported by RAHasher",
			logging.String(logging.FieldPlatform, slug),
			logging.String(logging.FieldEventType, "platform_unsupported"),
			logging.Int("unsupported", len(files)),
		)
	}
	return stats, nil
}

func (s *Scanner) logSummary(ctx context.Context, root string, stats Stats, elapsed time.Duration, err error) {
	logger := logging.WithContext(ctx, s.logger)
	attrs := []logging.Attr{
		logging.String("root", root),
		logging.Int("platforms", stats.Platforms),
		logging.Int("scanned", stats.Scanned),
		logging.Int("added", stats.Added),
		logging.Int("hashed", stats.Hashed),
		logging.Int("skipped", stats.Skipped),
		logging.Int("failed", stats.Failed),
		logging.Int("unsupported", stats.Unsupported),
		logging.Duration("scan_duration", elapsed),
	}
	if err != nil {
		logging.ErrorWithContext(logger, "scan aborted", "scan_aborted",
			append(attrs, logging.Error(err), logging.String(logging.FieldErrorHint, "check catalog path permissions and disk space"))...)
		return
	}
	logger.Info("scan complete", logging.Args(append(attrs, logging.String(logging.FieldEventType, "scan_complete"))...)...)
}

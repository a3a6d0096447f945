package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"romhash/internal/config"
)

// ErrBusy reports that another process held the catalog write lock for longer
// than the busy timeout.
var ErrBusy = errors.New("catalog is busy")

// busyTimeout is how long a write waits on another process's lock.
var busyTimeout = 5 * time.Second

// Store is the SQLite catalog of ROM files and their hashes.
//
// The pool holds a single connection. Scan workers write concurrently, and
// queueing them in database/sql means they never race each other for the
// SQLite write lock; ErrBusy then only ever points at another process.
type Store struct {
	db   *sql.DB
	path string
}

// Open ensures the configured directories exist and opens paths.catalog_path.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("catalog requires config")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.Paths.CatalogPath)
}

// OpenPath opens or creates the catalog at path without touching any other
// directory. Preflight uses it to inspect an existing catalog.
func OpenPath(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("catalog path required")
	}
	db, err := sql.Open("sqlite", catalogDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db, path: path}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// catalogDSN carries the pragmas in the DSN so the driver applies them to
// every connection it opens, including after a reconnect.
func catalogDSN(path string) string {
	params := url.Values{}
	params.Add("_pragma", "journal_mode(WAL)")
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	params.Set("_txlock", "immediate")
	return path + "?" + params.Encode()
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// wrapErr prefixes err with op and tags lock timeouts with ErrBusy.
func wrapErr(op string, err error) error {
	var sqlErr *sqlite.Error
	if errors.As(err, &sqlErr) && sqlErr.Code()&0xff == sqlite3.SQLITE_BUSY {
		return fmt.Errorf("%s: %w: %w", op, ErrBusy, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

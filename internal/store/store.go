package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Backend names accepted by OpenBackend.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// Store is a database handle shared by all repositories. The same query
// builders serve both backends; only the dialect differs.
type Store struct {
	db      *sql.DB
	dialect string
	pool    *pgxpool.Pool
}

// Open opens the local SQLite store at dsn, applies pragmas and creates
// the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection; one connection keeps them in force.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	s := &Store{db: db, dialect: dialect.SQLite}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return s, nil
}

// OpenRemote connects to the PostgreSQL document store at url.
func OpenRemote(ctx context.Context, url string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &Store{db: stdlib.OpenDBFromPool(pool), dialect: dialect.Postgres, pool: pool}
	if err := s.migrate(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return s, nil
}

// OpenBackend opens the store named by backend. path is used by the local
// backend, url by the remote one.
func OpenBackend(ctx context.Context, backend, path, url string) (*Store, error) {
	switch backend {
	case BackendLocal, "":
		return Open(path)
	case BackendRemote:
		if url == "" {
			return nil, fmt.Errorf("remote storage needs storage.url")
		}
		return OpenRemote(ctx, url)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect returns the ent dialect name of the backend.
func (s *Store) Dialect() string {
	return s.dialect
}

// Close closes the database connection.
func (s *Store) Close() error {
	err := s.db.Close()
	if s.pool != nil {
		s.pool.Close()
	}
	return err
}

// ProgressRepo returns the progress repository of this store.
func (s *Store) ProgressRepo() ProgressRepo {
	return &progressRepo{db: s.db, dialect: s.dialect}
}

// HistoryRepo returns the lesson history repository of this store.
func (s *Store) HistoryRepo() HistoryRepo {
	return &historyRepo{db: s.db, dialect: s.dialect, progress: s.ProgressRepo()}
}

// UserRepo returns the account repository of this store.
func (s *Store) UserRepo() UserRepo {
	return &userRepo{db: s.db, dialect: s.dialect}
}

// EventRepo returns the LLM event repository of this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, dialect: s.dialect}
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. LINGOCALM_DB environment variable
// 2. $XDG_DATA_HOME/lingocalm/lingocalm.db
// 3. ~/.local/share/lingocalm/lingocalm.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LINGOCALM_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "lingocalm.db")
	return p, EnsureDir(p)
}

// DataDir returns the lingocalm data directory without creating it.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "lingocalm"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

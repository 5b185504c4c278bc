package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/stunting-dashboard/internal/common"
	"github.com/mattn/go-sqlite3"
)

// openRetry covers an import that still holds the write lock on the snapshot.
var openRetry = common.RetryOptions{
	MaxAttempts:  4,
	InitialDelay: 200 * time.Millisecond,
	MaxDelay:     2 * time.Second,
}

// SQLiteStorage keeps a snapshot of the results and features tables in SQLite.
type SQLiteStorage struct {
	db       *sql.DB
	dbPath   string
	readOnly bool
}

// NewSQLiteStorage creates a new writable SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Rollback journal rather than WAL: read-only connections cannot recover a WAL file
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=DELETE&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections, and :memory: needs exactly one
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// OpenReadOnly opens an existing snapshot without write access. The snapshot
// must already be at ExpectedSchemaVersion.
func OpenReadOnly(ctx context.Context, dbPath string) (*SQLiteStorage, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", "file:"+dbPath+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStorage{db: db, dbPath: dbPath, readOnly: true}

	var version int
	err = common.WithRetry(ctx, func() error {
		if pingErr := db.PingContext(ctx); pingErr != nil {
			return retryIfLocked(fmt.Errorf("failed to ping snapshot: %w", pingErr))
		}
		v, versionErr := s.SchemaVersion(ctx)
		if versionErr != nil {
			return retryIfLocked(versionErr)
		}
		version = v
		return nil
	}, openRetry)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if version != ExpectedSchemaVersion {
		_ = db.Close()
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrSchemaVersion, ExpectedSchemaVersion, version)
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Path returns the database path.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// SchemaVersion reports the applied migration version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// retryIfLocked marks everything except SQLITE_BUSY and SQLITE_LOCKED as permanent.
func retryIfLocked(err error) error {
	if isLocked(err) {
		return err
	}
	return common.Permanent(err)
}

func isLocked(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
}

func (s *SQLiteStorage) checkWritable() error {
	if s.readOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, s.dbPath)
	}
	return nil
}

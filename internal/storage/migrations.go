package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS results (
					position INTEGER PRIMARY KEY,
					region TEXT NOT NULL DEFAULT '',
					year INTEGER,
					method TEXT NOT NULL DEFAULT '',
					prediction REAL NOT NULL,
					mape REAL,
					mse REAL
				)`,
				`CREATE INDEX idx_results_region ON results(region)`,
				`CREATE INDEX idx_results_year ON results(year)`,
				`CREATE INDEX idx_results_method ON results(method)`,

				`CREATE TABLE IF NOT EXISTS features (
					position INTEGER PRIMARY KEY,
					region TEXT NOT NULL DEFAULT '',
					year INTEGER,
					bayi_bblr REAL NOT NULL DEFAULT 0,
					ibu_nifas_vit_a REAL NOT NULL DEFAULT 0,
					k4 REAL NOT NULL DEFAULT 0,
					ipm REAL NOT NULL DEFAULT 0,
					minum_layak REAL NOT NULL DEFAULT 0,
					sanitasi_layak REAL NOT NULL DEFAULT 0
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add snapshot metadata",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS metadata (
					key TEXT PRIMARY KEY,
					value TEXT NOT NULL
				)
			`)
			return err
		},
	},
	{
		Version:     3,
		Description: "Index features by region and year",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_features_region_year ON features(region, year)`)
			return err
		},
	},
}

// Migrate applies every pending migration.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := s.checkWritable(); err != nil {
		return err
	}

	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Debug("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("%w: expected %d, got %d", ErrSchemaVersion, ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

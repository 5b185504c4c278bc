package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Metadata describes where a snapshot came from.
type Metadata struct {
	ImportedAt     time.Time
	ResultsSource  string
	FeaturesSource string
	HasMAPE        bool
	HasMSE         bool
}

const (
	metaHasMAPE        = "has_mape"
	metaHasMSE         = "has_mse"
	metaResultsSource  = "results_source"
	metaFeaturesSource = "features_source"
	metaImportedAt     = "imported_at"
)

// SaveMetadata replaces the snapshot metadata.
func (s *SQLiteStorage) SaveMetadata(ctx context.Context, meta Metadata) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := s.checkWritable(); err != nil {
		return err
	}

	values := map[string]string{
		metaHasMAPE:        strconv.FormatBool(meta.HasMAPE),
		metaHasMSE:         strconv.FormatBool(meta.HasMSE),
		metaResultsSource:  meta.ResultsSource,
		metaFeaturesSource: meta.FeaturesSource,
		metaImportedAt:     meta.ImportedAt.UTC().Format(time.RFC3339),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for key, value := range values {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO metadata (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value); err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit metadata: %w", err)
	}
	return nil
}

// GetMetadata reads the snapshot metadata. Missing keys keep their zero value.
func (s *SQLiteStorage) GetMetadata(ctx context.Context) (Metadata, error) {
	if err := validateContext(ctx); err != nil {
		return Metadata{}, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM metadata`)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to query metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var meta Metadata
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Metadata{}, fmt.Errorf("failed to scan metadata: %w", err)
		}
		switch key {
		case metaHasMAPE:
			meta.HasMAPE, _ = strconv.ParseBool(value)
		case metaHasMSE:
			meta.HasMSE, _ = strconv.ParseBool(value)
		case metaResultsSource:
			meta.ResultsSource = value
		case metaFeaturesSource:
			meta.FeaturesSource = value
		case metaImportedAt:
			if ts, err := time.Parse(time.RFC3339, value); err == nil {
				meta.ImportedAt = ts
			}
		}
	}

	if err := rows.Err(); err != nil {
		return Metadata{}, fmt.Errorf("failed to iterate metadata: %w", err)
	}

	return meta, nil
}

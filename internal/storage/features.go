package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Veraticus/stunting-dashboard/internal/model"
)

// ReplaceFeatures overwrites the features table with rows.
func (s *SQLiteStorage) ReplaceFeatures(ctx context.Context, rows []model.FeatureRow, progress func(int)) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := s.checkWritable(); err != nil {
		return err
	}
	if rows == nil {
		return fmt.Errorf("%w: rows", ErrNilParameter)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM features`); err != nil {
		return fmt.Errorf("failed to clear features: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO features (position, region, year, bayi_bblr, ibu_nifas_vit_a, k4, ipm, minum_layak, sanitasi_layak)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, row := range rows {
		v := row.Values
		_, err := stmt.ExecContext(ctx,
			i,
			row.Region,
			nullYear(row.Year),
			v.LowBirthWeight,
			v.PostpartumVitaminA,
			v.AntenatalK4,
			v.HDI,
			v.DrinkingWater,
			v.Sanitation,
		)
		if err != nil {
			return fmt.Errorf("failed to insert feature row %d: %w", i, err)
		}
		if progress != nil {
			progress(1)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit features: %w", err)
	}
	return nil
}

// GetFeatures returns every stored feature row in table order.
func (s *SQLiteStorage) GetFeatures(ctx context.Context) ([]model.FeatureRow, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT region, year, bayi_bblr, ibu_nifas_vit_a, k4, ipm, minum_layak, sanitasi_layak
		FROM features
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query features: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var features []model.FeatureRow
	for rows.Next() {
		var (
			row  model.FeatureRow
			year sql.NullInt64
		)
		v := &row.Values
		if err := rows.Scan(&row.Region, &year,
			&v.LowBirthWeight, &v.PostpartumVitaminA, &v.AntenatalK4,
			&v.HDI, &v.DrinkingWater, &v.Sanitation); err != nil {
			return nil, fmt.Errorf("failed to scan feature row: %w", err)
		}
		if year.Valid {
			row.Year = int(year.Int64)
		}
		features = append(features, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate features: %w", err)
	}

	return features, nil
}

package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Veraticus/stunting-dashboard/internal/model"
)

// ReplaceResults overwrites the results table with rows, preserving their
// order. progress, if set, is called after every inserted row.
func (s *SQLiteStorage) ReplaceResults(ctx context.Context, rows []model.ResultRow, progress func(int)) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := s.checkWritable(); err != nil {
		return err
	}
	if err := validateResults(rows); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM results`); err != nil {
		return fmt.Errorf("failed to clear results: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results (position, region, year, method, prediction, mape, mse)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, row := range rows {
		_, err := stmt.ExecContext(ctx,
			i,
			row.Region,
			nullYear(row.Year),
			row.Method,
			row.Prediction,
			nullFloat(row.MAPE),
			nullFloat(row.MSE),
		)
		if err != nil {
			return fmt.Errorf("failed to insert result %d: %w", i, err)
		}
		if progress != nil {
			progress(1)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit results: %w", err)
	}
	return nil
}

// GetResults returns every stored result in its original table order.
func (s *SQLiteStorage) GetResults(ctx context.Context) ([]model.ResultRow, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT region, year, method, prediction, mape, mse
		FROM results
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []model.ResultRow
	for rows.Next() {
		var (
			row       model.ResultRow
			year      sql.NullInt64
			mape, mse sql.NullFloat64
		)
		if err := rows.Scan(&row.Region, &year, &row.Method, &row.Prediction, &mape, &mse); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		if year.Valid {
			row.Year = int(year.Int64)
		}
		if mape.Valid {
			row.MAPE = model.Float(mape.Float64)
		}
		if mse.Valid {
			row.MSE = model.Float(mse.Float64)
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate results: %w", err)
	}

	return results, nil
}

func nullYear(year int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(year), Valid: year > 0}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// Package storage provides the SQLite snapshot layer for the dashboard tables.
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/stunting-dashboard/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidRow    = errors.New("invalid row")
	ErrReadOnly      = errors.New("snapshot opened read-only")
	ErrSchemaVersion = errors.New("database schema version mismatch")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateResults rejects values SQLite cannot store faithfully.
func validateResults(rows []model.ResultRow) error {
	if rows == nil {
		return fmt.Errorf("%w: rows", ErrNilParameter)
	}
	for i, row := range rows {
		if !finite(row.Prediction) {
			return fmt.Errorf("%w: row %d: prediction is not finite", ErrInvalidRow, i)
		}
		if row.MAPE != nil && !finite(*row.MAPE) {
			return fmt.Errorf("%w: row %d: mape is not finite", ErrInvalidRow, i)
		}
		if row.MSE != nil && !finite(*row.MSE) {
			return fmt.Errorf("%w: row %d: mse is not finite", ErrInvalidRow, i)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Package report writes query outcomes to CSV, JSON, Excel workbooks and PNG charts.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/stunting-dashboard/internal/common"
	"github.com/Veraticus/stunting-dashboard/internal/model"
)

// ErrNoMatch is returned when asked to report an outcome with no rows.
var ErrNoMatch = errors.New("no rows match the selection")

// Format is an output encoding.
type Format string

// Supported formats.
const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatExcel Format = "xlsx"
	FormatChart Format = "png"
)

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."); ext {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "xlsx":
		return FormatExcel, nil
	case "png":
		return FormatChart, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, path)
	}
}

// WriteFile writes outcome to path in the format implied by its extension.
func WriteFile(path string, outcome model.Outcome) error {
	if outcome.NoMatch {
		return ErrNoMatch
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatExcel:
		return WriteXLSX(path, outcome)
	case FormatChart:
		return WriteChart(path, outcome)
	}

	f, err := os.Create(path) //nolint:gosec // output path is chosen by the user
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if format == FormatJSON {
		err = WriteJSON(f, outcome)
	} else {
		err = WriteCSV(f, outcome)
	}
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	return err
}

// Summaries returns the per-method lines of an outcome. In first-match mode
// the single selected row is reported as a one-row group.
func Summaries(outcome model.Outcome) []model.MethodSummary {
	if outcome.First != nil {
		return []model.MethodSummary{{
			Method:         outcome.First.Method,
			Count:          1,
			MeanPrediction: outcome.First.Prediction,
			MeanMAPE:       outcome.First.MAPE,
			MeanMSE:        outcome.First.MSE,
		}}
	}
	return outcome.Summaries
}

// FormatMetric renders an optional metric, "-" when absent.
func FormatMetric(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.4f", *v)
}

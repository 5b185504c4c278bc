// Package dataset loads the results and raw-features tables into typed,
// read-only collections.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/Veraticus/stunting-dashboard/internal/common"
	"github.com/Veraticus/stunting-dashboard/internal/model"
)

// Source roles, used to name the table a failure relates to.
const (
	RoleResults  = "results"
	RoleFeatures = "features"
)

// Sources names the two tables the dashboard needs.
type Sources struct {
	ResultsPath  string
	FeaturesPath string
	Sheet        string
}

// SourceNotFoundError reports a required table that does not exist.
type SourceNotFoundError struct {
	Err  error
	Role string
	Path string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("%s table %q not found", e.Role, e.Path)
}

// Unwrap lets errors.Is match both ErrSourceNotFound and the os error.
func (e *SourceNotFoundError) Unwrap() []error {
	return []error{common.ErrSourceNotFound, e.Err}
}

// Dataset holds the fully materialized tables for one session. It is never
// mutated after Load returns.
type Dataset struct {
	Sources  Sources
	Results  []model.ResultRow
	Features []model.FeatureRow
	HasMAPE  bool
	HasMSE   bool
}

// Load reads both tables. If either source is missing nothing is loaded.
func Load(ctx context.Context, src Sources) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := checkExists(RoleResults, src.ResultsPath); err != nil {
		return nil, err
	}
	if err := checkExists(RoleFeatures, src.FeaturesPath); err != nil {
		return nil, err
	}

	results, err := LoadResults(ctx, src.ResultsPath, src.Sheet)
	if err != nil {
		return nil, err
	}

	features, err := LoadFeatures(ctx, src.FeaturesPath, src.Sheet)
	if err != nil {
		return nil, err
	}

	return &Dataset{
		Sources:  src,
		Results:  results.Rows,
		Features: features,
		HasMAPE:  results.HasMAPE,
		HasMSE:   results.HasMSE,
	}, nil
}

// LookupFeatures returns the raw features of the first row for region and year.
func (d *Dataset) LookupFeatures(region string, year int) (model.InputFeatures, bool) {
	for _, row := range d.Features {
		if row.Region == region && row.Year == year {
			return row.Features(), true
		}
	}
	return model.InputFeatures{}, false
}

// ResultTable is the parsed results table.
type ResultTable struct {
	Rows    []model.ResultRow
	HasMAPE bool
	HasMSE  bool
}

// LoadResults reads the results table from path.
func LoadResults(ctx context.Context, path, sheet string) (*ResultTable, error) {
	if err := checkExists(RoleResults, path); err != nil {
		return nil, err
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var table *ResultTable
	if format == FormatSQLite {
		table, err = loadResultsSnapshot(ctx, path)
	} else {
		var raw *rawTable
		raw, err = readRawTable(ctx, path, format, sheet)
		if err == nil {
			table, err = parseResults(raw)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s table %s: %w", RoleResults, path, err)
	}

	slog.Info("Loaded results table",
		"path", path,
		"format", format,
		"rows", len(table.Rows),
		"mape", table.HasMAPE,
		"mse", table.HasMSE)

	return table, nil
}

// LoadFeatures reads the raw-features table from path.
func LoadFeatures(ctx context.Context, path, sheet string) ([]model.FeatureRow, error) {
	if err := checkExists(RoleFeatures, path); err != nil {
		return nil, err
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var rows []model.FeatureRow
	if format == FormatSQLite {
		rows, err = loadFeaturesSnapshot(ctx, path)
	} else {
		var raw *rawTable
		raw, err = readRawTable(ctx, path, format, sheet)
		if err == nil {
			rows, err = parseFeatures(raw)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s table %s: %w", RoleFeatures, path, err)
	}

	slog.Info("Loaded features table", "path", path, "format", format, "rows", len(rows))

	return rows, nil
}

func checkExists(role, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &SourceNotFoundError{Role: role, Path: path, Err: err}
		}
		return fmt.Errorf("failed to stat %s table %s: %w", role, path, err)
	}
	if info.IsDir() {
		return &SourceNotFoundError{Role: role, Path: path, Err: fmt.Errorf("%s is a directory", path)}
	}
	return nil
}

package report

import (
	"fmt"

	"github.com/Veraticus/stunting-dashboard/internal/model"
	"github.com/xuri/excelize/v2"
)

// Worksheet names of the exported workbook.
const (
	SummarySheet = "Ringkasan"
	DataSheet    = "Data"
)

// WriteXLSX writes a workbook with the per-method summary and the filtered rows.
func WriteXLSX(path string, outcome model.Outcome) error {
	if outcome.NoMatch {
		return ErrNoMatch
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := writeSummarySheet(f, outcome); err != nil {
		return err
	}

	if _, err := f.NewSheet(DataSheet); err != nil {
		return fmt.Errorf("failed to create data sheet: %w", err)
	}
	if err := writeDataSheet(f, outcome.Rows); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, outcome model.Outcome) error {
	sel := outcome.Selection
	info := [][]any{
		{"Kabupaten/Kota", sel.RegionLabel()},
		{"Tahun", sel.YearLabel()},
		{"Metode", sel.MethodLabel()},
		{"Mode", string(outcome.Mode)},
	}
	for i, row := range info {
		if err := setRow(f, SummarySheet, 1, i+1, row); err != nil {
			return err
		}
	}

	headerRow := len(info) + 2
	header := []any{"Metode", "Jumlah Data", "Prediksi (%)", "MAPE", "MSE"}
	if err := setRow(f, SummarySheet, 1, headerRow, header); err != nil {
		return err
	}

	for i, s := range Summaries(outcome) {
		row := []any{s.Method, s.Count, s.MeanPrediction, metricValue(s.MeanMAPE), metricValue(s.MeanMSE)}
		if err := setRow(f, SummarySheet, 1, headerRow+1+i, row); err != nil {
			return err
		}
	}

	return f.SetColWidth(SummarySheet, "A", "E", 18)
}

func writeDataSheet(f *excelize.File, rows model.FilterResultSet) error {
	header := []any{"Kabupaten/Kota", "Tahun", "Metode", "Prediksi (%)", "MAPE", "MSE"}
	if err := setRow(f, DataSheet, 1, 1, header); err != nil {
		return err
	}

	for i, r := range rows {
		var year any
		if r.HasYear() {
			year = r.Year
		}
		row := []any{r.Region, year, r.Method, r.Prediction, metricValue(r.MAPE), metricValue(r.MSE)}
		if err := setRow(f, DataSheet, 1, i+2, row); err != nil {
			return err
		}
	}

	return f.SetColWidth(DataSheet, "A", "F", 16)
}

func setRow(f *excelize.File, sheet string, col, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("invalid cell %d,%d: %w", col, row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// metricValue leaves the cell empty for absent metrics.
func metricValue(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

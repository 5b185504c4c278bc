package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/stunting-dashboard/internal/model"
	"github.com/Veraticus/stunting-dashboard/internal/query"
	"github.com/Veraticus/stunting-dashboard/internal/report"
)

// Notice texts shown when a query yields nothing to display.
const (
	NoMatchNotice    = "Tidak ada data untuk kombinasi filter yang dipilih."
	InvalidInputText = "Masukkan angka yang valid untuk semua input."
)

// NoMatchFor returns the region/year specific no-data notice.
func NoMatchFor(sel model.FilterSelection) string {
	return fmt.Sprintf("Tidak ada data untuk %s pada tahun %s.", sel.RegionLabel(), sel.YearLabel())
}

var tableHeader = BoldStyle.Foreground(InfoColor)

// WriteOutcome prints the result of a query: per-method means in grouped
// mode, the single predicted prevalence in first-match mode.
func WriteOutcome(w io.Writer, outcome model.Outcome) error {
	if _, err := fmt.Fprintln(w, FormatTitle("Prediksi Prevalensi Stunting")); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}
	if _, err := fmt.Fprintln(w, SubtleStyle.Render(outcome.Selection.String())); err != nil {
		return fmt.Errorf("failed to write selection: %w", err)
	}

	if outcome.NoMatch {
		_, err := fmt.Fprintln(w, FormatWarning(NoMatchFor(outcome.Selection)))
		return err
	}

	if outcome.First != nil {
		line := fmt.Sprintf("Prediksi Prevalensi Stunting (%s): %s",
			outcome.First.Method, HighlightStyle.Render(fmt.Sprintf("%.2f%%", outcome.First.Prediction)))
		_, err := fmt.Fprintln(w, line)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writeRow(tw, tableHeader, "Metode", "Jumlah", "Prediksi (%)", "MAPE", "MSE"); err != nil {
		return err
	}
	if err := writeRow(tw, SubtleStyle, separators(6, 6, 12, 8, 8)...); err != nil {
		return err
	}
	for _, s := range outcome.Summaries {
		if err := writeRow(tw, TableCellStyle.UnsetPaddingRight(),
			s.Method,
			strconv.Itoa(s.Count),
			fmt.Sprintf("%.2f", s.MeanPrediction),
			report.FormatMetric(s.MeanMAPE),
			report.FormatMetric(s.MeanMSE),
		); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}
	return nil
}

// WriteRows prints filtered rows. The prediction column is left out, matching
// the preview shown before a check is run.
func WriteRows(w io.Writer, rows model.FilterResultSet) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, FormatWarning(NoMatchNotice))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writeRow(tw, tableHeader, "Kabupaten/Kota", "Tahun", "Metode", "MAPE", "MSE"); err != nil {
		return err
	}
	for _, r := range rows {
		year := ""
		if r.HasYear() {
			year = strconv.Itoa(r.Year)
		}
		if err := writeRow(tw, TableCellStyle.UnsetPaddingRight(),
			r.Region, year, r.Method, report.FormatMetric(r.MAPE), report.FormatMetric(r.MSE)); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}
	return nil
}

// WriteDomains lists the selectable values of every selector.
func WriteDomains(w io.Writer, d query.Domains) error {
	sections := []struct {
		title  string
		values []string
	}{
		{"Kabupaten/Kota", d.Regions},
		{"Tahun", d.Years},
		{"Metode", d.Methods},
	}

	for i, section := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		header := fmt.Sprintf("%s %s (%d)", ChartIcon, section.title, max(len(section.values)-1, 0))
		if _, err := fmt.Fprintln(w, tableHeader.Render(header)); err != nil {
			return fmt.Errorf("failed to write %s header: %w", section.title, err)
		}
		for _, v := range section.values {
			if _, err := fmt.Fprintf(w, "  %s\n", v); err != nil {
				return fmt.Errorf("failed to write %s value: %w", section.title, err)
			}
		}
	}
	return nil
}

type renderer interface {
	Render(strs ...string) string
}

func writeRow(w io.Writer, style renderer, cells ...string) error {
	styled := make([]string, len(cells))
	for i, c := range cells {
		styled[i] = style.Render(c)
	}
	if _, err := fmt.Fprintln(w, strings.Join(styled, "\t")); err != nil {
		return fmt.Errorf("failed to write table row: %w", err)
	}
	return nil
}

func separators(widths ...int) []string {
	out := make([]string, len(widths))
	for i, n := range widths {
		out[i] = strings.Repeat("─", n)
	}
	return out
}

package components

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/stunting-dashboard/internal/model"
	"github.com/Veraticus/stunting-dashboard/internal/report"
	"github.com/Veraticus/stunting-dashboard/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const maxTableHeight = 12

// ResultsModel shows either filtered rows or per-method summaries in a table.
type ResultsModel struct {
	theme   themes.Theme
	title   string
	table   table.Model
	isEmpty bool
}

// NewResultsModel creates an empty results table.
func NewResultsModel(theme themes.Theme) ResultsModel {
	t := table.New(
		table.WithFocused(false),
		table.WithHeight(1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return ResultsModel{theme: theme, table: t, isEmpty: true}
}

// SetPreview lists filtered rows without their prediction.
func (m *ResultsModel) SetPreview(rows model.FilterResultSet) {
	m.title = fmt.Sprintf("Data Terfilter (%d baris)", len(rows))

	tableRows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		year := ""
		if r.HasYear() {
			year = strconv.Itoa(r.Year)
		}
		tableRows = append(tableRows, table.Row{
			r.Region, year, r.Method, report.FormatMetric(r.MAPE), report.FormatMetric(r.MSE),
		})
	}

	m.replace([]table.Column{
		{Title: "Kabupaten/Kota", Width: 24},
		{Title: "Tahun", Width: 6},
		{Title: "Metode", Width: 12},
		{Title: "MAPE", Width: 10},
		{Title: "MSE", Width: 10},
	}, tableRows)
}

// SetSummaries lists the per-method means of a grouped outcome.
func (m *ResultsModel) SetSummaries(summaries []model.MethodSummary) {
	m.title = "Prediksi per Metode"

	tableRows := make([]table.Row, 0, len(summaries))
	for _, s := range summaries {
		tableRows = append(tableRows, table.Row{
			s.Method,
			strconv.Itoa(s.Count),
			fmt.Sprintf("%.2f%%", s.MeanPrediction),
			report.FormatMetric(s.MeanMAPE),
			report.FormatMetric(s.MeanMSE),
		})
	}

	m.replace([]table.Column{
		{Title: "Metode", Width: 12},
		{Title: "Jumlah", Width: 7},
		{Title: "Prediksi", Width: 10},
		{Title: "MAPE", Width: 10},
		{Title: "MSE", Width: 10},
	}, tableRows)
}

func (m *ResultsModel) replace(columns []table.Column, rows []table.Row) {
	// Rows must be cleared first: SetColumns renders the old rows against the
	// new column set.
	m.table.SetRows(nil)
	m.table.SetColumns(columns)
	m.table.SetRows(rows)

	width := 0
	for _, c := range columns {
		width += c.Width + 2
	}
	m.table.SetWidth(width)
	// The height includes the two header lines.
	m.table.SetHeight(min(max(len(rows), 1), maxTableHeight) + 2)
	m.table.GotoTop()
	m.isEmpty = len(rows) == 0
}

// Empty reports whether the table has no rows.
func (m ResultsModel) Empty() bool {
	return m.isEmpty
}

// View renders the title and the table.
func (m ResultsModel) View() string {
	title := m.theme.Bold.Render(m.title)
	if m.isEmpty {
		return title
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, m.table.View())
}

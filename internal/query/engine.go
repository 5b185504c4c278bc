package query

import (
	"log/slog"

	"github.com/Veraticus/stunting-dashboard/internal/model"
)

// Filter returns the rows matching every concrete constraint of sel, in table
// order. rows is not modified.
func Filter(rows []model.ResultRow, sel model.FilterSelection) model.FilterResultSet {
	out := make(model.FilterResultSet, 0, len(rows))
	for _, row := range rows {
		if sel.Matches(row) {
			out = append(out, row)
		}
	}
	return out
}

// Aggregate partitions rows by method and averages each group. Groups are
// reported in the order their method first appears. MAPE and MSE means are
// only reported when every row of the group carries the metric.
func Aggregate(rows model.FilterResultSet) []model.MethodSummary {
	type accumulator struct {
		method                   string
		predSum, mapeSum, mseSum float64
		count                    int
		allMAPE, allMSE          bool
	}

	var order []*accumulator
	groups := make(map[string]*accumulator)

	for _, row := range rows {
		acc, ok := groups[row.Method]
		if !ok {
			acc = &accumulator{method: row.Method, allMAPE: true, allMSE: true}
			groups[row.Method] = acc
			order = append(order, acc)
		}

		acc.count++
		acc.predSum += row.Prediction

		if row.MAPE != nil {
			acc.mapeSum += *row.MAPE
		} else {
			acc.allMAPE = false
		}
		if row.MSE != nil {
			acc.mseSum += *row.MSE
		} else {
			acc.allMSE = false
		}
	}

	summaries := make([]model.MethodSummary, 0, len(order))
	for _, acc := range order {
		n := float64(acc.count)
		summary := model.MethodSummary{
			Method:         acc.method,
			Count:          acc.count,
			MeanPrediction: acc.predSum / n,
		}
		if acc.allMAPE {
			summary.MeanMAPE = model.Float(acc.mapeSum / n)
		}
		if acc.allMSE {
			summary.MeanMSE = model.Float(acc.mseSum / n)
		}
		summaries = append(summaries, summary)
	}

	return summaries
}

// Engine runs queries against one loaded results table.
type Engine struct {
	rows []model.ResultRow
	mode model.DisplayMode
}

// NewEngine creates an engine over rows. The rows are shared, never copied
// or modified.
func NewEngine(rows []model.ResultRow, mode model.DisplayMode) *Engine {
	if mode == "" {
		mode = model.ModeGrouped
	}
	return &Engine{rows: rows, mode: mode}
}

// Mode returns the display mode the engine reports in.
func (e *Engine) Mode() model.DisplayMode {
	return e.mode
}

// WithMode returns an engine over the same rows reporting in mode.
func (e *Engine) WithMode(mode model.DisplayMode) *Engine {
	return NewEngine(e.rows, mode)
}

// Preview filters without aggregating. It backs the live table shown while
// the user changes selectors.
func (e *Engine) Preview(sel model.FilterSelection) model.FilterResultSet {
	return Filter(e.rows, sel)
}

// Run applies sel and reports the result. The validated inputs only gate the
// query; no value of them enters the computation. An empty filtered set is
// reported through Outcome.NoMatch.
func (e *Engine) Run(sel model.FilterSelection, _ model.InputFeatures) model.Outcome {
	filtered := Filter(e.rows, sel)

	outcome := model.Outcome{
		Mode:      e.mode,
		Selection: sel,
		Rows:      filtered,
	}

	if len(filtered) == 0 {
		outcome.NoMatch = true
		slog.Debug("Query matched no rows", "selection", sel.String())
		return outcome
	}

	switch e.mode {
	case model.ModeFirstMatch:
		first := filtered[0]
		outcome.First = &first
	default:
		outcome.Summaries = Aggregate(filtered)
	}

	slog.Debug("Query complete",
		"selection", sel.String(),
		"mode", e.mode,
		"rows", len(filtered),
		"groups", len(outcome.Summaries))

	return outcome
}

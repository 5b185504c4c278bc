package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/Veraticus/stunting-dashboard/internal/model"
)

// WriteCSV writes the per-method lines of outcome as CSV.
func WriteCSV(w io.Writer, outcome model.Outcome) error {
	cw := csv.NewWriter(w)

	header := []string{"region", "year", "method", "rows", "prediction", "mape", "mse"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	sel := outcome.Selection
	for _, s := range Summaries(outcome) {
		record := []string{
			sel.RegionLabel(),
			sel.YearLabel(),
			s.Method,
			strconv.Itoa(s.Count),
			strconv.FormatFloat(s.MeanPrediction, 'f', -1, 64),
			optionalCell(s.MeanMAPE),
			optionalCell(s.MeanMSE),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func optionalCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

type jsonSummary struct {
	MAPE       *float64 `json:"mape,omitempty"`
	MSE        *float64 `json:"mse,omitempty"`
	Method     string   `json:"method"`
	Prediction float64  `json:"prediction"`
	Rows       int      `json:"rows"`
}

type jsonOutcome struct {
	Region  string        `json:"region"`
	Year    string        `json:"year"`
	Method  string        `json:"method"`
	Mode    string        `json:"mode"`
	Results []jsonSummary `json:"results"`
	NoMatch bool          `json:"no_match"`
}

// WriteJSON writes outcome as an indented JSON document.
func WriteJSON(w io.Writer, outcome model.Outcome) error {
	doc := jsonOutcome{
		Region:  outcome.Selection.RegionLabel(),
		Year:    outcome.Selection.YearLabel(),
		Method:  outcome.Selection.MethodLabel(),
		Mode:    string(outcome.Mode),
		NoMatch: outcome.NoMatch,
		Results: []jsonSummary{},
	}
	for _, s := range Summaries(outcome) {
		doc.Results = append(doc.Results, jsonSummary{
			Method:     s.Method,
			Rows:       s.Count,
			Prediction: s.MeanPrediction,
			MAPE:       s.MeanMAPE,
			MSE:        s.MeanMSE,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode outcome: %w", err)
	}
	return nil
}

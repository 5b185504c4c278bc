package model

import "fmt"

// ResultRow is one precomputed prediction record from the results table.
type ResultRow struct {
	MAPE       *float64 // Mean absolute percentage error, nil when the source has none
	MSE        *float64 // Mean squared error, nil when the source has none
	Region     string
	Method     string
	Prediction float64 // Predicted stunting prevalence (%)
	Year       int
}

// HasYear reports whether the row carries a usable year.
func (r ResultRow) HasYear() bool {
	return r.Year > 0
}

// Key returns the (region, year, method) triple as a display string.
func (r ResultRow) Key() string {
	return fmt.Sprintf("%s|%d|%s", r.Region, r.Year, r.Method)
}

// Float returns a pointer to v, for populating optional metrics.
func Float(v float64) *float64 {
	return &v
}

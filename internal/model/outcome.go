package model

import "fmt"

// DisplayMode selects how a filtered set is reported.
type DisplayMode string

const (
	// ModeGrouped reports per-method means over the filtered rows.
	ModeGrouped DisplayMode = "grouped"
	// ModeFirstMatch reports the first matching row in table order.
	ModeFirstMatch DisplayMode = "first"
)

// ParseDisplayMode converts a configuration string into a DisplayMode.
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch DisplayMode(s) {
	case ModeGrouped, "":
		return ModeGrouped, nil
	case ModeFirstMatch:
		return ModeFirstMatch, nil
	default:
		return "", fmt.Errorf("unknown display mode %q (want grouped or first)", s)
	}
}

// FilterResultSet is the rows remaining after applying a FilterSelection.
type FilterResultSet []ResultRow

// MethodSummary holds the per-method means of a filtered set.
type MethodSummary struct {
	MeanMAPE       *float64
	MeanMSE        *float64
	Method         string
	MeanPrediction float64
	Count          int
}

// Outcome is the result of one query.
type Outcome struct {
	First     *ResultRow
	Selection FilterSelection
	Mode      DisplayMode
	Rows      FilterResultSet
	Summaries []MethodSummary
	NoMatch   bool
}

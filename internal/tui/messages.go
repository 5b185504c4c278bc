package tui

import "github.com/Veraticus/stunting-dashboard/internal/model"

// statusLevel orders notices by severity.
type statusLevel int

const (
	statusInfo statusLevel = iota
	statusSuccess
	statusWarning
	statusError
)

type status struct {
	text  string
	level statusLevel
}

// prefillMsg carries feature values for the selected region and year.
type prefillMsg struct {
	features model.InputFeatures
}

// Package query derives selector domains from the results table, validates
// the prediction form and runs filter-and-aggregate queries.
package query

import (
	"slices"
	"strconv"

	"github.com/Veraticus/stunting-dashboard/internal/model"
)

// Domains are the selectable values for each filter dimension. Every list
// starts with its "all" sentinel.
type Domains struct {
	Regions []string
	Years   []string
	Methods []string
}

// ExtractDomains collects the distinct regions and methods in first-occurrence
// order and the distinct years ascending. Empty values are left out.
func ExtractDomains(rows []model.ResultRow) Domains {
	regions := []string{model.AllRegions}
	methods := []string{model.AllMethods}
	seenRegion := make(map[string]bool)
	seenMethod := make(map[string]bool)
	seenYear := make(map[int]bool)
	var years []int

	for _, row := range rows {
		if row.Region != "" && !seenRegion[row.Region] {
			seenRegion[row.Region] = true
			regions = append(regions, row.Region)
		}
		if row.Method != "" && !seenMethod[row.Method] {
			seenMethod[row.Method] = true
			methods = append(methods, row.Method)
		}
		if row.HasYear() && !seenYear[row.Year] {
			seenYear[row.Year] = true
			years = append(years, row.Year)
		}
	}

	slices.Sort(years)

	yearLabels := make([]string, 0, len(years)+1)
	yearLabels = append(yearLabels, model.AllYears)
	for _, y := range years {
		yearLabels = append(yearLabels, strconv.Itoa(y))
	}

	return Domains{
		Regions: regions,
		Years:   yearLabels,
		Methods: methods,
	}
}

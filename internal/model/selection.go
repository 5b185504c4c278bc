package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Sentinel selector values meaning "no constraint on this dimension".
const (
	AllRegions = "Semua Kabupaten/Kota"
	AllYears   = "Semua Tahun"
	AllMethods = "Semua Metode"
)

// FilterSelection holds one optional equality constraint per dimension.
// A nil field means every value of that dimension matches.
type FilterSelection struct {
	Region *string
	Year   *int
	Method *string
}

// ParseSelection builds a selection from selector strings. Empty strings and
// the "all" sentinels leave the dimension unconstrained.
func ParseSelection(region, year, method string) (FilterSelection, error) {
	var sel FilterSelection

	if r := strings.TrimSpace(region); r != "" && r != AllRegions {
		sel.Region = &r
	}

	if y := strings.TrimSpace(year); y != "" && y != AllYears {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			return FilterSelection{}, fmt.Errorf("invalid year %q: %w", year, err)
		}
		sel.Year = &parsed
	}

	if m := strings.TrimSpace(method); m != "" && m != AllMethods {
		sel.Method = &m
	}

	return sel, nil
}

// Matches reports whether a row satisfies every concrete constraint.
func (s FilterSelection) Matches(row ResultRow) bool {
	if s.Region != nil && row.Region != *s.Region {
		return false
	}
	if s.Year != nil && row.Year != *s.Year {
		return false
	}
	if s.Method != nil && row.Method != *s.Method {
		return false
	}
	return true
}

// RegionLabel returns the selected region or its sentinel.
func (s FilterSelection) RegionLabel() string {
	if s.Region == nil {
		return AllRegions
	}
	return *s.Region
}

// YearLabel returns the selected year or its sentinel.
func (s FilterSelection) YearLabel() string {
	if s.Year == nil {
		return AllYears
	}
	return strconv.Itoa(*s.Year)
}

// MethodLabel returns the selected method or its sentinel.
func (s FilterSelection) MethodLabel() string {
	if s.Method == nil {
		return AllMethods
	}
	return *s.Method
}

// String renders the selection for logs and notices.
func (s FilterSelection) String() string {
	return fmt.Sprintf("%s / %s / %s", s.RegionLabel(), s.YearLabel(), s.MethodLabel())
}

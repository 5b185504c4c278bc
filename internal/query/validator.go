package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/stunting-dashboard/internal/common"
	"github.com/Veraticus/stunting-dashboard/internal/model"
)

// Reason classifies a rejected input.
type Reason string

// Rejection reasons.
const (
	ReasonNotNumeric  Reason = "not numeric"
	ReasonNonPositive Reason = "not positive"
)

// ValidationError reports the first field that failed validation.
type ValidationError struct {
	Field  model.FeatureName
	Reason Reason
	Value  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q is %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return common.ErrValidation
}

// RawInputs holds the free text typed into each form field.
type RawInputs map[model.FeatureName]string

// ValidateInputs parses every field and then requires every value to be
// strictly positive. Parsing failures are reported before positivity
// failures; within each pass the first field in form order wins. Nothing is
// defaulted: a missing field is not numeric.
func ValidateInputs(raw RawInputs) (model.InputFeatures, error) {
	var features model.InputFeatures

	for _, name := range model.FeatureNames {
		text := raw[name]
		v, err := parseInput(text)
		if err != nil {
			return model.InputFeatures{}, &ValidationError{Field: name, Reason: ReasonNotNumeric, Value: text}
		}
		features.Set(name, v)
	}

	for _, name := range model.FeatureNames {
		if v := features.Get(name); v <= 0 {
			return model.InputFeatures{}, &ValidationError{Field: name, Reason: ReasonNonPositive, Value: raw[name]}
		}
	}

	return features, nil
}

// FormatInputs renders features back into form text.
func FormatInputs(f model.InputFeatures) RawInputs {
	raw := make(RawInputs, len(model.FeatureNames))
	for _, name := range model.FeatureNames {
		raw[name] = strconv.FormatFloat(f.Get(name), 'f', -1, 64)
	}
	return raw
}

func parseInput(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", text)
	}
	return v, nil
}

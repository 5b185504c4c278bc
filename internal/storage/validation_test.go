package storage

import (
	"errors"
	"math"
	"testing"

	"github.com/Veraticus/stunting-dashboard/internal/model"
)

func TestValidateResults(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		rows    []model.ResultRow
	}{
		{name: "nil rows", rows: nil, wantErr: ErrNilParameter},
		{name: "empty rows", rows: []model.ResultRow{}},
		{name: "valid", rows: []model.ResultRow{{Region: "A", Year: 2020, Method: "SVR", Prediction: 1}}},
		{name: "nan prediction", rows: []model.ResultRow{{Prediction: math.NaN()}}, wantErr: ErrInvalidRow},
		{name: "infinite mse", rows: []model.ResultRow{{Prediction: 1, MSE: model.Float(math.Inf(1))}}, wantErr: ErrInvalidRow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResults(tt.rows)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateResults() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	if _, err := NewSQLiteStorage("  "); !errors.Is(err, ErrEmptyString) {
		t.Errorf("NewSQLiteStorage(\"  \") = %v, want ErrEmptyString", err)
	}
}

func TestOpenReadOnly_NilContext(t *testing.T) {
	//nolint:staticcheck // nil context is the case under test
	if _, err := OpenReadOnly(nil, "x.db"); !errors.Is(err, ErrNilContext) {
		t.Errorf("OpenReadOnly(nil) = %v, want ErrNilContext", err)
	}
}

package components

import (
	"testing"

	"github.com/Veraticus/stunting-dashboard/internal/model"
	"github.com/Veraticus/stunting-dashboard/internal/tui/themes"
	"github.com/stretchr/testify/assert"
)

func TestResultsModel_Preview(t *testing.T) {
	results := NewResultsModel(themes.Default)
	assert.True(t, results.Empty())

	results.SetPreview(model.FilterResultSet{
		{Region: "Bandung", Year: 2020, Method: "SVR", Prediction: 27.5, MAPE: model.Float(0.25)},
		{Region: "Bogor", Year: 2021, Method: "DT", Prediction: 31.0},
	})

	view := results.View()
	assert.False(t, results.Empty())
	assert.Contains(t, view, "Data Terfilter (2 baris)")
	assert.Contains(t, view, "Bandung")
	assert.Contains(t, view, "Bogor")
	assert.Contains(t, view, "0.2500")
	assert.NotContains(t, view, "27.5")
}

func TestResultsModel_Summaries(t *testing.T) {
	results := NewResultsModel(themes.Default)
	results.SetPreview(model.FilterResultSet{{Region: "Bandung", Year: 2020, Method: "SVR"}})

	results.SetSummaries([]model.MethodSummary{
		{Method: "SVR", Count: 2, MeanPrediction: 15},
		{Method: "DT", Count: 1, MeanPrediction: 12},
	})

	view := results.View()
	assert.Contains(t, view, "Prediksi per Metode")
	assert.Contains(t, view, "15.00%")
	assert.Contains(t, view, "12.00%")
	assert.NotContains(t, view, "Bandung")
}

func TestResultsModel_EmptyPreview(t *testing.T) {
	results := NewResultsModel(themes.Default)
	results.SetPreview(nil)

	assert.True(t, results.Empty())
	assert.Contains(t, results.View(), "(0 baris)")
}

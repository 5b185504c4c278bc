package tui

import (
	"testing"

	"github.com/Veraticus/stunting-dashboard/internal/dataset"
	"github.com/Veraticus/stunting-dashboard/internal/model"
	ttest "github.com/Veraticus/stunting-dashboard/internal/tui/testing"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Sources: dataset.Sources{ResultsPath: "stunting.csv", FeaturesPath: "data_mentah.csv"},
		Results: []model.ResultRow{
			{Region: "A", Year: 2020, Method: "SVR", Prediction: 10.0},
			{Region: "A", Year: 2020, Method: "DT", Prediction: 12.0},
			{Region: "B", Year: 2020, Method: "SVR", Prediction: 20.0},
		},
		Features: []model.FeatureRow{
			{Region: "A", Year: 2020, Values: model.InputFeatures{
				LowBirthWeight:     5.2,
				PostpartumVitaminA: 90,
				AntenatalK4:        85,
				HDI:                70.1,
				DrinkingWater:      88,
				Sanitation:         75,
			}},
		},
	}
}

func newTestModel(t *testing.T, opts ...Option) Model {
	t.Helper()
	opts = append([]Option{WithDataset(testDataset()), WithSize(120, 60)}, opts...)
	m, err := New(opts...)
	require.NoError(t, err)
	return m
}

func view(m tea.Model) string {
	return ttest.StripANSI(m.View())
}

// fillAndCheck types one value per input field, starting from the region
// selector, and presses the check button.
func fillAndCheck(m tea.Model, values ...string) tea.Model {
	seq := ttest.NewInputSequence().Repeat(ttest.KeyTab(), focusFirstInput)
	for _, v := range values {
		seq.Type(v).Add(ttest.KeyTab())
	}
	seq.Add(ttest.KeyEnter())
	return seq.Apply(m)
}

func TestNew_RequiresDataset(t *testing.T) {
	_, err := New()
	assert.ErrorIs(t, err, ErrNoDataset)
}

func TestModel_InitialView(t *testing.T) {
	m := newTestModel(t)
	out := view(m)

	assert.Contains(t, out, "Dashboard Prevalensi Stunting")
	assert.Contains(t, out, model.AllRegions)
	assert.Contains(t, out, model.AllYears)
	assert.Contains(t, out, model.AllMethods)
	assert.Contains(t, out, "Data Terfilter (3 baris)")
	assert.Contains(t, out, "Check Stunting")
	for _, name := range model.FeatureNames {
		assert.Contains(t, out, name.Label())
	}
}

func TestModel_SelectorCyclingUpdatesPreview(t *testing.T) {
	m := ttest.NewInputSequence(ttest.KeyRight(), ttest.KeyRight()).Apply(newTestModel(t))

	out := view(m)
	assert.Contains(t, out, "◀ B ▶")
	assert.Contains(t, out, "Data Terfilter (1 baris)")

	m = ttest.Send(m, ttest.KeyLeft())
	assert.Contains(t, view(m), "Data Terfilter (2 baris)")
}

func TestModel_NoMatchingPreview(t *testing.T) {
	// Region B, method DT.
	m := ttest.NewInputSequence(
		ttest.KeyRight(), ttest.KeyRight(),
		ttest.KeyTab(), ttest.KeyTab(),
		ttest.KeyRight(), ttest.KeyRight(),
	).Apply(newTestModel(t))

	out := view(m)
	assert.Contains(t, out, "Tidak ada data untuk kombinasi filter yang dipilih.")
	assert.Contains(t, out, "(0 baris)")
}

func TestModel_PrefillFromFeatures(t *testing.T) {
	m := ttest.NewInputSequence(
		ttest.KeyRight(), // A
		ttest.KeyTab(),
		ttest.KeyRight(), // 2020
	).Apply(newTestModel(t))

	dm, ok := m.(Model)
	require.True(t, ok)
	values := dm.form.Values()
	assert.Equal(t, "5.2", values[model.FeatureLowBirthWeight])
	assert.Equal(t, "70.1", values[model.FeatureHDI])
	assert.Contains(t, view(m), "Input diisi dari data mentah.")
}

func TestModel_CheckRejectsInvalidInputs(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		field  model.FeatureName
	}{
		{name: "empty fields", values: nil, field: model.FeatureLowBirthWeight},
		{name: "not numeric", values: []string{"5", "90", "abc", "70", "88", "75"}, field: model.FeatureAntenatalK4},
		{name: "zero", values: []string{"5", "90", "85", "70", "0", "75"}, field: model.FeatureDrinkingWater},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m tea.Model = newTestModel(t)
			if tt.values == nil {
				// Shift+Tab from the first selector lands on the button.
				m = ttest.NewInputSequence(ttest.KeyShiftTab(), ttest.KeyEnter()).Apply(m)
			} else {
				m = fillAndCheck(m, tt.values...)
			}

			notice := ttest.LineContaining(view(m), "Masukkan angka")
			assert.Contains(t, notice, "Masukkan angka yang valid untuk semua input.")
			assert.Contains(t, notice, tt.field.Label())

			_, checked := m.(Model).Outcome()
			assert.False(t, checked)
		})
	}
}

func TestModel_CheckGrouped(t *testing.T) {
	m := fillAndCheck(newTestModel(t), "5", "90", "85", "70", "88", "75")

	outcome, ok := m.(Model).Outcome()
	require.True(t, ok)
	require.Len(t, outcome.Summaries, 2)

	out := view(m)
	assert.Contains(t, out, "Prediksi per Metode")
	assert.Contains(t, ttest.LineContaining(out, "SVR"), "15.00%")
	assert.Contains(t, ttest.LineContaining(out, "DT"), "12.00%")
	assert.Contains(t, out, "2 metode, 3 baris data")
}

func TestModel_CheckNoMatch(t *testing.T) {
	// Region B, method DT, then fill the form.
	m := ttest.NewInputSequence(
		ttest.KeyRight(), ttest.KeyRight(),
		ttest.KeyTab(), ttest.KeyTab(),
		ttest.KeyRight(), ttest.KeyRight(),
		ttest.KeyTab(),
	).Apply(newTestModel(t))
	m = ttest.NewInputSequence().
		Type("5").Add(ttest.KeyTab()).
		Type("90").Add(ttest.KeyTab()).
		Type("85").Add(ttest.KeyTab()).
		Type("70").Add(ttest.KeyTab()).
		Type("88").Add(ttest.KeyTab()).
		Type("75").Add(ttest.KeyTab(), ttest.KeyEnter()).
		Apply(m)

	outcome, ok := m.(Model).Outcome()
	require.True(t, ok)
	assert.True(t, outcome.NoMatch)
	assert.Contains(t, view(m), "Tidak ada data untuk B pada tahun Semua Tahun.")
}

func TestModel_ToggleModeRerunsCheck(t *testing.T) {
	// Region A only.
	m := ttest.Send(newTestModel(t), ttest.KeyRight())
	m = fillAndCheck(m, "5", "90", "85", "70", "88", "75")

	// Focus is on the button, so "m" toggles the mode.
	m = ttest.Send(m, ttest.KeyPress("m"))

	outcome, ok := m.(Model).Outcome()
	require.True(t, ok)
	assert.Equal(t, model.ModeFirstMatch, outcome.Mode)
	require.NotNil(t, outcome.First)
	assert.Equal(t, "SVR", outcome.First.Method)

	out := view(m)
	assert.Contains(t, out, "Prediksi Prevalensi Stunting: 10.00%")
	assert.Contains(t, out, "mode: baris pertama")

	m = ttest.Send(m, ttest.KeyPress("m"))
	outcome, _ = m.(Model).Outcome()
	assert.Equal(t, model.ModeGrouped, outcome.Mode)
	assert.Len(t, outcome.Summaries, 2)
}

func TestModel_InitialMode(t *testing.T) {
	m := newTestModel(t, WithMode(model.ModeFirstMatch))
	assert.Contains(t, view(m), "mode: baris pertama")
}

func TestModel_TypingIntoInputDoesNotQuit(t *testing.T) {
	m := ttest.NewInputSequence().
		Repeat(ttest.KeyTab(), focusFirstInput).
		Type("q").
		Apply(newTestModel(t))

	dm := m.(Model)
	assert.False(t, dm.quitting)
	assert.Equal(t, "q", dm.form.Values()[model.FeatureLowBirthWeight])
}

func TestModel_Quit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{name: "q", msg: ttest.KeyPress("q")},
		{name: "ctrl+c", msg: ttest.KeyCtrlC()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cmd := newTestModel(t).Update(tt.msg)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, m.View())
		})
	}
}

func TestModel_ClearInputs(t *testing.T) {
	m := ttest.NewInputSequence(ttest.KeyRight(), ttest.KeyTab(), ttest.KeyRight()).Apply(newTestModel(t))
	m = ttest.Send(m, tea.KeyMsg{Type: tea.KeyCtrlR})

	values := m.(Model).form.Values()
	for _, name := range model.FeatureNames {
		assert.Empty(t, values[name])
	}
}

func TestModel_WindowResize(t *testing.T) {
	m := ttest.Send(newTestModel(t), ttest.WindowSize(60, 30))
	dm := m.(Model)
	assert.Equal(t, 60, dm.width)
	assert.Equal(t, 30, dm.height)
}

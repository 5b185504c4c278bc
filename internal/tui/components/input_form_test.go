package components

import (
	"testing"

	"github.com/Veraticus/stunting-dashboard/internal/model"
	"github.com/Veraticus/stunting-dashboard/internal/query"
	"github.com/Veraticus/stunting-dashboard/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func typeText(form InputFormModel, text string) InputFormModel {
	for _, r := range text {
		form, _ = form.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return form
}

func TestInputFormModel_TypingGoesToFocusedField(t *testing.T) {
	form := NewInputFormModel(themes.Default)
	assert.Equal(t, len(model.FeatureNames), form.Len())

	// Nothing focused yet.
	form = typeText(form, "9")
	assert.Empty(t, form.Values()[model.FeatureLowBirthWeight])

	form.Focus(3)
	form = typeText(form, "71.5")

	values := form.Values()
	assert.Equal(t, "71.5", values[model.FeatureHDI])
	assert.Empty(t, values[model.FeatureLowBirthWeight])

	form.Blur()
	form = typeText(form, "0")
	assert.Equal(t, "71.5", form.Values()[model.FeatureHDI])
}

func TestInputFormModel_SetValues(t *testing.T) {
	form := NewInputFormModel(themes.Default)

	form.SetValues(query.RawInputs{
		model.FeatureSanitation:  "80",
		model.FeatureAntenatalK4: "92.1",
	})

	values := form.Values()
	assert.Equal(t, "80", values[model.FeatureSanitation])
	assert.Equal(t, "92.1", values[model.FeatureAntenatalK4])
	assert.Empty(t, values[model.FeatureDrinkingWater])
}

func TestInputFormModel_View(t *testing.T) {
	view := NewInputFormModel(themes.Default).View()
	for _, name := range model.FeatureNames {
		assert.Contains(t, view, name.Label())
	}
}

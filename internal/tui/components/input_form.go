package components

import (
	"github.com/Veraticus/stunting-dashboard/internal/model"
	"github.com/Veraticus/stunting-dashboard/internal/query"
	"github.com/Veraticus/stunting-dashboard/internal/tui/themes"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// InputFormModel holds one text field per input feature.
type InputFormModel struct {
	theme  themes.Theme
	inputs []textinput.Model
	focus  int
}

// NewInputFormModel creates an empty form. No field is focused.
func NewInputFormModel(theme themes.Theme) InputFormModel {
	inputs := make([]textinput.Model, len(model.FeatureNames))
	for i := range model.FeatureNames {
		ti := textinput.New()
		ti.Placeholder = "0.00"
		ti.CharLimit = 16
		ti.Width = 12
		ti.Prompt = ""
		ti.Cursor.SetMode(cursor.CursorStatic)
		inputs[i] = ti
	}

	return InputFormModel{
		theme:  theme,
		inputs: inputs,
		focus:  -1,
	}
}

// Len returns the number of fields.
func (m InputFormModel) Len() int {
	return len(m.inputs)
}

// Focus focuses field i and blurs the others.
func (m *InputFormModel) Focus(i int) tea.Cmd {
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	m.focus = i
	return cmd
}

// Blur removes focus from every field.
func (m *InputFormModel) Blur() {
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.focus = -1
}

// Update forwards msg to the focused field.
func (m InputFormModel) Update(msg tea.Msg) (InputFormModel, tea.Cmd) {
	if m.focus < 0 || m.focus >= len(m.inputs) {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// Values returns the raw text of every field keyed by feature.
func (m InputFormModel) Values() query.RawInputs {
	raw := make(query.RawInputs, len(m.inputs))
	for i, name := range model.FeatureNames {
		raw[name] = m.inputs[i].Value()
	}
	return raw
}

// SetValues replaces the text of the fields present in raw.
func (m *InputFormModel) SetValues(raw query.RawInputs) {
	for i, name := range model.FeatureNames {
		if v, ok := raw[name]; ok {
			m.inputs[i].SetValue(v)
		}
	}
}

// View renders the labeled fields, one per line.
func (m InputFormModel) View() string {
	labelStyle := lipgloss.NewStyle().Width(44).Foreground(m.theme.Muted)
	activeLabel := labelStyle.Foreground(m.theme.Primary).Bold(true)

	lines := make([]string, len(m.inputs))
	for i, name := range model.FeatureNames {
		style := labelStyle
		if i == m.focus {
			style = activeLabel
		}
		lines[i] = lipgloss.JoinHorizontal(lipgloss.Top,
			style.Render(name.Label()),
			m.inputs[i].View(),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

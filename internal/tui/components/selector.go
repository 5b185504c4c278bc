package components

import (
	"github.com/Veraticus/stunting-dashboard/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SelectorModel cycles through a fixed list of options with the arrow keys.
type SelectorModel struct {
	theme   themes.Theme
	label   string
	options []string
	index   int
	focused bool
}

// NewSelectorModel creates a selector positioned on the first option.
func NewSelectorModel(label string, options []string, theme themes.Theme) SelectorModel {
	return SelectorModel{
		label:   label,
		options: options,
		theme:   theme,
	}
}

// Update moves the selection when focused. A change is announced with a
// SelectionChangedMsg.
func (m SelectorModel) Update(msg tea.Msg) (SelectorModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused || len(m.options) == 0 {
		return m, nil
	}

	previous := m.index
	switch keyMsg.String() {
	case "right", "l":
		m.index = (m.index + 1) % len(m.options)
	case "left", "h":
		m.index = (m.index + len(m.options) - 1) % len(m.options)
	case "home":
		m.index = 0
	case "end":
		m.index = len(m.options) - 1
	}

	if m.index == previous {
		return m, nil
	}

	changed := SelectionChangedMsg{Label: m.label, Value: m.Value()}
	return m, func() tea.Msg { return changed }
}

// View renders the label and the current option.
func (m SelectorModel) View() string {
	label := lipgloss.NewStyle().Width(24).Foreground(m.theme.Muted).Render(m.label)

	value := m.Value()
	if m.focused {
		value = m.theme.Selected.Render("◀ " + value + " ▶")
	} else {
		value = m.theme.Normal.Render("  " + value + "  ")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, label, value)
}

// Value returns the current option, or "" when there are none.
func (m SelectorModel) Value() string {
	if len(m.options) == 0 {
		return ""
	}
	return m.options[m.index]
}

// Label returns the selector label.
func (m SelectorModel) Label() string {
	return m.label
}

// SetValue moves to value if it is one of the options.
func (m *SelectorModel) SetValue(value string) bool {
	for i, opt := range m.options {
		if opt == value {
			m.index = i
			return true
		}
	}
	return false
}

// Focus gives the selector keyboard focus.
func (m *SelectorModel) Focus() {
	m.focused = true
}

// Blur removes keyboard focus.
func (m *SelectorModel) Blur() {
	m.focused = false
}

// Focused reports whether the selector has focus.
func (m SelectorModel) Focused() bool {
	return m.focused
}

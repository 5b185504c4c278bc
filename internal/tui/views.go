package tui

import (
	"fmt"

	"github.com/Veraticus/stunting-dashboard/internal/cli"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderFilters(),
		m.renderInputs(),
		m.renderStatus(),
		m.results.View(),
	}
	if m.config.ShowHelp {
		sections = append(sections, "", m.help.View(m.keymap))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width > 0 {
		content = lipgloss.NewStyle().MaxWidth(m.width).Render(content)
	}
	return content
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render(cli.ChildIcon + " Dashboard Prevalensi Stunting")

	src := m.dataset.Sources
	subtitle := m.theme.Subtitle.Render(fmt.Sprintf("%s · %d baris · mode: %s",
		src.ResultsPath, len(m.dataset.Results), modeLabel(m.engine.Mode())))

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
}

func (m Model) renderFilters() string {
	lines := make([]string, 0, len(m.selectors)+1)
	lines = append(lines, m.theme.Bold.Render("Filter"))
	for _, s := range m.selectors {
		lines = append(lines, s.View())
	}
	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderInputs() string {
	button := m.theme.Button.Render("Check Stunting")
	if m.focus == m.focusCheck() {
		button = m.theme.ButtonActive.Render("Check Stunting")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Bold.Render("Input Data"),
		m.form.View(),
		"",
		button,
	)
	return m.theme.RoundedBox.Render(content)
}

func (m Model) renderStatus() string {
	if m.status.text == "" {
		return ""
	}

	switch m.status.level {
	case statusSuccess:
		return m.theme.StatusSuccess.Render(cli.SuccessIcon + " " + m.status.text)
	case statusWarning:
		return m.theme.StatusWarning.Render(cli.WarningIcon + " " + m.status.text)
	case statusError:
		return m.theme.StatusError.Render(cli.ErrorIcon + " " + m.status.text)
	default:
		return m.theme.StatusInfo.Render(m.status.text)
	}
}

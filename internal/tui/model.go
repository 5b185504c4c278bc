// Package tui implements the interactive stunting dashboard.
package tui

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/stunting-dashboard/internal/cli"
	"github.com/Veraticus/stunting-dashboard/internal/dataset"
	"github.com/Veraticus/stunting-dashboard/internal/model"
	"github.com/Veraticus/stunting-dashboard/internal/query"
	"github.com/Veraticus/stunting-dashboard/internal/tui/components"
	"github.com/Veraticus/stunting-dashboard/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoDataset is returned when the dashboard is built without data.
var ErrNoDataset = errors.New("dashboard requires a loaded dataset")

// Focus positions, in tab order: the three selectors, one per input field,
// then the check button.
const (
	focusRegion = iota
	focusYear
	focusMethod
	focusFirstInput
)

// Selector labels.
const (
	labelRegion = "Kabupaten/Kota"
	labelYear   = "Tahun"
	labelMethod = "Metode"
)

// Model holds the dashboard state.
type Model struct {
	theme     themes.Theme
	dataset   *dataset.Dataset
	engine    *query.Engine
	outcome   *model.Outcome
	status    status
	help      help.Model
	keymap    KeyMap
	selectors []components.SelectorModel
	form      components.InputFormModel
	results   components.ResultsModel
	config    Config
	focus     int
	width     int
	height    int
	quitting  bool
}

// New creates a dashboard over the configured dataset.
func New(opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Dataset == nil {
		return Model{}, ErrNoDataset
	}

	domains := query.ExtractDomains(cfg.Dataset.Results)

	h := help.New()
	h.Width = cfg.Width

	m := Model{
		theme:   cfg.Theme,
		dataset: cfg.Dataset,
		engine:  query.NewEngine(cfg.Dataset.Results, cfg.Mode),
		config:  cfg,
		keymap:  DefaultKeyMap(),
		help:    h,
		selectors: []components.SelectorModel{
			components.NewSelectorModel(labelRegion, domains.Regions, cfg.Theme),
			components.NewSelectorModel(labelYear, domains.Years, cfg.Theme),
			components.NewSelectorModel(labelMethod, domains.Methods, cfg.Theme),
		},
		form:    components.NewInputFormModel(cfg.Theme),
		results: components.NewResultsModel(cfg.Theme),
		width:   cfg.Width,
		height:  cfg.Height,
	}

	m.applyFocus()
	m.refreshPreview()

	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case components.SelectionChangedMsg:
		slog.Debug("Selection changed", "selector", msg.Label, "value", msg.Value)
		m.outcome = nil
		m.refreshPreview()
		return m, m.prefillCmd()

	case prefillMsg:
		m.form.SetValues(query.FormatInputs(msg.features))
		if m.status.text == "" {
			m.status = status{text: "Input diisi dari data mentah.", level: statusInfo}
		}
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.NextField):
		return m, m.moveFocus(1)
	case key.Matches(msg, m.keymap.PrevField):
		return m, m.moveFocus(-1)
	case key.Matches(msg, m.keymap.Clear):
		m.form.SetValues(emptyInputs())
		m.outcome = nil
		m.status = status{}
		return m, nil
	}

	// Text fields take every other key, enter moves on to the next field.
	if m.focusedInput() >= 0 {
		if key.Matches(msg, m.keymap.Check) {
			return m, m.moveFocus(1)
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keymap.ToggleMode):
		m.toggleMode()
		return m, nil
	case key.Matches(msg, m.keymap.Check):
		if m.focus == m.focusCheck() {
			m.runCheck()
			return m, nil
		}
		return m, m.moveFocus(1)
	}

	if m.focus < len(m.selectors) {
		var cmd tea.Cmd
		m.selectors[m.focus], cmd = m.selectors[m.focus].Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) focusCheck() int {
	return focusFirstInput + m.form.Len()
}

// focusedInput returns the index of the focused text field, or -1.
func (m Model) focusedInput() int {
	if m.focus >= focusFirstInput && m.focus < m.focusCheck() {
		return m.focus - focusFirstInput
	}
	return -1
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	total := m.focusCheck() + 1
	m.focus = (m.focus + delta + total) % total
	return m.applyFocus()
}

func (m *Model) applyFocus() tea.Cmd {
	for i := range m.selectors {
		if i == m.focus {
			m.selectors[i].Focus()
		} else {
			m.selectors[i].Blur()
		}
	}

	if i := m.focusedInput(); i >= 0 {
		return m.form.Focus(i)
	}
	m.form.Blur()
	return nil
}

// selection reads the three selectors.
func (m Model) selection() (model.FilterSelection, error) {
	return model.ParseSelection(
		m.selectors[focusRegion].Value(),
		m.selectors[focusYear].Value(),
		m.selectors[focusMethod].Value(),
	)
}

// refreshPreview re-filters the table for the current selection.
func (m *Model) refreshPreview() {
	sel, err := m.selection()
	if err != nil {
		m.status = status{text: err.Error(), level: statusError}
		return
	}

	rows := m.engine.Preview(sel)
	m.results.SetPreview(rows)

	if len(rows) == 0 {
		m.status = status{text: cli.NoMatchNotice, level: statusWarning}
		return
	}
	m.status = status{}
}

// prefillCmd looks up the raw features of the selected region and year.
func (m Model) prefillCmd() tea.Cmd {
	sel, err := m.selection()
	if err != nil || sel.Region == nil || sel.Year == nil {
		return nil
	}

	ds, region, year := m.dataset, *sel.Region, *sel.Year
	return func() tea.Msg {
		features, ok := ds.LookupFeatures(region, year)
		if !ok {
			return nil
		}
		return prefillMsg{features: features}
	}
}

// runCheck validates the inputs and queries the engine.
func (m *Model) runCheck() {
	sel, err := m.selection()
	if err != nil {
		m.status = status{text: err.Error(), level: statusError}
		return
	}

	features, err := query.ValidateInputs(m.form.Values())
	if err != nil {
		m.outcome = nil
		m.status = status{text: validationNotice(err), level: statusError}
		return
	}

	outcome := m.engine.Run(sel, features)
	m.outcome = &outcome

	switch {
	case outcome.NoMatch:
		m.results.SetPreview(outcome.Rows)
		m.status = status{text: cli.NoMatchFor(sel), level: statusWarning}
	case outcome.First != nil:
		m.results.SetPreview(outcome.Rows)
		m.status = status{
			text:  fmt.Sprintf("Prediksi Prevalensi Stunting: %.2f%%", outcome.First.Prediction),
			level: statusSuccess,
		}
	default:
		m.results.SetSummaries(outcome.Summaries)
		m.status = status{
			text:  fmt.Sprintf("%d metode, %d baris data", len(outcome.Summaries), len(outcome.Rows)),
			level: statusSuccess,
		}
	}
}

func (m *Model) toggleMode() {
	next := model.ModeFirstMatch
	if m.engine.Mode() == model.ModeFirstMatch {
		next = model.ModeGrouped
	}
	m.engine = m.engine.WithMode(next)
	m.config.Mode = next

	if m.outcome != nil {
		m.runCheck()
		return
	}
	m.status = status{text: "Mode tampilan: " + modeLabel(next), level: statusInfo}
}

// Outcome returns the last checked outcome, if any.
func (m Model) Outcome() (model.Outcome, bool) {
	if m.outcome == nil {
		return model.Outcome{}, false
	}
	return *m.outcome, true
}

func validationNotice(err error) string {
	var verr *query.ValidationError
	if errors.As(err, &verr) {
		return fmt.Sprintf("%s (%s)", cli.InvalidInputText, verr.Field.Label())
	}
	return cli.InvalidInputText
}

func emptyInputs() query.RawInputs {
	raw := make(query.RawInputs, len(model.FeatureNames))
	for _, name := range model.FeatureNames {
		raw[name] = ""
	}
	return raw
}

func modeLabel(mode model.DisplayMode) string {
	if mode == model.ModeFirstMatch {
		return "baris pertama"
	}
	return "rata-rata per metode"
}

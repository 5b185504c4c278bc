package tui

import (
	"github.com/Veraticus/stunting-dashboard/internal/dataset"
	"github.com/Veraticus/stunting-dashboard/internal/model"
	"github.com/Veraticus/stunting-dashboard/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme     themes.Theme
	Dataset   *dataset.Dataset
	Mode      model.DisplayMode
	Width     int
	Height    int
	ShowHelp  bool
	AltScreen bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Mode:      model.ModeGrouped,
		Width:     100,
		Height:    40,
		ShowHelp:  true,
		AltScreen: true,
	}
}

// WithDataset sets the loaded tables the dashboard queries.
func WithDataset(ds *dataset.Dataset) Option {
	return func(c *Config) {
		c.Dataset = ds
	}
}

// WithMode sets the initial display mode.
func WithMode(mode model.DisplayMode) Option {
	return func(c *Config) {
		c.Mode = mode
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithHelp toggles the key help footer.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}

// WithAltScreen controls whether the program takes over the full terminal.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}

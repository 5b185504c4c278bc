// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/stunting-dashboard/internal/common"
	"github.com/Veraticus/stunting-dashboard/internal/model"
	"github.com/spf13/viper"
)

// Default source file names, matching the files the dashboard ships with.
const (
	DefaultResultsPath  = "stunting.csv"
	DefaultFeaturesPath = "data_mentah.csv"
)

// DataConfig describes where the dashboard reads its tables from and how
// query results are reported.
type DataConfig struct {
	ResultsPath  string
	FeaturesPath string
	Sheet        string // Worksheet name for .xlsx sources; empty means the first sheet
	Mode         model.DisplayMode
}

// DefaultDataConfig returns the configuration used when nothing is set.
func DefaultDataConfig() DataConfig {
	return DataConfig{
		ResultsPath:  DefaultResultsPath,
		FeaturesPath: DefaultFeaturesPath,
		Mode:         model.ModeGrouped,
	}
}

// LoadDataConfig loads the data configuration from Viper. It follows this precedence:
// 1. Viper configuration (flags, config file or STUNTING_ env vars)
// 2. Direct environment variables (STUNTING_RESULTS, STUNTING_FEATURES)
// 3. Default values
func LoadDataConfig() (*DataConfig, error) {
	cfg := DefaultDataConfig()

	if v := viper.GetString("data.results"); v != "" {
		cfg.ResultsPath = v
	} else if v := os.Getenv("STUNTING_RESULTS"); v != "" {
		cfg.ResultsPath = v
	}
	if v := viper.GetString("data.features"); v != "" {
		cfg.FeaturesPath = v
	} else if v := os.Getenv("STUNTING_FEATURES"); v != "" {
		cfg.FeaturesPath = v
	}
	cfg.Sheet = viper.GetString("data.sheet")

	mode, err := model.ParseDisplayMode(viper.GetString("query.mode"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	cfg.Mode = mode

	cfg.ResultsPath = ExpandPath(cfg.ResultsPath)
	cfg.FeaturesPath = ExpandPath(cfg.FeaturesPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that both sources are configured.
func (c DataConfig) Validate() error {
	if strings.TrimSpace(c.ResultsPath) == "" {
		return fmt.Errorf("%w: data.results", common.ErrMissingConfig)
	}
	if strings.TrimSpace(c.FeaturesPath) == "" {
		return fmt.Errorf("%w: data.features", common.ErrMissingConfig)
	}
	return nil
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}

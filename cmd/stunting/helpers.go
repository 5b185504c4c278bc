package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/stunting-dashboard/internal/cli"
	"github.com/Veraticus/stunting-dashboard/internal/common"
	"github.com/Veraticus/stunting-dashboard/internal/config"
	"github.com/Veraticus/stunting-dashboard/internal/dataset"
	"github.com/Veraticus/stunting-dashboard/internal/model"
	"github.com/Veraticus/stunting-dashboard/internal/query"
	"github.com/spf13/cobra"
)

// loadDataset reads both configured tables.
func loadDataset(ctx context.Context) (*dataset.Dataset, *config.DataConfig, error) {
	cfg, err := config.LoadDataConfig()
	if err != nil {
		return nil, nil, err
	}

	ds, err := dataset.Load(ctx, dataset.Sources{
		ResultsPath:  cfg.ResultsPath,
		FeaturesPath: cfg.FeaturesPath,
		Sheet:        cfg.Sheet,
	})
	if err != nil {
		var notFound *dataset.SourceNotFoundError
		if errors.As(err, &notFound) {
			msg := fmt.Sprintf("File '%s' tidak ditemukan. Harap pastikan file tersedia di folder yang sesuai.", notFound.Path)
			return nil, nil, common.NewUserError(msg, err)
		}
		return nil, nil, fmt.Errorf("failed to load data: %w", err)
	}

	return ds, cfg, nil
}

// addFilterFlags registers the three selector flags.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("region", "", "kabupaten/kota to filter on (default: all)")
	cmd.Flags().String("year", "", "year to filter on (default: all)")
	cmd.Flags().String("method", "", "modeling method to filter on (default: all)")
}

// selectionFromFlags builds a FilterSelection from the selector flags.
func selectionFromFlags(cmd *cobra.Command) (model.FilterSelection, error) {
	region, _ := cmd.Flags().GetString("region")
	year, _ := cmd.Flags().GetString("year")
	method, _ := cmd.Flags().GetString("method")

	sel, err := model.ParseSelection(region, year, method)
	if err != nil {
		return model.FilterSelection{}, common.NewUserError(fmt.Sprintf("Tahun tidak valid: %q", year), err)
	}
	return sel, nil
}

var featureFlagNames = map[model.FeatureName]string{
	model.FeatureLowBirthWeight:     "bblr",
	model.FeaturePostpartumVitaminA: "vita",
	model.FeatureAntenatalK4:        "k4",
	model.FeatureHDI:                "ipm",
	model.FeatureDrinkingWater:      "minum",
	model.FeatureSanitation:         "sanitasi",
}

// addFeatureFlags registers one flag per input feature.
func addFeatureFlags(cmd *cobra.Command) {
	for _, name := range model.FeatureNames {
		cmd.Flags().String(featureFlagNames[name], "", name.Label())
	}
}

// rawInputsFromFlags returns the feature flags that were set.
func rawInputsFromFlags(cmd *cobra.Command) query.RawInputs {
	raw := make(query.RawInputs, len(model.FeatureNames))
	for _, name := range model.FeatureNames {
		flag := featureFlagNames[name]
		if cmd.Flags().Changed(flag) {
			raw[name], _ = cmd.Flags().GetString(flag)
		}
	}
	return raw
}

// prefillInputs fills unset inputs from the raw indicator table when the
// selection names one region and one year.
func prefillInputs(ds *dataset.Dataset, sel model.FilterSelection, raw query.RawInputs) query.RawInputs {
	if sel.Region == nil || sel.Year == nil {
		return raw
	}
	features, ok := ds.LookupFeatures(*sel.Region, *sel.Year)
	if !ok {
		return raw
	}

	merged := query.FormatInputs(features)
	for name, v := range raw {
		merged[name] = v
	}
	return merged
}

// validationUserError wraps a validation failure with the form notice.
func validationUserError(err error) error {
	var verr *query.ValidationError
	if errors.As(err, &verr) {
		return common.NewUserError(
			fmt.Sprintf("%s (%s: %q)", cli.InvalidInputText, verr.Field.Label(), verr.Value), err)
	}
	return common.NewUserError(cli.InvalidInputText, err)
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/stunting-dashboard/internal/cli"
	"github.com/Veraticus/stunting-dashboard/internal/common"
	"github.com/Veraticus/stunting-dashboard/internal/model"
	"github.com/Veraticus/stunting-dashboard/internal/query"
	"github.com/Veraticus/stunting-dashboard/internal/report"
	"github.com/spf13/cobra"
)

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Filter the results table and report predictions",
		Long: `Filter the results table by kabupaten/kota, year and method and print the
predicted stunting prevalence.

In grouped mode every matching method is reported with its mean prediction,
MAPE and MSE. In first mode only the first matching row is reported.

With --check the six input features must all be positive numbers before the
query runs. Features not given as flags are taken from the raw indicator
table when one region and one year are selected; --prompt asks for them.`,
		Example: `  stunting query --region "Kabupaten Bandung" --year 2021
  stunting query --year 2020 --format csv
  stunting query --region "Kabupaten Bogor" --year 2021 --check --bblr 4.2 --ipm 71.3 ...`,
		RunE: runQuery,
	}

	addFilterFlags(cmd)
	addFeatureFlags(cmd)
	cmd.Flags().String("format", "table", "output format (table, csv, json)")
	cmd.Flags().Bool("check", false, "validate the six input features before querying")
	cmd.Flags().Bool("prompt", false, "ask for the input features interactively")
	cmd.Flags().Bool("rows", false, "also list the matching rows")

	return cmd
}

func runQuery(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "csv" && format != "json" {
		return fmt.Errorf("%w: %q (want table, csv or json)", common.ErrUnsupportedFormat, format)
	}

	ds, cfg, err := loadDataset(ctx)
	if err != nil {
		return err
	}

	sel, err := selectionFromFlags(cmd)
	if err != nil {
		return err
	}

	var features model.InputFeatures
	check, _ := cmd.Flags().GetBool("check")
	prompt, _ := cmd.Flags().GetBool("prompt")
	if check || prompt {
		raw := prefillInputs(ds, sel, rawInputsFromFlags(cmd))
		if prompt {
			raw, err = cli.NewPrompter(cmd.InOrStdin(), out).PromptFeatures(ctx, raw)
			if err != nil {
				return fmt.Errorf("failed to read inputs: %w", err)
			}
		}
		features, err = query.ValidateInputs(raw)
		if err != nil {
			return validationUserError(err)
		}
	}

	outcome := query.NewEngine(ds.Results, cfg.Mode).Run(sel, features)
	slog.Debug("Query finished", "selection", sel.String(), "rows", len(outcome.Rows), "no_match", outcome.NoMatch)

	switch format {
	case "csv":
		return report.WriteCSV(out, outcome)
	case "json":
		return report.WriteJSON(out, outcome)
	}

	if err := cli.WriteOutcome(out, outcome); err != nil {
		return err
	}
	if rows, _ := cmd.Flags().GetBool("rows"); rows && !outcome.NoMatch {
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
		return cli.WriteRows(out, outcome.Rows)
	}
	return nil
}

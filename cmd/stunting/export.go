package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/stunting-dashboard/internal/cli"
	"github.com/Veraticus/stunting-dashboard/internal/common"
	"github.com/Veraticus/stunting-dashboard/internal/config"
	"github.com/Veraticus/stunting-dashboard/internal/model"
	"github.com/Veraticus/stunting-dashboard/internal/query"
	"github.com/Veraticus/stunting-dashboard/internal/report"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a query result to CSV, JSON, Excel or a PNG chart",
		Long: `Run a query and write the result to a file. The format follows the
extension of --out:

  .csv   per-method summary
  .json  per-method summary with the selection
  .xlsx  workbook with a "Ringkasan" summary sheet and a "Data" sheet of matching rows
  .png   bar chart of the mean prediction per method`,
		Example: `  stunting export --year 2021 --out laporan.xlsx
  stunting export --region "Kota Bandung" --out grafik.png`,
		RunE: runExport,
	}

	addFilterFlags(cmd)
	cmd.Flags().String("out", "", "output file (required)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	outPath, _ := cmd.Flags().GetString("out")
	outPath = config.ExpandPath(outPath)
	if _, err := report.FormatFromPath(outPath); err != nil {
		return err
	}

	ds, cfg, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	sel, err := selectionFromFlags(cmd)
	if err != nil {
		return err
	}

	outcome := query.NewEngine(ds.Results, cfg.Mode).Run(sel, model.InputFeatures{})
	if err := report.WriteFile(outPath, outcome); err != nil {
		if errors.Is(err, report.ErrNoMatch) {
			return common.NewUserError(cli.NoMatchFor(sel), err)
		}
		return fmt.Errorf("failed to export: %w", err)
	}
	common.LogDebug("Report exported", common.Fields{"path": outPath, "rows": len(outcome.Rows)})

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Wrote "+outPath))
	return err
}

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/stunting-dashboard/internal/cli"
	"github.com/Veraticus/stunting-dashboard/internal/common"
	"github.com/Veraticus/stunting-dashboard/internal/config"
	"github.com/Veraticus/stunting-dashboard/internal/storage"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Build a SQLite snapshot of the configured tables",
		Long: `Read the results and raw indicator tables and store them in a SQLite
snapshot. The snapshot can then be used as --results and --features source:

  stunting import --db stunting.db
  stunting dashboard --results stunting.db --features stunting.db

Existing snapshot contents are replaced.`,
		RunE: runImport,
	}

	cmd.Flags().String("db", "", "snapshot database to write (required)")
	cmd.Flags().Bool("quiet", false, "hide the progress bar")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runImport(cmd *cobra.Command, _ []string) error {
	handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Import").
		WithHint("Nothing was committed for the table being written; run the import again.")
	ctx := handler.HandleInterrupts(cmd.Context())
	defer handler.Stop()

	ds, _, err := loadDataset(ctx)
	if err != nil {
		return err
	}

	dbPath, _ := cmd.Flags().GetString("db")
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			common.LogError(closeErr, "failed to close snapshot", common.Fields{"path": dbPath})
		}
	}()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	total := len(ds.Results) + len(ds.Features)
	bar := newImportBar(cmd, total, quiet)
	advance := func(n int) {
		if err := bar.Add(n); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}

	if err := store.ReplaceResults(ctx, ds.Results, advance); err != nil {
		return fmt.Errorf("failed to store results: %w", err)
	}
	if err := store.ReplaceFeatures(ctx, ds.Features, advance); err != nil {
		return fmt.Errorf("failed to store features: %w", err)
	}
	_ = bar.Finish()

	meta := storage.Metadata{
		ImportedAt:     time.Now().UTC(),
		ResultsSource:  ds.Sources.ResultsPath,
		FeaturesSource: ds.Sources.FeaturesPath,
		HasMAPE:        ds.HasMAPE,
		HasMSE:         ds.HasMSE,
	}
	if err := store.SaveMetadata(ctx, meta); err != nil {
		return fmt.Errorf("failed to store metadata: %w", err)
	}

	common.LogInfo("Snapshot written", common.Fields{
		"path":     dbPath,
		"results":  len(ds.Results),
		"features": len(ds.Features),
	})
	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
		fmt.Sprintf("Imported %d results and %d feature rows into %s", len(ds.Results), len(ds.Features), dbPath)))
	return err
}

func newImportBar(cmd *cobra.Command, total int, quiet bool) *progressbar.ProgressBar {
	if quiet {
		return progressbar.DefaultSilent(int64(total))
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing rows...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		}),
	)
}

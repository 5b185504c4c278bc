package main

import (
	"fmt"

	"github.com/Veraticus/stunting-dashboard/internal/tui"
	"github.com/Veraticus/stunting-dashboard/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Long: `Open the interactive terminal dashboard.

Pick a kabupaten/kota, year and method with the arrow keys, fill in the six
input features (prefilled from the raw indicator table when available) and
press Enter on "Check Stunting" to see the predicted prevalence.`,
		RunE: runDashboard,
	}

	cmd.Flags().String("theme", "default", fmt.Sprintf("color theme %v", themes.Names))
	cmd.Flags().Bool("inline", false, "render inline instead of taking over the terminal")
	_ = viper.BindPFlag("tui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// A load failure stops here, before any UI is drawn.
	ds, cfg, err := loadDataset(ctx)
	if err != nil {
		return err
	}

	inline, _ := cmd.Flags().GetBool("inline")

	return tui.Run(ctx,
		tui.WithDataset(ds),
		tui.WithMode(cfg.Mode),
		tui.WithTheme(themes.GetTheme(viper.GetString("tui.theme"))),
		tui.WithAltScreen(!inline),
	)
}

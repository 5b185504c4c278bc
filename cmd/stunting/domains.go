package main

import (
	"github.com/Veraticus/stunting-dashboard/internal/cli"
	"github.com/Veraticus/stunting-dashboard/internal/query"
	"github.com/spf13/cobra"
)

func domainsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "domains",
		Short: "List the selectable regions, years and methods",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, _, err := loadDataset(cmd.Context())
			if err != nil {
				return err
			}
			return cli.WriteDomains(cmd.OutOrStdout(), query.ExtractDomains(ds.Results))
		},
	}
}

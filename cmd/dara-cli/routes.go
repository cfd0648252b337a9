package main

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/dara-analytics/dara/internal/api"
)

func newRoutesCmd() *cobra.Command {
	var dataset string
	cmd := &cobra.Command{
		Use:   "routes [--dataset olympics]",
		Short: "List the query routes and their parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Dataset", "Group", "Path", "Parameters", "Description"})
			table.SetAutoWrapText(false)
			table.SetAutoFormatHeaders(false)
			for _, rt := range api.Routes() {
				if dataset != "" && !strings.EqualFold(rt.Dataset, dataset) {
					continue
				}
				table.Append([]string{rt.Dataset, rt.Group, rt.DocPath(), rt.Usage(), rt.Description})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "Only list routes of this dataset")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dara-analytics/dara/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Info().String())
		},
	}
}

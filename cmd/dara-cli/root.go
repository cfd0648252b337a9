package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dara-analytics/dara"
)

// options are the flags shared by every sub-command.
type options struct {
	configPath string
	dataDir    string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:          "dara-cli",
		Short:        "Operator tools for the DARA analytics API",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "Configuration file (.json, .yaml, .yml or .toml)")
	cmd.PersistentFlags().StringVar(&o.dataDir, "data-dir", "", "Dataset directory, overrides the configuration")
	cmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Log every request and dataset load")

	cmd.AddCommand(newRoutesCmd())
	cmd.AddCommand(newQueryCmd(o))
	cmd.AddCommand(newBenchCmd(o))
	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// service builds an in-process service. Logs go to stderr, warnings only
// unless --verbose is set.
func (o *options) service(stderr io.Writer) (*dara.Service, error) {
	cfg, err := dara.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dataDir != "" {
		cfg.Datasets.DataDir = o.dataDir
	}
	if !o.verbose {
		cfg.Logging.Level = "warn"
	}

	svc, err := dara.New(cfg, dara.WithLogger(cfg.Logging.NewLogger(stderr)))
	if err != nil {
		return nil, fmt.Errorf("building service: %w", err)
	}
	return svc, nil
}

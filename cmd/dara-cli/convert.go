package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/spf13/cobra"

	"github.com/dara-analytics/dara/internal/datasets/energy"
	"github.com/dara-analytics/dara/internal/datasets/happiness"
	"github.com/dara-analytics/dara/internal/datasets/ipl"
	"github.com/dara-analytics/dara/internal/datasets/netflix"
	"github.com/dara-analytics/dara/internal/datasets/olympics"
	daraio "github.com/dara-analytics/dara/internal/io"
)

// layout pins the column kinds and cleaning rules of one dataset.
type layout struct {
	kinds map[string]daraio.Kind
	clean daraio.CleanOptions
}

var layouts = map[string]layout{
	"olympics":  {olympics.Kinds, olympics.CleanOptions()},
	"netflix":   {netflix.Kinds, netflix.CleanOptions()},
	"happiness": {happiness.Kinds, happiness.CleanOptions()},
	"energy":    {energy.Kinds, energy.CleanOptions()},
	"ipl":       {ipl.Kinds, ipl.CleanOptions()},
}

func layoutNames() string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func newConvertCmd() *cobra.Command {
	var (
		dataset     string
		clean       bool
		columns     []string
		compression string
	)
	cmd := &cobra.Command{
		Use:   "convert <input.csv> <output.parquet>",
		Short: "Convert a CSV source to Parquet",
		Long: "Convert a CSV source to Parquet so the server can load it faster. " +
			"With --dataset the column types follow that dataset; with --clean the " +
			"one-time cleaning rules are applied before writing.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]

			opts := daraio.DefaultCSVOptions()
			var l layout
			if dataset != "" {
				var ok bool
				if l, ok = layouts[strings.ToLower(dataset)]; !ok {
					return fmt.Errorf("unknown dataset %q (want one of %s)", dataset, layoutNames())
				}
				opts.Kinds = l.kinds
			} else if clean {
				return fmt.Errorf("--clean needs --dataset")
			}

			mem := memory.NewGoAllocator()
			t, err := daraio.ReadFile(cmd.Context(), dataset, in, opts, mem)
			if err != nil {
				return err
			}
			defer t.Release()

			if clean {
				cleaned, err := daraio.Clean(t, l.clean, mem)
				if err != nil {
					return fmt.Errorf("cleaning %s: %w", in, err)
				}
				defer cleaned.Release()
				t = cleaned
			}
			if len(columns) > 0 {
				if err := t.Require("convert", columns...); err != nil {
					return err
				}
				t = t.Select(columns...)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			popts := daraio.DefaultParquetOptions()
			popts.Compression = compression
			if err := daraio.NewParquetWriter(f, popts).Write(t); err != nil {
				_ = f.Close()
				return fmt.Errorf("writing %s: %w", out, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows, %d columns to %s\n", t.Len(), t.Width(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "Dataset layout: "+layoutNames())
	cmd.Flags().BoolVar(&clean, "clean", false, "Apply the dataset's cleaning rules before writing")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Only write these columns, in this order")
	cmd.Flags().StringVar(&compression, "compression", "snappy", "snappy, gzip, zstd or uncompressed")
	return cmd
}

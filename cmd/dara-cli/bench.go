package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dara-analytics/dara/internal/api"
	"github.com/dara-analytics/dara/internal/monitoring"
)

func newBenchCmd(o *options) *cobra.Command {
	var (
		iterations int
		match      string
	)
	cmd := &cobra.Command{
		Use:   "bench [--iterations 10] [--match olympics]",
		Short: "Time every route example against the loaded datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := o.service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := svc.Preload(cmd.Context()); err != nil {
				return fmt.Errorf("loading datasets: %w", err)
			}

			h := svc.Handler()
			suite := monitoring.NewBenchmarkSuite()
			for _, rt := range api.Routes() {
				if rt.Example == "" {
					continue
				}
				if match != "" && !strings.Contains(rt.Example, match) && !strings.EqualFold(rt.Dataset, match) {
					continue
				}
				suite.Add(monitoring.Scenario{
					Name:       rt.Example,
					Iterations: iterations,
					Run:        exampleRequest(h, rt.Example),
				})
			}
			if suite.Len() == 0 {
				return fmt.Errorf("no route matches %q", match)
			}

			suite.Run(cmd.Context())
			fmt.Fprint(cmd.OutOrStdout(), suite.Report())
			return nil
		},
	}
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 10, "Requests per route")
	cmd.Flags().StringVarP(&match, "match", "m", "", "Only routes of this dataset or whose example contains this text")
	return cmd
}

func exampleRequest(h http.Handler, target string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		req, err := newRequest(ctx, target)
		if err != nil {
			return err
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			return fmt.Errorf("%s answered %d", target, rec.Code)
		}
		return nil
	}
}

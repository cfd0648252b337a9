package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/dara-analytics/dara/internal/version"
)

// newRequest builds an in-process GET that identifies the CLI in access logs.
func newRequest(ctx context.Context, target string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", version.UserAgent())
	return req, nil
}

func newQueryCmd(o *options) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "query <path>",
		Short: "Answer one API request in process and print the response",
		Example: `  dara-cli query '/api/medals/rankings?year=2016&season=Summer'
  dara-cli query /api/sports/dominant/Swimming --raw`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := o.service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			target := args[0]
			if !strings.HasPrefix(target, "/") {
				target = "/" + target
			}
			req, err := newRequest(cmd.Context(), target)
			if err != nil {
				return fmt.Errorf("building request: %w", err)
			}
			rec := httptest.NewRecorder()
			svc.Handler().ServeHTTP(rec, req)

			body := rec.Body.Bytes()
			if !raw {
				var pretty bytes.Buffer
				if err := json.Indent(&pretty, body, "", "  "); err == nil {
					body = pretty.Bytes()
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(body), "\n"))

			if rec.Code != http.StatusOK {
				return fmt.Errorf("%s answered %d %s", target, rec.Code, http.StatusText(rec.Code))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the body exactly as served")
	return cmd
}

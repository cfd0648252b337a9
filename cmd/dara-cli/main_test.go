package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	daraio "github.com/dara-analytics/dara/internal/io"
	"github.com/dara-analytics/dara/internal/testutil"
	"github.com/dara-analytics/dara/internal/version"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoutesCmd(t *testing.T) {
	out, err := execute(t, "routes")
	require.NoError(t, err)
	assert.Contains(t, out, "/api/medals/country/<noc>")
	assert.Contains(t, out, "top_n (optional, default=10)")
	assert.Contains(t, out, "/api/team-record")

	out, err = execute(t, "routes", "--dataset", "IPL")
	require.NoError(t, err)
	assert.Contains(t, out, "/api/batsman-record")
	assert.NotContains(t, out, "/api/medals")
}

func TestQueryCmd(t *testing.T) {
	cfg := testutil.WriteDataDir(t)

	t.Run("pretty prints", func(t *testing.T) {
		out, err := execute(t, "query", "--data-dir", cfg.DataDir, "/api/top-countries?limit=1")
		require.NoError(t, err)
		assert.Contains(t, out, "Switzerland")
		assert.Contains(t, out, "\n  \"data\"")
	})

	t.Run("raw", func(t *testing.T) {
		out, err := execute(t, "query", "--data-dir", cfg.DataDir, "--raw", "health")
		require.NoError(t, err)
		assert.JSONEq(t, `{"status":"healthy","dataset_loaded":true,"records":7}`, out)
	})

	t.Run("error status", func(t *testing.T) {
		out, err := execute(t, "query", "--data-dir", cfg.DataDir, "/api/nowhere")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
		assert.Contains(t, out, "Endpoint not found")
	})

	t.Run("missing parameter", func(t *testing.T) {
		_, err := execute(t, "query", "--data-dir", cfg.DataDir, "/api/team-record")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "400")
	})
}

func TestBenchCmd(t *testing.T) {
	cfg := testutil.WriteDataDir(t)

	out, err := execute(t, "bench", "--data-dir", cfg.DataDir, "--match", "ipl", "--iterations", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "# Query Benchmark Report")
	assert.Contains(t, out, "/api/allBatsmen-record")
	assert.NotContains(t, out, "/api/medals")

	_, err = execute(t, "bench", "--data-dir", cfg.DataDir, "--match", "no-such-route")
	assert.Error(t, err)
}

func TestExampleRequestIdentifiesCLI(t *testing.T) {
	var agent, path string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent, path = r.UserAgent(), r.URL.RequestURI()
	})

	require.NoError(t, exampleRequest(h, "/api/top-countries?limit=1")(context.Background()))
	assert.Equal(t, version.UserAgent(), agent)
	assert.Equal(t, "/api/top-countries?limit=1", path)

	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	assert.ErrorContains(t, exampleRequest(failing, "/health")(context.Background()), "answered 503")
}

func TestConvertCmd(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "energy.csv")
	out := filepath.Join(dir, "energy.parquet")
	require.NoError(t, os.WriteFile(in, []byte(testutil.Energy().CSV()), 0o600))

	stdout, err := execute(t, "convert", "--dataset", "energy", "--clean", in, out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote 4 rows, 10 columns")

	tbl, err := daraio.ReadFile(context.Background(), "energy", out, daraio.DefaultCSVOptions(), memory.NewGoAllocator())
	require.NoError(t, err)
	defer tbl.Release()
	assert.Equal(t, 4, tbl.Len())
	assert.Equal(t, 10, tbl.Width())

	t.Run("columns", func(t *testing.T) {
		narrow := filepath.Join(dir, "narrow.parquet")
		stdout, err := execute(t, "convert", "--dataset", "energy", "--columns", "Year,Country", in, narrow)
		require.NoError(t, err)
		assert.Contains(t, stdout, "wrote 4 rows, 2 columns")

		tbl, err := daraio.ReadFile(context.Background(), "energy", narrow, daraio.DefaultCSVOptions(), memory.NewGoAllocator())
		require.NoError(t, err)
		defer tbl.Release()
		assert.Equal(t, []string{"Year", "Country"}, tbl.Columns())

		_, err = execute(t, "convert", "--columns", "Country,Altitude", in, narrow)
		assert.ErrorContains(t, err, "Altitude")
	})

	_, err = execute(t, "convert", "--dataset", "weather", in, out)
	assert.ErrorContains(t, err, "unknown dataset")

	_, err = execute(t, "convert", "--clean", in, out)
	assert.ErrorContains(t, err, "--clean needs --dataset")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "DARA analytics service")
}

package testutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dara-analytics/dara/internal/io"
	"github.com/dara-analytics/dara/internal/testutil"
)

func TestFixtureCSV(t *testing.T) {
	f := testutil.Fixture{
		Header: []string{"name", "country"},
		Rows:   [][]string{{"Inception", "United States, United Kingdom"}, {`Say "hi"`, "France"}},
	}
	assert.Equal(t, "name,country\nInception,\"United States, United Kingdom\"\n\"Say \"\"hi\"\"\",France\n", f.CSV())

	more := f.With([]string{"Dark", "Germany"})
	assert.Len(t, more.Rows, 3)
	assert.Len(t, f.Rows, 2, "With must not modify the receiver")
}

func TestFixtureTable(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()

	tbl := testutil.Olympics().Table(t, map[string]io.Kind{"Medal": io.KindString}, mem.Allocator)
	defer tbl.Release()

	assert.Equal(t, 7, tbl.Len())
	assert.Equal(t, 15, tbl.Width())

	ages, valid, err := tbl.Floats("Age")
	require.NoError(t, err)
	assert.Equal(t, float64(23), ages[0])
	assert.False(t, valid[4])
	assert.False(t, valid[6])
}

func TestWriteDataDir(t *testing.T) {
	cfg := testutil.WriteDataDir(t,
		testutil.WithoutFile("happiness.csv"),
		testutil.WithFile("extra.csv", "a,b\n1,2\n"),
	)

	for _, name := range []string{cfg.Olympics, cfg.Netflix, cfg.Energy, cfg.IPLBatsmen, cfg.IPLBowlers, cfg.IPLTeams, "extra.csv"} {
		_, err := os.Stat(filepath.Join(cfg.DataDir, name))
		assert.NoError(t, err, name)
	}
	_, err := os.Stat(cfg.Path(cfg.Happiness))
	assert.True(t, os.IsNotExist(err))
}

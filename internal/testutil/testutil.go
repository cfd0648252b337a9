// Package testutil provides shared fixtures for the dataset, store and API
// tests: small CSV sources for every dataset, a data directory writer and
// table builders.
//
// Fixtures are deliberately tiny but cover the cleaning rules: every source
// carries at least one null cell and, where relevant, an out-of-range value.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/dara-analytics/dara/internal/config"
	"github.com/dara-analytics/dara/internal/io"
	"github.com/dara-analytics/dara/internal/table"
)

// TestMemoryContext provides a memory allocator with cleanup.
type TestMemoryContext struct {
	Allocator memory.Allocator
	cleanup   func()
}

// Release performs cleanup of the memory context.
func (tmc *TestMemoryContext) Release() {
	if tmc.cleanup != nil {
		tmc.cleanup()
	}
}

// SetupMemoryTest creates a memory allocator for tests.
//
//	mem := testutil.SetupMemoryTest(t)
//	defer mem.Release()
func SetupMemoryTest(tb testing.TB) *TestMemoryContext {
	tb.Helper()
	return &TestMemoryContext{
		Allocator: memory.NewGoAllocator(),
		cleanup:   func() {},
	}
}

// Fixture is a CSV source: a header and raw cell rows.
type Fixture struct {
	Header []string
	Rows   [][]string
}

// CSV renders the fixture. Cells containing commas or quotes are quoted.
func (f Fixture) CSV() string {
	var b strings.Builder
	writeLine := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				b.WriteByte(',')
			}
			if strings.ContainsAny(c, ",\"\n") {
				c = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
			}
			b.WriteString(c)
		}
		b.WriteByte('\n')
	}
	writeLine(f.Header)
	for _, r := range f.Rows {
		writeLine(r)
	}
	return b.String()
}

// With returns a copy of the fixture with extra rows appended.
func (f Fixture) With(rows ...[]string) Fixture {
	out := Fixture{Header: f.Header}
	out.Rows = append(append(out.Rows, f.Rows...), rows...)
	return out
}

// Table reads the fixture into a table with the given column kinds.
func (f Fixture) Table(tb testing.TB, kinds map[string]io.Kind, mem memory.Allocator) *table.Table {
	tb.Helper()
	opts := io.DefaultCSVOptions()
	opts.Kinds = kinds
	t, err := io.NewCSVReader(strings.NewReader(f.CSV()), opts, mem).Read()
	require.NoError(tb, err)
	return t
}

// Olympics is a seven-row athlete events source. Two Age cells and one
// Weight cell are missing; medals use the NA null token.
func Olympics() Fixture {
	return Fixture{
		Header: []string{"ID", "Name", "Sex", "Age", "Height", "Weight", "Team", "NOC", "Games", "Year", "Season", "City", "Sport", "Event", "Medal"},
		Rows: [][]string{
			{"1", "Michael Phelps", "M", "23", "193", "91", "United States", "USA", "2008 Summer", "2008", "Summer", "Beijing", "Swimming", "Swimming Men's 100m Butterfly", "Gold"},
			{"1", "Michael Phelps", "M", "27", "193", "91", "United States", "USA", "2012 Summer", "2012", "Summer", "London", "Swimming", "Swimming Men's 100m Butterfly", "Silver"},
			{"2", "Usain Bolt", "M", "21", "195", "94", "Jamaica", "JAM", "2008 Summer", "2008", "Summer", "Beijing", "Athletics", "Athletics Men's 100m", "Gold"},
			{"3", "Jessica Ennis", "F", "26", "165", "57", "Great Britain", "GBR", "2012 Summer", "2012", "Summer", "London", "Athletics", "Athletics Women's Heptathlon", "Gold"},
			{"4", "Marit Bjorgen", "F", "", "168", "", "Norway", "NOR", "2010 Winter", "2010", "Winter", "Vancouver", "Cross Country Skiing", "Cross Country Skiing Women's Sprint", "Gold"},
			{"5", "Tom Daley", "M", "18", "177", "70", "Great Britain", "GBR", "2012 Summer", "2012", "Summer", "London", "Diving", "Diving Men's Platform", "Bronze"},
			{"6", "Li Na", "F", "NA", "172", "65", "China", "CHN", "2008 Summer", "2008", "Summer", "Beijing", "Tennis", "Tennis Women's Singles", "NA"},
		},
	}
}

// Netflix is a four-title catalog. The last title has no director or
// country and a duration in its rating column.
func Netflix() Fixture {
	return Fixture{
		Header: []string{"type", "title", "Main_director", "cast", "country", "release_year", "rating", "duration", "genres", "description"},
		Rows: [][]string{
			{"Movie", "Inception", "Christopher Nolan", "Leonardo DiCaprio", "United States, United Kingdom", "2010", "PG-13", "148 min", "Sci-Fi", "A thief enters dreams."},
			{"TV Show", "Dark", "Baran bo Odar", "Louis Hofmann", "Germany", "2017", "TV-MA", "3 Seasons", "Thriller", "Time travel in a small town."},
			{"Movie", "Interstellar", "Christopher Nolan", "Matthew McConaughey", "United Kingdom", "2014", "PG-13", "169 min", "Sci-Fi", "Space exploration."},
			{"Movie", "Untitled", "", "", "", "2020", "74 min", "90 min", "Drama", "No metadata."},
		},
	}
}

// Happiness is a four-country report ranked 1 to 4.
func Happiness() Fixture {
	return Fixture{
		Header: []string{"Country", "Region", "Happiness Rank", "Happiness Score", "Standard Error", "Economy (GDP per Capita)", "Family", "Health (Life Expectancy)", "Freedom", "Trust (Government Corruption)", "Generosity", "Dystopia Residual"},
		Rows: [][]string{
			{"Switzerland", "Western Europe", "1", "7.587", "0.034", "1.397", "1.35", "0.941", "0.666", "0.42", "0.297", "2.517"},
			{"Denmark", "Western Europe", "2", "7.527", "0.033", "1.326", "1.36", "0.875", "0.649", "0.484", "0.341", "2.492"},
			{"Norway", "Western Europe", "3", "7.522", "0.039", "1.459", "1.331", "0.885", "0.67", "0.365", "0.347", "2.465"},
			{"Togo", "", "4", "2.839", "0.067", "0.208", "0.139", "0.284", "0.364", "0.107", "0.167", "1.567"},
		},
	}
}

// Energy is a four-row country-year table. Germany's price averages 0.15
// and France's 0.10.
func Energy() Fixture {
	return Fixture{
		Header: []string{"Country", "Year", "Total Energy Consumption (TWh)", "Per Capita Energy Use (kWh)", "Renewable Energy Share (%)", "Fossil Fuel Dependency (%)", "Industrial Energy Use (%)", "Household Energy Use (%)", "Carbon Emissions (Million Tons)", "Energy Price Index (USD/kWh)"},
		Rows: [][]string{
			{"Germany", "2020", "500", "6000", "45", "50", "30", "25", "600", "0.14"},
			{"Germany", "2021", "520", "6100", "47", "48", "31", "24", "580", "0.16"},
			{"France", "2020", "450", "7000", "20", "40", "28", "27", "300", "0.10"},
			{"Iceland", "2020", "20", "50000", "85", "15", "40", "20", "2", ""},
		},
	}
}

// Batsmen is a two-player batting table.
func Batsmen() Fixture {
	return Fixture{
		Header: []string{"Player", "Team", "Matches", "Innings", "NotOuts", "Runs", "Balls", "HighestScore", "Hundreds", "Fifties", "Fours", "Sixes"},
		Rows: [][]string{
			{"Rohit Sharma", "Mumbai Indians", "227", "222", "28", "5879", "4458", "109*", "1", "40", "519", "240"},
			{"Virat Kohli", "Royal Challengers Bangalore", "223", "215", "32", "6624", "5060", "113*", "7", "44", "578", "218"},
		},
	}
}

// Bowlers is a two-player bowling table.
func Bowlers() Fixture {
	return Fixture{
		Header: []string{"Player", "Team", "Matches", "Innings", "Balls", "RunsConceded", "Wickets", "FourWickets", "FiveWickets"},
		Rows: [][]string{
			{"Jasprit Bumrah", "Mumbai Indians", "120", "120", "2730", "3052", "145", "1", "1"},
			{"Yuzvendra Chahal", "Rajasthan Royals", "145", "144", "3146", "3929", "187", "5", "1"},
		},
	}
}

// Teams is a two-team franchise table.
func Teams() Fixture {
	return Fixture{
		Header: []string{"Team", "Matches", "Wins", "Losses", "NoResult", "Titles"},
		Rows: [][]string{
			{"Mumbai Indians", "250", "140", "106", "4", "5"},
			{"Chennai Super Kings", "225", "131", "91", "3", "5"},
		},
	}
}

// DataDirOption adjusts the files written by WriteDataDir.
type DataDirOption func(files map[string]string)

// WithoutFile omits a source file.
func WithoutFile(name string) DataDirOption {
	return func(files map[string]string) {
		delete(files, name)
	}
}

// WithFile replaces or adds a source file.
func WithFile(name, content string) DataDirOption {
	return func(files map[string]string) {
		files[name] = content
	}
}

// WriteDataDir writes every fixture under the default file names into a
// temporary directory and returns a dataset config pointing at it.
func WriteDataDir(tb testing.TB, opts ...DataDirOption) config.DatasetConfig {
	tb.Helper()
	cfg := config.NewConfig().Datasets
	cfg.DataDir = tb.TempDir()

	files := map[string]string{
		cfg.Olympics:   Olympics().CSV(),
		cfg.Netflix:    Netflix().CSV(),
		cfg.Happiness:  Happiness().CSV(),
		cfg.Energy:     Energy().CSV(),
		cfg.IPLBatsmen: Batsmen().CSV(),
		cfg.IPLBowlers: Bowlers().CSV(),
		cfg.IPLTeams:   Teams().CSV(),
	}
	for _, opt := range opts {
		opt(files)
	}
	for name, content := range files {
		require.NoError(tb, os.WriteFile(filepath.Join(cfg.DataDir, name), []byte(content), 0o600))
	}
	return cfg
}

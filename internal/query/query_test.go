package query_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dara-analytics/dara/internal/query"
)

type row struct {
	noc   string
	year  int64
	medal string
	score float64
}

var rows = []row{
	{"USA", 2016, "Gold", 1},
	{"GBR", 2016, "Silver", 2},
	{"USA", 2012, "Bronze", 3},
	{"FRA", 2012, "", 4},
	{"GBR", 2012, "Gold", 5},
}

func TestFilterAndCount(t *testing.T) {
	medals := query.Filter(rows, func(r row) bool { return r.medal != "" })
	assert.Len(t, medals, 4)
	assert.Equal(t, "USA", medals[0].noc)

	assert.Equal(t, 2, query.Count(rows, func(r row) bool { return r.medal == "Gold" }))
	assert.Empty(t, query.Filter(rows, func(row) bool { return false }))
}

func TestGroupBy(t *testing.T) {
	t.Run("ascending keys, rows in input order", func(t *testing.T) {
		groups := query.GroupBy(rows, func(r row) string { return r.noc })
		keys := make([]string, len(groups))
		for i, g := range groups {
			keys[i] = g.Key
		}
		assert.Equal(t, []string{"FRA", "GBR", "USA"}, keys)
		assert.Equal(t, []int64{2016, 2012}, query.Map(groups[2].Rows, func(r row) int64 { return r.year }))
	})

	t.Run("first appearance without comparator", func(t *testing.T) {
		type key struct {
			noc  string
			year int64
		}
		groups := query.GroupByFunc(rows, func(r row) key { return key{r.noc, r.year} }, nil)
		assert.Equal(t, key{"USA", 2016}, groups[0].Key)
		assert.Len(t, groups, 5)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, query.GroupBy([]row{}, func(r row) string { return r.noc }))
	})
}

func TestNumericAggregates(t *testing.T) {
	scores := query.Map(rows, func(r row) float64 { return r.score })
	assert.InDelta(t, 15.0, query.Sum(scores), 1e-12)
	assert.InDelta(t, 3.0, query.Mean(scores), 1e-12)
	assert.InDelta(t, 1.0, query.Min(scores), 1e-12)
	assert.InDelta(t, 5.0, query.Max(scores), 1e-12)

	assert.Zero(t, query.Mean([]int{}))
	assert.Zero(t, query.Max([]int64{}))
	assert.Equal(t, int64(6), query.Sum([]int64{1, 2, 3}))

	ages := query.Collect(rows, func(r row) (float64, bool) { return r.score, r.medal != "" })
	assert.Equal(t, []float64{1, 2, 3, 5}, ages)
}

func TestUniqueness(t *testing.T) {
	assert.Equal(t, 3, query.NUnique(rows, func(r row) string { return r.noc }))
	assert.Equal(t, []int64{2012, 2016}, query.Unique(rows, func(r row) int64 { return r.year }))
	assert.Equal(t, []string{"USA", "GBR", "FRA"}, query.UniqueInOrder(rows, func(r row) string { return r.noc }))
}

func TestValueCounts(t *testing.T) {
	counts := query.ValueCounts(rows, func(r row) string { return r.noc })
	assert.Equal(t, []query.Counted[string]{
		{Key: "GBR", Count: 2},
		{Key: "USA", Count: 2},
		{Key: "FRA", Count: 1},
	}, counts)
}

func TestSortStable(t *testing.T) {
	type tally struct {
		noc         string
		gold, total int
	}
	in := []tally{
		{"AAA", 1, 3},
		{"BBB", 2, 2},
		{"CCC", 2, 5},
		{"DDD", 1, 3},
	}

	sorted := query.SortStable(in,
		query.Desc(func(t tally) int { return t.gold }),
		query.Desc(func(t tally) int { return t.total }),
	)
	assert.Equal(t, []string{"CCC", "BBB", "AAA", "DDD"}, query.Map(sorted, func(t tally) string { return t.noc }))
	assert.Equal(t, "AAA", in[0].noc, "input untouched")

	asc := query.SortStable(in, query.Asc(func(t tally) string { return t.noc }))
	assert.Equal(t, "AAA", asc[0].noc)

	assert.NotNil(t, query.SortStable([]tally(nil)))
}

func TestTop(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{-1, 0},
		{0, 0},
		{3, 3},
		{5, 5},
		{50, 5},
	}
	for _, tt := range tests {
		got := query.Top(rows, tt.n)
		assert.Len(t, got, tt.want, "n=%d", tt.n)
		assert.NotNil(t, got)
	}
}

func TestArgMaxMin(t *testing.T) {
	vals := []float64{3, 7, 1, 7, 1}
	id := func(v float64) float64 { return v }
	assert.Equal(t, 1, query.ArgMax(vals, id), "first occurrence wins")
	assert.Equal(t, 2, query.ArgMin(vals, id))
	assert.Equal(t, -1, query.ArgMax([]float64{}, id))
}

func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.0, query.Correlation(x, []float64{2, 4, 6, 8}), 1e-12)
	assert.InDelta(t, -1.0, query.Correlation(x, []float64{8, 6, 4, 2}), 1e-12)

	constant := query.Correlation(x, []float64{5, 5, 5, 5})
	assert.False(t, math.IsNaN(constant))
	assert.Zero(t, constant)

	assert.Zero(t, query.Correlation([]float64{1}, []float64{1}))
	assert.Zero(t, query.Correlation(x, []float64{1, 2}))
}

func TestDecadeAndSetDiff(t *testing.T) {
	assert.Equal(t, int64(1980), query.Decade(1984))
	assert.Equal(t, int64(1890), query.Decade(1896))
	assert.Equal(t, int64(2010), query.Decade(2010))

	assert.Equal(t, []string{"Rugby"}, query.SetDiff([]string{"Athletics", "Rugby"}, []string{"Athletics", "Golf"}))
	assert.Empty(t, query.SetDiff([]string{"a"}, []string{"a"}))
}

func TestNames(t *testing.T) {
	assert.Equal(t, "united states", query.Normalize("  United States "))
	assert.True(t, query.SameName("usa", "USA"))
	assert.True(t, query.SameName("Usa ", " uSA"))
	assert.False(t, query.SameName("USA", "US"))
	assert.True(t, query.ContainsFold("Michael Fred Phelps, II", "phelps"))
	assert.False(t, query.ContainsFold("Bolt", strings.Repeat("x", 3)))
}

func TestWinner(t *testing.T) {
	tests := []struct {
		name   string
		a      string
		va     float64
		b      string
		vb     float64
		expect string
	}{
		{"left greater", "Norway", 7.5, "Denmark", 7.4, "Norway"},
		{"right greater", "Norway", 7.4, "Denmark", 7.5, "Denmark"},
		{"tie picks first name", "norway", 7.5, "Denmark", 7.5, "Denmark"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, query.Winner(tt.a, tt.va, tt.b, tt.vb))
			assert.Equal(t, tt.expect, query.Winner(tt.b, tt.vb, tt.a, tt.va), "symmetric")
		})
	}
}

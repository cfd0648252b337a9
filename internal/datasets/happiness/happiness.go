// Package happiness answers queries over the World Happiness Report table.
package happiness

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	daraerrors "github.com/dara-analytics/dara/internal/errors"
	"github.com/dara-analytics/dara/internal/io"
	"github.com/dara-analytics/dara/internal/query"
	"github.com/dara-analytics/dara/internal/shape"
	"github.com/dara-analytics/dara/internal/table"
)

// Column names
const (
	CountryColumn  = "Country"
	RegionColumn   = "Region"
	RankColumn     = "Happiness Rank"
	ScoreColumn    = "Happiness Score"
	ErrorColumn    = "Standard Error"
	ResidualColumn = "Dystopia Residual"
)

// Factors are the explanatory columns summarised by FactorAverages.
var Factors = []string{
	"Economy (GDP per Capita)",
	"Family",
	"Health (Life Expectancy)",
	"Freedom",
	"Trust (Government Corruption)",
	"Generosity",
}

// Columns the source must provide. Other columns are carried through.
var Columns = append([]string{CountryColumn, RegionColumn, RankColumn, ScoreColumn}, Factors...)

// Kinds pins the text columns.
var Kinds = map[string]io.Kind{CountryColumn: io.KindString, RegionColumn: io.KindString}

// CleanOptions fills missing regions with Unspecified and missing countries with Unknown.
func CleanOptions() io.CleanOptions {
	return io.CleanOptions{Defaults: map[string]string{
		RegionColumn:  io.Unspecified,
		CountryColumn: "Unknown",
	}}
}

// Dataset is the immutable happiness table. Every numeric column is kept in
// file order so correlations can range over all of them.
type Dataset struct {
	countries []string
	regions   []string
	rows      []shape.Record
	numeric   []string
	values    map[string][]float64
}

// Len returns the number of rows
func (d *Dataset) Len() int { return len(d.rows) }

// FromTable decodes a cleaned table.
func FromTable(t *table.Table) (*Dataset, error) {
	if err := t.Require("happiness.FromTable", Columns...); err != nil {
		return nil, err
	}

	d := &Dataset{
		rows:   make([]shape.Record, t.Len()),
		values: make(map[string][]float64),
	}
	var err error
	if d.countries, _, err = t.Strings(CountryColumn); err != nil {
		return nil, err
	}
	if d.regions, _, err = t.Strings(RegionColumn); err != nil {
		return nil, err
	}

	for _, name := range t.Columns() {
		c, _ := t.Column(name)
		switch c.DataType().ID() {
		case arrow.INT64:
			ints, _, err := t.Ints(name)
			if err != nil {
				return nil, err
			}
			for i, v := range ints {
				d.rows[i] = append(d.rows[i], shape.Field{Key: name, Value: v})
			}
		case arrow.FLOAT64:
			floats, _, err := t.Floats(name)
			if err != nil {
				return nil, err
			}
			for i, v := range floats {
				d.rows[i] = append(d.rows[i], shape.Field{Key: name, Value: shape.Finite(v)})
			}
		default:
			text, _, err := t.Strings(name)
			if err != nil {
				return nil, err
			}
			for i, v := range text {
				d.rows[i] = append(d.rows[i], shape.Field{Key: name, Value: v})
			}
			continue
		}
		floats, _, err := t.Floats(name)
		if err != nil {
			return nil, err
		}
		d.numeric = append(d.numeric, name)
		d.values[name] = floats
	}

	for _, name := range []string{RankColumn, ScoreColumn} {
		if _, ok := d.values[name]; !ok {
			return nil, fmt.Errorf("happiness column %s is not numeric", name)
		}
	}
	return d, nil
}

func (d *Dataset) score(i int) float64 { return d.values[ScoreColumn][i] }

// find returns the index of the first row whose country matches name.
func (d *Dataset) find(name string) int {
	for i, c := range d.countries {
		if query.SameName(c, name) {
			return i
		}
	}
	return -1
}

// indices returns 0..Len()-1
func (d *Dataset) indices() []int {
	out := make([]int, len(d.rows))
	for i := range out {
		out[i] = i
	}
	return out
}

// TopList wraps a list of rows.
type TopList struct {
	Data []shape.Record `json:"data"`
}

// TopCountries returns the limit happiest rows, score descending.
func (d *Dataset) TopCountries(limit int) TopList {
	ranked := query.Top(query.SortStable(d.indices(), query.Desc(d.score)), limit)
	return TopList{Data: query.Map(ranked, func(i int) shape.Record {
		return shape.Record{
			{Key: CountryColumn, Value: d.countries[i]},
			{Key: RegionColumn, Value: d.regions[i]},
			{Key: RankColumn, Value: shape.Int(d.values[RankColumn][i])},
			{Key: ScoreColumn, Value: d.score(i)},
		}
	})}
}

// Impact is the correlation of one factor with the happiness score.
type Impact struct {
	Factor      string  `json:"factor"`
	Correlation float64 `json:"correlation_with_happiness"`
}

var excludedFromImpact = map[string]bool{
	RankColumn: true, ErrorColumn: true, ResidualColumn: true, ScoreColumn: true,
}

// FactorImpact correlates every numeric column except rank, standard error,
// dystopia residual and the score itself with the score. Strongest positive
// correlation first.
func (d *Dataset) FactorImpact() []Impact {
	type scored struct {
		factor string
		r      float64
	}
	found := query.Collect(d.numeric, func(name string) (scored, bool) {
		if excludedFromImpact[name] {
			return scored{}, false
		}
		return scored{name, query.Correlation(d.values[name], d.values[ScoreColumn])}, true
	})
	ranked := query.SortStable(found, query.Desc(func(s scored) float64 { return s.r }))
	return query.Map(ranked, func(s scored) Impact {
		return Impact{Factor: s.factor, Correlation: shape.Round(s.r, shape.ScorePlaces)}
	})
}

// CountryResult wraps a single result object.
type CountryResult struct {
	Result any `json:"result"`
}

// CountryInfo returns the full row of a country, columns in file order.
func (d *Dataset) CountryInfo(name string) (CountryResult, error) {
	i := d.find(name)
	if i < 0 {
		return CountryResult{}, daraerrors.NewNotFoundError("CountryInfo", name,
			shape.MessageError("Country data unavailable", fmt.Sprintf("'%s' not found in dataset.", name)))
	}
	return CountryResult{Result: d.rows[i]}, nil
}

// ComparisonSummary names the happier country.
type ComparisonSummary struct {
	MoreHappyCountry string  `json:"more_happy_country"`
	ScoreDifference  float64 `json:"score_difference"`
}

// CountryScore is one side of a comparison.
type CountryScore struct {
	Country        string  `json:"country"`
	HappinessScore float64 `json:"happiness_score"`
}

// Comparison is the result of CompareCountries.
type Comparison struct {
	Summary ComparisonSummary `json:"summary"`
	Data    []CountryScore    `json:"data"`
}

// CompareCountries compares the scores of two countries. The strictly higher
// score wins; equal scores go to the name that sorts first ignoring case.
func (d *Dataset) CompareCountries(a, b string) (Comparison, error) {
	i, j := d.find(a), d.find(b)
	if i < 0 || j < 0 {
		return Comparison{}, daraerrors.NewNotFoundError("CompareCountries", a+", "+b,
			shape.MessageError("Comparison failed", "One or both countries not found in dataset."))
	}

	left := CountryScore{Country: d.countries[i], HappinessScore: d.score(i)}
	right := CountryScore{Country: d.countries[j], HappinessScore: d.score(j)}
	diff := left.HappinessScore - right.HappinessScore
	if diff < 0 {
		diff = -diff
	}
	return Comparison{
		Summary: ComparisonSummary{
			MoreHappyCountry: query.Winner(left.Country, left.HappinessScore, right.Country, right.HappinessScore),
			ScoreDifference:  shape.Round(diff, shape.ScorePlaces),
		},
		Data: []CountryScore{left, right},
	}, nil
}

// GapSummary names the extremes of a region.
type GapSummary struct {
	HappiestCountry string  `json:"happiest_country"`
	SaddestCountry  string  `json:"saddest_country"`
	Gap             float64 `json:"gap"`
}

// Gap is the result of HappinessGap.
type Gap struct {
	Summary GapSummary `json:"summary"`
}

// HappinessGap returns the spread between the happiest and saddest country of
// a region. The first row wins among equal scores.
func (d *Dataset) HappinessGap(region string) (Gap, error) {
	rows := query.Filter(d.indices(), func(i int) bool { return query.SameName(d.regions[i], region) })
	if len(rows) == 0 {
		return Gap{}, daraerrors.NewNotFoundError("HappinessGap", region,
			shape.MessageError("Invalid region", fmt.Sprintf("Region '%s' not found.", region)))
	}

	happiest := rows[query.ArgMax(rows, d.score)]
	saddest := rows[query.ArgMin(rows, d.score)]
	return Gap{Summary: GapSummary{
		HappiestCountry: d.countries[happiest],
		SaddestCountry:  d.countries[saddest],
		Gap:             shape.Round(d.score(happiest)-d.score(saddest), shape.ScorePlaces),
	}}, nil
}

// Percentile bands
const (
	TopBandPercentile  = 90
	AboveAvgPercentile = 50
	StatusTop          = "Top 10%"
	StatusAboveAverage = "Above Average"
	StatusBelowAverage = "Below Average"
)

// RankTrend places a country within the ranking.
type RankTrend struct {
	Rank               int64   `json:"rank"`
	PercentilePosition float64 `json:"percentile_position"`
	Status             string  `json:"status"`
}

// CountryRankTrend reports the percentile position (1 - rank/total) * 100 of
// a country, where total is the number of ranked rows.
func (d *Dataset) CountryRankTrend(country string) (CountryResult, error) {
	i := d.find(country)
	if i < 0 {
		return CountryResult{}, daraerrors.NewNotFoundError("CountryRankTrend", country,
			shape.MessageError("Country not found", fmt.Sprintf("'%s' missing in dataset.", country)))
	}

	rank := shape.Int(d.values[RankColumn][i])
	percentile := shape.Round((1-shape.Ratio(float64(rank), float64(len(d.rows))))*100, shape.PercentPlaces)
	status := StatusBelowAverage
	switch {
	case percentile >= TopBandPercentile:
		status = StatusTop
	case percentile >= AboveAvgPercentile:
		status = StatusAboveAverage
	}
	return CountryResult{Result: RankTrend{Rank: rank, PercentilePosition: percentile, Status: status}}, nil
}

// FactorAverage summarises one factor across all countries.
type FactorAverage struct {
	Factor          string  `json:"factor"`
	GlobalAverage   float64 `json:"global_average"`
	MaxValue        float64 `json:"max_value"`
	MaxValueCountry string  `json:"max_value_country"`
	MinValue        float64 `json:"min_value"`
	MinValueCountry string  `json:"min_value_country"`
}

// FactorAverages reports mean, maximum and minimum of every factor with the
// country holding each extreme. An empty table yields zero values.
func (d *Dataset) FactorAverages() []FactorAverage {
	out := make([]FactorAverage, len(Factors))
	for k, name := range Factors {
		values := d.values[name]
		out[k] = FactorAverage{
			Factor:        name,
			GlobalAverage: shape.Round(query.Mean(values), shape.ScorePlaces),
			MaxValue:      shape.Round(query.Max(values), shape.ScorePlaces),
			MinValue:      shape.Round(query.Min(values), shape.ScorePlaces),
		}
		identity := func(v float64) float64 { return v }
		if i := query.ArgMax(values, identity); i >= 0 {
			out[k].MaxValueCountry = d.countries[i]
		}
		if i := query.ArgMin(values, identity); i >= 0 {
			out[k].MinValueCountry = d.countries[i]
		}
	}
	return out
}

package olympics

import (
	"cmp"
	"fmt"

	daraerrors "github.com/dara-analytics/dara/internal/errors"
	"github.com/dara-analytics/dara/internal/query"
	"github.com/dara-analytics/dara/internal/shape"
)

// Insight defaults.
const (
	DefaultGoldRushThreshold = 20
	BoycottTopPerformers     = 10
)

// BoycottYears are the Games affected by the 1980 and 1984 boycotts.
var BoycottYears = []int64{1980, 1984}

// BMIStats is the body mass index spread of one sport.
type BMIStats struct {
	Sport  string  `json:"sport"`
	AvgBMI float64 `json:"avg_bmi"`
	MinBMI float64 `json:"min_bmi"`
	MaxBMI float64 `json:"max_bmi"`
}

// BMIList holds BMI stats per sport, highest average first.
type BMIList struct {
	Sports []BMIStats `json:"bmi_by_sport"`
}

func bmi(e Entry) float64 {
	m := e.Height / 100
	return e.Weight / (m * m)
}

// BMIBySport computes weight / (height in metres)² over entries with both
// measurements recorded and a positive height.
func (d *Dataset) BMIBySport() BMIList {
	rows := query.Filter(d.rows, func(e Entry) bool {
		return e.HasHeight && e.HasWeight && e.Height > 0
	})
	groups := query.GroupBy(rows, bySport)
	out := make([]BMIStats, len(groups))
	for i, g := range groups {
		values := query.Map(g.Rows, bmi)
		out[i] = BMIStats{
			Sport:  g.Key,
			AvgBMI: shape.Round(query.Mean(values), shape.PercentPlaces),
			MinBMI: shape.Round(query.Min(values), shape.PercentPlaces),
			MaxBMI: shape.Round(query.Max(values), shape.PercentPlaces),
		}
	}
	return BMIList{Sports: query.SortStable(out, query.Desc(func(b BMIStats) float64 { return b.AvgBMI }))}
}

// DecadePhysicals averages the measurements of one decade.
type DecadePhysicals struct {
	Decade     int64   `json:"decade"`
	AvgAge     float64 `json:"avg_age"`
	AvgHeight  float64 `json:"avg_height"`
	AvgWeight  float64 `json:"avg_weight"`
	SampleSize int     `json:"sample_size"`
}

// PhysicalEvolution is a sport's measurements per decade.
type PhysicalEvolution struct {
	Sport     string            `json:"sport"`
	Evolution []DecadePhysicals `json:"evolution"`
}

// PhysicalChangesOverTime averages age, height and weight per decade for the
// entries of sport with all three recorded. An unknown sport is not found; a
// known sport without measurements yields an empty evolution.
func (d *Dataset) PhysicalChangesOverTime(sport string) (PhysicalEvolution, error) {
	all := query.Filter(d.rows, func(e Entry) bool { return query.SameName(e.Sport, sport) })
	if len(all) == 0 {
		return PhysicalEvolution{}, daraerrors.NewNotFoundError("PhysicalChangesOverTime", sport,
			shape.MessageError("Sport not found", fmt.Sprintf("No data available for '%s'.", sport)))
	}

	rows := query.Filter(all, Entry.hasPhysicals)
	groups := query.GroupBy(rows, func(e Entry) int64 { return query.Decade(e.Year) })
	out := make([]DecadePhysicals, len(groups))
	for i, g := range groups {
		out[i] = DecadePhysicals{
			Decade:     g.Key,
			AvgAge:     shape.Round(query.Mean(query.Map(g.Rows, ageOf)), shape.PercentPlaces),
			AvgHeight:  shape.Round(query.Mean(query.Map(g.Rows, func(e Entry) float64 { return e.Height })), shape.PercentPlaces),
			AvgWeight:  shape.Round(query.Mean(query.Map(g.Rows, func(e Entry) float64 { return e.Weight })), shape.PercentPlaces),
			SampleSize: len(g.Rows),
		}
	}
	return PhysicalEvolution{Sport: all[0].Sport, Evolution: out}, nil
}

// SweetSpot is the most frequent medal-winning age of a sport.
type SweetSpot struct {
	Sport          string  `json:"sport"`
	SweetSpotAge   int64   `json:"sweet_spot_age"`
	AvgMedalAge    float64 `json:"avg_medal_age"`
	MedalsAnalyzed int     `json:"medals_analyzed"`
}

// SweetSpotList holds one entry per sport, ascending by sport.
type SweetSpotList struct {
	Sports []SweetSpot `json:"age_sweet_spot"`
}

// AgeSweetSpotBySport finds the modal age of medallists per sport. Equally
// frequent ages resolve to the youngest.
func (d *Dataset) AgeSweetSpotBySport() SweetSpotList {
	groups := query.GroupBy(query.Filter(d.medals, hasAge), bySport)
	out := make([]SweetSpot, len(groups))
	for i, g := range groups {
		ages := query.ValueCounts(g.Rows, func(e Entry) int64 { return shape.Int(e.Age) })
		out[i] = SweetSpot{
			Sport:          g.Key,
			SweetSpotAge:   ages[0].Key,
			AvgMedalAge:    shape.Round(query.Mean(query.Map(g.Rows, ageOf)), shape.PercentPlaces),
			MedalsAnalyzed: len(g.Rows),
		}
	}
	return SweetSpotList{Sports: out}
}

// GoldRush is a NOC's gold haul at one Games.
type GoldRush struct {
	Year        int64  `json:"year"`
	Season      string `json:"season"`
	Country     string `json:"country"`
	GoldMedals  int    `json:"gold_medals"`
	TotalMedals int    `json:"total_medals"`
}

// GoldRushList holds the gold rushes at or above a threshold.
type GoldRushList struct {
	Threshold int        `json:"threshold"`
	Moments   []GoldRush `json:"gold_rush_moments"`
}

type editionNOC struct {
	Year   int64
	Season string
	NOC    string
}

// GoldRushMoments lists the (year, season, NOC) combinations with at least
// threshold gold medals, most golds first. threshold <= 0 selects
// DefaultGoldRushThreshold.
func (d *Dataset) GoldRushMoments(threshold int) GoldRushList {
	if threshold <= 0 {
		threshold = DefaultGoldRushThreshold
	}
	groups := query.GroupByFunc(d.medals,
		func(e Entry) editionNOC { return editionNOC{e.Year, e.Season, e.NOC} },
		func(a, b editionNOC) int {
			return cmp.Or(cmp.Compare(a.Year, b.Year), cmp.Compare(a.Season, b.Season), cmp.Compare(a.NOC, b.NOC))
		},
	)

	out := []GoldRush{}
	for _, g := range groups {
		t := tallyOf(g.Rows)
		if t.gold < threshold {
			continue
		}
		out = append(out, GoldRush{
			Year:        g.Key.Year,
			Season:      g.Key.Season,
			Country:     g.Key.NOC,
			GoldMedals:  t.gold,
			TotalMedals: t.total,
		})
	}
	return GoldRushList{
		Threshold: threshold,
		Moments:   query.SortStable(out, query.Desc(func(r GoldRush) int { return r.GoldMedals })),
	}
}

// Performer is a NOC's medal count in a boycott year.
type Performer struct {
	Country string `json:"country"`
	Medals  int    `json:"medals"`
}

// BoycottYear summarises one boycott year.
type BoycottYear struct {
	Year                   int64       `json:"year"`
	ParticipatingCountries int         `json:"participating_countries"`
	TopPerformers          []Performer `json:"top_performers"`
}

// BoycottList holds the boycott years in order.
type BoycottList struct {
	Years []BoycottYear `json:"boycott_years"`
}

// BoycottImpact reports participation and the ten leading medal winners of
// each year in BoycottYears. Both seasons are counted.
func (d *Dataset) BoycottImpact() BoycottList {
	out := make([]BoycottYear, len(BoycottYears))
	for i, year := range BoycottYears {
		inYear := func(e Entry) bool { return e.Year == year }
		counts := query.Top(query.ValueCounts(query.Filter(d.medals, inYear), byNOC), BoycottTopPerformers)
		out[i] = BoycottYear{
			Year:                   year,
			ParticipatingCountries: query.NUnique(query.Filter(d.rows, inYear), byNOC),
			TopPerformers: query.Map(counts, func(c query.Counted[string]) Performer {
				return Performer{Country: c.Key, Medals: c.Count}
			}),
		}
	}
	return BoycottList{Years: out}
}

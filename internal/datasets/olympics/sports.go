package olympics

import (
	"fmt"

	daraerrors "github.com/dara-analytics/dara/internal/errors"
	"github.com/dara-analytics/dara/internal/query"
	"github.com/dara-analytics/dara/internal/shape"
)

// Sport thresholds.
const (
	DominantCountriesLimit = 10
	// MonopolyThresholdPercent is the medal share at or above which the leading NOC monopolises a sport.
	MonopolyThresholdPercent = 30.0
)

// PhysicalStats summarises the age, height and weight of a sport's entries.
type PhysicalStats struct {
	Sport         string  `json:"sport"`
	AvgAge        float64 `json:"avg_age"`
	MinAge        int64   `json:"min_age"`
	MaxAge        int64   `json:"max_age"`
	AvgHeight     float64 `json:"avg_height"`
	MinHeight     int64   `json:"min_height"`
	MaxHeight     int64   `json:"max_height"`
	AvgWeight     float64 `json:"avg_weight"`
	MinWeight     int64   `json:"min_weight"`
	MaxWeight     int64   `json:"max_weight"`
	TotalAthletes int     `json:"total_athletes"`
}

// PhysicalStatsList holds physical stats per sport.
type PhysicalStatsList struct {
	Sports []PhysicalStats `json:"physical_stats_by_sport"`
}

// PhysicalStatsBySport summarises entries with age, height and weight all
// recorded, per sport. A non-empty sport restricts the result to that sport.
func (d *Dataset) PhysicalStatsBySport(sport string) (PhysicalStatsList, error) {
	rows := query.Filter(d.rows, func(e Entry) bool {
		return e.hasPhysicals() && (sport == "" || query.SameName(e.Sport, sport))
	})
	if sport != "" && len(rows) == 0 {
		return PhysicalStatsList{}, daraerrors.NewNotFoundError("PhysicalStatsBySport", sport,
			shape.MessageError("Sport not found", fmt.Sprintf("No physical data available for '%s'.", sport)))
	}

	groups := query.GroupBy(rows, bySport)
	out := make([]PhysicalStats, len(groups))
	for i, g := range groups {
		ages := query.Map(g.Rows, ageOf)
		heights := query.Map(g.Rows, func(e Entry) float64 { return e.Height })
		weights := query.Map(g.Rows, func(e Entry) float64 { return e.Weight })
		out[i] = PhysicalStats{
			Sport:         g.Key,
			AvgAge:        shape.Round(query.Mean(ages), shape.PercentPlaces),
			MinAge:        shape.Int(query.Min(ages)),
			MaxAge:        shape.Int(query.Max(ages)),
			AvgHeight:     shape.Round(query.Mean(heights), shape.PercentPlaces),
			MinHeight:     shape.Int(query.Min(heights)),
			MaxHeight:     shape.Int(query.Max(heights)),
			AvgWeight:     shape.Round(query.Mean(weights), shape.PercentPlaces),
			MinWeight:     shape.Int(query.Min(weights)),
			MaxWeight:     shape.Int(query.Max(weights)),
			TotalAthletes: len(g.Rows),
		}
	}
	return PhysicalStatsList{Sports: out}, nil
}

// CountryCount is a NOC with a medal count.
type CountryCount struct {
	Country     string `json:"country"`
	TotalMedals int    `json:"total_medals"`
}

// SportLeaders lists the leading NOCs of one sport.
type SportLeaders struct {
	Sport     string         `json:"sport"`
	Countries []CountryCount `json:"dominant_countries"`
}

// DominantCountriesPerSport returns the ten NOCs with the most medals in sport.
func (d *Dataset) DominantCountriesPerSport(sport string) (SportLeaders, error) {
	rows := query.Filter(d.medals, func(e Entry) bool { return query.SameName(e.Sport, sport) })
	if len(rows) == 0 {
		return SportLeaders{}, daraerrors.NewNotFoundError("DominantCountriesPerSport", sport,
			shape.MessageError("Sport not found", fmt.Sprintf("No medals recorded for '%s'.", sport)))
	}

	counts := query.Top(query.ValueCounts(rows, byNOC), DominantCountriesLimit)
	return SportLeaders{
		Sport: rows[0].Sport,
		Countries: query.Map(counts, func(c query.Counted[string]) CountryCount {
			return CountryCount{Country: c.Key, TotalMedals: c.Count}
		}),
	}, nil
}

// SportTransition lists the sports that entered or left the programme in a year.
type SportTransition struct {
	Year    int64    `json:"year"`
	Added   []string `json:"added_sports"`
	Removed []string `json:"removed_sports"`
}

// SportEvolutionList holds the programme changes in ascending year order.
type SportEvolutionList struct {
	Transitions []SportTransition `json:"sport_evolution"`
}

// SportEvolution compares each year's sports with the previous year's. The
// first year has no predecessor and is skipped, as are years without change.
// Sport lists are sorted alphabetically.
func (d *Dataset) SportEvolution() SportEvolutionList {
	years := query.GroupBy(d.rows, byYear)
	out := make([]SportTransition, 0, len(years))
	for i := 1; i < len(years); i++ {
		prev := query.Unique(years[i-1].Rows, bySport)
		curr := query.Unique(years[i].Rows, bySport)
		added := query.SetDiff(curr, prev)
		removed := query.SetDiff(prev, curr)
		if len(added) == 0 && len(removed) == 0 {
			continue
		}
		out = append(out, SportTransition{Year: years[i].Key, Added: added, Removed: removed})
	}
	return SportEvolutionList{Transitions: out}
}

// SportParticipation is the number of distinct athletes in a sport.
type SportParticipation struct {
	Sport          string `json:"sport"`
	UniqueAthletes int    `json:"unique_athletes"`
}

// ParticipationList holds participation per sport.
type ParticipationList struct {
	Sports []SportParticipation `json:"participation_by_sport"`
}

// ParticipationBySport counts distinct athletes per sport, descending.
func (d *Dataset) ParticipationBySport() ParticipationList {
	groups := query.GroupBy(d.rows, bySport)
	out := make([]SportParticipation, len(groups))
	for i, g := range groups {
		out[i] = SportParticipation{Sport: g.Key, UniqueAthletes: query.NUnique(g.Rows, byID)}
	}
	return ParticipationList{Sports: query.SortStable(out, query.Desc(func(s SportParticipation) int { return s.UniqueAthletes }))}
}

// Monopoly is a sport dominated by one NOC.
type Monopoly struct {
	Sport               string  `json:"sport"`
	DominantCountry     string  `json:"dominant_country"`
	Medals              int     `json:"medals"`
	TotalSportMedals    int     `json:"total_sport_medals"`
	DominancePercentage float64 `json:"dominance_percentage"`
}

// Monopolies lists monopolised sports.
type Monopolies struct {
	Sports []Monopoly `json:"sport_monopolies"`
}

// SportMonopoly finds sports whose leading NOC holds at least
// MonopolyThresholdPercent of the medals, highest rounded dominance first.
// Sports are considered in order of first appearance, so equal rounded
// dominance keeps that order.
func (d *Dataset) SportMonopoly() Monopolies {
	bySportName := make(map[string][]Entry)
	for _, e := range d.medals {
		bySportName[e.Sport] = append(bySportName[e.Sport], e)
	}

	var found []Monopoly
	for _, sport := range query.UniqueInOrder(d.medals, bySport) {
		rows := bySportName[sport]
		counts := query.ValueCounts(rows, byNOC)
		top, total := float64(counts[0].Count), float64(len(rows))
		// Compared on integral products so a share of exactly the threshold is not lost to rounding.
		if top*100 < MonopolyThresholdPercent*total {
			continue
		}
		found = append(found, Monopoly{
			Sport:               sport,
			DominantCountry:     counts[0].Key,
			Medals:              counts[0].Count,
			TotalSportMedals:    len(rows),
			DominancePercentage: shape.Round(shape.Percent(top, total), shape.PercentPlaces),
		})
	}

	return Monopolies{Sports: query.SortStable(found, query.Desc(func(m Monopoly) float64 { return m.DominancePercentage }))}
}

// ExtinctSport is a sport absent from the most recent Games year.
type ExtinctSport struct {
	Sport       string `json:"sport"`
	FirstYear   int64  `json:"first_year"`
	LastYear    int64  `json:"last_year"`
	YearsActive int64  `json:"years_active"`
}

// ExtinctSportList holds extinct sports sorted by name.
type ExtinctSportList struct {
	Sports []ExtinctSport `json:"extinct_sports"`
}

// ExtinctSports lists sports that do not appear in the latest year of the table.
func (d *Dataset) ExtinctSports() ExtinctSportList {
	out := []ExtinctSport{}
	if len(d.rows) == 0 {
		return ExtinctSportList{Sports: out}
	}

	latest := query.Max(query.Map(d.rows, byYear))
	recent := query.Unique(query.Filter(d.rows, func(e Entry) bool { return e.Year == latest }), bySport)
	current := make(map[string]bool, len(recent))
	for _, s := range recent {
		current[s] = true
	}

	for _, g := range query.GroupBy(d.rows, bySport) {
		if current[g.Key] {
			continue
		}
		years := query.Map(g.Rows, byYear)
		first, last := query.Min(years), query.Max(years)
		out = append(out, ExtinctSport{Sport: g.Key, FirstYear: first, LastYear: last, YearsActive: last - first})
	}
	return ExtinctSportList{Sports: out}
}

// Dropout is the share of a sport's athletes who competed at only one Games in it.
type Dropout struct {
	Sport           string  `json:"sport"`
	TotalAthletes   int     `json:"total_athletes"`
	OneTimeAthletes int     `json:"one_time_athletes"`
	DropoutRate     float64 `json:"dropout_rate"`
}

// DropoutList holds dropout rates, highest first.
type DropoutList struct {
	Sports []Dropout `json:"dropout_rates"`
}

// DropoutRateBySport computes, per sport, the percentage of athletes who
// appeared at a single Games in that sport.
func (d *Dataset) DropoutRateBySport() DropoutList {
	type scored struct {
		Dropout
		rate float64
	}
	groups := query.GroupBy(d.rows, bySport)
	out := make([]scored, len(groups))
	for i, g := range groups {
		athletes := query.GroupBy(g.Rows, byID)
		once := query.Count(athletes, func(a query.Group[int64, Entry]) bool {
			return query.NUnique(a.Rows, byGames) == 1
		})
		rate := shape.Percent(float64(once), float64(len(athletes)))
		out[i] = scored{
			Dropout: Dropout{
				Sport:           g.Key,
				TotalAthletes:   len(athletes),
				OneTimeAthletes: once,
				DropoutRate:     shape.Round(rate, shape.PercentPlaces),
			},
			rate: rate,
		}
	}

	ranked := query.SortStable(out, query.Desc(func(s scored) float64 { return s.rate }))
	return DropoutList{Sports: query.Map(ranked, func(s scored) Dropout { return s.Dropout })}
}

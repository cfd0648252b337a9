package olympics

import (
	"github.com/dara-analytics/dara/internal/query"
	"github.com/dara-analytics/dara/internal/shape"
)

func gamesOf(e Entry) gamesKey {
	return gamesKey{Year: e.Year, Season: e.Season, City: e.City}
}

// HostCity is one Games edition and the city that held it.
type HostCity struct {
	Year   int64  `json:"year"`
	Season string `json:"season"`
	City   string `json:"city"`
}

// HostCityList holds every (year, season, city) triple in ascending order.
type HostCityList struct {
	Cities []HostCity `json:"host_cities"`
}

// HostCities lists the distinct host cities per year and season.
func (d *Dataset) HostCities() HostCityList {
	groups := query.GroupByFunc(d.rows, gamesOf, compareGames)
	return HostCityList{Cities: query.Map(groups, func(g query.Group[gamesKey, Entry]) HostCity {
		return HostCity{Year: g.Key.Year, Season: g.Key.Season, City: g.Key.City}
	})}
}

// HomeResult is the medal share of a host NOC at its own Games.
type HomeResult struct {
	Year        int64   `json:"year"`
	Season      string  `json:"season"`
	City        string  `json:"city"`
	HostCountry string  `json:"host_country"`
	MedalsWon   int     `json:"medals_won"`
	TotalMedals int     `json:"total_medals"`
	Percentage  float64 `json:"percentage"`
}

// HomeAdvantageList holds one entry per host city.
type HomeAdvantageList struct {
	Games []HomeResult `json:"home_advantage"`
}

// HomeAdvantage compares the host's medals with all medals of its Games. The
// host is the NOC of the first row recorded for the (year, season, city)
// group. Medals are counted over the whole year and season.
func (d *Dataset) HomeAdvantage() HomeAdvantageList {
	type edition struct {
		year   int64
		season string
	}
	medalsByEdition := make(map[edition][]Entry)
	for _, e := range d.medals {
		k := edition{e.Year, e.Season}
		medalsByEdition[k] = append(medalsByEdition[k], e)
	}

	groups := query.GroupByFunc(d.rows, gamesOf, compareGames)
	out := make([]HomeResult, len(groups))
	for i, g := range groups {
		host := g.Rows[0].NOC
		medals := medalsByEdition[edition{g.Key.Year, g.Key.Season}]
		won := query.Count(medals, func(e Entry) bool { return e.NOC == host })
		out[i] = HomeResult{
			Year:        g.Key.Year,
			Season:      g.Key.Season,
			City:        g.Key.City,
			HostCountry: host,
			MedalsWon:   won,
			TotalMedals: len(medals),
			Percentage:  shape.Round(shape.Percent(float64(won), float64(len(medals))), shape.PercentPlaces),
		}
	}
	return HomeAdvantageList{Games: out}
}

// SeasonStats counts the distinct participants of one season.
type SeasonStats struct {
	Season         string `json:"season"`
	UniqueAthletes int    `json:"unique_athletes"`
	Countries      int    `json:"countries"`
	Sports         int    `json:"sports"`
	Events         int    `json:"events"`
}

// SeasonComparisonList holds one entry per season, ascending.
type SeasonComparisonList struct {
	Seasons []SeasonStats `json:"season_comparison"`
}

// SeasonComparison counts distinct athletes, NOCs, sports and events per season.
func (d *Dataset) SeasonComparison() SeasonComparisonList {
	groups := query.GroupBy(d.rows, bySeason)
	out := make([]SeasonStats, len(groups))
	for i, g := range groups {
		out[i] = SeasonStats{
			Season:         g.Key,
			UniqueAthletes: query.NUnique(g.Rows, byID),
			Countries:      query.NUnique(g.Rows, byNOC),
			Sports:         query.NUnique(g.Rows, bySport),
			Events:         query.NUnique(g.Rows, byEvent),
		}
	}
	return SeasonComparisonList{Seasons: out}
}

package olympics

import (
	"fmt"
	"strings"

	daraerrors "github.com/dara-analytics/dara/internal/errors"
	"github.com/dara-analytics/dara/internal/query"
	"github.com/dara-analytics/dara/internal/shape"
)

// CountryMedals is a country's medal tally.
type CountryMedals struct {
	Country string `json:"country"`
	Gold    int    `json:"gold"`
	Silver  int    `json:"silver"`
	Bronze  int    `json:"bronze"`
	Total   int    `json:"total"`
}

// TopCountries is the all-time medal table.
type TopCountries struct {
	TopCountries []CountryMedals `json:"top_countries"`
}

// TopCountriesAllTime ranks NOCs by total medals won, descending.
func (d *Dataset) TopCountriesAllTime(topN int) TopCountries {
	tallies := countryTallies(d.medals)
	ranked := query.SortStable(tallies, query.Desc(func(c CountryMedals) int { return c.Total }))
	return TopCountries{TopCountries: query.Top(ranked, topN)}
}

func countryTallies(medals []Entry) []CountryMedals {
	groups := query.GroupBy(medals, byNOC)
	out := make([]CountryMedals, len(groups))
	for i, g := range groups {
		t := tallyOf(g.Rows)
		out[i] = CountryMedals{Country: g.Key, Gold: t.gold, Silver: t.silver, Bronze: t.bronze, Total: t.total}
	}
	return out
}

// YearMedals is one year of a country's medal history.
type YearMedals struct {
	Year   int64 `json:"year"`
	Gold   int   `json:"gold"`
	Silver int   `json:"silver"`
	Bronze int   `json:"bronze"`
}

// CountryHistory is a country's medals per year.
type CountryHistory struct {
	Country      string       `json:"country"`
	MedalsByYear []YearMedals `json:"medals_by_year"`
}

// CountryMedalsByYear returns the medals of one NOC per year. A zero year
// means every year. The NOC is matched case-insensitively.
func (d *Dataset) CountryMedalsByYear(noc string, year int64) (CountryHistory, error) {
	noc = strings.ToUpper(strings.TrimSpace(noc))
	rows := query.Filter(d.medals, func(e Entry) bool {
		return e.NOC == noc && (year == 0 || e.Year == year)
	})
	if len(rows) == 0 {
		return CountryHistory{}, daraerrors.NewNotFoundError("CountryMedalsByYear", noc,
			shape.Error("No data found for "+noc))
	}

	groups := query.GroupBy(rows, byYear)
	history := make([]YearMedals, len(groups))
	for i, g := range groups {
		t := tallyOf(g.Rows)
		history[i] = YearMedals{Year: g.Key, Gold: t.gold, Silver: t.silver, Bronze: t.bronze}
	}
	return CountryHistory{Country: noc, MedalsByYear: history}, nil
}

// Ranking is one line of a Games medal table.
type Ranking struct {
	Rank    int    `json:"rank"`
	Country string `json:"country"`
	Gold    int    `json:"gold"`
	Silver  int    `json:"silver"`
	Bronze  int    `json:"bronze"`
	Total   int    `json:"total"`
}

// GamesRanking is the medal table of one Games.
type GamesRanking struct {
	Year     int64     `json:"year"`
	Season   string    `json:"season"`
	Rankings []Ranking `json:"rankings"`
}

// CountryRanking ranks NOCs at one Games by gold, then total, both descending.
// NOCs equal on both keep ascending NOC order.
func (d *Dataset) CountryRanking(year int64, season string) (GamesRanking, error) {
	rows := query.Filter(d.medals, func(e Entry) bool {
		return e.Year == year && query.SameName(e.Season, season)
	})
	if len(rows) == 0 {
		return GamesRanking{}, daraerrors.NewNotFoundError("CountryRanking", fmt.Sprintf("%d %s", year, season),
			shape.MessageError("No rankings found", fmt.Sprintf("No medals recorded for the %d %s Games.", year, season)))
	}

	ranked := query.SortStable(countryTallies(rows),
		query.Desc(func(c CountryMedals) int { return c.Gold }),
		query.Desc(func(c CountryMedals) int { return c.Total }),
	)

	out := make([]Ranking, len(ranked))
	for i, c := range ranked {
		out[i] = Ranking{Rank: i + 1, Country: c.Country, Gold: c.Gold, Silver: c.Silver, Bronze: c.Bronze, Total: c.Total}
	}
	return GamesRanking{Year: year, Season: rows[0].Season, Rankings: out}, nil
}

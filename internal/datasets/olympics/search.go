package olympics

import (
	"cmp"
	"strings"

	daraerrors "github.com/dara-analytics/dara/internal/errors"
	"github.com/dara-analytics/dara/internal/query"
	"github.com/dara-analytics/dara/internal/shape"
)

// SearchTopCountries is the number of NOCs listed by SearchSport.
const SearchTopCountries = 5

// AthleteMatch is one athlete matched by SearchAthlete.
type AthleteMatch struct {
	ID          int64    `json:"ID"`
	Name        string   `json:"Name"`
	Team        string   `json:"Team"`
	Sex         string   `json:"Sex"`
	Years       []int64  `json:"Years"`
	TotalMedals int      `json:"Total_Medals"`
	Sports      []string `json:"Sports"`
}

// AthleteResults is the result of an athlete search.
type AthleteResults struct {
	Query        string         `json:"query"`
	TotalResults int            `json:"total_results"`
	Athletes     []AthleteMatch `json:"athletes"`
}

func notFoundQuery(op, message, q string) error {
	return daraerrors.NewNotFoundError(op, q, shape.Record{
		{Key: "message", Value: message},
		{Key: "query", Value: q},
	})
}

// SearchAthlete finds athletes whose name contains name, ignoring case.
func (d *Dataset) SearchAthlete(name string) (AthleteResults, error) {
	needle := strings.TrimSpace(name)
	rows := query.Filter(d.rows, func(e Entry) bool { return query.ContainsFold(e.Name, needle) })
	if len(rows) == 0 {
		return AthleteResults{}, notFoundQuery("SearchAthlete", "No athletes found", name)
	}

	groups := query.GroupByFunc(rows, keyOf, func(a, b athleteKey) int {
		return cmp.Or(
			cmp.Compare(a.ID, b.ID),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.Team, b.Team),
			cmp.Compare(a.Sex, b.Sex),
		)
	})
	out := make([]AthleteMatch, len(groups))
	for i, g := range groups {
		out[i] = AthleteMatch{
			ID:          g.Key.ID,
			Name:        g.Key.Name,
			Team:        g.Key.Team,
			Sex:         g.Key.Sex,
			Years:       query.Unique(g.Rows, byYear),
			TotalMedals: query.Count(g.Rows, medalled),
			Sports:      query.UniqueInOrder(g.Rows, bySport),
		}
	}
	return AthleteResults{Query: name, TotalResults: len(out), Athletes: out}, nil
}

// SportResults is the result of a sport search.
type SportResults struct {
	Query          string       `json:"query"`
	MatchingSports []string     `json:"matching_sports"`
	TotalAthletes  int          `json:"total_athletes"`
	TotalEvents    int          `json:"total_events"`
	YearsActive    []int64      `json:"years_active"`
	TopCountries   shape.Record `json:"top_countries"`
}

// SearchSport summarises the sports whose name contains sport, ignoring case.
// TopCountries maps the five NOCs with the most entries to their entry count.
func (d *Dataset) SearchSport(sport string) (SportResults, error) {
	needle := strings.TrimSpace(sport)
	rows := query.Filter(d.rows, func(e Entry) bool { return query.ContainsFold(e.Sport, needle) })
	if len(rows) == 0 {
		return SportResults{}, notFoundQuery("SearchSport", "No sports found", sport)
	}

	top := shape.Record{}
	for _, c := range query.Top(query.ValueCounts(rows, byNOC), SearchTopCountries) {
		top = top.Set(c.Key, c.Count)
	}
	return SportResults{
		Query:          sport,
		MatchingSports: query.UniqueInOrder(rows, bySport),
		TotalAthletes:  query.NUnique(rows, byID),
		TotalEvents:    query.NUnique(rows, byEvent),
		YearsActive:    query.Unique(rows, byYear),
		TopCountries:   top,
	}, nil
}

// Summary describes the loaded table.
type Summary struct {
	TotalRecords   int
	FirstYear      int64
	LastYear       int64
	TotalAthletes  int
	TotalCountries int
}

// Summary returns the record count, year range and distinct athletes and NOCs.
func (d *Dataset) Summary() Summary {
	years := query.Map(d.rows, byYear)
	return Summary{
		TotalRecords:   len(d.rows),
		FirstYear:      query.Min(years),
		LastYear:       query.Max(years),
		TotalAthletes:  query.NUnique(d.rows, byID),
		TotalCountries: query.NUnique(d.rows, byNOC),
	}
}

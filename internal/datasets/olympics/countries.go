package olympics

import (
	"fmt"

	daraerrors "github.com/dara-analytics/dara/internal/errors"
	"github.com/dara-analytics/dara/internal/query"
	"github.com/dara-analytics/dara/internal/shape"
)

// Country thresholds and list sizes.
const (
	ConversionLimit = 20
	// UnderdogMaxParticipants is the exclusive upper bound on a NOC's distinct athletes to count as an underdog.
	UnderdogMaxParticipants = 500
	UnderdogLimit           = 20
	DefaultMinOlympics      = 10
	ConsistencyLimit        = 20
	DroughtLimit            = 20
	// SmallCountryMaxAthletes is the exclusive upper bound on distinct athletes for a small country.
	SmallCountryMaxAthletes = 100
	SmallCountryLimit       = 20
)

// YearCountries is the number of NOCs present in a year.
type YearCountries struct {
	Year                   int64 `json:"year"`
	ParticipatingCountries int   `json:"participating_countries"`
}

// ParticipationGrowth holds the NOC count per year, ascending.
type ParticipationGrowth struct {
	Years []YearCountries `json:"country_participation_growth"`
}

// CountryParticipationGrowth counts distinct NOCs per year.
func (d *Dataset) CountryParticipationGrowth() ParticipationGrowth {
	groups := query.GroupBy(d.rows, byYear)
	out := make([]YearCountries, len(groups))
	for i, g := range groups {
		out[i] = YearCountries{Year: g.Key, ParticipatingCountries: query.NUnique(g.Rows, byNOC)}
	}
	return ParticipationGrowth{Years: out}
}

// efficiency pairs a NOC's distinct athletes with its medal rows.
type efficiency struct {
	country      string
	participants int
	medals       int
}

// efficiencies returns one entry per NOC in rows, ascending by NOC.
func efficiencies(rows []Entry) []efficiency {
	groups := query.GroupBy(rows, byNOC)
	out := make([]efficiency, len(groups))
	for i, g := range groups {
		out[i] = efficiency{
			country:      g.Key,
			participants: query.NUnique(g.Rows, byID),
			medals:       query.Count(g.Rows, medalled),
		}
	}
	return out
}

// Conversion is a NOC's medals per participant at one Games.
type Conversion struct {
	Country        string  `json:"country"`
	Participants   int     `json:"participants"`
	Medals         int     `json:"medals"`
	ConversionRate float64 `json:"conversion_rate"`
}

// Conversions is the conversion table of one Games.
type Conversions struct {
	Year   int64        `json:"year"`
	Season string       `json:"season"`
	Rates  []Conversion `json:"conversion_rates"`
}

// MedalConversionRate ranks the NOCs of one Games by medals per 100
// participants. NOCs without medals score 0.
func (d *Dataset) MedalConversionRate(year int64, season string) (Conversions, error) {
	rows := query.Filter(d.rows, func(e Entry) bool {
		return e.Year == year && query.SameName(e.Season, season)
	})
	if len(rows) == 0 {
		return Conversions{}, daraerrors.NewNotFoundError("MedalConversionRate", fmt.Sprintf("%d %s", year, season),
			shape.MessageError("No Games found", fmt.Sprintf("No %s Games recorded in %d.", season, year)))
	}

	rate := func(e efficiency) float64 { return shape.Percent(float64(e.medals), float64(e.participants)) }
	ranked := query.Top(query.SortStable(efficiencies(rows), query.Desc(rate)), ConversionLimit)
	out := make([]Conversion, len(ranked))
	for i, e := range ranked {
		out[i] = Conversion{
			Country:        e.country,
			Participants:   e.participants,
			Medals:         e.medals,
			ConversionRate: shape.Round(rate(e), shape.PercentPlaces),
		}
	}
	return Conversions{Year: year, Season: rows[0].Season, Rates: out}, nil
}

// Underdog is a small NOC with a high medal yield.
type Underdog struct {
	Country           string  `json:"country"`
	TotalParticipants int     `json:"total_participants"`
	TotalMedals       int     `json:"total_medals"`
	EfficiencyScore   float64 `json:"efficiency_score"`
}

// Underdogs lists underdog nations.
type Underdogs struct {
	Nations []Underdog `json:"underdog_nations"`
}

// UnderdogNations ranks NOCs with fewer than UnderdogMaxParticipants athletes
// by medals per athlete.
func (d *Dataset) UnderdogNations() Underdogs {
	small := query.Filter(efficiencies(d.rows), func(e efficiency) bool {
		return e.participants < UnderdogMaxParticipants
	})
	score := func(e efficiency) float64 { return shape.Ratio(float64(e.medals), float64(e.participants)) }
	ranked := query.Top(query.SortStable(small, query.Desc(score)), UnderdogLimit)
	return Underdogs{Nations: query.Map(ranked, func(e efficiency) Underdog {
		return Underdog{
			Country:           e.country,
			TotalParticipants: e.participants,
			TotalMedals:       e.medals,
			EfficiencyScore:   shape.Round(score(e), shape.ScorePlaces),
		}
	})}
}

// Consistency is the share of a NOC's Games that produced a medal.
type Consistency struct {
	Country               string  `json:"country"`
	OlympicsAttended      int     `json:"olympics_attended"`
	OlympicsWithMedals    int     `json:"olympics_with_medals"`
	ConsistencyPercentage float64 `json:"consistency_percentage"`
}

// ConsistentCountriesList holds the most consistent medal winners.
type ConsistentCountriesList struct {
	MinOlympics int           `json:"min_olympics"`
	Countries   []Consistency `json:"consistent_countries"`
}

// ConsistentCountries ranks NOCs that attended at least minOlympics Games by
// the percentage of those Games in which they won a medal. minOlympics <= 0
// selects DefaultMinOlympics.
func (d *Dataset) ConsistentCountries(minOlympics int) ConsistentCountriesList {
	if minOlympics <= 0 {
		minOlympics = DefaultMinOlympics
	}
	type scored struct {
		Consistency
		share float64
	}
	var found []scored
	for _, g := range query.GroupBy(d.rows, byNOC) {
		attended := query.NUnique(g.Rows, byGames)
		if attended < minOlympics {
			continue
		}
		withMedals := query.NUnique(query.Filter(g.Rows, medalled), byGames)
		share := shape.Percent(float64(withMedals), float64(attended))
		found = append(found, scored{
			Consistency: Consistency{
				Country:               g.Key,
				OlympicsAttended:      attended,
				OlympicsWithMedals:    withMedals,
				ConsistencyPercentage: shape.Round(share, shape.PercentPlaces),
			},
			share: share,
		})
	}
	ranked := query.Top(query.SortStable(found, query.Desc(func(s scored) float64 { return s.share })), ConsistencyLimit)
	return ConsistentCountriesList{
		MinOlympics: minOlympics,
		Countries:   query.Map(ranked, func(s scored) Consistency { return s.Consistency }),
	}
}

// Drought is the longest wait between two medal-winning years of a NOC.
type Drought struct {
	Country       string `json:"country"`
	LastMedalYear int64  `json:"drought_start"`
	NextMedalYear int64  `json:"drought_end"`
	DroughtYears  int64  `json:"drought_years"`
	TotalMedals   int    `json:"total_medals"`
}

// Droughts lists the longest medal droughts.
type Droughts struct {
	Countries []Drought `json:"medal_droughts"`
}

// MedalDroughts finds, per NOC with at least two medal years, the longest gap
// between consecutive medal years. Longest first.
func (d *Dataset) MedalDroughts() Droughts {
	var found []Drought
	for _, g := range query.GroupBy(d.medals, byNOC) {
		years := query.Unique(g.Rows, byYear)
		if len(years) < 2 {
			continue
		}
		best := Drought{Country: g.Key, TotalMedals: len(g.Rows)}
		for i := 1; i < len(years); i++ {
			if gap := years[i] - years[i-1]; gap > best.DroughtYears {
				best.LastMedalYear, best.NextMedalYear, best.DroughtYears = years[i-1], years[i], gap
			}
		}
		found = append(found, best)
	}
	ranked := query.SortStable(found, query.Desc(func(dr Drought) int64 { return dr.DroughtYears }))
	return Droughts{Countries: query.Top(ranked, DroughtLimit)}
}

// SmallCountry is a NOC with few athletes and at least one medal.
type SmallCountry struct {
	Country          string  `json:"country"`
	TotalAthletes    int     `json:"total_athletes"`
	TotalMedals      int     `json:"total_medals"`
	MedalsPerAthlete float64 `json:"medals_per_athlete"`
}

// SmallCountries lists successful small countries.
type SmallCountries struct {
	Countries []SmallCountry `json:"small_country_success"`
}

// SmallCountrySuccess ranks NOCs with fewer than SmallCountryMaxAthletes
// athletes and at least one medal by medals won.
func (d *Dataset) SmallCountrySuccess() SmallCountries {
	small := query.Filter(efficiencies(d.rows), func(e efficiency) bool {
		return e.participants < SmallCountryMaxAthletes && e.medals > 0
	})
	ranked := query.Top(query.SortStable(small, query.Desc(func(e efficiency) int { return e.medals })), SmallCountryLimit)
	return SmallCountries{Countries: query.Map(ranked, func(e efficiency) SmallCountry {
		return SmallCountry{
			Country:          e.country,
			TotalAthletes:    e.participants,
			TotalMedals:      e.medals,
			MedalsPerAthlete: shape.Round(shape.Ratio(float64(e.medals), float64(e.participants)), shape.ScorePlaces),
		}
	})}
}

// FirstMedal is a NOC's debut medal haul.
type FirstMedal struct {
	Country string   `json:"country"`
	Medals  int      `json:"medals"`
	Sports  []string `json:"sports"`
}

// FirstMedals lists the NOCs that won their first medal in a year.
type FirstMedals struct {
	Year      int64        `json:"year"`
	Total     int          `json:"total_first_time_winners"`
	Countries []FirstMedal `json:"first_time_winners"`
}

// FirstTimeMedalWinners lists the NOCs whose earliest medal year is year,
// most medals first.
func (d *Dataset) FirstTimeMedalWinners(year int64) (FirstMedals, error) {
	if query.Count(d.rows, func(e Entry) bool { return e.Year == year }) == 0 {
		return FirstMedals{}, daraerrors.NewNotFoundError("FirstTimeMedalWinners", fmt.Sprint(year),
			shape.MessageError("No Games found", fmt.Sprintf("No Olympic Games recorded in %d.", year)))
	}

	out := []FirstMedal{}
	for _, g := range query.GroupBy(d.medals, byNOC) {
		if query.Min(query.Map(g.Rows, byYear)) != year {
			continue
		}
		debut := query.Filter(g.Rows, func(e Entry) bool { return e.Year == year })
		out = append(out, FirstMedal{Country: g.Key, Medals: len(debut), Sports: query.Unique(debut, bySport)})
	}
	out = query.SortStable(out, query.Desc(func(f FirstMedal) int { return f.Medals }))
	return FirstMedals{Year: year, Total: len(out), Countries: out}, nil
}

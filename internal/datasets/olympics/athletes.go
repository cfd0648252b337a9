package olympics

import (
	"slices"

	"github.com/dara-analytics/dara/internal/query"
	"github.com/dara-analytics/dara/internal/shape"
)

// Athlete list limits.
const (
	MedalistsPerList       = 10
	MostExperiencedLimit   = 20
	AgeDefyingMinAge       = 40
	AgeDefyingLimit        = 30
	ComebackMinGapYears    = 8
	ComebackLimit          = 20
	OneHitWonderLimit      = 50
	SeasonalCrossoverLimit = 50
)

// DecoratedAthlete is an athlete's medal count.
type DecoratedAthlete struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Sex         string `json:"sex"`
	Team        string `json:"team"`
	TotalMedals int    `json:"total_medals"`
	Gold        int    `json:"gold"`
	Silver      int    `json:"silver"`
	Bronze      int    `json:"bronze"`
}

// DecoratedAthletes lists the most decorated athletes.
type DecoratedAthletes struct {
	Athletes []DecoratedAthlete `json:"most_decorated_athletes"`
}

// MostDecoratedAthletes ranks athletes by medals won. The colour breakdown
// covers every medal of the athlete ID.
func (d *Dataset) MostDecoratedAthletes(topN int) DecoratedAthletes {
	perID := make(map[int64]tally)
	for _, g := range query.GroupBy(d.medals, byID) {
		perID[g.Key] = tallyOf(g.Rows)
	}

	groups := query.GroupByFunc(d.medals, keyOf, compareAthlete)
	athletes := make([]DecoratedAthlete, len(groups))
	for i, g := range groups {
		t := perID[g.Key.ID]
		athletes[i] = DecoratedAthlete{
			ID:          g.Key.ID,
			Name:        g.Key.Name,
			Sex:         g.Key.Sex,
			Team:        g.Key.Team,
			TotalMedals: len(g.Rows),
			Gold:        t.gold,
			Silver:      t.silver,
			Bronze:      t.bronze,
		}
	}

	ranked := query.SortStable(athletes, query.Desc(func(a DecoratedAthlete) int { return a.TotalMedals }))
	return DecoratedAthletes{Athletes: query.Top(ranked, topN)}
}

// Medalist is a medal-winning entry with the athlete's age.
type Medalist struct {
	Name  string `json:"Name"`
	Age   int64  `json:"Age"`
	Sport string `json:"Sport"`
	Event string `json:"Event"`
	Year  int64  `json:"Year"`
	Medal string `json:"Medal"`
}

// AgeExtremes holds the youngest and oldest medalists.
type AgeExtremes struct {
	Youngest []Medalist `json:"youngest_medalists"`
	Oldest   []Medalist `json:"oldest_medalists"`
}

// YoungestOldestMedalists returns the ten youngest and ten oldest medal
// entries. Entries of equal age keep table order.
func (d *Dataset) YoungestOldestMedalists() AgeExtremes {
	aged := query.Filter(d.medals, hasAge)
	toMedalist := func(e Entry) Medalist {
		return Medalist{Name: e.Name, Age: shape.Int(e.Age), Sport: e.Sport, Event: e.Event, Year: e.Year, Medal: e.Medal}
	}

	youngest := query.Top(query.SortStable(aged, query.Asc(ageOf)), MedalistsPerList)
	oldest := query.Top(query.SortStable(aged, query.Desc(ageOf)), MedalistsPerList)
	return AgeExtremes{
		Youngest: query.Map(youngest, toMedalist),
		Oldest:   query.Map(oldest, toMedalist),
	}
}

// ExperiencedAthlete counts the Games an athlete appeared at.
type ExperiencedAthlete struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Team              string  `json:"team"`
	Sex               string  `json:"sex"`
	OlympicsCount     int     `json:"olympics_count"`
	YearsParticipated []int64 `json:"years_participated"`
	CareerSpan        int64   `json:"career_span"`
}

// ExperiencedAthletes lists the athletes with the most Games.
type ExperiencedAthletes struct {
	Athletes []ExperiencedAthlete `json:"most_experienced_athletes"`
}

// MostExperiencedAthletes ranks athletes by distinct Games attended.
func (d *Dataset) MostExperiencedAthletes() ExperiencedAthletes {
	yearsByID := make(map[int64][]int64)
	for _, g := range query.GroupBy(d.rows, byID) {
		yearsByID[g.Key] = query.Unique(g.Rows, byYear)
	}

	groups := query.GroupByFunc(d.rows, keyOf, compareAthlete)
	athletes := make([]ExperiencedAthlete, len(groups))
	for i, g := range groups {
		years := yearsByID[g.Key.ID]
		athletes[i] = ExperiencedAthlete{
			ID:                g.Key.ID,
			Name:              g.Key.Name,
			Team:              g.Key.Team,
			Sex:               g.Key.Sex,
			OlympicsCount:     query.NUnique(g.Rows, byGames),
			YearsParticipated: years,
			CareerSpan:        years[len(years)-1] - years[0],
		}
	}

	ranked := query.SortStable(athletes, query.Desc(func(a ExperiencedAthlete) int { return a.OlympicsCount }))
	return ExperiencedAthletes{Athletes: query.Top(ranked, MostExperiencedLimit)}
}

// VeteranMedalist is a medal won at an advanced age.
type VeteranMedalist struct {
	Name  string `json:"name"`
	Age   int64  `json:"age"`
	Sport string `json:"sport"`
	Event string `json:"event"`
	Medal string `json:"medal"`
	Year  int64  `json:"year"`
	Team  string `json:"team"`
}

// AgeDefying lists veteran medalists.
type AgeDefying struct {
	Athletes []VeteranMedalist `json:"age_defying_athletes"`
}

// AgeDefyingAthletes returns medal entries of athletes aged 40 or more, oldest first.
func (d *Dataset) AgeDefyingAthletes() AgeDefying {
	old := query.Filter(d.medals, func(e Entry) bool { return e.HasAge && e.Age >= AgeDefyingMinAge })
	old = query.Top(query.SortStable(old, query.Desc(ageOf)), AgeDefyingLimit)
	return AgeDefying{Athletes: query.Map(old, func(e Entry) VeteranMedalist {
		return VeteranMedalist{Name: e.Name, Age: shape.Int(e.Age), Sport: e.Sport, Event: e.Event, Medal: e.Medal, Year: e.Year, Team: e.Team}
	})}
}

// Comeback is a medal won after a long absence from the Games.
type Comeback struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Team         string `json:"team"`
	Sport        string `json:"sport"`
	PreviousYear int64  `json:"previous_year"`
	ComebackYear int64  `json:"comeback_year"`
	GapYears     int64  `json:"gap_years"`
	Medals       int    `json:"medals_in_comeback"`
}

// Comebacks lists comeback medalists.
type Comebacks struct {
	Athletes []Comeback `json:"comeback_athletes"`
}

// ComebackAthletes finds athletes who medalled at a Games that followed a gap
// of at least eight years since their previous appearance. The longest gap
// of each athlete is reported; ties keep ascending athlete ID order.
func (d *Dataset) ComebackAthletes() Comebacks {
	var out []Comeback
	for _, g := range query.GroupBy(d.rows, byID) {
		years := query.Unique(g.Rows, byYear)
		best := Comeback{}
		for i := 1; i < len(years); i++ {
			gap := years[i] - years[i-1]
			if gap < ComebackMinGapYears || gap <= best.GapYears {
				continue
			}
			year := years[i]
			won := query.Filter(g.Rows, func(e Entry) bool { return e.Year == year && e.Medalled() })
			if len(won) == 0 {
				continue
			}
			best = Comeback{
				ID:           g.Key,
				Name:         won[0].Name,
				Team:         won[0].Team,
				Sport:        won[0].Sport,
				PreviousYear: years[i-1],
				ComebackYear: year,
				GapYears:     gap,
				Medals:       len(won),
			}
		}
		if best.GapYears > 0 {
			out = append(out, best)
		}
	}

	ranked := query.SortStable(out, query.Desc(func(c Comeback) int64 { return c.GapYears }))
	return Comebacks{Athletes: query.Top(ranked, ComebackLimit)}
}

// OneHitWonder is an athlete with a single Games and a single medal.
type OneHitWonder struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Team  string `json:"team"`
	Sport string `json:"sport"`
	Event string `json:"event"`
	Year  int64  `json:"year"`
	Medal string `json:"medal"`
}

// OneHitWonders holds the count and a sample ordered by year.
type OneHitWonders struct {
	Total    int            `json:"total_one_hit_wonders"`
	Athletes []OneHitWonder `json:"athletes"`
}

// OneHitWonders finds athletes who appeared at exactly one Games and won exactly one medal.
func (d *Dataset) OneHitWonders() OneHitWonders {
	var found []OneHitWonder
	for _, g := range query.GroupBy(d.rows, byID) {
		if query.NUnique(g.Rows, byGames) != 1 {
			continue
		}
		won := query.Filter(g.Rows, medalled)
		if len(won) != 1 {
			continue
		}
		e := won[0]
		found = append(found, OneHitWonder{ID: e.ID, Name: e.Name, Team: e.Team, Sport: e.Sport, Event: e.Event, Year: e.Year, Medal: e.Medal})
	}

	byYearAsc := query.SortStable(found, query.Asc(func(o OneHitWonder) int64 { return o.Year }))
	return OneHitWonders{Total: len(found), Athletes: query.Top(byYearAsc, OneHitWonderLimit)}
}

// CrossoverAthlete competed at both Summer and Winter Games.
type CrossoverAthlete struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Team         string   `json:"team"`
	SummerSports []string `json:"summer_sports"`
	WinterSports []string `json:"winter_sports"`
	TotalMedals  int      `json:"total_medals"`
}

// Crossovers lists crossover athletes.
type Crossovers struct {
	Total    int                `json:"total_crossover_athletes"`
	Athletes []CrossoverAthlete `json:"crossover_athletes"`
}

// SeasonalCrossoverAthletes finds athletes with entries in both seasons, most medals first.
func (d *Dataset) SeasonalCrossoverAthletes() Crossovers {
	var found []CrossoverAthlete
	for _, g := range query.GroupBy(d.rows, byID) {
		seasons := query.Unique(g.Rows, bySeason)
		if !slices.Contains(seasons, "Summer") || !slices.Contains(seasons, "Winter") {
			continue
		}
		inSeason := func(season string) []string {
			return query.Unique(query.Filter(g.Rows, func(e Entry) bool { return e.Season == season }), bySport)
		}
		found = append(found, CrossoverAthlete{
			ID:           g.Key,
			Name:         g.Rows[0].Name,
			Team:         g.Rows[0].Team,
			SummerSports: inSeason("Summer"),
			WinterSports: inSeason("Winter"),
			TotalMedals:  query.Count(g.Rows, medalled),
		})
	}

	ranked := query.SortStable(found, query.Desc(func(c CrossoverAthlete) int { return c.TotalMedals }))
	return Crossovers{Total: len(found), Athletes: query.Top(ranked, SeasonalCrossoverLimit)}
}

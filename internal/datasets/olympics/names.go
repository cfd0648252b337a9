package olympics

import (
	"cmp"
	"strings"

	"github.com/dara-analytics/dara/internal/query"
	"github.com/dara-analytics/dara/internal/shape"
)

const (
	DefaultCommonNames = 20
	NamesPerDecade     = 5
	// LuckyNameMinAthletes is the minimum number of athletes sharing a first name for it to be ranked.
	LuckyNameMinAthletes = 50
	LuckyNameLimit       = 20
	// FamilyMinMedallists is the minimum number of medal-winning relatives of a family legacy.
	FamilyMinMedallists = 2
	FamilyLimit         = 20
)

// nameParts returns the first and last name tokens, ignoring any
// parenthesised suffix and surrounding quotes.
func nameParts(name string) (first, last string) {
	if i := strings.Index(name, "("); i >= 0 {
		name = name[:i]
	}
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}
	trim := func(s string) string { return strings.Trim(s, `"',.`) }
	return trim(fields[0]), trim(fields[len(fields)-1])
}

func firstName(e Entry) string {
	first, _ := nameParts(e.Name)
	return first
}

// athlete is one distinct athlete with the rows recorded for them.
type athlete struct {
	Entry
	medals int
	years  []int64
}

// athletes collapses rows to one entry per athlete ID, ascending by ID.
func (d *Dataset) athletes() []athlete {
	groups := query.GroupBy(d.rows, byID)
	out := make([]athlete, len(groups))
	for i, g := range groups {
		out[i] = athlete{
			Entry:  g.Rows[0],
			medals: query.Count(g.Rows, medalled),
			years:  query.Unique(g.Rows, byYear),
		}
	}
	return out
}

// NameCount is a first name and the number of athletes bearing it.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func nameCounts(athletes []athlete, n int) []NameCount {
	named := query.Filter(athletes, func(a athlete) bool { return firstName(a.Entry) != "" })
	counts := query.Top(query.ValueCounts(named, func(a athlete) string { return firstName(a.Entry) }), n)
	return query.Map(counts, func(c query.Counted[string]) NameCount {
		return NameCount{Name: c.Key, Count: c.Count}
	})
}

// CommonNames holds the most common first names.
type CommonNames struct {
	Names []NameCount `json:"most_common_names"`
}

// MostCommonNames ranks first names by the number of distinct athletes
// bearing them. topN <= 0 selects DefaultCommonNames.
func (d *Dataset) MostCommonNames(topN int) CommonNames {
	if topN <= 0 {
		topN = DefaultCommonNames
	}
	return CommonNames{Names: nameCounts(d.athletes(), topN)}
}

// DecadeNames is the most common first names among a decade's athletes.
type DecadeNames struct {
	Decade   int64       `json:"decade"`
	TopNames []NameCount `json:"top_names"`
}

// NameTrends holds one entry per decade, ascending.
type NameTrends struct {
	Decades []DecadeNames `json:"name_trends_by_decade"`
}

// NameTrendsByDecade lists the NamesPerDecade most common first names of the
// distinct athletes who competed in each decade.
func (d *Dataset) NameTrendsByDecade() NameTrends {
	decades := query.GroupBy(d.rows, func(e Entry) int64 { return query.Decade(e.Year) })
	out := make([]DecadeNames, len(decades))
	for i, g := range decades {
		people := query.Map(query.GroupBy(g.Rows, byID), func(a query.Group[int64, Entry]) athlete {
			return athlete{Entry: a.Rows[0]}
		})
		out[i] = DecadeNames{Decade: g.Key, TopNames: nameCounts(people, NamesPerDecade)}
	}
	return NameTrends{Decades: out}
}

// LuckyName is a first name with its medal rate.
type LuckyName struct {
	Name          string  `json:"name"`
	TotalAthletes int     `json:"total_athletes"`
	MedalWinners  int     `json:"medal_winners"`
	MedalRate     float64 `json:"medal_rate"`
}

// LuckyNameList holds the luckiest first names.
type LuckyNameList struct {
	Names []LuckyName `json:"lucky_names"`
}

// LuckyNames ranks first names shared by at least LuckyNameMinAthletes
// athletes by the percentage of them who won a medal.
func (d *Dataset) LuckyNames() LuckyNameList {
	type scored struct {
		LuckyName
		rate float64
	}
	var found []scored
	for _, g := range query.GroupBy(d.athletes(), func(a athlete) string { return firstName(a.Entry) }) {
		if g.Key == "" || len(g.Rows) < LuckyNameMinAthletes {
			continue
		}
		winners := query.Count(g.Rows, func(a athlete) bool { return a.medals > 0 })
		rate := shape.Percent(float64(winners), float64(len(g.Rows)))
		found = append(found, scored{
			LuckyName: LuckyName{
				Name:          g.Key,
				TotalAthletes: len(g.Rows),
				MedalWinners:  winners,
				MedalRate:     shape.Round(rate, shape.PercentPlaces),
			},
			rate: rate,
		})
	}
	ranked := query.Top(query.SortStable(found, query.Desc(func(s scored) float64 { return s.rate })), LuckyNameLimit)
	return LuckyNameList{Names: query.Map(ranked, func(s scored) LuckyName { return s.LuckyName })}
}

// Family is a surname and NOC shared by several medal-winning athletes.
type Family struct {
	Surname      string   `json:"surname"`
	Country      string   `json:"country"`
	Members      int      `json:"members"`
	MedalWinners int      `json:"medal_winners"`
	TotalMedals  int      `json:"total_medals"`
	Years        []int64  `json:"years"`
	Athletes     []string `json:"athletes"`
}

// FamilyList holds the strongest family legacies.
type FamilyList struct {
	Families []Family `json:"family_legacies"`
}

type familyKey struct {
	Surname string
	NOC     string
}

// FamilyLegacies groups athletes by surname and NOC and keeps the groups with
// at least FamilyMinMedallists medal winners, ranked by medal winners then
// total medals.
func (d *Dataset) FamilyLegacies() FamilyList {
	groups := query.GroupByFunc(d.athletes(),
		func(a athlete) familyKey {
			_, last := nameParts(a.Name)
			return familyKey{Surname: last, NOC: a.NOC}
		},
		func(a, b familyKey) int { return cmp.Or(cmp.Compare(a.Surname, b.Surname), cmp.Compare(a.NOC, b.NOC)) },
	)

	var found []Family
	for _, g := range groups {
		if g.Key.Surname == "" {
			continue
		}
		winners := query.Filter(g.Rows, func(a athlete) bool { return a.medals > 0 })
		if len(winners) < FamilyMinMedallists {
			continue
		}
		var years []int64
		for _, a := range winners {
			years = append(years, a.years...)
		}
		found = append(found, Family{
			Surname:      g.Key.Surname,
			Country:      g.Key.NOC,
			Members:      len(g.Rows),
			MedalWinners: len(winners),
			TotalMedals:  query.Sum(query.Map(winners, func(a athlete) int { return a.medals })),
			Years:        query.Unique(years, func(y int64) int64 { return y }),
			Athletes:     query.Map(winners, func(a athlete) string { return a.Name }),
		})
	}
	ranked := query.SortStable(found,
		query.Desc(func(f Family) int { return f.MedalWinners }),
		query.Desc(func(f Family) int { return f.TotalMedals }),
	)
	return FamilyList{Families: query.Top(ranked, FamilyLimit)}
}

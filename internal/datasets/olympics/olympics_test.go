package olympics_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dara-analytics/dara/internal/datasets/olympics"
	daraerrors "github.com/dara-analytics/dara/internal/errors"
	"github.com/dara-analytics/dara/internal/testutil"
)

// entry builds a Summer row. Team mirrors the NOC.
func entry(id int64, name, noc string, year int64, sport, medal string) olympics.Entry {
	return seasonal(id, name, noc, year, "Summer", sport, medal)
}

func seasonal(id int64, name, noc string, year int64, season, sport, medal string) olympics.Entry {
	return olympics.Entry{
		ID:     id,
		Name:   name,
		Sex:    "M",
		Team:   noc,
		NOC:    noc,
		Games:  fmt.Sprintf("%d %s", year, season),
		Year:   year,
		Season: season,
		City:   fmt.Sprintf("City %d", year),
		Sport:  sport,
		Event:  sport + " Open",
		Medal:  medal,
	}
}

// medalRows gives noc the requested medals at the 2016 Games, one athlete per medal.
func medalRows(firstID int64, noc string, gold, silver, bronze int) []olympics.Entry {
	var rows []olympics.Entry
	id := firstID
	add := func(n int, medal string) {
		for range n {
			rows = append(rows, entry(id, fmt.Sprintf("%s athlete %d", noc, id), noc, 2016, "Athletics", medal))
			id++
		}
	}
	add(gold, olympics.Gold)
	add(silver, olympics.Silver)
	add(bronze, olympics.Bronze)
	return rows
}

func podium() *olympics.Dataset {
	var rows []olympics.Entry
	rows = append(rows, medalRows(100, "FRA", 1, 1, 1)...)
	rows = append(rows, medalRows(200, "USA", 5, 3, 2)...)
	rows = append(rows, medalRows(300, "GBR", 2, 2, 2)...)
	rows = append(rows, entry(400, "Non Medallist", "ITA", 2016, "Athletics", ""))
	return olympics.New(rows)
}

func TestTopCountriesAllTime(t *testing.T) {
	d := podium()

	t.Run("top three", func(t *testing.T) {
		got := d.TopCountriesAllTime(3).TopCountries
		assert.Equal(t, []olympics.CountryMedals{
			{Country: "USA", Gold: 5, Silver: 3, Bronze: 2, Total: 10},
			{Country: "GBR", Gold: 2, Silver: 2, Bronze: 2, Total: 6},
			{Country: "FRA", Gold: 1, Silver: 1, Bronze: 1, Total: 3},
		}, got)
	})

	t.Run("n bounds the result", func(t *testing.T) {
		assert.Empty(t, d.TopCountriesAllTime(0).TopCountries)
		assert.Len(t, d.TopCountriesAllTime(1).TopCountries, 1)
		assert.Len(t, d.TopCountriesAllTime(50).TopCountries, 3, "countries without medals are not listed")
	})
}

func TestCountryMedalsByYear(t *testing.T) {
	d := olympics.New([]olympics.Entry{
		entry(1, "A", "USA", 2008, "Swimming", olympics.Gold),
		entry(1, "A", "USA", 2012, "Swimming", olympics.Silver),
		entry(2, "B", "USA", 2012, "Swimming", olympics.Gold),
		entry(3, "C", "USA", 2016, "Swimming", ""),
	})

	t.Run("case insensitive", func(t *testing.T) {
		want, err := d.CountryMedalsByYear("USA", 0)
		require.NoError(t, err)
		for _, q := range []string{"usa", "Usa", " usa "} {
			got, err := d.CountryMedalsByYear(q, 0)
			require.NoError(t, err)
			assert.Equal(t, want, got, q)
		}
		assert.Equal(t, []olympics.YearMedals{
			{Year: 2008, Gold: 1},
			{Year: 2012, Gold: 1, Silver: 1},
		}, want.MedalsByYear)
	})

	t.Run("single year", func(t *testing.T) {
		got, err := d.CountryMedalsByYear("USA", 2012)
		require.NoError(t, err)
		require.Len(t, got.MedalsByYear, 1)
		assert.Equal(t, int64(2012), got.MedalsByYear[0].Year)
	})

	t.Run("unknown NOC", func(t *testing.T) {
		_, err := d.CountryMedalsByYear("xyz", 0)
		require.ErrorIs(t, err, daraerrors.ErrNotFound)
		payload, ok := daraerrors.PayloadOf(err)
		require.True(t, ok)
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		assert.JSONEq(t, `{"error":"No data found for XYZ"}`, string(body))
	})
}

func TestCountryRanking(t *testing.T) {
	d := olympics.New([]olympics.Entry{
		entry(1, "A", "AAA", 2016, "Judo", olympics.Gold),
		entry(2, "B", "BBB", 2016, "Judo", olympics.Gold),
		entry(3, "C", "BBB", 2016, "Judo", olympics.Bronze),
		entry(4, "D", "CCC", 2016, "Judo", olympics.Silver),
		entry(5, "E", "CCC", 2016, "Judo", olympics.Silver),
		entry(6, "F", "CCC", 2016, "Judo", olympics.Silver),
		seasonal(7, "G", "DDD", 2016, "Winter", "Luge", olympics.Gold),
	})

	got, err := d.CountryRanking(2016, "summer")
	require.NoError(t, err)
	assert.Equal(t, "Summer", got.Season)
	require.Len(t, got.Rankings, 3)
	assert.Equal(t, "BBB", got.Rankings[0].Country, "gold first, then total")
	assert.Equal(t, "AAA", got.Rankings[1].Country)
	assert.Equal(t, "CCC", got.Rankings[2].Country)
	assert.Equal(t, 3, got.Rankings[2].Rank)

	_, err = d.CountryRanking(1900, "Summer")
	assert.ErrorIs(t, err, daraerrors.ErrNotFound)
}

func TestSportEvolution(t *testing.T) {
	d := olympics.New([]olympics.Entry{
		entry(1, "A", "USA", 2000, "Archery", ""),
		entry(2, "B", "USA", 2000, "Boxing", ""),
		entry(3, "C", "USA", 2004, "Archery", ""),
		entry(4, "D", "USA", 2004, "Boxing", ""),
		entry(5, "E", "USA", 2008, "Archery", ""),
		entry(6, "F", "USA", 2008, "Cycling", ""),
		entry(7, "G", "USA", 2012, "Boxing", ""),
		entry(8, "H", "USA", 2012, "Cycling", ""),
		entry(9, "I", "USA", 2012, "Diving", ""),
	})

	got := d.SportEvolution().Transitions
	require.Len(t, got, 2, "the first year and unchanged years are skipped")
	assert.Equal(t, olympics.SportTransition{Year: 2008, Added: []string{"Cycling"}, Removed: []string{"Boxing"}}, got[0])
	assert.Equal(t, olympics.SportTransition{Year: 2012, Added: []string{"Boxing", "Diving"}, Removed: []string{"Archery"}}, got[1])

	for _, tr := range got {
		for _, added := range tr.Added {
			assert.NotContains(t, tr.Removed, added)
		}
	}
}

func TestMedalConversionRate(t *testing.T) {
	d := olympics.New([]olympics.Entry{
		entry(1, "A", "AAA", 2016, "Judo", olympics.Gold),
		entry(2, "B", "AAA", 2016, "Judo", ""),
		entry(3, "C", "ZZZ", 2016, "Judo", ""),
	})

	got, err := d.MedalConversionRate(2016, "Summer")
	require.NoError(t, err)
	require.Len(t, got.Rates, 2)
	assert.Equal(t, olympics.Conversion{Country: "AAA", Participants: 2, Medals: 1, ConversionRate: 50}, got.Rates[0])
	assert.Equal(t, olympics.Conversion{Country: "ZZZ", Participants: 1, Medals: 0, ConversionRate: 0}, got.Rates[1])
	for _, r := range got.Rates {
		assert.False(t, math.IsNaN(r.ConversionRate) || math.IsInf(r.ConversionRate, 0))
	}

	_, err = d.MedalConversionRate(2016, "Winter")
	require.ErrorIs(t, err, daraerrors.ErrNotFound)
	payload, ok := daraerrors.PayloadOf(err)
	require.True(t, ok)
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"No Games found","error":"No Winter Games recorded in 2016."}`, string(body))
}

func TestAthletes(t *testing.T) {
	d := olympics.New([]olympics.Entry{
		entry(1, "Veteran Rider", "GER", 1996, "Equestrian", ""),
		entry(1, "Veteran Rider", "GER", 2008, "Equestrian", olympics.Gold),
		entry(2, "Lucky Once", "KEN", 2012, "Athletics", olympics.Bronze),
		entry(3, "Always There", "USA", 2000, "Swimming", olympics.Gold),
		entry(3, "Always There", "USA", 2004, "Swimming", olympics.Gold),
		entry(3, "Always There", "USA", 2004, "Swimming", olympics.Silver),
		seasonal(4, "Two Seasons", "CAN", 2010, "Winter", "Bobsleigh", olympics.Silver),
		seasonal(4, "Two Seasons", "CAN", 2012, "Summer", "Athletics", ""),
	})

	t.Run("most decorated", func(t *testing.T) {
		got := d.MostDecoratedAthletes(1).Athletes
		require.Len(t, got, 1)
		assert.Equal(t, "Always There", got[0].Name)
		assert.Equal(t, 3, got[0].TotalMedals)
		assert.Equal(t, 2, got[0].Gold)
		assert.Equal(t, 1, got[0].Silver)
	})

	t.Run("comebacks", func(t *testing.T) {
		got := d.ComebackAthletes().Athletes
		require.Len(t, got, 1)
		assert.Equal(t, olympics.Comeback{
			ID: 1, Name: "Veteran Rider", Team: "GER", Sport: "Equestrian",
			PreviousYear: 1996, ComebackYear: 2008, GapYears: 12, Medals: 1,
		}, got[0])
	})

	t.Run("one hit wonders", func(t *testing.T) {
		got := d.OneHitWonders()
		assert.Equal(t, 1, got.Total)
		require.Len(t, got.Athletes, 1)
		assert.Equal(t, "Lucky Once", got.Athletes[0].Name)
	})

	t.Run("seasonal crossover", func(t *testing.T) {
		got := d.SeasonalCrossoverAthletes()
		assert.Equal(t, 1, got.Total)
		require.Len(t, got.Athletes, 1)
		assert.Equal(t, []string{"Athletics"}, got.Athletes[0].SummerSports)
		assert.Equal(t, []string{"Bobsleigh"}, got.Athletes[0].WinterSports)
		assert.Equal(t, 1, got.Athletes[0].TotalMedals)
	})

	t.Run("most experienced", func(t *testing.T) {
		got := d.MostExperiencedAthletes().Athletes
		require.NotEmpty(t, got)
		assert.Equal(t, int64(1), got[0].ID, "ties keep ascending athlete order")
		assert.Equal(t, 2, got[0].OlympicsCount)
		assert.Equal(t, int64(12), got[0].CareerSpan)
	})
}

func TestFirstTimeMedalWinners(t *testing.T) {
	d := olympics.New([]olympics.Entry{
		entry(1, "A", "OLD", 2008, "Judo", olympics.Gold),
		entry(2, "B", "OLD", 2012, "Judo", olympics.Gold),
		entry(3, "C", "NEW", 2012, "Judo", olympics.Bronze),
		entry(4, "D", "NEW", 2012, "Rowing", olympics.Silver),
		entry(5, "E", "NIL", 2012, "Judo", ""),
	})

	got, err := d.FirstTimeMedalWinners(2012)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Total)
	require.Len(t, got.Countries, 1)
	assert.Equal(t, olympics.FirstMedal{Country: "NEW", Medals: 2, Sports: []string{"Judo", "Rowing"}}, got.Countries[0])

	_, err = d.FirstTimeMedalWinners(1999)
	assert.ErrorIs(t, err, daraerrors.ErrNotFound)
}

func TestSearch(t *testing.T) {
	d := olympics.New([]olympics.Entry{
		entry(1, "Michael Phelps", "USA", 2008, "Swimming", olympics.Gold),
		entry(1, "Michael Phelps", "USA", 2012, "Swimming", olympics.Gold),
		entry(2, "Usain Bolt", "JAM", 2008, "Athletics", olympics.Gold),
	})

	t.Run("athlete case insensitive", func(t *testing.T) {
		upper, err := d.SearchAthlete("PHELPS")
		require.NoError(t, err)
		lower, err := d.SearchAthlete("phelps")
		require.NoError(t, err)
		assert.Equal(t, upper.Athletes, lower.Athletes)
		require.Len(t, lower.Athletes, 1)
		assert.Equal(t, []int64{2008, 2012}, lower.Athletes[0].Years)
		assert.Equal(t, 2, lower.Athletes[0].TotalMedals)
	})

	t.Run("athlete not found", func(t *testing.T) {
		_, err := d.SearchAthlete("nobody")
		payload, ok := daraerrors.PayloadOf(err)
		require.True(t, ok)
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		assert.JSONEq(t, `{"message":"No athletes found","query":"nobody"}`, string(body))
	})

	t.Run("sport", func(t *testing.T) {
		got, err := d.SearchSport("swim")
		require.NoError(t, err)
		assert.Equal(t, []string{"Swimming"}, got.MatchingSports)
		assert.Equal(t, 1, got.TotalAthletes)
	})

	t.Run("sport not found", func(t *testing.T) {
		_, err := d.SearchSport("quidditch")
		assert.ErrorIs(t, err, daraerrors.ErrNotFound)
	})
}

func TestPhysicalQueries(t *testing.T) {
	tall := entry(1, "Tall", "USA", 2008, "Basketball", "")
	tall.Age, tall.HasAge = 25, true
	tall.Height, tall.HasHeight = 200, true
	tall.Weight, tall.HasWeight = 100, true
	noHeight := entry(2, "Unmeasured", "USA", 2008, "Curling", "")
	noHeight.Height, noHeight.HasHeight = 0, true
	noHeight.Weight, noHeight.HasWeight = 80, true
	d := olympics.New([]olympics.Entry{tall, noHeight})

	t.Run("bmi skips non-positive heights", func(t *testing.T) {
		got := d.BMIBySport().Sports
		require.Len(t, got, 1)
		assert.Equal(t, "Basketball", got[0].Sport)
		assert.InDelta(t, 25.0, got[0].AvgBMI, 1e-9)
	})

	t.Run("physical evolution", func(t *testing.T) {
		got, err := d.PhysicalChangesOverTime("basketball")
		require.NoError(t, err)
		assert.Equal(t, "Basketball", got.Sport)
		require.Len(t, got.Evolution, 1)
		assert.Equal(t, int64(2000), got.Evolution[0].Decade)

		empty, err := d.PhysicalChangesOverTime("Curling")
		require.NoError(t, err)
		assert.Empty(t, empty.Evolution)

		_, err = d.PhysicalChangesOverTime("Polo")
		assert.ErrorIs(t, err, daraerrors.ErrNotFound)
	})

	t.Run("stats for unknown sport", func(t *testing.T) {
		_, err := d.PhysicalStatsBySport("Polo")
		assert.ErrorIs(t, err, daraerrors.ErrNotFound)
	})
}

func TestQueriesAreDeterministic(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()
	tbl := testutil.Olympics().Table(t, olympics.Kinds, mem.Allocator)
	defer tbl.Release()

	d, err := olympics.FromTable(tbl)
	require.NoError(t, err)

	queries := map[string]func() any{
		"top countries":   func() any { return d.TopCountriesAllTime(10) },
		"decorated":       func() any { return d.MostDecoratedAthletes(10) },
		"youngest oldest": func() any { return d.YoungestOldestMedalists() },
		"gender trend":    func() any { return d.GenderParticipationTrend() },
		"home advantage":  func() any { return d.HomeAdvantage() },
		"seasons":         func() any { return d.SeasonComparison() },
		"names":           func() any { return d.NameTrendsByDecade() },
		"families":        func() any { return d.FamilyLegacies() },
		"bmi":             func() any { return d.BMIBySport() },
		"sweet spot":      func() any { return d.AgeSweetSpotBySport() },
		"monopoly":        func() any { return d.SportMonopoly() },
		"dropout":         func() any { return d.DropoutRateBySport() },
		"boycott":         func() any { return d.BoycottImpact() },
		"underdogs":       func() any { return d.UnderdogNations() },
		"droughts":        func() any { return d.MedalDroughts() },
	}
	for name, q := range queries {
		t.Run(name, func(t *testing.T) {
			first, err := json.Marshal(q())
			require.NoError(t, err)
			second, err := json.Marshal(q())
			require.NoError(t, err)
			assert.Equal(t, string(first), string(second))
		})
	}
}

func TestSummary(t *testing.T) {
	mem := testutil.SetupMemoryTest(t)
	defer mem.Release()
	tbl := testutil.Olympics().Table(t, olympics.Kinds, mem.Allocator)
	defer tbl.Release()

	d, err := olympics.FromTable(tbl)
	require.NoError(t, err)

	assert.Equal(t, olympics.Summary{
		TotalRecords:   7,
		FirstYear:      2008,
		LastYear:       2012,
		TotalAthletes:  6,
		TotalCountries: 5,
	}, d.Summary())
}

type share struct {
	noc    string
	medals int
}

// sportMedals gives every NOC its gold medals in sport at the 2016 Games.
func sportMedals(firstID int64, sport string, shares ...share) []olympics.Entry {
	var rows []olympics.Entry
	id := firstID
	for _, s := range shares {
		for range s.medals {
			rows = append(rows, entry(id, fmt.Sprintf("%s athlete %d", s.noc, id), s.noc, 2016, sport, olympics.Gold))
			id++
		}
	}
	return rows
}

func aged(e olympics.Entry, age float64) olympics.Entry {
	e.Age, e.HasAge = age, true
	return e
}

func TestSportMonopoly(t *testing.T) {
	tests := []struct {
		name string
		rows []olympics.Entry
		want []olympics.Monopoly
	}{
		{
			name: "exactly thirty percent is a monopoly",
			rows: sportMedals(1, "Rowing", share{"AAA", 3}, share{"BBB", 2}, share{"CCC", 2}, share{"DDD", 2}, share{"EEE", 1}),
			want: []olympics.Monopoly{
				{Sport: "Rowing", DominantCountry: "AAA", Medals: 3, TotalSportMedals: 10, DominancePercentage: 30},
			},
		},
		{
			name: "twenty nine point nine percent is not",
			rows: sportMedals(1, "Rowing", share{"AAA", 299}, share{"BBB", 234}, share{"CCC", 234}, share{"DDD", 233}),
			want: []olympics.Monopoly{},
		},
		{
			name: "leader tie goes to the lower NOC",
			rows: sportMedals(1, "Judo", share{"JPN", 4}, share{"FRA", 4}, share{"KOR", 2}),
			want: []olympics.Monopoly{
				{Sport: "Judo", DominantCountry: "FRA", Medals: 4, TotalSportMedals: 10, DominancePercentage: 40},
			},
		},
		{
			name: "highest dominance first",
			rows: append(
				sportMedals(1, "Hockey", share{"IND", 4}, share{"PAK", 3}, share{"NED", 3}),
				sportMedals(100, "Curling", share{"CAN", 9}, share{"SWE", 1})...,
			),
			want: []olympics.Monopoly{
				{Sport: "Curling", DominantCountry: "CAN", Medals: 9, TotalSportMedals: 10, DominancePercentage: 90},
				{Sport: "Hockey", DominantCountry: "IND", Medals: 4, TotalSportMedals: 10, DominancePercentage: 40},
			},
		},
		{
			// 41/103 and 43/108 both round to 39.81 although 43/108 is the larger share.
			name: "equal rounded dominance keeps first appearance",
			rows: append(
				sportMedals(1, "Sailing", share{"AUS", 41}, share{"GBR", 31}, share{"NZL", 31}),
				sportMedals(1000, "Canoe", share{"GER", 43}, share{"HUN", 33}, share{"SVK", 32})...,
			),
			want: []olympics.Monopoly{
				{Sport: "Sailing", DominantCountry: "AUS", Medals: 41, TotalSportMedals: 103, DominancePercentage: 39.81},
				{Sport: "Canoe", DominantCountry: "GER", Medals: 43, TotalSportMedals: 108, DominancePercentage: 39.81},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := olympics.New(tt.rows).SportMonopoly().Sports
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnderdogNations(t *testing.T) {
	var rows []olympics.Entry
	for i := range int64(olympics.UnderdogMaxParticipants) {
		rows = append(rows, entry(1000+i, "Big", "BIG", 2016, "Athletics", olympics.Gold))
	}
	for i := range int64(olympics.UnderdogMaxParticipants - 1) {
		medal := ""
		if i == 0 {
			medal = olympics.Bronze
		}
		rows = append(rows, entry(5000+i, "Edge", "EDG", 2016, "Athletics", medal))
	}
	rows = append(rows,
		entry(1, "Small One", "SML", 2016, "Judo", olympics.Gold),
		entry(1, "Small One", "SML", 2012, "Judo", ""),
		entry(2, "Small Two", "SML", 2016, "Judo", ""),
		entry(3, "Zero", "ZER", 2016, "Judo", ""),
	)

	got := olympics.New(rows).UnderdogNations().Nations
	assert.Equal(t, []olympics.Underdog{
		{Country: "SML", TotalParticipants: 2, TotalMedals: 1, EfficiencyScore: 0.5},
		{Country: "EDG", TotalParticipants: 499, TotalMedals: 1, EfficiencyScore: 0.002},
		{Country: "ZER", TotalParticipants: 1, TotalMedals: 0, EfficiencyScore: 0},
	}, got, "a NOC with exactly %d athletes is not an underdog", olympics.UnderdogMaxParticipants)
}

func TestMedalDroughts(t *testing.T) {
	tests := []struct {
		name string
		rows []olympics.Entry
		want []olympics.Drought
	}{
		{
			name: "longest gap between consecutive medal years",
			rows: []olympics.Entry{
				entry(1, "A", "IND", 1960, "Hockey", olympics.Gold),
				entry(2, "B", "IND", 1964, "Hockey", olympics.Gold),
				entry(3, "C", "IND", 1992, "Hockey", olympics.Bronze),
				entry(4, "D", "NOR", 2000, "Rowing", olympics.Silver),
				entry(5, "E", "NOR", 2004, "Rowing", olympics.Silver),
			},
			want: []olympics.Drought{
				{Country: "IND", LastMedalYear: 1964, NextMedalYear: 1992, DroughtYears: 28, TotalMedals: 3},
				{Country: "NOR", LastMedalYear: 2000, NextMedalYear: 2004, DroughtYears: 4, TotalMedals: 2},
			},
		},
		{
			name: "single medal year is not a drought",
			rows: []olympics.Entry{
				entry(1, "A", "FIJ", 2016, "Rugby", olympics.Gold),
				entry(2, "B", "FIJ", 2016, "Rugby", olympics.Gold),
				entry(3, "C", "FIJ", 2000, "Rugby", ""),
			},
			want: []olympics.Drought{},
		},
		{
			name: "earliest of equal gaps wins",
			rows: []olympics.Entry{
				entry(1, "A", "EST", 1900, "Wrestling", olympics.Bronze),
				entry(2, "B", "EST", 1904, "Wrestling", olympics.Bronze),
				entry(3, "C", "EST", 1908, "Wrestling", olympics.Bronze),
			},
			want: []olympics.Drought{
				{Country: "EST", LastMedalYear: 1900, NextMedalYear: 1904, DroughtYears: 4, TotalMedals: 3},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, olympics.New(tt.rows).MedalDroughts().Countries)
		})
	}

	t.Run("bounded by limit", func(t *testing.T) {
		var rows []olympics.Entry
		for i := range int64(olympics.DroughtLimit + 5) {
			noc := fmt.Sprintf("N%02d", i)
			rows = append(rows,
				entry(2*i, "A", noc, 1900, "Boxing", olympics.Gold),
				entry(2*i+1, "B", noc, 1904+4*i, "Boxing", olympics.Gold),
			)
		}
		got := olympics.New(rows).MedalDroughts().Countries
		require.Len(t, got, olympics.DroughtLimit)
		assert.Equal(t, "N24", got[0].Country)
	})
}

func TestHomeAdvantage(t *testing.T) {
	visitor := seasonal(20, "Visitor", "USA", 2000, "Summer", "Swimming", olympics.Gold)
	visitor.City = "Other"

	rows := []olympics.Entry{
		entry(1, "Host", "AUS", 2000, "Swimming", olympics.Gold),
		entry(2, "Host Two", "AUS", 2000, "Swimming", olympics.Silver),
		entry(3, "Host Three", "AUS", 2000, "Rowing", olympics.Bronze),
		entry(4, "Guest", "USA", 2000, "Rowing", olympics.Gold),
		entry(5, "Guest", "USA", 2000, "Rowing", olympics.Gold),
		entry(6, "Guest", "USA", 2000, "Rowing", olympics.Gold),
		entry(7, "Guest", "USA", 2000, "Rowing", olympics.Gold),
		entry(8, "Guest", "USA", 2000, "Rowing", olympics.Silver),
		entry(9, "Guest", "USA", 2000, "Rowing", olympics.Silver),
		visitor,
		entry(30, "Greek", "GRE", 2004, "Sailing", ""),
		entry(31, "Guest", "USA", 2004, "Sailing", olympics.Gold),
		seasonal(40, "Skier", "NOR", 2002, "Winter", "Skiing", olympics.Gold),
	}

	got := olympics.New(rows).HomeAdvantage().Games
	assert.Equal(t, []olympics.HomeResult{
		{Year: 2000, Season: "Summer", City: "City 2000", HostCountry: "AUS", MedalsWon: 3, TotalMedals: 10, Percentage: 30},
		{Year: 2000, Season: "Summer", City: "Other", HostCountry: "USA", MedalsWon: 7, TotalMedals: 10, Percentage: 70},
		{Year: 2002, Season: "Winter", City: "City 2002", HostCountry: "NOR", MedalsWon: 1, TotalMedals: 1, Percentage: 100},
		{Year: 2004, Season: "Summer", City: "City 2004", HostCountry: "GRE", MedalsWon: 0, TotalMedals: 1, Percentage: 0},
	}, got)
}

func TestDropoutRateBySport(t *testing.T) {
	rows := []olympics.Entry{
		entry(1, "Twice", "USA", 2000, "Swimming", ""),
		entry(1, "Twice", "USA", 2004, "Swimming", ""),
		entry(2, "Once", "USA", 2000, "Swimming", ""),
		entry(3, "Later", "GBR", 2004, "Swimming", ""),
		entry(4, "Single", "GBR", 2000, "Rowing", ""),
		seasonal(5, "Two Events", "GBR", 2000, "Summer", "Rowing", ""),
		seasonal(5, "Two Events", "GBR", 2000, "Summer", "Rowing", olympics.Gold),
	}

	got := olympics.New(rows).DropoutRateBySport().Sports
	assert.Equal(t, []olympics.Dropout{
		{Sport: "Rowing", TotalAthletes: 2, OneTimeAthletes: 2, DropoutRate: 100},
		{Sport: "Swimming", TotalAthletes: 3, OneTimeAthletes: 2, DropoutRate: 66.67},
	}, got)
}

func TestBoycottImpact(t *testing.T) {
	rows := []olympics.Entry{
		entry(1, "A", "URS", 1980, "Gymnastics", olympics.Gold),
		entry(2, "B", "URS", 1980, "Gymnastics", olympics.Gold),
		entry(3, "C", "URS", 1980, "Gymnastics", olympics.Silver),
		entry(4, "D", "GDR", 1980, "Rowing", olympics.Gold),
		entry(5, "E", "GDR", 1980, "Rowing", olympics.Bronze),
		seasonal(6, "F", "USA", 1980, "Winter", "Hockey", olympics.Gold),
		entry(7, "G", "ITA", 1980, "Rowing", ""),
		entry(8, "H", "URS", 1976, "Rowing", olympics.Gold),
		entry(9, "I", "USA", 1984, "Athletics", olympics.Gold),
		entry(10, "J", "USA", 1984, "Athletics", olympics.Gold),
	}
	for i := range int64(10) {
		rows = append(rows, entry(100+i, "K", fmt.Sprintf("N%02d", i), 1984, "Athletics", olympics.Bronze))
	}

	got := olympics.New(rows).BoycottImpact().Years
	require.Len(t, got, 2)

	assert.Equal(t, olympics.BoycottYear{
		Year:                   1980,
		ParticipatingCountries: 4,
		TopPerformers: []olympics.Performer{
			{Country: "URS", Medals: 3},
			{Country: "GDR", Medals: 2},
			{Country: "USA", Medals: 1},
		},
	}, got[0], "both seasons count and 1976 is ignored")

	assert.Equal(t, int64(1984), got[1].Year)
	assert.Equal(t, 11, got[1].ParticipatingCountries)
	require.Len(t, got[1].TopPerformers, olympics.BoycottTopPerformers)
	assert.Equal(t, olympics.Performer{Country: "USA", Medals: 2}, got[1].TopPerformers[0])
	assert.Equal(t, olympics.Performer{Country: "N08", Medals: 1}, got[1].TopPerformers[9], "ties resolve by NOC")
}

func TestBoycottImpactWithoutBoycottYears(t *testing.T) {
	got := olympics.New([]olympics.Entry{entry(1, "A", "USA", 2016, "Athletics", olympics.Gold)}).BoycottImpact().Years
	require.Len(t, got, 2)
	for _, y := range got {
		assert.Zero(t, y.ParticipatingCountries)
		assert.Empty(t, y.TopPerformers)
	}
}

func TestAgeSweetSpotBySport(t *testing.T) {
	rows := []olympics.Entry{
		aged(entry(1, "A", "USA", 2000, "Swimming", olympics.Gold), 20),
		aged(entry(2, "B", "USA", 2000, "Swimming", olympics.Gold), 22),
		aged(entry(3, "C", "USA", 2004, "Swimming", olympics.Silver), 22),
		aged(entry(4, "D", "USA", 2004, "Swimming", olympics.Bronze), 20),
		aged(entry(5, "E", "USA", 2008, "Swimming", olympics.Bronze), 25),
		aged(entry(6, "F", "USA", 2008, "Swimming", ""), 30),
		entry(7, "G", "USA", 2008, "Swimming", olympics.Gold),
		aged(entry(8, "H", "ROU", 1976, "Gymnastics", olympics.Gold), 14),
	}

	got := olympics.New(rows).AgeSweetSpotBySport().Sports
	assert.Equal(t, []olympics.SweetSpot{
		{Sport: "Gymnastics", SweetSpotAge: 14, AvgMedalAge: 14, MedalsAnalyzed: 1},
		{Sport: "Swimming", SweetSpotAge: 20, AvgMedalAge: 21.8, MedalsAnalyzed: 5},
	}, got, "equally frequent ages resolve to the youngest")
}

func TestFamilyLegacies(t *testing.T) {
	rows := []olympics.Entry{
		entry(1, "Venus Ebony Starr Williams (-Hartley)", "USA", 2000, "Tennis", olympics.Gold),
		entry(2, "Serena Williams", "USA", 2000, "Tennis", olympics.Gold),
		entry(2, "Serena Williams", "USA", 2004, "Tennis", ""),
		entry(2, "Serena Williams", "USA", 2008, "Tennis", olympics.Gold),
		entry(3, "Richard Williams", "USA", 2008, "Tennis", ""),
		entry(4, "Other Williams", "GBR", 2008, "Tennis", olympics.Bronze),
		entry(5, "Ann Jones", "GBR", 1996, "Rowing", olympics.Silver),
		entry(6, "Bob Jones", "GBR", 2000, "Rowing", olympics.Bronze),
		entry(7, "Lone Smith", "USA", 2000, "Rowing", olympics.Gold),
		entry(8, "Sam Smith", "USA", 2000, "Rowing", ""),
	}

	got := olympics.New(rows).FamilyLegacies().Families
	assert.Equal(t, []olympics.Family{
		{
			Surname:      "Williams",
			Country:      "USA",
			Members:      3,
			MedalWinners: 2,
			TotalMedals:  3,
			Years:        []int64{2000, 2004, 2008},
			Athletes:     []string{"Venus Ebony Starr Williams (-Hartley)", "Serena Williams"},
		},
		{
			Surname:      "Jones",
			Country:      "GBR",
			Members:      2,
			MedalWinners: 2,
			TotalMedals:  2,
			Years:        []int64{1996, 2000},
			Athletes:     []string{"Ann Jones", "Bob Jones"},
		},
	}, got, "a surname shared across NOCs or with one medal winner is not a legacy")
}

func TestYoungestOldestMedalists(t *testing.T) {
	var rows []olympics.Entry
	for i := range int64(12) {
		rows = append(rows, aged(entry(i+1, fmt.Sprintf("Age %d", 15+i), "USA", 2000, "Diving", olympics.Bronze), float64(15+i)))
	}
	rows = append(rows,
		aged(entry(50, "Twin", "CHN", 2000, "Diving", olympics.Gold), 15),
		aged(entry(51, "Child", "CHN", 2000, "Diving", ""), 10),
		entry(52, "Unknown", "CHN", 2000, "Diving", olympics.Gold),
	)

	got := olympics.New(rows).YoungestOldestMedalists()
	names := func(ms []olympics.Medalist) []string {
		out := make([]string, len(ms))
		for i, m := range ms {
			out[i] = m.Name
		}
		return out
	}

	assert.Equal(t, []string{
		"Age 15", "Twin", "Age 16", "Age 17", "Age 18", "Age 19", "Age 20", "Age 21", "Age 22", "Age 23",
	}, names(got.Youngest), "equal ages keep table order")
	assert.Equal(t, []string{
		"Age 26", "Age 25", "Age 24", "Age 23", "Age 22", "Age 21", "Age 20", "Age 19", "Age 18", "Age 17",
	}, names(got.Oldest))
	assert.Equal(t, olympics.Medalist{
		Name: "Twin", Age: 15, Sport: "Diving", Event: "Diving Open", Year: 2000, Medal: olympics.Gold,
	}, got.Youngest[1])
}

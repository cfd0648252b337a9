package api

import (
	"github.com/dara-analytics/dara/internal/datasets/olympics"
	"github.com/dara-analytics/dara/internal/store"
)

func olympicsRoutes() []Route {
	return []Route{
		// medals
		{
			Group: "medals", Path: "/api/medals/top-countries",
			Description: "Get top performing countries of all time by medal count",
			Params:      []Param{topNParam(10)},
			Example:     "/api/medals/top-countries?top_n=5",
			query: func(st *store.Store, a args) (any, error) {
				return st.Olympics.TopCountriesAllTime(a.Int("top_n")), nil
			},
		},
		{
			Group: "medals", Path: "/api/medals/country/{noc}",
			Description: "Get medal count for a specific country by year, every year when year is omitted or 0",
			Params: []Param{
				pathParam("noc", TypeString, "Country NOC code (e.g., USA, IND, CHN)"),
				optionalYearParam(),
			},
			Example: "/api/medals/country/IND?year=2016",
			query: func(st *store.Store, a args) (any, error) {
				return st.Olympics.CountryMedalsByYear(a.String("noc"), a.Int64("year"))
			},
		},
		{
			Group: "medals", Path: "/api/medals/rankings",
			Description: "Get country rankings for a specific Olympics",
			Params:      []Param{requiredYearParam(), seasonParam()},
			Example:     "/api/medals/rankings?year=2016&season=Summer",
			query: func(st *store.Store, a args) (any, error) {
				return st.Olympics.CountryRanking(a.Int64("year"), a.String("season"))
			},
		},

		// athletes
		{
			Group: "athletes", Path: "/api/athletes/top-decorated",
			Description: "Get athletes with the most medals",
			Params:      []Param{topNParam(10)},
			Example:     "/api/athletes/top-decorated?top_n=5",
			query: func(st *store.Store, a args) (any, error) {
				return st.Olympics.MostDecoratedAthletes(a.Int("top_n")), nil
			},
		},
		static("athletes", "/api/athletes/youngest-oldest", "Get youngest and oldest medalists in Olympic history",
			(*olympics.Dataset).YoungestOldestMedalists),
		static("athletes", "/api/athletes/most-experienced", "Get athletes who competed at the most Games",
			(*olympics.Dataset).MostExperiencedAthletes),
		static("athletes", "/api/athletes/comebacks", "Get medalists who returned after a long absence",
			(*olympics.Dataset).ComebackAthletes),
		static("athletes", "/api/athletes/one-hit-wonders", "Get athletes with a single Games and a single medal",
			(*olympics.Dataset).OneHitWonders),
		static("athletes", "/api/athletes/age-defying", "Get medalists aged 40 or older",
			(*olympics.Dataset).AgeDefyingAthletes),
		static("athletes", "/api/athletes/crossover", "Get athletes who competed at both Summer and Winter Games",
			(*olympics.Dataset).SeasonalCrossoverAthletes),

		// sports
		{
			Group: "sports", Path: "/api/sports/physical-stats",
			Description: "Get average physical stats (height, weight, age) by sport",
			Params:      []Param{{Name: "sport", Type: TypeString, Description: "Specific sport name"}},
			Example:     "/api/sports/physical-stats?sport=Basketball",
			query: func(st *store.Store, a args) (any, error) {
				return st.Olympics.PhysicalStatsBySport(a.String("sport"))
			},
		},
		static("sports", "/api/sports/evolution", "Track how sports evolved over time (new/removed sports)",
			(*olympics.Dataset).SportEvolution),
		static("sports", "/api/sports/extinct", "Get sports no longer contested at the latest Games",
			(*olympics.Dataset).ExtinctSports),
		static("sports", "/api/sports/monopoly", "Get sports dominated by a single country",
			(*olympics.Dataset).SportMonopoly),
		{
			Group: "sports", Path: "/api/sports/dominant/{sport}",
			Description: "Get the countries with the most medals in one sport",
			Params:      []Param{pathParam("sport", TypeString, "Sport name")},
			Example:     "/api/sports/dominant/Swimming",
			query: func(st *store.Store, a args) (any, error) {
				return st.Olympics.DominantCountriesPerSport(a.String("sport"))
			},
		},
		static("sports", "/api/sports/participation", "Get distinct athlete counts per sport",
			(*olympics.Dataset).ParticipationBySport),
		static("sports", "/api/sports/dropout-rate", "Get the share of athletes who competed at only one Games per sport",
			(*olympics.Dataset).DropoutRateBySport),

		// countries
		static("countries", "/api/countries/participation-growth", "Track country participation growth across Olympics",
			(*olympics.Dataset).CountryParticipationGrowth),
		static("countries", "/api/countries/underdog", "Get small delegations with the best medals per athlete",
			(*olympics.Dataset).UnderdogNations),
		{
			Group: "countries", Path: "/api/countries/consistent",
			Description: "Get countries that win medals at most of the Games they attend",
			Params: []Param{{Name: "min_olympics", Type: TypeInteger, Default: olympics.DefaultMinOlympics,
				Description: "Minimum Games attended"}},
			Example: "/api/countries/consistent?min_olympics=15",
			query: func(st *store.Store, a args) (any, error) {
				return st.Olympics.ConsistentCountries(a.Int("min_olympics")), nil
			},
		},
		static("countries", "/api/countries/medal-droughts", "Get the longest gaps between medals per country",
			(*olympics.Dataset).MedalDroughts),
		{
			Group: "countries", Path: "/api/countries/conversion-rate",
			Description: "Get medals per participating athlete at one Games",
			Params:      []Param{requiredYearParam(), seasonParam()},
			Example:     "/api/countries/conversion-rate?year=2016&season=Summer",
			query: func(st *store.Store, a args) (any, error) {
				return st.Olympics.MedalConversionRate(a.Int64("year"), a.String("season"))
			},
		},
		static("countries", "/api/countries/small-success", "Get medal-winning countries with small delegations",
			(*olympics.Dataset).SmallCountrySuccess),

		// demographics
		static("demographics", "/api/demographics/gender-trend", "Get gender participation trends over time",
			(*olympics.Dataset).GenderParticipationTrend),
		{
			Group: "demographics", Path: "/api/demographics/gender-parity",
			Description: "Get the countries closest to gender parity",
			Params:      []Param{optionalYearParam()},
			Example:     "/api/demographics/gender-parity?year=2016",
			query: func(st *store.Store, a args) (any, error) {
				return st.Olympics.GenderParityByCountry(a.Int64("year"))
			},
		},
		static("demographics", "/api/demographics/gender-by-sport", "Get the female share of athletes per sport",
			(*olympics.Dataset).GenderParityBySport),

		// host
		static("host", "/api/host/cities", "Get list of Olympic host cities and years",
			(*olympics.Dataset).HostCities),
		static("host", "/api/host/home-advantage", "Compare host medals at home against their other Games",
			(*olympics.Dataset).HomeAdvantage),
		static("host", "/api/host/season-comparison", "Compare Summer and Winter Games",
			(*olympics.Dataset).SeasonComparison),

		// insights
		static("insights", "/api/insights/bmi-analysis", "Get average BMI per sport",
			(*olympics.Dataset).BMIBySport),
		{
			Group: "insights", Path: "/api/insights/physical-evolution/{sport}",
			Description: "Track average height and weight of a sport by decade",
			Params:      []Param{pathParam("sport", TypeString, "Sport name")},
			Example:     "/api/insights/physical-evolution/Basketball",
			query: func(st *store.Store, a args) (any, error) {
				return st.Olympics.PhysicalChangesOverTime(a.String("sport"))
			},
		},
		static("insights", "/api/insights/age-sweet-spot", "Get the most common medal-winning age per sport",
			(*olympics.Dataset).AgeSweetSpotBySport),
		{
			Group: "insights", Path: "/api/insights/gold-rush",
			Description: "Get Games where one country won an exceptional number of golds",
			Params: []Param{{Name: "threshold", Type: TypeInteger, Default: olympics.DefaultGoldRushThreshold,
				Description: "Minimum gold medals"}},
			Example: "/api/insights/gold-rush?threshold=30",
			query: func(st *store.Store, a args) (any, error) {
				return st.Olympics.GoldRushMoments(a.Int("threshold")), nil
			},
		},
		static("insights", "/api/insights/boycott-impact", "Compare top performers in the 1980 and 1984 boycott years",
			(*olympics.Dataset).BoycottImpact),

		// names
		{
			Group: "names", Path: "/api/names/common",
			Description: "Get the most common athlete first names",
			Params:      []Param{topNParam(olympics.DefaultCommonNames)},
			Example:     "/api/names/common?top_n=10",
			query: func(st *store.Store, a args) (any, error) {
				return st.Olympics.MostCommonNames(a.Int("top_n")), nil
			},
		},
		static("names", "/api/names/lucky", "Get first names with the best medal rate",
			(*olympics.Dataset).LuckyNames),
		static("names", "/api/names/family-legacies", "Get surnames shared by several medal-winning athletes of one country",
			(*olympics.Dataset).FamilyLegacies),
		static("names", "/api/names/trends", "Get the most common first names per decade",
			(*olympics.Dataset).NameTrendsByDecade),

		// achievements
		{
			Group: "achievements", Path: "/api/achievements/first-timers/{year}",
			Description: "Get countries that won their first medal in a given year",
			Params:      []Param{pathParam("year", TypeInteger, "Olympic year")},
			Example:     "/api/achievements/first-timers/2016",
			query: func(st *store.Store, a args) (any, error) {
				return st.Olympics.FirstTimeMedalWinners(a.Int64("year"))
			},
		},

		// search
		{
			Group: "search", Path: "/api/search/athlete",
			Description: "Search for athletes by name",
			Params:      []Param{requiredString("name", "Athlete name or partial name", "Name parameter required")},
			Example:     "/api/search/athlete?name=Phelps",
			query: func(st *store.Store, a args) (any, error) {
				return st.Olympics.SearchAthlete(a.String("name"))
			},
		},
		{
			Group: "search", Path: "/api/search/sport",
			Description: "Search for sports by name",
			Params:      []Param{requiredString("sport", "Sport name or partial name", "Sport parameter required")},
			Example:     "/api/search/sport?sport=swim",
			query: func(st *store.Store, a args) (any, error) {
				return st.Olympics.SearchSport(a.String("sport"))
			},
		},
	}
}

// static builds a parameterless Olympic route from a method expression.
func static[T any](group, path, description string, fn func(*olympics.Dataset) T) Route {
	return Route{
		Group: group, Path: path, Description: description, Example: path,
		query: func(st *store.Store, _ args) (any, error) {
			return fn(st.Olympics), nil
		},
	}
}

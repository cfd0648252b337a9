package api

import (
	"github.com/dara-analytics/dara/internal/shape"
	"github.com/dara-analytics/dara/internal/store"
)

func netflixRoutes() []Route {
	title := requiredString("title", "Exact title", "Title parameter required")
	return []Route{
		{
			Path: "/api/movie-title", Description: "Get movie details by title",
			Params: []Param{title}, Example: "/api/movie-title?title=Inception",
			query: func(st *store.Store, a args) (any, error) {
				return st.Netflix.MovieByTitle(a.String("title"))
			},
		},
		{
			Path: "/api/tv-title", Description: "Get TV show details by title",
			Params: []Param{title}, Example: "/api/tv-title?title=Dark",
			query: func(st *store.Store, a args) (any, error) {
				return st.Netflix.TVShowByTitle(a.String("title"))
			},
		},
		{
			Path: "/api/movie-tv-distribution", Description: "Get distribution of movies vs TV shows",
			Example: "/api/movie-tv-distribution",
			query: func(st *store.Store, _ args) (any, error) {
				return st.Netflix.TypeDistribution(), nil
			},
		},
		{
			Path: "/api/top-directors", Description: "Get top directors by number of titles",
			Example: "/api/top-directors",
			query: func(st *store.Store, _ args) (any, error) {
				return st.Netflix.TopDirectors(), nil
			},
		},
		{
			Path: "/api/country-stats", Description: "Get content distribution by country",
			Example: "/api/country-stats",
			query: func(st *store.Store, _ args) (any, error) {
				return shape.Record{}.Set("data", st.Netflix.CountryStats()), nil
			},
		},
		{
			Path: "/api/rating-distribution", Description: "Get distribution of content ratings (TV-MA, PG-13, etc.)",
			Example: "/api/rating-distribution",
			query: func(st *store.Store, _ args) (any, error) {
				return st.Netflix.RatingDistribution(), nil
			},
		},
	}
}

func happinessRoutes() []Route {
	const compareMissing = "Please provide ?country1= and ?country2= parameters."
	return []Route{
		{
			Path: "/api/top-countries", Description: "Get top countries by happiness score",
			Params: []Param{limitParam()}, Example: "/api/top-countries?limit=5",
			query: func(st *store.Store, a args) (any, error) {
				return st.Happiness.TopCountries(a.Int("limit")), nil
			},
		},
		{
			Path: "/api/factor-impact", Description: "Get correlation of factors with happiness score",
			Example: "/api/factor-impact",
			query: func(st *store.Store, _ args) (any, error) {
				return st.Happiness.FactorImpact(), nil
			},
		},
		{
			Path: "/api/country-info", Description: "Get detailed happiness info for a specific country",
			Params: []Param{requiredString("name", "Country name",
				"Please provide ?name=country_name parameter.")},
			Example: "/api/country-info?name=Denmark",
			query: func(st *store.Store, a args) (any, error) {
				return st.Happiness.CountryInfo(a.String("name"))
			},
		},
		{
			Path: "/api/compare-countries", Description: "Compare happiness scores between two countries",
			Params: []Param{
				requiredString("country1", "First country", compareMissing),
				requiredString("country2", "Second country", compareMissing),
			},
			Example: "/api/compare-countries?country1=Denmark&country2=Norway",
			query: func(st *store.Store, a args) (any, error) {
				return st.Happiness.CompareCountries(a.String("country1"), a.String("country2"))
			},
		},
		{
			Path: "/api/happiness-gap", Description: "Get the happiest and saddest country of a region",
			Params:  []Param{requiredString("region", "Region name", "Region parameter required")},
			Example: "/api/happiness-gap?region=Western+Europe",
			query: func(st *store.Store, a args) (any, error) {
				return st.Happiness.HappinessGap(a.String("region"))
			},
		},
		{
			Path: "/api/country-rank-trend", Description: "Get the rank and percentile of a country",
			Params:  []Param{requiredString("country", "Country name", "Country parameter required")},
			Example: "/api/country-rank-trend?country=Denmark",
			query: func(st *store.Store, a args) (any, error) {
				return st.Happiness.CountryRankTrend(a.String("country"))
			},
		},
		{
			Path: "/api/factor-averages", Description: "Get global averages and extremes for happiness factors",
			Example: "/api/factor-averages",
			query: func(st *store.Store, _ args) (any, error) {
				return st.Happiness.FactorAverages(), nil
			},
		},
	}
}

func energyRoutes() []Route {
	const compareMissing = "Please provide ?country1= and ?country2= parameters."
	return []Route{
		{
			Path: "/api/global-summary", Description: "Get global energy consumption summary",
			Example: "/api/global-summary",
			query: func(st *store.Store, _ args) (any, error) {
				return st.Energy.GlobalSummary(), nil
			},
		},
		{
			Path: "/api/renewable-leaders", Description: "Get countries leading in renewable energy",
			Params: []Param{limitParam()}, Example: "/api/renewable-leaders?limit=5",
			query: func(st *store.Store, a args) (any, error) {
				return st.Energy.RenewableLeaders(a.Int("limit")), nil
			},
		},
		{
			Path: "/api/cleanest-country", Description: "Get countries with lowest carbon emissions",
			Params: []Param{limitParam()}, Example: "/api/cleanest-country?limit=5",
			query: func(st *store.Store, a args) (any, error) {
				return st.Energy.CleanestCountries(a.Int("limit")), nil
			},
		},
		{
			Path: "/api/compare-price", Description: "Compare energy prices between two countries",
			Params: []Param{
				requiredString("country1", "First country", compareMissing),
				requiredString("country2", "Second country", compareMissing),
			},
			Example: "/api/compare-price?country1=Germany&country2=France",
			query: func(st *store.Store, a args) (any, error) {
				return st.Energy.PriceComparison(a.String("country1"), a.String("country2"))
			},
		},
		{
			Path: "/api/energy-mix", Description: "Get energy source and usage breakdown for a country",
			Params:  []Param{requiredString("country", "Country name", "Country parameter required")},
			Example: "/api/energy-mix?country=Germany",
			query: func(st *store.Store, a args) (any, error) {
				return st.Energy.EnergyMix(a.String("country"))
			},
		},
		{
			Path: "/api/factor-summary", Description: "Get summary stats for all energy factors",
			Example: "/api/factor-summary",
			query: func(st *store.Store, _ args) (any, error) {
				return st.Energy.FactorSummary(), nil
			},
		},
	}
}

func iplRoutes() []Route {
	return []Route{
		{
			Path: "/api/allBatsmen-record", Description: "Get all batsmen records and statistics",
			Example: "/api/allBatsmen-record",
			query: func(st *store.Store, _ args) (any, error) {
				return st.IPL.AllBatsmen(), nil
			},
		},
		{
			Path: "/api/allBowlers-record", Description: "Get all bowlers records and statistics",
			Example: "/api/allBowlers-record",
			query: func(st *store.Store, _ args) (any, error) {
				return st.IPL.AllBowlers(), nil
			},
		},
		{
			Path: "/api/team-record", Description: "Get team statistics",
			Params:  []Param{requiredString("team", "Team name", "Team parameter required")},
			Example: "/api/team-record?team=Mumbai+Indians",
			query: func(st *store.Store, a args) (any, error) {
				return st.IPL.Team(a.String("team"))
			},
		},
		{
			Path: "/api/batsman-record", Description: "Get specific batsman statistics",
			Params:  []Param{requiredString("batsman", "Batsman name", "Batsman parameter required")},
			Example: "/api/batsman-record?batsman=Virat+Kohli",
			query: func(st *store.Store, a args) (any, error) {
				return st.IPL.Batsman(a.String("batsman"))
			},
		},
		{
			Path: "/api/bowler-record", Description: "Get specific bowler statistics",
			Params:  []Param{requiredString("bowler", "Bowler name", "Bowler parameter required")},
			Example: "/api/bowler-record?bowler=Jasprit+Bumrah",
			query: func(st *store.Store, a args) (any, error) {
				return st.IPL.Bowler(a.String("bowler"))
			},
		},
	}
}

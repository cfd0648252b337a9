// Package netflix answers catalog queries over the Netflix titles table.
package netflix

import (
	"fmt"
	"strings"

	daraerrors "github.com/dara-analytics/dara/internal/errors"
	"github.com/dara-analytics/dara/internal/io"
	"github.com/dara-analytics/dara/internal/query"
	"github.com/dara-analytics/dara/internal/shape"
	"github.com/dara-analytics/dara/internal/table"
)

// Title types
const (
	Movie  = "Movie"
	TVShow = "TV Show"
)

// TopLimit bounds the director and country tables.
const TopLimit = 10

// Ratings is the set of accepted rating codes. Anything else is Unspecified.
var Ratings = []string{
	"TV-MA", "TV-14", "TV-PG", "TV-Y7", "TV-Y", "R", "PG-13",
	"PG", "G", "NC-17", "NR", "UR", io.Unspecified,
}

// Columns the source must provide.
var Columns = []string{
	"type", "title", "Main_director", "cast", "country",
	"release_year", "rating", "duration", "genres", "description",
}

// Kinds pins every column except release_year to text.
var Kinds = map[string]io.Kind{
	"type": io.KindString, "title": io.KindString, "Main_director": io.KindString,
	"cast": io.KindString, "country": io.KindString, "rating": io.KindString,
	"duration": io.KindString, "genres": io.KindString, "description": io.KindString,
	"release_year": io.KindInt,
}

// CleanOptions restricts rating to Ratings.
func CleanOptions() io.CleanOptions {
	return io.CleanOptions{Enums: map[string][]string{"rating": Ratings}}
}

// Title is one catalog entry. PrimaryCountry is the first entry of Country.
type Title struct {
	Type           string
	Title          string
	Director       string
	Cast           string
	Country        string
	PrimaryCountry string
	ReleaseYear    int64
	Rating         string
	Duration       string
	Genres         string
	Description    string
}

// Dataset is the immutable catalog.
type Dataset struct {
	titles []Title
}

// New builds a Dataset and derives each title's primary country.
func New(titles []Title) *Dataset {
	for i := range titles {
		titles[i].PrimaryCountry = primaryCountry(titles[i].Country)
	}
	return &Dataset{titles: titles}
}

func primaryCountry(country string) string {
	first, _, _ := strings.Cut(country, ",")
	first = strings.TrimSpace(first)
	if first == "" {
		return io.Unspecified
	}
	return first
}

// Len returns the number of titles
func (d *Dataset) Len() int { return len(d.titles) }

// FromTable decodes a cleaned table.
func FromTable(t *table.Table) (*Dataset, error) {
	if err := t.Require("netflix.FromTable", Columns...); err != nil {
		return nil, err
	}

	text := make(map[string][]string, len(Columns))
	for _, name := range Columns {
		if name == "release_year" {
			continue
		}
		values, _, err := t.Strings(name)
		if err != nil {
			return nil, fmt.Errorf("netflix column %s: %w", name, err)
		}
		text[name] = values
	}
	years, _, err := t.Ints("release_year")
	if err != nil {
		return nil, fmt.Errorf("netflix column release_year: %w", err)
	}

	titles := make([]Title, t.Len())
	for i := range titles {
		titles[i] = Title{
			Type:        text["type"][i],
			Title:       text["title"][i],
			Director:    text["Main_director"][i],
			Cast:        text["cast"][i],
			Country:     text["country"][i],
			ReleaseYear: years[i],
			Rating:      text["rating"][i],
			Duration:    text["duration"][i],
			Genres:      text["genres"][i],
			Description: text["description"][i],
		}
	}
	return New(titles), nil
}

// TitleData is the detail block of a title lookup.
type TitleData struct {
	Title        string `json:"title"`
	MainDirector string `json:"main_director"`
	Cast         string `json:"cast"`
	Country      string `json:"country"`
	ReleaseYear  int64  `json:"release_year"`
	Rating       string `json:"rating"`
	Duration     string `json:"duration"`
	Genres       string `json:"genres"`
	Description  string `json:"description"`
}

// TitleDetails is the response of a title lookup.
type TitleDetails struct {
	Message string    `json:"message"`
	Data    TitleData `json:"data"`
}

// MovieByTitle returns the first movie whose title equals title, ignoring case.
func (d *Dataset) MovieByTitle(title string) (TitleDetails, error) {
	return d.byTitle("MovieByTitle", Movie, "Movie", title)
}

// TVShowByTitle returns the first TV show whose title equals title, ignoring case.
func (d *Dataset) TVShowByTitle(title string) (TitleDetails, error) {
	return d.byTitle("TVShowByTitle", TVShow, "TV show", title)
}

func (d *Dataset) byTitle(op, kind, label, title string) (TitleDetails, error) {
	want := query.Normalize(title)
	for _, t := range d.titles {
		if !query.SameName(t.Type, kind) || query.Normalize(t.Title) != want {
			continue
		}
		return TitleDetails{
			Message: fmt.Sprintf("%s details for '%s'", label, t.Title),
			Data: TitleData{
				Title:        t.Title,
				MainDirector: t.Director,
				Cast:         t.Cast,
				Country:      t.Country,
				ReleaseYear:  t.ReleaseYear,
				Rating:       t.Rating,
				Duration:     t.Duration,
				Genres:       t.Genres,
				Description:  t.Description,
			},
		}, nil
	}
	return TitleDetails{}, daraerrors.NewNotFoundError(op, want,
		shape.Message(fmt.Sprintf("No %s found with title '%s'.", strings.ToLower(kind), want)))
}

// TypeShare is the count and share of one title type.
type TypeShare struct {
	Type       string  `json:"type"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TypeDistribution counts titles per type, most frequent first.
func (d *Dataset) TypeDistribution() []TypeShare {
	counts := query.ValueCounts(d.titles, func(t Title) string { return t.Type })
	return query.Map(counts, func(c query.Counted[string]) TypeShare {
		return TypeShare{Type: c.Key, Count: c.Count, Percentage: d.share(c.Count)}
	})
}

func (d *Dataset) share(n int) float64 {
	return shape.Round(shape.Percent(float64(n), float64(len(d.titles))), shape.PercentPlaces)
}

// DirectorCount is a director's number of titles.
type DirectorCount struct {
	Director   string `json:"Main_director"`
	TitleCount int    `json:"title_count"`
}

func specified(s string) bool {
	return !query.SameName(s, io.Unspecified)
}

// TopDirectors ranks directors by title count, excluding Unspecified.
func (d *Dataset) TopDirectors() []DirectorCount {
	known := query.Filter(d.titles, func(t Title) bool { return specified(t.Director) })
	counts := query.Top(query.ValueCounts(known, func(t Title) string { return t.Director }), TopLimit)
	return query.Map(counts, func(c query.Counted[string]) DirectorCount {
		return DirectorCount{Director: c.Key, TitleCount: c.Count}
	})
}

// CountryCount is a primary country's number of titles.
type CountryCount struct {
	Country    string `json:"country"`
	TitleCount int    `json:"title_count"`
}

// CountryStats ranks primary countries by title count, excluding Unspecified.
func (d *Dataset) CountryStats() []CountryCount {
	known := query.Filter(d.titles, func(t Title) bool { return specified(t.PrimaryCountry) })
	counts := query.Top(query.ValueCounts(known, func(t Title) string { return t.PrimaryCountry }), TopLimit)
	return query.Map(counts, func(c query.Counted[string]) CountryCount {
		return CountryCount{Country: c.Key, TitleCount: c.Count}
	})
}

// RatingShare is the count and share of one rating code.
type RatingShare struct {
	Rating     string  `json:"rating"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// RatingDistribution counts titles per rating, most frequent first.
func (d *Dataset) RatingDistribution() []RatingShare {
	counts := query.ValueCounts(d.titles, func(t Title) string { return t.Rating })
	return query.Map(counts, func(c query.Counted[string]) RatingShare {
		return RatingShare{Rating: c.Key, Count: c.Count, Percentage: d.share(c.Count)}
	})
}

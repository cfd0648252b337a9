// Package olympics answers analytical queries over the athlete events table
// (one row per athlete, event and Games).
package olympics

import (
	"cmp"
	"strings"

	"github.com/dara-analytics/dara/internal/io"
	"github.com/dara-analytics/dara/internal/table"
)

// Medal values
const (
	Gold   = "Gold"
	Silver = "Silver"
	Bronze = "Bronze"
)

// Columns the source must provide.
var Columns = []string{
	"ID", "Name", "Sex", "Age", "Height", "Weight", "Team", "NOC",
	"Games", "Year", "Season", "City", "Sport", "Event", "Medal",
}

// Kinds pins the text columns whose values could parse as numbers.
var Kinds = map[string]io.Kind{
	"Name": io.KindString, "Team": io.KindString, "NOC": io.KindString,
	"Games": io.KindString, "City": io.KindString, "Event": io.KindString,
	"Medal": io.KindString, "Sport": io.KindString, "Sex": io.KindString,
	"Season": io.KindString,
}

// CleanOptions keeps the physical measurements and Medal nullable: absence is meaningful there.
func CleanOptions() io.CleanOptions {
	return io.CleanOptions{Keep: []string{"Age", "Height", "Weight", "Medal"}}
}

// Entry is one athlete-event-games row. Medal is empty when no medal was won.
type Entry struct {
	ID        int64
	Name      string
	Sex       string
	Age       float64
	HasAge    bool
	Height    float64
	HasHeight bool
	Weight    float64
	HasWeight bool
	Team      string
	NOC       string
	Games     string
	Year      int64
	Season    string
	City      string
	Sport     string
	Event     string
	Medal     string
}

// Medalled reports whether the entry won a medal.
func (e Entry) Medalled() bool {
	return e.Medal != ""
}

func (e Entry) hasPhysicals() bool {
	return e.HasAge && e.HasHeight && e.HasWeight
}

// Dataset is the immutable Olympic table.
type Dataset struct {
	rows   []Entry
	medals []Entry
}

// New builds a Dataset from rows. The slice is owned by the Dataset afterwards.
func New(rows []Entry) *Dataset {
	d := &Dataset{rows: rows}
	for _, r := range rows {
		if r.Medalled() {
			d.medals = append(d.medals, r)
		}
	}
	return d
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	return len(d.rows)
}

// FromTable decodes a cleaned table.
func FromTable(t *table.Table) (*Dataset, error) {
	if err := t.Require("olympics.FromTable", Columns...); err != nil {
		return nil, err
	}

	ids, _, err := t.Ints("ID")
	if err != nil {
		return nil, err
	}
	years, _, err := t.Ints("Year")
	if err != nil {
		return nil, err
	}
	ages, ageOK, err := t.Floats("Age")
	if err != nil {
		return nil, err
	}
	heights, heightOK, err := t.Floats("Height")
	if err != nil {
		return nil, err
	}
	weights, weightOK, err := t.Floats("Weight")
	if err != nil {
		return nil, err
	}

	text := make(map[string][]string)
	for _, name := range []string{"Name", "Sex", "Team", "NOC", "Games", "Season", "City", "Sport", "Event"} {
		values, _, err := t.Strings(name)
		if err != nil {
			return nil, err
		}
		text[name] = values
	}
	medals, medalOK, err := t.Strings("Medal")
	if err != nil {
		return nil, err
	}

	rows := make([]Entry, t.Len())
	for i := range rows {
		rows[i] = Entry{
			ID:        ids[i],
			Name:      text["Name"][i],
			Sex:       text["Sex"][i],
			Age:       ages[i],
			HasAge:    ageOK[i],
			Height:    heights[i],
			HasHeight: heightOK[i],
			Weight:    weights[i],
			HasWeight: weightOK[i],
			Team:      text["Team"][i],
			NOC:       text["NOC"][i],
			Games:     text["Games"][i],
			Year:      years[i],
			Season:    text["Season"][i],
			City:      text["City"][i],
			Sport:     text["Sport"][i],
			Event:     text["Event"][i],
		}
		if medalOK[i] {
			rows[i].Medal = strings.TrimSpace(medals[i])
		}
	}
	return New(rows), nil
}

// tally counts medals by colour.
type tally struct {
	gold, silver, bronze, total int
}

func tallyOf(rows []Entry) tally {
	var t tally
	for _, r := range rows {
		switch r.Medal {
		case Gold:
			t.gold++
		case Silver:
			t.silver++
		case Bronze:
			t.bronze++
		}
		if r.Medalled() {
			t.total++
		}
	}
	return t
}

// athleteKey identifies an athlete the way the source groups them.
type athleteKey struct {
	ID   int64
	Name string
	Sex  string
	Team string
}

func compareAthlete(a, b athleteKey) int {
	return cmp.Or(
		cmp.Compare(a.ID, b.ID),
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.Sex, b.Sex),
		cmp.Compare(a.Team, b.Team),
	)
}

func keyOf(e Entry) athleteKey {
	return athleteKey{ID: e.ID, Name: e.Name, Sex: e.Sex, Team: e.Team}
}

// gamesKey identifies one Games edition in one host city.
type gamesKey struct {
	Year   int64
	Season string
	City   string
}

func compareGames(a, b gamesKey) int {
	return cmp.Or(
		cmp.Compare(a.Year, b.Year),
		cmp.Compare(a.Season, b.Season),
		cmp.Compare(a.City, b.City),
	)
}

func byID(e Entry) int64      { return e.ID }
func byNOC(e Entry) string    { return e.NOC }
func byYear(e Entry) int64    { return e.Year }
func bySport(e Entry) string  { return e.Sport }
func byGames(e Entry) string  { return e.Games }
func byEvent(e Entry) string  { return e.Event }
func bySeason(e Entry) string { return e.Season }
func ageOf(e Entry) float64   { return e.Age }
func hasAge(e Entry) bool     { return e.HasAge }
func medalled(e Entry) bool   { return e.Medalled() }

// Package ipl answers queries over the IPL career tables: one row per
// batsman, per bowler and per team.
package ipl

import (
	"fmt"

	daraerrors "github.com/dara-analytics/dara/internal/errors"
	"github.com/dara-analytics/dara/internal/io"
	"github.com/dara-analytics/dara/internal/query"
	"github.com/dara-analytics/dara/internal/shape"
	"github.com/dara-analytics/dara/internal/table"
)

// Columns each source must provide.
var (
	BatsmenColumns = []string{
		"Player", "Team", "Matches", "Innings", "NotOuts", "Runs", "Balls",
		"HighestScore", "Hundreds", "Fifties", "Fours", "Sixes",
	}
	BowlersColumns = []string{
		"Player", "Team", "Matches", "Innings", "Balls", "RunsConceded",
		"Wickets", "FourWickets", "FiveWickets",
	}
	TeamsColumns = []string{"Team", "Matches", "Wins", "Losses", "NoResult", "Titles"}
)

// Kinds pins the text columns. HighestScore stays text because of the
// not-out marker ("113*").
var Kinds = map[string]io.Kind{
	"Player": io.KindString, "Team": io.KindString, "HighestScore": io.KindString,
}

// CleanOptions uses the defaults: mean fill and Unspecified.
func CleanOptions() io.CleanOptions {
	return io.CleanOptions{}
}

// Batsman is one batting career. Average and StrikeRate are derived.
type Batsman struct {
	Name         string  `json:"name"`
	Team         string  `json:"team"`
	Matches      int64   `json:"matches"`
	Innings      int64   `json:"innings"`
	NotOuts      int64   `json:"not_outs"`
	Runs         int64   `json:"runs"`
	Balls        int64   `json:"balls"`
	HighestScore string  `json:"highest_score"`
	Centuries    int64   `json:"centuries"`
	Fifties      int64   `json:"fifties"`
	Fours        int64   `json:"fours"`
	Sixes        int64   `json:"sixes"`
	Average      float64 `json:"average"`
	StrikeRate   float64 `json:"strike_rate"`
}

// Bowler is one bowling career. Average, Economy and StrikeRate are derived.
type Bowler struct {
	Name         string  `json:"name"`
	Team         string  `json:"team"`
	Matches      int64   `json:"matches"`
	Innings      int64   `json:"innings"`
	Balls        int64   `json:"balls"`
	RunsConceded int64   `json:"runs_conceded"`
	Wickets      int64   `json:"wickets"`
	FourWickets  int64   `json:"four_wickets"`
	FiveWickets  int64   `json:"five_wickets"`
	Average      float64 `json:"average"`
	Economy      float64 `json:"economy"`
	StrikeRate   float64 `json:"strike_rate"`
}

// Team is one franchise record. WinPercentage is derived.
type Team struct {
	Team          string  `json:"team"`
	Matches       int64   `json:"matches"`
	Wins          int64   `json:"wins"`
	Losses        int64   `json:"losses"`
	NoResult      int64   `json:"no_result"`
	Titles        int64   `json:"titles"`
	WinPercentage float64 `json:"win_percentage"`
}

// Dataset holds the three IPL tables.
type Dataset struct {
	batsmen []Batsman
	bowlers []Bowler
	teams   []Team
}

// New builds a Dataset and derives the rate statistics of every row.
func New(batsmen []Batsman, bowlers []Bowler, teams []Team) *Dataset {
	for i := range batsmen {
		b := &batsmen[i]
		b.Average = shape.Round(shape.Ratio(float64(b.Runs), float64(b.Innings-b.NotOuts)), shape.PercentPlaces)
		b.StrikeRate = shape.Round(shape.Percent(float64(b.Runs), float64(b.Balls)), shape.PercentPlaces)
	}
	for i := range bowlers {
		b := &bowlers[i]
		b.Average = shape.Round(shape.Ratio(float64(b.RunsConceded), float64(b.Wickets)), shape.PercentPlaces)
		b.Economy = shape.Round(shape.Ratio(float64(b.RunsConceded), float64(b.Balls)/6), shape.PercentPlaces)
		b.StrikeRate = shape.Round(shape.Ratio(float64(b.Balls), float64(b.Wickets)), shape.PercentPlaces)
	}
	for i := range teams {
		t := &teams[i]
		t.WinPercentage = shape.Round(shape.Percent(float64(t.Wins), float64(t.Matches)), shape.PercentPlaces)
	}
	return &Dataset{batsmen: batsmen, bowlers: bowlers, teams: teams}
}

// Len returns the total number of rows across the three tables.
func (d *Dataset) Len() int { return len(d.batsmen) + len(d.bowlers) + len(d.teams) }

// columns reads a set of text and integer columns in one pass.
type columns struct {
	text map[string][]string
	ints map[string][]int64
	err  error
}

func read(t *table.Table, op string, names []string) *columns {
	c := &columns{text: map[string][]string{}, ints: map[string][]int64{}}
	if c.err = t.Require(op, names...); c.err != nil {
		return c
	}
	for _, name := range names {
		if Kinds[name] == io.KindString {
			c.text[name], _, c.err = t.Strings(name)
		} else {
			c.ints[name], _, c.err = t.Ints(name)
		}
		if c.err != nil {
			c.err = fmt.Errorf("%s column %s: %w", op, name, c.err)
			return c
		}
	}
	return c
}

// FromTables decodes the three cleaned tables.
func FromTables(batsmen, bowlers, teams *table.Table) (*Dataset, error) {
	bat := read(batsmen, "ipl.Batsmen", BatsmenColumns)
	if bat.err != nil {
		return nil, bat.err
	}
	bowl := read(bowlers, "ipl.Bowlers", BowlersColumns)
	if bowl.err != nil {
		return nil, bowl.err
	}
	team := read(teams, "ipl.Teams", TeamsColumns)
	if team.err != nil {
		return nil, team.err
	}

	bs := make([]Batsman, batsmen.Len())
	for i := range bs {
		bs[i] = Batsman{
			Name:         bat.text["Player"][i],
			Team:         bat.text["Team"][i],
			Matches:      bat.ints["Matches"][i],
			Innings:      bat.ints["Innings"][i],
			NotOuts:      bat.ints["NotOuts"][i],
			Runs:         bat.ints["Runs"][i],
			Balls:        bat.ints["Balls"][i],
			HighestScore: bat.text["HighestScore"][i],
			Centuries:    bat.ints["Hundreds"][i],
			Fifties:      bat.ints["Fifties"][i],
			Fours:        bat.ints["Fours"][i],
			Sixes:        bat.ints["Sixes"][i],
		}
	}
	bw := make([]Bowler, bowlers.Len())
	for i := range bw {
		bw[i] = Bowler{
			Name:         bowl.text["Player"][i],
			Team:         bowl.text["Team"][i],
			Matches:      bowl.ints["Matches"][i],
			Innings:      bowl.ints["Innings"][i],
			Balls:        bowl.ints["Balls"][i],
			RunsConceded: bowl.ints["RunsConceded"][i],
			Wickets:      bowl.ints["Wickets"][i],
			FourWickets:  bowl.ints["FourWickets"][i],
			FiveWickets:  bowl.ints["FiveWickets"][i],
		}
	}
	ts := make([]Team, teams.Len())
	for i := range ts {
		ts[i] = Team{
			Team:     team.text["Team"][i],
			Matches:  team.ints["Matches"][i],
			Wins:     team.ints["Wins"][i],
			Losses:   team.ints["Losses"][i],
			NoResult: team.ints["NoResult"][i],
			Titles:   team.ints["Titles"][i],
		}
	}
	return New(bs, bw, ts), nil
}

// BatsmenList holds every batsman.
type BatsmenList struct {
	Batsmen []Batsman `json:"batsmen"`
}

// AllBatsmen lists every batsman, most runs first.
func (d *Dataset) AllBatsmen() BatsmenList {
	return BatsmenList{Batsmen: query.SortStable(d.batsmen, query.Desc(func(b Batsman) int64 { return b.Runs }))}
}

// BowlersList holds every bowler.
type BowlersList struct {
	Bowlers []Bowler `json:"bowlers"`
}

// AllBowlers lists every bowler, most wickets first.
func (d *Dataset) AllBowlers() BowlersList {
	return BowlersList{Bowlers: query.SortStable(d.bowlers, query.Desc(func(b Bowler) int64 { return b.Wickets }))}
}

func notFound(op, kind, name string) error {
	return daraerrors.NewNotFoundError(op, name,
		shape.MessageError(kind+" not found", fmt.Sprintf("No record found for '%s'.", name)))
}

// Batsman returns the first batsman whose name matches, ignoring case.
func (d *Dataset) Batsman(name string) (Batsman, error) {
	for _, b := range d.batsmen {
		if query.SameName(b.Name, name) {
			return b, nil
		}
	}
	return Batsman{}, notFound("Batsman", "Batsman", name)
}

// Bowler returns the first bowler whose name matches, ignoring case.
func (d *Dataset) Bowler(name string) (Bowler, error) {
	for _, b := range d.bowlers {
		if query.SameName(b.Name, name) {
			return b, nil
		}
	}
	return Bowler{}, notFound("Bowler", "Bowler", name)
}

// Team returns the first team whose name matches, ignoring case.
func (d *Dataset) Team(name string) (Team, error) {
	for _, t := range d.teams {
		if query.SameName(t.Team, name) {
			return t, nil
		}
	}
	return Team{}, notFound("Team", "Team", name)
}

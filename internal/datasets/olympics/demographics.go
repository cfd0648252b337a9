package olympics

import (
	"fmt"
	"math"

	daraerrors "github.com/dara-analytics/dara/internal/errors"
	"github.com/dara-analytics/dara/internal/query"
	"github.com/dara-analytics/dara/internal/shape"
)

const (
	// ParityMinAthletes is the minimum number of distinct athletes a NOC needs for the parity table.
	ParityMinAthletes = 20
	ParityLimit       = 20
)

func isFemale(e Entry) bool { return e.Sex == "F" }
func isMale(e Entry) bool   { return e.Sex == "M" }

// GenderYear is the entry count by sex in one year.
type GenderYear struct {
	Year             int64   `json:"year"`
	Male             int     `json:"male"`
	Female           int     `json:"female"`
	Total            int     `json:"total"`
	FemalePercentage float64 `json:"female_percentage"`
}

// GenderTrend holds the yearly entry counts by sex.
type GenderTrend struct {
	Years []GenderYear `json:"gender_trend"`
}

// GenderParticipationTrend counts entries by sex per year. Rows with any
// other sex value are not counted.
func (d *Dataset) GenderParticipationTrend() GenderTrend {
	groups := query.GroupBy(d.rows, byYear)
	out := make([]GenderYear, len(groups))
	for i, g := range groups {
		male := query.Count(g.Rows, isMale)
		female := query.Count(g.Rows, isFemale)
		total := male + female
		out[i] = GenderYear{
			Year:             g.Key,
			Male:             male,
			Female:           female,
			Total:            total,
			FemalePercentage: shape.Round(shape.Percent(float64(female), float64(total)), shape.PercentPlaces),
		}
	}
	return GenderTrend{Years: out}
}

// Parity describes the sex balance of a group of distinct athletes.
type Parity struct {
	TotalAthletes    int     `json:"total_athletes"`
	MaleAthletes     int     `json:"male_athletes"`
	FemaleAthletes   int     `json:"female_athletes"`
	FemalePercentage float64 `json:"female_percentage"`
	ParityGap        float64 `json:"parity_gap"`
}

// parityOf returns the balance of rows with the unrounded female share and gap.
func parityOf(rows []Entry) (p Parity, share, gap float64) {
	total := query.NUnique(rows, byID)
	female := query.NUnique(query.Filter(rows, isFemale), byID)
	male := query.NUnique(query.Filter(rows, isMale), byID)
	share = shape.Percent(float64(female), float64(total))
	gap = math.Abs(share - 50)
	return Parity{
		TotalAthletes:    total,
		MaleAthletes:     male,
		FemaleAthletes:   female,
		FemalePercentage: shape.Round(share, shape.PercentPlaces),
		ParityGap:        shape.Round(gap, shape.PercentPlaces),
	}, share, gap
}

// CountryParity is a NOC's sex balance.
type CountryParity struct {
	Country string `json:"country"`
	Parity
}

// CountryParityList holds the NOCs closest to parity.
type CountryParityList struct {
	Year      int64           `json:"year,omitempty"`
	Countries []CountryParity `json:"gender_parity_by_country"`
}

// GenderParityByCountry orders NOCs with at least ParityMinAthletes distinct
// athletes by how far their female share is from 50%, closest first. A
// non-zero year restricts the table to that year.
func (d *Dataset) GenderParityByCountry(year int64) (CountryParityList, error) {
	rows := d.rows
	if year != 0 {
		rows = query.Filter(rows, func(e Entry) bool { return e.Year == year })
		if len(rows) == 0 {
			return CountryParityList{}, daraerrors.NewNotFoundError("GenderParityByCountry", fmt.Sprint(year),
				shape.MessageError("No Games found", fmt.Sprintf("No Olympic Games recorded in %d.", year)))
		}
	}

	type scored struct {
		CountryParity
		gap float64
	}
	var found []scored
	for _, g := range query.GroupBy(rows, byNOC) {
		p, _, gap := parityOf(g.Rows)
		if p.TotalAthletes < ParityMinAthletes {
			continue
		}
		found = append(found, scored{CountryParity: CountryParity{Country: g.Key, Parity: p}, gap: gap})
	}
	ranked := query.Top(query.SortStable(found, query.Asc(func(s scored) float64 { return s.gap })), ParityLimit)
	return CountryParityList{
		Year:      year,
		Countries: query.Map(ranked, func(s scored) CountryParity { return s.CountryParity }),
	}, nil
}

// SportParity is a sport's sex balance.
type SportParity struct {
	Sport string `json:"sport"`
	Parity
}

// SportParityList holds every sport's sex balance.
type SportParityList struct {
	Sports []SportParity `json:"gender_parity_by_sport"`
}

// GenderParityBySport reports the female share of distinct athletes per
// sport, highest first.
func (d *Dataset) GenderParityBySport() SportParityList {
	type scored struct {
		SportParity
		share float64
	}
	groups := query.GroupBy(d.rows, bySport)
	found := make([]scored, len(groups))
	for i, g := range groups {
		p, share, _ := parityOf(g.Rows)
		found[i] = scored{SportParity: SportParity{Sport: g.Key, Parity: p}, share: share}
	}
	ranked := query.SortStable(found, query.Desc(func(s scored) float64 { return s.share }))
	return SportParityList{Sports: query.Map(ranked, func(s scored) SportParity { return s.SportParity })}
}

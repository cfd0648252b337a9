// Package energy answers queries over the global energy consumption table
// (one row per country and year).
package energy

import (
	"fmt"

	daraerrors "github.com/dara-analytics/dara/internal/errors"
	"github.com/dara-analytics/dara/internal/io"
	"github.com/dara-analytics/dara/internal/query"
	"github.com/dara-analytics/dara/internal/shape"
	"github.com/dara-analytics/dara/internal/table"
)

// Column names
const (
	CountryColumn     = "Country"
	YearColumn        = "Year"
	ConsumptionColumn = "Total Energy Consumption (TWh)"
	PerCapitaColumn   = "Per Capita Energy Use (kWh)"
	RenewableColumn   = "Renewable Energy Share (%)"
	FossilColumn      = "Fossil Fuel Dependency (%)"
	IndustrialColumn  = "Industrial Energy Use (%)"
	HouseholdColumn   = "Household Energy Use (%)"
	EmissionsColumn   = "Carbon Emissions (Million Tons)"
	PriceColumn       = "Energy Price Index (USD/kWh)"
)

// Factors are the numeric columns, in the order FactorSummary reports them.
var Factors = []string{
	ConsumptionColumn, PerCapitaColumn, RenewableColumn, FossilColumn,
	IndustrialColumn, HouseholdColumn, EmissionsColumn, PriceColumn,
}

// Columns the source must provide.
var Columns = append([]string{CountryColumn, YearColumn}, Factors...)

// Kinds pins the text and numeric columns.
var Kinds = func() map[string]io.Kind {
	kinds := map[string]io.Kind{CountryColumn: io.KindString, YearColumn: io.KindInt}
	for _, f := range Factors {
		kinds[f] = io.KindFloat
	}
	return kinds
}()

// CleanOptions uses the defaults: mean fill and Unspecified.
func CleanOptions() io.CleanOptions {
	return io.CleanOptions{}
}

// Record is one country-year row. Values holds the factors in Factors order.
type Record struct {
	Country string
	Year    int64
	Values  []float64
}

func (r Record) get(factor int) float64 { return r.Values[factor] }

const (
	consumption = iota
	perCapita
	renewable
	fossil
	industrial
	household
	emissions
	price
)

// Dataset is the immutable energy table.
type Dataset struct {
	rows []Record
}

// New builds a Dataset from rows.
func New(rows []Record) *Dataset { return &Dataset{rows: rows} }

// Len returns the number of rows
func (d *Dataset) Len() int { return len(d.rows) }

// FromTable decodes a cleaned table.
func FromTable(t *table.Table) (*Dataset, error) {
	if err := t.Require("energy.FromTable", Columns...); err != nil {
		return nil, err
	}
	countries, _, err := t.Strings(CountryColumn)
	if err != nil {
		return nil, err
	}
	years, _, err := t.Ints(YearColumn)
	if err != nil {
		return nil, err
	}
	factors := make([][]float64, len(Factors))
	for k, name := range Factors {
		if factors[k], _, err = t.Floats(name); err != nil {
			return nil, fmt.Errorf("energy column %s: %w", name, err)
		}
	}

	rows := make([]Record, t.Len())
	for i := range rows {
		values := make([]float64, len(Factors))
		for k := range Factors {
			values[k] = shape.Finite(factors[k][i])
		}
		rows[i] = Record{Country: countries[i], Year: years[i], Values: values}
	}
	return New(rows), nil
}

func column(factor int) func(Record) float64 {
	return func(r Record) float64 { return r.get(factor) }
}

func (d *Dataset) country(name string) []Record {
	return query.Filter(d.rows, func(r Record) bool { return query.SameName(r.Country, name) })
}

// Summary holds global means and extremes.
type Summary struct {
	TotalCountries       int     `json:"total_countries"`
	HighestEnergyCountry string  `json:"highest_energy_country"`
	LowestEnergyCountry  string  `json:"lowest_energy_country"`
	AvgConsumptionTWh    float64 `json:"global_avg_energy_consumption_TWh"`
	AvgPriceUSDPerKWh    float64 `json:"global_avg_price_usd_per_kwh"`
	AvgCO2MillionTons    float64 `json:"global_avg_co2_million_tons"`
	AvgRenewablesPercent float64 `json:"global_avg_renewables_percent"`
}

// GlobalSummary wraps Summary.
type GlobalSummary struct {
	Summary Summary `json:"summary"`
}

func (d *Dataset) mean(factor int) float64 {
	return query.Mean(query.Map(d.rows, column(factor)))
}

// GlobalSummary reports distinct countries, the countries of the first
// highest and lowest consumption rows and the means of four factors.
func (d *Dataset) GlobalSummary() GlobalSummary {
	s := Summary{
		TotalCountries:       query.NUnique(d.rows, func(r Record) string { return r.Country }),
		AvgConsumptionTWh:    shape.Round(d.mean(consumption), shape.ScorePlaces),
		AvgPriceUSDPerKWh:    shape.Round(d.mean(price), shape.PricePlaces),
		AvgCO2MillionTons:    shape.Round(d.mean(emissions), shape.ScorePlaces),
		AvgRenewablesPercent: shape.Round(d.mean(renewable), shape.PercentPlaces),
	}
	if i := query.ArgMax(d.rows, column(consumption)); i >= 0 {
		s.HighestEnergyCountry = d.rows[i].Country
	}
	if i := query.ArgMin(d.rows, column(consumption)); i >= 0 {
		s.LowestEnergyCountry = d.rows[i].Country
	}
	return GlobalSummary{Summary: s}
}

// Rows wraps a list of country-year records.
type Rows struct {
	Data []shape.Record `json:"data"`
}

func (d *Dataset) ranked(factor int, limit int, asc bool) []shape.Record {
	order := query.Desc(column(factor))
	if asc {
		order = query.Asc(column(factor))
	}
	top := query.Top(query.SortStable(d.rows, order), limit)
	return query.Map(top, func(r Record) shape.Record {
		return shape.Record{
			{Key: CountryColumn, Value: r.Country},
			{Key: YearColumn, Value: r.Year},
			{Key: Factors[factor], Value: r.get(factor)},
		}
	})
}

// RenewableLeaders returns the limit country-years with the highest renewable share.
func (d *Dataset) RenewableLeaders(limit int) Rows {
	return Rows{Data: d.ranked(renewable, limit, false)}
}

// Units describes the unit of a reported measure.
type Units struct {
	Emissions string `json:"emissions"`
}

// Cleanest is the result of CleanestCountries.
type Cleanest struct {
	Units Units          `json:"units"`
	Data  []shape.Record `json:"data"`
	Note  string         `json:"note"`
}

// CleanestCountries returns the limit country-years with the lowest emissions.
func (d *Dataset) CleanestCountries(limit int) Cleanest {
	return Cleanest{
		Units: Units{Emissions: "Million Tons CO2"},
		Data:  d.ranked(emissions, limit, true),
		Note:  "Lower CO2 emissions usually indicate cleaner and more sustainable energy usage.",
	}
}

// PriceSummary names the more expensive country.
type PriceSummary struct {
	HigherPriceCountry string  `json:"higher_price_country"`
	Difference         float64 `json:"difference_usd_per_kwh"`
}

// CountryPrice is one side of a price comparison.
type CountryPrice struct {
	Country string  `json:"country"`
	Price   float64 `json:"energy_price_usd_per_kwh"`
}

// PriceComparisonResult is the result of PriceComparison.
type PriceComparisonResult struct {
	Summary PriceSummary   `json:"summary"`
	Data    []CountryPrice `json:"data"`
}

// PriceComparison compares the mean price of two countries over all their
// years, both rounded to four decimals before comparing.
func (d *Dataset) PriceComparison(a, b string) (PriceComparisonResult, error) {
	left, right := d.country(a), d.country(b)
	if len(left) == 0 || len(right) == 0 {
		return PriceComparisonResult{}, daraerrors.NewNotFoundError("PriceComparison", a+", "+b,
			shape.MessageError("Comparison failed", "One or both countries not found"))
	}

	p1 := CountryPrice{Country: left[0].Country, Price: shape.Round(query.Mean(query.Map(left, column(price))), shape.PricePlaces)}
	p2 := CountryPrice{Country: right[0].Country, Price: shape.Round(query.Mean(query.Map(right, column(price))), shape.PricePlaces)}
	diff := p1.Price - p2.Price
	if diff < 0 {
		diff = -diff
	}
	return PriceComparisonResult{
		Summary: PriceSummary{
			HigherPriceCountry: query.Winner(p1.Country, p1.Price, p2.Country, p2.Price),
			Difference:         shape.Round(diff, shape.PricePlaces),
		},
		Data: []CountryPrice{p1, p2},
	}, nil
}

// SourceBreakdown compares renewable and fossil shares.
type SourceBreakdown struct {
	Renewable float64 `json:"renewable_energy_share_percent"`
	Fossil    float64 `json:"fossil_fuel_dependency_percent"`
	Note      string  `json:"note"`
}

// UsageBreakdown reports consumption by sector.
type UsageBreakdown struct {
	Industrial float64 `json:"industrial_energy_use_percent"`
	Household  float64 `json:"household_energy_use_percent"`
	Note       string  `json:"note"`
}

// Mix is the result of EnergyMix.
type Mix struct {
	Message string          `json:"message"`
	Source  SourceBreakdown `json:"energy_source_breakdown"`
	Usage   UsageBreakdown  `json:"energy_usage_breakdown"`
}

// EnergyMix reports the source and sector shares of a country's first row.
func (d *Dataset) EnergyMix(country string) (Mix, error) {
	rows := d.country(country)
	if len(rows) == 0 {
		return Mix{}, daraerrors.NewNotFoundError("EnergyMix", country,
			shape.MessageError("Country not found", fmt.Sprintf("No data available for '%s'.", country)))
	}

	r := rows[0]
	return Mix{
		Message: "Energy source and usage breakdown for " + r.Country,
		Source: SourceBreakdown{
			Renewable: r.get(renewable),
			Fossil:    r.get(fossil),
			Note:      "Source percentages compare renewable vs fossil fuel energy.",
		},
		Usage: UsageBreakdown{
			Industrial: r.get(industrial),
			Household:  r.get(household),
			Note:       "Usage percentages represent consumption by sectors and do NOT add up to 100%.",
		},
	}, nil
}

// FactorStats summarises one factor with the countries holding its extremes.
type FactorStats struct {
	Factor     string  `json:"factor"`
	Average    float64 `json:"average"`
	Maximum    float64 `json:"maximum"`
	MaxCountry string  `json:"max_country"`
	Minimum    float64 `json:"minimum"`
	MinCountry string  `json:"min_country"`
}

// FactorSummary reports mean, maximum and minimum of every factor.
func (d *Dataset) FactorSummary() []FactorStats {
	out := make([]FactorStats, len(Factors))
	for k, name := range Factors {
		values := query.Map(d.rows, column(k))
		out[k] = FactorStats{
			Factor:  name,
			Average: shape.Round(query.Mean(values), shape.ScorePlaces),
			Maximum: shape.Round(query.Max(values), shape.ScorePlaces),
			Minimum: shape.Round(query.Min(values), shape.ScorePlaces),
		}
		if i := query.ArgMax(d.rows, column(k)); i >= 0 {
			out[k].MaxCountry = d.rows[i].Country
		}
		if i := query.ArgMin(d.rows, column(k)); i >= 0 {
			out[k].MinCountry = d.rows[i].Country
		}
	}
	return out
}

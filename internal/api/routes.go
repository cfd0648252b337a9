package api

import (
	"strings"

	"github.com/dara-analytics/dara/internal/store"
)

// Dataset identifiers used to group routes in the documentation.
const (
	DatasetOlympics  = "olympics"
	DatasetNetflix   = "netflix"
	DatasetHappiness = "happiness"
	DatasetEnergy    = "energy"
	DatasetIPL       = "ipl"
)

type queryFunc func(st *store.Store, a args) (any, error)

// Route binds a GET path to one aggregation function. The same table drives
// dispatch, parameter validation and both documentation endpoints.
type Route struct {
	Dataset     string
	Group       string
	Path        string // net/http pattern without the method
	Description string
	Params      []Param
	Example     string

	query queryFunc
}

// Pattern returns the method-qualified mux pattern.
func (rt Route) Pattern() string {
	return "GET " + rt.Path
}

// DocPath returns Path with {name} wildcards written as <name>.
func (rt Route) DocPath() string {
	return strings.NewReplacer("{", "<", "}", ">").Replace(rt.Path)
}

// Usage joins the parameter descriptions, or returns "" for routes
// without parameters.
func (rt Route) Usage() string {
	parts := make([]string, 0, len(rt.Params))
	for _, p := range rt.Params {
		if p.Path {
			continue
		}
		parts = append(parts, p.usage())
	}
	return strings.Join(parts, ", ")
}

// Routes returns every query route in documentation order.
func Routes() []Route {
	var out []Route
	for _, set := range []struct {
		dataset string
		routes  []Route
	}{
		{DatasetOlympics, olympicsRoutes()},
		{DatasetNetflix, netflixRoutes()},
		{DatasetHappiness, happinessRoutes()},
		{DatasetEnergy, energyRoutes()},
		{DatasetIPL, iplRoutes()},
	} {
		for _, rt := range set.routes {
			rt.Dataset = set.dataset
			if rt.Group == "" {
				rt.Group = set.dataset
			}
			out = append(out, rt)
		}
	}
	return out
}

// Shared parameter declarations.

func topNParam(def int) Param {
	return Param{Name: "top_n", Type: TypeInteger, Default: def, Description: "Number of results to return"}
}

func limitParam() Param {
	return Param{Name: "limit", Type: TypeInteger, Default: 10, Description: "Number of rows to return"}
}

func seasonParam() Param {
	return Param{Name: "season", Type: TypeString, Default: "Summer", Description: "Summer or Winter"}
}

func requiredYearParam() Param {
	return Param{Name: "year", Type: TypeInteger, Required: true, Description: "Olympic year",
		Missing: "Year parameter is required"}
}

func optionalYearParam() Param {
	return Param{Name: "year", Type: TypeInteger, Description: "Restrict to one Olympic year; omitted or 0 means every year"}
}

func requiredString(name, description, missing string) Param {
	return Param{Name: name, Type: TypeString, Required: true, Description: description, Missing: missing}
}

func pathParam(name, typ, description string) Param {
	return Param{Name: name, Type: typ, Path: true, Required: true, Description: description}
}

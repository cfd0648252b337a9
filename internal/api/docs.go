package api

import (
	"net/http"

	"github.com/dara-analytics/dara/internal/shape"
)

// datasetInfo describes a dataset in /api/docs/detailed.
type datasetInfo struct {
	ID          string
	Name        string
	Description string
}

var datasets = []datasetInfo{
	{DatasetOlympics, "Olympic Games Dataset", "Historical athlete results of the modern Olympic Games"},
	{DatasetNetflix, "Netflix Dataset", "Netflix content library with movies and TV shows, including ratings, genres, and directors"},
	{DatasetHappiness, "World Happiness Report Dataset", "World Happiness scores and contributing factors for countries"},
	{DatasetEnergy, "Global Energy Consumption Dataset", "Energy consumption, renewable energy share, and carbon emissions data by country"},
	{DatasetIPL, "IPL (Indian Premier League) Dataset", "Cricket statistics from the Indian Premier League"},
}

// handleDocs lists every route path by group.
func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	groups := shape.Record{}
	for _, rt := range s.routes {
		entry := shape.Record{}.Set("path", rt.DocPath())
		if usage := rt.Usage(); usage != "" {
			entry = entry.Set("params", usage)
		}
		existing, _ := groups.Get(rt.Group)
		list, _ := existing.([]shape.Record)
		groups = groups.Set(rt.Group, append(list, entry))
	}

	s.writeJSON(w, r, http.StatusOK, shape.Record{}.
		Set("api_name", "DARA - Data Analysis & Research API").
		Set("version", Version).
		Set("endpoints", groups))
}

type paramDoc struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	In          string `json:"in"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

type endpointDoc struct {
	Path        string     `json:"path"`
	Method      string     `json:"method"`
	Description string     `json:"description"`
	Parameters  []paramDoc `json:"parameters"`
	ExampleURL  string     `json:"example_url"`
}

// handleDetailedDocs describes every route with its parameters, per dataset.
func (s *Server) handleDetailedDocs(w http.ResponseWriter, r *http.Request) {
	byDataset := make(map[string][]endpointDoc, len(datasets))
	for _, rt := range s.routes {
		params := make([]paramDoc, len(rt.Params))
		for i, p := range rt.Params {
			in := "query"
			if p.Path {
				in = "path"
			}
			params[i] = paramDoc{Name: p.Name, Type: p.Type, In: in, Required: p.Required,
				Default: p.Default, Description: p.Description}
		}
		byDataset[rt.Dataset] = append(byDataset[rt.Dataset], endpointDoc{
			Path:        rt.DocPath(),
			Method:      http.MethodGet,
			Description: rt.Description,
			Parameters:  params,
			ExampleURL:  rt.Example,
		})
	}

	out := shape.Record{}
	for _, ds := range datasets {
		out = out.Set(ds.ID, shape.Record{}.
			Set("name", ds.Name).
			Set("description", ds.Description).
			Set("endpoints", byDataset[ds.ID]))
	}

	s.writeJSON(w, r, http.StatusOK, shape.Record{}.
		Set("api_version", Version).
		Set("title", "DARA - Data Analysis & Research API").
		Set("description", "Multi-dataset API providing insights on Olympics, Netflix, World Happiness, Global Energy, and IPL").
		Set("datasets", out))
}

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	daraerrors "github.com/dara-analytics/dara/internal/errors"
)

// Parameter types as they appear in the documentation.
const (
	TypeInteger = "integer"
	TypeString  = "string"
)

// Param declares one request parameter of a route. Path parameters are
// named in the route pattern; everything else is read from the query string.
type Param struct {
	Name        string
	Type        string
	Path        bool
	Required    bool
	Default     any
	Description string
	// Missing is the 400 message returned when a required parameter is absent.
	Missing string
}

// args holds the parsed parameters of one request.
type args map[string]any

func (a args) Int(name string) int {
	v, _ := a[name].(int)
	return v
}

func (a args) Int64(name string) int64 {
	return int64(a.Int(name))
}

func (a args) String(name string) string {
	v, _ := a[name].(string)
	return v
}

// parseArgs validates r against params. Absent optional parameters take
// their default; absent required ones fail before any query runs.
func parseArgs(r *http.Request, params []Param) (args, error) {
	out := make(args, len(params))
	query := r.URL.Query()

	for _, p := range params {
		var raw string
		if p.Path {
			raw = r.PathValue(p.Name)
		} else {
			raw = query.Get(p.Name)
		}
		raw = strings.TrimSpace(raw)

		if raw == "" {
			if p.Required {
				return nil, daraerrors.NewMissingParameterError(p.Name, p.missingMessage())
			}
			if p.Default != nil {
				out[p.Name] = p.Default
			}
			continue
		}

		switch p.Type {
		case TypeInteger:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, daraerrors.NewInvalidParameterError(p.Name,
					fmt.Sprintf("Parameter '%s' must be an integer", p.Name))
			}
			out[p.Name] = n
		default:
			out[p.Name] = raw
		}
	}
	return out, nil
}

func (p Param) missingMessage() string {
	if p.Missing != "" {
		return p.Missing
	}
	return fmt.Sprintf("Parameter '%s' is required", p.Name)
}

// usage renders p the way /api/docs lists it, e.g. "top_n (optional, default=10)".
func (p Param) usage() string {
	switch {
	case p.Required:
		return p.Name + " (required)"
	case p.Default != nil:
		return fmt.Sprintf("%s (optional, default=%v)", p.Name, p.Default)
	default:
		return p.Name + " (optional)"
	}
}

package monitoring

import (
	"html/template"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// Handler serves the collector over HTTP. Mount it under /metrics.
type Handler struct {
	collector *Collector
	mux       *http.ServeMux
}

// NewHandler registers the metrics endpoints for collector.
func NewHandler(collector *Collector) *Handler {
	h := &Handler{collector: collector, mux: http.NewServeMux()}

	h.mux.HandleFunc("GET /metrics", h.handleMetrics)
	h.mux.HandleFunc("GET /metrics/summary", h.handleSummary)
	h.mux.HandleFunc("GET /metrics/dashboard", h.handleDashboard)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"enabled":  h.collector.IsEnabled(),
		"requests": h.collector.Recent(),
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.collector.Summary())
}

func (h *Handler) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	data := dashboardData{
		Summary:     h.collector.Summary(),
		Recent:      h.collector.Recent(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, data); err != nil {
		http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Failed to encode metrics", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

type dashboardData struct {
	Summary     Summary
	Recent      []RequestMetrics
	GeneratedAt string
}

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>DARA Query Metrics</title>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 10px; }
        .summary { background: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0; }
        table { width: 100%; border-collapse: collapse; margin: 20px 0; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f2f2f2; }
        .failed { color: #721c24; }
    </style>
</head>
<body>
    <h1 class="header">DARA Query Metrics</h1>

    <div class="summary">
        <p><strong>Collecting:</strong> {{if .Summary.Enabled}}yes{{else}}no{{end}}</p>
        <p><strong>Total Requests:</strong> {{.Summary.TotalRequests}}</p>
        <p><strong>Total Errors:</strong> {{.Summary.TotalErrors}}</p>
        <p><strong>Generated:</strong> {{.GeneratedAt}}</p>
    </div>

    <h2>Routes</h2>
    <table>
        <thead><tr><th>Route</th><th>Requests</th><th>Errors</th><th>Average</th><th>Max</th><th>Bytes</th></tr></thead>
        <tbody>
        {{- range .Summary.Routes}}
            <tr><td>{{.Route}}</td><td>{{.Requests}}</td><td>{{.Errors}}</td><td>{{.AverageDuration}}</td><td>{{.MaxDuration}}</td><td>{{.Bytes}}</td></tr>
        {{- end}}
        </tbody>
    </table>

    <h2>Recent Requests</h2>
    <table>
        <thead><tr><th>At</th><th>Method</th><th>Route</th><th>Status</th><th>Duration</th><th>Bytes</th></tr></thead>
        <tbody>
        {{- range .Recent}}
            <tr{{if .Failed}} class="failed"{{end}}><td>{{.At.Format "15:04:05"}}</td><td>{{.Method}}</td><td>{{.Route}}</td><td>{{.Status}}</td><td>{{.Duration}}</td><td>{{.Bytes}}</td></tr>
        {{- end}}
        </tbody>
    </table>

    <script>
        setTimeout(function() { window.location.reload(); }, 30000);
    </script>
</body>
</html>
`))

//nolint:testpackage // requires internal access to unexported types and functions
package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHandler(t *testing.T) {
	c := newCollector(10)
	c.Record(RequestMetrics{Route: "/api/netflix/top-directors", Method: http.MethodGet, Status: http.StatusOK, Duration: time.Millisecond})
	h := NewHandler(c)

	t.Run("metrics", func(t *testing.T) {
		w := serve(h, "/metrics")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var body struct {
			Enabled  bool             `json:"enabled"`
			Requests []RequestMetrics `json:"requests"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Enabled)
		require.Len(t, body.Requests, 1)
		assert.Equal(t, "/api/netflix/top-directors", body.Requests[0].Route)
	})

	t.Run("summary", func(t *testing.T) {
		w := serve(h, "/metrics/summary")
		require.Equal(t, http.StatusOK, w.Code)

		var s Summary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
		assert.Equal(t, int64(1), s.TotalRequests)
		require.Len(t, s.Routes, 1)
	})

	t.Run("dashboard", func(t *testing.T) {
		w := serve(h, "/metrics/dashboard")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "DARA Query Metrics")
		assert.Contains(t, w.Body.String(), "/api/netflix/top-directors")
	})

	t.Run("method not allowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/metrics", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

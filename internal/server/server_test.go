package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/plycut/internal/config"
	"github.com/piwi3910/plycut/internal/model"
)

func newTestRouter() http.Handler {
	cfg := config.Config{
		Server: config.ServerConfig{Port: "0", CORSOrigins: []string{"*"}},
		Run:    model.DefaultRunConfig(),
	}
	return NewRouter(cfg)
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptimizeEndpoint(t *testing.T) {
	router := newTestRouter()
	w := postJSON(t, router, "/api/v1/optimize", map[string]interface{}{
		"kerf": 0,
		"pieces": []map[string]interface{}{
			{"label": "Shelf", "length": 24, "width": 36},
			{"label": "Side", "length": 30, "width": 12, "quantity": 2, "grain": "L"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Run model.PackingRun `json:"run"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Run.PlacedCount())
	assert.Empty(t, resp.Run.Unplaced)
	assert.Equal(t, 0.0, resp.Run.Config.Kerf)
}

func TestOptimizeEndpointRejectsBadInput(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/api/v1/optimize", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, "/api/v1/optimize", map[string]interface{}{
		"pieces": []map[string]interface{}{{"length": 10, "width": 5, "grain": "diagonal"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, "/api/v1/optimize", map[string]interface{}{
		"pieces": []map[string]interface{}{{"length": -3, "width": 5}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/optimize", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOptimizeCutListEndpoint(t *testing.T) {
	router := newTestRouter()
	w := postJSON(t, router, "/api/v1/optimize/cutlist", map[string]interface{}{
		"cut_list": "2@24x12 L\nbad line\n10x10\n",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Run      model.PackingRun `json:"run"`
		Warnings []string         `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Run.PlacedCount())
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "skipping")
}

func TestOptimizeCutListEndpointEmpty(t *testing.T) {
	router := newTestRouter()
	w := postJSON(t, router, "/api/v1/optimize/cutlist", map[string]interface{}{
		"cut_list": "nothing here\n",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestIDPassthrough(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

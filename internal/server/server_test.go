package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/jyotish/internal/config"
	"github.com/aristath/jyotish/internal/di"
	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/scheduler"
	testingpkg "github.com/aristath/jyotish/internal/testing"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := testingpkg.SilentLogger()
	container, err := di.Wire(&config.Config{
		Port:                 8080,
		StaticCacheSize:      8,
		DynamicCacheSize:     8,
		StaticTTL:            time.Hour,
		TransitStepDays:      5,
		TransitHorizonMonths: 12,
		BuildTimeout:         60 * time.Second,
	}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	return New(Config{
		Log:          log,
		Builder:      container.ContextBuilder,
		Port:         8080,
		DevMode:      true,
		BuildTimeout: 60 * time.Second,
	})
}

func post(t *testing.T, s *Server, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w, out
}

func s1Body(extra map[string]interface{}) map[string]interface{} {
	body := map[string]interface{}{"birth": testingpkg.S1BirthData()}
	for k, v := range extra {
		body[k] = v
	}
	return body
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"service":"jyotish"`)
}

func TestHandleContext(t *testing.T) {
	if testing.Short() {
		t.Skip("full context build sweeps a year of transits")
	}
	s := newTestServer(t)

	w, out := post(t, s, "/api/context", s1Body(map[string]interface{}{
		"as_of":  "2025-06-15T12:00:00Z",
		"intent": map[string]interface{}{"divisional_charts": []string{"D10"}, "unknown_field": true},
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.NotEmpty(t, out["build_id"])
	assert.Equal(t, "2025-06-15T12:00:00Z", out["as_of"])
	assert.Contains(t, out, "static")
	assert.Contains(t, out, "dynamic")
	assert.Empty(t, out["analysis_errors"])

	static := out["static"].(map[string]interface{})
	vargas := static["divisional_charts"].(map[string]interface{})
	assert.Len(t, vargas, 3)
	assert.Contains(t, vargas, "D10")
}

func TestHandleChart_ChartsQueryMergesIntoIntent(t *testing.T) {
	s := newTestServer(t)

	w, out := post(t, s, "/api/chart?charts=D60,%20d7", s1Body(nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	vargas := out["divisional_charts"].(map[string]interface{})
	for _, code := range []string{"D1", "D9", "D60", "D7"} {
		assert.Contains(t, vargas, code)
	}
	assert.NotContains(t, vargas, "D10")
	assert.Contains(t, out, "planets")
	assert.Contains(t, out, "yogas")
}

func TestHandleDasha(t *testing.T) {
	s := newTestServer(t)

	w, out := post(t, s, "/api/dasha", s1Body(map[string]interface{}{
		"as_of": "2025-06-15",
		"from":  "2020-01-01",
		"to":    "2030-01-01",
		"depth": 2,
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	current := out["current"].(map[string]interface{})
	assert.Contains(t, current, "vimshottari")
	timelines := out["timelines"].(map[string]interface{})
	assert.Contains(t, timelines, "yogini")
	assert.NotNil(t, out["analysis_errors"])
}

func TestHandleTransits(t *testing.T) {
	s := newTestServer(t)

	w, out := post(t, s, "/api/transits", s1Body(map[string]interface{}{
		"from": "2025-01-01",
		"to":   "2025-04-01",
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	window := out["window"].(map[string]interface{})
	assert.Equal(t, "2025-01-01T00:00:00Z", window["from"])
	assert.NotNil(t, out["activations"])
}

func TestHandlers_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   interface{}
		status int
		kind   domain.ErrorKind
	}{
		{"invalid json", "/api/context", "{not json", http.StatusBadRequest, domain.KindInputMalformed},
		{"missing birth", "/api/chart", map[string]interface{}{}, http.StatusBadRequest, domain.KindInputMalformed},
		{"bad date", "/api/chart", map[string]interface{}{
			"birth": domain.BirthData{Date: "1980-13-02", Time: "14:55", Latitude: 29.2, Longitude: 75.8},
		}, http.StatusBadRequest, domain.KindInputMalformed},
		{"bad as_of", "/api/context", s1Body(map[string]interface{}{"as_of": "yesterday"}), http.StatusBadRequest, domain.KindInputMalformed},
		{"dasha depth", "/api/dasha", s1Body(map[string]interface{}{"depth": 9}), http.StatusBadRequest, domain.KindInputMalformed},
		{"dasha window", "/api/dasha", s1Body(map[string]interface{}{"from": "2030-01-01", "to": "2020-01-01"}), http.StatusBadRequest, domain.KindInputMalformed},
		{"transit window", "/api/transits", s1Body(map[string]interface{}{"from": "2025-04-01", "to": "2025-01-01"}), http.StatusBadRequest, domain.KindInputMalformed},
		{"outside ephemeris", "/api/chart", map[string]interface{}{
			"birth": domain.BirthData{Date: "1500-01-01", Time: "12:00", Latitude: 29.2, Longitude: 75.8, Timezone: "UTC"},
		}, http.StatusUnprocessableEntity, domain.KindEphemerisRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, out := post(t, s, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, string(tt.kind), out["kind"])
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.Malformed("op", "x", "bad"), http.StatusBadRequest},
		{domain.OutOfRange("op", "x", "far"), http.StatusUnprocessableEntity},
		{domain.Invariant("op", "x", "broken"), http.StatusInternalServerError},
		{fmt.Errorf("build: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{context.Canceled, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestSystemStatus(t *testing.T) {
	s := newTestServer(t)

	// Warm the static tier so the counters move
	w, _ := post(t, s, "/api/chart", s1Body(nil))
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/system/status", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var status SystemStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	assert.Positive(t, status.Goroutines)
	assert.Equal(t, 1, status.Cache["static"].Size)
	assert.Nil(t, status.CacheDB)

	req = httptest.NewRequest(http.MethodGet, "/api/system/cache", nil)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"dynamic"`)
}

type failingJob struct{}

func (failingJob) Run() error   { return errors.New("disk full") }
func (failingJob) Name() string { return "static_cache_cleanup" }

func TestSystemStatus_ReportsJobs(t *testing.T) {
	base := newTestServer(t)
	sched := scheduler.New(testingpkg.SilentLogger())
	require.NoError(t, sched.AddJob("@hourly", failingJob{}))
	require.Error(t, sched.RunNow("static_cache_cleanup"))

	s := New(Config{Log: testingpkg.SilentLogger(), Builder: base.builder, Scheduler: sched, DevMode: true})

	req := httptest.NewRequest(http.MethodGet, "/api/system/status", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var status SystemStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "degraded", status.Status)
	require.Len(t, status.Jobs, 1)
	assert.Equal(t, "disk full", status.Jobs[0].LastError)
	assert.EqualValues(t, 1, status.Jobs[0].Failures)
}

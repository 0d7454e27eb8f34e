package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vpscale/scale"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	engine, err := scale.New(scale.DefaultConfig())
	require.NoError(t, err)
	ts := httptest.NewServer(New(engine, nil).Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func TestHandleScale(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/scale", map[string]any{
		"value":      24,
		"breakpoint": "mobile",
		"token":      "fontSize",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result scale.ScaledValue
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 24.0, result.Original)
	assert.Equal(t, 12.0, result.Scaled, "0.85 * 24 * 0.203125 clamps to fontSize min")
	assert.Equal(t, "mobile", result.Breakpoint.Name)
	assert.True(t, result.Constraints.MinApplied)
}

func TestHandleScaleByAlias(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/scale", map[string]any{
		"value":      10,
		"breakpoint": "md",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result scale.ScaledValue
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "tablet", result.Breakpoint.Name)
	assert.Equal(t, 4.0, result.Scaled)
}

func TestHandleScaleUnknownBreakpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/scale", map[string]any{
		"value":      10,
		"breakpoint": "watch",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleScaleMissingBreakpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/scale", map[string]any{"value": 10})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetricsAndCacheEndpoints(t *testing.T) {
	ts := newTestServer(t)

	for range 2 {
		resp := postJSON(t, ts.URL+"/api/v1/scale", map[string]any{
			"value":      16,
			"breakpoint": "tablet",
		})
		resp.Body.Close()
	}

	resp, err := http.Get(ts.URL + "/api/v1/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var m scale.Metrics
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Equal(t, int64(2), m.TotalOperations)
	assert.Equal(t, 0.5, m.CacheHitRate)
	assert.Greater(t, m.MemoryUsage, int64(0))

	clearResp := postJSON(t, ts.URL+"/api/v1/cache/clear", nil)
	clearResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, clearResp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/v1/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Equal(t, int64(0), m.MemoryUsage)
	assert.Equal(t, int64(2), m.TotalOperations, "counters survive cache clear")
}

func TestCacheInvalidatePattern(t *testing.T) {
	ts := newTestServer(t)

	for _, bp := range []string{"mobile", "tablet"} {
		resp := postJSON(t, ts.URL+"/api/v1/scale", map[string]any{
			"value":      16,
			"breakpoint": bp,
		})
		resp.Body.Close()
	}

	resp := postJSON(t, ts.URL+"/api/v1/cache/invalidate", map[string]any{"pattern": "mobile"})
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Tablet entry survives and is served from cache.
	scaleResp := postJSON(t, ts.URL+"/api/v1/scale", map[string]any{
		"value":      16,
		"breakpoint": "tablet",
	})
	defer scaleResp.Body.Close()
	var result scale.ScaledValue
	require.NoError(t, json.NewDecoder(scaleResp.Body).Decode(&result))
	assert.True(t, result.Performance.CacheHit)
}

func TestHandleConfig(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/config")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Base        string `json:"base"`
		Breakpoints []any  `json:"breakpoints"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "wide", body.Base)
	assert.Len(t, body.Breakpoints, 4)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

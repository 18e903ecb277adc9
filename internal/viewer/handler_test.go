package viewer

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsight/hexviz/internal/dataset"
)

func readyServer(t *testing.T) *httptest.Server {
	t.Helper()
	view := NewView(nil)
	view.SetRecords(testRecords())
	srv := httptest.NewServer(NewServer(view, testMapConfig()).Router())
	t.Cleanup(srv.Close)
	return srv
}

func emptyServer(t *testing.T) *httptest.Server {
	t.Helper()
	view := NewView(nil)
	view.SetRecords(nil)
	srv := httptest.NewServer(NewServer(view, testMapConfig()).Router())
	t.Cleanup(srv.Close)
	return srv
}

func TestHandler_Health(t *testing.T) {
	srv := readyServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_Page(t *testing.T) {
	srv := readyServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestHandler_Layer(t *testing.T) {
	srv := readyServer(t)

	resp, err := http.Get(srv.URL + "/api/layer")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	var layer Layer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&layer))
	assert.Equal(t, 2, layer.Count)
	assert.Equal(t, "PolygonLayer", layer.Config.Type)
	assert.Equal(t, dataset.ValueRange{Min: 5, Max: 15}, layer.Range)
	assert.Len(t, layer.Features.Features, 2)
}

func TestHandler_LayerCached(t *testing.T) {
	srv := readyServer(t)

	read := func() []byte {
		resp, err := http.Get(srv.URL + "/api/layer")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return body
	}

	// Two requests serve identical payloads from the same build.
	assert.Equal(t, read(), read())
}

func TestHandler_LayerEmpty(t *testing.T) {
	srv := emptyServer(t)

	resp, err := http.Get(srv.URL + "/api/layer")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "No data to display.", body["error"])
}

func TestHandler_Stats(t *testing.T) {
	srv := readyServer(t)

	resp, err := http.Get(srv.URL + "/api/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		State   State              `json:"state"`
		Records int                `json:"records"`
		Range   dataset.ValueRange `json:"range"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, StateReady, body.State)
	assert.Equal(t, 2, body.Records)
	assert.Equal(t, dataset.ValueRange{Min: 5, Max: 15}, body.Range)
}

func TestHandler_RateLimit(t *testing.T) {
	view := NewView(nil)
	view.SetRecords(testRecords())
	cfg := testMapConfig()
	cfg.RateLimitRPS = 1
	cfg.RateLimitBurst = 1
	srv := httptest.NewServer(NewServer(view, cfg).Router())
	t.Cleanup(srv.Close)

	first, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	first.Body.Close()
	assert.Equal(t, http.StatusOK, first.StatusCode)

	second, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	second.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
}

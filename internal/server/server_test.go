package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrapview/wrapview/internal/config"
)

const sampleExport = `{
	"conversations": [{
		"id": "c1",
		"title": "Debug session",
		"mapping": {
			"n1": {"message": {
				"author": {"role": "user"},
				"create_time": 1719878400,
				"content": {"parts": ["why is this panic happening"]}
			}}
		}
	}]
}`

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.DataDir = t.TempDir()
	return New(cfg, opts...)
}

func doRequest(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHandleGetVersion(t *testing.T) {
	s := newTestServer(t, WithVersion(VersionInfo{
		Version: "1.2.3", Commit: "abc", BuildDate: "2024-06-01",
	}))

	rec := doRequest(s, httptest.NewRequest("GET", "/api/v1/version", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	v := decodeBody[VersionInfo](t, rec)
	assert.Equal(t, "1.2.3", v.Version)
	assert.Equal(t, "application/json",
		rec.Header().Get("Content-Type"))
}

func TestHandleGetWrapped_NoneYet(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, httptest.NewRequest("GET", "/api/v1/wrapped", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleBuildWrapped_RawBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(
		"POST", "/api/v1/wrapped", strings.NewReader(sampleExport))
	rec := doRequest(s, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	build := decodeBody[Build](t, rec)
	assert.NotEmpty(t, build.ID)
	assert.Equal(t, "request body", build.Source)
	assert.Equal(t, 1, build.Result.Threads)
	assert.Equal(t, 2024, build.Result.Metrics.Year)

	// The build is now the cached latest.
	rec = doRequest(s, httptest.NewRequest("GET", "/api/v1/wrapped", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	cached := decodeBody[Build](t, rec)
	assert.Equal(t, build.ID, cached.ID)
}

func TestHandleBuildWrapped_Multipart(t *testing.T) {
	s := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "conversations.json")
	require.NoError(t, err)
	_, err = part.Write([]byte(sampleExport))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/v1/wrapped", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := doRequest(s, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	build := decodeBody[Build](t, rec)
	assert.Equal(t, "conversations.json", build.Source)
	assert.Equal(t, 1, build.Result.Metrics.TotalPrompts)
}

func TestHandleBuildWrapped_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"zip archive", "PK\x03\x04rest-of-zip", "ZIP archive"},
		{"html page", "<!DOCTYPE html><html></html>", "HTML page"},
		{"invalid json", "{not json", "not valid JSON"},
		{"empty body", "", "empty upload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			req := httptest.NewRequest(
				"POST", "/api/v1/wrapped", strings.NewReader(tt.body))
			rec := doRequest(s, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMsg)
		})
	}
}

func TestHandleBuildWrapped_YearOverride(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(
		"POST", "/api/v1/wrapped?year=2023", strings.NewReader(sampleExport))
	rec := doRequest(s, req)
	require.Equal(t, http.StatusOK, rec.Code)

	build := decodeBody[Build](t, rec)
	assert.Equal(t, 2023, build.Result.Metrics.Year)
	assert.Zero(t, build.Result.Metrics.TotalPrompts)
}

func TestHandleBuildWrapped_BadYear(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(
		"POST", "/api/v1/wrapped?year=summer", strings.NewReader(sampleExport))
	rec := doRequest(s, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetStory_Fallback(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, httptest.NewRequest("GET", "/api/v1/story", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "preview-text")
}

func TestHandleGetStory_AfterBuild(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(
		"POST", "/api/v1/wrapped", strings.NewReader(sampleExport))
	require.Equal(t, http.StatusOK, doRequest(s, req).Code)

	rec := doRequest(s, httptest.NewRequest("GET", "/api/v1/story", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var cfg struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, "2024-06-01", cfg.StartDate)
	assert.Equal(t, "2024-08-31", cfg.EndDate)
}

func TestTimeoutReturnsJSON(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.WriteTimeout = 10 * time.Millisecond

	s := &Server{
		cfg:          cfg,
		mux:          http.NewServeMux(),
		handlerDelay: 100 * time.Millisecond,
	}
	s.routes()

	rec := doRequest(s, httptest.NewRequest("GET", "/api/v1/version", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/json",
		rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "request timed out")
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, httptest.NewRequest("OPTIONS", "/api/v1/wrapped", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

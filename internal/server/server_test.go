package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geolab/footing/internal/report"
	"github.com/geolab/footing/internal/sizing"
	"github.com/geolab/footing/pkg/version"
)

func newTestServer(opts Options) *Server {
	opts.Now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return New(opts)
}

func post(t *testing.T, h http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleDesign(t *testing.T) {
	t.Parallel()

	h := newTestServer(Options{}).Handler()
	rec := post(t, h, "/api/footing/design",
		`{"axial_load_kn":300,"moment_x_knm":20,"moment_y_knm":10,"allowable_pressure_kn_m2":150}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res sizing.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	want, err := sizing.Design(sizing.Input{AxialLoad: 300, MomentX: 20, MomentY: 10, AllowablePressure: 150})
	require.NoError(t, err)
	assert.Equal(t, want.Iterations, res.Iterations)
	assert.Equal(t, sizing.StatusOK, res.Status)
	assert.InDelta(t, want.Bx, res.Bx, 1e-12)
	assert.Empty(t, res.Trace)
}

func TestHandleDesign_TuningAndTrace(t *testing.T) {
	t.Parallel()

	h := newTestServer(Options{}).Handler()
	rec := post(t, h, "/api/footing/design",
		`{"axial_load_kn":100,"moment_x_knm":500,"allowable_pressure_kn_m2":100,"max_iterations":5,"trace":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res sizing.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, sizing.StatusNotOK, res.Status)
	assert.Equal(t, 5, res.Iterations)
	assert.Len(t, res.Trace, 5)
	assert.False(t, res.KernX)
}

func TestHandleDesign_Errors(t *testing.T) {
	t.Parallel()

	h := newTestServer(Options{}).Handler()
	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed json", `{"axial_load_kn":`, http.StatusBadRequest},
		{"unknown field", `{"load":300}`, http.StatusBadRequest},
		{"zero load", `{"axial_load_kn":0,"allowable_pressure_kn_m2":150}`, http.StatusUnprocessableEntity},
		{"negative load", `{"axial_load_kn":-5,"allowable_pressure_kn_m2":150}`, http.StatusUnprocessableEntity},
		{"bad scale step", `{"axial_load_kn":300,"allowable_pressure_kn_m2":150,"scale_step":0.5}`, http.StatusUnprocessableEntity},
		{"zero allowable pressure", `{"axial_load_kn":300,"allowable_pressure_kn_m2":0}`, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, "/api/footing/design", tt.body)
			assert.Equal(t, tt.code, rec.Code)

			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}

	rec := post(t, h, "/api/footing/design", `{"axial_load_kn":0,"allowable_pressure_kn_m2":150}`)
	assert.Contains(t, rec.Body.String(), sizing.ErrInvalidLoad.Error())
}

func TestHandleDesign_IterationCap(t *testing.T) {
	t.Parallel()

	srv := newTestServer(Options{MaxIterations: 50})
	h := srv.Handler()

	// A negative q_allow never converges, so the request runs to its cap.
	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- post(t, h, "/api/footing/design",
			`{"axial_load_kn":100,"allowable_pressure_kn_m2":-1,"max_iterations":2000000000,"trace":true}`)
	}()
	select {
	case rec := <-done:
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "max_iterations must not exceed 50")
	case <-time.After(2 * time.Second):
		t.Fatal("request with an oversized max_iterations was not rejected")
	}

	rec := post(t, h, "/api/footing/design",
		`{"axial_load_kn":100,"moment_x_knm":500,"allowable_pressure_kn_m2":100,"max_iterations":50,"trace":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var res sizing.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 50, res.Iterations)
	assert.Len(t, res.Trace, 50)

	srv.SetEngine(10, 0)
	maxIter, step := srv.Engine()
	assert.Equal(t, 10, maxIter)
	assert.Equal(t, sizing.DefaultScaleStep, step)

	rec = post(t, h, "/api/footing/design",
		`{"axial_load_kn":100,"allowable_pressure_kn_m2":100,"max_iterations":50}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = post(t, h, "/api/footing/design", `{"axial_load_kn":100,"moment_x_knm":500,"allowable_pressure_kn_m2":100}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 10, res.Iterations)
}

func TestHandleDesign_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := newTestServer(Options{}).Handler()
	req := httptest.NewRequest(http.MethodGet, "/api/footing/design", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleReport(t *testing.T) {
	t.Parallel()

	h := newTestServer(Options{}).Handler()
	body := `{"axial_load_kn":300,"moment_x_knm":20,"moment_y_knm":10,"allowable_pressure_kn_m2":150,"project":"Depot"}`

	md := post(t, h, "/api/footing/report", body)
	require.Equal(t, http.StatusOK, md.Code)
	assert.Equal(t, report.MarkdownFormat.ContentType(), md.Header().Get("Content-Type"))
	assert.Contains(t, md.Body.String(), "# Basic isolated footing design")
	assert.Contains(t, md.Body.String(), "Project: Depot")
	assert.Contains(t, md.Body.String(), "2026-01-02")

	es := post(t, h, "/api/footing/report?format=text&lang=es", body)
	require.Equal(t, http.StatusOK, es.Code)
	assert.Contains(t, es.Body.String(), "Carga axial P")

	pdf := post(t, h, "/api/footing/report?format=pdf", body)
	require.Equal(t, http.StatusOK, pdf.Code)
	assert.Equal(t, "application/pdf", pdf.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(pdf.Body.Bytes(), []byte("%PDF-")))

	bad := post(t, h, "/api/footing/report?format=docx", body)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	h := newTestServer(Options{}).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, version.GetVersion(), body["version"])
	assert.Equal(t, "2026-01-02T03:04:05Z", body["time"])
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	h := newTestServer(Options{RatePerSecond: 0.001, Burst: 2}).Handler()
	body := `{"axial_load_kn":300,"allowable_pressure_kn_m2":150}`

	assert.Equal(t, http.StatusOK, post(t, h, "/api/footing/design", body).Code)
	assert.Equal(t, http.StatusOK, post(t, h, "/api/footing/design", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, post(t, h, "/api/footing/design", body).Code)

	// Health checks are not rate limited.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClientKey(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.7:5555"
	assert.Equal(t, "10.0.0.7", clientKey(r))
	r.RemoteAddr = "pipe"
	assert.Equal(t, "pipe", clientKey(r))
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := newTestServer(Options{ShutdownTimeout: time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}

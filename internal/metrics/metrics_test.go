package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsAreNoop(t *testing.T) {
	var m *Metrics
	m.Login("ok")
	m.VatsimRequest("token", time.Second)
	m.RateLimited()
	h := m.Middleware(http.NotFoundHandler())
	assert.NotNil(t, h)
}

func TestCountersAndHandler(t *testing.T) {
	m := New()
	m.Login("ok")
	m.Login("ok")
	m.Login("role_missing")
	m.VatsimRequest("token", 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.loginTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loginTotal.WithLabelValues("role_missing")))

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/roster/home", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	r.Handle("/metrics", m.Handler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/roster/home", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/roster/home", "418")))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `menahq_login_total{code="ok"} 2`))
	assert.Contains(t, body, "menahq_vatsim_request_duration_seconds")
}

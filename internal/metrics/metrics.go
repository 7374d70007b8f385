// Package metrics agrupa los collectors Prometheus del servicio.
// Todos los métodos aceptan receptor nil (no-op) para que los tests
// puedan construir servicios sin registry.
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "menahq"

type Metrics struct {
	Registry *prometheus.Registry

	loginTotal     *prometheus.CounterVec
	vatsimDuration *prometheus.HistogramVec
	rateLimited    prometheus.Counter

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInflight        prometheus.Gauge
}

// New crea un registry propio con los collectors del proceso y del runtime de Go.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		loginTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_total",
			Help:      "Logins por resultado (ok o código de error)",
		}, []string{"code"}),
		vatsimDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "vatsim_request_duration_seconds",
			Help:      "Latencia de las llamadas a VATSIM Connect",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"step"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rechazadas por rate limit",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Número total de requests procesadas",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latencia de los requests HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Requests en vuelo",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.loginTotal, m.vatsimDuration, m.rateLimited,
		m.httpRequestsTotal, m.httpRequestDuration, m.httpInflight,
	)
	return m
}

// Handler expone /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// RegisterDB agrega las estadísticas de database/sql del pool.
func (m *Metrics) RegisterDB(db *sql.DB) {
	if m == nil || db == nil {
		return
	}
	_ = m.Registry.Register(collectors.NewDBStatsCollector(db, namespace))
}

func (m *Metrics) Login(code string) {
	if m == nil {
		return
	}
	m.loginTotal.WithLabelValues(code).Inc()
}

func (m *Metrics) VatsimRequest(step string, d time.Duration) {
	if m == nil {
		return
	}
	m.vatsimDuration.WithLabelValues(step).Observe(d.Seconds())
}

func (m *Metrics) RateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}

// Middleware instrumenta requests HTTP. La etiqueta de ruta es el patrón de chi,
// así los valores quedan acotados.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := strings.ToUpper(r.Method)
		m.httpInflight.Inc()
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		defer func() {
			m.httpInflight.Dec()
			route := routeLabel(r)
			m.httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		}()
		next.ServeHTTP(rec, r)
	})
}

func routeLabel(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

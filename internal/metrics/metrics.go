package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the mission order counters. A nil *Metrics records nothing.
type Metrics struct {
	AssignmentsIssued   *prometheus.CounterVec
	Verifications       *prometheus.CounterVec
	VerifyLatency       prometheus.Histogram
	CacheLookups        *prometheus.CounterVec
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New creates the metrics and registers them in reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AssignmentsIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mission_orders_assignments_issued_total",
			Help: "Mission orders issued by initial status",
		}, []string{"status"}),
		Verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mission_orders_verifications_total",
			Help: "Verification attempts by result",
		}, []string{"result"}),
		VerifyLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mission_orders_verify_duration_seconds",
			Help:    "Duration of a verification including the log append",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mission_orders_payload_cache_lookups_total",
			Help: "Payload cache lookups by outcome",
		}, []string{"outcome"}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
	reg.MustRegister(m.AssignmentsIssued, m.Verifications, m.VerifyLatency, m.CacheLookups, m.httpRequestsTotal, m.httpRequestDuration)
	return m
}

// Handler returns the prometheus scrape handler for the given gatherer
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// IncIssued counts an issued mission order
func (m *Metrics) IncIssued(status string) {
	if m != nil {
		m.AssignmentsIssued.WithLabelValues(status).Inc()
	}
}

// IncVerification counts a verification attempt
func (m *Metrics) IncVerification(result string) {
	if m != nil {
		m.Verifications.WithLabelValues(result).Inc()
	}
}

// ObserveVerify records the duration of a verification
func (m *Metrics) ObserveVerify(d time.Duration) {
	if m != nil {
		m.VerifyLatency.Observe(d.Seconds())
	}
}

// IncCacheLookup counts a payload cache lookup, outcome is hit or miss
func (m *Metrics) IncCacheLookup(outcome string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(outcome).Inc()
	}
}

// Instrument is an http middleware measuring requests by route pattern
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		labels := []string{r.Method, path, strconv.Itoa(status)}
		m.httpRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		m.httpRequestsTotal.WithLabelValues(labels...).Inc()
	})
}

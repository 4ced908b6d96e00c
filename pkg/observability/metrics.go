package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements SolveHooks, CacheHooks and HTTPHooks on Prometheus
// collectors.
type Metrics struct {
	gatherer prometheus.Gatherer

	solves        *prometheus.CounterVec
	solveDuration prometheus.Histogram
	solvePoints   prometheus.Histogram
	fvsSize       prometheus.Histogram
	renders       *prometheus.CounterVec
	cacheOps      *prometheus.CounterVec
	cacheBytes    *prometheus.CounterVec
	requests      *prometheus.CounterVec
	reqDuration   *prometheus.HistogramVec
	inFlight      prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		solves: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cyclecut_solves_total",
			Help: "Completed solves by result",
		}, []string{"result"}),
		solveDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "cyclecut_solve_duration_seconds",
			Help:    "Solve duration",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		solvePoints: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "cyclecut_solve_points",
			Help:    "Points per solved instance",
			Buckets: prometheus.ExponentialBuckets(10, 4, 7),
		}),
		fvsSize: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "cyclecut_fvs_size",
			Help:    "Feedback vertex set size per solve",
			Buckets: prometheus.ExponentialBuckets(1, 4, 7),
		}),
		renders: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cyclecut_renders_total",
			Help: "Completed renders by result",
		}, []string{"result"}),
		cacheOps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cyclecut_cache_operations_total",
			Help: "Cache operations by key type and outcome",
		}, []string{"key_type", "op"}),
		cacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cyclecut_cache_written_bytes_total",
			Help: "Bytes written to the cache by key type",
		}, []string{"key_type"}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cyclecut_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		reqDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cyclecut_http_request_duration_seconds",
			Help:    "HTTP request duration by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "cyclecut_http_requests_in_flight",
			Help: "HTTP requests being served",
		}),
	}
}

// Handler serves the registered metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnSolveStart(_ context.Context, points int, _ float64) {
	m.solvePoints.Observe(float64(points))
}

func (m *Metrics) OnSolveComplete(_ context.Context, _, size int, d time.Duration, err error) {
	m.solves.WithLabelValues(result(err)).Inc()
	m.solveDuration.Observe(d.Seconds())
	if err == nil {
		m.fvsSize.Observe(float64(size))
	}
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, err error) {
	m.renders.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheOps.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *Metrics) OnRequest(context.Context, string, string) {
	m.inFlight.Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.inFlight.Dec()
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.reqDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ SolveHooks = (*Metrics)(nil)
	_ CacheHooks = (*Metrics)(nil)
	_ HTTPHooks  = (*Metrics)(nil)
)

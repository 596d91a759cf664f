package server

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/matzehuels/stackforge/pkg/observability"
)

// Metrics exports composition, lookup, cache and registry HTTP events as
// Prometheus metrics. It implements every observability hook interface.
type Metrics struct {
	registry *prometheus.Registry

	composeTotal    *prometheus.CounterVec
	composeDuration *prometheus.HistogramVec
	lookupTotal     *prometheus.CounterVec
	lookupDuration  *prometheus.HistogramVec
	cacheEvents     *prometheus.CounterVec
	registryTotal   *prometheus.CounterVec
	registryLatency *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
}

var (
	_ observability.ComposeHooks = (*Metrics)(nil)
	_ observability.LookupHooks  = (*Metrics)(nil)
	_ observability.CacheHooks   = (*Metrics)(nil)
	_ observability.HTTPHooks    = (*Metrics)(nil)
)

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		composeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stackforge_compose_total",
			Help: "Number of compositions by build system and outcome.",
		}, []string{"build_system", "outcome"}),
		composeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stackforge_compose_duration_seconds",
			Help:    "Time taken to compose a descriptor.",
			Buckets: prometheus.DefBuckets,
		}, []string{"build_system"}),
		lookupTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stackforge_lookup_total",
			Help: "Number of latest-version lookups by kind and outcome.",
		}, []string{"kind", "outcome"}),
		lookupDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stackforge_lookup_duration_seconds",
			Help:    "Time taken by latest-version lookups, cache included.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stackforge_cache_events_total",
			Help: "Cache hits, misses and writes by registry namespace.",
		}, []string{"namespace", "event"}),
		registryTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stackforge_registry_requests_total",
			Help: "Registry HTTP requests by host and status.",
		}, []string{"host", "status"}),
		registryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stackforge_registry_request_duration_seconds",
			Help:    "Registry HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"host"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stackforge_http_requests_total",
			Help: "API requests by route and status.",
		}, []string{"route", "status"}),
	}
	m.registry.MustRegister(
		m.composeTotal, m.composeDuration,
		m.lookupTotal, m.lookupDuration,
		m.cacheEvents,
		m.registryTotal, m.registryLatency,
		m.httpRequests,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Install registers m as the global observability hooks.
func (m *Metrics) Install() {
	observability.SetComposeHooks(m)
	observability.SetLookupHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnComposeStart(context.Context, string, int) {}

func (m *Metrics) OnComposeComplete(_ context.Context, buildSystem string, d time.Duration, err error) {
	m.composeTotal.WithLabelValues(buildSystem, outcome(err)).Inc()
	m.composeDuration.WithLabelValues(buildSystem).Observe(d.Seconds())
}

func (m *Metrics) OnLookup(_ context.Context, kind, _ string, d time.Duration, err error) {
	m.lookupTotal.WithLabelValues(kind, outcome(err)).Inc()
	m.lookupDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (m *Metrics) OnCacheHit(_ context.Context, ns string) {
	m.cacheEvents.WithLabelValues(ns, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, ns string) {
	m.cacheEvents.WithLabelValues(ns, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, ns string, _ int) {
	m.cacheEvents.WithLabelValues(ns, "set").Inc()
}

func (m *Metrics) OnRequest(context.Context, string, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, _, host, _ string, status int, d time.Duration) {
	m.registryTotal.WithLabelValues(host, statusClass(status)).Inc()
	m.registryLatency.WithLabelValues(host).Observe(d.Seconds())
}

func (m *Metrics) OnError(_ context.Context, _, host, _ string, _ error) {
	m.registryTotal.WithLabelValues(host, "error").Inc()
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

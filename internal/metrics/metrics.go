// Package metrics exposes registry activity as Prometheus metrics. Collector
// implements registry.Observer and owns a private prometheus.Registry so that
// several environments (e.g. in tests) never collide on registration.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vk/modreg/internal/registry"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "modreg"

// Collector records define, load and resolution events.
type Collector struct {
	registry *prometheus.Registry

	defines      *prometheus.CounterVec
	loads        *prometheus.CounterVec
	loadDuration *prometheus.HistogramVec
	unresolved   *prometheus.CounterVec
}

var _ registry.Observer = (*Collector)(nil)

// NewCollector creates a collector with all metrics registered.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	c := &Collector{registry: prometheus.NewRegistry()}

	c.defines = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "defines_total",
			Help:      "Define calls that produced or aliased a record",
		},
		[]string{"package", "kind"},
	)

	c.loads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "loads_total",
			Help:      "Factory executions by result",
		},
		[]string{"package", "result"},
	)

	c.loadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "load_duration_seconds",
			Help:      "Time spent running a factory, including nested requires",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100us to ~26s
		},
		[]string{"package"},
	)

	c.unresolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "unresolved_total",
			Help:      "Identifiers that matched no candidate",
		},
		[]string{"mode"},
	)

	c.registry.MustRegister(c.defines, c.loads, c.loadDuration, c.unresolved)
	return c
}

// Defined implements registry.Observer.
func (c *Collector) Defined(r *registry.Record, aliased bool) {
	kind := "new"
	if aliased {
		kind = "alias"
	}
	c.defines.WithLabelValues(r.Package(), kind).Inc()
}

// Loaded implements registry.Observer.
func (c *Collector) Loaded(r *registry.Record, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.loads.WithLabelValues(r.Package(), result).Inc()
	c.loadDuration.WithLabelValues(r.Package()).Observe(elapsed.Seconds())
}

// Unresolved implements registry.Observer.
func (c *Collector) Unresolved(err *registry.NotFoundError) {
	c.unresolved.WithLabelValues(err.Mode.String()).Inc()
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collected metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

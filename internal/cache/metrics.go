package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for a cache.
//
// Wiring is optional: a nil *Metrics is valid everywhere in this package and
// turns every record call into a no-op. One Metrics instance may be shared
// by several caches (the shards of a Sharded cache do exactly that); all
// instruments are cumulative, and Entries moves by deltas so shared use
// still aggregates correctly.
type Metrics struct {
	Hits        prometheus.Counter
	Misses      prometheus.Counter
	Evictions   prometheus.Counter
	Expirations prometheus.Counter
	Sweeps      prometheus.Counter
	Entries     prometheus.Gauge
}

// NewMetrics creates cache metrics registered with reg under namespace.
// Passing a private prometheus.NewRegistry keeps tests isolated from the
// default registry.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Hits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Lookups that returned a live entry",
		}),
		Misses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Lookups that found nothing, including expired entries",
		}),
		Evictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "evictions_total",
			Help:      "Entries removed by LRU capacity pressure",
		}),
		Expirations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "expirations_total",
			Help:      "Entries removed because their TTL elapsed",
		}),
		Sweeps: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "sweeps_total",
			Help:      "Background sweep cycles completed",
		}),
		Entries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "entries",
			Help:      "Entries currently indexed, including not-yet-swept expired ones",
		}),
	}
}

func (m *Metrics) hit() {
	if m != nil {
		m.Hits.Inc()
	}
}

func (m *Metrics) miss() {
	if m != nil {
		m.Misses.Inc()
	}
}

func (m *Metrics) evicted() {
	if m != nil {
		m.Evictions.Inc()
	}
}

func (m *Metrics) expired() {
	if m != nil {
		m.Expirations.Inc()
	}
}

func (m *Metrics) sweep() {
	if m != nil {
		m.Sweeps.Inc()
	}
}

func (m *Metrics) entryAdded() {
	if m != nil {
		m.Entries.Inc()
	}
}

func (m *Metrics) entryRemoved() {
	if m != nil {
		m.Entries.Dec()
	}
}

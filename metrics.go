// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import "github.com/prometheus/client_golang/prometheus"

// metricsSet exposes the manager's internal counters to a Prometheus
// registry, grounding spec.md's GC/reorder hook points in the ambient
// observability stack rather than bespoke stat structs. Counters are
// created unregistered; call Manager.Collectors to obtain them for
// registration, or use Manager.MustRegister as a convenience.
type metricsSet struct {
	gcCount      prometheus.Counter
	reorderCount prometheus.Counter
	nodesLive    prometheus.Gauge
	cacheHits    prometheus.Gauge
	cacheMisses  prometheus.Gauge
}

func newMetricsSet() *metricsSet {
	return &metricsSet{
		gcCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dd_gc_total",
			Help: "Number of garbage collections run by the manager.",
		}),
		reorderCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dd_reorder_total",
			Help: "Number of dynamic reordering passes run by the manager.",
		}),
		nodesLive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dd_nodes_live",
			Help: "Number of live nodes across all diagram families.",
		}),
		cacheHits: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dd_cache_hits",
			Help: "Computed-cache hits since the last cache reset.",
		}),
		cacheMisses: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dd_cache_misses",
			Help: "Computed-cache misses since the last cache reset.",
		}),
	}
}

// Collectors returns every Prometheus collector owned by the manager, for
// callers that manage their own registry.
func (m *Manager) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.metrics.gcCount,
		m.metrics.reorderCount,
		m.metrics.nodesLive,
		m.metrics.cacheHits,
		m.metrics.cacheMisses,
	}
}

// MustRegister registers every manager metric on reg, panicking on a
// duplicate registration (mirrors prometheus.MustRegister's own contract).
func (m *Manager) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(m.Collectors()...)
}

// syncMetrics refreshes the gauges that reflect point-in-time state rather
// than monotonic counts; called after GC and reordering passes.
func (m *Manager) syncMetrics() {
	m.metrics.nodesLive.Set(float64(m.liveNodeCount()))
	m.metrics.cacheHits.Set(float64(m.cache.hits))
	m.metrics.cacheMisses.Set(float64(m.cache.misses))
}

package xaholder

import "github.com/prometheus/client_golang/prometheus"

// PrometheusRecorder implements MetricsRecorder with counters and a gauge
// registered against a prometheus.Registerer, giving the on_acquire/
// on_lease/on_release/on_destroy event hooks required by the external
// interface a concrete, swappable observability consumer.
//
// Counters are not labeled by management id: a holder's management id is
// effectively unbounded cardinality (it embeds a monotonically increasing
// per-pool counter), which Prometheus metric labels must never be. Run one
// PrometheusRecorder per pool if per-pool breakdown is needed.
type PrometheusRecorder struct {
	acquires    prometheus.Counter
	releases    prometheus.Counter
	destroys    prometheus.Counter
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	outstanding prometheus.Gauge
}

// NewPrometheusRecorder constructs and registers a PrometheusRecorder under
// namespace/subsystem "xaholder". Returns an error if registration fails,
// e.g. because a collector with the same fully-qualified name is already
// registered.
func NewPrometheusRecorder(reg prometheus.Registerer, namespace string) (*PrometheusRecorder, error) {
	r := &PrometheusRecorder{
		acquires: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "xaholder", Name: "acquires_total",
			Help: "Total number of holder acquisitions (GetHandle calls).",
		}),
		releases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "xaholder", Name: "releases_total",
			Help: "Total number of holder releases that brought usage_count to zero.",
		}),
		destroys: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "xaholder", Name: "destroys_total",
			Help: "Total number of holders closed.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "xaholder", Name: "statement_cache_hits_total",
			Help: "Total number of prepared-statement cache hits.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "xaholder", Name: "statement_cache_misses_total",
			Help: "Total number of prepared-statement cache misses.",
		}),
		outstanding: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "xaholder", Name: "outstanding_acquisitions",
			Help: "Current number of holder acquisitions not yet released.",
		}),
	}

	collectors := []prometheus.Collector{r.acquires, r.releases, r.destroys, r.cacheHits, r.cacheMisses, r.outstanding}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *PrometheusRecorder) Acquire(mgmtID string) {
	r.acquires.Inc()
	r.outstanding.Inc()
}

func (r *PrometheusRecorder) Release(mgmtID string) {
	r.releases.Inc()
	r.outstanding.Dec()
}

func (r *PrometheusRecorder) CacheHit(mgmtID string) { r.cacheHits.Inc() }

func (r *PrometheusRecorder) CacheMiss(mgmtID string) { r.cacheMisses.Inc() }

func (r *PrometheusRecorder) Destroy(mgmtID string) { r.destroys.Inc() }

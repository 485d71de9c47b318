package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once              sync.Once
	registry          *prom.Registry
	stageDuration     *prom.HistogramVec
	transformDuration prom.Histogram
	outcomes          *prom.CounterVec
	generated         *prom.CounterVec
	dropped           prom.Counter
	pruned            *prom.CounterVec
	regenerations     *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "threadtable",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual transformation stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.transformDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "threadtable",
			Name:      "transform_duration_seconds",
			Help:      "Total transformation duration",
			Buckets:   prom.DefBuckets,
		})
		pr.outcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "threadtable",
			Name:      "transform_outcomes_total",
			Help:      "Transformations by final status",
		}, []string{"result"})
		pr.generated = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "threadtable",
			Name:      "threads_generated_total",
			Help:      "Offset thread entries generated, by gender",
		}, []string{"gender"})
		pr.dropped = prom.NewCounter(prom.CounterOpts{
			Namespace: "threadtable",
			Name:      "threads_dropped_total",
			Help:      "Original thread entries removed because originals are not reserved",
		})
		pr.pruned = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "threadtable",
			Name:      "pruned_total",
			Help:      "Empty containers removed after expansion",
		}, []string{"kind"})
		pr.regenerations = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "threadtable",
			Name:      "watch_regenerations_total",
			Help:      "Regenerations triggered in watch mode",
		}, []string{"trigger"})
		reg.MustRegister(pr.stageDuration, pr.transformDuration, pr.outcomes, pr.generated, pr.dropped, pr.pruned, pr.regenerations)
	})
	return pr
}

// Registry returns the registry the metrics are registered with.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	if p == nil {
		return nil
	}
	return p.registry
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveTransformDuration(d time.Duration) {
	if p == nil || p.transformDuration == nil {
		return
	}
	p.transformDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncTransformOutcome(result ResultLabel) {
	if p == nil || p.outcomes == nil {
		return
	}
	p.outcomes.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) AddThreadsGenerated(gender string, n int) {
	if p == nil || p.generated == nil || n <= 0 {
		return
	}
	p.generated.WithLabelValues(gender).Add(float64(n))
}

func (p *PrometheusRecorder) AddThreadsDropped(n int) {
	if p == nil || p.dropped == nil || n <= 0 {
		return
	}
	p.dropped.Add(float64(n))
}

func (p *PrometheusRecorder) AddPruned(kind string, n int) {
	if p == nil || p.pruned == nil || n <= 0 {
		return
	}
	p.pruned.WithLabelValues(kind).Add(float64(n))
}

func (p *PrometheusRecorder) IncRegeneration(trigger string) {
	if p == nil || p.regenerations == nil {
		return
	}
	p.regenerations.WithLabelValues(trigger).Inc()
}

// WriteTextfile writes the current metric values in the text exposition format,
// suitable for the node_exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.registry)
}

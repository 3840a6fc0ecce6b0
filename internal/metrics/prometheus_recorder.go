package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "pelican"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once              sync.Once
	buildDuration     prom.Histogram
	buildOutcome      *prom.CounterVec
	phaseDuration     *prom.HistogramVec
	generatorDuration *prom.HistogramVec
	generatorResults  *prom.CounterVec
	filesWritten      prom.Gauge
	rebuildTriggers   *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"})
		pr.phaseDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "phase_duration_seconds",
			Help:      "Duration of the context and output phases",
			Buckets:   prom.DefBuckets,
		}, []string{"phase"})
		pr.generatorDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "generator_duration_seconds",
			Help:      "Duration of a single generator within a phase",
			Buckets:   prom.DefBuckets,
		}, []string{"generator", "phase"})
		pr.generatorResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "generator_results_total",
			Help:      "Generator results by outcome",
		}, []string{"generator", "result"})
		pr.filesWritten = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "files_written",
			Help:      "Files written by the last build",
		})
		pr.rebuildTriggers = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "rebuild_triggers_total",
			Help:      "Changes that triggered a rebuild, by watched tree",
		}, []string{"tree"})
		reg.MustRegister(pr.buildDuration, pr.buildOutcome, pr.phaseDuration, pr.generatorDuration,
			pr.generatorResults, pr.filesWritten, pr.rebuildTriggers)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObservePhaseDuration(phase string, d time.Duration) {
	if p == nil || p.phaseDuration == nil {
		return
	}
	p.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveGeneratorDuration(generator, phase string, d time.Duration) {
	if p == nil || p.generatorDuration == nil {
		return
	}
	p.generatorDuration.WithLabelValues(generator, phase).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncGeneratorResult(generator string, result ResultLabel) {
	if p == nil || p.generatorResults == nil {
		return
	}
	p.generatorResults.WithLabelValues(generator, string(result)).Inc()
}

func (p *PrometheusRecorder) SetFilesWritten(n int) {
	if p == nil || p.filesWritten == nil {
		return
	}
	p.filesWritten.Set(float64(n))
}

func (p *PrometheusRecorder) IncRebuildTrigger(tree string) {
	if p == nil || p.rebuildTriggers == nil {
		return
	}
	p.rebuildTriggers.WithLabelValues(tree).Inc()
}

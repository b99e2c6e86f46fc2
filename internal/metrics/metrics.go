// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package metrics counts generator outcomes in a Prometheus registry and
// writes them in the node_exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"grimm.is/algodocs/internal/configdoc"
	"grimm.is/algodocs/internal/errors"
)

// Metrics holds the generator's Prometheus metrics. It implements
// configdoc.Recorder.
type Metrics struct {
	Fragments   *prometheus.CounterVec
	LoadErrors  *prometheus.CounterVec
	LastRun     prometheus.Gauge
	RunDuration prometheus.Histogram
	Descriptors prometheus.Gauge

	registry *prometheus.Registry
}

// New creates the metrics and registers them with a private registry.
func New() *Metrics {
	m := &Metrics{
		Fragments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gen_config_docs_fragments_total",
			Help: "Fragments processed, by outcome",
		}, []string{"outcome"}),

		LoadErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gen_config_docs_load_errors_total",
			Help: "Descriptor sources that could not be loaded",
		}, []string{"source"}),

		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gen_config_docs_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		}),

		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gen_config_docs_run_duration_seconds",
			Help:    "Wall time of a generator run",
			Buckets: prometheus.ExponentialBuckets(0.005, 4, 8),
		}),

		Descriptors: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gen_config_docs_descriptors",
			Help: "Descriptor entries seen in the last run",
		}),

		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(m)
	return m
}

// Describe implements prometheus.Collector
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.Fragments.Describe(ch)
	m.LoadErrors.Describe(ch)
	m.LastRun.Describe(ch)
	m.RunDuration.Describe(ch)
	m.Descriptors.Describe(ch)
}

// Collect implements prometheus.Collector
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.Fragments.Collect(ch)
	m.LoadErrors.Collect(ch)
	m.LastRun.Collect(ch)
	m.RunDuration.Collect(ch)
	m.Descriptors.Collect(ch)
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Record counts one generator result.
func (m *Metrics) Record(res configdoc.Result) {
	m.Fragments.WithLabelValues(res.Outcome.String()).Inc()
}

// RecordLoadError counts a source that failed to load.
func (m *Metrics) RecordLoadError(source string) {
	m.LoadErrors.WithLabelValues(source).Inc()
}

// RunFinished records the end of a run that started at start over n entries.
func (m *Metrics) RunFinished(start time.Time, n int) {
	now := time.Now()
	m.RunDuration.Observe(now.Sub(start).Seconds())
	m.Descriptors.Set(float64(n))
	m.LastRun.Set(float64(now.Unix()))
}

// WriteTextfile writes the registry to path in the text exposition format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to write metrics"), "path", path)
	}
	return nil
}

// SPDX-License-Identifier: MIT

// Package metrics defines Prometheus metrics for one connstat run.
//
// Each run owns its registry, so concurrent runs in one process never share
// counters. Batch invocations export through the node-exporter textfile
// collector with WriteTextfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors of one run.
type Metrics struct {
	Registry *prometheus.Registry

	EntitiesLoaded   *prometheus.CounterVec
	EntitiesSkipped  prometheus.Counter
	EntitiesReshaped prometheus.Counter
	EdgesTested      prometheus.Counter
	EdgesDegenerate  prometheus.Counter
	EdgesSignificant prometheus.Counter
	StageDuration    *prometheus.GaugeVec
	RunFailures      *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		EntitiesLoaded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "connstat_entities_loaded_total",
				Help: "Entities loaded per cohort",
			},
			[]string{"cohort"},
		),
		EntitiesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "connstat_entities_skipped_total",
			Help: "Entities skipped for a missing matrix resource",
		}),
		EntitiesReshaped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "connstat_entities_reshaped_total",
			Help: "Entities truncated or padded to the common shape",
		}),
		EdgesTested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "connstat_edges_tested_total",
			Help: "Edges evaluated by the rank-sum test",
		}),
		EdgesDegenerate: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "connstat_edges_degenerate_total",
			Help: "Edges that received the sentinel p-value",
		}),
		EdgesSignificant: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "connstat_edges_significant_total",
			Help: "Edges below alpha after correction",
		}),
		StageDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "connstat_stage_duration_seconds",
				Help: "Wall time spent in each pipeline stage",
			},
			[]string{"stage"},
		),
		RunFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "connstat_run_failures_total",
				Help: "Failed runs by stage",
			},
			[]string{"stage"},
		),
	}

	m.Registry.MustRegister(
		m.EntitiesLoaded, m.EntitiesSkipped, m.EntitiesReshaped,
		m.EdgesTested, m.EdgesDegenerate, m.EdgesSignificant,
		m.StageDuration, m.RunFailures,
	)

	return m
}

// ObserveStage records the duration of stage.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	m.StageDuration.WithLabelValues(stage).Set(d.Seconds())
}

// WriteTextfile writes the registry in text exposition format to path
// atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}

	return nil
}

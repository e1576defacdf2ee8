// internal/common/metrics/metrics.go
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StageRunsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "processor_runs_completed_total",
			Help: "Total number of stage invocations that completed",
		},
		[]string{"task_type"},
	)

	StageRunsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "processor_runs_failed_total",
			Help: "Total number of stage invocations that failed",
		},
		[]string{"task_type", "error_code"},
	)

	StageRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "processor_run_duration_seconds",
			Help:    "Duration of a stage invocation in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
		[]string{"task_type"},
	)

	StageRunsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "processor_runs_active",
			Help: "Number of stage invocations in progress",
		},
		[]string{"task_type"},
	)
)

// WriteTextfile dumps g (the default registry when nil) to
// <dir>/<taskType>.prom for the node_exporter textfile collector. A processor
// exits right after its run, so there is no scrape endpoint to serve.
func WriteTextfile(dir, taskType string, g prometheus.Gatherer) error {
	if dir == "" {
		return nil
	}
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	return prometheus.WriteToTextfile(filepath.Join(dir, taskType+".prom"), g)
}

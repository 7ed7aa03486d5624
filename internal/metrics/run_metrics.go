// Frame and run metrics for batch video processing
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "videoproc"

// RunMetrics owns its own registry so a process can export a single run's
// numbers to a node_exporter textfile. All methods are safe on a nil receiver.
type RunMetrics struct {
	registry *prometheus.Registry

	FramesProcessedTotal *prometheus.CounterVec
	FrameDuration        *prometheus.HistogramVec
	RunsTotal            *prometheus.CounterVec
	RunDuration          *prometheus.HistogramVec
}

func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		FramesProcessedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_processed_total",
			Help:      "Total number of frames transformed, by transform",
		}, []string{"transform"}),
		FrameDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_transform_duration_seconds",
			Help:      "Time spent transforming a single frame",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}, []string{"transform"}),
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of pipeline runs, by transform and status",
		}, []string{"transform", "status"}),
		RunDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a whole pipeline run",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		}, []string{"transform"}),
	}

	m.registry.MustRegister(m.FramesProcessedTotal, m.FrameDuration, m.RunsTotal, m.RunDuration)
	return m
}

func (m *RunMetrics) ObserveFrame(transform string, duration time.Duration) {
	if m == nil {
		return
	}
	m.FramesProcessedTotal.WithLabelValues(transform).Inc()
	m.FrameDuration.WithLabelValues(transform).Observe(duration.Seconds())
}

func (m *RunMetrics) ObserveRun(transform string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.RunsTotal.WithLabelValues(transform, status).Inc()
	m.RunDuration.WithLabelValues(transform).Observe(duration.Seconds())
}

func (m *RunMetrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteTextfile dumps the registry in the text exposition format.
func (m *RunMetrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}

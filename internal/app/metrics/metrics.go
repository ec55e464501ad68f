package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// File outcomes reported by FileProcessed
const (
	StatusRenamed = "renamed"
	StatusFailed  = "failed"
	StatusDryRun  = "dry_run"
)

// Recorder holds the metrics of one rename run. It owns a private registry so
// repeated runs in one process never collide. A nil *Recorder records nothing.
type Recorder struct {
	registry *prometheus.Registry

	RungsTotal    *prometheus.CounterVec
	AcceptedTotal *prometheus.CounterVec
	FilesTotal    *prometheus.CounterVec
	ModelSeconds  prometheus.Histogram
	TrimSeconds   prometheus.Histogram
}

// NewRecorder creates and registers all run metrics
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		RungsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "v2n_rungs_total",
			Help: "Transcription attempts by duration ladder rung",
		}, []string{"rung"}),
		AcceptedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "v2n_accepted_total",
			Help: "Transcriptions returned, by the rung that produced them",
		}, []string{"rung"}),
		FilesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "v2n_files_total",
			Help: "Recordings processed by outcome",
		}, []string{"status"}),
		ModelSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "v2n_model_seconds",
			Help:    "Time spent in the speech model per attempt",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10), // 250ms to ~2 minutes
		}),
		TrimSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "v2n_trim_seconds",
			Help:    "Time spent decoding and trimming audio per attempt",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~2.5s
		}),
	}
}

// Registry exposes the underlying registry, for tests and custom exporters
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// RungAttempted counts one transcription attempt at rung (1-based)
func (r *Recorder) RungAttempted(rung int, trim, model time.Duration) {
	if r == nil {
		return
	}
	r.RungsTotal.WithLabelValues(strconv.Itoa(rung)).Inc()
	r.TrimSeconds.Observe(trim.Seconds())
	r.ModelSeconds.Observe(model.Seconds())
}

// Accepted counts the rung whose text was returned
func (r *Recorder) Accepted(rung int) {
	if r == nil {
		return
	}
	r.AcceptedTotal.WithLabelValues(strconv.Itoa(rung)).Inc()
}

// FileProcessed counts one recording with the given status
func (r *Recorder) FileProcessed(status string) {
	if r == nil {
		return
	}
	r.FilesTotal.WithLabelValues(status).Inc()
}

// WriteTextfile writes the registry in the node-exporter textfile format.
// The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}

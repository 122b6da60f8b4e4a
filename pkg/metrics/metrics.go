// Package metrics provides Prometheus instrumentation for pipeflow components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for pipeflow components.
type Registry struct {
	// Channel Metrics
	ChannelEnqueues   *prometheus.CounterVec
	ChannelDequeues   *prometheus.CounterVec
	ChannelDiscarded  *prometheus.CounterVec
	ChannelCongestion *prometheus.CounterVec
	ChannelDepth      *prometheus.GaugeVec
	ChannelUsage      *prometheus.GaugeVec

	// Pipeline Metrics
	PipelineRuns      *prometheus.CounterVec
	PipelineCompleted *prometheus.CounterVec
	PipelineFailed    *prometheus.CounterVec
	ItemsProduced     *prometheus.CounterVec
	ItemsDelivered    *prometheus.CounterVec
	StageItems        *prometheus.CounterVec
	RunDuration       *prometheus.HistogramVec
	PipelineState     *prometheus.GaugeVec
}

// DefaultRegistry is the default metrics registry used by pipeflow components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Channel Metrics
		ChannelEnqueues: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pipeflow",
				Subsystem: "channel",
				Name:      "enqueues_total",
				Help:      "Total number of items enqueued",
			},
			[]string{"pipeline", "channel"},
		),

		ChannelDequeues: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pipeflow",
				Subsystem: "channel",
				Name:      "dequeues_total",
				Help:      "Total number of items dequeued",
			},
			[]string{"pipeline", "channel"},
		),

		ChannelDiscarded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pipeflow",
				Subsystem: "channel",
				Name:      "discarded_total",
				Help:      "Total number of buffered items discarded on cancellation",
			},
			[]string{"pipeline", "channel"},
		),

		ChannelCongestion: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pipeflow",
				Subsystem: "channel",
				Name:      "congestion_events_total",
				Help:      "Total number of transitions into the congested state",
			},
			[]string{"pipeline", "channel"},
		),

		ChannelDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "pipeflow",
				Subsystem: "channel",
				Name:      "depth",
				Help:      "Highest buffered item count observed",
			},
			[]string{"pipeline", "channel"},
		),

		ChannelUsage: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "pipeflow",
				Subsystem: "channel",
				Name:      "usage",
				Help:      "Peak buffer utilization (0.0 to 1.0)",
			},
			[]string{"pipeline", "channel"},
		),

		// Pipeline Metrics
		PipelineRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pipeflow",
				Subsystem: "pipeline",
				Name:      "runs_total",
				Help:      "Total number of pipeline runs started",
			},
			[]string{"pipeline"},
		),

		PipelineCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pipeflow",
				Subsystem: "pipeline",
				Name:      "runs_completed_total",
				Help:      "Total number of runs that delivered all items",
			},
			[]string{"pipeline"},
		),

		PipelineFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pipeflow",
				Subsystem: "pipeline",
				Name:      "runs_failed_total",
				Help:      "Total number of runs that ended in failure or cancellation",
			},
			[]string{"pipeline"},
		),

		ItemsProduced: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pipeflow",
				Subsystem: "pipeline",
				Name:      "items_produced_total",
				Help:      "Total number of items pulled from sources",
			},
			[]string{"pipeline"},
		),

		ItemsDelivered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pipeflow",
				Subsystem: "pipeline",
				Name:      "items_delivered_total",
				Help:      "Total number of items accepted by sinks",
			},
			[]string{"pipeline"},
		),

		StageItems: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pipeflow",
				Subsystem: "pipeline",
				Name:      "stage_items_total",
				Help:      "Total number of items entering and leaving each stage",
			},
			[]string{"pipeline", "stage", "direction"},
		),

		RunDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "pipeflow",
				Subsystem: "pipeline",
				Name:      "run_duration_seconds",
				Help:      "Time from run start to terminal state",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pipeline"},
		),

		PipelineState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "pipeflow",
				Subsystem: "pipeline",
				Name:      "state",
				Help:      "Current run state (0=idle 1=running 2=draining 3=completed 4=failed)",
			},
			[]string{"pipeline"},
		),
	}
}

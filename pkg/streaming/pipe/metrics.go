package pipe

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/pipeflow/pkg/metrics"
)

// MetricsPipeline wraps a Pipeline with Prometheus metrics collection.
type MetricsPipeline[T any] struct {
	inner    Pipeline[T]
	name     string
	registry *metrics.Registry
	capacity int
}

// NewWithMetrics creates a pipeline with metrics enabled on a dedicated
// Prometheus registry.
func NewWithMetrics[T any](config Config, source Source[T], sink Sink[T], stages ...Stage[T]) Pipeline[T] {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	metricsConfig := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}
	return NewWithConfigAndMetrics(config, metricsConfig, source, sink, stages...)
}

// NewWithConfigAndMetrics creates a pipeline reporting to the configured
// metrics registry. With metrics disabled it returns a plain pipeline.
func NewWithConfigAndMetrics[T any](config Config, metricsConfig metrics.Config, source Source[T], sink Sink[T], stages ...Stage[T]) Pipeline[T] {
	if !metricsConfig.Enabled {
		return New(config, source, sink, stages...)
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	if config.Name == "" {
		config.Name = DefaultConfig().Name
	}
	name := config.Name

	// Track state transitions live, chaining any caller-provided callback.
	prevStateChange := config.OnStateChange
	config.OnStateChange = func(from, to State) {
		registry.PipelineState.WithLabelValues(name).Set(float64(to))
		if prevStateChange != nil {
			prevStateChange(from, to)
		}
	}

	capacity := config.ChannelCapacity
	if capacity <= 0 {
		capacity = DefaultConfig().ChannelCapacity
	}

	return &MetricsPipeline[T]{
		inner:    New(config, source, sink, stages...),
		name:     name,
		registry: registry,
		capacity: capacity,
	}
}

// Run implements Pipeline, recording run outcome and throughput metrics.
func (mp *MetricsPipeline[T]) Run(ctx context.Context) error {
	mp.registry.PipelineRuns.WithLabelValues(mp.name).Inc()

	err := mp.inner.Run(ctx)

	stats := mp.inner.Stats()
	if err != nil {
		mp.registry.PipelineFailed.WithLabelValues(mp.name).Inc()
	} else {
		mp.registry.PipelineCompleted.WithLabelValues(mp.name).Inc()
	}

	mp.registry.ItemsProduced.WithLabelValues(mp.name).Add(float64(stats.ItemsProduced))
	mp.registry.ItemsDelivered.WithLabelValues(mp.name).Add(float64(stats.ItemsDelivered))
	mp.registry.RunDuration.WithLabelValues(mp.name).Observe(stats.Duration.Seconds())

	for _, ss := range stats.StageStats {
		mp.registry.StageItems.WithLabelValues(mp.name, ss.Name, "in").Add(float64(ss.ItemsIn))
		mp.registry.StageItems.WithLabelValues(mp.name, ss.Name, "out").Add(float64(ss.ItemsOut))
	}

	for i, cs := range stats.Channels {
		label := strconv.Itoa(i)
		mp.registry.ChannelEnqueues.WithLabelValues(mp.name, label).Add(float64(cs.Enqueued))
		mp.registry.ChannelDequeues.WithLabelValues(mp.name, label).Add(float64(cs.Dequeued))
		mp.registry.ChannelDiscarded.WithLabelValues(mp.name, label).Add(float64(cs.Discarded))
		mp.registry.ChannelCongestion.WithLabelValues(mp.name, label).Add(float64(cs.CongestionEvents))
		mp.registry.ChannelDepth.WithLabelValues(mp.name, label).Set(float64(cs.MaxDepth))
		mp.registry.ChannelUsage.WithLabelValues(mp.name, label).Set(float64(cs.MaxDepth) / float64(mp.capacity))
	}

	return err
}

// Pause implements Pipeline.
func (mp *MetricsPipeline[T]) Pause() {
	mp.inner.Pause()
}

// Resume implements Pipeline.
func (mp *MetricsPipeline[T]) Resume() {
	mp.inner.Resume()
}

// Cancel implements Pipeline.
func (mp *MetricsPipeline[T]) Cancel() {
	mp.inner.Cancel()
}

// State implements Pipeline.
func (mp *MetricsPipeline[T]) State() State {
	return mp.inner.State()
}

// Stats implements Pipeline.
func (mp *MetricsPipeline[T]) Stats() Stats {
	return mp.inner.Stats()
}

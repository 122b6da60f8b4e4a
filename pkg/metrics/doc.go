// Package metrics provides Prometheus instrumentation for pipeflow components.
//
// The registry covers the two instrumented areas:
//   - Channels (enqueues, dequeues, discards, congestion transitions, depth, usage)
//   - Pipelines (runs, terminal outcomes, item counts, per-stage throughput,
//     run duration, current state)
//
// Enable metrics through the metrics-enabled pipeline constructors:
//
//	p := pipe.NewWithConfigAndMetrics(cfg, metrics.DefaultConfig(), source, sink, stages...)
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//
// Components instrument a shared Registry; use NewRegistry with a custom
// prometheus.Registerer to isolate metric sets, for example in tests.
package metrics

package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Example_basicUsage demonstrates basic metrics configuration.
func Example_basicUsage() {
	// Create a separate registry for this test
	testRegistry := prometheus.NewRegistry()
	registry := NewRegistry(testRegistry)

	registry.PipelineRuns.WithLabelValues("ingest").Inc()
	registry.ItemsProduced.WithLabelValues("ingest").Add(5)
	registry.ItemsDelivered.WithLabelValues("ingest").Add(3)
	registry.StageItems.WithLabelValues("ingest", "drop-zeros", "in").Add(5)
	registry.StageItems.WithLabelValues("ingest", "drop-zeros", "out").Add(3)

	fmt.Println("Metrics updated successfully")

	// Output:
	// Metrics updated successfully
}

// Example_customRegistry demonstrates using a custom Prometheus registry.
func Example_customRegistry() {
	customRegistry := prometheus.NewRegistry()

	config := Config{
		Enabled:  true,
		Registry: customRegistry,
	}
	registry := NewRegistry(config.Registry)

	registry.ChannelCongestion.WithLabelValues("ingest", "0").Inc()
	registry.ChannelDepth.WithLabelValues("ingest", "0").Set(8)

	fmt.Println("Custom registry configured")

	// Output:
	// Custom registry configured
}

// Package pipe provides a composable streaming pipeline built on bounded
// channels with watermark flow control.
//
// A pipeline connects a Source to a Sink through zero or more Stages. Each
// segment runs in its own goroutine and communicates through a bounded
// channel, so a slow consumer applies backpressure all the way back to the
// source: once a channel reaches its high watermark the upstream producer
// stalls until the consumer drains it below the low watermark.
//
// Basic usage:
//
//	source := pipe.FromSlice([]int{1, 2, 3, 4, 5})
//	sink := pipe.Collect[int]()
//	p := pipe.New(pipe.DefaultConfig(), source, sink,
//		pipe.Filter("odd", func(n int) bool { return n%2 == 1 }),
//		pipe.Map("double", func(n int) int { return n * 2 }),
//	)
//	if err := p.Run(context.Background()); err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(sink.Items()) // [2 6 10]
//
// Run blocks until the source is exhausted and every in-flight item has
// reached the sink, or until the pipeline fails or is cancelled. A pipeline
// runs at most once; a second Run returns ErrAlreadyStarted.
//
// Pause suspends delivery to the sink while upstream segments continue to
// fill the intermediate channels until flow control stops them. Resume lifts
// the suspension. Cancel stops the pipeline promptly, discards buffered
// items, and causes Run to return ErrCancelled.
//
// Errors from the source, a stage, or the sink abort the run and are
// reported wrapped in SourceError, StageError, or SinkError respectively,
// so callers can attribute the failure with errors.As.
//
// Use NewWithMetrics or NewWithConfigAndMetrics for Prometheus metrics on
// runs, throughput, per-stage item counts, and channel utilization.
package pipe

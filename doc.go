/*
Package pipeflow provides bounded-buffer streaming pipelines with watermark
flow control.

Streaming (pkg/streaming):
  - channel: Bounded FIFO channel with high/low watermark backpressure
  - pipe: Source -> stages -> sink pipelines with pause, resume and cancel

Support packages:
  - pkg/metrics: Prometheus metrics for channels and pipeline runs
  - pkg/common/errors: Shared error types and sentinels
  - pkg/common/validation: Configuration validation helpers

Example usage:

	import (
		"github.com/vnykmshr/pipeflow/pkg/streaming/pipe"
	)

	source := pipe.FromSlice(records)
	sink := pipe.NewWriterSink[Record](os.Stdout)

	p := pipe.New(pipe.DefaultConfig(), source, sink,
		pipe.Filter("drop-zero", func(r Record) bool { return r.Value > 0 }),
	)
	err := p.Run(ctx)

Backpressure is structural: every segment boundary is a bounded channel, so
a slow sink eventually stalls the source instead of growing memory without
limit.
*/
package pipeflow

/*
Package streaming provides bounded-buffer streaming primitives with
watermark flow control.

This package provides two main components:

  - channel: Bounded FIFO channel with high/low watermark backpressure
  - pipe: Pipelines composing a Source, Stages and a Sink over channels

Basic usage:

	// Build and run a pipeline
	p := pipe.New(pipe.DefaultConfig(), source, sink,
		pipe.Filter("valid", isValid),
	)
	err := p.Run(ctx)

Every segment boundary is a bounded channel, so a slow consumer stalls its
producer instead of growing memory without limit. Pipelines support pause,
resume and cancellation, and every blocking operation honors its context.
*/
package streaming

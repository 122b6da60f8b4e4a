/*
Package channel provides the bounded, watermark-based queue that connects
adjacent segments of a streaming pipeline.

A Channel is a FIFO buffer with a hard capacity, a high watermark that marks
the channel Congested, and a low watermark that drains it back to accepting.
The gap between the two watermarks is deliberate hysteresis: without it, a
producer and consumer running at similar rates would flip the congestion state
on nearly every item.

Basic usage:

	ch := channel.NewWithConfig[int](channel.Config{
		Capacity:      8,
		HighWatermark: 8,
		LowWatermark:  4,
	})

	// Producer side
	if err := ch.Enqueue(ctx, 42); err != nil {
		// channel closed or context canceled
	}
	ch.Close() // mark end-of-stream

	// Consumer side
	for {
		v, err := ch.Dequeue(ctx)
		if errors.Is(err, channel.ErrEndOfStream) {
			break
		}
		if err != nil {
			return err // context canceled
		}
		process(v)
	}

Flow control:

Enqueue blocks while the channel is Congested, which is how backpressure
propagates upstream: a slow consumer congests its input channel, the producer
suspends, and so on back to the source. AwaitAccepting lets a producer hold
off pulling new work until the channel can take it, which keeps the number of
items ever produced bounded by buffer capacity plus items consumed.

Suspend and Resume provide a manual hold on the delivery side, independent of
the watermarks. While suspended, Dequeue blocks even though items are
buffered; the producer side keeps running until watermark backpressure stops
it. This is the primitive behind pipeline-level pause/resume.

Concurrency:

A Channel instance supports one producer goroutine and one consumer goroutine.
All blocking operations honor context cancellation. Control operations
(Close, Suspend, Resume, Discard, accessors) are safe from any goroutine.
*/
package channel

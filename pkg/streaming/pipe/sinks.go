package pipe

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	pferrors "github.com/vnykmshr/pipeflow/pkg/common/errors"
)

// SliceSink collects accepted items into a slice. Primarily useful in tests
// and small programs that want the full delivered sequence.
type SliceSink[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
}

// Collect creates an empty SliceSink.
func Collect[T any]() *SliceSink[T] {
	return &SliceSink[T]{}
}

// Accept implements Sink.
func (s *SliceSink[T]) Accept(_ context.Context, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	return nil
}

// Close implements Sink.
func (s *SliceSink[T]) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Items returns a copy of the collected items.
func (s *SliceSink[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]T, len(s.items))
	copy(items, s.items)
	return items
}

// Closed returns true once the pipeline has closed the sink.
func (s *SliceSink[T]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// WriterSinkConfig holds configuration for a WriterSink.
type WriterSinkConfig[T any] struct {
	// Delay is an artificial pause applied before each item is written,
	// simulating a slow consumer. Zero disables it.
	Delay time.Duration

	// Format renders an item to the line written for it. Defaults to %v.
	Format func(item T) string
}

// WriterSink writes one line per accepted item to an io.Writer, optionally
// pausing before each write to simulate consumer latency. It bridges a
// pipeline to console or file output; the underlying writer stays owned by
// the caller.
type WriterSink[T any] struct {
	w      io.Writer
	config WriterSinkConfig[T]
}

// NewWriterSink creates a WriterSink with default formatting and no delay.
func NewWriterSink[T any](w io.Writer) *WriterSink[T] {
	return NewWriterSinkWithConfig(w, WriterSinkConfig[T]{})
}

// NewWriterSinkWithConfig creates a WriterSink with the given configuration.
func NewWriterSinkWithConfig[T any](w io.Writer, config WriterSinkConfig[T]) *WriterSink[T] {
	if config.Format == nil {
		config.Format = func(item T) string { return fmt.Sprintf("%v", item) }
	}
	return &WriterSink[T]{w: w, config: config}
}

// Accept implements Sink.
func (s *WriterSink[T]) Accept(ctx context.Context, item T) error {
	if s.config.Delay > 0 {
		timer := time.NewTimer(s.config.Delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}

	if _, err := fmt.Fprintln(s.w, s.config.Format(item)); err != nil {
		return pferrors.NewOperationError("sink", "Write", err)
	}
	return nil
}

// Close implements Sink.
func (s *WriterSink[T]) Close(context.Context) error {
	return nil
}

// discardSink implements Sink by dropping every item.
type discardSink[T any] struct{}

// Discard creates a Sink that accepts and drops everything.
func Discard[T any]() Sink[T] {
	return discardSink[T]{}
}

func (discardSink[T]) Accept(context.Context, T) error { return nil }

func (discardSink[T]) Close(context.Context) error { return nil }

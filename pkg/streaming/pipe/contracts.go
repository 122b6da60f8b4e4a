package pipe

import "context"

// Source produces a lazy, finite sequence of items on demand.
//
// Any type implementing this contract can feed a Pipeline; there is no base
// type to embed. Next may block while producing (simulated or real I/O) but
// must never return a partially constructed item.
type Source[T any] interface {
	// Next returns the next item and true, or the zero value and false once
	// the source is exhausted. Exhaustion is terminal: after returning false
	// once, every subsequent call must also return false.
	Next(ctx context.Context) (T, bool, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc[T any] func(ctx context.Context) (T, bool, error)

// Next implements Source.
func (f SourceFunc[T]) Next(ctx context.Context) (T, bool, error) {
	return f(ctx)
}

// Stage transforms one input item into zero or more output items, in input
// order. A stage instance is invoked from a single goroutine, never
// concurrently with itself, so internal state needs no locking. Output must
// be deterministic given the input and prior internal state.
type Stage[T any] interface {
	// Apply processes one item. An empty result filters the item out; a
	// multi-item result expands it. Order of the result is preserved.
	Apply(ctx context.Context, item T) ([]T, error)

	// Name returns an identifier for this stage, used in errors and stats.
	Name() string
}

// stageFunc is the function-backed Stage used by NewStage and the reference
// stage constructors.
type stageFunc[T any] struct {
	name string
	fn   func(ctx context.Context, item T) ([]T, error)
}

func (s *stageFunc[T]) Apply(ctx context.Context, item T) ([]T, error) {
	return s.fn(ctx, item)
}

func (s *stageFunc[T]) Name() string {
	return s.name
}

// NewStage creates a stage from a function.
func NewStage[T any](name string, fn func(ctx context.Context, item T) ([]T, error)) Stage[T] {
	return &stageFunc[T]{name: name, fn: fn}
}

// Sink consumes items one at a time, strictly in the order received. Each
// Accept may take variable time. After the upstream end-of-stream has fully
// drained, the pipeline calls Close exactly once; no Accept call is ever
// concurrent with another Accept or with Close.
//
// The pipeline drives a Sink but does not own its external resources; a sink
// holding a file handle or connection remains responsible for it.
type Sink[T any] interface {
	// Accept consumes one item.
	Accept(ctx context.Context, item T) error

	// Close signals that no further items will arrive.
	Close(ctx context.Context) error
}

// SinkFunc adapts a function to the Sink interface with a no-op Close.
type SinkFunc[T any] func(ctx context.Context, item T) error

// Accept implements Sink.
func (f SinkFunc[T]) Accept(ctx context.Context, item T) error {
	return f(ctx, item)
}

// Close implements Sink.
func (f SinkFunc[T]) Close(context.Context) error {
	return nil
}

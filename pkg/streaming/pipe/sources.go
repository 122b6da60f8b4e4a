package pipe

import "context"

// sliceSource implements Source for slices.
type sliceSource[T any] struct {
	items []T
	index int
}

// FromSlice creates a Source over the given slice.
func FromSlice[T any](items []T) Source[T] {
	return &sliceSource[T]{items: items}
}

func (s *sliceSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	if s.index >= len(s.items) {
		return zero, false, nil
	}

	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	default:
	}

	item := s.items[s.index]
	s.index++
	return item, true, nil
}

// channelSource implements Source for receive channels.
type channelSource[T any] struct {
	ch <-chan T
}

// FromChannel creates a Source that drains the given channel until it is
// closed.
func FromChannel[T any](ch <-chan T) Source[T] {
	return &channelSource[T]{ch: ch}
}

func (s *channelSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	select {
	case item, ok := <-s.ch:
		if !ok {
			return zero, false, nil
		}
		return item, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

// generatorSource implements Source for generator functions.
type generatorSource[T any] struct {
	count int
	next  int
	fn    func(i int) T
}

// Generate creates a Source producing count items from the generator
// function, which is called with indices 0 through count-1.
func Generate[T any](count int, fn func(i int) T) Source[T] {
	return &generatorSource[T]{count: count, fn: fn}
}

func (s *generatorSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	if s.next >= s.count {
		return zero, false, nil
	}

	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	default:
	}

	item := s.fn(s.next)
	s.next++
	return item, true, nil
}

// emptySource implements Source with no items.
type emptySource[T any] struct{}

// Empty creates a Source that is exhausted from the start.
func Empty[T any]() Source[T] {
	return emptySource[T]{}
}

func (emptySource[T]) Next(context.Context) (T, bool, error) {
	var zero T
	return zero, false, nil
}

package pipe

import "context"

// Filter creates a stage that drops items failing the predicate.
func Filter[T any](name string, predicate func(T) bool) Stage[T] {
	return NewStage(name, func(_ context.Context, item T) ([]T, error) {
		if !predicate(item) {
			return nil, nil
		}
		return []T{item}, nil
	})
}

// Map creates a stage that replaces each item with the mapper's result.
func Map[T any](name string, mapper func(T) T) Stage[T] {
	return NewStage(name, func(_ context.Context, item T) ([]T, error) {
		return []T{mapper(item)}, nil
	})
}

// Expand creates a stage that replaces each item with zero or more items.
// The expansion result is emitted in order.
func Expand[T any](name string, expand func(T) []T) Stage[T] {
	return NewStage(name, func(_ context.Context, item T) ([]T, error) {
		return expand(item), nil
	})
}

// Peek creates a stage that performs an action on each item as it passes
// through, forwarding every item unchanged.
func Peek[T any](name string, action func(T)) Stage[T] {
	return NewStage(name, func(_ context.Context, item T) ([]T, error) {
		action(item)
		return []T{item}, nil
	})
}

package pipe

import (
	"context"
	"testing"

	"github.com/vnykmshr/pipeflow/internal/testutil"
)

func drain[T any](ctx context.Context, t *testing.T, source Source[T]) []T {
	t.Helper()
	var items []T
	for {
		item, ok, err := source.Next(ctx)
		testutil.AssertNoError(t, err)
		if !ok {
			return items
		}
		items = append(items, item)
	}
}

func TestFromSlice(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	source := FromSlice([]string{"a", "b", "c"})
	items := drain(ctx, t, source)
	testutil.AssertEqual(t, len(items), 3)
	testutil.AssertEqual(t, items[0], "a")
	testutil.AssertEqual(t, items[2], "c")

	// Exhaustion is terminal.
	_, ok, err := source.Next(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, false)
	_, ok, err = source.Next(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, false)
}

func TestFromSliceRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := FromSlice([]int{1, 2, 3})
	_, _, err := source.Next(ctx)
	testutil.AssertErrorIs(t, err, context.Canceled)
}

func TestFromChannel(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	ch := make(chan int, 3)
	ch <- 1
	ch <- 2
	ch <- 3
	close(ch)

	items := drain(ctx, t, FromChannel(ch))
	testutil.AssertEqual(t, len(items), 3)
	testutil.AssertEqual(t, items[1], 2)
}

func TestFromChannelBlocksUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan int)
	source := FromChannel(ch)

	done := make(chan error, 1)
	go func() {
		_, _, err := source.Next(ctx)
		done <- err
	}()
	cancel()
	testutil.AssertErrorIs(t, <-done, context.Canceled)
}

func TestGenerate(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	source := Generate(5, func(i int) int { return i * i })
	items := drain(ctx, t, source)
	testutil.AssertEqual(t, len(items), 5)
	testutil.AssertEqual(t, items[4], 16)

	_, ok, err := source.Next(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, false)
}

func TestGenerateZeroCount(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	_, ok, err := Generate(0, func(i int) int { return i }).Next(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, false)
}

func TestEmpty(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	_, ok, err := Empty[Record]().Next(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, false)
}

func TestSourceFunc(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	n := 0
	source := SourceFunc[int](func(context.Context) (int, bool, error) {
		n++
		return n, n <= 3, nil
	})

	items := drain(ctx, t, source)
	testutil.AssertEqual(t, len(items), 3)
}

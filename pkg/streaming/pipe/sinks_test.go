package pipe

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vnykmshr/pipeflow/internal/testutil"
	pferrors "github.com/vnykmshr/pipeflow/pkg/common/errors"
)

func TestSliceSink(t *testing.T) {
	ctx := context.Background()
	sink := Collect[int]()

	testutil.AssertNoError(t, sink.Accept(ctx, 1))
	testutil.AssertNoError(t, sink.Accept(ctx, 2))
	testutil.AssertEqual(t, sink.Closed(), false)
	testutil.AssertNoError(t, sink.Close(ctx))
	testutil.AssertEqual(t, sink.Closed(), true)

	items := sink.Items()
	testutil.AssertEqual(t, len(items), 2)

	// Items returns a copy.
	items[0] = 99
	testutil.AssertEqual(t, sink.Items()[0], 1)
}

func TestWriterSink(t *testing.T) {
	ctx := context.Background()
	mw := testutil.NewMockWriter()
	sink := NewWriterSink[Record](mw)

	r := Record{ID: 0, Name: "object 0", Value: 6, OriginalValue: 2}
	testutil.AssertNoError(t, sink.Accept(ctx, r))
	testutil.AssertNoError(t, sink.Close(ctx))

	got := mw.String()
	want := "object 0: value=6 (was 2)\n"
	testutil.AssertEqual(t, got, want)
}

func TestWriterSinkCustomFormat(t *testing.T) {
	ctx := context.Background()
	mw := testutil.NewMockWriter()
	sink := NewWriterSinkWithConfig(mw, WriterSinkConfig[int]{
		Format: func(n int) string { return strings.Repeat("*", n) },
	})

	testutil.AssertNoError(t, sink.Accept(ctx, 3))
	testutil.AssertEqual(t, mw.String(), "***\n")
}

func TestWriterSinkDelayHonorsContext(t *testing.T) {
	mw := testutil.NewMockWriter()
	sink := NewWriterSinkWithConfig(mw, WriterSinkConfig[int]{
		Delay: time.Minute,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := sink.Accept(ctx, 1)
	testutil.AssertErrorIs(t, err, context.DeadlineExceeded)
	testutil.AssertEqual(t, mw.WriteCount(), 0)
}

func TestWriterSinkWriteError(t *testing.T) {
	ctx := context.Background()
	mw := testutil.NewMockWriter()
	boom := errors.New("disk full")
	mw.SetAlwaysError(boom)

	sink := NewWriterSink[int](mw)
	err := sink.Accept(ctx, 1)
	testutil.AssertErrorIs(t, err, boom)

	var opErr *pferrors.OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected OperationError, got %T", err)
	}
	testutil.AssertEqual(t, opErr.Operation, "Write")
}

func TestDiscardSink(t *testing.T) {
	ctx := context.Background()
	sink := Discard[string]()
	testutil.AssertNoError(t, sink.Accept(ctx, "anything"))
	testutil.AssertNoError(t, sink.Close(ctx))
}

func TestSinkFuncClose(t *testing.T) {
	ctx := context.Background()
	var got []int
	sink := SinkFunc[int](func(_ context.Context, n int) error {
		got = append(got, n)
		return nil
	})

	testutil.AssertNoError(t, sink.Accept(ctx, 4))
	testutil.AssertNoError(t, sink.Close(ctx))
	testutil.AssertEqual(t, len(got), 1)
}

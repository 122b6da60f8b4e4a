package pipe_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/vnykmshr/pipeflow/pkg/streaming/pipe"
)

// Example demonstrates a complete pipeline: filter out zero values, triple
// the rest, and print the survivors.
func Example() {
	source := pipe.FromSlice(pipe.SampleRecords())
	sink := pipe.NewWriterSink[pipe.Record](os.Stdout)

	p := pipe.New(pipe.DefaultConfig(), source, sink,
		pipe.Filter("drop-zero", func(r pipe.Record) bool { return r.Value > 0 }),
		pipe.Map("triple", func(r pipe.Record) pipe.Record {
			r.OriginalValue = r.Value
			r.Value *= 3
			return r
		}),
	)

	if err := p.Run(context.Background()); err != nil {
		log.Fatal(err)
	}

	// Output:
	// object 0: value=6 (was 2)
	// object 2: value=12 (was 4)
	// object 4: value=6 (was 2)
}

// Example_collect demonstrates collecting pipeline output into a slice.
func Example_collect() {
	source := pipe.Generate(6, func(i int) int { return i })
	sink := pipe.Collect[int]()

	p := pipe.New(pipe.DefaultConfig(), source, sink,
		pipe.Filter("odd", func(n int) bool { return n%2 == 1 }),
		pipe.Map("square", func(n int) int { return n * n }),
	)

	if err := p.Run(context.Background()); err != nil {
		log.Fatal(err)
	}

	fmt.Println(sink.Items())

	// Output:
	// [1 9 25]
}

// Example_cancel demonstrates stopping a run before the source is exhausted.
func Example_cancel() {
	delivered := make(chan struct{})
	sink := pipe.SinkFunc[int](func(ctx context.Context, n int) error {
		if n == 0 {
			close(delivered)
		}
		// Block after the first item so the cancel point is deterministic.
		<-ctx.Done()
		return nil
	})

	p := pipe.New(pipe.DefaultConfig(), pipe.Generate(1000, func(i int) int { return i }), sink)

	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background()) }()

	<-delivered
	p.Cancel()

	fmt.Println(<-done)
	fmt.Println(p.State())

	// Output:
	// pipeline: cancelled
	// failed
}

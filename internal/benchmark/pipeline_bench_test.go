package benchmark

import (
	"context"
	"testing"

	"github.com/vnykmshr/pipeflow/pkg/streaming/pipe"
)

// BenchmarkPipelinePassthrough measures end-to-end throughput of a
// stage-less pipeline.
func BenchmarkPipelinePassthrough(b *testing.B) {
	counts := []int{100, 1000, 10000}

	for _, count := range counts {
		b.Run(sizeLabel(count), func(b *testing.B) {
			ctx := context.Background()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				p := pipe.New(pipe.DefaultConfig(),
					pipe.Generate(count, func(j int) int { return j }),
					pipe.Discard[int]())
				if err := p.Run(ctx); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkPipelineThreeStages measures throughput through a filter, a map
// and an expand stage.
func BenchmarkPipelineThreeStages(b *testing.B) {
	ctx := context.Background()
	const count = 1000

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := pipe.New(pipe.DefaultConfig(),
			pipe.Generate(count, func(j int) int { return j }),
			pipe.Discard[int](),
			pipe.Filter("even", func(v int) bool { return v%2 == 0 }),
			pipe.Map("double", func(v int) int { return v * 2 }),
			pipe.Expand("dup", func(v int) []int { return []int{v, v} }),
		)
		if err := p.Run(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkPipelineSmallBuffers measures the backpressure-heavy case where
// every boundary congests constantly.
func BenchmarkPipelineSmallBuffers(b *testing.B) {
	ctx := context.Background()
	config := pipe.Config{
		ChannelCapacity: 2,
		HighWatermark:   2,
		LowWatermark:    1,
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := pipe.New(config,
			pipe.Generate(500, func(j int) int { return j }),
			pipe.Discard[int](),
			pipe.Map("identity", func(v int) int { return v }),
		)
		if err := p.Run(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

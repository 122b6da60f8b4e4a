package benchmark

import (
	"context"
	"strconv"
	"testing"

	"github.com/vnykmshr/pipeflow/pkg/streaming/channel"
)

func sizeLabel(size int) string {
	return "size_" + strconv.Itoa(size)
}

// BenchmarkChannelEnqueue measures enqueue throughput with a draining
// consumer.
func BenchmarkChannelEnqueue(b *testing.B) {
	capacities := []int{16, 128, 1024}

	for _, capacity := range capacities {
		b.Run(sizeLabel(capacity), func(b *testing.B) {
			ch := channel.New[int](capacity)

			done := make(chan struct{})
			go func() {
				defer close(done)
				ctx := context.Background()
				for {
					if _, err := ch.Dequeue(ctx); err != nil {
						return
					}
				}
			}()

			b.ReportAllocs()
			b.ResetTimer()
			ctx := context.Background()
			for i := 0; i < b.N; i++ {
				_ = ch.Enqueue(ctx, i)
			}
			b.StopTimer()

			_ = ch.Close()
			<-done
		})
	}
}

// BenchmarkChannelTryEnqueueDequeue measures the uncontended non-blocking
// path.
func BenchmarkChannelTryEnqueueDequeue(b *testing.B) {
	ch := channel.New[int](1024)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ch.TryEnqueue(i)
		_, _, _ = ch.TryDequeue()
	}
}

// BenchmarkChannelCongestionCycle measures a full fill-to-high then
// drain-to-low hysteresis cycle.
func BenchmarkChannelCongestionCycle(b *testing.B) {
	config := channel.Config{
		Capacity:      64,
		HighWatermark: 48,
		LowWatermark:  16,
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ch := channel.NewWithConfig[int](config)
		for j := 0; j < 48; j++ {
			_ = ch.TryEnqueue(j)
		}
		for j := 0; j < 48; j++ {
			_, _, _ = ch.TryDequeue()
		}
	}
}

package channel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	pferrors "github.com/vnykmshr/pipeflow/pkg/common/errors"
	"github.com/vnykmshr/pipeflow/pkg/common/validation"
)

// ErrChannelClosed is returned when attempting to enqueue after end-of-stream
// has been marked. Under correct single-producer driving this indicates a
// contract violation and is fatal to the run.
var ErrChannelClosed = fmt.Errorf("channel: %w", pferrors.ErrClosed)

// ErrEndOfStream is returned by Dequeue and TryDequeue once the buffer is
// empty and end-of-stream has been marked. No further items will ever arrive.
var ErrEndOfStream = errors.New("channel: end of stream")

// ErrCongested is returned by TryEnqueue when the channel is congested or at
// capacity and cannot accept an item without blocking.
var ErrCongested = fmt.Errorf("channel: congested: %w", pferrors.ErrCapacityExceeded)

// DefaultCapacity is the buffer capacity used when none is configured.
const DefaultCapacity = 16

// Channel is an ordered, bounded FIFO connecting one producer to one consumer,
// with watermark-based backpressure and an end-of-stream marker.
//
// When the buffered count reaches HighWatermark the channel becomes Congested
// and Enqueue blocks; it stays Congested until a Dequeue brings the count down
// to LowWatermark or below (hysteresis, so producer and consumer running at
// close rates do not toggle the state on every item).
//
// A Channel supports exactly one producer goroutine and one consumer
// goroutine. Fan-in and fan-out are out of scope.
type Channel[T any] interface {
	// Enqueue appends an item, blocking while the channel is congested or at
	// capacity. Returns ErrChannelClosed after Close, or the context error if
	// ctx is canceled while waiting.
	Enqueue(ctx context.Context, item T) error

	// TryEnqueue appends an item without blocking. Returns ErrCongested when
	// the channel cannot accept, ErrChannelClosed after Close.
	TryEnqueue(item T) error

	// AwaitAccepting blocks until the channel can accept an item without
	// blocking. With a single producer, an Enqueue immediately after a nil
	// return will not block.
	AwaitAccepting(ctx context.Context) error

	// Dequeue removes and returns the oldest buffered item, blocking while
	// the buffer is empty or delivery is suspended. Returns ErrEndOfStream
	// once the buffer is empty after Close.
	Dequeue(ctx context.Context) (T, error)

	// TryDequeue removes the oldest buffered item without blocking. The
	// second return is false when nothing was dequeued; the error is
	// ErrEndOfStream when the channel is drained and closed.
	TryDequeue() (T, bool, error)

	// Close marks end-of-stream. Idempotent. Buffered items remain
	// dequeueable; pending Dequeue waiters observe ErrEndOfStream once the
	// buffer drains.
	Close() error

	// Suspend holds delivery: Dequeue blocks even while items are buffered.
	// A manual override layered on top of watermark backpressure; the
	// producer side is unaffected.
	Suspend()

	// Resume releases a Suspend hold.
	Resume()

	// Discard drops all buffered items without delivering them and returns
	// the number dropped.
	Discard() int

	// Len returns the current number of buffered items.
	Len() int

	// Cap returns the buffer capacity.
	Cap() int

	// Congested returns true while the channel is between the high and low
	// watermark transitions.
	Congested() bool

	// IsClosed returns true once end-of-stream has been marked.
	IsClosed() bool

	// Stats returns a snapshot of channel counters.
	Stats() Stats
}

// Stats holds counters describing channel activity.
type Stats struct {
	// Enqueued is the total number of items accepted.
	Enqueued int64

	// Dequeued is the total number of items delivered.
	Dequeued int64

	// Discarded is the total number of buffered items dropped by Discard.
	Discarded int64

	// CongestionEvents counts transitions into the Congested state.
	CongestionEvents int64

	// DrainEvents counts transitions out of the Congested state.
	DrainEvents int64

	// BlockedEnqueues counts Enqueue calls that had to wait.
	BlockedEnqueues int64

	// MaxDepth is the highest buffered count observed.
	MaxDepth int
}

// Config holds configuration for a bounded channel.
type Config struct {
	// Capacity is the maximum number of buffered items. Must be >= 1.
	Capacity int

	// HighWatermark is the buffered count at which the channel becomes
	// Congested. Defaults to Capacity; clamped to Capacity.
	HighWatermark int

	// LowWatermark is the buffered count at or below which a Congested
	// channel drains back to accepting. Defaults to HighWatermark / 2 and is
	// always kept at least 1 below HighWatermark.
	LowWatermark int

	// OnCongested is called on each transition into the Congested state,
	// from the enqueueing goroutine.
	OnCongested func()

	// OnDrained is called on each transition out of the Congested state,
	// from the dequeueing goroutine.
	OnDrained func()
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{Capacity: DefaultCapacity}
}

// Validate checks the configuration without applying defaults.
func (c Config) Validate() error {
	if err := validation.ValidatePositive("channel", "capacity", c.Capacity); err != nil {
		return err
	}
	if c.HighWatermark > c.Capacity {
		return pferrors.NewValidationError("channel", "highWatermark", c.HighWatermark, "cannot exceed capacity").
			WithHint("leave zero to default to capacity")
	}
	if err := validation.ValidateNonNegative("channel", "lowWatermark", c.LowWatermark); err != nil {
		return err
	}
	if c.HighWatermark > 0 && c.LowWatermark > 0 {
		if err := validation.ValidateBelow("channel", "lowWatermark", c.LowWatermark, c.HighWatermark); err != nil {
			return err
		}
	}
	return nil
}

// withDefaults normalizes the configuration the way New applies it.
func (c Config) withDefaults() Config {
	if c.Capacity <= 0 {
		c.Capacity = DefaultCapacity
	}
	if c.HighWatermark <= 0 || c.HighWatermark > c.Capacity {
		c.HighWatermark = c.Capacity
	}
	if c.LowWatermark <= 0 {
		c.LowWatermark = c.HighWatermark / 2
	}
	if c.LowWatermark >= c.HighWatermark {
		c.LowWatermark = c.HighWatermark - 1
	}
	return c
}

// bounded implements Channel with a circular buffer.
type bounded[T any] struct {
	config Config

	mu     sync.Mutex
	buffer []T
	head   int
	tail   int
	count  int

	congested bool
	suspended bool
	closed    bool

	// Broadcast-style wakeups: the current channel is closed and replaced
	// whenever the corresponding condition may have changed, so blocked
	// operations can also select on context cancellation.
	spaceCh chan struct{}
	itemCh  chan struct{}

	stats Stats
}

// New creates a bounded channel with the given capacity, high watermark at
// capacity and low watermark at capacity / 2.
func New[T any](capacity int) Channel[T] {
	return NewWithConfig[T](Config{Capacity: capacity})
}

// NewWithConfig creates a bounded channel, normalizing out-of-range
// configuration values to their defaults.
func NewWithConfig[T any](config Config) Channel[T] {
	config = config.withDefaults()
	return &bounded[T]{
		config:  config,
		buffer:  make([]T, config.Capacity),
		spaceCh: make(chan struct{}),
		itemCh:  make(chan struct{}),
	}
}

// NewWithConfigSafe creates a bounded channel, returning a validation error
// for out-of-range configuration instead of normalizing it.
func NewWithConfigSafe[T any](config Config) (Channel[T], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return NewWithConfig[T](config), nil
}

func (ch *bounded[T]) Enqueue(ctx context.Context, item T) error {
	blocked := false
	for {
		ch.mu.Lock()
		if ch.closed {
			ch.mu.Unlock()
			return ErrChannelClosed
		}
		if ch.acceptingLocked() {
			ch.pushLocked(item)
			ch.mu.Unlock()
			return nil
		}
		if !blocked {
			blocked = true
			ch.stats.BlockedEnqueues++
		}
		wait := ch.spaceCh
		ch.mu.Unlock()

		select {
		case <-wait:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (ch *bounded[T]) TryEnqueue(item T) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.closed {
		return ErrChannelClosed
	}
	if !ch.acceptingLocked() {
		return ErrCongested
	}
	ch.pushLocked(item)
	return nil
}

func (ch *bounded[T]) AwaitAccepting(ctx context.Context) error {
	for {
		ch.mu.Lock()
		if ch.closed {
			ch.mu.Unlock()
			return ErrChannelClosed
		}
		if ch.acceptingLocked() {
			ch.mu.Unlock()
			return nil
		}
		wait := ch.spaceCh
		ch.mu.Unlock()

		select {
		case <-wait:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (ch *bounded[T]) Dequeue(ctx context.Context) (T, error) {
	var zero T
	for {
		ch.mu.Lock()
		if !ch.suspended {
			if ch.count > 0 {
				item := ch.popLocked()
				ch.mu.Unlock()
				return item, nil
			}
			if ch.closed {
				ch.mu.Unlock()
				return zero, ErrEndOfStream
			}
		}
		wait := ch.itemCh
		ch.mu.Unlock()

		select {
		case <-wait:
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

func (ch *bounded[T]) TryDequeue() (T, bool, error) {
	var zero T

	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.suspended {
		return zero, false, nil
	}
	if ch.count > 0 {
		return ch.popLocked(), true, nil
	}
	if ch.closed {
		return zero, false, ErrEndOfStream
	}
	return zero, false, nil
}

func (ch *bounded[T]) Close() error {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.closed {
		return nil
	}
	ch.closed = true
	ch.notifySpaceLocked()
	ch.notifyItemLocked()
	return nil
}

func (ch *bounded[T]) Suspend() {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.suspended = true
}

func (ch *bounded[T]) Resume() {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if !ch.suspended {
		return
	}
	ch.suspended = false
	ch.notifyItemLocked()
}

func (ch *bounded[T]) Discard() int {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	dropped := ch.count
	var zero T
	for i := range ch.buffer {
		ch.buffer[i] = zero
	}
	ch.head, ch.tail, ch.count = 0, 0, 0
	ch.stats.Discarded += int64(dropped)
	ch.congested = false
	ch.notifySpaceLocked()
	return dropped
}

func (ch *bounded[T]) Len() int {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.count
}

func (ch *bounded[T]) Cap() int {
	return len(ch.buffer)
}

func (ch *bounded[T]) Congested() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.congested
}

func (ch *bounded[T]) IsClosed() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.closed
}

func (ch *bounded[T]) Stats() Stats {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.stats
}

// acceptingLocked reports whether an enqueue may proceed (must hold lock).
func (ch *bounded[T]) acceptingLocked() bool {
	return !ch.congested && ch.count < len(ch.buffer)
}

// pushLocked appends an item and applies the high watermark transition
// (must hold lock).
func (ch *bounded[T]) pushLocked(item T) {
	ch.buffer[ch.tail] = item
	ch.tail = (ch.tail + 1) % len(ch.buffer)
	ch.count++
	ch.stats.Enqueued++
	if ch.count > ch.stats.MaxDepth {
		ch.stats.MaxDepth = ch.count
	}

	if !ch.congested && ch.count >= ch.config.HighWatermark {
		ch.congested = true
		ch.stats.CongestionEvents++
		if ch.config.OnCongested != nil {
			ch.config.OnCongested()
		}
	}
	ch.notifyItemLocked()
}

// popLocked removes the oldest item and applies the low watermark transition
// (must hold lock).
func (ch *bounded[T]) popLocked() T {
	item := ch.buffer[ch.head]
	var zero T
	ch.buffer[ch.head] = zero
	ch.head = (ch.head + 1) % len(ch.buffer)
	ch.count--
	ch.stats.Dequeued++

	if ch.congested && ch.count <= ch.config.LowWatermark {
		ch.congested = false
		ch.stats.DrainEvents++
		if ch.config.OnDrained != nil {
			ch.config.OnDrained()
		}
	}
	ch.notifySpaceLocked()
	return item
}

func (ch *bounded[T]) notifySpaceLocked() {
	close(ch.spaceCh)
	ch.spaceCh = make(chan struct{})
}

func (ch *bounded[T]) notifyItemLocked() {
	close(ch.itemCh)
	ch.itemCh = make(chan struct{})
}

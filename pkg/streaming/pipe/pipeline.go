package pipe

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vnykmshr/pipeflow/pkg/common/validation"
	"github.com/vnykmshr/pipeflow/pkg/streaming/channel"
)

// State describes the lifecycle of a pipeline run.
type State int32

const (
	// StateIdle is the state before Run is called.
	StateIdle State = iota

	// StateRunning means the source is still producing.
	StateRunning

	// StateDraining means the source is exhausted and buffered items are
	// still flowing toward the sink.
	StateDraining

	// StateCompleted means every item was delivered and the sink was closed.
	StateCompleted

	// StateFailed means the run ended with an error or was cancelled.
	StateFailed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// terminal reports whether no further transitions are allowed.
func (s State) terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// Config holds pipeline configuration options.
type Config struct {
	// Name identifies the pipeline in metrics. Defaults to "pipeline".
	Name string

	// ChannelCapacity is the buffer capacity of each inter-segment channel.
	// Defaults to channel.DefaultCapacity.
	ChannelCapacity int

	// HighWatermark and LowWatermark configure congestion hysteresis on each
	// inter-segment channel; see the channel package for defaulting rules.
	HighWatermark int
	LowWatermark  int

	// OnStateChange is called on every run state transition.
	OnStateChange func(from, to State)

	// OnItemDelivered is called after each successful sink accept with the
	// running delivered count.
	OnItemDelivered func(delivered int64)

	// OnStageError is called when a stage fails, before the run is torn down.
	OnStageError func(stage string, err error)
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Name:            "pipeline",
		ChannelCapacity: channel.DefaultCapacity,
	}
}

// Stats holds statistics for one pipeline run.
type Stats struct {
	// ItemsProduced is the number of items pulled from the source.
	ItemsProduced int64

	// ItemsDelivered is the number of items accepted by the sink.
	ItemsDelivered int64

	// StageStats holds per-stage item counts, keyed by stage name.
	StageStats map[string]StageStats

	// Channels holds a snapshot of every inter-segment channel's counters,
	// ordered from source side to sink side.
	Channels []channel.Stats

	// State is the run state at the time of the snapshot.
	State State

	// StartTime and EndTime delimit the run; Duration is their difference.
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// StageStats holds statistics for an individual stage.
type StageStats struct {
	Name     string
	ItemsIn  int64
	ItemsOut int64
}

// Pipeline composes a Source, zero or more Stages and a Sink into a single
// driven unit. A pipeline owns the channels and stage instances for exactly
// one run and is not reusable afterward.
//
// Items traverse the pipeline strictly in production order. End-of-stream
// propagates only after every buffered item has drained through every stage
// and been accepted by the sink.
type Pipeline[T any] interface {
	// Run drives the pipeline to completion and returns its single terminal
	// outcome: nil after all items were delivered and the sink closed, or
	// the first error that stopped the run.
	Run(ctx context.Context) error

	// Pause suspends delivery to the sink. Upstream segments keep producing
	// and buffering until watermark backpressure stops them; pausing does
	// not halt the source.
	Pause()

	// Resume releases a Pause.
	Resume()

	// Cancel stops the run: buffered items are discarded without delivery,
	// no further source, stage or sink calls are issued, and Run returns
	// ErrCancelled. In-flight calls are allowed to finish.
	Cancel()

	// State returns the current run state.
	State() State

	// Stats returns a snapshot of run statistics.
	Stats() Stats
}

// pipeline implements Pipeline with one worker goroutine per segment.
type pipeline[T any] struct {
	config Config
	source Source[T]
	stages []Stage[T]
	sink   Sink[T]

	mu        sync.Mutex
	state     State
	started   bool
	cancelled bool
	paused    bool
	runErr    error
	cancelRun context.CancelFunc
	channels  []channel.Channel[T]
	stats     Stats
}

// New creates a pipeline over the given source, sink and stages. The
// configuration is normalized the same way the channel package normalizes
// its watermarks.
func New[T any](config Config, source Source[T], sink Sink[T], stages ...Stage[T]) Pipeline[T] {
	if config.Name == "" {
		config.Name = DefaultConfig().Name
	}
	return &pipeline[T]{
		config: config,
		source: source,
		sink:   sink,
		stages: stages,
		state:  StateIdle,
		stats: Stats{
			StageStats: make(map[string]StageStats),
		},
	}
}

func (p *pipeline[T]) Run(ctx context.Context) error {
	if err := p.start(); err != nil {
		return err
	}

	p.mu.Lock()
	if p.cancelled {
		now := time.Now()
		p.stats.StartTime = now
		p.stats.EndTime = now
		p.mu.Unlock()
		p.setState(StateFailed)
		return ErrCancelled
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancelRun = cancel

	chanConfig := channel.Config{
		Capacity:      p.config.ChannelCapacity,
		HighWatermark: p.config.HighWatermark,
		LowWatermark:  p.config.LowWatermark,
	}
	p.channels = make([]channel.Channel[T], len(p.stages)+1)
	for i := range p.channels {
		p.channels[i] = channel.NewWithConfig[T](chanConfig)
	}
	for _, st := range p.stages {
		p.stats.StageStats[st.Name()] = StageStats{Name: st.Name()}
	}
	if p.paused {
		p.channels[len(p.channels)-1].Suspend()
	}
	p.stats.StartTime = time.Now()
	channels := p.channels
	p.mu.Unlock()

	defer cancel()
	p.setState(StateRunning)

	var wg sync.WaitGroup
	wg.Add(2 + len(p.stages))
	go p.runSource(runCtx, &wg, channels[0])
	for i, st := range p.stages {
		go p.runStage(runCtx, &wg, st, channels[i], channels[i+1])
	}
	go p.runSink(runCtx, &wg, channels[len(channels)-1])
	wg.Wait()

	p.mu.Lock()
	p.stats.EndTime = time.Now()
	p.stats.Duration = p.stats.EndTime.Sub(p.stats.StartTime)
	if p.runErr == nil && ctx.Err() != nil {
		p.runErr = ctx.Err()
	}
	err := p.runErr
	p.mu.Unlock()

	if err != nil {
		p.setState(StateFailed)
		return err
	}
	p.setState(StateCompleted)
	return nil
}

// start validates collaborators and claims the single run.
func (p *pipeline[T]) start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return ErrAlreadyStarted
	}
	if err := validation.ValidateNotNil("pipe", "source", p.source); err != nil {
		return err
	}
	if err := validation.ValidateNotNil("pipe", "sink", p.sink); err != nil {
		return err
	}
	p.started = true
	return nil
}

// runSource pulls items from the source into the first channel. Fresh items
// are pulled only while the channel accepts, so total production stays
// bounded by buffer capacity plus items already consumed downstream.
func (p *pipeline[T]) runSource(ctx context.Context, wg *sync.WaitGroup, out channel.Channel[T]) {
	defer wg.Done()

	for {
		if err := out.AwaitAccepting(ctx); err != nil {
			// Channel closed by a failure elsewhere, or context canceled.
			return
		}

		item, ok, err := p.source.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.fail(&SourceError{Cause: err})
			return
		}
		if !ok {
			p.beginDraining()
			_ = out.Close()
			return
		}

		p.mu.Lock()
		p.stats.ItemsProduced++
		p.mu.Unlock()

		if err := out.Enqueue(ctx, item); err != nil {
			if ctx.Err() != nil || p.isCancelled() {
				return
			}
			// Enqueue after end-of-stream: contract violation, fatal.
			p.fail(err)
			return
		}
	}
}

// runStage applies one stage between two channels until end-of-stream.
func (p *pipeline[T]) runStage(ctx context.Context, wg *sync.WaitGroup, st Stage[T], in, out channel.Channel[T]) {
	defer wg.Done()

	for {
		item, err := in.Dequeue(ctx)
		if errors.Is(err, channel.ErrEndOfStream) {
			_ = out.Close()
			return
		}
		if err != nil {
			return
		}

		p.recordStageIn(st.Name())

		outputs, err := st.Apply(ctx, item)
		if err != nil {
			if p.config.OnStageError != nil {
				p.config.OnStageError(st.Name(), err)
			}
			p.fail(&StageError{Stage: st.Name(), Cause: err})
			return
		}

		for _, output := range outputs {
			if err := out.Enqueue(ctx, output); err != nil {
				if ctx.Err() != nil || p.isCancelled() {
					return
				}
				p.fail(err)
				return
			}
			p.recordStageOut(st.Name())
		}
	}
}

// runSink delivers items to the sink and closes it after a clean drain.
func (p *pipeline[T]) runSink(ctx context.Context, wg *sync.WaitGroup, in channel.Channel[T]) {
	defer wg.Done()

	for {
		item, err := in.Dequeue(ctx)
		if errors.Is(err, channel.ErrEndOfStream) {
			if p.hasFailed() {
				// Failure or cancellation path: the sink gets no Close call.
				return
			}
			if cerr := p.sink.Close(ctx); cerr != nil {
				p.fail(&SinkError{Cause: cerr})
			}
			return
		}
		if err != nil {
			return
		}

		if err := p.sink.Accept(ctx, item); err != nil {
			p.fail(&SinkError{Cause: err})
			return
		}

		p.mu.Lock()
		p.stats.ItemsDelivered++
		delivered := p.stats.ItemsDelivered
		p.mu.Unlock()
		if p.config.OnItemDelivered != nil {
			p.config.OnItemDelivered(delivered)
		}
	}
}

func (p *pipeline[T]) Pause() {
	p.mu.Lock()
	p.paused = true
	var sinkCh channel.Channel[T]
	if len(p.channels) > 0 {
		sinkCh = p.channels[len(p.channels)-1]
	}
	p.mu.Unlock()

	if sinkCh != nil {
		sinkCh.Suspend()
	}
}

func (p *pipeline[T]) Resume() {
	p.mu.Lock()
	p.paused = false
	var sinkCh channel.Channel[T]
	if len(p.channels) > 0 {
		sinkCh = p.channels[len(p.channels)-1]
	}
	p.mu.Unlock()

	if sinkCh != nil {
		sinkCh.Resume()
	}
}

func (p *pipeline[T]) Cancel() {
	p.mu.Lock()
	if p.cancelled {
		p.mu.Unlock()
		return
	}
	p.cancelled = true
	p.mu.Unlock()

	p.fail(ErrCancelled)
}

func (p *pipeline[T]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *pipeline[T]) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot := p.stats
	snapshot.State = p.state
	snapshot.StageStats = make(map[string]StageStats, len(p.stats.StageStats))
	for name, ss := range p.stats.StageStats {
		snapshot.StageStats[name] = ss
	}
	snapshot.Channels = make([]channel.Stats, len(p.channels))
	for i, ch := range p.channels {
		snapshot.Channels[i] = ch.Stats()
	}
	return snapshot
}

// fail records the first terminal error and tears the run down: the run
// context is canceled and every channel is closed and emptied so no further
// items reach downstream segments.
func (p *pipeline[T]) fail(err error) {
	p.mu.Lock()
	if p.runErr == nil {
		p.runErr = err
	}
	cancel := p.cancelRun
	channels := p.channels
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	for _, ch := range channels {
		_ = ch.Close()
		ch.Discard()
	}
}

func (p *pipeline[T]) hasFailed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runErr != nil
}

func (p *pipeline[T]) isCancelled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancelled
}

// beginDraining marks the transition from Running once the source reports
// end of input.
func (p *pipeline[T]) beginDraining() {
	p.setState(StateDraining)
}

func (p *pipeline[T]) setState(next State) {
	p.mu.Lock()
	if p.state == next || p.state.terminal() {
		p.mu.Unlock()
		return
	}
	prev := p.state
	p.state = next
	p.stats.State = next
	cb := p.config.OnStateChange
	p.mu.Unlock()

	if cb != nil {
		cb(prev, next)
	}
}

func (p *pipeline[T]) recordStageIn(name string) {
	p.mu.Lock()
	ss := p.stats.StageStats[name]
	ss.ItemsIn++
	p.stats.StageStats[name] = ss
	p.mu.Unlock()
}

func (p *pipeline[T]) recordStageOut(name string) {
	p.mu.Lock()
	ss := p.stats.StageStats[name]
	ss.ItemsOut++
	p.stats.StageStats[name] = ss
	p.mu.Unlock()
}

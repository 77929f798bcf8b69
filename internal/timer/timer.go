package timer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"stopwatch_tui/internal/clock"
	"stopwatch_tui/internal/frame"
)

// Stopwatch is the control and observation surface of a stopwatch.
type Stopwatch interface {
	StartOrPause()
	Clear()
	Running() bool
	Time() string
	Elapsed() int64
	ObserveTime(fn func(string)) (cancel func())
	ObserveRunning(fn func(bool)) (cancel func())
}

type Option func(*Engine)

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// Engine is a Stopwatch sampling a clock.Source once per frame while running.
//
// State is guarded by mu, which is also held while observers run. Callbacks
// may read Time, Running and Elapsed but must not call StartOrPause or Clear.
type Engine struct {
	clock  clock.Source
	frames frame.Scheduler
	log    *zap.Logger

	mu      sync.Mutex
	elapsed int64
	anchor  int64
	running bool
	gen     uint64
	cancel  context.CancelFunc

	timeObservers    []timeObserver
	runningObservers []runningObserver
	nextObserver     int

	// Published snapshots, readable without mu.
	publishedElapsed atomic.Int64
	publishedRunning atomic.Bool
}

type timeObserver struct {
	id int
	fn func(string)
}

type runningObserver struct {
	id int
	fn func(bool)
}

func New(src clock.Source, frames frame.Scheduler, opts ...Option) *Engine {
	e := &Engine{
		clock:  src,
		frames: frames,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if now, err := e.uptime(); err == nil {
		e.anchor = now
	} else {
		e.log.Error("reading clock at construction", zap.Error(err))
	}
	return e
}

// StartOrPause pauses a running stopwatch, or starts a paused one keeping the
// time already accumulated. Starting samples the clock once before returning.
func (e *Engine) StartOrPause() {
	e.mu.Lock()

	if e.running {
		e.running = false
		e.stopLoopLocked()
		e.commit(e.runningChangedLocked())
		e.log.Debug("paused", zap.Int64("elapsed_ms", e.Elapsed()))
		return
	}

	now, err := e.uptime()
	if err != nil {
		e.mu.Unlock()
		e.log.Error("start aborted", zap.Error(err))
		return
	}

	e.anchor = now - e.elapsed
	e.running = true
	ctx, cancel := context.WithCancel(context.Background())
	e.gen++
	gen := e.gen
	e.cancel = cancel

	pending := []func(){e.runningChangedLocked()}
	if notify, ok := e.sampleLocked(); ok {
		pending = append(pending, notify)
	}
	e.commit(pending...)
	e.log.Debug("started", zap.Uint64("generation", gen))

	go e.loop(ctx, gen)
}

// Clear resets the elapsed time to zero without changing the running state.
func (e *Engine) Clear() {
	e.mu.Lock()

	now, err := e.uptime()
	if err != nil {
		e.mu.Unlock()
		e.log.Error("clear aborted", zap.Error(err))
		return
	}

	e.anchor = now
	e.elapsed = 0
	e.commit(e.timeChangedLocked())
}

// Close stops the tick loop, if any. The published state is left as is.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLoopLocked()
}

func (e *Engine) Running() bool {
	return e.publishedRunning.Load()
}

func (e *Engine) Elapsed() int64 {
	return e.publishedElapsed.Load()
}

func (e *Engine) Time() string {
	return Format(e.Elapsed())
}

// ObserveTime registers fn for formatted time updates. fn receives the
// current value before ObserveTime returns.
func (e *Engine) ObserveTime(fn func(string)) func() {
	e.mu.Lock()
	e.nextObserver++
	id := e.nextObserver
	e.timeObservers = append(e.timeObservers, timeObserver{id: id, fn: fn})
	value := Format(e.elapsed)
	e.commit(func() { fn(value) })

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, o := range e.timeObservers {
			if o.id == id {
				e.timeObservers = append(e.timeObservers[:i], e.timeObservers[i+1:]...)
				return
			}
		}
	}
}

// ObserveRunning registers fn for running state updates. fn receives the
// current value before ObserveRunning returns.
func (e *Engine) ObserveRunning(fn func(bool)) func() {
	e.mu.Lock()
	e.nextObserver++
	id := e.nextObserver
	e.runningObservers = append(e.runningObservers, runningObserver{id: id, fn: fn})
	value := e.running
	e.commit(func() { fn(value) })

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, o := range e.runningObservers {
			if o.id == id {
				e.runningObservers = append(e.runningObservers[:i], e.runningObservers[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine) loop(ctx context.Context, gen uint64) {
	for {
		if err := e.frames.AwaitFrame(ctx); err != nil {
			if !errors.Is(err, context.Canceled) {
				e.log.Warn("frame scheduler stopped", zap.Error(err))
			}
			return
		}
		if !e.tick(gen) {
			return
		}
	}
}

// tick reports whether the loop for gen is still current.
func (e *Engine) tick(gen uint64) bool {
	e.mu.Lock()
	if gen != e.gen || !e.running {
		e.mu.Unlock()
		return false
	}
	notify, ok := e.sampleLocked()
	if !ok {
		e.mu.Unlock()
		return true
	}
	e.commit(notify)
	return true
}

// sampleLocked moves elapsed to the current clock reading. The update is
// all-or-nothing: on a failed or backwards reading nothing is written.
func (e *Engine) sampleLocked() (func(), bool) {
	now, err := e.uptime()
	if err != nil {
		e.log.Error("tick skipped", zap.Error(err))
		return nil, false
	}
	elapsed := now - e.anchor
	if elapsed < e.elapsed {
		e.log.Warn("clock went backwards, tick skipped",
			zap.Int64("uptime_ms", now),
			zap.Int64("anchor_ms", e.anchor),
			zap.Int64("elapsed_ms", e.elapsed))
		return nil, false
	}
	e.elapsed = elapsed
	return e.timeChangedLocked(), true
}

func (e *Engine) stopLoopLocked() {
	e.gen++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

func (e *Engine) uptime() (ms int64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("clock source panicked: %v", r)
		}
	}()
	return e.clock.UptimeMillis(), nil
}

func (e *Engine) timeChangedLocked() func() {
	e.publishedElapsed.Store(e.elapsed)
	value := Format(e.elapsed)
	observers := make([]timeObserver, len(e.timeObservers))
	copy(observers, e.timeObservers)
	return func() {
		for _, o := range observers {
			o.fn(value)
		}
	}
}

func (e *Engine) runningChangedLocked() func() {
	e.publishedRunning.Store(e.running)
	value := e.running
	observers := make([]runningObserver, len(e.runningObservers))
	copy(observers, e.runningObservers)
	return func() {
		for _, o := range observers {
			o.fn(value)
		}
	}
}

// commit runs the notifications in order, then releases mu.
func (e *Engine) commit(notify ...func()) {
	defer e.mu.Unlock()
	for _, fn := range notify {
		fn()
	}
}

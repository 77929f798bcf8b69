package frame

import (
	"context"
	"time"
)

// Scheduler paces a loop at display refresh cadence.
type Scheduler interface {
	// AwaitFrame blocks until the next refresh tick. It returns ctx.Err()
	// if ctx is cancelled first.
	AwaitFrame(ctx context.Context) error
}

// Ticker delivers frames at a fixed rate. A frame missed by a slow consumer
// is dropped, not queued.
type Ticker struct {
	ticker *time.Ticker
}

// NewTicker returns a Ticker firing rate times per second. rate must be
// positive.
func NewTicker(rate int) *Ticker {
	return &Ticker{ticker: time.NewTicker(Interval(rate))}
}

// Interval is the frame period for a rate in frames per second.
func Interval(rate int) time.Duration {
	if rate <= 0 {
		rate = 1
	}
	return time.Second / time.Duration(rate)
}

func (t *Ticker) AwaitFrame(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.ticker.C:
		return nil
	}
}

func (t *Ticker) Stop() {
	t.ticker.Stop()
}

// Manual hands out frames on demand. Each call to Frame is a rendezvous with
// exactly one waiter.
type Manual struct {
	frames chan struct{}
}

func NewManual() *Manual {
	return &Manual{frames: make(chan struct{})}
}

func (m *Manual) AwaitFrame(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-m.frames:
		return nil
	}
}

// Frame releases one waiter. It reports false if nobody was waiting within
// timeout.
func (m *Manual) Frame(timeout time.Duration) bool {
	select {
	case m.frames <- struct{}{}:
		return true
	case <-time.After(timeout):
		return false
	}
}

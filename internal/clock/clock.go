package clock

import (
	"sync"
	"time"
)

// Source supplies monotonic millisecond readings from an arbitrary but fixed
// epoch. Readings never go backwards.
type Source interface {
	UptimeMillis() int64
}

// System reads the process monotonic clock. The epoch is the moment the
// System was created.
type System struct {
	epoch time.Time
}

func NewSystem() *System {
	return &System{epoch: time.Now()}
}

func (s *System) UptimeMillis() int64 {
	return time.Since(s.epoch).Milliseconds()
}

// Fake is a manually driven Source for tests.
type Fake struct {
	mu  sync.Mutex
	now int64
}

func NewFake(start int64) *Fake {
	return &Fake{now: start}
}

func (f *Fake) UptimeMillis() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Set(ms int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = ms
}

func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now += d.Milliseconds()
}

// Func adapts a plain function to Source.
type Func func() int64

func (fn Func) UptimeMillis() int64 {
	return fn()
}

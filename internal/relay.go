package internal

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"stopwatch_tui/internal/timer"
)

// Relay forwards stopwatch updates into a bubbletea program. Observers run
// while the engine holds its lock and Program.Send blocks until the event
// loop reads, so updates are parked here and sent from a separate goroutine.
// Only the latest value of each kind is kept.
type Relay struct {
	send func(tea.Msg)

	mu      sync.Mutex
	time    *string
	running *bool

	wake    chan struct{}
	done    chan struct{}
	stopped chan struct{}
	cancels []func()
	once    sync.Once
}

func NewRelay(sw timer.Stopwatch, send func(tea.Msg)) *Relay {
	r := &Relay{
		send:    send,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go r.pump()
	r.cancels = append(r.cancels,
		sw.ObserveRunning(r.onRunning),
		sw.ObserveTime(r.onTime),
	)
	return r
}

func (r *Relay) onTime(v string) {
	r.mu.Lock()
	r.time = &v
	r.mu.Unlock()
	r.notify()
}

func (r *Relay) onRunning(v bool) {
	r.mu.Lock()
	r.running = &v
	r.mu.Unlock()
	r.notify()
}

func (r *Relay) notify() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (r *Relay) pump() {
	defer close(r.stopped)
	for {
		select {
		case <-r.done:
			return
		case <-r.wake:
		}

		r.mu.Lock()
		running, time := r.running, r.time
		r.running, r.time = nil, nil
		r.mu.Unlock()

		// Order is irrelevant: each message carries the latest absolute value
		// of its own field, and the rendered time does not depend on the
		// running flag.
		if running != nil {
			r.send(MsgRunning{Running: *running})
		}
		if time != nil {
			r.send(MsgTime{Value: *time})
		}
	}
}

// Close unsubscribes from the stopwatch and waits for the pump to stop. It
// relies on send returning once the program has exited, as Program.Send does.
func (r *Relay) Close() {
	r.once.Do(func() {
		for _, cancel := range r.cancels {
			cancel()
		}
		close(r.done)
		<-r.stopped
	})
}

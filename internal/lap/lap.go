package lap

import (
	"time"

	"github.com/google/uuid"
)

// Lap is a split recorded while the stopwatch runs. Laps belong to a session,
// the span between two clears.
type Lap struct {
	ID         int64
	SessionID  string
	Number     int
	Elapsed    time.Duration
	Display    string
	Tag        string
	RecordedAt time.Time
}

// NewSessionID returns an identifier for a new lap session.
func NewSessionID() string {
	return uuid.NewString()
}

// Split is the time since the previous lap, or the full elapsed time for the
// first one. laps is ordered newest first.
func Split(l Lap, laps []Lap) time.Duration {
	for _, prev := range laps {
		if prev.SessionID == l.SessionID && prev.Number == l.Number-1 {
			return l.Elapsed - prev.Elapsed
		}
	}
	return l.Elapsed
}

package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSystemIsMonotonic(t *testing.T) {
	s := NewSystem()

	prev := s.UptimeMillis()
	require.GreaterOrEqual(t, prev, int64(0))
	for i := 0; i < 100; i++ {
		cur := s.UptimeMillis()
		require.GreaterOrEqual(t, cur, prev, "clock went backwards")
		prev = cur
	}
}

func TestSystemAdvances(t *testing.T) {
	s := NewSystem()
	start := s.UptimeMillis()
	time.Sleep(20 * time.Millisecond)
	require.GreaterOrEqual(t, s.UptimeMillis()-start, int64(20))
}

func TestFake(t *testing.T) {
	f := NewFake(1711065600000)
	require.Equal(t, int64(1711065600000), f.UptimeMillis())

	f.Advance(1500 * time.Millisecond)
	require.Equal(t, int64(1711065601500), f.UptimeMillis())

	f.Set(42)
	require.Equal(t, int64(42), f.UptimeMillis())
}

func TestFunc(t *testing.T) {
	calls := 0
	src := Func(func() int64 {
		calls++
		return int64(calls * 10)
	})

	require.Equal(t, int64(10), src.UptimeMillis())
	require.Equal(t, int64(20), src.UptimeMillis())
}

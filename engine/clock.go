package engine

import (
	"math"
	"sync/atomic"
	"time"
)

// TimeProvider supplies the current time to runners and input sources
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock, including its monotonic component
type MonotonicTimeProvider struct{}

func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// ManualClock only moves when advanced, for tests and headless playback
// Time never runs backwards; negative advances are ignored
type ManualClock struct {
	epoch   time.Time
	elapsed atomic.Int64 // nanoseconds since epoch
}

func NewManualClock(epoch time.Time) *ManualClock {
	return &ManualClock{epoch: epoch}
}

func (c *ManualClock) Now() time.Time {
	return c.epoch.Add(c.Elapsed())
}

// Elapsed returns the time advanced since the epoch or the last Reset
func (c *ManualClock) Elapsed() time.Duration {
	return time.Duration(c.elapsed.Load())
}

func (c *ManualClock) Advance(d time.Duration) {
	if d > 0 {
		c.elapsed.Add(int64(d))
	}
}

// Step advances by a simulation delta in seconds
func (c *ManualClock) Step(dt float64) {
	c.Advance(SecondsToDuration(dt))
}

// Reset returns the clock to its epoch
func (c *ManualClock) Reset() {
	c.elapsed.Store(0)
}

// SecondsToDuration converts simulation seconds, non-finite input yields 0
func SecondsToDuration(s float64) time.Duration {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

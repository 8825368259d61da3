package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// FrameHook observes each completed frame, e.g. for rendering or telemetry
type FrameHook func(stats Stats)

// Runner drives a Loop in real time from a ticker
// Frame deltas come from the TimeProvider, so a PausableClock freezes the simulation
type Runner struct {
	loop     *Loop
	clock    TimeProvider
	interval time.Duration
	hook     FrameHook
	logger   zerolog.Logger

	last time.Time
}

// NewRunner creates a runner ticking at interval
func NewRunner(loop *Loop, clock TimeProvider, interval time.Duration, hook FrameHook, logger zerolog.Logger) *Runner {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &Runner{
		loop:     loop,
		clock:    clock,
		interval: interval,
		hook:     hook,
		logger:   logger.With().Str("component", "runner").Logger(),
	}
}

// Tick advances the loop by the clock time elapsed since the previous Tick
// The first Tick only establishes the time base
func (r *Runner) Tick() Stats {
	now := r.clock.Now()
	if r.last.IsZero() {
		r.last = now
		return Stats{}
	}
	dt := now.Sub(r.last).Seconds()
	r.last = now

	stats := r.loop.Advance(dt)
	if r.hook != nil && stats.FrameDt > 0 {
		r.hook(stats)
	}
	return stats
}

// Run ticks until ctx is cancelled
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info().Dur("interval", r.interval).Msg("runner started")
	r.Tick()
	for {
		select {
		case <-ctx.Done():
			frames, steps := r.loop.Counts()
			r.logger.Info().Uint64("frames", frames).Uint64("physics_steps", steps).Msg("runner stopped")
			return ctx.Err()
		case <-ticker.C:
			r.Tick()
		}
	}
}

package engine

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/trickbike/parameter"
	"github.com/lixenwraith/trickbike/vmath"
)

// FrameStepper runs once per variable-rate frame tick
type FrameStepper interface {
	FrameTick(dt float64)
}

// PhysicsStepper runs once per fixed physics tick, before the provider integrates
type PhysicsStepper interface {
	PhysicsTick(dt float64)
}

// Integrator is the physics provider step
type Integrator interface {
	Step(dt float64)
}

// Settings configures the two-rate loop
type Settings struct {
	FixedTimeStep float64 `mapstructure:"fixed_time_step"`
	MaxSubSteps   int     `mapstructure:"max_sub_steps"`
	MaxFrameDelta float64 `mapstructure:"max_frame_delta"`
	FrameRate     int     `mapstructure:"frame_rate"`
}

// DefaultSettings returns the stock loop timing
func DefaultSettings() Settings {
	return Settings{
		FixedTimeStep: parameter.FixedTimeStep,
		MaxSubSteps:   parameter.MaxSubSteps,
		MaxFrameDelta: parameter.MaxFrameDelta,
		FrameRate:     int(math.Round(1 / parameter.FrameUpdateInterval.Seconds())),
	}
}

// Validate checks loop timing
func (s Settings) Validate() error {
	if !(s.FixedTimeStep > 0) {
		return fmt.Errorf("fixed_time_step must be positive, got %v", s.FixedTimeStep)
	}
	if s.MaxSubSteps < 1 {
		return fmt.Errorf("max_sub_steps must be at least 1, got %d", s.MaxSubSteps)
	}
	if s.MaxFrameDelta < s.FixedTimeStep {
		return fmt.Errorf("max_frame_delta %v is below fixed_time_step %v", s.MaxFrameDelta, s.FixedTimeStep)
	}
	if s.FrameRate < 1 {
		return fmt.Errorf("frame_rate must be at least 1, got %d", s.FrameRate)
	}
	return nil
}

// Stats reports what one Advance did
type Stats struct {
	FrameDt      float64
	PhysicsSteps int
	Dropped      float64 // seconds of accumulated time discarded by the sub-step cap
	Alpha        float64 // interpolation factor between the last two physics states
}

// Loop is a single-threaded two-rate cooperative scheduler
// Every frame tick runs before the physics steps it enables, so a physics
// tick always consumes fully resolved input
type Loop struct {
	settings Settings
	logger   zerolog.Logger

	frame      []FrameStepper
	physics    []PhysicsStepper
	integrator Integrator

	accumulator  float64
	alpha        float64
	frameCount   uint64
	physicsCount uint64
}

// NewLoop creates a loop over the given integrator
func NewLoop(settings Settings, integrator Integrator, logger zerolog.Logger) (*Loop, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("loop settings: %w", err)
	}
	return &Loop{
		settings:   settings,
		integrator: integrator,
		logger:     logger.With().Str("component", "loop").Logger(),
	}, nil
}

// AddFrame registers frame steppers, run in registration order
func (l *Loop) AddFrame(steppers ...FrameStepper) {
	l.frame = append(l.frame, steppers...)
}

// AddPhysics registers physics steppers, run in registration order
func (l *Loop) AddPhysics(steppers ...PhysicsStepper) {
	l.physics = append(l.physics, steppers...)
}

// FixedTimeStep returns the physics tick duration in seconds
func (l *Loop) FixedTimeStep() float64 {
	return l.settings.FixedTimeStep
}

// Alpha returns the interpolation factor left after the last Advance
func (l *Loop) Alpha() float64 {
	return l.alpha
}

// Counts returns total frame and physics ticks executed
func (l *Loop) Counts() (frames, physics uint64) {
	return l.frameCount, l.physicsCount
}

// Advance runs one frame tick of frameDt seconds followed by zero or more fixed physics steps
// Non-finite or non-positive deltas are ignored; oversized deltas are clamped
func (l *Loop) Advance(frameDt float64) Stats {
	dt := vmath.Clamp(vmath.Sanitize(frameDt, 0), 0, l.settings.MaxFrameDelta)
	if dt <= 0 {
		return Stats{Alpha: l.alpha}
	}
	stats := Stats{FrameDt: dt}

	for _, f := range l.frame {
		f.FrameTick(dt)
	}
	l.frameCount++

	fixed := l.settings.FixedTimeStep
	l.accumulator += dt
	// Tolerance absorbs float drift so 50 frames of 0.02 yield 50 steps
	for l.accumulator+1e-9 >= fixed {
		if stats.PhysicsSteps >= l.settings.MaxSubSteps {
			stats.Dropped = l.accumulator
			l.accumulator = 0
			l.logger.Debug().
				Float64("dropped", stats.Dropped).
				Int("steps", stats.PhysicsSteps).
				Msg("physics falling behind, dropping accumulated time")
			break
		}
		for _, p := range l.physics {
			p.PhysicsTick(fixed)
		}
		if l.integrator != nil {
			l.integrator.Step(fixed)
		}
		l.accumulator -= fixed
		stats.PhysicsSteps++
		l.physicsCount++
	}
	if l.accumulator < 0 {
		l.accumulator = 0
	}

	l.alpha = l.accumulator / fixed
	stats.Alpha = l.alpha
	return stats
}

// Reset clears accumulated time without touching registered steppers
func (l *Loop) Reset() {
	l.accumulator = 0
	l.alpha = 0
}

package input

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Step is one timed segment of a scripted input sequence
type Step struct {
	Duration float64    `mapstructure:"duration"` // seconds
	Axis     [2]float64 `mapstructure:"axis"`
	Primary  bool       `mapstructure:"primary"`
	Boost    bool       `mapstructure:"boost"`

	// Gesture steps drive an internal joystick to Stick instead of using Axis
	Gesture bool       `mapstructure:"gesture"`
	Stick   [2]float64 `mapstructure:"stick"`
}

// Script is a deterministic Source replaying timed steps
// Time advances only through Advance, so playback is independent of wall clock
type Script struct {
	steps    []Step
	elapsed  float64
	stepEnds []float64
	loop     bool

	joystick  *Joystick
	lastStick *mgl64.Vec2
}

// NewScript validates steps and builds a script source
func NewScript(steps []Step, loop bool, joy JoystickConfig) (*Script, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("script has no steps")
	}
	ends := make([]float64, len(steps))
	total := 0.0
	for i, s := range steps {
		if s.Duration <= 0 {
			return nil, fmt.Errorf("step %d: duration must be positive, got %v", i, s.Duration)
		}
		total += s.Duration
		ends[i] = total
	}
	// Unit radius: stick values are already normalized
	joy.Radius = 1
	return &Script{
		steps:    steps,
		stepEnds: ends,
		loop:     loop,
		joystick: NewJoystick(joy),
	}, nil
}

// SetActionThreshold forwards to the joystick driven by gesture steps
func (s *Script) SetActionThreshold(v float64) { s.joystick.SetActionThreshold(v) }

// Duration returns the total scripted time
func (s *Script) Duration() float64 {
	return s.stepEnds[len(s.stepEnds)-1]
}

// Done reports whether a non-looping script has run past its last step
func (s *Script) Done() bool {
	return !s.loop && s.elapsed >= s.Duration()
}

// Elapsed returns scripted time consumed so far
func (s *Script) Elapsed() float64 {
	return s.elapsed
}

// Advance moves script time forward by dt seconds
func (s *Script) Advance(dt float64) {
	if dt > 0 {
		s.elapsed += dt
	}
}

// current returns the active step index, -1 once a non-looping script is done
func (s *Script) current() int {
	t := s.elapsed
	if s.loop {
		for t >= s.Duration() {
			t -= s.Duration()
		}
	}
	for i, end := range s.stepEnds {
		if t < end {
			return i
		}
	}
	return -1
}

// Poll implements Source; a finished script yields neutral input
func (s *Script) Poll() Frame {
	i := s.current()
	if i < 0 {
		s.releaseStick()
		return Frame{}
	}
	step := s.steps[i]
	if !step.Gesture {
		s.releaseStick()
		return Frame{
			Axis:    mgl64.Vec2{step.Axis[0], step.Axis[1]},
			Primary: step.Primary,
			Boost:   step.Boost,
		}
	}

	stick := mgl64.Vec2{step.Stick[0], step.Stick[1]}
	if s.lastStick == nil {
		s.joystick.Press(mgl64.Vec2{})
	}
	if s.lastStick == nil || *s.lastStick != stick {
		s.joystick.Drag(stick)
	}
	s.lastStick = &stick
	return s.joystick.Poll()
}

func (s *Script) releaseStick() {
	if s.lastStick != nil {
		s.joystick.Release()
		s.joystick.Poll()
		s.lastStick = nil
	}
}

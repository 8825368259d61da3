package input

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/trickbike/parameter"
	"github.com/lixenwraith/trickbike/vmath"
)

// JoystickConfig holds gesture classification settings
type JoystickConfig struct {
	Deadzone        float64 `mapstructure:"deadzone"`
	SectorAngle     float64 `mapstructure:"sector_angle"`
	ActionThreshold float64 `mapstructure:"action_threshold"`
	Radius          float64 `mapstructure:"radius"`
}

// DefaultJoystickConfig returns the stock gesture settings
func DefaultJoystickConfig() JoystickConfig {
	return JoystickConfig{
		Deadzone:        parameter.JoystickDeadzone,
		SectorAngle:     parameter.JoystickSectorAngle,
		ActionThreshold: parameter.JoystickActionThreshold,
		Radius:          parameter.JoystickRadius,
	}
}

// GestureState is the classification latch of the joystick machine
type GestureState uint8

const (
	GestureIdle   GestureState = iota // pointer up
	GestureSteer                      // steering from the side sectors, reclassified every drag
	GestureLocked                     // nitro or charge latched until the stick returns to the deadzone
)

type pointerKind uint8

const (
	pointerPress pointerKind = iota
	pointerDrag
	pointerRelease
)

type pointerEvent struct {
	kind pointerKind
	pos  mgl64.Vec2
}

// Joystick is a polled gesture state machine
// Pointer callbacks only enqueue; classification happens in Poll on the simulation thread
// Positions are in a y-up pad space, Radius maps drag distance to full deflection
type Joystick struct {
	cfg JoystickConfig

	mu      sync.Mutex
	queue   []pointerEvent
	dropped uint64

	// Owned by the polling thread
	active bool
	origin mgl64.Vec2
	raw    mgl64.Vec2
	state  GestureState
	out    Gesture
}

// NewJoystick creates a joystick with the given settings
func NewJoystick(cfg JoystickConfig) *Joystick {
	if cfg.Radius <= 0 {
		cfg.Radius = parameter.JoystickRadius
	}
	return &Joystick{
		cfg:   cfg,
		queue: make([]pointerEvent, 0, parameter.JoystickQueueSize),
	}
}

// SetActionThreshold overrides the sector magnitude threshold
func (j *Joystick) SetActionThreshold(v float64) {
	j.mu.Lock()
	j.cfg.ActionThreshold = v
	j.mu.Unlock()
}

// ActionThreshold returns the sector magnitude threshold
func (j *Joystick) ActionThreshold() float64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.cfg.ActionThreshold
}

// Press starts a gesture centered at pos
func (j *Joystick) Press(pos mgl64.Vec2) { j.enqueue(pointerEvent{kind: pointerPress, pos: pos}) }

// Drag moves the stick to pos
func (j *Joystick) Drag(pos mgl64.Vec2) { j.enqueue(pointerEvent{kind: pointerDrag, pos: pos}) }

// Release ends the gesture
func (j *Joystick) Release() { j.enqueue(pointerEvent{kind: pointerRelease}) }

func (j *Joystick) enqueue(ev pointerEvent) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.queue) >= parameter.JoystickQueueSize {
		// Coalesce: a newer drag supersedes the oldest pending drag
		for i, q := range j.queue {
			if q.kind == pointerDrag {
				j.queue = append(j.queue[:i], j.queue[i+1:]...)
				break
			}
		}
		if len(j.queue) >= parameter.JoystickQueueSize {
			j.dropped++
			return
		}
	}
	j.queue = append(j.queue, ev)
}

// Dropped returns the number of pointer events discarded on overflow
func (j *Joystick) Dropped() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.dropped
}

// Active reports whether a pointer is down, as of the last Poll
func (j *Joystick) Active() bool {
	return j.active
}

// State returns the classification latch, as of the last Poll
func (j *Joystick) State() GestureState {
	return j.state
}

// Poll drains pending pointer events and returns the resulting sample
func (j *Joystick) Poll() Frame {
	j.mu.Lock()
	pending := j.queue
	j.queue = make([]pointerEvent, 0, parameter.JoystickQueueSize)
	cfg := j.cfg
	j.mu.Unlock()

	for _, ev := range pending {
		switch ev.kind {
		case pointerPress:
			j.active = true
			j.origin = ev.pos
			j.raw = mgl64.Vec2{}
			j.reset(GestureSteer)
		case pointerDrag:
			if !j.active {
				continue
			}
			j.raw = vmath.ClampMagnitude2(ev.pos.Sub(j.origin).Mul(1/cfg.Radius), 1)
			j.classify(cfg)
		case pointerRelease:
			j.active = false
			j.raw = mgl64.Vec2{}
			j.reset(GestureIdle)
		}
	}

	g := j.out
	g.Raw = j.raw
	return Frame{
		Axis:    j.raw,
		Primary: g.IsCharging,
		Boost:   g.IsNitro,
		Gesture: &g,
	}
}

func (j *Joystick) reset(state GestureState) {
	j.state = state
	j.out = Gesture{}
}

// classify maps the stick into nitro (up), charge (down) or steer (sides)
func (j *Joystick) classify(cfg JoystickConfig) {
	magnitude := vmath.Len2(j.raw)
	if magnitude < cfg.Deadzone {
		j.reset(GestureSteer)
		return
	}
	if j.state == GestureLocked {
		return
	}

	angle := vmath.AngleFromUp2(j.raw)
	switch {
	case angle < cfg.SectorAngle && magnitude > cfg.ActionThreshold:
		j.out = Gesture{IsNitro: true}
		j.state = GestureLocked
	case angle > 180-cfg.SectorAngle && magnitude > cfg.ActionThreshold:
		j.out = Gesture{IsCharging: true}
		j.state = GestureLocked
	default:
		j.out = Gesture{Horizontal: j.raw[0]}
		j.state = GestureSteer
	}
}

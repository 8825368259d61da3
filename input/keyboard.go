package input

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/trickbike/parameter"
)

// DriveKey identifies a held control
type DriveKey uint8

const (
	KeyNone DriveKey = iota
	KeySteerLeft
	KeySteerRight
	KeyThrottle
	KeyBrake
	KeyPrimary
	KeyBoost
	keyCount
)

// Clock supplies the current time, engine.TimeProvider satisfies it
type Clock interface {
	Now() time.Time
}

type keyState struct {
	held      bool      // explicit down from a source with key-up events
	lastPress time.Time // most recent press or repeat
	runStart  time.Time // first press of the current repeat run
}

// Keyboard is a key-state Source fed with press events
// Terminals deliver repeats but no key-up, so a key counts as held for a
// hold window after its last press; the first press of a run gets a longer
// grace to bridge the auto-repeat delay
type Keyboard struct {
	clock       Clock
	holdWindow  time.Duration
	repeatGrace time.Duration
	keys        [keyCount]keyState
}

// NewKeyboard creates a keyboard source with default hold timing
func NewKeyboard(clock Clock) *Keyboard {
	return &Keyboard{
		clock:       clock,
		holdWindow:  parameter.KeyHoldWindow,
		repeatGrace: parameter.KeyRepeatGrace,
	}
}

// SetHoldWindow overrides the hold timing
func (k *Keyboard) SetHoldWindow(hold, grace time.Duration) {
	k.holdWindow = hold
	k.repeatGrace = grace
}

// Press records a press or auto-repeat
func (k *Keyboard) Press(key DriveKey) {
	if key == KeyNone || key >= keyCount {
		return
	}
	now := k.clock.Now()
	s := &k.keys[key]
	if !k.timedHeld(s, now) {
		s.runStart = now
	}
	s.lastPress = now
}

// Down marks a key held until Up, for sources that report key-up
func (k *Keyboard) Down(key DriveKey) {
	if key == KeyNone || key >= keyCount {
		return
	}
	k.keys[key].held = true
}

// Up releases a key immediately
func (k *Keyboard) Up(key DriveKey) {
	if key == KeyNone || key >= keyCount {
		return
	}
	k.keys[key] = keyState{}
}

// ReleaseAll clears every key
func (k *Keyboard) ReleaseAll() {
	k.keys = [keyCount]keyState{}
}

func (k *Keyboard) timedHeld(s *keyState, now time.Time) bool {
	if s.lastPress.IsZero() {
		return false
	}
	window := k.holdWindow
	// Single press without repeats yet
	if s.lastPress.Equal(s.runStart) {
		window = max(window, k.repeatGrace)
	}
	return now.Sub(s.lastPress) <= window
}

// Held reports whether key is currently considered down
func (k *Keyboard) Held(key DriveKey) bool {
	if key == KeyNone || key >= keyCount {
		return false
	}
	s := &k.keys[key]
	return s.held || k.timedHeld(s, k.clock.Now())
}

// Poll implements Source
func (k *Keyboard) Poll() Frame {
	var axis mgl64.Vec2
	if k.Held(KeySteerLeft) {
		axis[0] -= 1
	}
	if k.Held(KeySteerRight) {
		axis[0] += 1
	}
	if k.Held(KeyThrottle) {
		axis[1] += 1
	}
	if k.Held(KeyBrake) {
		axis[1] -= 1
	}
	return Frame{
		Axis:    axis,
		Primary: k.Held(KeyPrimary),
		Boost:   k.Held(KeyBoost),
	}
}

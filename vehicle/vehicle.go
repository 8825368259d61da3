// Package vehicle implements the arcade two-wheeled vehicle core: suspension,
// stabilizer, drive, jump and trick state, nitro and cosmetic pose.
// FrameTick runs once per rendered frame; PhysicsTick once per fixed step
// before the integrator advances the body.
package vehicle

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/trickbike/engine/fsm"
	"github.com/lixenwraith/trickbike/input"
	"github.com/lixenwraith/trickbike/vmath"
)

// Deps are the collaborators a Vehicle is bound to
type Deps struct {
	Body      Body
	Raycaster Raycaster
	Input     input.Source // nil = neutral input
	Respawner Respawner    // nil = crashes are logged only
	Logger    zerolog.Logger
}

// Vehicle is a single player-controlled bike
// Not safe for concurrent use; both ticks run on the simulation goroutine
type Vehicle struct {
	tuning    Tuning
	body      Body
	ray       Raycaster
	source    input.Source
	respawner Respawner
	observers []Observer
	logger    zerolog.Logger

	// Ground classification, refreshed every frame
	grounded    bool
	wasGrounded bool
	landed      bool
	classified  bool
	distance    float64

	control    Control
	steerAngle float64
	boosting   bool

	front WheelState
	rear  WheelState

	jump        JumpCharge
	jumpFSM     *fsm.Machine[*Vehicle]
	jumpIdle    fsm.StateID
	pendingJump mgl64.Vec3
	hasPending  bool

	trick       TrickGesture
	trickFSM    *fsm.Machine[*Vehicle]
	trickLocked fsm.StateID
	tricking    bool

	nitro  NitroTank
	visual Visual

	time    float64
	crashes uint64
	jumps   uint64
}

// ErrMissingDependency is returned by New when Body or Raycaster is nil
var ErrMissingDependency = errors.New("vehicle: missing dependency")

// New validates the tuning and binds a vehicle to its collaborators
func New(t Tuning, d Deps) (*Vehicle, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("vehicle tuning: %w", err)
	}
	if d.Body == nil {
		return nil, fmt.Errorf("%w: body", ErrMissingDependency)
	}
	if d.Raycaster == nil {
		return nil, fmt.Errorf("%w: raycaster", ErrMissingDependency)
	}

	v := &Vehicle{
		tuning:    t,
		body:      d.Body,
		ray:       d.Raycaster,
		source:    d.Input,
		respawner: d.Respawner,
		logger:    d.Logger.With().Str("component", "vehicle").Logger(),
		distance:  t.Ground.MissDistance,
		nitro:     NitroTank{Current: t.Nitro.Initial, Max: t.Nitro.Max},
		trick:     TrickGesture{Locked: true},
	}

	var err error
	if v.jumpFSM, v.jumpIdle, err = newJumpMachine(v); err != nil {
		return nil, fmt.Errorf("jump state machine: %w", err)
	}
	if v.trickFSM, v.trickLocked, err = newTrickMachine(v); err != nil {
		return nil, fmt.Errorf("trick state machine: %w", err)
	}
	return v, nil
}

// AddObserver registers an event observer
func (v *Vehicle) AddObserver(o Observer) {
	if o != nil {
		v.observers = append(v.observers, o)
	}
}

// FrameTick samples input and advances per-frame state
func (v *Vehicle) FrameTick(dt float64) {
	if !(dt > 0) {
		return
	}
	v.time += dt

	v.classifyGround()

	frame := input.Frame{}
	if v.source != nil {
		if t, ok := v.source.(input.Tunable); ok {
			t.SetActionThreshold(v.tuning.Drive.StickThreshold)
		}
		frame = v.source.Poll()
	}
	v.resolveControl(frame.Sanitized(), dt)

	v.trickFSM.Update(v, dt)
	v.updateNitro(dt)
	v.jumpFSM.Update(v, dt)
	v.updateLean(dt)
	v.updateExplosion(dt)

	v.wasGrounded = v.grounded
}

// PhysicsTick submits suspension, stabilizer, drive and jump forces for one fixed step
func (v *Vehicle) PhysicsTick(dt float64) {
	if !(dt > 0) {
		return
	}

	v.processWheel(&v.front, v.tuning.Suspension.FrontMount, true, dt)
	v.processWheel(&v.rear, v.tuning.Suspension.RearMount, false, dt)
	v.applyUpright(dt)
	v.applyChassis(dt)

	if v.hasPending {
		v.body.AddImpulse(v.pendingJump)
		v.pendingJump = mgl64.Vec3{}
		v.hasPending = false
	}
}

// IsGrounded reports the frame ground classification
func (v *Vehicle) IsGrounded() bool { return v.grounded }

// DistanceToGround returns the last probe distance, MissDistance on a miss
func (v *Vehicle) DistanceToGround() float64 { return v.distance }

// Speed returns the body velocity magnitude
func (v *Vehicle) Speed() float64 { return v.body.Velocity().Len() }

// Body exposes the bound rigid body
func (v *Vehicle) Body() Body { return v.body }

// Tuning returns the active tuning
func (v *Vehicle) Tuning() Tuning { return v.tuning }

func (v *Vehicle) emit(t EventType, magnitude float64) {
	if len(v.observers) == 0 {
		return
	}
	ev := Event{Type: t, Time: v.time, Magnitude: magnitude, Position: v.body.Position()}
	for _, o := range v.observers {
		o.OnVehicleEvent(ev)
	}
}

// Telemetry is a read-only snapshot for HUDs, logs and metrics
type Telemetry struct {
	Time        float64
	Position    mgl64.Vec3
	Velocity    mgl64.Vec3
	Speed       float64
	Grounded    bool
	Distance    float64
	Control     Control
	SteerAngle  float64
	Boosting    bool
	Nitro       NitroTank
	Jump        JumpCharge
	JumpState   string
	Trick       TrickGesture
	TrickState  string
	Front       WheelState
	Rear        WheelState
	Visual      Visual
	Crashes     uint64
	Jumps       uint64
	UprightDot  float64
	HasPending  bool
	PendingJump mgl64.Vec3
}

// Telemetry captures the current state
func (v *Vehicle) Telemetry() Telemetry {
	vel := v.body.Velocity()
	_, up, _ := vmath.LocalAxes(v.body.Rotation())
	return Telemetry{
		Time:        v.time,
		Position:    v.body.Position(),
		Velocity:    vel,
		Speed:       vel.Len(),
		Grounded:    v.grounded,
		Distance:    v.distance,
		Control:     v.control,
		SteerAngle:  v.steerAngle,
		Boosting:    v.boosting,
		Nitro:       v.nitro,
		Jump:        v.jump,
		JumpState:   v.jumpFSM.StateName(),
		Trick:       v.trick,
		TrickState:  v.trickFSM.StateName(),
		Front:       v.front,
		Rear:        v.rear,
		Visual:      v.visual,
		Crashes:     v.crashes,
		Jumps:       v.jumps,
		UprightDot:  up.Dot(vmath.Up),
		HasPending:  v.hasPending,
		PendingJump: v.pendingJump,
	}
}

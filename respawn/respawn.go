// Package respawn keeps the last safe pose and restores the vehicle to it
package respawn

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/trickbike/parameter"
	"github.com/lixenwraith/trickbike/vmath"
)

// Target is the body restored on respawn
type Target interface {
	Position() mgl64.Vec3
	Rotation() mgl64.Quat
	Teleport(pos mgl64.Vec3, rot mgl64.Quat)
	ResetMotion()
}

// GroundProbe reports the vehicle ground classification
type GroundProbe interface {
	IsGrounded() bool
}

// Listener observes checkpoint and respawn activity
type Listener interface {
	OnCheckpoint(cp Checkpoint)
	OnRespawn(cp Checkpoint)
}

// Source identifies what saved a checkpoint
type Source uint8

const (
	SourceSpawn Source = iota
	SourceAutosave
	SourceTrigger
	SourceManual
)

func (s Source) String() string {
	switch s {
	case SourceSpawn:
		return "spawn"
	case SourceAutosave:
		return "autosave"
	case SourceTrigger:
		return "trigger"
	case SourceManual:
		return "manual"
	}
	return "unknown"
}

// Checkpoint is a saved pose
type Checkpoint struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Source   Source
	Time     float64
}

// Settings configures autosave and fall recovery
type Settings struct {
	FallThreshold    float64          `mapstructure:"fall_threshold"`
	AutosaveInterval float64          `mapstructure:"autosave_interval"`
	AutosaveMinUpDot float64          `mapstructure:"autosave_min_up_dot"`
	Lift             float64          `mapstructure:"lift"`
	Triggers         []TriggerSetting `mapstructure:"triggers"`
}

// DefaultSettings returns the stock respawn behavior
func DefaultSettings() Settings {
	return Settings{
		FallThreshold:    parameter.FallThreshold,
		AutosaveInterval: parameter.AutosaveInterval,
		AutosaveMinUpDot: parameter.AutosaveMinUpDot,
		Lift:             parameter.RespawnLift,
	}
}

func (s Settings) Validate() error {
	if math.IsNaN(s.FallThreshold) || math.IsInf(s.FallThreshold, 0) {
		return fmt.Errorf("fall_threshold must be finite, got %v", s.FallThreshold)
	}
	if !(s.AutosaveInterval > 0) {
		return fmt.Errorf("autosave_interval must be positive, got %v", s.AutosaveInterval)
	}
	if s.AutosaveMinUpDot < -1 || s.AutosaveMinUpDot > 1 || math.IsNaN(s.AutosaveMinUpDot) {
		return fmt.Errorf("autosave_min_up_dot must be in [-1,1], got %v", s.AutosaveMinUpDot)
	}
	if !(s.Lift >= 0) {
		return fmt.Errorf("lift must be non-negative, got %v", s.Lift)
	}
	for i, t := range s.Triggers {
		if err := t.validate(); err != nil {
			return fmt.Errorf("triggers[%d]: %w", i, err)
		}
	}
	return nil
}

var ErrNilTarget = errors.New("respawn: nil target")

// Manager saves checkpoints and restores the target on demand
// Respawn is safe to call repeatedly; each call lands on the same pose
type Manager struct {
	settings Settings
	target   Target
	probe    GroundProbe
	logger   zerolog.Logger

	checkpoint Checkpoint
	triggers   []*Trigger
	listeners  []Listener

	timer    float64
	time     float64
	respawns uint64
}

// NewManager saves the target's current pose as the spawn checkpoint
// probe may be nil, which disables autosave
func NewManager(s Settings, target Target, probe GroundProbe, logger zerolog.Logger) (*Manager, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("respawn settings: %w", err)
	}
	m := &Manager{
		settings: s,
		target:   target,
		probe:    probe,
		logger:   logger.With().Str("component", "respawn").Logger(),
	}
	m.checkpoint = Checkpoint{Position: target.Position(), Rotation: target.Rotation(), Source: SourceSpawn}
	for _, ts := range s.Triggers {
		m.AddTrigger(ts.Trigger())
	}
	return m, nil
}

// SetProbe binds the ground classifier after construction
func (m *Manager) SetProbe(p GroundProbe) { m.probe = p }

func (m *Manager) AddListener(l Listener) {
	if l != nil {
		m.listeners = append(m.listeners, l)
	}
}

func (m *Manager) AddTrigger(t *Trigger) {
	if t != nil {
		m.triggers = append(m.triggers, t)
	}
}

// SetCheckpoint overwrites the saved pose
func (m *Manager) SetCheckpoint(pos mgl64.Vec3, rot mgl64.Quat, src Source) {
	if !vmath.IsFinite3(pos) || !vmath.IsFiniteQuat(rot) {
		m.logger.Warn().Str("source", src.String()).Msg("Rejected non-finite checkpoint")
		return
	}
	m.checkpoint = Checkpoint{Position: pos, Rotation: rot.Normalize(), Source: src, Time: m.time}
	m.logger.Debug().
		Str("source", src.String()).
		Floats64("pos", pos[:]).
		Msg("Checkpoint saved")
	for _, l := range m.listeners {
		l.OnCheckpoint(m.checkpoint)
	}
}

// Checkpoint returns the saved pose
func (m *Manager) Checkpoint() Checkpoint { return m.checkpoint }

// Respawns returns the number of respawns performed
func (m *Manager) Respawns() uint64 { return m.respawns }

// Respawn zeroes motion and places the target above the checkpoint
func (m *Manager) Respawn() {
	cp := m.checkpoint
	m.target.ResetMotion()
	m.target.Teleport(cp.Position.Add(vmath.Up.Mul(m.settings.Lift)), cp.Rotation)
	m.timer = 0
	m.respawns++

	m.logger.Info().
		Str("checkpoint", cp.Source.String()).
		Uint64("respawns", m.respawns).
		Msg("Respawned")
	for _, l := range m.listeners {
		l.OnRespawn(cp)
	}
}

// FrameTick runs triggers, the periodic autosave and the fall check
func (m *Manager) FrameTick(dt float64) {
	if !(dt > 0) {
		return
	}
	m.time += dt
	pos := m.target.Position()

	for _, t := range m.triggers {
		if t.Check(pos) {
			m.SetCheckpoint(t.Position, t.Rotation, SourceTrigger)
		}
	}

	m.timer += dt
	if m.timer >= m.settings.AutosaveInterval {
		m.timer = 0
		if m.probe != nil && m.probe.IsGrounded() && m.uprightEnough() {
			m.SetCheckpoint(pos, m.target.Rotation(), SourceAutosave)
		}
	}

	if pos.Y() < m.settings.FallThreshold {
		m.logger.Info().Float64("y", pos.Y()).Msg("Fell below world")
		m.Respawn()
	}
}

func (m *Manager) uprightEnough() bool {
	up := m.target.Rotation().Rotate(vmath.Up)
	return up.Dot(vmath.Up) > m.settings.AutosaveMinUpDot
}

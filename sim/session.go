// Package sim assembles a playable session: terrain, rigid body, vehicle,
// respawn policy, metrics and the two-rate loop, from one configuration
package sim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/lixenwraith/trickbike/config"
	"github.com/lixenwraith/trickbike/engine"
	"github.com/lixenwraith/trickbike/input"
	"github.com/lixenwraith/trickbike/metrics"
	"github.com/lixenwraith/trickbike/parameter"
	"github.com/lixenwraith/trickbike/physics"
	"github.com/lixenwraith/trickbike/respawn"
	"github.com/lixenwraith/trickbike/vehicle"
)

// Listener receives both vehicle events and respawn activity, e.g. the audio player
type Listener interface {
	vehicle.Observer
	respawn.Listener
}

// Session holds every simulation collaborator
// Single goroutine: Advance, Checkpoint and Respawn must not race
type Session struct {
	Config  *config.Config
	World   *physics.World
	Terrain *physics.Profile
	Body    *physics.RigidBody
	Bike    *vehicle.Vehicle
	Respawn *respawn.Manager
	Metrics *metrics.Recorder
	Loop    *engine.Loop

	last   engine.Stats
	logger zerolog.Logger
}

// New builds a session with the bike resting above the spawn point
// meter may be nil for the global otel meter
func New(cfg *config.Config, src input.Source, meter metric.Meter, logger zerolog.Logger) (*Session, error) {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}

	terrain, err := cfg.TerrainProfile()
	if err != nil {
		return nil, fmt.Errorf("terrain: %w", err)
	}
	world := physics.NewWorld()
	world.AddTerrain(terrain)

	body := physics.NewRigidBody(cfg.Vehicle.BodyConfig())
	body.Teleport(spawnPoint(world), mgl64.QuatIdent())
	world.AddBody(body)

	manager, err := respawn.NewManager(cfg.Respawn, body, nil, logger)
	if err != nil {
		return nil, err
	}

	bike, err := vehicle.New(cfg.Vehicle, vehicle.Deps{
		Body:      body,
		Raycaster: world,
		Input:     src,
		Respawner: manager,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	manager.SetProbe(bike)

	recorder, err := metrics.New(meter)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	bike.AddObserver(recorder)
	manager.AddListener(recorder)

	loop, err := engine.NewLoop(cfg.Loop, world, logger)
	if err != nil {
		return nil, err
	}
	// Respawn runs after the vehicle so a fall is handled on the frame it is observed
	loop.AddFrame(bike, manager)
	loop.AddPhysics(bike)

	s := &Session{
		Config:  cfg,
		World:   world,
		Terrain: terrain,
		Body:    body,
		Bike:    bike,
		Respawn: manager,
		Metrics: recorder,
		Loop:    loop,
		logger:  logger.With().Str("component", "session").Logger(),
	}
	s.logger.Info().
		Float64("spawn_y", body.Position().Y()).
		Int("terrain_points", len(cfg.Terrain.Profile)).
		Msg("session ready")
	return s, nil
}

func spawnPoint(w *physics.World) mgl64.Vec3 {
	h, _, ok := w.GroundHeight(0, parameter.SpawnZ)
	if !ok {
		h = 0
	}
	return mgl64.Vec3{0, h + parameter.SpawnHeight, parameter.SpawnZ}
}

// Attach registers a listener for vehicle events and respawn activity
func (s *Session) Attach(l Listener) {
	s.Bike.AddObserver(l)
	s.Respawn.AddListener(l)
}

// Advance runs one frame of frameDt seconds and records its telemetry
func (s *Session) Advance(frameDt float64) engine.Stats {
	stats := s.Loop.Advance(frameDt)
	s.Observe(stats)
	return stats
}

// Observe records a frame already advanced elsewhere, e.g. by an engine.Runner
func (s *Session) Observe(stats engine.Stats) {
	s.last = stats
	s.Metrics.ObserveFrame(stats, s.Bike.Telemetry())
}

// LastStats returns the most recent observed frame
func (s *Session) LastStats() engine.Stats { return s.last }

// Checkpoint stores the current pose as a manual checkpoint
func (s *Session) Checkpoint() {
	s.Respawn.SetCheckpoint(s.Body.Position(), s.Body.Rotation(), respawn.SourceManual)
}

// Telemetry is a shortcut for the vehicle snapshot
func (s *Session) Telemetry() vehicle.Telemetry { return s.Bike.Telemetry() }

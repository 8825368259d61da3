package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/lixenwraith/trickbike/engine"
	"github.com/lixenwraith/trickbike/respawn"
	"github.com/lixenwraith/trickbike/vehicle"
)

func TestRecorderCounts(t *testing.T) {
	r, err := New(noop.Meter{})
	require.NoError(t, err)

	r.OnVehicleEvent(vehicle.Event{Type: vehicle.EventJump, Magnitude: 650})
	r.OnVehicleEvent(vehicle.Event{Type: vehicle.EventJump, Magnitude: 900})
	r.OnVehicleEvent(vehicle.Event{Type: vehicle.EventCrash, Magnitude: 0.3})
	r.OnCheckpoint(respawn.Checkpoint{Source: respawn.SourceAutosave})
	r.OnRespawn(respawn.Checkpoint{Source: respawn.SourceAutosave})

	assert.Equal(t, uint64(2), r.Count(vehicle.EventJump))
	assert.Equal(t, uint64(1), r.Count(vehicle.EventCrash))
	assert.Zero(t, r.Count(vehicle.EventLand))

	s := r.Summary()
	assert.Equal(t, uint64(2), s.Events["jump"])
	assert.Equal(t, uint64(1), s.Checkpoints)
	assert.Equal(t, uint64(1), s.Respawns)
	assert.Equal(t, 900.0, s.PeakImpulse)
}

func TestRecorderObserveFrame(t *testing.T) {
	r, err := New(noop.Meter{})
	require.NoError(t, err)

	r.ObserveFrame(engine.Stats{PhysicsSteps: 2, Dropped: 0.1}, vehicle.Telemetry{Speed: 12})
	r.ObserveFrame(engine.Stats{PhysicsSteps: 1}, vehicle.Telemetry{Speed: 8})

	s := r.Summary()
	assert.Equal(t, uint64(3), s.PhysicsSteps)
	assert.InDelta(t, 0.1, s.DroppedTime, 1e-12)
	assert.Equal(t, 12.0, s.PeakSpeed)
}

func TestRecorderGlobalMeter(t *testing.T) {
	r, err := New(nil)
	require.NoError(t, err)
	r.OnVehicleEvent(vehicle.Event{Type: vehicle.EventLand})
	assert.Equal(t, uint64(1), r.Count(vehicle.EventLand))
}

// Package metrics exports vehicle and loop activity as OpenTelemetry instruments
package metrics

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lixenwraith/trickbike/engine"
	"github.com/lixenwraith/trickbike/parameter"
	"github.com/lixenwraith/trickbike/respawn"
	"github.com/lixenwraith/trickbike/vehicle"
)

func meter() metric.Meter {
	return otel.Meter(parameter.MetricsInstrumentationName)
}

// Recorder counts vehicle events, respawns and loop steps
// Also keeps local totals for HUD and replay summaries
type Recorder struct {
	events       metric.Int64Counter
	jumpImpulse  metric.Float64Histogram
	checkpoints  metric.Int64Counter
	respawns     metric.Int64Counter
	physicsSteps metric.Int64Counter
	droppedTime  metric.Float64Counter
	speedGauge   metric.Float64ObservableGauge
	nitroGauge   metric.Float64ObservableGauge

	mu          sync.Mutex
	counts      map[vehicle.EventType]uint64
	respawned   uint64
	saved       uint64
	steps       uint64
	dropped     float64
	lastSpeed   float64
	lastNitro   float64
	peakSpeed   float64
	peakImpulse float64
}

// New creates the instruments on m, the global meter when nil
func New(m metric.Meter) (*Recorder, error) {
	if m == nil {
		m = meter()
	}
	r := &Recorder{counts: make(map[vehicle.EventType]uint64)}

	var err error
	if r.events, err = m.Int64Counter(
		"trickbike.vehicle.events",
		metric.WithDescription("Vehicle events by type"),
	); err != nil {
		return nil, fmt.Errorf("events counter: %w", err)
	}
	if r.jumpImpulse, err = m.Float64Histogram(
		"trickbike.vehicle.jump_impulse",
		metric.WithDescription("Launch impulse per jump"),
		metric.WithUnit("N.s"),
	); err != nil {
		return nil, fmt.Errorf("jump histogram: %w", err)
	}
	if r.checkpoints, err = m.Int64Counter(
		"trickbike.respawn.checkpoints",
		metric.WithDescription("Checkpoints saved by source"),
	); err != nil {
		return nil, fmt.Errorf("checkpoints counter: %w", err)
	}
	if r.respawns, err = m.Int64Counter(
		"trickbike.respawn.respawns",
		metric.WithDescription("Respawns performed"),
	); err != nil {
		return nil, fmt.Errorf("respawns counter: %w", err)
	}
	if r.physicsSteps, err = m.Int64Counter(
		"trickbike.loop.physics_steps",
		metric.WithDescription("Fixed physics steps executed"),
	); err != nil {
		return nil, fmt.Errorf("steps counter: %w", err)
	}
	if r.droppedTime, err = m.Float64Counter(
		"trickbike.loop.dropped_time",
		metric.WithDescription("Simulation time dropped by the sub-step cap"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("dropped counter: %w", err)
	}
	if r.speedGauge, err = m.Float64ObservableGauge(
		"trickbike.vehicle.speed",
		metric.WithDescription("Current vehicle speed"),
		metric.WithUnit("m/s"),
		metric.WithFloat64Callback(func(_ context.Context, o metric.Float64Observer) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			o.Observe(r.lastSpeed)
			return nil
		}),
	); err != nil {
		return nil, fmt.Errorf("speed gauge: %w", err)
	}
	if r.nitroGauge, err = m.Float64ObservableGauge(
		"trickbike.vehicle.nitro",
		metric.WithDescription("Current nitro fill"),
		metric.WithFloat64Callback(func(_ context.Context, o metric.Float64Observer) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			o.Observe(r.lastNitro)
			return nil
		}),
	); err != nil {
		return nil, fmt.Errorf("nitro gauge: %w", err)
	}
	return r, nil
}

// OnVehicleEvent implements vehicle.Observer
func (r *Recorder) OnVehicleEvent(ev vehicle.Event) {
	ctx := context.Background()
	r.events.Add(ctx, 1, metric.WithAttributes(attribute.String("type", ev.Type.String())))
	if ev.Type == vehicle.EventJump {
		r.jumpImpulse.Record(ctx, ev.Magnitude)
	}

	r.mu.Lock()
	r.counts[ev.Type]++
	if ev.Type == vehicle.EventJump && ev.Magnitude > r.peakImpulse {
		r.peakImpulse = ev.Magnitude
	}
	r.mu.Unlock()
}

// OnCheckpoint implements respawn.Listener
func (r *Recorder) OnCheckpoint(cp respawn.Checkpoint) {
	r.checkpoints.Add(context.Background(), 1, metric.WithAttributes(attribute.String("source", cp.Source.String())))
	r.mu.Lock()
	r.saved++
	r.mu.Unlock()
}

// OnRespawn implements respawn.Listener
func (r *Recorder) OnRespawn(cp respawn.Checkpoint) {
	r.respawns.Add(context.Background(), 1, metric.WithAttributes(attribute.String("checkpoint", cp.Source.String())))
	r.mu.Lock()
	r.respawned++
	r.mu.Unlock()
}

// ObserveFrame records loop stats and samples the vehicle gauges
func (r *Recorder) ObserveFrame(stats engine.Stats, tel vehicle.Telemetry) {
	ctx := context.Background()
	if stats.PhysicsSteps > 0 {
		r.physicsSteps.Add(ctx, int64(stats.PhysicsSteps))
	}
	if stats.Dropped > 0 {
		r.droppedTime.Add(ctx, stats.Dropped)
	}

	r.mu.Lock()
	r.steps += uint64(stats.PhysicsSteps)
	r.dropped += stats.Dropped
	r.lastSpeed = tel.Speed
	r.lastNitro = tel.Nitro.Current
	if tel.Speed > r.peakSpeed {
		r.peakSpeed = tel.Speed
	}
	r.mu.Unlock()
}

// Summary is a point-in-time copy of the local totals
type Summary struct {
	Events       map[string]uint64 `json:"events"`
	Checkpoints  uint64            `json:"checkpoints"`
	Respawns     uint64            `json:"respawns"`
	PhysicsSteps uint64            `json:"physics_steps"`
	DroppedTime  float64           `json:"dropped_time"`
	PeakSpeed    float64           `json:"peak_speed"`
	PeakImpulse  float64           `json:"peak_impulse"`
}

func (r *Recorder) Count(t vehicle.EventType) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[t]
}

func (r *Recorder) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make(map[string]uint64, len(r.counts))
	for t, n := range r.counts {
		events[t.String()] = n
	}
	return Summary{
		Events:       events,
		Checkpoints:  r.saved,
		Respawns:     r.respawned,
		PhysicsSteps: r.steps,
		DroppedTime:  r.dropped,
		PeakSpeed:    r.peakSpeed,
		PeakImpulse:  r.peakImpulse,
	}
}

var (
	_ vehicle.Observer = (*Recorder)(nil)
	_ respawn.Listener = (*Recorder)(nil)
)

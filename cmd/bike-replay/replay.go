package main

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/trickbike/config"
	"github.com/lixenwraith/trickbike/engine"
	"github.com/lixenwraith/trickbike/input"
	"github.com/lixenwraith/trickbike/metrics"
	"github.com/lixenwraith/trickbike/respawn"
	"github.com/lixenwraith/trickbike/sim"
	"github.com/lixenwraith/trickbike/vehicle"
)

// replayer plays a script through a session and writes one JSON line per frame
type replayer struct {
	session *sim.Session
	script  *input.Script
	sf      *scriptFile
	out     zerolog.Logger
	frame   int
}

func newReplayer(cfg *config.Config, sf *scriptFile, w io.Writer, logger zerolog.Logger) (*replayer, error) {
	script, err := input.NewScript(sf.Steps, sf.Loop, cfg.Input.Joystick)
	if err != nil {
		return nil, err
	}
	session, err := sim.New(cfg, script, nil, logger)
	if err != nil {
		return nil, err
	}
	r := &replayer{
		session: session,
		script:  script,
		sf:      sf,
		out:     zerolog.New(w),
	}
	session.Attach(r)
	return r, nil
}

// run plays back deterministically with the script's fixed frame delta
func (r *replayer) run() metrics.Summary {
	n := r.sf.frames(r.sf.total(r.script))
	for i := 0; i < n; i++ {
		stats := r.session.Advance(r.sf.FrameDt)
		r.afterFrame(stats)
	}
	return r.finish()
}

// runRealtime plays back against the wall clock until the script ends or ctx is done
func (r *replayer) runRealtime(ctx context.Context, clock engine.TimeProvider, interval time.Duration) metrics.Summary {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	total := r.sf.total(r.script)
	elapsed := 0.0
	hook := func(stats engine.Stats) {
		r.session.Observe(stats)
		r.afterFrame(stats)
		elapsed += stats.FrameDt
		if elapsed >= total {
			cancel()
		}
	}
	runner := engine.NewRunner(r.session.Loop, clock, interval, hook, zerolog.Nop())
	_ = runner.Run(ctx)
	return r.finish()
}

// afterFrame moves script time past the frame that just consumed its input
func (r *replayer) afterFrame(stats engine.Stats) {
	r.script.Advance(stats.FrameDt)
	r.frame++
	tel := r.session.Telemetry()

	r.out.Log().
		Str("type", "frame").
		Int("frame", r.frame).
		Float64("t", tel.Time).
		Floats64("pos", tel.Position[:]).
		Floats64("vel", tel.Velocity[:]).
		Float64("speed", tel.Speed).
		Bool("grounded", tel.Grounded).
		Float64("dist", tel.Distance).
		Float64("steer", tel.SteerAngle).
		Float64("throttle", tel.Control.Throttle).
		Bool("boost", tel.Boosting).
		Float64("nitro", tel.Nitro.Current).
		Str("jump", tel.JumpState).
		Float64("charge", tel.Jump.Value).
		Str("trick", tel.TrickState).
		Floats64("stick", tel.Trick.Vector[:]).
		Float64("explosion", tel.Visual.Explosion).
		Float64("front_comp", tel.Front.Compression).
		Float64("rear_comp", tel.Rear.Compression).
		Int("steps", stats.PhysicsSteps).
		Send()
}

func (r *replayer) finish() metrics.Summary {
	sum := r.session.Metrics.Summary()
	r.out.Log().
		Str("type", "summary").
		Int("frames", r.frame).
		Interface("summary", sum).
		Send()
	return sum
}

func (r *replayer) OnVehicleEvent(ev vehicle.Event) {
	r.out.Log().
		Str("type", "event").
		Str("event", ev.Type.String()).
		Float64("t", ev.Time).
		Float64("magnitude", ev.Magnitude).
		Floats64("pos", ev.Position[:]).
		Send()
}

func (r *replayer) OnCheckpoint(cp respawn.Checkpoint) {
	r.out.Log().
		Str("type", "checkpoint").
		Str("source", cp.Source.String()).
		Float64("t", cp.Time).
		Floats64("pos", cp.Position[:]).
		Send()
}

func (r *replayer) OnRespawn(cp respawn.Checkpoint) {
	r.out.Log().
		Str("type", "respawn").
		Str("source", cp.Source.String()).
		Floats64("pos", cp.Position[:]).
		Send()
}

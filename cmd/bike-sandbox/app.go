package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/trickbike/audio"
	"github.com/lixenwraith/trickbike/config"
	"github.com/lixenwraith/trickbike/engine"
	"github.com/lixenwraith/trickbike/input"
	"github.com/lixenwraith/trickbike/parameter"
	"github.com/lixenwraith/trickbike/sim"
)

// app owns the terminal, the session and the input plumbing
// Everything except the event poller runs on the main goroutine
type app struct {
	screen   tcell.Screen
	session  *sim.Session
	clock    *engine.PausableClock
	runner   *engine.Runner
	machine  *input.Machine
	selector *input.Selector
	player   *audio.Player
	view     *view
	interval time.Duration
	logger   zerolog.Logger

	quit bool
}

func newApp(cfg *config.Config, screen tcell.Screen, clock engine.TimeProvider, logger zerolog.Logger) (*app, error) {
	pausable := engine.NewPausableClock(clock)

	keyboard := input.NewKeyboard(pausable)
	keyboard.SetHoldWindow(cfg.Input.HoldWindow, cfg.Input.RepeatGrace)
	joystick := input.NewJoystick(cfg.Input.Joystick)
	selector := input.NewSelector(keyboard, joystick)

	session, err := sim.New(cfg, selector, nil, logger)
	if err != nil {
		return nil, err
	}

	a := &app{
		screen:   screen,
		session:  session,
		clock:    pausable,
		machine:  input.NewMachine(input.DefaultKeyTable(), keyboard, joystick),
		selector: selector,
		view:     newView(screen, session.Terrain),
		interval: frameInterval(cfg.Loop),
		logger:   logger.With().Str("component", "sandbox").Logger(),
	}
	a.runner = engine.NewRunner(session.Loop, pausable, a.interval, session.Observe, logger)
	return a, nil
}

func frameInterval(s engine.Settings) time.Duration {
	if s.FrameRate <= 0 {
		return parameter.FrameUpdateInterval
	}
	return time.Second / time.Duration(s.FrameRate)
}

// attachAudio starts cue playback, a missing audio device only disables sound
func (a *app) attachAudio(cfg config.AudioConfig, muted bool) {
	if !cfg.Enabled {
		return
	}
	p := audio.NewPlayer(cfg.Volume, a.logger)
	if err := p.Initialize(); err != nil {
		a.logger.Warn().Err(err).Msg("Audio unavailable")
		return
	}
	p.SetMuted(muted)
	a.session.Attach(p)
	a.player = p
}

func (a *app) close() {
	if a.player != nil {
		a.player.Cleanup()
	}
}

// run is the main loop: terminal events and frame ticks on one goroutine
func (a *app) run() {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for !a.quit {
		select {
		case ev := <-events:
			a.handleEvent(ev)
		case <-ticker.C:
			a.runner.Tick()
			a.render()
		}
	}
}

func (a *app) handleEvent(ev tcell.Event) {
	intent := a.machine.Process(ev)
	if intent == nil {
		return
	}

	switch intent.Type {
	case input.IntentQuit:
		a.quit = true
	case input.IntentResize:
		a.screen.Sync()
	case input.IntentToggleMute:
		if a.player != nil {
			muted := a.player.ToggleMute()
			a.logger.Info().Bool("muted", muted).Msg("Audio toggled")
		}
	case input.IntentRespawn:
		a.session.Respawn.Respawn()
	case input.IntentCheckpoint:
		a.session.Checkpoint()
	case input.IntentPause:
		paused := a.clock.Toggle()
		a.logger.Info().Bool("paused", paused).Msg("Pause toggled")
	case input.IntentStep:
		if a.clock.IsPaused() {
			a.session.Advance(a.session.Loop.FixedTimeStep())
			a.render()
		}
	case input.IntentToggleHelp:
		a.view.showHelp = !a.view.showHelp
	}
}

func (a *app) render() {
	stats := a.session.LastStats()
	a.view.draw(a.session.Telemetry(), hudState{
		Source:     a.selector.Last(),
		Paused:     a.clock.IsPaused(),
		Muted:      a.player != nil && a.player.Muted(),
		Respawns:   a.session.Respawn.Respawns(),
		Checkpoint: a.session.Respawn.Checkpoint(),
		Steps:      stats.PhysicsSteps,
		Dropped:    stats.Dropped,
	})
}

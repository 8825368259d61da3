package main

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/trickbike/config"
	"github.com/lixenwraith/trickbike/engine"
	"github.com/lixenwraith/trickbike/respawn"
)

func newTestApp(t *testing.T) (*app, *engine.ManualClock, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 40)

	cfg := config.Default()
	cfg.Audio.Enabled = false
	mock := engine.NewManualClock(time.Unix(0, 0))

	a, err := newApp(&cfg, screen, mock, zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	return a, mock, screen
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestRenderShowsHUD(t *testing.T) {
	a, _, screen := newTestApp(t)
	a.render()

	if row := rowText(screen, 0); !strings.Contains(row, "RUN") {
		t.Errorf("Expected status RUN in first row, got %q", row)
	}
	if row := rowText(screen, 1); !strings.Contains(row, "km/h") {
		t.Errorf("Expected speed line, got %q", row)
	}
}

func TestRunnerTickAdvancesSession(t *testing.T) {
	a, mock, _ := newTestApp(t)

	a.runner.Tick()
	mock.Advance(100 * time.Millisecond)
	stats := a.runner.Tick()

	if stats.PhysicsSteps != 5 {
		t.Errorf("Expected 5 physics steps for 100ms, got %d", stats.PhysicsSteps)
	}
	if got := a.session.LastStats(); got != stats {
		t.Errorf("Expected runner hook to record stats %+v, got %+v", stats, got)
	}
}

func TestPauseFreezesAndStepAdvances(t *testing.T) {
	a, mock, screen := newTestApp(t)
	a.runner.Tick()

	a.handleEvent(key('p'))
	if !a.clock.IsPaused() {
		t.Fatal("Expected clock to be paused")
	}

	before := a.session.Telemetry().Time
	mock.Advance(time.Second)
	a.runner.Tick()
	if got := a.session.Telemetry().Time; got != before {
		t.Errorf("Expected frozen time %v while paused, got %v", before, got)
	}

	a.handleEvent(key('.'))
	want := before + a.session.Loop.FixedTimeStep()
	if got := a.session.Telemetry().Time; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("Expected single step to time %v, got %v", want, got)
	}
	if row := rowText(screen, 0); !strings.Contains(row, "PAUSED") {
		t.Errorf("Expected PAUSED status, got %q", row)
	}

	a.handleEvent(key('p'))
	if a.clock.IsPaused() {
		t.Error("Expected clock to resume")
	}
}

func TestStepIgnoredWhileRunning(t *testing.T) {
	a, _, _ := newTestApp(t)
	before := a.session.Telemetry().Time
	a.handleEvent(key('.'))
	if got := a.session.Telemetry().Time; got != before {
		t.Errorf("Expected no step while running, got time %v", got)
	}
}

func TestRespawnAndCheckpointKeys(t *testing.T) {
	a, _, _ := newTestApp(t)

	a.handleEvent(key('c'))
	if src := a.session.Respawn.Checkpoint().Source; src != respawn.SourceManual {
		t.Errorf("Expected manual checkpoint, got %v", src)
	}

	a.handleEvent(key('r'))
	if n := a.session.Respawn.Respawns(); n != 1 {
		t.Errorf("Expected 1 respawn, got %d", n)
	}
}

func TestHelpAndQuit(t *testing.T) {
	a, _, screen := newTestApp(t)

	a.handleEvent(key('?'))
	if !a.view.showHelp {
		t.Fatal("Expected help to be shown")
	}
	a.render()
	found := false
	for y := 0; y < 10; y++ {
		if strings.Contains(rowText(screen, y), "respawn") {
			found = true
		}
	}
	if !found {
		t.Error("Expected help overlay text")
	}

	a.handleEvent(key('m')) // no player attached, must not panic
	a.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if !a.quit {
		t.Error("Expected quit after Escape")
	}
}

func TestDriveKeyReachesVehicle(t *testing.T) {
	a, mock, _ := newTestApp(t)
	a.runner.Tick()

	// Let the bike land before driving
	for i := 0; i < 300 && !(i > 60 && a.session.Bike.IsGrounded()); i++ {
		mock.Advance(16 * time.Millisecond)
		a.runner.Tick()
	}
	if !a.session.Bike.IsGrounded() {
		t.Fatal("Expected bike to settle on the track")
	}
	a.handleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	mock.Advance(16 * time.Millisecond)
	a.runner.Tick()

	if thr := a.session.Telemetry().Control.Throttle; thr != 1 {
		t.Errorf("Expected throttle 1 after Up key, got %v", thr)
	}
}

func TestFrameInterval(t *testing.T) {
	if got := frameInterval(engine.Settings{FrameRate: 50}); got != 20*time.Millisecond {
		t.Errorf("Expected 20ms, got %v", got)
	}
	if got := frameInterval(engine.Settings{}); got <= 0 {
		t.Errorf("Expected fallback interval, got %v", got)
	}
}

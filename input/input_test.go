package input

import (
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/trickbike/vmath"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func testJoystick() *Joystick {
	return NewJoystick(JoystickConfig{Deadzone: 0.1, SectorAngle: 45, ActionThreshold: 0.85, Radius: 1})
}

func TestJoystickClassification(t *testing.T) {
	tests := []struct {
		name       string
		stick      mgl64.Vec2
		horizontal float64
		nitro      bool
		charging   bool
	}{
		{"steer right", mgl64.Vec2{0.6, 0}, 0.6, false, false},
		{"steer left", mgl64.Vec2{-0.9, 0.1}, -0.9, false, false},
		{"up below threshold steers", mgl64.Vec2{0, 0.5}, 0, false, false},
		{"up nitro", mgl64.Vec2{0, 0.9}, 0, true, false},
		{"down charge", mgl64.Vec2{0.1, -0.95}, 0, false, true},
		{"deadzone", mgl64.Vec2{0.05, 0}, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := testJoystick()
			j.Press(mgl64.Vec2{})
			j.Drag(tt.stick)
			f := j.Poll()
			if f.Gesture == nil {
				t.Fatal("Expected gesture payload")
			}
			g := f.Gesture
			if math.Abs(g.Horizontal-tt.horizontal) > 1e-9 || g.IsNitro != tt.nitro || g.IsCharging != tt.charging {
				t.Errorf("Expected {%v %v %v}, got {%v %v %v}", tt.horizontal, tt.nitro, tt.charging, g.Horizontal, g.IsNitro, g.IsCharging)
			}
			if f.Boost != tt.nitro || f.Primary != tt.charging {
				t.Errorf("Expected frame boost=%v primary=%v, got %v %v", tt.nitro, tt.charging, f.Boost, f.Primary)
			}
		})
	}
}

func TestJoystickLockHoldsUntilDeadzone(t *testing.T) {
	j := testJoystick()
	j.Press(mgl64.Vec2{})
	j.Drag(mgl64.Vec2{0, 1})
	if f := j.Poll(); !f.Gesture.IsNitro || j.State() != GestureLocked {
		t.Fatalf("Expected locked nitro, got %+v state=%d", f.Gesture, j.State())
	}

	// Sliding to the side keeps the latched classification
	j.Drag(mgl64.Vec2{1, 0})
	f := j.Poll()
	if !f.Gesture.IsNitro || f.Gesture.Horizontal != 0 {
		t.Errorf("Expected nitro held while locked, got %+v", f.Gesture)
	}
	if f.Gesture.Raw != (mgl64.Vec2{1, 0}) {
		t.Errorf("Expected raw vector to follow the stick, got %v", f.Gesture.Raw)
	}

	// Back through center unlocks
	j.Drag(mgl64.Vec2{0, 0})
	j.Drag(mgl64.Vec2{0.5, 0})
	f = j.Poll()
	if f.Gesture.IsNitro || f.Gesture.Horizontal != 0.5 {
		t.Errorf("Expected steer after unlock, got %+v", f.Gesture)
	}
}

func TestJoystickRawClampedToUnitDisk(t *testing.T) {
	j := NewJoystick(JoystickConfig{Deadzone: 0.1, SectorAngle: 45, ActionThreshold: 0.85, Radius: 10})
	j.Press(mgl64.Vec2{5, 5})
	j.Drag(mgl64.Vec2{35, 5})
	f := j.Poll()
	if math.Abs(f.Gesture.Raw[0]-1) > 1e-12 || f.Gesture.Raw[1] != 0 {
		t.Errorf("Expected raw (1,0), got %v", f.Gesture.Raw)
	}
}

func TestJoystickReleaseResets(t *testing.T) {
	j := testJoystick()
	j.Press(mgl64.Vec2{})
	j.Drag(mgl64.Vec2{0, -1})
	j.Poll()
	j.Release()
	f := j.Poll()
	if j.Active() {
		t.Error("Expected inactive after release")
	}
	if f.Gesture.IsCharging || f.Gesture.Raw != (mgl64.Vec2{}) {
		t.Errorf("Expected neutral gesture after release, got %+v", f.Gesture)
	}
}

func TestJoystickDragWithoutPressIgnored(t *testing.T) {
	j := testJoystick()
	j.Drag(mgl64.Vec2{1, 0})
	f := j.Poll()
	if f.Gesture.Horizontal != 0 || j.Active() {
		t.Errorf("Expected drag before press ignored, got %+v", f.Gesture)
	}
}

func TestKeyboardHoldWindow(t *testing.T) {
	clock := newFakeClock()
	k := NewKeyboard(clock)
	k.SetHoldWindow(100*time.Millisecond, 400*time.Millisecond)

	k.Press(KeyThrottle)
	if f := k.Poll(); f.Axis[1] != 1 {
		t.Fatalf("Expected throttle held, got %v", f.Axis)
	}

	// First press of a run bridges the auto-repeat delay
	clock.Advance(300 * time.Millisecond)
	if !k.Held(KeyThrottle) {
		t.Error("Expected key held within repeat grace")
	}

	// Repeats shorten the window
	k.Press(KeyThrottle)
	clock.Advance(150 * time.Millisecond)
	if k.Held(KeyThrottle) {
		t.Error("Expected key released after hold window")
	}
}

func TestKeyboardOpposingKeysCancel(t *testing.T) {
	k := NewKeyboard(newFakeClock())
	k.Down(KeySteerLeft)
	k.Down(KeySteerRight)
	k.Down(KeyPrimary)
	f := k.Poll()
	if f.Axis[0] != 0 {
		t.Errorf("Expected steer to cancel, got %v", f.Axis[0])
	}
	if !f.Primary {
		t.Error("Expected primary held")
	}
	k.Up(KeyPrimary)
	if k.Poll().Primary {
		t.Error("Expected primary released")
	}
	k.ReleaseAll()
	if k.Held(KeySteerLeft) {
		t.Error("Expected all keys released")
	}
}

func TestFrameSanitized(t *testing.T) {
	f := Frame{
		Axis:    mgl64.Vec2{math.NaN(), 3},
		Gesture: &Gesture{Horizontal: math.Inf(1), Raw: mgl64.Vec2{2, 0}},
	}
	s := f.Sanitized()
	if s.Axis != (mgl64.Vec2{0, 1}) {
		t.Errorf("Expected axis (0,1), got %v", s.Axis)
	}
	if s.Gesture.Horizontal != 0 {
		t.Errorf("Expected Inf horizontal mapped to 0, got %v", s.Gesture.Horizontal)
	}
	if s.Gesture.Raw != (mgl64.Vec2{1, 0}) {
		t.Errorf("Expected raw clamped to unit disk, got %v", s.Gesture.Raw)
	}
	if f.Gesture.Raw != (mgl64.Vec2{2, 0}) {
		t.Error("Expected original frame untouched")
	}
	if s.Stick() != s.Gesture.Raw {
		t.Error("Expected gesture stick")
	}
}

func TestKeyboardStickInUnitDisk(t *testing.T) {
	f := Frame{Axis: mgl64.Vec2{1, -1}}.Sanitized()
	st := f.Stick()
	if l := vmath.Len2(st); math.Abs(l-1) > 1e-12 {
		t.Errorf("Expected diagonal stick length 1, got %v", l)
	}
	if math.Abs(st.X()+st.Y()) > 1e-12 || st.X() <= 0 {
		t.Errorf("Expected direction kept, got %v", st)
	}

	f = Frame{Axis: mgl64.Vec2{0.3, 0.4}}
	if f.Stick() != f.Axis {
		t.Errorf("Expected short stick unchanged, got %v", f.Stick())
	}
}

func TestActionThresholdForwarded(t *testing.T) {
	joy := NewJoystick(DefaultJoystickConfig())
	var src Source = NewSelector(nil, joy)
	tun, ok := src.(Tunable)
	if !ok {
		t.Fatal("Expected selector to accept a threshold")
	}
	tun.SetActionThreshold(0.5)
	if joy.ActionThreshold() != 0.5 {
		t.Errorf("Expected joystick threshold 0.5, got %v", joy.ActionThreshold())
	}

	// 0.7 up is below the default threshold but past the lowered one
	script, err := NewScript([]Step{{Duration: 1, Gesture: true, Stick: [2]float64{0, 0.7}}}, false, DefaultJoystickConfig())
	if err != nil {
		t.Fatalf("NewScript: %v", err)
	}
	script.SetActionThreshold(0.5)
	f := script.Poll()
	if f.Gesture == nil || !f.Gesture.IsNitro {
		t.Errorf("Expected nitro gesture at lowered threshold, got %+v", f.Gesture)
	}
}

func TestScriptPlayback(t *testing.T) {
	s, err := NewScript([]Step{
		{Duration: 0.5, Axis: [2]float64{0, 1}},
		{Duration: 0.5, Primary: true},
		{Duration: 0.5, Gesture: true, Stick: [2]float64{0, 1}},
	}, false, DefaultJoystickConfig())
	if err != nil {
		t.Fatalf("NewScript: %v", err)
	}
	if s.Duration() != 1.5 {
		t.Errorf("Expected duration 1.5, got %v", s.Duration())
	}

	if f := s.Poll(); f.Axis[1] != 1 || f.Primary {
		t.Errorf("Expected throttle step, got %+v", f)
	}
	s.Advance(0.6)
	if f := s.Poll(); !f.Primary {
		t.Errorf("Expected primary step, got %+v", f)
	}
	s.Advance(0.5)
	f := s.Poll()
	if f.Gesture == nil || !f.Gesture.IsNitro {
		t.Errorf("Expected nitro gesture step, got %+v", f.Gesture)
	}
	s.Advance(1)
	if !s.Done() {
		t.Error("Expected script done")
	}
	if f := s.Poll(); f.Gesture != nil || f.Boost {
		t.Errorf("Expected neutral frame after end, got %+v", f)
	}
}

func TestScriptRejectsBadSteps(t *testing.T) {
	if _, err := NewScript(nil, false, DefaultJoystickConfig()); err == nil {
		t.Error("Expected error for empty script")
	}
	if _, err := NewScript([]Step{{Duration: 0}}, false, DefaultJoystickConfig()); err == nil {
		t.Error("Expected error for zero duration")
	}
}

func TestScriptLoops(t *testing.T) {
	s, err := NewScript([]Step{{Duration: 1, Axis: [2]float64{1, 0}}, {Duration: 1}}, true, DefaultJoystickConfig())
	if err != nil {
		t.Fatalf("NewScript: %v", err)
	}
	s.Advance(2.5)
	if s.Done() {
		t.Error("Expected looping script never done")
	}
	if f := s.Poll(); f.Axis[0] != 1 {
		t.Errorf("Expected first step after wrap, got %v", f.Axis)
	}
}

func TestSelectorPrefersActiveGesture(t *testing.T) {
	k := NewKeyboard(newFakeClock())
	k.Down(KeyThrottle)
	j := testJoystick()
	sel := NewSelector(k, j)

	if f := sel.Poll(); f.Gesture != nil || sel.Last() != SourceKeyboard {
		t.Errorf("Expected keyboard frame, got %+v", f)
	}

	j.Press(mgl64.Vec2{})
	j.Drag(mgl64.Vec2{0.5, 0})
	if f := sel.Poll(); f.Gesture == nil || sel.Last() != SourceGesture {
		t.Errorf("Expected gesture frame, got %+v", f)
	}

	j.Release()
	if f := sel.Poll(); f.Gesture != nil || f.Axis[1] != 1 {
		t.Errorf("Expected keyboard after release, got %+v", f)
	}
	if sel.Last().String() != "keyboard" {
		t.Errorf("Expected keyboard kind, got %s", sel.Last())
	}
}

func TestMachineRoutesEvents(t *testing.T) {
	clock := newFakeClock()
	k := NewKeyboard(clock)
	j := testJoystick()
	m := NewMachine(nil, k, j)

	if intent := m.Process(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)); intent != nil {
		t.Errorf("Expected drive key to produce no intent, got %+v", intent)
	}
	if !k.Held(KeyThrottle) {
		t.Error("Expected throttle pressed")
	}

	intent := m.Process(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	if intent == nil || intent.Type != IntentRespawn {
		t.Errorf("Expected respawn intent, got %+v", intent)
	}
	intent = m.Process(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if intent == nil || intent.Type != IntentQuit {
		t.Errorf("Expected quit intent, got %+v", intent)
	}

	m.Process(tcell.NewEventMouse(10, 10, tcell.ButtonPrimary, tcell.ModNone))
	m.Process(tcell.NewEventMouse(10, 20, tcell.ButtonPrimary, tcell.ModNone))
	f := j.Poll()
	if !j.Active() || !f.Gesture.IsCharging {
		t.Errorf("Expected downward drag to charge, got %+v", f.Gesture)
	}
	m.Process(tcell.NewEventMouse(10, 20, tcell.ButtonNone, tcell.ModNone))
	j.Poll()
	if j.Active() {
		t.Error("Expected release on button up")
	}
}

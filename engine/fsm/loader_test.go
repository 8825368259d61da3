package fsm

import "testing"

const switchGraph = `
initial = "off"

[states.off]
on_enter = [{ action = "LogOff" }]
transitions = [{ target = "on", guard = "InputHigh" }]

[states.on]
on_update = [{ action = "Accumulate" }]
transitions = [{ target = "off", guard = "InputLow" }]
`

func newLoadedSwitch(t *testing.T) *Machine[*switchCtx] {
	t.Helper()
	m := NewMachine[*switchCtx]()
	m.RegisterGuard("InputHigh", func(c *switchCtx) bool { return c.input })
	m.RegisterGuard("InputLow", func(c *switchCtx) bool { return !c.input })
	m.RegisterAction("LogOff", func(c *switchCtx, _ float64) { c.log = append(c.log, "enter_off") })
	m.RegisterAction("Accumulate", func(c *switchCtx, dt float64) { c.ticks += dt })
	return m
}

func TestLoadConfig(t *testing.T) {
	m := newLoadedSwitch(t)
	initial, err := m.LoadConfig([]byte(switchGraph))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	offID, ok := m.GetStateID("off")
	if !ok || offID != initial {
		t.Fatalf("Expected initial to resolve to 'off', got %d (found=%v)", initial, ok)
	}
	onID, ok := m.GetStateID("on")
	if !ok {
		t.Fatal("Expected state 'on' to be loaded")
	}

	ctx := &switchCtx{}
	if err := m.Init(ctx, initial); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if len(ctx.log) != 1 {
		t.Errorf("Expected on_enter to run once, got %v", ctx.log)
	}

	ctx.input = true
	m.Update(ctx, 0.5)
	if !m.In(onID) {
		t.Fatalf("Expected 'on', got %s", m.StateName())
	}
	if ctx.ticks != 0.5 {
		t.Errorf("Expected on_update to run after transition, got %v", ctx.ticks)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := map[string]string{
		"unknown guard":   "initial = \"a\"\n[states.a]\ntransitions = [{ target = \"a\", guard = \"Nope\" }]\n",
		"unknown action":  "initial = \"a\"\n[states.a]\non_enter = [{ action = \"Nope\" }]\n",
		"unknown target":  "initial = \"a\"\n[states.a]\ntransitions = [{ target = \"b\" }]\n",
		"unknown initial": "initial = \"z\"\n[states.a]\non_enter = []\n",
		"no states":       "initial = \"a\"\n",
		"bad toml":        "initial = [",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			m := newLoadedSwitch(t)
			if _, err := m.LoadConfig([]byte(src)); err == nil {
				t.Errorf("Expected error for %s", name)
			}
		})
	}
}

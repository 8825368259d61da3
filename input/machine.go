package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// Machine translates terminal events into keyboard state, joystick gestures and intents
type Machine struct {
	table    *KeyTable
	keyboard *Keyboard
	joystick *Joystick

	// Cell aspect correction, terminal cells are roughly twice as tall as wide
	cellAspect float64
	dragging   bool
}

// NewMachine creates an input machine feeding the given sources
func NewMachine(table *KeyTable, keyboard *Keyboard, joystick *Joystick) *Machine {
	if table == nil {
		table = DefaultKeyTable()
	}
	return &Machine{
		table:      table,
		keyboard:   keyboard,
		joystick:   joystick,
		cellAspect: 2,
	}
}

// Process handles a terminal event and returns an intent, or nil
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return m.processKey(e)
	case *tcell.EventMouse:
		m.processMouse(e)
		return nil
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey) *Intent {
	entry, ok := m.table.Lookup(ev)
	if !ok {
		return nil
	}
	switch entry.Behavior {
	case BehaviorDrive:
		if m.keyboard != nil {
			m.keyboard.Press(entry.Drive)
		}
		return nil
	case BehaviorSystem:
		return &Intent{Type: entry.IntentType}
	}
	return nil
}

// processMouse maps primary-button drags to the gesture joystick
func (m *Machine) processMouse(ev *tcell.EventMouse) {
	if m.joystick == nil {
		return
	}
	x, y := ev.Position()
	// y-up pad space with square units
	pos := mgl64.Vec2{float64(x), -float64(y) * m.cellAspect}

	down := ev.Buttons()&tcell.ButtonPrimary != 0
	switch {
	case down && !m.dragging:
		m.dragging = true
		m.joystick.Press(pos)
	case down && m.dragging:
		m.joystick.Drag(pos)
	case !down && m.dragging:
		m.dragging = false
		m.joystick.Release()
	}
}

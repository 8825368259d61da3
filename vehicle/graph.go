package vehicle

import (
	_ "embed"
	"fmt"

	"github.com/lixenwraith/trickbike/engine/fsm"
)

//go:embed graph/jump.toml
var jumpGraph []byte

//go:embed graph/trick.toml
var trickGraph []byte

// loadMachine builds and initializes a vehicle state machine from an embedded graph
// Returns the machine and the ID of the named anchor state
func loadMachine(v *Vehicle, graph []byte, anchor string,
	guards map[string]fsm.GuardFunc[*Vehicle], actions map[string]fsm.ActionFunc[*Vehicle],
) (*fsm.Machine[*Vehicle], fsm.StateID, error) {
	m := fsm.NewMachine[*Vehicle]()
	for name, g := range guards {
		m.RegisterGuard(name, g)
	}
	for name, a := range actions {
		m.RegisterAction(name, a)
	}

	initial, err := m.LoadConfig(graph)
	if err != nil {
		return nil, fsm.StateNone, err
	}
	id, ok := m.GetStateID(anchor)
	if !ok {
		return nil, fsm.StateNone, fmt.Errorf("graph has no '%s' state", anchor)
	}
	if err := m.Init(v, initial); err != nil {
		return nil, fsm.StateNone, err
	}
	return m, id, nil
}

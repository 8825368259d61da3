package fsm

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/spf13/viper"
)

// RegisterGuard makes a guard available to LoadConfig by name
func (m *Machine[T]) RegisterGuard(name string, g GuardFunc[T]) {
	m.guardReg[name] = g
}

// RegisterAction makes an action available to LoadConfig by name
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// LoadConfig parses a TOML graph and populates the Machine
// Guards and actions must be registered beforehand
// Clears existing graph data and returns the initial state ID
func (m *Machine[T]) LoadConfig(data []byte) (StateID, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return StateNone, fmt.Errorf("failed to parse FSM config: %w", err)
	}

	var cfg GraphConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return StateNone, fmt.Errorf("failed to decode FSM config: %w", err)
	}
	return m.LoadGraph(cfg)
}

// LoadGraph builds nodes from a decoded graph
// IDs are assigned from 1 in sorted name order so they are stable across loads
func (m *Machine[T]) LoadGraph(cfg GraphConfig) (StateID, error) {
	if len(cfg.States) == 0 {
		return StateNone, fmt.Errorf("FSM config declares no states")
	}

	m.nodes = make(map[StateID]*Node[T])
	m.order = m.order[:0]
	m.activeStateID = StateNone

	names := make([]string, 0, len(cfg.States))
	for name := range cfg.States {
		names = append(names, name)
	}
	sort.Strings(names)

	nameToID := make(map[string]StateID, len(names))
	for i, name := range names {
		nameToID[name] = StateID(i + 1)
	}

	for _, name := range names {
		sc := cfg.States[name]
		node := m.AddState(nameToID[name], name)
		if sc == nil {
			continue
		}

		var err error
		if node.OnEnter, err = m.compileActions(sc.OnEnter); err != nil {
			return StateNone, fmt.Errorf("state '%s' on_enter: %w", name, err)
		}
		if node.OnUpdate, err = m.compileActions(sc.OnUpdate); err != nil {
			return StateNone, fmt.Errorf("state '%s' on_update: %w", name, err)
		}
		if node.OnExit, err = m.compileActions(sc.OnExit); err != nil {
			return StateNone, fmt.Errorf("state '%s' on_exit: %w", name, err)
		}
		if err := m.compileTransitions(node, sc.Transitions, nameToID); err != nil {
			return StateNone, fmt.Errorf("state '%s' transitions: %w", name, err)
		}
	}

	initialID, ok := nameToID[cfg.Initial]
	if !ok {
		return StateNone, fmt.Errorf("initial state '%s' not found", cfg.Initial)
	}
	m.InitialStateID = initialID
	return initialID, nil
}

// GetStateID resolves a state name to ID
func (m *Machine[T]) GetStateID(name string) (StateID, bool) {
	for id, node := range m.nodes {
		if node.Name == name {
			return id, true
		}
	}
	return StateNone, false
}

func (m *Machine[T]) compileActions(configs []ActionConfig) ([]Action[T], error) {
	actions := make([]Action[T], 0, len(configs))
	for _, cfg := range configs {
		fn, ok := m.actionReg[cfg.Action]
		if !ok {
			return nil, fmt.Errorf("unknown action function '%s'", cfg.Action)
		}
		actions = append(actions, Action[T]{Name: cfg.Action, Func: fn})
	}
	return actions, nil
}

func (m *Machine[T]) compileTransitions(node *Node[T], configs []TransitionConfig, nameToID map[string]StateID) error {
	for _, cfg := range configs {
		targetID, ok := nameToID[cfg.Target]
		if !ok {
			return fmt.Errorf("transition references unknown target '%s'", cfg.Target)
		}

		var guard GuardFunc[T]
		if cfg.Guard != "" {
			g, ok := m.guardReg[cfg.Guard]
			if !ok {
				return fmt.Errorf("unknown guard '%s'", cfg.Guard)
			}
			guard = g
		}

		node.Transitions = append(node.Transitions, Transition[T]{
			TargetID: targetID,
			Guard:    guard,
		})
	}
	return nil
}

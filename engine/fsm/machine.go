package fsm

import "fmt"

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:     make(map[StateID]*Node[T]),
		guardReg:  make(map[string]GuardFunc[T]),
		actionReg: make(map[string]ActionFunc[T]),
	}
}

// Init validates the graph and enters the initial state
func (m *Machine[T]) Init(ctx T, initial StateID) error {
	if err := m.Validate(); err != nil {
		return err
	}
	node, ok := m.nodes[initial]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", initial)
	}
	m.InitialStateID = initial
	m.activeStateID = initial
	m.timeInState = 0
	m.transitions = 0
	runActions(ctx, node.OnEnter, 0)
	return nil
}

// Update evaluates tick transitions first, at most one per call, then runs
// the OnUpdate actions of the resulting state
func (m *Machine[T]) Update(ctx T, dt float64) {
	if m.activeStateID == StateNone {
		return
	}

	node := m.nodes[m.activeStateID]
	for _, trans := range node.Transitions {
		if trans.Guard == nil || trans.Guard(ctx) {
			m.transition(ctx, trans.TargetID)
			break
		}
	}

	m.timeInState += dt
	runActions(ctx, m.nodes[m.activeStateID].OnUpdate, dt)
}

// Force performs an external transition regardless of guards
// Returns false if the target is unknown or already active
func (m *Machine[T]) Force(ctx T, targetID StateID) bool {
	if m.activeStateID == StateNone || m.activeStateID == targetID {
		return false
	}
	if _, ok := m.nodes[targetID]; !ok {
		return false
	}
	m.transition(ctx, targetID)
	return true
}

// transition runs OnExit of the current state then OnEnter of the target
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.activeStateID == targetID {
		return
	}
	target, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: Attempted transition to unknown state ID %d", targetID))
	}

	runActions(ctx, m.nodes[m.activeStateID].OnExit, 0)
	m.activeStateID = targetID
	m.timeInState = 0
	m.transitions++
	runActions(ctx, target.OnEnter, 0)
}

func runActions[T any](ctx T, actions []Action[T], dt float64) {
	for _, action := range actions {
		action.Func(ctx, dt)
	}
}

// Current returns the active state ID, StateNone before Init
func (m *Machine[T]) Current() StateID {
	return m.activeStateID
}

// In reports whether id is the active state
func (m *Machine[T]) In(id StateID) bool {
	return m.activeStateID == id
}

// StateName returns the name of the active state
func (m *Machine[T]) StateName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return "none"
}

// TimeInState returns seconds elapsed since the last transition
func (m *Machine[T]) TimeInState() float64 {
	return m.timeInState
}

// Transitions returns the number of transitions taken since Init
func (m *Machine[T]) Transitions() uint64 {
	return m.transitions
}

package fsm

import "fmt"

// AddState adds a node to the machine
func (m *Machine[T]) AddState(id StateID, name string) *Node[T] {
	node := &Node[T]{
		ID:          id,
		Name:        name,
		Transitions: make([]Transition[T], 0),
		OnEnter:     make([]Action[T], 0),
		OnUpdate:    make([]Action[T], 0),
		OnExit:      make([]Action[T], 0),
	}
	if _, exists := m.nodes[id]; !exists {
		m.order = append(m.order, id)
	}
	m.nodes[id] = node
	return node
}

// AddTransition adds a transition to a specific node
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) {
	if node, ok := m.nodes[sourceID]; ok {
		node.Transitions = append(node.Transitions, t)
	}
}

// Enter appends an OnEnter action
func (n *Node[T]) Enter(name string, fn ActionFunc[T]) *Node[T] {
	n.OnEnter = append(n.OnEnter, Action[T]{Name: name, Func: fn})
	return n
}

// Tick appends an OnUpdate action
func (n *Node[T]) Tick(name string, fn ActionFunc[T]) *Node[T] {
	n.OnUpdate = append(n.OnUpdate, Action[T]{Name: name, Func: fn})
	return n
}

// Exit appends an OnExit action
func (n *Node[T]) Exit(name string, fn ActionFunc[T]) *Node[T] {
	n.OnExit = append(n.OnExit, Action[T]{Name: name, Func: fn})
	return n
}

// Validate checks that every transition targets a known state
func (m *Machine[T]) Validate() error {
	if len(m.nodes) == 0 {
		return fmt.Errorf("FSM has no states")
	}
	for _, id := range m.order {
		node := m.nodes[id]
		if id == StateNone {
			return fmt.Errorf("state %q uses reserved ID %d", node.Name, StateNone)
		}
		for i, t := range node.Transitions {
			if _, ok := m.nodes[t.TargetID]; !ok {
				return fmt.Errorf("state %q transition %d targets unknown state %d", node.Name, i, t.TargetID)
			}
		}
	}
	return nil
}

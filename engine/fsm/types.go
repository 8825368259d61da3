package fsm

// StateID is a unique identifier for a node
type StateID int

const StateNone StateID = 0

// Machine is a flat finite state machine runtime
// T is the context type passed to actions and guards (e.g., *vehicle.Vehicle)
type Machine[T any] struct {
	// Graph Data (Immutable after Init)
	nodes map[StateID]*Node[T]
	order []StateID

	// Configuration
	InitialStateID StateID

	// Registries for config-driven graphs
	guardReg  map[string]GuardFunc[T]
	actionReg map[string]ActionFunc[T]

	// Runtime State
	activeStateID StateID
	timeInState   float64 // seconds in current state
	transitions   uint64  // total transitions taken since Init
}

// Node represents a single state
type Node[T any] struct {
	ID   StateID
	Name string

	// Lifecycle Actions
	OnEnter  []Action[T]
	OnUpdate []Action[T]
	OnExit   []Action[T]

	// Tick transitions in evaluation priority
	Transitions []Transition[T]
}

// Transition defines a guarded link between states
type Transition[T any] struct {
	TargetID StateID
	Guard    GuardFunc[T] // nil = Always true
}

// Action represents a side-effect
type Action[T any] struct {
	Name string
	Func ActionFunc[T]
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect, dt is the tick duration in seconds
type ActionFunc[T any] func(ctx T, dt float64)

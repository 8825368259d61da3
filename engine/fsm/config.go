package fsm

// GraphConfig is the decoded form of a TOML state graph
type GraphConfig struct {
	Initial string                  `mapstructure:"initial"`
	States  map[string]*StateConfig `mapstructure:"states"`
}

// StateConfig represents a single state definition
type StateConfig struct {
	OnEnter     []ActionConfig     `mapstructure:"on_enter"`
	OnUpdate    []ActionConfig     `mapstructure:"on_update"`
	OnExit      []ActionConfig     `mapstructure:"on_exit"`
	Transitions []TransitionConfig `mapstructure:"transitions"`
}

// TransitionConfig represents a tick transition, evaluated in declaration order
type TransitionConfig struct {
	Target string `mapstructure:"target"`
	Guard  string `mapstructure:"guard"` // empty = always
}

// ActionConfig names a registered action
type ActionConfig struct {
	Action string `mapstructure:"action"`
}

package input

// IntentType discriminates sandbox actions that are not vehicle controls
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit       // q, Esc, Ctrl+C
	IntentToggleMute // m
	IntentResize     // Terminal resize event

	// Simulation control
	IntentRespawn    // r
	IntentCheckpoint // c, store the current pose as checkpoint
	IntentPause      // p
	IntentStep       // . single frame while paused
	IntentToggleHelp // ?
)

// Intent is a resolved sandbox action
type Intent struct {
	Type IntentType
}

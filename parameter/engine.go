package parameter

import "time"

// Simulation Loop Timing
const (
	// FrameUpdateInterval is the variable-rate frame tick target (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// FixedTimeStep is the physics tick duration in seconds (50 Hz)
	FixedTimeStep = 0.02

	// MaxSubSteps caps physics steps per frame; excess accumulated time is dropped
	MaxSubSteps = 8

	// MaxFrameDelta clamps a single frame delta in seconds (debugger pauses, suspended terminals)
	MaxFrameDelta = 0.25
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "trickbike.log"

	// MaxLogSize triggers rotation to a timestamped backup (10 MiB)
	MaxLogSize = 10 * 1024 * 1024
)

// Telemetry
const (
	// MetricsInstrumentationName is the otel meter scope
	MetricsInstrumentationName = "github.com/lixenwraith/trickbike/metrics"
)

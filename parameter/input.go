package parameter

import "time"

// Keyboard
const (
	// KeyHoldWindow keeps a key held after its last press event, terminals report no key-up
	KeyHoldWindow = 120 * time.Millisecond

	// KeyRepeatGrace extends the first press to bridge the OS auto-repeat delay
	KeyRepeatGrace = 500 * time.Millisecond
)

// Gesture joystick
const (
	JoystickDeadzone = 0.1

	// JoystickSectorAngle is the half-width in degrees of the up (nitro) and down (charge) sectors
	JoystickSectorAngle = 45.0

	// JoystickActionThreshold is the magnitude required to enter a nitro or charge sector
	JoystickActionThreshold = 0.85

	// JoystickRadius is the drag distance in terminal cells mapped to full deflection
	JoystickRadius = 8.0

	// JoystickQueueSize bounds pending pointer events between polls
	JoystickQueueSize = 64
)

package vehicle

import "github.com/go-gl/mathgl/mgl64"

// EventType discriminates vehicle events
type EventType uint8

const (
	EventNone EventType = iota
	EventTakeoff
	EventLand
	EventJump          // Magnitude = impulse
	EventJumpDiscarded // charge released while airborne, Magnitude = discarded charge
	EventTrickStart    // Magnitude = trick vector length
	EventTrickEnd
	EventCrash // Magnitude = explosion amount at landing
	EventBoostStart
	EventBoostStop
	EventNitroEmpty
)

var eventNames = [...]string{
	EventNone:          "none",
	EventTakeoff:       "takeoff",
	EventLand:          "land",
	EventJump:          "jump",
	EventJumpDiscarded: "jump_discarded",
	EventTrickStart:    "trick_start",
	EventTrickEnd:      "trick_end",
	EventCrash:         "crash",
	EventBoostStart:    "boost_start",
	EventBoostStop:     "boost_stop",
	EventNitroEmpty:    "nitro_empty",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event is emitted to observers during a frame or physics tick
type Event struct {
	Type      EventType
	Time      float64 // simulation seconds
	Magnitude float64
	Position  mgl64.Vec3
}

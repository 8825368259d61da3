package input

// Selector routes polling to the gesture source while a pointer is down, the keyboard otherwise
type Selector struct {
	keyboard Source
	gesture  *Joystick
	last     SourceKind
}

// SourceKind names the source that produced the last frame
type SourceKind uint8

const (
	SourceKeyboard SourceKind = iota
	SourceGesture
)

func (k SourceKind) String() string {
	if k == SourceGesture {
		return "gesture"
	}
	return "keyboard"
}

// NewSelector pairs a keyboard-style source with an optional joystick
func NewSelector(keyboard Source, gesture *Joystick) *Selector {
	return &Selector{keyboard: keyboard, gesture: gesture}
}

// Poll implements Source
// The joystick is always drained so a release is observed even when the keyboard wins
func (s *Selector) Poll() Frame {
	if s.gesture != nil {
		f := s.gesture.Poll()
		if s.gesture.Active() {
			s.last = SourceGesture
			return f
		}
	}
	s.last = SourceKeyboard
	if s.keyboard == nil {
		return Frame{}
	}
	return s.keyboard.Poll()
}

// SetActionThreshold forwards to the joystick
func (s *Selector) SetActionThreshold(v float64) {
	if s.gesture != nil {
		s.gesture.SetActionThreshold(v)
	}
}

// Last returns the source kind used by the most recent Poll
func (s *Selector) Last() SourceKind {
	return s.last
}

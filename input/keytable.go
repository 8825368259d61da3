package input

import "github.com/gdamore/tcell/v2"

// KeyBehavior classifies how a key is processed
type KeyBehavior uint8

const (
	BehaviorNone   KeyBehavior = iota
	BehaviorDrive              // feeds the keyboard Source
	BehaviorSystem             // emits an Intent
)

// KeyEntry describes a key's behavior without function pointers
type KeyEntry struct {
	Behavior   KeyBehavior
	Drive      DriveKey
	IntentType IntentType
}

// KeyTable maps terminal keys to behaviors
type KeyTable struct {
	// Special keys (Ctrl+*, arrows)
	SpecialKeys map[tcell.Key]KeyEntry

	// Printable rune bindings
	Runes map[rune]KeyEntry
}

func drive(k DriveKey) KeyEntry    { return KeyEntry{Behavior: BehaviorDrive, Drive: k} }
func system(t IntentType) KeyEntry { return KeyEntry{Behavior: BehaviorSystem, IntentType: t} }

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC:  system(IntentQuit),
			tcell.KeyEscape: system(IntentQuit),
			tcell.KeyLeft:   drive(KeySteerLeft),
			tcell.KeyRight:  drive(KeySteerRight),
			tcell.KeyUp:     drive(KeyThrottle),
			tcell.KeyDown:   drive(KeyBrake),
			tcell.KeyTab:    drive(KeyBoost),
		},
		Runes: map[rune]KeyEntry{
			'a': drive(KeySteerLeft),
			'd': drive(KeySteerRight),
			'w': drive(KeyThrottle),
			's': drive(KeyBrake),
			' ': drive(KeyPrimary),
			'n': drive(KeyBoost),
			'N': drive(KeyBoost),
			'q': system(IntentQuit),
			'r': system(IntentRespawn),
			'c': system(IntentCheckpoint),
			'm': system(IntentToggleMute),
			'p': system(IntentPause),
			'.': system(IntentStep),
			'?': system(IntentToggleHelp),
		},
	}
}

// Lookup returns the entry bound to a key event
func (t *KeyTable) Lookup(ev *tcell.EventKey) (KeyEntry, bool) {
	if ev.Key() == tcell.KeyRune {
		e, ok := t.Runes[ev.Rune()]
		return e, ok
	}
	e, ok := t.SpecialKeys[ev.Key()]
	return e, ok
}

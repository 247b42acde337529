package core

// Action represents a platform-level intent, abstracted from physical key presses.
// Gameplay keys travel separately as KeyEvents.
type Action int

const (
	ActionNone    Action = iota
	ActionPause          // P, Enter - pause/unpause
	ActionRestart        // R - restart after the session ended
	ActionBack           // Esc - abandon the session, back to setup
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// KeySpace is the key value used for the space bar.
const KeySpace = ' '

// KeyEvent is a normalized key press: letters are uppercase and
// Shift reports whether the shift modifier was held.
type KeyEvent struct {
	Key   rune
	Shift bool
}

// InputFrame collects everything the player did between two ticks.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Keys holds gameplay key presses in arrival order.
	Keys []KeyEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Press appends a gameplay key event.
func (f *InputFrame) Press(ev KeyEvent) {
	f.Keys = append(f.Keys, ev)
}

// Clear resets all actions and keys for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Keys = f.Keys[:0]
}

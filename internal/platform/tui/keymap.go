package tui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/circuit-breach/internal/core"
)

// KeyMap holds the platform key bindings. Gameplay letters are not bound
// here; any letter that is not a platform key reaches the game.
type KeyMap struct {
	Columns  key.Binding
	Encrypt  key.Binding
	Virus    key.Binding
	Powerups key.Binding
	Pause    key.Binding
	Restart  key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the bindings used by the local and SSH front-ends.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Columns: key.NewBinding(
			key.WithKeys("z", "x", "c", "v", "b"),
			key.WithHelp("z-b", "hit"),
		),
		Encrypt: key.NewBinding(
			key.WithKeys("Z", "X", "C", "V", "B"),
			key.WithHelp("shift", "decrypt"),
		),
		Virus: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "virus"),
		),
		Powerups: key.NewBinding(
			key.WithKeys("1", "2", "3"),
			key.WithHelp("1-3", "power-up"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "enter"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "setup"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Columns, k.Encrypt, k.Virus, k.Powerups, k.Pause, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Columns, k.Encrypt, k.Virus, k.Powerups},
		{k.Pause, k.Restart, k.Back, k.Quit},
	}
}

// KeyMapper translates Bubble Tea key messages to platform actions and
// gameplay key events. This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings, for the help line.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to a platform action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.keys.Pause):
		return core.ActionPause, false
	case key.Matches(msg, km.keys.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, km.keys.Back):
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// GameKey normalizes a key message into a gameplay event. Letters are
// uppercased and an uppercase letter means shift was held. Platform keys
// never produce a gameplay event.
func (km *KeyMapper) GameKey(msg tea.KeyMsg) (core.KeyEvent, bool) {
	if action, _ := km.MapKey(msg); action != core.ActionNone {
		return core.KeyEvent{}, false
	}
	if msg.Type == tea.KeySpace {
		return core.KeyEvent{Key: core.KeySpace}, true
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return core.KeyEvent{}, false
	}

	r := msg.Runes[0]
	switch {
	case r == core.KeySpace:
		return core.KeyEvent{Key: core.KeySpace}, true
	case unicode.IsDigit(r):
		return core.KeyEvent{Key: r}, true
	case unicode.IsLetter(r):
		return core.KeyEvent{Key: unicode.ToUpper(r), Shift: unicode.IsUpper(r)}, true
	}
	return core.KeyEvent{}, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
		return isQuit
	}
	if ev, ok := km.GameKey(msg); ok {
		frame.Press(ev)
	}
	return false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "esc":
		return MenuActionBack
	}
	return MenuActionNone
}

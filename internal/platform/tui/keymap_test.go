package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/circuit-breach/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestGameKeyNormalization(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.KeyEvent
		ok   bool
	}{
		{"lowercase column", runeKey('z'), core.KeyEvent{Key: 'Z'}, true},
		{"uppercase means shift", runeKey('X'), core.KeyEvent{Key: 'X', Shift: true}, true},
		{"space key", tea.KeyMsg{Type: tea.KeySpace}, core.KeyEvent{Key: core.KeySpace}, true},
		{"powerup digit", runeKey('2'), core.KeyEvent{Key: '2'}, true},
		{"other letter", runeKey('m'), core.KeyEvent{Key: 'M'}, true},
		{"shifted quit letter", runeKey('Q'), core.KeyEvent{Key: 'Q', Shift: true}, true},
		{"quit", runeKey('q'), core.KeyEvent{}, false},
		{"pause", runeKey('p'), core.KeyEvent{}, false},
		{"restart", runeKey('r'), core.KeyEvent{}, false},
		{"arrow", tea.KeyMsg{Type: tea.KeyUp}, core.KeyEvent{}, false},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, core.KeyEvent{}, false},
		{"punctuation", runeKey(';'), core.KeyEvent{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := km.GameKey(tt.msg)
			if ok != tt.ok || got != tt.want {
				t.Errorf("GameKey = %+v, %v; want %+v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMapKeyActions(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"q quits", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"p pauses", runeKey('p'), core.ActionPause, false},
		{"enter pauses", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionPause, false},
		{"r restarts", runeKey('r'), core.ActionRestart, false},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"column key", runeKey('z'), core.ActionNone, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey = %v, %v; want %v, %v", action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	for _, msg := range []tea.KeyMsg{runeKey('z'), runeKey('C'), runeKey('p'), {Type: tea.KeySpace}} {
		if km.MapKeyToFrame(msg, &frame) {
			t.Fatalf("%q reported quit", msg.String())
		}
	}

	want := []core.KeyEvent{{Key: 'Z'}, {Key: 'C', Shift: true}, {Key: core.KeySpace}}
	if len(frame.Keys) != len(want) {
		t.Fatalf("keys = %+v, want %+v", frame.Keys, want)
	}
	for i := range want {
		if frame.Keys[i] != want[i] {
			t.Errorf("key %d = %+v, want %+v", i, frame.Keys[i], want[i])
		}
	}
	if !frame.Has(core.ActionPause) {
		t.Error("pause action not set")
	}

	if !km.MapKeyToFrame(runeKey('q'), &frame) {
		t.Error("q did not report quit")
	}
}

func TestMenuActions(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, MenuActionLeft},
		{runeKey('l'), MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('z'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

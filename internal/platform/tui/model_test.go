package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/circuit-breach/internal/config"
	"github.com/vovakirdan/circuit-breach/internal/games/breach"
)

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		mm, ok := next.(Model)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = mm
	}
	return m
}

func newPlaying(t *testing.T, sel Selection) Model {
	t.Helper()
	m := NewModel(Options{Runtime: testRuntime(), Preset: sel, SkipSetup: true})
	if m.Err() != nil {
		t.Fatalf("NewModel: %v", m.Err())
	}
	if !m.inGame {
		t.Fatal("SkipSetup did not start a game")
	}
	return m
}

func breachGame(t *testing.T, m Model) *breach.Game {
	t.Helper()
	g, ok := m.game.(*breach.Game)
	if !ok {
		t.Fatalf("game is %T", m.game)
	}
	return g
}

func TestSkipSetupAppliesSelection(t *testing.T) {
	m := newPlaying(t, Selection{GameID: "breach4", Difficulty: config.LevelN3})
	s := breachGame(t, m).Session()

	if s.Lanes() != 4 {
		t.Errorf("lanes = %d, want 4", s.Lanes())
	}
	if s.Config().Difficulty.Level != 3 {
		t.Errorf("difficulty = %d, want 3", s.Config().Difficulty.Level)
	}
	if s.Status() != breach.StatusPlaying {
		t.Errorf("status = %v, want playing", s.Status())
	}
}

func TestUnknownVariantFails(t *testing.T) {
	m := NewModel(Options{Runtime: testRuntime(), Preset: Selection{GameID: "nope"}, SkipSetup: true})
	if m.Err() == nil {
		t.Fatal("expected an error for an unknown variant")
	}
	if m.inGame {
		t.Error("model entered a game after failing")
	}
}

func TestMenuEnterStartsGame(t *testing.T) {
	m := NewModel(Options{Runtime: testRuntime(), Preset: Selection{GameID: "breach", Difficulty: config.LevelN2}})
	if m.inGame {
		t.Fatal("model skipped the setup screen")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.inGame {
		t.Fatal("Enter on Start did not start a game")
	}
	if got := m.game.ID(); got != "breach" {
		t.Errorf("game = %q, want breach", got)
	}
}

func TestKeysResolveOnTick(t *testing.T) {
	m := newPlaying(t, Selection{GameID: "breach", Difficulty: config.LevelN1})
	s := breachGame(t, m).Session()

	// Empty capture band: a column key is an error, but only once the tick runs.
	m = send(t, m, runeKey('z'))
	if s.TotalErrors() != 0 {
		t.Fatal("key resolved before the tick")
	}
	m = send(t, m, TickMsg{})
	if s.TotalErrors() != 1 {
		t.Errorf("total errors = %d, want 1", s.TotalErrors())
	}
	if len(m.inputFrame.Keys) != 0 {
		t.Error("input frame not cleared after tick")
	}
}

func TestPauseToggle(t *testing.T) {
	m := newPlaying(t, Selection{GameID: "breach", Difficulty: config.LevelN1})

	m = send(t, m, runeKey('p'), TickMsg{})
	if !m.gameState.Paused {
		t.Fatal("p did not pause")
	}
	m = send(t, m, runeKey('p'), TickMsg{})
	if m.gameState.Paused {
		t.Error("second p did not resume")
	}
}

func TestEscAbandonsToSetup(t *testing.T) {
	m := newPlaying(t, Selection{GameID: "breach4", Difficulty: config.LevelN4})
	s := breachGame(t, m).Session()

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.inGame {
		t.Fatal("Esc did not leave the game")
	}
	if s.Status() != breach.StatusAbandoned {
		t.Errorf("session status = %v, want abandoned", s.Status())
	}
	if m.menu.items[m.menu.variant].GameID != "breach4" || m.menu.level != config.LevelN4 {
		t.Error("setup screen lost the previous selection")
	}

	// Stray ticks from the old loop are ignored by the menu.
	m = send(t, m, TickMsg{})
	if m.inGame {
		t.Error("tick restarted the game")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	m := newPlaying(t, Selection{GameID: "breach", Difficulty: config.LevelN1})
	ended := breachGame(t, m).Session()

	// Restart is ignored while the session is running.
	m = send(t, m, runeKey('r'), TickMsg{})
	if breachGame(t, m).Session() != ended {
		t.Fatal("r restarted a running session")
	}

	breachGame(t, m).Abandon()
	m = send(t, m, TickMsg{})
	if !m.gameState.GameOver {
		t.Fatal("abandoned session not reported as game over")
	}

	m = send(t, m, runeKey('r'), TickMsg{})
	s := breachGame(t, m).Session()
	if s == ended {
		t.Fatal("r after game over kept the old session")
	}
	if s.Status() != breach.StatusPlaying || m.gameState.GameOver {
		t.Errorf("restarted status = %v, game over = %v", s.Status(), m.gameState.GameOver)
	}
}

func TestResizeKeepsSession(t *testing.T) {
	m := newPlaying(t, Selection{GameID: "breach", Difficulty: config.LevelN1})
	before := breachGame(t, m).Session()

	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if breachGame(t, m).Session() != before {
		t.Error("resize replaced the session")
	}
	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, want 120x39", m.screen.Width(), m.screen.Height())
	}
}

func TestViewShowsGameAndHelp(t *testing.T) {
	m := newPlaying(t, Selection{GameID: "breach", Difficulty: config.LevelN1})
	m = send(t, m, tea.WindowSizeMsg{Width: 140, Height: 30})
	view := m.View()

	if !strings.Contains(view, "CIRCUIT BREACH") {
		t.Errorf("view missing title:\n%s", view)
	}
	if !strings.Contains(view, "quit") {
		t.Errorf("view missing help line:\n%s", view)
	}
}

func TestQuitKey(t *testing.T) {
	m := newPlaying(t, Selection{GameID: "breach", Difficulty: config.LevelN1})
	m = send(t, m, runeKey('q'))
	if !m.quitting {
		t.Error("q did not quit")
	}
	if m.View() != "" {
		t.Error("quitting model still renders")
	}
}

package breach

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/circuit-breach/internal/config"
	"github.com/vovakirdan/circuit-breach/internal/core"
	"github.com/vovakirdan/circuit-breach/internal/registry"
)

func init() {
	registry.Register("breach", func() registry.Game { return NewGame(5) })
	registry.Register("breach4", func() registry.Game { return NewGame(4) })
}

// Game adapts a Session to the fixed-tick registry.Game interface.
// Each Step resolves the queued keys in arrival order, then advances the
// session clock by one tick interval.
type Game struct {
	lanes   int
	cfg     config.BreachConfig
	runtime core.RuntimeConfig
	log     *log.Logger

	session     *Session
	now         time.Duration
	tick        uint64
	lastOutcome Outcome
}

// NewGame creates a game with the given lane count and the default
// configuration.
func NewGame(lanes int) *Game {
	return &Game{
		lanes: lanes,
		cfg:   config.DefaultBreachConfig(),
		log:   log.NewWithOptions(io.Discard, log.Options{}),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.lanes == 4 {
		return "breach4"
	}
	return "breach"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.lanes == 4 {
		return "Circuit Breach (4 lanes)"
	}
	return "Circuit Breach"
}

// Configure replaces the configuration used by the next Reset. The lane
// count stays the one this game was registered with.
func (g *Game) Configure(cfg config.BreachConfig) error {
	if err := config.ApplySettings(&cfg, g.lanes, 0); err != nil {
		return fmt.Errorf("breach: %w", err)
	}
	g.cfg = cfg
	return nil
}

// SetLogger sets the logger handed to every new session.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.log = l
	}
}

// Reset starts a fresh session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.now = 0
	g.tick = 0
	g.lastOutcome = OutcomeIgnored

	s, err := NewSession(g.cfg, Settings{Lanes: g.lanes}, cfg.Seed, WithLogger(g.log))
	if err != nil {
		g.log.Error("invalid configuration, using defaults", "err", err)
		s, _ = NewSession(config.HardcodedBreachConfig(), Settings{Lanes: g.lanes}, cfg.Seed, WithLogger(g.log))
	}
	g.session = s
	g.session.Start(g.now)
}

// Step advances the simulation by one fixed tick. Restarting is the
// platform's job: it picks the next seed and calls Reset.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionPause) {
		g.TogglePause()
	}

	if g.session.Status() == StatusPlaying {
		for _, ev := range in.Keys {
			g.lastOutcome = g.session.HandleKey(ev)
		}
		g.now += g.runtime.TickInterval()
		g.session.Tick(g.now)
	}
	return core.StepResult{State: g.State()}
}

// TogglePause pauses a playing session or resumes a paused one.
func (g *Game) TogglePause() {
	switch g.session.Status() {
	case StatusPlaying:
		g.session.Pause()
	case StatusPaused:
		g.session.Resume(g.now)
	}
}

// Abandon ends the current session without a result.
func (g *Game) Abandon() {
	if g.session != nil {
		g.session.Abandon()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := g.session.Status()
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: st == StatusEnded || st == StatusAbandoned,
		Paused:   st == StatusPaused,
	}
}

// Session returns the running session.
func (g *Game) Session() *Session {
	return g.session
}

// LastOutcome returns the outcome of the most recent key press.
func (g *Game) LastOutcome() Outcome {
	return g.lastOutcome
}

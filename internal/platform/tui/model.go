package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/circuit-breach/internal/config"
	"github.com/vovakirdan/circuit-breach/internal/core"
	"github.com/vovakirdan/circuit-breach/internal/registry"
)

// Options configures a Model.
type Options struct {
	Runtime core.RuntimeConfig
	Config  config.BreachConfig
	Logger  *log.Logger

	// Preset is the initial setup. With SkipSetup the session starts
	// straight away using it.
	Preset    Selection
	SkipSetup bool
}

// abandoner is implemented by games that can be left mid-session.
type abandoner interface {
	Abandon()
}

// loggable is implemented by games that accept a logger.
type loggable interface {
	SetLogger(l *log.Logger)
}

// Model is the Bubble Tea model for one player: the setup screen, then a
// running game, then back to setup on Esc.
type Model struct {
	menu       MenuModel
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	breachCfg  config.BreachConfig
	logger     *log.Logger
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	selection  Selection
	fixedSeed  bool
	inGame     bool
	quitting   bool
	err        error
}

// NewModel creates a Bubble Tea model.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	breachCfg := opts.Config
	if breachCfg.Lanes == 0 {
		breachCfg = config.DefaultBreachConfig()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	m := Model{
		menu:       NewMenuModel(cfg, opts.Preset),
		screen:     core.NewScreen(cfg.ScreenW, gameRows(cfg.ScreenH)),
		config:     cfg,
		breachCfg:  breachCfg,
		logger:     logger,
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		fixedSeed:  fixed,
	}
	m.help.Width = cfg.ScreenW

	if opts.SkipSetup {
		if err := m.startGame(opts.Preset); err != nil {
			m.err = err
		}
	}
	return m
}

// gameRows leaves the last terminal row for the help line.
func gameRows(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.err != nil {
		return tea.Quit
	}
	if m.inGame {
		return tickCmd(m.config.TickRate)
	}
	return m.menu.Init()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		return m.handleResize(wsm)
	}

	if m.inGame {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			return m.handleKey(msg)
		case TickMsg:
			return m.handleTick()
		}
		return m, nil
	}
	return m.updateMenu(msg)
}

// updateMenu forwards to the setup screen and starts a game once a
// selection is made.
func (m Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if sel := m.menu.Selected(); sel != nil {
		if err := m.startGame(*sel); err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		return m, tickCmd(m.config.TickRate)
	}

	return m, cmd
}

// startGame creates the selected variant, applies the difficulty and
// resets it with the current runtime config.
func (m *Model) startGame(sel Selection) error {
	game, err := registry.Create(sel.GameID)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	if c, ok := game.(registry.Configurable); ok {
		cfg := m.breachCfg
		if err := config.ApplySettings(&cfg, 0, sel.Difficulty); err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		if err := c.Configure(cfg); err != nil {
			return fmt.Errorf("tui: %w", err)
		}
	}
	if l, ok := game.(loggable); ok {
		l.SetLogger(m.logger)
	}

	m.logger.Debug("starting game", "game", sel.GameID, "difficulty", sel.Difficulty, "seed", m.config.Seed)
	game.Reset(m.config)
	m.game = game
	m.selection = sel
	m.gameState = game.State()
	m.inputFrame.Clear()
	m.inGame = true
	return nil
}

// handleKey queues keyboard input for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		return m.backToSetup()
	}
	return m, nil
}

// backToSetup abandons the running session and shows the setup screen.
func (m Model) backToSetup() (tea.Model, tea.Cmd) {
	if a, ok := m.game.(abandoner); ok {
		a.Abandon()
	}
	m.logger.Debug("back to setup", "game", m.game.ID(), "score", m.game.State().Score)

	m.menu = NewMenuModel(m.config, m.selection)
	m.game = nil
	m.inGame = false
	m.inputFrame.Clear()
	return m, m.menu.Init()
}

// handleResize resizes the screen. The running session is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameRows(msg.Height))
	m.help.Width = msg.Width

	newMenu, _ := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.inGame {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		if !m.fixedSeed {
			m.config.Seed = time.Now().UnixNano()
		}
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.inGame {
		return m.menu.View()
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keyMapper.Keys())
}

// Err returns the error that stopped the model, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

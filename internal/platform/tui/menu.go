package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/circuit-breach/internal/config"
	"github.com/vovakirdan/circuit-breach/internal/core"
	"github.com/vovakirdan/circuit-breach/internal/registry"
)

// MenuItem represents a selectable game variant in the setup screen.
type MenuItem struct {
	GameID string
	Title  string
}

// Selection is what the setup screen hands to the game.
type Selection struct {
	GameID     string
	Difficulty config.DifficultyLevel
}

// Setup screen rows.
const (
	rowVariant = iota
	rowDifficulty
	rowStart
	rowCount
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	menuCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// MenuModel is the Bubble Tea model for the setup screen: the lane variant
// and the difficulty level are picked here before a session starts.
type MenuModel struct {
	items     []MenuItem
	variant   int
	level     config.DifficultyLevel
	row       int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *Selection // Set when user starts a session
}

// NewMenuModel creates a setup screen listing every registered variant.
// The preset picks the initial variant and difficulty.
func NewMenuModel(cfg core.RuntimeConfig, preset Selection) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	variant := 0
	for i, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title})
		if g.ID == preset.GameID {
			variant = i
		}
	}

	level := preset.Difficulty
	if level < config.LevelN1 || level > config.LevelN5 {
		level = config.LevelN1
	}

	return MenuModel{
		items:     items,
		variant:   variant,
		level:     level,
		row:       rowStart,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.row > 0 {
			m.row--
		}

	case MenuActionDown:
		if m.row < rowCount-1 {
			m.row++
		}

	case MenuActionLeft:
		m.cycle(-1)

	case MenuActionRight:
		m.cycle(1)

	case MenuActionSelect:
		if m.row != rowStart {
			m.cycle(1)
			return m, nil
		}
		if len(m.items) > 0 {
			m.selected = &Selection{
				GameID:     m.items[m.variant].GameID,
				Difficulty: m.level,
			}
		}
	}

	return m, nil
}

// cycle moves the value on the current row by delta, wrapping around.
func (m *MenuModel) cycle(delta int) {
	switch m.row {
	case rowVariant:
		if n := len(m.items); n > 0 {
			m.variant = (m.variant + delta + n) % n
		}
	case rowDifficulty:
		n := int(config.LevelN5)
		m.level = config.DifficultyLevel((int(m.level)-1+delta+n)%n + 1)
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("C I R C U I T   B R E A C H"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuDimStyle.Render("hold the line, keep the circuits lit"), m.width))
	b.WriteString("\n\n")

	variant := "-"
	if len(m.items) > 0 {
		variant = m.items[m.variant].Title
	}
	rows := [rowCount]string{
		fmt.Sprintf("Variant     < %s >", variant),
		fmt.Sprintf("Difficulty  < %s >", m.level),
		"Start",
	}
	for i, row := range rows {
		line := "  " + row
		if i == m.row {
			line = menuCursorStyle.Render("> " + row)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Row  |  Left/Right: Change  |  Enter: Start  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen setup, or nil if none was made yet.
func (m MenuModel) Selected() *Selection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

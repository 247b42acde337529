package breach

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/circuit-breach/internal/config"
	"github.com/vovakirdan/circuit-breach/internal/core"
)

// Layout constants, in screen cells.
const (
	laneWidth    = 7
	hudWidth     = 24
	minFieldRows = 14
	trackColumns = 10
	hudStatLines = 7
)

// Glyphs
const (
	SlotLitGlyph    = '●'
	SlotBrokenGlyph = '✕'
	SlotEmptyGlyph  = '·'
	LockFillGlyph   = '░'
	BandGlyph       = '╌'
	LaneSepGlyph    = '┊'
)

// MinScreenSize returns the smallest screen the game can draw on. The
// height fits both the field and the HUD column below the title row.
func (g *Game) MinScreenSize() (w, h int) {
	maxCircuits := g.cfg.Rules.MaxCircuits
	if g.session != nil {
		maxCircuits = g.session.Config().Rules.MaxCircuits
	}
	rows := max(minFieldRows+2, hudRows(maxCircuits))
	return g.lanes*laneWidth + 2 + 1 + hudWidth, rows + 2
}

// hudRows is the height of the HUD column: the stat lines, the power-up
// block and the circuit track.
func hudRows(maxCircuits int) int {
	stats := hudStatLines + 1
	powerups := 1 + PowerupCount + 2
	track := 1 + (maxCircuits+trackColumns-1)/trackColumns
	return stats + powerups + track
}

// Render draws the current session onto dst.
func (g *Game) Render(dst *core.Screen) {
	s := g.session
	if s == nil {
		return
	}

	minW, minH := g.MinScreenSize()
	if dst.Width() < minW || dst.Height() < minH {
		g.renderTooSmall(dst, minW, minH)
		return
	}

	fieldW := s.Lanes()*laneWidth + 2
	box := core.NewRect(0, 1, fieldW, dst.Height()-2)

	g.renderTitle(dst)
	g.renderField(dst, box)
	g.renderKeys(dst, box)
	g.renderHUD(dst, core.NewRect(fieldW+1, 1, dst.Width()-fieldW-1, dst.Height()-2))

	switch s.Status() {
	case StatusPaused:
		g.renderOverlay(dst, box, []string{"PAUSED", "", "P resume", "ESC setup"}, core.ColorYellow)
	case StatusEnded:
		st := s.Stats()
		g.renderOverlay(dst, box, []string{
			"BREACH CLOSED",
			"",
			fmt.Sprintf("score    %d", st.Score),
			fmt.Sprintf("circuits %d", st.Circuits),
			fmt.Sprintf("breaks   %d", st.Breaks),
			fmt.Sprintf("hits     %d", st.Hits),
			fmt.Sprintf("misses   %d", st.Misses),
			fmt.Sprintf("time     %s", formatClock(st.Elapsed)),
			"",
			"R restart",
		}, core.ColorBrightGreen)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen, minW, minH int) {
	msg := fmt.Sprintf("terminal too small: need %dx%d", minW, minH)
	dst.DrawTextCentered(0, dst.Width(), dst.Height()/2, msg, core.ColorRed)
}

func (g *Game) renderTitle(dst *core.Screen) {
	s := g.session
	cfg := s.Config()
	title := fmt.Sprintf("CIRCUIT BREACH  %s  %d LANES",
		config.DifficultyLevel(cfg.Difficulty.Level), s.Lanes())
	dst.DrawText(1, 0, title, core.ColorBrightGreen)

	clock := formatClock(s.Elapsed())
	dst.DrawText(dst.Width()-len(clock)-1, 0, clock, core.ColorWhite)
}

func (g *Game) renderField(dst *core.Screen, box core.Rect) {
	s := g.session
	cfg := s.Config()

	frame := core.ColorDimGreen
	if s.Glitch() > 0 && g.tick%6 < 3 {
		frame = core.ColorBrightRed
	}
	dst.DrawBox(box, frame)

	inner := core.NewRect(box.X+1, box.Y+1, box.W-2, box.H-2)
	cols := inner.SplitColumns(s.Lanes())
	rowFor := func(y float64) int {
		return inner.Y + int(math.Floor(y/cfg.Field.Height*float64(inner.H)))
	}

	for i, col := range cols {
		if i > 0 {
			dst.DrawVLine(col.X, inner.Y, inner.H, LaneSepGlyph, core.ColorGray)
		}
		if rem := s.LaneLock(i + 1); rem > 0 {
			for y := inner.Y; y < inner.Bottom(); y++ {
				dst.DrawHLine(col.X+1, y, col.W-1, LockFillGlyph, core.ColorGray)
			}
			mid := inner.Y + inner.H/2
			dst.DrawTextCentered(col.X, col.W, mid, "LOCK", core.ColorRed)
			dst.DrawTextCentered(col.X, col.W, mid+1, fmt.Sprintf("%.1fs", rem.Seconds()), core.ColorRed)
		}
	}

	sp := s.Spawner()
	bandColor := core.ColorCyan
	if active, _ := s.ActivePowerup(); active != PowerupNone {
		bandColor = core.ColorBrightCyan
	}
	lastRow := inner.Bottom() - 1
	dst.DrawHLine(inner.X, core.Clamp(rowFor(sp.CaptureTop()), inner.Y, lastRow), inner.W, BandGlyph, bandColor)
	dst.DrawHLine(inner.X, core.Clamp(rowFor(sp.CaptureBottom()), inner.Y, lastRow), inner.W, BandGlyph, bandColor)

	for _, b := range s.Blocks() {
		row := rowFor(b.Center(cfg.Field.BlockHeight))
		if row < inner.Y || row >= inner.Bottom() {
			continue
		}
		col := cols[b.Lane-1]
		dst.DrawTextCentered(col.X+1, col.W-1, row, blockText(b, g.tick), blockColor(b))
	}
}

func blockText(b Block, tick uint64) string {
	if b.Glitch > 0 && tick%4 < 2 {
		return strings.Repeat("#", len(b.Label))
	}
	return b.Label
}

func blockColor(b Block) core.Color {
	switch {
	case b.Glitch > 0:
		return core.ColorBrightRed
	case b.Prepaid:
		return core.ColorGray
	}
	switch b.Type {
	case Standard:
		return core.ColorBrightGreen
	case Encrypted:
		return core.ColorBrightCyan
	case Malware:
		return core.ColorRed
	default:
		return core.ColorBrightMagenta
	}
}

func (g *Game) renderKeys(dst *core.Screen, box core.Rect) {
	s := g.session
	inner := core.NewRect(box.X+1, box.Y+1, box.W-2, box.H-2)
	y := box.Bottom()
	for i, col := range inner.SplitColumns(s.Lanes()) {
		lane := i + 1
		c := core.ColorWhite
		switch {
		case s.LaneLock(lane) > 0:
			c = core.ColorGray
		case s.LaneCooldown(lane):
			c = core.ColorYellow
		}
		dst.DrawTextCentered(col.X, col.W, y, "["+string(AllColumnKeys[i])+"]", c)
	}
}

func (g *Game) renderHUD(dst *core.Screen, area core.Rect) {
	s := g.session
	cfg := s.Config()
	x, y := area.X+1, area.Y

	line := func(label, value string, c core.Color) {
		dst.DrawText(x, y, label, core.ColorGray)
		dst.DrawText(x+11, y, value, c)
		y++
	}

	line("SCORE", fmt.Sprint(s.Score()), core.ColorBrightGreen)
	line("CIRCUITS", fmt.Sprintf("%d/%d", s.Circuits(), cfg.Rules.MaxCircuits), core.ColorGreen)
	line("BREAKS", fmt.Sprint(s.CircuitBreaks()), core.ColorRed)
	line("INTEGRITY", integrityBar(s.Integrity(), cfg.Rules.MaxErrors), integrityColor(s.Integrity()))
	line("ERRORS", fmt.Sprint(s.TotalErrors()), core.ColorYellow)
	line("HIT/MISS", fmt.Sprintf("%d/%d", s.Hits(), s.Misses()), core.ColorWhite)
	line("SPEED", fmt.Sprintf("%d%%", s.SpeedPercent()), core.ColorCyan)
	y++

	dst.DrawText(x, y, "POWER-UPS", core.ColorGray)
	y++
	active, remaining := s.ActivePowerup()
	for slot := Sword; slot <= Overclock; slot++ {
		c := core.ColorWhite
		if s.Charges(slot) == 0 {
			c = core.ColorGray
		}
		if slot == active {
			c = core.ColorBrightCyan
		}
		dst.DrawText(x, y, fmt.Sprintf("%d %-10s x%d", slot, slot, s.Charges(slot)), c)
		y++
	}
	if active != PowerupNone {
		dst.DrawText(x, y, fmt.Sprintf("> %s %ds", active, int(math.Ceil(remaining.Seconds()))), core.ColorBrightCyan)
	}
	y += 2

	dst.DrawText(x, y, "CIRCUIT TRACK", core.ColorGray)
	y++
	for i := 0; i < cfg.Rules.MaxCircuits; i++ {
		cx := x + (i%trackColumns)*2
		cy := y + i/trackColumns
		switch s.Slot(i) {
		case SlotLit:
			dst.SetColored(cx, cy, SlotLitGlyph, core.ColorBrightGreen)
		case SlotBroken:
			dst.SetColored(cx, cy, SlotBrokenGlyph, core.ColorBrightRed)
		default:
			dst.SetColored(cx, cy, SlotEmptyGlyph, core.ColorGray)
		}
	}
}

func (g *Game) renderOverlay(dst *core.Screen, field core.Rect, lines []string, c core.Color) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w = min(w+4, field.W-2)
	h := len(lines) + 2
	cx, cy := field.Center()
	x, y := cx-w/2, cy-h/2

	for row := y; row < y+h; row++ {
		dst.DrawHLine(x, row, w, ' ', core.ColorDefault)
	}
	dst.DrawBox(core.NewRect(x, y, w, h), c)
	for i, l := range lines {
		dst.DrawTextCentered(x, w, y+1+i, l, c)
	}
}

func integrityBar(left, total int) string {
	return strings.Repeat("■", left) + strings.Repeat("□", max(0, total-left))
}

func integrityColor(left int) core.Color {
	switch left {
	case 0, 1:
		return core.ColorBrightRed
	case 2:
		return core.ColorYellow
	default:
		return core.ColorBrightGreen
	}
}

// formatClock renders a duration as mm:ss.
func formatClock(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/circuit-breach/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "LIT", core.ColorBrightGreen)
	s.DrawText(4, 0, "BROKEN", core.ColorBrightRed)
	s.DrawText(0, 2, "plain", core.ColorDefault)

	out := RenderScreen(s)
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("newlines = %d, want 2", got)
	}
	for _, want := range []string{"LIT", "BROKEN", "plain"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestEveryColorHasStyle(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorGray; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("color %d has no style", c)
		}
	}
}

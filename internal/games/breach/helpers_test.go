package breach

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/circuit-breach/internal/config"
)

// newTestSession returns a started session whose spawner is held off so
// tests can place blocks by hand.
func newTestSession(t *testing.T, mutate ...func(*config.BreachConfig)) *Session {
	t.Helper()
	cfg := config.HardcodedBreachConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	s, err := NewSession(cfg, Settings{}, 42)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	s.Start(0)
	s.nextSpawnIn = time.Hour
	return s
}

// place adds a falling block whose center sits at the given field offset.
func place(s *Session, typ BlockType, lane int, center float64) *Block {
	b := &Block{
		ID:        uuid.New(),
		Type:      typ,
		Label:     testLabel(typ),
		Lane:      lane,
		ColumnKey: AllColumnKeys[lane-1],
		Y:         center - s.cfg.Field.BlockHeight/2,
		State:     Falling,
	}
	b.EnteredZone = s.spawner.InCaptureZone(b)
	s.blocks = append(s.blocks, b)
	return b
}

// testLabel returns a label of the shape the spawner draws for typ.
func testLabel(typ BlockType) string {
	switch typ {
	case Encrypted:
		return "@AB7"
	case Malware:
		return "A!5"
	case Virus:
		return VirusLabel
	default:
		return "AB7"
	}
}

// placeInZone adds a falling block centered in the capture band.
func placeInZone(s *Session, typ BlockType, lane int) *Block {
	return place(s, typ, lane, (s.spawner.CaptureTop()+s.spawner.CaptureBottom())/2)
}

// placeAbove adds a falling block dist units above the capture band.
func placeAbove(s *Session, typ BlockType, lane int, dist float64) *Block {
	return place(s, typ, lane, s.spawner.CaptureTop()-dist)
}

// runFor ticks the session at 60 Hz for d of session time.
func runFor(s *Session, d time.Duration) {
	step := time.Second / 60
	now := s.last
	for end := s.clock + d; s.clock < end && s.status == StatusPlaying; {
		now += step
		s.Tick(now)
	}
}

// recorder collects emitted events.
type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(e Event) { r.events = append(r.events, e) }

func (r *recorder) lit() []int {
	var out []int
	for _, e := range r.events {
		if ev, ok := e.(CircuitLit); ok {
			out = append(out, ev.Slot)
		}
	}
	return out
}

func (r *recorder) broken() []int {
	var out []int
	for _, e := range r.events {
		if ev, ok := e.(CircuitBroken); ok {
			out = append(out, ev.Slot)
		}
	}
	return out
}

func (r *recorder) count(match func(Event) bool) int {
	n := 0
	for _, e := range r.events {
		if match(e) {
			n++
		}
	}
	return n
}

// is reports whether e has type T.
func is[T Event](e Event) bool {
	_, ok := e.(T)
	return ok
}

func hitStandard(s *Session) {
	s.onHit(&Block{Type: Standard})
}

func miss(s *Session) {
	s.onError(nil)
}

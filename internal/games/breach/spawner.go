package breach

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/vovakirdan/circuit-breach/internal/config"
	"github.com/vovakirdan/circuit-breach/internal/core"
)

// AllColumnKeys lists the lane keys; a session uses the first Lanes of them.
var AllColumnKeys = [...]rune{'Z', 'X', 'C', 'V', 'B'}

// labelAlphabet omits I and O so labels never read as digits.
const labelAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"

// VirusLabel is the fixed label drawn on every virus.
const VirusLabel = "<*>"

// Spawner manufactures blocks and answers capture zone questions.
// It keeps no references to the blocks it creates.
type Spawner struct {
	lanes  int
	field  config.FieldConfig
	early  config.WeightTable
	late   config.WeightTable
	lateAt int
	rng    *core.SimpleRNG
}

// NewSpawner creates a spawner for a validated configuration.
func NewSpawner(cfg config.BreachConfig, rng *core.SimpleRNG) *Spawner {
	return &Spawner{
		lanes:  cfg.Lanes,
		field:  cfg.Field,
		early:  cfg.Spawn.Early,
		late:   cfg.Spawn.Late,
		lateAt: cfg.Rules.LateGameCircuits,
		rng:    rng,
	}
}

// Lanes returns the lane count.
func (s *Spawner) Lanes() int {
	return s.lanes
}

// ColumnKeys returns the active column keys in lane order.
func (s *Spawner) ColumnKeys() []rune {
	return AllColumnKeys[:s.lanes]
}

// LaneForKey returns the 1-based lane bound to key, or 0.
func (s *Spawner) LaneForKey(key rune) int {
	for i, k := range s.ColumnKeys() {
		if k == key {
			return i + 1
		}
	}
	return 0
}

// CreateBlock returns a new falling block just above the field.
// forceDisruptor restricts the draw to Malware and Virus at even odds.
func (s *Spawner) CreateBlock(circuitsCompleted int, forceDisruptor bool) *Block {
	var t BlockType
	if forceDisruptor {
		t = Malware
		if s.rng.Intn(2) == 1 {
			t = Virus
		}
	} else {
		t = s.drawType(s.table(circuitsCompleted))
	}

	lane := 1 + s.rng.Intn(s.lanes)
	return &Block{
		ID:        uuid.Must(uuid.NewRandomFromReader(s.rng)),
		Type:      t,
		Label:     s.label(t),
		Lane:      lane,
		ColumnKey: AllColumnKeys[lane-1],
		Y:         -s.field.BlockHeight,
		State:     Falling,
	}
}

func (s *Spawner) table(circuitsCompleted int) config.WeightTable {
	if circuitsCompleted >= s.lateAt {
		return s.late
	}
	return s.early
}

func (s *Spawner) drawType(w config.WeightTable) BlockType {
	r := s.rng.Intn(w.Total())
	for _, e := range []struct {
		t      BlockType
		weight int
	}{
		{Standard, w.Standard},
		{Encrypted, w.Encrypted},
		{Malware, w.Malware},
		{Virus, w.Virus},
	} {
		if r < e.weight {
			return e.t
		}
		r -= e.weight
	}
	return Virus
}

func (s *Spawner) label(t BlockType) string {
	char := func() string {
		return string(labelAlphabet[s.rng.Intn(len(labelAlphabet))])
	}
	digit := func() string {
		return strconv.Itoa(s.rng.Intn(10))
	}

	switch t {
	case Standard:
		return char() + char() + digit()
	case Encrypted:
		return "@" + char() + char() + digit()
	case Malware:
		return char() + "!" + digit()
	default:
		return VirusLabel
	}
}

// CaptureTop returns the top edge of the capture band.
func (s *Spawner) CaptureTop() float64 {
	return s.field.Height * s.field.CaptureTop
}

// CaptureBottom returns the bottom edge of the capture band.
func (s *Spawner) CaptureBottom() float64 {
	return s.CaptureTop() + s.field.CaptureHeight
}

// InCaptureZone reports whether the block's center lies inside the band.
func (s *Spawner) InCaptureZone(b *Block) bool {
	c := b.Center(s.field.BlockHeight)
	return c >= s.CaptureTop() && c <= s.CaptureBottom()
}

// PassedCaptureBottom reports whether the block's center has left the band.
func (s *Spawner) PassedCaptureBottom(b *Block) bool {
	return b.Center(s.field.BlockHeight) > s.CaptureBottom()
}

// PassedField reports whether the block is fully below the field.
func (s *Spawner) PassedField(b *Block) bool {
	return b.Y > s.field.Height+s.field.BlockHeight
}

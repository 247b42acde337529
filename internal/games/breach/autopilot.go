package breach

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/circuit-breach/internal/config"
	"github.com/vovakirdan/circuit-breach/internal/core"
)

// Autopilot is a scripted player used for headless runs. It answers the
// frontmost block in the capture band once, correctly with probability
// Accuracy and with a deliberately wrong key otherwise.
type Autopilot struct {
	Accuracy float64

	rng      *core.SimpleRNG
	answered map[uuid.UUID]bool
}

// NewAutopilot creates an autopilot with its own seeded RNG.
func NewAutopilot(accuracy float64, seed int64) *Autopilot {
	return &Autopilot{
		Accuracy: core.ClampF(accuracy, 0, 1),
		rng:      core.NewSimpleRNG(seed),
		answered: make(map[uuid.UUID]bool),
	}
}

// Decide returns the key presses for the current state of s.
func (a *Autopilot) Decide(s *Session) []core.KeyEvent {
	var keys []core.KeyEvent

	if active, _ := s.ActivePowerup(); active == PowerupNone {
		for slot := Sword; slot <= Overclock; slot++ {
			if s.Integrity() == 1 && s.Charges(slot) > 0 {
				keys = append(keys, core.KeyEvent{Key: rune('0' + slot)})
				break
			}
		}
	}

	zone := s.zoneBlocks()
	if len(zone) == 0 {
		return keys
	}
	front := zone[0]
	if a.answered[front.ID] {
		return keys
	}
	a.answered[front.ID] = true

	correct := a.rng.Float64() < a.Accuracy
	c := front.Contract()
	switch {
	case c.NoInput && correct:
		return keys
	case c.NoInput:
		return append(keys, core.KeyEvent{Key: core.KeySpace})
	case correct:
		return append(keys, core.KeyEvent{Key: c.TargetKey, Shift: c.ShiftRequired})
	case front.Type == Virus:
		return append(keys, core.KeyEvent{Key: front.ColumnKey})
	default:
		return append(keys, core.KeyEvent{Key: front.ColumnKey, Shift: !c.ShiftRequired})
	}
}

// SimOptions configures a headless run.
type SimOptions struct {
	Config   config.BreachConfig
	Settings Settings
	Seed     int64
	Accuracy float64
	TickRate int
	Limit    time.Duration // Session clock limit; zero means no limit
}

// Simulate plays one session with an Autopilot until it ends, the clock
// limit is reached, or ctx is cancelled.
func Simulate(ctx context.Context, opts SimOptions, sessionOpts ...Option) (Stats, error) {
	s, err := NewSession(opts.Config, opts.Settings, opts.Seed, sessionOpts...)
	if err != nil {
		return Stats{}, err
	}
	pilot := NewAutopilot(opts.Accuracy, opts.Seed^0x5eed)
	step := core.RuntimeConfig{TickRate: opts.TickRate}.TickInterval()

	var now time.Duration
	s.Start(now)
	for i := 0; s.Status() == StatusPlaying; i++ {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				s.Abandon()
				return s.Stats(), err
			}
		}
		if opts.Limit > 0 && s.Elapsed() >= opts.Limit {
			s.Abandon()
			break
		}
		for _, ev := range pilot.Decide(s) {
			s.HandleKey(ev)
		}
		now += step
		s.Tick(now)
	}
	return s.Stats(), nil
}

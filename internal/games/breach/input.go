package breach

import (
	"cmp"
	"slices"

	"github.com/vovakirdan/circuit-breach/internal/core"
)

// Outcome is the result of resolving one key event.
type Outcome int

const (
	OutcomeIgnored   Outcome = iota // No effect
	OutcomeActivated                // A power-up started
	OutcomeRejected                 // Power-up activation refused
	OutcomeHit                      // A block was answered correctly
	OutcomeError                    // An error was recorded
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeActivated:
		return "activated"
	case OutcomeRejected:
		return "rejected"
	case OutcomeHit:
		return "hit"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// HandleKey resolves a normalized key event against the current state.
// Keys are ignored unless the session is playing.
func (s *Session) HandleKey(ev core.KeyEvent) Outcome {
	if s.status != StatusPlaying {
		return OutcomeIgnored
	}

	if slot, ok := PowerupForKey(ev.Key); ok {
		if !s.powerups.Activate(slot, s.clock) {
			return OutcomeRejected
		}
		s.log.Debug("power-up activated", "slot", slot, "until", s.powerups.Expiry())
		s.emit(ChargesChanged{Slot: slot, Charges: s.powerups.Charges(slot)})
		s.emit(ActivePowerupChanged{Slot: slot})
		return OutcomeActivated
	}

	lane := s.spawner.LaneForKey(ev.Key)
	isColumn := lane > 0
	if !isColumn && ev.Key != core.KeySpace {
		return OutcomeIgnored
	}
	if isColumn && s.locks.Locked(lane) {
		return OutcomeIgnored
	}

	candidates := s.zoneBlocks()
	if len(candidates) == 0 {
		return s.pressEmptyZone(lane)
	}

	if s.powerups.IsActive(Sword) {
		for _, b := range candidates {
			if b.Type != Malware {
				s.kill(b)
				return OutcomeHit
			}
		}
	}

	front := candidates[0]
	c := front.Contract()
	switch {
	case c.NoInput:
		front.Glitch = s.cfg.Timing.MalwareGlitch
		s.onError(front)
	case c.Matches(ev):
		s.kill(front)
		return OutcomeHit
	default:
		s.onError(front)
	}
	return OutcomeError
}

// zoneBlocks returns the falling blocks inside the capture band, nearest
// to the exit first. Ties keep spawn order.
func (s *Session) zoneBlocks() []*Block {
	var out []*Block
	for _, b := range s.blocks {
		if b.State == Falling && s.spawner.InCaptureZone(b) {
			out = append(out, b)
		}
	}
	slices.SortStableFunc(out, func(a, b *Block) int {
		return cmp.Compare(b.Y, a.Y)
	})
	return out
}

// pressEmptyZone handles an action key while no block is in the band.
// lane is 0 for the space bar.
func (s *Session) pressEmptyZone(lane int) Outcome {
	if lane == 0 {
		s.onError(nil)
		return OutcomeError
	}
	if s.cooldown[lane-1] {
		return OutcomeIgnored
	}
	s.cooldown[lane-1] = true
	s.prepay(lane)
	s.onError(nil)
	return OutcomeError
}

// prepay marks the nearest falling block in lane as already penalized, or
// the next block spawned there when the lane is empty.
func (s *Session) prepay(lane int) {
	var nearest *Block
	for _, b := range s.blocks {
		if b.Lane != lane || b.State != Falling || b.Prepaid {
			continue
		}
		if nearest == nil || b.Y > nearest.Y {
			nearest = b
		}
	}
	if nearest == nil {
		s.pending[lane-1] = true
		return
	}
	nearest.Prepaid = true
}

// kill removes b from play as a hit.
func (s *Session) kill(b *Block) {
	b.State = Dead
	s.removeBlock(b)
	s.release(b)
	s.onHit(b)
}

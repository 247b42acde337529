package breach

import (
	"time"

	"github.com/vovakirdan/circuit-breach/internal/config"
	"github.com/vovakirdan/circuit-breach/internal/core"
)

// Powerup identifies a power-up slot. Slots are numbered 1..3 to match
// the keys that activate them.
type Powerup int

const (
	PowerupNone Powerup = iota
	Sword               // Any action key kills the frontmost non-malware block
	Shield              // Errors leave the error counters alone
	Overclock           // Halves fall speed and spawn countdown
)

// PowerupCount is the number of power-up slots.
const PowerupCount = 3

// String returns the slot name shown in the HUD.
func (p Powerup) String() string {
	switch p {
	case Sword:
		return "SWORD"
	case Shield:
		return "SHIELD"
	case Overclock:
		return "OVERCLOCK"
	default:
		return "NONE"
	}
}

// Valid reports whether p names a real slot.
func (p Powerup) Valid() bool {
	return p >= Sword && p <= Overclock
}

// PowerupForKey maps the keys 1, 2 and 3 to their slots.
func PowerupForKey(key rune) (Powerup, bool) {
	if key >= '1' && key <= '3' {
		return Powerup(key - '0'), true
	}
	return PowerupNone, false
}

// PowerupSystem tracks charges per slot and the single active effect.
// Timestamps are session clock values, so paused time never counts.
type PowerupSystem struct {
	charges  [PowerupCount + 1]int // indexed by Powerup
	active   Powerup
	expiry   time.Duration
	duration time.Duration
	starting int
	rng      *core.SimpleRNG
}

// NewPowerupSystem creates a system holding the starting charges.
func NewPowerupSystem(cfg config.PowerupConfig, rng *core.SimpleRNG) *PowerupSystem {
	p := &PowerupSystem{
		duration: cfg.Duration,
		starting: cfg.StartingCharges,
		rng:      rng,
	}
	p.Reset()
	return p
}

// Reset restores the starting charges and clears any active effect.
func (p *PowerupSystem) Reset() {
	for slot := Sword; slot <= Overclock; slot++ {
		p.charges[slot] = p.starting
	}
	p.active = PowerupNone
	p.expiry = 0
}

// Activate spends one charge of slot. It fails without side effects when
// the slot has no charge or another effect is already running.
func (p *PowerupSystem) Activate(slot Powerup, now time.Duration) bool {
	if !slot.Valid() || p.charges[slot] <= 0 || p.active != PowerupNone {
		return false
	}
	p.charges[slot]--
	p.active = slot
	p.expiry = now + p.duration
	return true
}

// Tick clears the active effect once now reaches its expiry.
// It reports whether an effect ended.
func (p *PowerupSystem) Tick(now time.Duration) bool {
	if p.active == PowerupNone || now < p.expiry {
		return false
	}
	p.active = PowerupNone
	p.expiry = 0
	return true
}

// GrantRandom adds one charge to a uniformly chosen slot and returns it.
func (p *PowerupSystem) GrantRandom() Powerup {
	slot := Powerup(1 + p.rng.Intn(PowerupCount))
	p.charges[slot]++
	return slot
}

// Active returns the running effect, or PowerupNone.
func (p *PowerupSystem) Active() Powerup {
	return p.active
}

// IsActive reports whether slot is the running effect.
func (p *PowerupSystem) IsActive(slot Powerup) bool {
	return p.active != PowerupNone && p.active == slot
}

// Expiry returns the session time at which the active effect ends.
func (p *PowerupSystem) Expiry() time.Duration {
	return p.expiry
}

// Remaining returns how long the active effect still runs.
func (p *PowerupSystem) Remaining(now time.Duration) time.Duration {
	if p.active == PowerupNone || now >= p.expiry {
		return 0
	}
	return p.expiry - now
}

// Charges returns the charge count of slot.
func (p *PowerupSystem) Charges(slot Powerup) int {
	if !slot.Valid() {
		return 0
	}
	return p.charges[slot]
}

// Package breach implements the Circuit Breach simulation: typed blocks fall
// down fixed lanes toward a capture band and the player answers each one with
// the right key. The package holds the whole scoring state machine and has no
// terminal dependencies; the platform layer feeds it key events and timestamps.
package breach

import (
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/circuit-breach/internal/core"
)

// BlockType identifies the interaction a block expects.
type BlockType int

const (
	Standard  BlockType = iota // Own column key, no shift
	Encrypted                  // Own column key with shift
	Malware                    // Must be left alone
	Virus                      // Space bar
)

// String returns the type name shown in reports.
func (t BlockType) String() string {
	switch t {
	case Standard:
		return "STANDARD"
	case Encrypted:
		return "ENCRYPTED"
	case Malware:
		return "MALWARE"
	case Virus:
		return "VIRUS"
	default:
		return "UNKNOWN"
	}
}

// Scoreable reports whether hitting this type earns a point.
func (t BlockType) Scoreable() bool {
	return t == Standard || t == Encrypted
}

// Disruptor reports whether the type exists only to test restraint or reflexes.
func (t BlockType) Disruptor() bool {
	return t == Malware || t == Virus
}

// Contract is the per-type answer a block expects.
type Contract struct {
	TargetKey     rune // Column key, KeySpace, or 0 when no input is expected
	ShiftRequired bool
	NoInput       bool
}

// ContractFor returns the contract of a block type in the lane bound to columnKey.
func ContractFor(t BlockType, columnKey rune) Contract {
	switch t {
	case Standard:
		return Contract{TargetKey: columnKey}
	case Encrypted:
		return Contract{TargetKey: columnKey, ShiftRequired: true}
	case Virus:
		return Contract{TargetKey: core.KeySpace}
	default:
		return Contract{NoInput: true}
	}
}

// Matches reports whether a key event satisfies the contract.
// Shift is ignored for the space bar.
func (c Contract) Matches(ev core.KeyEvent) bool {
	switch {
	case c.NoInput:
		return false
	case c.TargetKey == core.KeySpace:
		return ev.Key == core.KeySpace
	default:
		return ev.Key == c.TargetKey && ev.Shift == c.ShiftRequired
	}
}

// BlockState is the lifecycle of a block.
type BlockState int

const (
	Falling BlockState = iota
	Dead               // Killed by a hit
	Passed             // Left the capture band or the field unanswered
)

// Block is a single falling entity.
type Block struct {
	ID          uuid.UUID
	Type        BlockType
	Label       string
	Lane        int  // 1-based
	ColumnKey   rune // Key bound to Lane
	Y           float64
	State       BlockState
	EnteredZone bool          // Latches once the center reaches the capture band
	Glitch      time.Duration // Cosmetic, only counts down
	Prepaid     bool          // An early false press already paid for this block
	SpawnSpeed  float64
}

// Contract returns the answer this block expects.
func (b *Block) Contract() Contract {
	return ContractFor(b.Type, b.ColumnKey)
}

// Center returns the vertical center of the block in field units.
func (b *Block) Center(blockHeight float64) float64 {
	return b.Y + blockHeight/2
}

package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vovakirdan/circuit-breach/internal/core"
)

// DifficultyLevel is the ordinal N1..N5 chosen at session start.
type DifficultyLevel int

// Difficulty levels.
const (
	LevelN1 DifficultyLevel = iota + 1
	LevelN2
	LevelN3
	LevelN4
	LevelN5
)

// String returns the "N<level>" label shown in menus.
func (l DifficultyLevel) String() string {
	return "N" + strconv.Itoa(int(l))
}

// ParseDifficulty accepts "3", "n3" or "N3".
func ParseDifficulty(s string) (DifficultyLevel, error) {
	trimmed := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "n")
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
	}
	if n < int(LevelN1) || n > int(LevelN5) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
	}
	return DifficultyLevel(n), nil
}

// DifficultyConfig maps difficulty levels to speed multipliers.
type DifficultyConfig struct {
	Level       int       `yaml:"level"`
	Multipliers []float64 `yaml:"multipliers"` // index 0 = N1
}

// Multiplier returns the speed multiplier for a level.
func (d DifficultyConfig) Multiplier(level DifficultyLevel) (float64, error) {
	idx := int(level) - 1
	if idx < 0 || idx >= len(d.Multipliers) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDifficulty, level)
	}
	return d.Multipliers[idx], nil
}

// SpeedProfile is the base/step/max triple derived once per session.
type SpeedProfile struct {
	Base float64
	Step float64
	Max  float64
}

// SpeedProfile scales the N1 speed ramp by the configured level.
// Unknown levels fall back to a multiplier of 1.
func (c BreachConfig) SpeedProfile() SpeedProfile {
	m, err := c.Difficulty.Multiplier(DifficultyLevel(c.Difficulty.Level))
	if err != nil {
		m = 1.0
	}
	return SpeedProfile{
		Base: math.Round(c.Speed.Base * m),
		Step: math.Round(c.Speed.Step * m),
		Max:  math.Round(c.Speed.Max * m),
	}
}

// Percent reports how far speed sits between Base and Max, 0..100.
func (p SpeedProfile) Percent(speed float64) int {
	span := p.Max - p.Base
	if span <= 0 {
		return 100
	}
	pct := math.Round((speed - p.Base) / span * 100)
	return int(core.ClampF(pct, 0, 100))
}

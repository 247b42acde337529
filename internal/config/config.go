// Package config provides YAML-based configuration loading and difficulty
// management for Circuit Breach.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors returned by BreachConfig.Validate.
var (
	ErrInvalidLanes      = errors.New("config: lanes must be 4 or 5")
	ErrInvalidDifficulty = errors.New("config: difficulty level out of range")
)

// BreachConfig contains all tunables for a session.
type BreachConfig struct {
	Lanes      int              `yaml:"lanes"`
	Field      FieldConfig      `yaml:"field"`
	Rules      RulesConfig      `yaml:"rules"`
	Speed      SpeedConfig      `yaml:"speed"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Powerups   PowerupConfig    `yaml:"powerups"`
	Lockout    LockoutConfig    `yaml:"lockout"`
	Timing     TimingConfig     `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig describes the logical play field. Units are arbitrary;
// the renderer scales them to terminal rows.
type FieldConfig struct {
	Height        float64 `yaml:"height"`
	BlockHeight   float64 `yaml:"block_height"`
	CaptureTop    float64 `yaml:"capture_top"`
	CaptureHeight float64 `yaml:"capture_height"`
}

// RulesConfig holds the scoring and integrity constants.
type RulesConfig struct {
	PointsPerCircuit int `yaml:"points_per_circuit"`
	MaxCircuits      int `yaml:"max_circuits"`
	MaxErrors        int `yaml:"max_errors"`
	ErrorMilestone   int `yaml:"error_milestone"`
	MaxScoreable     int `yaml:"max_scoreable"`
	LateGameCircuits int `yaml:"late_game_circuits"`
	GrantEvery       int `yaml:"grant_every"`
}

// SpeedConfig defines the N1 fall speed ramp. Other difficulty levels
// scale Base, Step and Max by their multiplier.
type SpeedConfig struct {
	Base       float64 `yaml:"base"`
	Step       float64 `yaml:"step"`
	Max        float64 `yaml:"max"`
	StepBlocks int     `yaml:"step_blocks"`
	RampCap    int     `yaml:"ramp_cap"`
}

// SpawnConfig controls spawn cadence and type weights.
type SpawnConfig struct {
	InitialDelay time.Duration `yaml:"initial_delay"`
	Interval     time.Duration `yaml:"interval"`
	IntervalStep time.Duration `yaml:"interval_step"`
	MinInterval  time.Duration `yaml:"min_interval"`
	Recovery     time.Duration `yaml:"recovery"`
	JitterMin    float64       `yaml:"jitter_min"`
	JitterSpan   float64       `yaml:"jitter_span"`
	Early        WeightTable   `yaml:"early"`
	Late         WeightTable   `yaml:"late"`
}

// WeightTable holds relative spawn weights per block type.
type WeightTable struct {
	Standard  int `yaml:"standard"`
	Encrypted int `yaml:"encrypted"`
	Malware   int `yaml:"malware"`
	Virus     int `yaml:"virus"`
}

// Total returns the sum of all weights.
func (w WeightTable) Total() int {
	return w.Standard + w.Encrypted + w.Malware + w.Virus
}

// PowerupConfig defines the power-up economy.
type PowerupConfig struct {
	Duration        time.Duration `yaml:"duration"`
	StartingCharges int           `yaml:"starting_charges"`
	OverclockFactor float64       `yaml:"overclock_factor"`
}

// LockoutConfig defines the lane lock applied after an escaped virus.
type LockoutConfig struct {
	Duration time.Duration `yaml:"duration"`
}

// TimingConfig holds frame clamping and cosmetic timers.
type TimingConfig struct {
	MaxFrameDelta time.Duration `yaml:"max_frame_delta"`
	SoftGlitch    time.Duration `yaml:"soft_glitch"`
	BreakGlitch   time.Duration `yaml:"break_glitch"`
	MalwareGlitch time.Duration `yaml:"malware_glitch"`
}

// Validate checks that the configuration can drive a session.
func (c BreachConfig) Validate() error {
	if c.Lanes != 4 && c.Lanes != 5 {
		return fmt.Errorf("%w: got %d", ErrInvalidLanes, c.Lanes)
	}
	if _, err := c.Difficulty.Multiplier(DifficultyLevel(c.Difficulty.Level)); err != nil {
		return err
	}

	switch {
	case c.Field.Height <= 0 || c.Field.BlockHeight <= 0 || c.Field.CaptureHeight <= 0:
		return errors.New("config: field dimensions must be positive")
	case c.Field.CaptureTop <= 0 || c.Field.CaptureTop >= 1:
		return errors.New("config: capture_top must be between 0 and 1")
	case c.Rules.PointsPerCircuit <= 0 || c.Rules.MaxCircuits <= 0 || c.Rules.MaxErrors <= 0:
		return errors.New("config: rules must be positive")
	case c.Rules.ErrorMilestone <= 0 || c.Rules.GrantEvery <= 0:
		return errors.New("config: error_milestone and grant_every must be positive")
	case c.Speed.Base <= 0 || c.Speed.Max < c.Speed.Base || c.Speed.StepBlocks <= 0:
		return errors.New("config: invalid speed ramp")
	case c.Spawn.Interval <= 0 || c.Spawn.MinInterval <= 0 || c.Spawn.MinInterval > c.Spawn.Interval:
		return errors.New("config: invalid spawn interval")
	case c.Spawn.Early.Total() <= 0 || c.Spawn.Late.Total() <= 0:
		return errors.New("config: spawn weight tables must not be empty")
	case c.Powerups.Duration <= 0 || c.Powerups.OverclockFactor <= 0:
		return errors.New("config: invalid power-up settings")
	case c.Timing.MaxFrameDelta <= 0:
		return errors.New("config: max_frame_delta must be positive")
	}
	return nil
}

package config

import (
	_ "embed"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/breach.yaml
var defaultBreachYAML []byte

// DefaultBreachConfig returns the embedded default configuration, falling
// back to hardcoded values if the embedded file fails to parse.
func DefaultBreachConfig() BreachConfig {
	var cfg BreachConfig
	if err := yaml.Unmarshal(defaultBreachYAML, &cfg); err != nil || cfg.Validate() != nil {
		return HardcodedBreachConfig()
	}
	return cfg
}

// HardcodedBreachConfig returns the built-in configuration.
func HardcodedBreachConfig() BreachConfig {
	return BreachConfig{
		Lanes: 5,
		Field: FieldConfig{
			Height:        600,
			BlockHeight:   40,
			CaptureTop:    0.82,
			CaptureHeight: 67.2, // 1.68 block heights
		},
		Rules: RulesConfig{
			PointsPerCircuit: 6,
			MaxCircuits:      30,
			MaxErrors:        3,
			ErrorMilestone:   10,
			MaxScoreable:     200,
			LateGameCircuits: 15,
			GrantEvery:       5,
		},
		Speed: SpeedConfig{
			Base:       140,
			Step:       25,
			Max:        340,
			StepBlocks: 20,
			RampCap:    160,
		},
		Spawn: SpawnConfig{
			InitialDelay: 800 * time.Millisecond,
			Interval:     1400 * time.Millisecond,
			IntervalStep: 80 * time.Millisecond,
			MinInterval:  450 * time.Millisecond,
			Recovery:     2 * time.Second,
			JitterMin:    0.7,
			JitterSpan:   0.6,
			Early:        WeightTable{Standard: 50, Encrypted: 20, Malware: 20, Virus: 10},
			Late:         WeightTable{Standard: 30, Encrypted: 25, Malware: 25, Virus: 20},
		},
		Powerups: PowerupConfig{
			Duration:        15 * time.Second,
			StartingCharges: 1,
			OverclockFactor: 0.5,
		},
		Lockout: LockoutConfig{
			Duration: 5 * time.Second,
		},
		Timing: TimingConfig{
			MaxFrameDelta: 100 * time.Millisecond,
			SoftGlitch:    500 * time.Millisecond,
			BreakGlitch:   1200 * time.Millisecond,
			MalwareGlitch: 600 * time.Millisecond,
		},
		Difficulty: DifficultyConfig{
			Level:       1,
			Multipliers: []float64{1.0, 1.25, 1.5, 2.0, 3.0},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultBreachYAML
}

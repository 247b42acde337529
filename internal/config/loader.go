package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file name searched for in config directories.
const ConfigFileName = "breach.yaml"

// LoadBreach loads the Circuit Breach configuration.
// Search order: customPath -> ~/.breach/configs/breach.yaml -> ./configs/breach.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a partial file only
// overrides the keys it names.
func LoadBreach(customPath string) (BreachConfig, error) {
	cfg := DefaultBreachConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory.
	// Unreadable or invalid files there are skipped.
	for _, path := range []string{userConfigPath(ConfigFileName), filepath.Join("configs", ConfigFileName)} {
		if path == "" {
			continue
		}
		if loaded, ok := tryLoad(path); ok {
			return loaded, nil
		}
	}

	return cfg, nil
}

func tryLoad(path string) (BreachConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BreachConfig{}, false
	}
	cfg := DefaultBreachConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BreachConfig{}, false
	}
	if cfg.Validate() != nil {
		return BreachConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".breach", "configs", filename)
}

// ApplySettings overrides the lane count and difficulty chosen at the
// setup screen or on the command line. Zero values leave the config as is.
func ApplySettings(cfg *BreachConfig, lanes int, level DifficultyLevel) error {
	if lanes != 0 {
		cfg.Lanes = lanes
	}
	if level != 0 {
		cfg.Difficulty.Level = int(level)
	}
	return cfg.Validate()
}

// breach is a terminal arcade game: blocks fall down a handful of lanes and
// must be answered with the right key while they cross the capture band.
//
// Usage:
//
//	breach play [variant]    - Play locally (setup screen unless flags pick one)
//	breach serve             - Start SSH server for remote play
//	breach sim               - Run headless autopilot sessions and report stats
//	breach list              - List available variants
//	breach config            - Print the default configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--config <path>      - Load a custom YAML configuration
//	--log-level <level>  - debug, info, warn or error (default: warn)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/circuit-breach/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/circuit-breach/internal/games/breach"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breach",
	Short: "Circuit Breach - keep the circuits lit",
	Long: `Circuit Breach is a terminal reflex game. Blocks fall down 4 or 5
lanes; answer each one with the right key while it crosses the capture
band to light a circuit. Three mistakes in a row, or every tenth mistake
overall, break one instead.

Available commands:
  play     - Play locally
  serve    - Start SSH server for remote play
  sim      - Run headless autopilot sessions
  list     - Show available variants
  config   - Print the default configuration

Examples:
  breach play
  breach play breach4 --difficulty N3
  breach serve --ssh :2222
  breach sim --runs 16 --accuracy 0.9`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom breach config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the root logger from the global flags. The returned
// closer releases the log file, if one was opened.
func newLogger(prefix string, w io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	closer := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// loadConfig resolves the breach configuration from --config and the
// standard search locations.
func loadConfig() (config.BreachConfig, error) {
	cfg, err := config.LoadBreach(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// gameIDForLanes maps a lane count to the registered variant.
func gameIDForLanes(lanes int) (string, error) {
	switch lanes {
	case 4:
		return "breach4", nil
	case 5:
		return "breach", nil
	default:
		return "", fmt.Errorf("%w: %d", config.ErrInvalidLanes, lanes)
	}
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/circuit-breach/internal/config"
	"github.com/vovakirdan/circuit-breach/internal/core"
	"github.com/vovakirdan/circuit-breach/internal/platform/tui"
	"github.com/vovakirdan/circuit-breach/internal/registry"
)

var (
	flagLanes      int
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play Circuit Breach",
	Long: `Start a local game. Without arguments the setup screen lets you pick
the lane count and difficulty; a variant, --lanes or --difficulty skips it.

Controls:
  z x c v b  - Hit a standard block in that lane
  Z X C V B  - Shift+key decrypts an encrypted block
  Space      - Purge a virus
  1 2 3      - Sword, Shield, Overclock
  P/Enter    - Pause
  R          - Restart (after the breach closes)
  Esc        - Back to setup
  Q/Ctrl+C   - Quit

Logs are written only when --log-file is set.

Examples:
  breach play
  breach play breach4
  breach play --lanes 4 --difficulty N3
  breach play --config ./my-breach.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLanes, "lanes", 0, "Lane count: 4 or 5")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty level: N1..N5")
}

func runPlay(cmd *cobra.Command, args []string) error {
	breachCfg, err := loadConfig()
	if err != nil {
		return err
	}

	preset := tui.Selection{
		GameID:     "breach",
		Difficulty: config.DifficultyLevel(breachCfg.Difficulty.Level),
	}
	if id, idErr := gameIDForLanes(breachCfg.Lanes); idErr == nil {
		preset.GameID = id
	}

	skipSetup := false
	if len(args) == 1 {
		if !registry.Exists(args[0]) {
			return fmt.Errorf("unknown variant %q, run 'breach list' to see them", args[0])
		}
		preset.GameID = args[0]
		skipSetup = true
	}
	if cmd.Flags().Changed("lanes") {
		id, idErr := gameIDForLanes(flagLanes)
		if idErr != nil {
			return idErr
		}
		preset.GameID = id
		skipSetup = true
	}
	if cmd.Flags().Changed("difficulty") {
		level, lvlErr := config.ParseDifficulty(flagDifficulty)
		if lvlErr != nil {
			return lvlErr
		}
		preset.Difficulty = level
		skipSetup = true
	}

	logger, closeLog, err := newLogger("breach", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	return tui.Run(tui.Options{
		Runtime:   cfg,
		Config:    breachCfg,
		Logger:    logger,
		Preset:    preset,
		SkipSetup: skipSetup,
	})
}

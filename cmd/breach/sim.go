package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/circuit-breach/internal/config"
	"github.com/vovakirdan/circuit-breach/internal/games/breach"
)

var (
	flagRuns     int
	flagParallel int
	flagAccuracy float64
	flagLimit    time.Duration
	flagSimLanes int
	flagSimLevel string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless autopilot sessions",
	Long: `Plays sessions without a terminal using an autopilot that answers
each block correctly with the given accuracy, then prints per-run and
aggregate statistics. Runs are independent and execute in parallel.

Run i uses seed --seed + i, so a fixed --seed reproduces the report.

Examples:
  breach sim
  breach sim --runs 32 --accuracy 0.8 --difficulty N4
  breach sim --lanes 4 --limit 2m --seed 7`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagRuns, "runs", 8, "Number of sessions to play")
	simCmd.Flags().IntVar(&flagParallel, "parallel", runtime.NumCPU(), "Maximum sessions running at once")
	simCmd.Flags().Float64Var(&flagAccuracy, "accuracy", 0.95, "Probability the autopilot answers a block correctly")
	simCmd.Flags().DurationVar(&flagLimit, "limit", 10*time.Minute, "Session clock limit per run (0 = none)")
	simCmd.Flags().IntVar(&flagSimLanes, "lanes", 0, "Lane count: 4 or 5 (default from config)")
	simCmd.Flags().StringVar(&flagSimLevel, "difficulty", "", "Difficulty level: N1..N5 (default from config)")
}

var (
	simHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	simDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	simTotalStyle  = lipgloss.NewStyle().Bold(true)
)

func runSim(cmd *cobra.Command, _ []string) error {
	if flagRuns <= 0 {
		return fmt.Errorf("--runs must be positive, got %d", flagRuns)
	}
	if flagAccuracy < 0 || flagAccuracy > 1 {
		return fmt.Errorf("--accuracy must be within [0, 1], got %g", flagAccuracy)
	}

	breachCfg, err := loadConfig()
	if err != nil {
		return err
	}

	settings := breach.Settings{Lanes: flagSimLanes}
	if flagSimLevel != "" {
		level, lvlErr := config.ParseDifficulty(flagSimLevel)
		if lvlErr != nil {
			return lvlErr
		}
		settings.Difficulty = level
	}

	logger, closeLog, err := newLogger("breach-sim", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	results := make([]breach.Stats, flagRuns)
	start := time.Now()

	g, ctx := errgroup.WithContext(cmd.Context())
	if flagParallel > 0 {
		g.SetLimit(flagParallel)
	}
	for i := range flagRuns {
		g.Go(func() error {
			runLog := logger.With("run", i)
			stats, simErr := breach.Simulate(ctx, breach.SimOptions{
				Config:   breachCfg,
				Settings: settings,
				Seed:     seed + int64(i),
				Accuracy: flagAccuracy,
				TickRate: flagFPS,
				Limit:    flagLimit,
			}, breach.WithLogger(runLog))
			if simErr != nil {
				return fmt.Errorf("run %d: %w", i, simErr)
			}
			runLog.Info("run finished", "score", stats.Score, "circuits", stats.Circuits, "breaks", stats.Breaks)
			results[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Print(simReport(results, seed, time.Since(start)))
	return nil
}

// simReport formats the per-run table and the totals row.
func simReport(results []breach.Stats, seed int64, took time.Duration) string {
	var b strings.Builder
	row := "%5s %8s %9s %7s %6s %7s %9s"

	b.WriteString(simHeaderStyle.Render(fmt.Sprintf(row, "RUN", "SCORE", "CIRCUITS", "BREAKS", "HITS", "MISSES", "TIME")))
	b.WriteString("\n")

	var total breach.Stats
	for i, st := range results {
		fmt.Fprintf(&b, row,
			fmt.Sprint(i), fmt.Sprint(st.Score), fmt.Sprint(st.Circuits), fmt.Sprint(st.Breaks),
			fmt.Sprint(st.Hits), fmt.Sprint(st.Misses), st.Elapsed.Round(time.Second).String())
		b.WriteString("\n")
		total.Score += st.Score
		total.Circuits += st.Circuits
		total.Breaks += st.Breaks
		total.Hits += st.Hits
		total.Misses += st.Misses
		total.Elapsed += st.Elapsed
	}

	n := len(results)
	if n > 0 {
		avg := fmt.Sprintf(row, "avg",
			fmt.Sprint(total.Score/n), fmt.Sprint(total.Circuits/n), fmt.Sprint(total.Breaks/n),
			fmt.Sprint(total.Hits/n), fmt.Sprint(total.Misses/n),
			(total.Elapsed / time.Duration(n)).Round(time.Second).String())
		b.WriteString(simTotalStyle.Render(avg))
		b.WriteString("\n")
	}

	b.WriteString(simDimStyle.Render(fmt.Sprintf("%d runs, base seed %d, %s", n, seed, took.Round(time.Millisecond))))
	b.WriteString("\n")
	return b.String()
}

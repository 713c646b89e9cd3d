package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/svsports/dugoutpulse/internal/history"
	"github.com/svsports/dugoutpulse/internal/roster"
	"github.com/svsports/dugoutpulse/internal/sources"
	"github.com/svsports/dugoutpulse/internal/worker"
)

// historicalCmd represents the rolling-window aggregation
var historicalCmd = &cobra.Command{
	Use:   "historical",
	Short: "Aggregate 7D/30D/Season windows from game logs",
	Long: `Historical pulls per-game logs for every Pro athlete on the roster,
aggregates them over the 7-day, 30-day and season-to-date windows, and
writes one graded window document per span. NCAA athletes are skipped;
none of their sources expose game logs.`,
	Args: cobra.NoArgs,
	RunE: runHistorical,
}

func init() {
	rootCmd.AddCommand(historicalCmd)
}

func runHistorical(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	fetcher := roster.NewFetcher(cfg.Roster.Timeout, log)
	athletes, err := fetcher.FetchAll(ctx, cfg.Roster)
	if err != nil {
		return err
	}

	limiter := worker.NewLimiter(cfg.Sources.RatePerHost, cfg.Sources.Burst)
	mlb := sources.NewMLB(cfg.Sources, limiter, log)

	agg := history.NewAggregator(mlb, cfg.History, log)
	windows, err := agg.Run(ctx, athletes)
	if err != nil {
		return fmt.Errorf("aggregate windows: %w", err)
	}

	paths := map[string]string{
		"7d":     cfg.History.Window7DPath,
		"30d":    cfg.History.Window30DPath,
		"season": cfg.History.WindowSeasonPath,
	}
	for window, path := range paths {
		if err := history.Write(windows[window], path); err != nil {
			return fmt.Errorf("write %s window: %w", window, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote %s window (%d athletes): %s\n", window, len(windows[window]), path)
		}
	}
	return nil
}

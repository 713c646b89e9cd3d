package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/svsports/dugoutpulse/internal/alert"
	"github.com/svsports/dugoutpulse/internal/digest"
	"github.com/svsports/dugoutpulse/internal/model"
	"github.com/svsports/dugoutpulse/internal/pipeline"
)

var (
	dryRun        bool
	runDeadline   time.Duration
	concurrency   int
	snapshotPath  string
	digestEnabled bool
)

// runCmd represents the live poll cycle
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one poll cycle: resolve, grade, alert, snapshot",
	Long: `Run fetches the roster, resolves each athlete's current game across
the level-specific source chain, grades every line, announces
newly-qualifying events, and replaces the dashboard snapshot.

Example:
  dugoutpulse run
  dugoutpulse run --dry-run -v
  dugoutpulse run --deadline 2m --concurrency 16`,
	Args: cobra.NoArgs,
	RunE: runPulse,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "log alerts instead of sending them")
	runCmd.Flags().DurationVar(&runDeadline, "deadline", 0, "overall run deadline (0 = config default)")
	runCmd.Flags().IntVar(&concurrency, "concurrency", 0, "resolution workers (0 = config default)")
	runCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "snapshot output path (overrides config)")
	runCmd.Flags().BoolVar(&digestEnabled, "digest", false, "generate the LLM daily digest after the run")
}

func runPulse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runDeadline > 0 {
		cfg.Run.Deadline = runDeadline
	}
	if concurrency > 0 {
		cfg.Run.Concurrency = concurrency
	}
	if snapshotPath != "" {
		cfg.Output.SnapshotPath = snapshotPath
	}
	if digestEnabled {
		cfg.Digest.Enabled = true
	}

	var notifier alert.Notifier
	if dryRun {
		notifier = alert.NewLogNotifier(log)
	} else {
		notifier = alert.NewSlackNotifier(cfg.Alerts.SlackWebhookURL, cfg.Alerts.Timeout)
	}

	p, err := pipeline.New(cfg, notifier, log)
	if err != nil {
		return err
	}

	report, err := p.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Resolved %d/%d athletes\n", report.Resolved, report.Athletes)
		fmt.Fprintf(os.Stderr, "✓ Emitted %d new alert events\n", report.NewEvents)
		fmt.Fprintf(os.Stderr, "✓ Wrote snapshot: %s\n", cfg.Output.SnapshotPath)
	}

	if cfg.Digest.Enabled {
		writeDigest(cmd.Context(), cfg, report)
	}
	return nil
}

// writeDigest is best-effort: the recap never blocks or fails the run.
func writeDigest(ctx context.Context, cfg *model.Config, report *pipeline.RunReport) {
	summarizer, err := digest.NewSummarizer(cfg.Digest)
	if err != nil {
		log.Warn().Err(err).Msg("digest disabled")
		return
	}
	recap, err := summarizer.Generate(ctx, report.Snapshot)
	if err != nil {
		log.Warn().Err(err).Msg("digest generation failed")
		return
	}
	if err := digest.Write(recap, cfg.Digest.Path); err != nil {
		log.Warn().Err(err).Msg("digest write failed")
		return
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote digest: %s\n", cfg.Digest.Path)
	}
}

// Package pipeline wires one full run: roster in, snapshot and alerts out.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/svsports/dugoutpulse/internal/alert"
	"github.com/svsports/dugoutpulse/internal/grade"
	"github.com/svsports/dugoutpulse/internal/ledger"
	"github.com/svsports/dugoutpulse/internal/model"
	"github.com/svsports/dugoutpulse/internal/resolve"
	"github.com/svsports/dugoutpulse/internal/roster"
	"github.com/svsports/dugoutpulse/internal/snapshot"
	"github.com/svsports/dugoutpulse/internal/sources"
	"github.com/svsports/dugoutpulse/internal/worker"
)

// Pipeline holds the assembled components for the live run.
type Pipeline struct {
	cfg      *model.Config
	fetcher  *roster.Fetcher
	resolver *resolve.Resolver
	dedupe   *alert.Deduplicator
	notifier alert.Notifier
	log      zerolog.Logger
	now      func() time.Time
}

// New builds the pipeline from config. The notifier is injected so dry runs
// can swap Slack for the log.
func New(cfg *model.Config, notifier alert.Notifier, log zerolog.Logger) (*Pipeline, error) {
	limiter := worker.NewLimiter(cfg.Sources.RatePerHost, cfg.Sources.Burst)
	registry, err := sources.NewRegistry(cfg.Sources, limiter, log)
	if err != nil {
		return nil, fmt.Errorf("build source registry: %w", err)
	}

	return &Pipeline{
		cfg:      cfg,
		fetcher:  roster.NewFetcher(cfg.Roster.Timeout, log),
		resolver: resolve.NewResolver(registry, cfg.Sources.AdapterTimeout, log),
		dedupe:   alert.NewDeduplicator(cfg.Grading),
		notifier: notifier,
		log:      log.With().Str("component", "pipeline").Logger(),
		now:      time.Now,
	}, nil
}

// RunReport summarizes one completed run for the operator.
type RunReport struct {
	Athletes    int
	Resolved    int
	Unavailable int
	NewEvents   int
	Snapshot    model.Snapshot
}

// Run executes one poll cycle. Individual source failures degrade to
// per-athlete "no data"; only a total roster failure aborts the run.
func (p *Pipeline) Run(ctx context.Context) (*RunReport, error) {
	if p.cfg.Run.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Run.Deadline)
		defer cancel()
	}

	athletes, err := p.fetcher.FetchAll(ctx, p.cfg.Roster)
	if err != nil {
		return nil, err
	}
	if len(athletes) == 0 {
		return nil, fmt.Errorf("roster is empty")
	}

	now := p.now()
	gameDate := now.Format("2006-01-02")

	led := ledger.Load(p.cfg.Alerts.LedgerPath, p.log)
	if pruned := led.Prune(gameDate); pruned > 0 {
		p.log.Debug().Int("pruned", pruned).Msg("dropped ledger entries from earlier game days")
	}

	resolutions := p.resolveAll(ctx, athletes)

	grades := make([]grade.Result, len(resolutions))
	var records []alert.Record
	resolved := 0
	for i, res := range resolutions {
		if res.Unavailable() {
			continue
		}
		resolved++
		grades[i] = grade.Grade(res.Line, res.Athlete.Role, p.cfg.Grading)
		if res.Athlete.Client { // recruits are watched, not announced
			records = append(records, alert.Record{
				Athlete:  res.Athlete,
				Line:     res.Line,
				Criteria: grades[i].Criteria,
			})
		}
		p.log.Info().
			Str("athlete", res.Athlete.Name).
			Str("line", res.Line.Summary()).
			Str("grade", grades[i].Grade.String()).
			Msg("graded")
	}

	events := p.dedupe.Evaluate(records, led, now)
	p.deliver(ctx, events)

	if err := led.Save(p.cfg.Alerts.LedgerPath); err != nil {
		// Next run re-announces at worst; the snapshot must still ship.
		p.log.Error().Err(err).Msg("ledger save failed")
	}

	snap := snapshot.Build(resolutions, grades, now)
	if err := snapshot.Write(snap, p.cfg.Output.SnapshotPath); err != nil {
		return nil, fmt.Errorf("write snapshot: %w", err)
	}

	report := &RunReport{
		Athletes:    len(athletes),
		Resolved:    resolved,
		Unavailable: len(athletes) - resolved,
		NewEvents:   len(events),
		Snapshot:    snap,
	}
	p.log.Info().
		Int("athletes", report.Athletes).
		Int("resolved", report.Resolved).
		Int("unavailable", report.Unavailable).
		Int("new_events", report.NewEvents).
		Msg("run complete")
	return report, nil
}

// resolveAll fans athlete resolution out over the worker pool. Results come
// back in roster order regardless of completion order.
func (p *Pipeline) resolveAll(ctx context.Context, athletes []model.Athlete) []resolve.Resolution {
	jobs := make([]worker.Job, len(athletes))
	for i, athlete := range athletes {
		jobs[i] = &resolveJob{resolver: p.resolver, athlete: athlete}
	}

	pool := worker.NewPool(p.cfg.Run.Concurrency)
	results := pool.Run(ctx, jobs)

	resolutions := make([]resolve.Resolution, len(results))
	for i, result := range results {
		resolutions[i] = result.(*resolveResult).resolution
	}
	return resolutions
}

// deliver pushes events to the sink. Failures are logged and dropped: the
// ledger already recorded the fact, and at-least-once delivery with
// idempotent suppression is the chosen model.
func (p *Pipeline) deliver(ctx context.Context, events []model.AlertEvent) {
	for _, event := range events {
		if !p.cfg.Alerts.Enabled {
			break
		}
		if err := p.notifier.Send(ctx, event); err != nil {
			p.log.Error().Str("key", event.DedupKey).Err(err).Msg("alert delivery failed")
		}
	}
}

type resolveJob struct {
	resolver *resolve.Resolver
	athlete  model.Athlete
}

func (j *resolveJob) Execute(ctx context.Context) worker.Result {
	return &resolveResult{resolution: j.resolver.Resolve(ctx, j.athlete)}
}

type resolveResult struct {
	resolution resolve.Resolution
}

// Err is always nil: resolution failures are expressed as Unavailable
// markers, not errors.
func (r *resolveResult) Err() error { return nil }

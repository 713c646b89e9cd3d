// Package history aggregates per-athlete stats over rolling windows
// (7D/30D/Season) and grades the windows on rate stats rather than single
// games: OPS for hitters, ERA for pitchers.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/svsports/dugoutpulse/internal/model"
	"github.com/svsports/dugoutpulse/internal/sources"
)

// WindowEntry is one athlete's aggregate over one window.
type WindowEntry struct {
	Name   string `json:"player_name"`
	Org    string `json:"team"`
	Window string `json:"window"`

	// Hitting
	PlateAppearances int     `json:"pa,omitempty"`
	AtBats           int     `json:"ab,omitempty"`
	Hits             int     `json:"h,omitempty"`
	HomeRuns         int     `json:"hr,omitempty"`
	RBI              int     `json:"rbi,omitempty"`
	AVG              float64 `json:"avg,omitempty"`
	OBP              float64 `json:"obp,omitempty"`
	SLG              float64 `json:"slg,omitempty"`
	OPS              float64 `json:"ops,omitempty"`

	// Pitching
	Outs       int     `json:"outs,omitempty"`
	EarnedRuns int     `json:"er,omitempty"`
	Strikeouts int     `json:"k,omitempty"`
	ERA        float64 `json:"era,omitempty"`
	WHIP       float64 `json:"whip,omitempty"`

	Grade string `json:"window_grade"`
}

// Aggregator drives window aggregation over the Pro game-log source.
type Aggregator struct {
	mlb *sources.MLBAdapter
	cfg model.HistoryConfig
	log zerolog.Logger
	now func() time.Time
}

func NewAggregator(mlb *sources.MLBAdapter, cfg model.HistoryConfig, log zerolog.Logger) *Aggregator {
	return &Aggregator{
		mlb: mlb,
		cfg: cfg,
		log: log.With().Str("component", "history").Logger(),
		now: time.Now,
	}
}

// Run aggregates all three windows for every Pro athlete. NCAA athletes are
// skipped: none of their sources expose game logs.
func (a *Aggregator) Run(ctx context.Context, athletes []model.Athlete) (map[string][]WindowEntry, error) {
	now := a.now()
	windows := map[string]time.Time{
		"7d":     now.AddDate(0, 0, -7),
		"30d":    now.AddDate(0, 0, -30),
		"season": time.Date(now.Year(), time.March, 1, 0, 0, 0, 0, now.Location()),
	}

	out := make(map[string][]WindowEntry, len(windows))
	for _, athlete := range athletes {
		if athlete.Level != model.LevelPro {
			a.log.Debug().Str("athlete", athlete.Name).Msg("no game-log source for level, skipping")
			continue
		}
		for window, start := range windows {
			entry, err := a.aggregate(ctx, athlete, window, start, now)
			if err != nil {
				a.log.Debug().Str("athlete", athlete.Name).Str("window", window).Err(err).
					Msg("window unavailable")
				continue
			}
			out[window] = append(out[window], entry)
		}
	}
	return out, nil
}

func (a *Aggregator) aggregate(ctx context.Context, athlete model.Athlete, window string, start, end time.Time) (WindowEntry, error) {
	if athlete.Role == model.RolePitcher {
		return a.aggregatePitching(ctx, athlete, window, start, end)
	}
	return a.aggregateHitting(ctx, athlete, window, start, end)
}

func (a *Aggregator) aggregateHitting(ctx context.Context, athlete model.Athlete, window string, start, end time.Time) (WindowEntry, error) {
	splits, err := a.mlb.GameLog(ctx, athlete.Name, "hitting", start, end)
	if err != nil {
		return WindowEntry{}, err
	}

	entry := WindowEntry{Name: athlete.Name, Org: athlete.Org, Window: window}
	var bb, hbp, sf, tb int
	for _, s := range splits {
		entry.AtBats += s.Stat.AtBats
		entry.Hits += s.Stat.Hits
		entry.HomeRuns += s.Stat.HomeRuns
		entry.RBI += s.Stat.RBI
		bb += s.Stat.BaseOnBalls
		hbp += s.Stat.HitByPitch
		sf += s.Stat.SacFlies
		singles := s.Stat.Hits - s.Stat.Doubles - s.Stat.Triples - s.Stat.HomeRuns
		tb += singles + 2*s.Stat.Doubles + 3*s.Stat.Triples + 4*s.Stat.HomeRuns
	}
	entry.PlateAppearances = entry.AtBats + bb + hbp + sf

	if entry.AtBats > 0 {
		entry.AVG = round3(float64(entry.Hits) / float64(entry.AtBats))
		entry.SLG = round3(float64(tb) / float64(entry.AtBats))
	}
	if entry.PlateAppearances > 0 {
		entry.OBP = round3(float64(entry.Hits+bb+hbp) / float64(entry.PlateAppearances))
	}
	entry.OPS = round3(entry.OBP + entry.SLG)
	entry.Grade = gradeHitterWindow(entry.OPS, entry.PlateAppearances, a.cfg.MinPlateAppear)
	return entry, nil
}

func (a *Aggregator) aggregatePitching(ctx context.Context, athlete model.Athlete, window string, start, end time.Time) (WindowEntry, error) {
	splits, err := a.mlb.GameLog(ctx, athlete.Name, "pitching", start, end)
	if err != nil {
		return WindowEntry{}, err
	}

	entry := WindowEntry{Name: athlete.Name, Org: athlete.Org, Window: window}
	var walksAndHits int
	for _, s := range splits {
		entry.Outs += outsOf(s.Stat.InningsPitched)
		entry.EarnedRuns += s.Stat.EarnedRuns
		entry.Strikeouts += s.Stat.StrikeOuts
		walksAndHits += s.Stat.BaseOnBalls + s.Stat.Hits
	}

	if entry.Outs > 0 {
		innings := float64(entry.Outs) / 3
		entry.ERA = round3(9 * float64(entry.EarnedRuns) / innings)
		entry.WHIP = round3(float64(walksAndHits) / innings)
	}
	entry.Grade = gradePitcherWindow(entry.ERA, entry.Outs, a.cfg.MinOuts)
	return entry, nil
}

// Write renders one window document, replacing the prior file.
func Write(entries []WindowEntry, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal window: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write window: %w", err)
	}
	return nil
}

func round3(v float64) float64 {
	return float64(int(v*1000+0.5)) / 1000
}

func outsOf(ip string) int {
	var whole, frac int
	if _, err := fmt.Sscanf(ip, "%d.%d", &whole, &frac); err != nil {
		if _, err := fmt.Sscanf(ip, "%d", &whole); err != nil {
			return 0
		}
	}
	if frac > 2 {
		frac = 0
	}
	return whole*3 + frac
}

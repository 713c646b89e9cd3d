package model

import (
	"fmt"
	"strings"
)

// Decision is the pitching decision credited for the game.
type Decision string

const (
	DecisionWin  Decision = "W"
	DecisionLoss Decision = "L"
	DecisionSave Decision = "SV"
	DecisionHold Decision = "HLD"
	DecisionNone Decision = ""
)

// StatLine is the canonical, source-independent record of one athlete's game.
// A nil *StatLine means "no data"; a non-nil line is a real observed box score
// entry, never a zeroed placeholder.
type StatLine struct {
	GameDate    string `json:"game_date"` // YYYY-MM-DD
	GameContext string `json:"game_context,omitempty"`
	GameStatus  string `json:"game_status,omitempty"` // Final, Live, Scheduled, ...

	// Batting
	AtBats      int  `json:"at_bats"`
	Hits        int  `json:"hits"`
	Doubles     int  `json:"doubles"`
	Triples     int  `json:"triples"`
	HomeRuns    int  `json:"home_runs"`
	RBI         int  `json:"rbi"`
	Runs        int  `json:"runs"`
	StolenBases int  `json:"stolen_bases"`
	Walks       int  `json:"walks"`
	WalksKnown  bool `json:"-"` // some feeds omit BB; times-on-base then falls back to hits

	// Pitching. Innings are stored as outs so "6.1 IP" never becomes 6.1 the float.
	PitcherLine  bool     `json:"is_pitcher_line"`
	Outs         int      `json:"outs"`
	EarnedRuns   int      `json:"earned_runs"`
	Strikeouts   int      `json:"strikeouts"`
	WalksAllowed int      `json:"walks_allowed"`
	HitsAllowed  int      `json:"hits_allowed"`
	Decision     Decision `json:"decision,omitempty"`
	NoHitter     bool     `json:"no_hitter,omitempty"`

	// Milestone flags, populated only when the source exposes them.
	Debut     bool `json:"is_debut,omitempty"`
	FirstHR   bool `json:"first_home_run,omitempty"`
	FirstWin  bool `json:"first_win,omitempty"`
	FirstSave bool `json:"first_save,omitempty"`
	Cycle     bool `json:"cycle,omitempty"`
}

// IP renders outs as conventional innings notation ("6.1").
func (s *StatLine) IP() string {
	return fmt.Sprintf("%d.%d", s.Outs/3, s.Outs%3)
}

// TimesOnBase estimates how often the hitter reached base. Walks are not
// reported by every source, so the count degrades to hits alone.
func (s *StatLine) TimesOnBase() int {
	if s.WalksKnown {
		return s.Hits + s.Walks
	}
	return s.Hits
}

// Singles is derived; sources report hits by type, not singles directly.
func (s *StatLine) Singles() int {
	return s.Hits - s.Doubles - s.Triples - s.HomeRuns
}

// Summary renders the line the way it reads in a box score recap,
// e.g. "2-4, HR, 3 RBI" or "6.1 IP, 2 H, 1 ER, 6 K, W".
func (s *StatLine) Summary() string {
	if s.PitcherLine {
		return s.pitcherSummary()
	}
	return s.batterSummary()
}

func (s *StatLine) batterSummary() string {
	parts := []string{fmt.Sprintf("%d-%d", s.Hits, s.AtBats)}
	switch {
	case s.HomeRuns > 1:
		parts = append(parts, fmt.Sprintf("%d HR", s.HomeRuns))
	case s.HomeRuns == 1:
		parts = append(parts, "HR")
	}
	if s.RBI > 0 {
		parts = append(parts, fmt.Sprintf("%d RBI", s.RBI))
	}
	if s.Runs > 0 {
		parts = append(parts, fmt.Sprintf("%d R", s.Runs))
	}
	if s.WalksKnown && s.Walks > 0 {
		parts = append(parts, fmt.Sprintf("%d BB", s.Walks))
	}
	if s.StolenBases > 0 {
		parts = append(parts, fmt.Sprintf("%d SB", s.StolenBases))
	}
	return strings.Join(parts, ", ")
}

func (s *StatLine) pitcherSummary() string {
	parts := []string{s.IP() + " IP"}
	if s.HitsAllowed > 0 {
		parts = append(parts, fmt.Sprintf("%d H", s.HitsAllowed))
	}
	if s.EarnedRuns > 0 {
		parts = append(parts, fmt.Sprintf("%d ER", s.EarnedRuns))
	}
	parts = append(parts, fmt.Sprintf("%d K", s.Strikeouts))
	if s.WalksAllowed > 0 {
		parts = append(parts, fmt.Sprintf("%d BB", s.WalksAllowed))
	}
	if s.Decision != DecisionNone {
		parts = append(parts, string(s.Decision))
	}
	return strings.Join(parts, ", ")
}

// SourceOutcome classifies a single adapter attempt.
type SourceOutcome string

const (
	OutcomeFound          SourceOutcome = "found"
	OutcomeNotFound       SourceOutcome = "not_found"
	OutcomeTransientError SourceOutcome = "transient_error"
)

// SourceAttempt records one adapter call for diagnostics. Only the first
// Found (or exhaustion of the chain) determines the canonical record.
type SourceAttempt struct {
	Adapter string        `json:"adapter"`
	Outcome SourceOutcome `json:"outcome"`
	Detail  string        `json:"detail,omitempty"`
}

package model

import "time"

// SnapshotEntry is one athlete's current state in the dashboard document.
type SnapshotEntry struct {
	Athlete
	StatsSummary string      `json:"stats_summary"`
	GameContext  string      `json:"game_context"`
	GameStatus   string      `json:"game_status"`
	Grade        string      `json:"performance_grade"`
	Criteria     []Criterion `json:"criteria,omitempty"`
	Line         *StatLine   `json:"line,omitempty"` // nil when no data
	Unavailable  string      `json:"unavailable_reason,omitempty"`
	SocialURL    string      `json:"social_search_url,omitempty"`
}

// Snapshot is the full per-run output document. It replaces the prior
// snapshot wholesale; it is never merged.
type Snapshot struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Entries     []SnapshotEntry `json:"players"`
}

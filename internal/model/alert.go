package model

import "time"

// AlertEvent is one newly-qualifying game fact to be announced exactly once.
type AlertEvent struct {
	Athlete   string    `json:"player_name"`
	Tier      int       `json:"tier"`
	Criterion Criterion `json:"criterion"`
	Count     int       `json:"count"` // observed qualifying count (e.g., 2 for a 2nd HR)
	DedupKey  string    `json:"dedup_key"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

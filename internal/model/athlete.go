package model

import "fmt"

// Level is the competition level of a tracked athlete.
type Level string

const (
	LevelPro  Level = "Pro"
	LevelNCAA Level = "NCAA"
)

// Role determines which grading paths apply to an athlete's stat line.
type Role string

const (
	RoleHitter  Role = "Hitter"
	RolePitcher Role = "Pitcher"
	RoleTwoWay  Role = "Two-Way"
)

// Athlete is one tracked player from the roster sheet. Immutable per run.
type Athlete struct {
	Name       string `json:"player_name"`
	Org        string `json:"team"`
	Level      Level  `json:"level"`
	Tier       int    `json:"tier"` // 1 (highest) to 4
	Role       Role   `json:"position"`
	Client     bool   `json:"is_client"` // recruits are tracked but never alerted
	DraftClass string `json:"draft_class,omitempty"`
}

// TierLabel renders the priority tier for alert messages (e.g., "T1").
func (a Athlete) TierLabel() string {
	if a.Tier >= 1 && a.Tier <= 4 {
		return fmt.Sprintf("T%d", a.Tier)
	}
	return "T?"
}

// Hits checks whether the role carries a hitting grading path.
func (r Role) Hits() bool {
	return r == RoleHitter || r == RoleTwoWay
}

// Pitches checks whether the role carries a pitching grading path.
func (r Role) Pitches() bool {
	return r == RolePitcher || r == RoleTwoWay
}

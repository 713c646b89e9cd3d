package sources

import (
	"context"
	"fmt"
	"time"
)

// GameLogSplit is one game's stat line from the MLB game-log endpoint.
// Batting and pitching splits share the struct; absent fields stay zero.
type GameLogSplit struct {
	Date string `json:"date"`
	Stat struct {
		// Batting
		AtBats      int `json:"atBats"`
		Hits        int `json:"hits"`
		Doubles     int `json:"doubles"`
		Triples     int `json:"triples"`
		HomeRuns    int `json:"homeRuns"`
		RBI         int `json:"rbi"`
		Runs        int `json:"runs"`
		BaseOnBalls int `json:"baseOnBalls"`
		HitByPitch  int `json:"hitByPitch"`
		SacFlies    int `json:"sacFlies"`

		// Pitching. "hits" doubles as hits-allowed; the groups are
		// fetched separately so the field never means both at once.
		InningsPitched string `json:"inningsPitched"`
		EarnedRuns     int    `json:"earnedRuns"`
		StrikeOuts     int    `json:"strikeOuts"`
	} `json:"stat"`
}

// GameLog fetches a player's per-game stats for the date range. group is
// "hitting" or "pitching". Only the Pro provider offers game logs; the
// NCAA sources have no historical endpoint.
func (a *MLBAdapter) GameLog(ctx context.Context, name, group string, start, end time.Time) ([]GameLogSplit, error) {
	playerID, err := a.lookupPlayer(ctx, name)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Stats []struct {
			Splits []GameLogSplit `json:"splits"`
		} `json:"stats"`
	}
	u := fmt.Sprintf("%s/api/v1/people/%d/stats?stats=gameLog&group=%s&startDate=%s&endDate=%s",
		a.base, playerID, group, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err := a.src.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	var splits []GameLogSplit
	for _, s := range resp.Stats {
		splits = append(splits, s.Splits...)
	}
	if len(splits) == 0 {
		return nil, ErrNotFound
	}
	return splits, nil
}

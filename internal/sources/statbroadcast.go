package sources

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/svsports/dugoutpulse/internal/model"
)

// StatBroadcastAdapter scrapes StatBroadcast live-stat pages. Mid-chain
// fallback: wider coverage than Sidearm, live data, but HTML that drifts.
type StatBroadcastAdapter struct {
	feeds map[string]string // school -> live stats URL
	src   *httpSource
	log   zerolog.Logger
	today func() time.Time
}

func NewStatBroadcastAdapter(feeds map[string]string, src *httpSource, log zerolog.Logger) *StatBroadcastAdapter {
	return &StatBroadcastAdapter{
		feeds: feeds,
		src:   src,
		log:   log.With().Str("adapter", "statbroadcast").Logger(),
		today: time.Now,
	}
}

func (a *StatBroadcastAdapter) Name() string { return "statbroadcast" }

func (a *StatBroadcastAdapter) Fetch(ctx context.Context, athlete model.Athlete) (*model.StatLine, error) {
	pageURL, ok := a.feeds[athlete.Org]
	if !ok {
		return nil, ErrNotFound
	}

	doc, err := a.src.getHTML(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	line := extractFromTables(findStatTables(doc), athlete.Name, a.today().Format("2006-01-02"))
	if line == nil {
		return nil, ErrNotFound
	}
	return line, nil
}

// extractFromTables pulls a player's batting and pitching rows out of
// parsed box score tables. Batting tables are recognized by an AB column,
// pitching tables by an IP column. Shared with the ncaa.org adapter.
func extractFromTables(tables []statTable, name, date string) *model.StatLine {
	var line *model.StatLine
	ensure := func() *model.StatLine {
		if line == nil {
			line = &model.StatLine{GameDate: date, GameStatus: "Live"}
		}
		return line
	}

	for _, tbl := range tables {
		switch {
		case tbl.hasColumn("AB"):
			row := tbl.playerRow(name)
			if row == nil {
				continue
			}
			l := ensure()
			l.AtBats = tbl.intAt(row, "AB")
			l.Hits = tbl.intAt(row, "H")
			l.Doubles = tbl.intAt(row, "2B")
			l.Triples = tbl.intAt(row, "3B")
			l.HomeRuns = tbl.intAt(row, "HR")
			l.RBI = tbl.intAt(row, "RBI")
			l.Runs = tbl.intAt(row, "R")
			if tbl.hasColumn("BB") {
				l.Walks = tbl.intAt(row, "BB")
				l.WalksKnown = true
			}
			l.StolenBases = tbl.intAt(row, "SB")
			l.Cycle = l.Singles() >= 1 && l.Doubles >= 1 && l.Triples >= 1 && l.HomeRuns >= 1
		case tbl.hasColumn("IP"):
			row := tbl.playerRow(name)
			if row == nil {
				continue
			}
			l := ensure()
			l.PitcherLine = true
			l.Outs = parseOuts(tbl.stringAt(row, "IP"))
			l.EarnedRuns = tbl.intAt(row, "ER")
			l.Strikeouts = tbl.intAt(row, "K")
			if l.Strikeouts == 0 {
				l.Strikeouts = tbl.intAt(row, "SO")
			}
			l.WalksAllowed = tbl.intAt(row, "BB")
			l.HitsAllowed = tbl.intAt(row, "H")
			l.Decision = parseDecision(tbl.stringAt(row, "Dec"))
			l.NoHitter = l.Outs >= 27 && l.HitsAllowed == 0
		}
	}
	return line
}

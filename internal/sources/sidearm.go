package sources

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/svsports/dugoutpulse/internal/model"
)

// SidearmAdapter reads the JSON stats feed that Sidearm-hosted athletic
// sites expose. Coverage is narrow (only schools with a configured feed)
// but the data quality is the best of the NCAA chain.
type SidearmAdapter struct {
	feeds map[string]string // school -> feed URL
	src   *httpSource
	log   zerolog.Logger
	today func() time.Time
}

func NewSidearmAdapter(feeds map[string]string, src *httpSource, log zerolog.Logger) *SidearmAdapter {
	return &SidearmAdapter{
		feeds: feeds,
		src:   src,
		log:   log.With().Str("adapter", "sidearm").Logger(),
		today: time.Now,
	}
}

func (a *SidearmAdapter) Name() string { return "sidearm" }

type sidearmFeed struct {
	Game struct {
		Date     string `json:"date"`
		Opponent string `json:"opponent"`
		Status   string `json:"status"`
		Score    string `json:"score"`
	} `json:"game"`
	Players []sidearmPlayer `json:"players"`
}

type sidearmPlayer struct {
	Name    string `json:"name"`
	Batting *struct {
		AB  int `json:"ab"`
		H   int `json:"h"`
		D   int `json:"2b"`
		T   int `json:"3b"`
		HR  int `json:"hr"`
		RBI int `json:"rbi"`
		R   int `json:"r"`
		BB  int `json:"bb"`
		SB  int `json:"sb"`
	} `json:"batting"`
	Pitching *struct {
		IP       string `json:"ip"`
		ER       int    `json:"er"`
		K        int    `json:"k"`
		BB       int    `json:"bb"`
		H        int    `json:"h"`
		Decision string `json:"decision"`
	} `json:"pitching"`
}

func (a *SidearmAdapter) Fetch(ctx context.Context, athlete model.Athlete) (*model.StatLine, error) {
	feedURL, ok := a.feeds[athlete.Org]
	if !ok {
		return nil, ErrNotFound
	}

	var feed sidearmFeed
	if err := a.src.getJSON(ctx, feedURL, &feed); err != nil {
		return nil, err
	}

	today := a.today().Format("2006-01-02")
	if feed.Game.Date != today {
		return nil, ErrNotFound
	}

	for _, player := range feed.Players {
		if !sameName(player.Name, athlete.Name) {
			continue
		}
		return a.extractLine(player, feed, today), nil
	}
	return nil, ErrNotFound
}

func (a *SidearmAdapter) extractLine(player sidearmPlayer, feed sidearmFeed, date string) *model.StatLine {
	line := &model.StatLine{
		GameDate:    date,
		GameStatus:  feed.Game.Status,
		GameContext: strings.TrimSpace("vs " + feed.Game.Opponent + " | " + feed.Game.Score),
	}
	if bat := player.Batting; bat != nil {
		line.AtBats = bat.AB
		line.Hits = bat.H
		line.Doubles = bat.D
		line.Triples = bat.T
		line.HomeRuns = bat.HR
		line.RBI = bat.RBI
		line.Runs = bat.R
		line.Walks = bat.BB
		line.WalksKnown = true
		line.StolenBases = bat.SB
		line.Cycle = line.Singles() >= 1 && bat.D >= 1 && bat.T >= 1 && bat.HR >= 1
	}
	if pit := player.Pitching; pit != nil {
		line.PitcherLine = true
		line.Outs = parseOuts(pit.IP)
		line.EarnedRuns = pit.ER
		line.Strikeouts = pit.K
		line.WalksAllowed = pit.BB
		line.HitsAllowed = pit.H
		line.Decision = parseDecision(pit.Decision)
		line.NoHitter = line.Outs >= 27 && pit.H == 0
	}
	return line
}

// sameName compares player names across the formats sources use:
// "First Last" and "Last, First".
func sameName(got, want string) bool {
	got = strings.TrimSpace(got)
	if strings.EqualFold(got, want) {
		return true
	}
	if last, first, ok := strings.Cut(got, ","); ok {
		flipped := strings.TrimSpace(first) + " " + strings.TrimSpace(last)
		return strings.EqualFold(flipped, want)
	}
	return false
}

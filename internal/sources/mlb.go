package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/svsports/dugoutpulse/internal/model"
	"github.com/svsports/dugoutpulse/internal/worker"
)

// MLBAdapter fetches lines from the official MLB Stats API. It is the
// authoritative Pro provider: NotFound here means no game today, full stop.
type MLBAdapter struct {
	base  string
	src   *httpSource
	cache *gocache.Cache
	log   zerolog.Logger
	today func() time.Time
}

// NewMLBAdapter creates the adapter. Player-index, schedule and boxscore
// responses are cached so a roster with several teammates costs one fetch
// per game, not one per athlete.
func NewMLBAdapter(base string, src *httpSource, log zerolog.Logger) *MLBAdapter {
	return &MLBAdapter{
		base:  strings.TrimRight(base, "/"),
		src:   src,
		cache: gocache.New(5*time.Minute, 10*time.Minute),
		log:   log.With().Str("adapter", "mlb").Logger(),
		today: time.Now,
	}
}

// NewMLB builds a standalone MLB adapter with its own transport, for
// callers that need only the Pro source and not the full registry.
func NewMLB(cfg model.SourcesConfig, limiter *worker.Limiter, log zerolog.Logger) *MLBAdapter {
	src := newHTTPSource(cfg.AdapterTimeout, cfg.UserAgent, limiter)
	return NewMLBAdapter(cfg.MLBBaseURL, src, log)
}

func (a *MLBAdapter) Name() string { return "mlb" }

// Fetch looks the athlete up in the player index by exact name, locates a
// game on today's schedule that includes them, and extracts their line.
func (a *MLBAdapter) Fetch(ctx context.Context, athlete model.Athlete) (*model.StatLine, error) {
	playerID, err := a.lookupPlayer(ctx, athlete.Name)
	if err != nil {
		return nil, err
	}

	games, err := a.schedule(ctx)
	if err != nil {
		return nil, err
	}

	for _, game := range games {
		box, err := a.boxscore(ctx, game.GamePk)
		if err != nil {
			if IsTransient(err) {
				a.log.Warn().Int64("game", game.GamePk).Err(err).Msg("boxscore fetch failed")
				continue
			}
			return nil, err
		}
		for _, side := range []mlbTeamBox{box.Teams.Home, box.Teams.Away} {
			entry, ok := side.Players[fmt.Sprintf("ID%d", playerID)]
			if !ok {
				continue
			}
			return a.extractLine(athlete, game, entry), nil
		}
	}
	return nil, ErrNotFound
}

func (a *MLBAdapter) lookupPlayer(ctx context.Context, name string) (int64, error) {
	if cached, ok := a.cache.Get("player:" + name); ok {
		return cached.(int64), nil
	}

	var resp struct {
		People []struct {
			ID       int64  `json:"id"`
			FullName string `json:"fullName"`
		} `json:"people"`
	}
	u := fmt.Sprintf("%s/api/v1/people/search?names=%s", a.base, url.QueryEscape(name))
	if err := a.src.getJSON(ctx, u, &resp); err != nil {
		return 0, err
	}

	// Exact-match only; near-misses stay unresolved rather than risking
	// another player's line.
	for _, person := range resp.People {
		if strings.EqualFold(person.FullName, name) {
			a.cache.Set("player:"+name, person.ID, 24*time.Hour)
			return person.ID, nil
		}
	}
	return 0, ErrNotFound
}

type mlbGame struct {
	GamePk int64 `json:"gamePk"`
	Status struct {
		DetailedState string `json:"detailedState"`
	} `json:"status"`
	Teams struct {
		Home mlbGameTeam `json:"home"`
		Away mlbGameTeam `json:"away"`
	} `json:"teams"`
}

type mlbGameTeam struct {
	Score int `json:"score"`
	Team  struct {
		Name string `json:"name"`
	} `json:"team"`
}

func (a *MLBAdapter) schedule(ctx context.Context) ([]mlbGame, error) {
	date := a.today().Format("2006-01-02")
	if cached, ok := a.cache.Get("schedule:" + date); ok {
		return cached.([]mlbGame), nil
	}

	var resp struct {
		Dates []struct {
			Games []mlbGame `json:"games"`
		} `json:"dates"`
	}
	u := fmt.Sprintf("%s/api/v1/schedule?sportId=1&date=%s", a.base, date)
	if err := a.src.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	var games []mlbGame
	for _, d := range resp.Dates {
		games = append(games, d.Games...)
	}
	a.cache.Set("schedule:"+date, games, 2*time.Minute)
	return games, nil
}

type mlbBoxscore struct {
	Teams struct {
		Home mlbTeamBox `json:"home"`
		Away mlbTeamBox `json:"away"`
	} `json:"teams"`
}

type mlbTeamBox struct {
	Players map[string]mlbPlayerBox `json:"players"`
}

type mlbPlayerBox struct {
	Stats struct {
		Batting  mlbBatting  `json:"batting"`
		Pitching mlbPitching `json:"pitching"`
	} `json:"stats"`
	SeasonStats struct {
		Batting  mlbBatting  `json:"batting"`
		Pitching mlbPitching `json:"pitching"`
	} `json:"seasonStats"`
}

type mlbBatting struct {
	GamesPlayed int `json:"gamesPlayed"`
	AtBats      int `json:"atBats"`
	Hits        int `json:"hits"`
	Doubles     int `json:"doubles"`
	Triples     int `json:"triples"`
	HomeRuns    int `json:"homeRuns"`
	RBI         int `json:"rbi"`
	Runs        int `json:"runs"`
	BaseOnBalls int `json:"baseOnBalls"`
	StolenBases int `json:"stolenBases"`
}

type mlbPitching struct {
	GamesPlayed    int    `json:"gamesPlayed"`
	InningsPitched string `json:"inningsPitched"`
	EarnedRuns     int    `json:"earnedRuns"`
	StrikeOuts     int    `json:"strikeOuts"`
	BaseOnBalls    int    `json:"baseOnBalls"`
	Hits           int    `json:"hits"`
	Wins           int    `json:"wins"`
	Saves          int    `json:"saves"`
	Note           string `json:"note"`
}

func (a *MLBAdapter) boxscore(ctx context.Context, gamePk int64) (*mlbBoxscore, error) {
	key := fmt.Sprintf("boxscore:%d", gamePk)
	if cached, ok := a.cache.Get(key); ok {
		return cached.(*mlbBoxscore), nil
	}

	var box mlbBoxscore
	u := fmt.Sprintf("%s/api/v1/game/%d/boxscore", a.base, gamePk)
	if err := a.src.getJSON(ctx, u, &box); err != nil {
		return nil, err
	}
	a.cache.Set(key, &box, 1*time.Minute)
	return &box, nil
}

func (a *MLBAdapter) extractLine(athlete model.Athlete, game mlbGame, entry mlbPlayerBox) *model.StatLine {
	line := &model.StatLine{
		GameDate:    a.today().Format("2006-01-02"),
		GameStatus:  gameStatus(game.Status.DetailedState),
		GameContext: gameContext(game),
	}

	bat := entry.Stats.Batting
	line.AtBats = bat.AtBats
	line.Hits = bat.Hits
	line.Doubles = bat.Doubles
	line.Triples = bat.Triples
	line.HomeRuns = bat.HomeRuns
	line.RBI = bat.RBI
	line.Runs = bat.Runs
	line.Walks = bat.BaseOnBalls
	line.WalksKnown = true
	line.StolenBases = bat.StolenBases
	line.Cycle = line.Singles() >= 1 && bat.Doubles >= 1 && bat.Triples >= 1 && bat.HomeRuns >= 1

	pit := entry.Stats.Pitching
	if pit.InningsPitched != "" || athlete.Role == model.RolePitcher {
		line.PitcherLine = pit.InningsPitched != ""
		line.Outs = parseOuts(pit.InningsPitched)
		line.EarnedRuns = pit.EarnedRuns
		line.Strikeouts = pit.StrikeOuts
		line.WalksAllowed = pit.BaseOnBalls
		line.HitsAllowed = pit.Hits
		line.Decision = parseDecision(pit.Note)
		line.NoHitter = line.Outs >= 27 && pit.Hits == 0
	}

	// Career firsts aren't in the boxscore feed; season totals are the
	// closest available signal.
	season := entry.SeasonStats
	line.Debut = season.Batting.GamesPlayed+season.Pitching.GamesPlayed <= 1
	line.FirstHR = bat.HomeRuns >= 1 && season.Batting.HomeRuns == bat.HomeRuns
	line.FirstWin = line.Decision == model.DecisionWin && season.Pitching.Wins <= 1
	line.FirstSave = line.Decision == model.DecisionSave && season.Pitching.Saves <= 1

	return line
}

// parseOuts converts "6.1" innings notation into 19 outs. Malformed values
// degrade to zero rather than failing the line.
func parseOuts(ip string) int {
	if ip == "" {
		return 0
	}
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

// parseDecision reads the boxscore note, e.g. "(W, 5-3)" or "(S, 12)".
func parseDecision(note string) model.Decision {
	note = strings.TrimPrefix(strings.TrimSpace(note), "(")
	switch {
	case strings.HasPrefix(note, "W"):
		return model.DecisionWin
	case strings.HasPrefix(note, "L"):
		return model.DecisionLoss
	case strings.HasPrefix(note, "S"):
		return model.DecisionSave
	case strings.HasPrefix(note, "H"):
		return model.DecisionHold
	default:
		return model.DecisionNone
	}
}

func gameStatus(detailed string) string {
	switch detailed {
	case "Final", "Game Over":
		return "Final"
	case "In Progress", "Live":
		return "Live"
	default:
		return detailed
	}
}

func gameContext(game mlbGame) string {
	home, away := game.Teams.Home, game.Teams.Away
	status := gameStatus(game.Status.DetailedState)
	if status == "Final" || status == "Live" {
		return fmt.Sprintf("%s %d, %s %d | %s", away.Team.Name, away.Score, home.Team.Name, home.Score, status)
	}
	return fmt.Sprintf("%s vs %s | %s", away.Team.Name, home.Team.Name, status)
}

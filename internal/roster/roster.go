// Package roster fetches the tracked-athlete list from published-sheet CSV
// exports. The sheet itself is an external collaborator; this package only
// downloads, filters and normalizes its rows.
package roster

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/svsports/dugoutpulse/internal/model"
)

// columnMap translates sheet headers to fields. When a column is renamed in
// the sheet, update only here.
var columnMap = map[string]string{
	"Player Name": "name",
	"Org":         "org",
	"Level":       "level",
	"Position":    "position",
	"Tier":        "tier",
	"Draft Class": "draft_class",
}

// includedLevels filters the sheet before anything reaches the pipeline;
// High School rows and the like never enter the core.
var includedLevels = map[model.Level]bool{
	model.LevelPro:  true,
	model.LevelNCAA: true,
}

// Fetcher downloads and parses roster sheets.
type Fetcher struct {
	client *http.Client
	log    zerolog.Logger
}

func NewFetcher(timeout time.Duration, log zerolog.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		log:    log.With().Str("component", "roster").Logger(),
	}
}

// FetchAll returns clients plus recruits. A client roster failure is fatal;
// a recruits failure only logs, since the tracked-client list is the
// product and the recruits list is best-effort.
func (f *Fetcher) FetchAll(ctx context.Context, cfg model.RosterConfig) ([]model.Athlete, error) {
	clients, err := f.Fetch(ctx, cfg.URL, true)
	if err != nil {
		return nil, fmt.Errorf("fetch roster: %w", err)
	}

	var recruits []model.Athlete
	if cfg.RecruitsURL != "" {
		recruits, err = f.Fetch(ctx, cfg.RecruitsURL, false)
		if err != nil {
			f.log.Warn().Err(err).Msg("recruits sheet unavailable, continuing without it")
			recruits = nil
		}
	}

	f.log.Info().Int("clients", len(clients)).Int("recruits", len(recruits)).Msg("roster loaded")
	return append(clients, recruits...), nil
}

// Fetch downloads one sheet and returns its normalized, level-filtered rows.
func (f *Fetcher) Fetch(ctx context.Context, url string, client bool) ([]model.Athlete, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch sheet: unexpected status %d", resp.StatusCode)
	}

	return f.parse(resp.Body, client)
}

func (f *Fetcher) parse(r io.Reader, client bool) ([]model.Athlete, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // sheets pad ragged rows

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	// header label -> column index, for the columns we recognize
	index := make(map[string]int)
	for i, label := range header {
		if field, ok := columnMap[strings.TrimSpace(label)]; ok {
			index[field] = i
		}
	}
	if _, ok := index["name"]; !ok {
		return nil, fmt.Errorf("sheet is missing the Player Name column")
	}

	var athletes []model.Athlete
	dropped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		athlete, ok := normalizeRow(row, index, client)
		if !ok {
			dropped++
			continue
		}
		athletes = append(athletes, athlete)
	}

	if dropped > 0 {
		f.log.Debug().Int("dropped", dropped).Msg("rows outside Pro/NCAA filtered out")
	}
	return athletes, nil
}

func normalizeRow(row []string, index map[string]int, client bool) (model.Athlete, bool) {
	cell := func(field string) string {
		idx, ok := index[field]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	level := model.Level(cell("level"))
	name := cell("name")
	if name == "" || !includedLevels[level] {
		return model.Athlete{}, false
	}

	tier, err := strconv.Atoi(cell("tier"))
	if err != nil || tier < 1 || tier > 4 {
		tier = 4 // untiered athletes get the lowest priority
	}

	role := model.Role(cell("position"))
	switch role {
	case model.RoleHitter, model.RolePitcher, model.RoleTwoWay:
	default:
		role = model.RoleHitter
	}

	return model.Athlete{
		Name:       name,
		Org:        cell("org"),
		Level:      level,
		Tier:       tier,
		Role:       role,
		Client:     client,
		DraftClass: cell("draft_class"),
	}, true
}

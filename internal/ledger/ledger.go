// Package ledger persists the alert deduplication state across runs.
// Every run re-fetches full game state, so correctness rests entirely on
// the stored last-observed qualifying counts: a boolean "seen" flag would
// swallow a second home run.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/svsports/dugoutpulse/internal/model"
)

// Entry records one announced game fact.
type Entry struct {
	FirstSeen time.Time `json:"first_seen"`
	LastCount int       `json:"last_count"`
	GameDate  string    `json:"game_date"`
}

// Ledger is the in-memory working copy: loaded once at run start, mutated
// by the deduplicator, written back once at run end.
type Ledger struct {
	entries map[string]Entry
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{entries: make(map[string]Entry)}
}

// Key builds the stable dedup key for one qualifying game fact.
func Key(athlete string, criterion model.Criterion, gameDate string) string {
	return fmt.Sprintf("%s|%s|%s", athlete, criterion, gameDate)
}

// Load reads the ledger file. A missing file is an empty ledger; a corrupt
// file also degrades to empty, logged prominently, because a one-time
// re-announcement beats aborting every future run.
func Load(path string, log zerolog.Logger) *Ledger {
	l := New()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return l
	}
	if err != nil {
		log.Error().Str("path", path).Err(err).
			Msg("alert ledger unreadable; starting empty, duplicates possible this run")
		return l
	}

	if err := json.Unmarshal(data, &l.entries); err != nil {
		log.Error().Str("path", path).Err(err).
			Msg("alert ledger corrupt; starting empty, duplicates possible this run")
		l.entries = make(map[string]Entry)
	}
	return l
}

// LastCount returns the stored qualifying count for the key.
func (l *Ledger) LastCount(key string) (int, bool) {
	entry, ok := l.entries[key]
	return entry.LastCount, ok
}

// Observe records a newly announced (or increased) qualifying count.
func (l *Ledger) Observe(key string, count int, gameDate string, now time.Time) {
	entry, ok := l.entries[key]
	if !ok {
		entry = Entry{FirstSeen: now, GameDate: gameDate}
	}
	entry.LastCount = count
	l.entries[key] = entry
}

// Prune drops entries from earlier game days. Entries for the current day
// are never pruned.
func (l *Ledger) Prune(gameDate string) int {
	dropped := 0
	for key, entry := range l.entries {
		if entry.GameDate != gameDate {
			delete(l.entries, key)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of tracked facts.
func (l *Ledger) Len() int { return len(l.entries) }

// Save atomically replaces the ledger file. The scheduler guarantees at
// most one run in flight, so write-write races are out of scope.
func (l *Ledger) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}

	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}

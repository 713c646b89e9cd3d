// Package snapshot assembles and renders the dashboard document.
package snapshot

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/svsports/dugoutpulse/internal/grade"
	"github.com/svsports/dugoutpulse/internal/model"
	"github.com/svsports/dugoutpulse/internal/resolve"
)

// Build assembles the full current-run snapshot in roster order. Total
// replacement semantics: an athlete dropped from the roster simply never
// appears, and an unavailable athlete carries an explicit no-data marker
// rather than stale numbers.
// grades runs parallel to resolutions; entries for unavailable athletes are
// ignored.
func Build(resolutions []resolve.Resolution, grades []grade.Result, now time.Time) model.Snapshot {
	entries := make([]model.SnapshotEntry, 0, len(resolutions))

	for i, res := range resolutions {
		entry := model.SnapshotEntry{
			Athlete:   res.Athlete,
			SocialURL: socialSearchURL(res.Athlete),
		}
		if res.Unavailable() {
			entry.StatsSummary = "No game data"
			entry.GameStatus = "N/A"
			entry.Grade = model.NoDataLabel
			entry.Unavailable = string(res.Reason)
		} else {
			result := grades[i]
			entry.StatsSummary = res.Line.Summary()
			entry.GameContext = res.Line.GameContext
			entry.GameStatus = res.Line.GameStatus
			entry.Grade = result.Grade.Label()
			entry.Criteria = result.Criteria
			entry.Line = res.Line
		}
		entries = append(entries, entry)
	}

	return model.Snapshot{GeneratedAt: now.UTC(), Entries: entries}
}

// Write replaces the snapshot document on disk.
func Write(snap model.Snapshot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// socialSearchURL deep-links a live social search for the athlete, keyed on
// their name plus the last word of the org ("Yankees", not "New York
// Yankees").
func socialSearchURL(athlete model.Athlete) string {
	keyword := ""
	if fields := strings.Fields(athlete.Org); len(fields) > 0 {
		keyword = fields[len(fields)-1]
	}
	query := strings.TrimSpace(fmt.Sprintf("%q %s", athlete.Name, keyword))
	return "https://x.com/search?q=" + url.QueryEscape(query) + "&f=live"
}

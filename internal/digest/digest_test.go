package digest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/svsports/dugoutpulse/internal/model"
)

func TestNewSummarizer_RequiresAPIKey(t *testing.T) {
	if _, err := NewSummarizer(model.DigestConfig{Model: "gpt-4o-mini"}); err == nil {
		t.Error("expected an error without an API key")
	}
	if _, err := NewSummarizer(model.DigestConfig{Model: "gpt-4o-mini", APIKey: "sk-test"}); err != nil {
		t.Errorf("expected a summarizer with a key, got %v", err)
	}
}

func TestRenderInput(t *testing.T) {
	snap := model.Snapshot{
		GeneratedAt: time.Date(2026, 8, 28, 23, 0, 0, 0, time.UTC),
		Entries: []model.SnapshotEntry{
			{
				Athlete:      model.Athlete{Name: "Aaron Judge", Org: "New York Yankees", Level: model.LevelPro},
				StatsSummary: "2-4, HR, 3 RBI",
				Grade:        model.GradeStandout.Label(),
			},
			{
				Athlete:      model.Athlete{Name: "Jake Smith", Org: "LSU", Level: model.LevelNCAA},
				StatsSummary: "No game data",
				Grade:        model.NoDataLabel,
			},
		},
	}

	got := renderInput(snap)
	if !strings.Contains(got, "Date: 2026-08-28") {
		t.Errorf("expected the date header, got %q", got)
	}
	if !strings.Contains(got, "Aaron Judge (New York Yankees, Pro): 2-4, HR, 3 RBI") {
		t.Errorf("expected the stat line rendered, got %q", got)
	}
	if !strings.Contains(got, "Jake Smith") {
		t.Errorf("expected every entry rendered, got %q", got)
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "daily_digest.md")
	if err := Write("## Recap\nBig day.", path); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "## Recap\nBig day." {
		t.Errorf("unexpected content %q", data)
	}
}

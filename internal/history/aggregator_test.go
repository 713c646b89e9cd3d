package history

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/svsports/dugoutpulse/internal/model"
	"github.com/svsports/dugoutpulse/internal/sources"
	"github.com/svsports/dugoutpulse/internal/worker"
)

func gameLogServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/people/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"people":[{"id":99,"fullName":"Aaron Judge"}]}`)
	})
	mux.HandleFunc("/api/v1/people/99/stats", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"stats":[{"splits":[
			{"date":"2026-08-26","stat":{"atBats":4,"hits":2,"homeRuns":1,"rbi":2,"baseOnBalls":1}},
			{"date":"2026-08-27","stat":{"atBats":5,"hits":3,"rbi":1,"sacFlies":1}}
		]}]}`)
	})

	return httptest.NewServer(mux)
}

func testAggregator(t *testing.T, baseURL string) *Aggregator {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Sources.MLBBaseURL = baseURL

	mlb := sources.NewMLB(cfg.Sources, worker.NewLimiter(100, 100), zerolog.Nop())
	return NewAggregator(mlb, cfg.History, zerolog.Nop())
}

func TestAggregator_HittingWindows(t *testing.T) {
	server := gameLogServer(t)
	defer server.Close()

	agg := testAggregator(t, server.URL)
	athletes := []model.Athlete{
		{Name: "Aaron Judge", Org: "New York Yankees", Level: model.LevelPro, Role: model.RoleHitter},
		{Name: "Jake Smith", Org: "LSU", Level: model.LevelNCAA, Role: model.RoleHitter},
	}

	windows, err := agg.Run(context.Background(), athletes)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, window := range []string{"7d", "30d", "season"} {
		entries := windows[window]
		if len(entries) != 1 {
			t.Fatalf("window %s: expected 1 entry (NCAA skipped), got %d", window, len(entries))
		}

		e := entries[0]
		if e.Name != "Aaron Judge" || e.Window != window {
			t.Errorf("window %s: unexpected entry header %+v", window, e)
		}
		if e.AtBats != 9 || e.Hits != 5 || e.HomeRuns != 1 || e.RBI != 3 {
			t.Errorf("window %s: unexpected totals %+v", window, e)
		}
		if e.PlateAppearances != 11 {
			t.Errorf("window %s: expected 11 PA, got %d", window, e.PlateAppearances)
		}
		if e.AVG != 0.556 || e.SLG != 0.889 || e.OBP != 0.545 {
			t.Errorf("window %s: unexpected rate stats %+v", window, e)
		}
		if e.Grade != windowHot {
			t.Errorf("window %s: expected %q, got %q", window, windowHot, e.Grade)
		}
	}
}

func TestAggregator_NoGamesSkipsWindow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/people/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"people":[{"id":99,"fullName":"Aaron Judge"}]}`)
	})
	mux.HandleFunc("/api/v1/people/99/stats", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"stats":[]}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	agg := testAggregator(t, server.URL)
	windows, err := agg.Run(context.Background(), []model.Athlete{
		{Name: "Aaron Judge", Level: model.LevelPro, Role: model.RoleHitter},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for window, entries := range windows {
		if len(entries) != 0 {
			t.Errorf("window %s: expected no entries, got %d", window, len(entries))
		}
	}
}

func TestWrite_WindowDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "window_7d.json")
	entries := []WindowEntry{{Name: "Aaron Judge", Org: "New York Yankees", Window: "7d", Grade: windowHot}}

	if err := Write(entries, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var decoded []WindowEntry
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("window document is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Name != "Aaron Judge" {
		t.Errorf("unexpected round-trip %+v", decoded)
	}
}

// Aggregation windows anchor on the run clock, not wall midnight.
func TestAggregator_WindowBounds(t *testing.T) {
	server := gameLogServer(t)
	defer server.Close()

	agg := testAggregator(t, server.URL)
	fixed := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	agg.now = func() time.Time { return fixed }

	windows, err := agg.Run(context.Background(), []model.Athlete{
		{Name: "Aaron Judge", Level: model.LevelPro, Role: model.RoleHitter},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(windows["season"]) != 1 {
		t.Fatalf("expected a season entry, got %d", len(windows["season"]))
	}
}

package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/svsports/dugoutpulse/internal/model"
)

func sidearmServer(t *testing.T, gameDate string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"game": {"date": %q, "opponent": "Vanderbilt", "status": "Final", "score": "W 7-2"},
			"players": [
				{"name": "Smith, Jake", "batting": {"ab": 4, "h": 2, "hr": 1, "rbi": 3, "r": 1, "bb": 1}},
				{"name": "Davis, Cole", "pitching": {"ip": "6.2", "er": 2, "k": 8, "bb": 1, "h": 5, "decision": "W"}}
			]
		}`, gameDate)
	}))
}

func newSidearmForTest(t *testing.T, feedURL, today string) *SidearmAdapter {
	t.Helper()
	adapter := NewSidearmAdapter(map[string]string{"LSU": feedURL}, testTransport(t), zerolog.Nop())
	adapter.today = func() time.Time {
		parsed, err := time.Parse("2006-01-02", today)
		if err != nil {
			t.Fatalf("bad test date: %v", err)
		}
		return parsed
	}
	return adapter
}

func TestSidearmAdapter_FetchBatter(t *testing.T) {
	server := sidearmServer(t, "2026-08-28")
	defer server.Close()

	adapter := newSidearmForTest(t, server.URL, "2026-08-28")
	line, err := adapter.Fetch(context.Background(), model.Athlete{Name: "Jake Smith", Org: "LSU", Level: model.LevelNCAA})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if line.AtBats != 4 || line.Hits != 2 || line.HomeRuns != 1 || line.RBI != 3 {
		t.Errorf("unexpected line %+v", line)
	}
	if !line.WalksKnown || line.Walks != 1 {
		t.Errorf("expected known walks, got %+v", line)
	}
	if line.GameContext != "vs Vanderbilt | W 7-2" {
		t.Errorf("unexpected game context %q", line.GameContext)
	}
}

func TestSidearmAdapter_FetchPitcher(t *testing.T) {
	server := sidearmServer(t, "2026-08-28")
	defer server.Close()

	adapter := newSidearmForTest(t, server.URL, "2026-08-28")
	line, err := adapter.Fetch(context.Background(), model.Athlete{Name: "Cole Davis", Org: "LSU", Level: model.LevelNCAA})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if !line.PitcherLine || line.Outs != 20 || line.Strikeouts != 8 {
		t.Errorf("unexpected pitching line %+v", line)
	}
	if line.Decision != model.DecisionWin {
		t.Errorf("expected W, got %q", line.Decision)
	}
}

// A feed whose game is from an earlier date means no game today, not stale
// stats.
func TestSidearmAdapter_StaleFeedIsNotFound(t *testing.T) {
	server := sidearmServer(t, "2026-08-27")
	defer server.Close()

	adapter := newSidearmForTest(t, server.URL, "2026-08-28")
	_, err := adapter.Fetch(context.Background(), model.Athlete{Name: "Jake Smith", Org: "LSU", Level: model.LevelNCAA})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for a stale feed, got %v", err)
	}
}

func TestSidearmAdapter_UnconfiguredSchoolIsNotFound(t *testing.T) {
	adapter := NewSidearmAdapter(nil, testTransport(t), zerolog.Nop())
	_, err := adapter.Fetch(context.Background(), model.Athlete{Name: "Jake Smith", Org: "Tulane", Level: model.LevelNCAA})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for an unconfigured school, got %v", err)
	}
}

func TestSidearmAdapter_MalformedFeedIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>not json</html>`)
	}))
	defer server.Close()

	adapter := newSidearmForTest(t, server.URL, "2026-08-28")
	_, err := adapter.Fetch(context.Background(), model.Athlete{Name: "Jake Smith", Org: "LSU", Level: model.LevelNCAA})
	if !IsTransient(err) {
		t.Errorf("expected a transient error on a malformed feed, got %v", err)
	}
}

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
	"github.com/svsports/dugoutpulse/internal/worker"
)

func ncaaSiteServer(t *testing.T, robots string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, robots)
	})
	mux.HandleFunc("/teams/771", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><table>
			<tr><td>08/27/2026</td><td><a href="/contests/554/box_score">Final</a></td></tr>
			<tr><td>08/28/2026</td><td><a href="/contests/555/box_score">Final</a></td></tr>
		</table></body></html>`)
	})
	mux.HandleFunc("/contests/555/box_score", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, boxScoreHTML)
	})

	return httptest.NewServer(mux)
}

func newNCAAOrgForTest(t *testing.T, server *httptest.Server) *NCAAOrgAdapter {
	t.Helper()
	src := testTransport(t)
	adapter := NewNCAAOrgAdapter(
		map[string]string{"LSU": server.URL + "/teams/771"},
		src,
		worker.NewLimiter(100, 100),
		zerolog.Nop(),
	)
	adapter.today = func() time.Time { return time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC) }
	return adapter
}

func TestNCAAOrgAdapter_Fetch(t *testing.T) {
	server := ncaaSiteServer(t, "User-agent: *\nAllow: /\n")
	defer server.Close()

	adapter := newNCAAOrgForTest(t, server)
	line, err := adapter.Fetch(context.Background(), model.Athlete{Name: "Jake Smith", Org: "LSU", Level: model.LevelNCAA})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	// The schedule has two games; only today's box score may be followed.
	if line.AtBats != 4 || line.Hits != 3 || line.HomeRuns != 1 {
		t.Errorf("unexpected line %+v", line)
	}
	if line.GameStatus != "Final" {
		t.Errorf("expected Final, got %q", line.GameStatus)
	}
}

func TestNCAAOrgAdapter_RobotsDisallow(t *testing.T) {
	server := ncaaSiteServer(t, "User-agent: *\nDisallow: /teams/\n")
	defer server.Close()

	adapter := newNCAAOrgForTest(t, server)
	_, err := adapter.Fetch(context.Background(), model.Athlete{Name: "Jake Smith", Org: "LSU", Level: model.LevelNCAA})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound when robots.txt disallows, got %v", err)
	}
}

func TestNCAAOrgAdapter_NoGameToday(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/teams/771", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><table>
			<tr><td>08/20/2026</td><td><a href="/contests/550/box_score">Final</a></td></tr>
		</table></body></html>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	adapter := newNCAAOrgForTest(t, server)
	_, err := adapter.Fetch(context.Background(), model.Athlete{Name: "Jake Smith", Org: "LSU", Level: model.LevelNCAA})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound with no game today, got %v", err)
	}
}

func TestNCAAOrgAdapter_UnconfiguredSchool(t *testing.T) {
	adapter := NewNCAAOrgAdapter(nil, testTransport(t), worker.NewLimiter(100, 100), zerolog.Nop())
	_, err := adapter.Fetch(context.Background(), model.Athlete{Name: "Jake Smith", Org: "Tulane", Level: model.LevelNCAA})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for an unconfigured school, got %v", err)
	}
}

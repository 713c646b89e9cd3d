package resolve

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/svsports/dugoutpulse/internal/model"
	"github.com/svsports/dugoutpulse/internal/sources"
)

// fakeAdapter scripts one adapter's behavior and records whether it ran.
type fakeAdapter struct {
	name   string
	line   *model.StatLine
	err    error
	called bool
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Fetch(ctx context.Context, _ model.Athlete) (*model.StatLine, error) {
	f.called = true
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.line, f.err
}

func newTestResolver(pro, ncaa []sources.Adapter) *Resolver {
	registry := sources.NewStaticRegistry(pro, ncaa, nil)
	return NewResolver(registry, time.Second, zerolog.Nop())
}

func proAthlete() model.Athlete {
	return model.Athlete{Name: "Aaron Judge", Org: "New York Yankees", Level: model.LevelPro, Role: model.RoleHitter}
}

func ncaaAthlete() model.Athlete {
	return model.Athlete{Name: "Jake Smith", Org: "LSU", Level: model.LevelNCAA, Role: model.RoleHitter}
}

func TestResolve_StopsAtFirstFound(t *testing.T) {
	first := &fakeAdapter{name: "sidearm", line: &model.StatLine{GameDate: "2026-08-28", Hits: 2, AtBats: 4}}
	second := &fakeAdapter{name: "statbroadcast", line: &model.StatLine{GameDate: "2026-08-28"}}

	r := newTestResolver(nil, []sources.Adapter{first, second})
	res := r.Resolve(context.Background(), ncaaAthlete())

	if res.Unavailable() {
		t.Fatalf("expected a line, got unavailable (%s)", res.Reason)
	}
	if res.Line.Hits != 2 {
		t.Errorf("expected the first adapter's line, got %+v", res.Line)
	}
	if second.called {
		t.Error("chain must stop at the first found line")
	}
	if len(res.Attempts) != 1 || res.Attempts[0].Outcome != model.OutcomeFound {
		t.Errorf("unexpected attempts %+v", res.Attempts)
	}
}

func TestResolve_ProNotFoundIsTerminal(t *testing.T) {
	mlb := &fakeAdapter{name: "mlb", err: sources.ErrNotFound}
	r := newTestResolver([]sources.Adapter{mlb}, nil)

	res := r.Resolve(context.Background(), proAthlete())
	if !res.Unavailable() {
		t.Fatal("expected unavailable resolution")
	}
	if res.Reason != ReasonNoGame {
		t.Errorf("expected reason %q, got %q", ReasonNoGame, res.Reason)
	}
}

func TestResolve_NCAAFallsThroughNotFoundAndTransient(t *testing.T) {
	first := &fakeAdapter{name: "sidearm", err: sources.ErrNotFound}
	second := &fakeAdapter{name: "statbroadcast", err: sources.Transient(errors.New("status 503"))}
	third := &fakeAdapter{name: "ncaa.org", line: &model.StatLine{GameDate: "2026-08-28", Hits: 1, AtBats: 3}}

	r := newTestResolver(nil, []sources.Adapter{first, second, third})
	res := r.Resolve(context.Background(), ncaaAthlete())

	if res.Unavailable() {
		t.Fatalf("expected the last adapter to resolve, got unavailable (%s)", res.Reason)
	}
	if len(res.Attempts) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(res.Attempts))
	}
	wantOutcomes := []model.SourceOutcome{model.OutcomeNotFound, model.OutcomeTransientError, model.OutcomeFound}
	for i, want := range wantOutcomes {
		if res.Attempts[i].Outcome != want {
			t.Errorf("attempt %d: expected %s, got %s", i, want, res.Attempts[i].Outcome)
		}
	}
}

func TestResolve_ExhaustedChain(t *testing.T) {
	first := &fakeAdapter{name: "sidearm", err: sources.ErrNotFound}
	second := &fakeAdapter{name: "statbroadcast", err: sources.Transient(errors.New("timeout"))}

	r := newTestResolver(nil, []sources.Adapter{first, second})
	res := r.Resolve(context.Background(), ncaaAthlete())

	if !res.Unavailable() {
		t.Fatal("expected unavailable resolution")
	}
	if res.Reason != ReasonExhausted {
		t.Errorf("expected reason %q, got %q", ReasonExhausted, res.Reason)
	}
}

func TestResolve_RunDeadline(t *testing.T) {
	adapter := &fakeAdapter{name: "sidearm", line: &model.StatLine{}}
	r := newTestResolver(nil, []sources.Adapter{adapter})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := r.Resolve(ctx, ncaaAthlete())
	if !res.Unavailable() {
		t.Fatal("expected unavailable resolution under an expired context")
	}
	if res.Reason != ReasonRunDeadline {
		t.Errorf("expected reason %q, got %q", ReasonRunDeadline, res.Reason)
	}
	if adapter.called {
		t.Error("no adapter should run once the deadline has passed")
	}
}

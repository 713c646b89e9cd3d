// Package sources contains one adapter per external stat provider. Adapters
// normalize wildly different upstream schemas into the canonical StatLine;
// the resolver only ever sees the uniform Fetch contract.
package sources

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/svsports/dugoutpulse/internal/model"
	"github.com/svsports/dugoutpulse/internal/worker"
)

// ErrNotFound means the source answered and the athlete has no line today.
// For the authoritative Pro provider this is terminal; for NCAA sources the
// chain falls through to the next adapter.
var ErrNotFound = errors.New("no game found")

// TransientError marks a retryable source failure: timeout, network error,
// or a malformed payload. For fallback purposes it is equivalent to
// NotFound, but it is logged distinctly so "school had no game" and
// "feed broke" stay distinguishable.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return "transient: " + e.Err.Error() }

func (e *TransientError) Unwrap() error { return e.Err }

// Transient wraps err as a TransientError.
func Transient(err error) error {
	return &TransientError{Err: err}
}

// IsTransient reports whether err is a transient source failure.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// Adapter fetches and normalizes one provider's view of an athlete's
// current game. Implementations must not panic on schema drift; unexpected
// or missing fields degrade to absent-field semantics.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, athlete model.Athlete) (*model.StatLine, error)
}

// Registry holds the ordered fallback chain per level, plus per-school
// overrides. Adding a source is inserting into an ordered list, not
// subclassing anything.
type Registry struct {
	pro     []Adapter
	ncaa    []Adapter
	byName  map[string]Adapter
	schools map[string][]Adapter
}

// NewRegistry wires the built-in adapters from config.
func NewRegistry(cfg model.SourcesConfig, limiter *worker.Limiter, log zerolog.Logger) (*Registry, error) {
	src := newHTTPSource(cfg.AdapterTimeout, cfg.UserAgent, limiter)

	mlb := NewMLBAdapter(cfg.MLBBaseURL, src, log)
	sidearm := NewSidearmAdapter(cfg.SidearmFeeds, src, log)
	statbroadcast := NewStatBroadcastAdapter(cfg.StatBroadcastFeeds, src, log)
	ncaaOrg := NewNCAAOrgAdapter(cfg.NCAATeamPages, src, limiter, log)

	r := &Registry{
		pro:  []Adapter{mlb},
		ncaa: []Adapter{sidearm, statbroadcast, ncaaOrg},
		byName: map[string]Adapter{
			mlb.Name():           mlb,
			sidearm.Name():       sidearm,
			statbroadcast.Name(): statbroadcast,
			ncaaOrg.Name():       ncaaOrg,
		},
		schools: make(map[string][]Adapter),
	}

	for school, names := range cfg.SchoolChains {
		chain := make([]Adapter, 0, len(names))
		for _, name := range names {
			adapter, ok := r.byName[name]
			if !ok {
				return nil, fmt.Errorf("school chain %q: unknown adapter %q", school, name)
			}
			chain = append(chain, adapter)
		}
		r.schools[school] = chain
	}

	return r, nil
}

// NewStaticRegistry builds a registry from pre-assembled chains, bypassing
// config wiring. Callers composing their own adapters use this directly.
func NewStaticRegistry(pro, ncaa []Adapter, schools map[string][]Adapter) *Registry {
	if schools == nil {
		schools = make(map[string][]Adapter)
	}
	byName := make(map[string]Adapter)
	for _, a := range pro {
		byName[a.Name()] = a
	}
	for _, a := range ncaa {
		byName[a.Name()] = a
	}
	return &Registry{pro: pro, ncaa: ncaa, byName: byName, schools: schools}
}

// Chain returns the ordered adapter list for the athlete. The order is
// narrowest/highest-quality first, broadest fallback last.
func (r *Registry) Chain(athlete model.Athlete) []Adapter {
	if athlete.Level == model.LevelPro {
		return r.pro
	}
	if chain, ok := r.schools[athlete.Org]; ok {
		return chain
	}
	return r.ncaa
}

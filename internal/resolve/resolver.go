// Package resolve orchestrates the per-athlete source fallback chain.
package resolve

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/svsports/dugoutpulse/internal/model"
	"github.com/svsports/dugoutpulse/internal/sources"
)

// Reason explains why a resolution carries no stat line.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonNoGame      Reason = "no_game_today"
	ReasonExhausted   Reason = "source_exhausted"
	ReasonRunDeadline Reason = "run_deadline"
)

// Resolution is the outcome of resolving one athlete: either a canonical
// line or an explicit unavailable marker, never an ambiguous zeroed line.
type Resolution struct {
	Athlete  model.Athlete
	Line     *model.StatLine
	Attempts []model.SourceAttempt
	Reason   Reason
}

// Unavailable reports whether the resolution carries no data.
func (r Resolution) Unavailable() bool { return r.Line == nil }

// Resolver walks the level-specific adapter chain for each athlete.
// Resolutions for different athletes share no mutable state, so they are
// safe to run in parallel.
type Resolver struct {
	registry *sources.Registry
	timeout  time.Duration // per adapter call
	log      zerolog.Logger
}

func NewResolver(registry *sources.Registry, timeout time.Duration, log zerolog.Logger) *Resolver {
	return &Resolver{
		registry: registry,
		timeout:  timeout,
		log:      log.With().Str("component", "resolver").Logger(),
	}
}

// Resolve tries the athlete's adapters strictly in order and stops at the
// first found line. NotFound and TransientError both advance the chain; for
// the authoritative Pro provider NotFound is terminal.
func (r *Resolver) Resolve(ctx context.Context, athlete model.Athlete) Resolution {
	res := Resolution{Athlete: athlete}
	chain := r.registry.Chain(athlete)
	authoritative := athlete.Level == model.LevelPro

	for _, adapter := range chain {
		if ctx.Err() != nil {
			res.Attempts = append(res.Attempts, model.SourceAttempt{
				Adapter: adapter.Name(),
				Outcome: model.OutcomeTransientError,
				Detail:  "run deadline exceeded",
			})
			res.Reason = ReasonRunDeadline
			return res
		}

		line, err := r.fetchOne(ctx, adapter, athlete)
		switch {
		case err == nil:
			res.Attempts = append(res.Attempts, model.SourceAttempt{
				Adapter: adapter.Name(),
				Outcome: model.OutcomeFound,
			})
			res.Line = line
			return res

		case errors.Is(err, sources.ErrNotFound):
			res.Attempts = append(res.Attempts, model.SourceAttempt{
				Adapter: adapter.Name(),
				Outcome: model.OutcomeNotFound,
			})
			r.log.Debug().Str("athlete", athlete.Name).Str("adapter", adapter.Name()).
				Msg("no line at source")
			if authoritative {
				res.Reason = ReasonNoGame
				return res
			}

		default:
			res.Attempts = append(res.Attempts, model.SourceAttempt{
				Adapter: adapter.Name(),
				Outcome: model.OutcomeTransientError,
				Detail:  err.Error(),
			})
			// Logged at warn, unlike NotFound: "feed broke" is an
			// operability signal, "no game" is not.
			r.log.Warn().Str("athlete", athlete.Name).Str("adapter", adapter.Name()).
				Err(err).Msg("source failed, falling through")
		}
	}

	if ctx.Err() != nil {
		res.Reason = ReasonRunDeadline
	} else {
		res.Reason = ReasonExhausted
	}
	return res
}

// fetchOne runs a single adapter call under its own timeout. A timeout is a
// transient failure of that adapter only, never of the athlete.
func (r *Resolver) fetchOne(ctx context.Context, adapter sources.Adapter, athlete model.Athlete) (*model.StatLine, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	line, err := adapter.Fetch(callCtx, athlete)
	if err != nil && callCtx.Err() != nil && !errors.Is(err, sources.ErrNotFound) {
		return nil, sources.Transient(callCtx.Err())
	}
	return line, err
}

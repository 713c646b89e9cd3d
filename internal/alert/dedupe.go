// Package alert turns qualifying game facts into notification events,
// exactly once each across repeated polling of the same game state.
package alert

import (
	"fmt"
	"time"

	"github.com/svsports/dugoutpulse/internal/ledger"
	"github.com/svsports/dugoutpulse/internal/model"
)

// Record is one graded athlete entering alert evaluation.
type Record struct {
	Athlete  model.Athlete
	Line     *model.StatLine
	Criteria []model.Criterion
}

// trigger defines one alert condition. Triggers key off individual matched
// criteria, never the overall grade.
type trigger struct {
	criterion model.Criterion
	maxTier   int // 0 means all tiers
	counter   func(*model.StatLine) int
	// retrigger: a strict increase of the counter past the stored value
	// re-announces (2nd HR). Otherwise the trigger fires once per game on
	// first qualification.
	retrigger bool
}

func triggers(cfg model.GradingConfig) []trigger {
	return []trigger{
		{
			criterion: model.CriterionHomeRun,
			counter:   func(l *model.StatLine) int { return l.HomeRuns },
			retrigger: true,
		},
		{
			criterion: model.CriterionAppearance,
			counter:   func(l *model.StatLine) int { return 1 },
		},
		{
			criterion: model.CriterionFiveK,
			counter:   func(l *model.StatLine) int { return l.Strikeouts },
		},
		{
			criterion: model.CriterionOnBase,
			maxTier:   cfg.OnBaseAlertMaxTier,
			counter:   func(l *model.StatLine) int { return l.TimesOnBase() },
			retrigger: true,
		},
	}
}

// Deduplicator compares graded facts against the persisted ledger.
type Deduplicator struct {
	triggers []trigger
}

func NewDeduplicator(cfg model.GradingConfig) *Deduplicator {
	return &Deduplicator{triggers: triggers(cfg)}
}

// Evaluate emits an event for every (athlete, criterion) pair not yet in
// the ledger, or whose qualifying count strictly increased for a
// re-triggerable criterion, and records it. Running Evaluate twice over
// the same input yields no events the second time.
func (d *Deduplicator) Evaluate(records []Record, led *ledger.Ledger, now time.Time) []model.AlertEvent {
	var events []model.AlertEvent

	for _, rec := range records {
		if rec.Line == nil {
			continue
		}
		for _, trg := range d.triggers {
			if !matched(rec.Criteria, trg.criterion) {
				continue
			}
			if trg.maxTier > 0 && rec.Athlete.Tier > trg.maxTier {
				continue
			}

			count := trg.counter(rec.Line)
			key := ledger.Key(rec.Athlete.Name, trg.criterion, rec.Line.GameDate)
			last, seen := led.LastCount(key)

			if seen && (!trg.retrigger || count <= last) {
				continue
			}

			led.Observe(key, count, rec.Line.GameDate, now)
			events = append(events, model.AlertEvent{
				Athlete:   rec.Athlete.Name,
				Tier:      rec.Athlete.Tier,
				Criterion: trg.criterion,
				Count:     count,
				DedupKey:  key,
				Message:   message(rec, trg.criterion, count),
				At:        now,
			})
		}
	}
	return events
}

func matched(criteria []model.Criterion, want model.Criterion) bool {
	for _, c := range criteria {
		if c == want {
			return true
		}
	}
	return false
}

// message renders the human-readable notification text.
func message(rec Record, criterion model.Criterion, count int) string {
	name := rec.Athlete.Name
	tier := rec.Athlete.TierLabel()
	tail := fmt.Sprintf("_%s_ — %s", rec.Athlete.Org, rec.Line.GameContext)

	switch criterion {
	case model.CriterionHomeRun:
		what := "a HR"
		if count > 1 {
			what = fmt.Sprintf("HR #%d", count)
		}
		return fmt.Sprintf("⚾ *%s* (%s) just hit %s!\n%s", name, tier, what, tail)
	case model.CriterionAppearance:
		return fmt.Sprintf("\U0001f525 *%s* (%s) is pitching!\n%s", name, tier, tail)
	case model.CriterionFiveK:
		return fmt.Sprintf("\U0001f3af *%s* (%s) has %d K's!\n%s", name, tier, count, tail)
	case model.CriterionOnBase:
		return fmt.Sprintf("\U0001f4aa *%s* (%s) has reached base %d times!\n%s — %s",
			name, tier, count, rec.Line.Summary(), tail)
	default:
		return fmt.Sprintf("*%s* (%s): %s\n%s", name, tier, criterion, tail)
	}
}

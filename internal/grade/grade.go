// Package grade maps a canonical stat line to a performance grade plus the
// qualifying facts behind it. Pure and deterministic: no I/O, no clock.
package grade

import (
	"github.com/svsports/dugoutpulse/internal/model"
)

// Result is the graded outcome: exactly one grade, plus every matched
// criterion. Criteria outrank the grade for alerting purposes: a Standout
// line keeps its SoftFlag facts, and alert-only facts (pitcher appearance,
// times on base) ride along without influencing the grade.
type Result struct {
	Grade    model.PerformanceGrade
	Criteria []model.Criterion
}

// Matched reports whether the result contains the criterion.
func (r Result) Matched(c model.Criterion) bool {
	for _, got := range r.Criteria {
		if got == c {
			return true
		}
	}
	return false
}

// Grade grades one line for the given role. Two-way athletes are graded on
// both paths; the higher-precedence grade wins and criteria are merged.
// A nil line must not reach here; unavailable records are never graded.
func Grade(line *model.StatLine, role model.Role, cfg model.GradingConfig) Result {
	var criteria []model.Criterion

	if (role.Hits() && !line.PitcherLine) || role == model.RoleTwoWay {
		criteria = append(criteria, hitterCriteria(line, cfg)...)
	}
	if role.Pitches() || line.PitcherLine {
		criteria = append(criteria, pitcherCriteria(line, cfg)...)
	}

	// Two-way lines can match the same criterion on both paths (debut).
	seen := make(map[model.Criterion]bool, len(criteria))
	deduped := criteria[:0]
	for _, c := range criteria {
		if !seen[c] {
			seen[c] = true
			deduped = append(deduped, c)
		}
	}

	return Result{Grade: gradeOf(deduped), Criteria: deduped}
}

// precedence maps each grading criterion to the tier it belongs to.
// Alert-only criteria are absent: they never move the grade.
var precedence = map[model.Criterion]model.PerformanceGrade{
	model.CriterionDebut:        model.GradeMilestone,
	model.CriterionFirstHomeRun: model.GradeMilestone,
	model.CriterionCycle:        model.GradeMilestone,
	model.CriterionNoHitter:     model.GradeMilestone,
	model.CriterionFirstWin:     model.GradeMilestone,
	model.CriterionFirstSave:    model.GradeMilestone,

	model.CriterionHomeRun:      model.GradeStandout,
	model.CriterionThreeHits:    model.GradeStandout,
	model.CriterionThreeRBI:     model.GradeStandout,
	model.CriterionQualityStart: model.GradeStandout,
	model.CriterionFiveK:        model.GradeStandout,
	model.CriterionSave:         model.GradeStandout,

	model.CriterionTwoHits:      model.GradeGood,
	model.CriterionRBI:          model.GradeGood,
	model.CriterionRunScored:    model.GradeGood,
	model.CriterionCleanInnings: model.GradeGood,

	model.CriterionHit: model.GradeRoutine,

	model.CriterionHitlessFour: model.GradeSoftFlag,
	model.CriterionRoughOuting: model.GradeSoftFlag,
}

// gradeOf picks the highest-precedence tier among the matched criteria.
// SoftFlag counts only when nothing better matched; an otherwise-empty line
// is Routine.
func gradeOf(criteria []model.Criterion) model.PerformanceGrade {
	best := model.GradeSoftFlag + 1
	for _, c := range criteria {
		tier, graded := precedence[c]
		if !graded {
			continue
		}
		if tier < best {
			best = tier
		}
	}
	if best > model.GradeSoftFlag {
		return model.GradeRoutine
	}
	if best == model.GradeSoftFlag {
		return model.GradeSoftFlag
	}
	return best
}

func hitterCriteria(line *model.StatLine, cfg model.GradingConfig) []model.Criterion {
	var out []model.Criterion

	if line.Debut {
		out = append(out, model.CriterionDebut)
	}
	if line.FirstHR {
		out = append(out, model.CriterionFirstHomeRun)
	}
	if line.Cycle {
		out = append(out, model.CriterionCycle)
	}
	if line.HomeRuns >= 1 {
		out = append(out, model.CriterionHomeRun)
	}
	if line.Hits >= cfg.StandoutHits {
		out = append(out, model.CriterionThreeHits)
	}
	if line.RBI >= cfg.StandoutRBI {
		out = append(out, model.CriterionThreeRBI)
	}
	if line.Hits >= cfg.GoodHits {
		out = append(out, model.CriterionTwoHits)
	}
	if line.RBI >= 1 {
		out = append(out, model.CriterionRBI)
	}
	if line.Runs >= 1 {
		out = append(out, model.CriterionRunScored)
	}
	if line.Hits >= 1 {
		out = append(out, model.CriterionHit)
	}
	if line.AtBats >= cfg.SoftFlagAtBats && line.Hits == 0 {
		out = append(out, model.CriterionHitlessFour)
	}
	if line.TimesOnBase() >= cfg.OnBaseAlertCount {
		out = append(out, model.CriterionOnBase)
	}
	return out
}

func pitcherCriteria(line *model.StatLine, cfg model.GradingConfig) []model.Criterion {
	var out []model.Criterion

	if line.Debut {
		out = append(out, model.CriterionDebut)
	}
	if line.NoHitter {
		out = append(out, model.CriterionNoHitter)
	}
	if line.FirstWin {
		out = append(out, model.CriterionFirstWin)
	}
	if line.FirstSave {
		out = append(out, model.CriterionFirstSave)
	}
	if line.Outs >= cfg.QualityStartOuts && line.EarnedRuns <= cfg.QualityStartMaxER {
		out = append(out, model.CriterionQualityStart)
	}
	if line.Strikeouts >= cfg.StandoutStrikeouts {
		out = append(out, model.CriterionFiveK)
	}
	if line.Decision == model.DecisionSave {
		out = append(out, model.CriterionSave)
	}
	if line.Outs >= cfg.CleanInningsOuts && line.EarnedRuns == 0 {
		out = append(out, model.CriterionCleanInnings)
	}
	if line.EarnedRuns >= cfg.SoftFlagEarnedRuns && line.Outs < cfg.SoftFlagMaxOuts {
		out = append(out, model.CriterionRoughOuting)
	}
	if line.Outs > 0 {
		out = append(out, model.CriterionAppearance)
	}
	return out
}

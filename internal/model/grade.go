package model

// PerformanceGrade is the daily grade tier. Lower values take precedence:
// a line matching both a Standout and a SoftFlag criterion grades Standout.
type PerformanceGrade int

const (
	GradeMilestone PerformanceGrade = iota
	GradeStandout
	GradeGood
	GradeRoutine
	GradeSoftFlag
)

func (g PerformanceGrade) String() string {
	switch g {
	case GradeMilestone:
		return "Milestone"
	case GradeStandout:
		return "Standout"
	case GradeGood:
		return "Good"
	case GradeRoutine:
		return "Routine"
	case GradeSoftFlag:
		return "Soft Flag"
	default:
		return "Unknown"
	}
}

// Label is the dashboard rendering of the grade.
func (g PerformanceGrade) Label() string {
	switch g {
	case GradeMilestone:
		return "\U0001f48e Milestone"
	case GradeStandout:
		return "\U0001f525 Standout"
	case GradeGood:
		return "✅ Good"
	case GradeRoutine:
		return "\U0001f610 Routine"
	case GradeSoftFlag:
		return "\U0001f6a9 Soft Flag"
	default:
		return "— Unknown"
	}
}

// NoDataLabel marks roster entries whose resolution came back empty.
const NoDataLabel = "— No Data"

// Criterion identifies one qualifying game fact. Alerts key off individual
// criteria, not the overall grade.
type Criterion string

const (
	// Hitter criteria, by grade tier.
	CriterionDebut        Criterion = "debut"
	CriterionFirstHomeRun Criterion = "first_home_run"
	CriterionCycle        Criterion = "cycle"
	CriterionHomeRun      Criterion = "home_run"
	CriterionThreeHits    Criterion = "three_plus_hits"
	CriterionThreeRBI     Criterion = "three_plus_rbi"
	CriterionTwoHits      Criterion = "two_plus_hits"
	CriterionRBI          Criterion = "rbi"
	CriterionRunScored    Criterion = "run_scored"
	CriterionHit          Criterion = "hit"
	CriterionHitlessFour  Criterion = "hitless_four"

	// Pitcher criteria, by grade tier.
	CriterionNoHitter     Criterion = "no_hitter"
	CriterionFirstWin     Criterion = "first_win"
	CriterionFirstSave    Criterion = "first_save"
	CriterionQualityStart Criterion = "quality_start"
	CriterionFiveK        Criterion = "five_plus_k"
	CriterionSave         Criterion = "save"
	CriterionCleanInnings Criterion = "clean_innings"
	CriterionRoughOuting  Criterion = "short_rough_outing"

	// Alert-only criteria; they never influence the grade.
	CriterionAppearance Criterion = "pitcher_appearance"
	CriterionOnBase     Criterion = "three_times_on_base"
)

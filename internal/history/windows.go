package history

// Window grade labels. These are rate-stat grades over a span of games,
// deliberately distinct from the single-game performance grades.
const (
	windowHot          = "\U0001f525 Hot"
	windowSolid        = "✅ Solid"
	windowQuiet        = "\U0001f610 Quiet"
	windowCold         = "\U0001f976 Cold"
	windowInsufficient = "— Insufficient"
)

// Hitter windows grade on OPS, pitcher windows on ERA.
const (
	hitterHotOPS    = 1.000
	hitterSolidOPS  = 0.750
	hitterQuietOPS  = 0.550
	pitcherHotERA   = 2.00
	pitcherSolidERA = 3.50
	pitcherQuietERA = 5.00
)

func gradeHitterWindow(ops float64, pa, minPA int) string {
	if pa < minPA {
		return windowInsufficient
	}
	switch {
	case ops >= hitterHotOPS:
		return windowHot
	case ops >= hitterSolidOPS:
		return windowSolid
	case ops >= hitterQuietOPS:
		return windowQuiet
	default:
		return windowCold
	}
}

func gradePitcherWindow(era float64, outs, minOuts int) string {
	if outs < minOuts {
		return windowInsufficient
	}
	switch {
	case era <= pitcherHotERA:
		return windowHot
	case era <= pitcherSolidERA:
		return windowSolid
	case era <= pitcherQuietERA:
		return windowQuiet
	default:
		return windowCold
	}
}

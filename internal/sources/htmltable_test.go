package sources

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/svsports/dugoutpulse/internal/model"
)

const boxScoreHTML = `
<html><body>
<h2>Box Score</h2>
<table>
	<tr><th>Player</th><th>AB</th><th>R</th><th>H</th><th>2B</th><th>3B</th><th>HR</th><th>RBI</th><th>BB</th><th>SB</th></tr>
	<tr><td>Smith, Jake</td><td>4</td><td>1</td><td>3</td><td>1</td><td>0</td><td>1</td><td>4</td><td>0</td><td>1</td></tr>
	<tr><td>Jones, Max</td><td>3</td><td>0</td><td>0</td><td>0</td><td>0</td><td>0</td><td>0</td><td>1</td><td>0</td></tr>
</table>
<table>
	<tr><th>Player</th><th>IP</th><th>H</th><th>ER</th><th>BB</th><th>SO</th><th>Dec</th></tr>
	<tr><td>Davis, Cole</td><td>7.0</td><td>3</td><td>1</td><td>2</td><td>9</td><td>W</td></tr>
</table>
</body></html>`

func parseFixture(t *testing.T) []statTable {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(boxScoreHTML))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return findStatTables(doc)
}

func TestFindStatTables(t *testing.T) {
	tables := parseFixture(t)
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	if !tables[0].hasColumn("AB") || tables[0].hasColumn("IP") {
		t.Errorf("first table should be batting, header %v", tables[0].header)
	}
	if !tables[1].hasColumn("IP") {
		t.Errorf("second table should be pitching, header %v", tables[1].header)
	}
	if len(tables[0].rows) != 2 {
		t.Errorf("expected 2 batting rows, got %d", len(tables[0].rows))
	}
}

func TestExtractFromTables_Batting(t *testing.T) {
	line := extractFromTables(parseFixture(t), "Jake Smith", "2026-08-28")
	if line == nil {
		t.Fatal("expected a line for Jake Smith")
	}

	if line.AtBats != 4 || line.Hits != 3 || line.HomeRuns != 1 || line.RBI != 4 {
		t.Errorf("unexpected batting line %+v", line)
	}
	if !line.WalksKnown {
		t.Error("a BB column means walks are known")
	}
	if line.StolenBases != 1 {
		t.Errorf("expected 1 SB, got %d", line.StolenBases)
	}
	if line.PitcherLine {
		t.Error("batting-only row must not be a pitcher line")
	}
	if line.GameDate != "2026-08-28" {
		t.Errorf("unexpected game date %q", line.GameDate)
	}
}

func TestExtractFromTables_PitchingWithSOColumn(t *testing.T) {
	line := extractFromTables(parseFixture(t), "Cole Davis", "2026-08-28")
	if line == nil {
		t.Fatal("expected a line for Cole Davis")
	}

	if !line.PitcherLine {
		t.Fatal("expected a pitcher line")
	}
	if line.Outs != 21 || line.EarnedRuns != 1 || line.HitsAllowed != 3 {
		t.Errorf("unexpected pitching line %+v", line)
	}
	// This table labels strikeouts SO, not K.
	if line.Strikeouts != 9 {
		t.Errorf("expected 9 strikeouts via the SO column, got %d", line.Strikeouts)
	}
	if line.Decision != model.DecisionWin {
		t.Errorf("expected a win decision, got %q", line.Decision)
	}
}

func TestExtractFromTables_AbsentPlayer(t *testing.T) {
	if line := extractFromTables(parseFixture(t), "Nobody Here", "2026-08-28"); line != nil {
		t.Errorf("expected nil for an absent player, got %+v", line)
	}
}

func TestStatTable_IntAtDegradesToZero(t *testing.T) {
	tbl := statTable{
		header: []string{"Player", "AB", "H"},
		rows:   [][]string{{"Smith, Jake", "n/a", "2"}},
	}
	row := tbl.playerRow("Jake Smith")
	if row == nil {
		t.Fatal("expected to find the row")
	}
	if got := tbl.intAt(row, "AB"); got != 0 {
		t.Errorf("unparseable cell should read 0, got %d", got)
	}
	if got := tbl.intAt(row, "H"); got != 2 {
		t.Errorf("expected 2 hits, got %d", got)
	}
	if got := tbl.intAt(row, "HR"); got != 0 {
		t.Errorf("missing column should read 0, got %d", got)
	}
}

func TestSameName(t *testing.T) {
	tests := []struct {
		got, want string
		match     bool
	}{
		{"Jake Smith", "Jake Smith", true},
		{"jake smith", "Jake Smith", true},
		{"Smith, Jake", "Jake Smith", true},
		{" Smith,  Jake ", "Jake Smith", true},
		{"Smith, Jacob", "Jake Smith", false},
		{"Jake Smithers", "Jake Smith", false},
	}
	for _, tt := range tests {
		if got := sameName(tt.got, tt.want); got != tt.match {
			t.Errorf("sameName(%q, %q) = %v, want %v", tt.got, tt.want, got, tt.match)
		}
	}
}

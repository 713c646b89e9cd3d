package sources

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// statTable is a parsed HTML stat table: a header row of column labels and
// one row of cells per player.
type statTable struct {
	header []string
	rows   [][]string
}

// findStatTables walks the document and parses every <table> that has a
// recognizable header row.
func findStatTables(doc *html.Node) []statTable {
	var tables []statTable
	for _, tbl := range findAll(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "table"
	}) {
		parsed := parseTable(tbl)
		if len(parsed.header) > 0 {
			tables = append(tables, parsed)
		}
	}
	return tables
}

func parseTable(tbl *html.Node) statTable {
	var t statTable
	for _, tr := range findAll(tbl, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "tr"
	}) {
		var cells []string
		isHeader := false
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "th":
				isHeader = true
				cells = append(cells, nodeText(c))
			case "td":
				cells = append(cells, nodeText(c))
			}
		}
		if len(cells) == 0 {
			continue
		}
		if isHeader && len(t.header) == 0 {
			t.header = cells
			continue
		}
		t.rows = append(t.rows, cells)
	}
	return t
}

// hasColumn reports whether the table header contains the label.
func (t statTable) hasColumn(label string) bool {
	return t.columnIndex(label) >= 0
}

func (t statTable) columnIndex(label string) int {
	for i, h := range t.header {
		if strings.EqualFold(strings.TrimSpace(h), label) {
			return i
		}
	}
	return -1
}

// playerRow finds the row whose first cell matches the player name.
func (t statTable) playerRow(name string) []string {
	for _, row := range t.rows {
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSuffix(strings.TrimSpace(row[0]), ".") // "Smith, J."
		if sameName(cell, name) {
			return row
		}
	}
	return nil
}

// intAt reads the column as an int, degrading to zero on anything
// unparseable. Scraped tables drift; a bad cell is an absent stat.
func (t statTable) intAt(row []string, label string) int {
	idx := t.columnIndex(label)
	if idx < 0 || idx >= len(row) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(row[idx]))
	if err != nil {
		return 0
	}
	return n
}

// stringAt reads the column as trimmed text, empty when absent.
func (t statTable) stringAt(row []string, label string) string {
	idx := t.columnIndex(label)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func findAll(n *html.Node, predicate func(*html.Node) bool) []*html.Node {
	var results []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if predicate(node) {
			results = append(results, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return results
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if text := nodeText(c); text != "" {
			if buf.Len() > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString(text)
		}
	}
	return buf.String()
}

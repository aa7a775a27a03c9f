package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/regdocs/sheetchunk/internal/record"
)

// Tabular sources share one column vocabulary, inherited from the
// manual-export layout: a dotted NodeId carries the hierarchy, Title
// is usually the bare section number and Subtitle the descriptive name.
const (
	colNodeID   = "nodeid"
	colTitle    = "title"
	colSubtitle = "subtitle"
	colContent  = "content"
	colURL      = "url"
)

var dottedNodeID = regexp.MustCompile(`^\d+(\.\d+)*$`)

type columns struct {
	nodeID   int
	title    int
	subtitle int
	content  int
	url      int
}

// resolveColumns matches header cells case-insensitively. NodeId is the
// only required column.
func resolveColumns(header []string) (columns, error) {
	cols := columns{nodeID: -1, title: -1, subtitle: -1, content: -1, url: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case colNodeID:
			cols.nodeID = i
		case colTitle:
			cols.title = i
		case colSubtitle:
			cols.subtitle = i
		case colContent:
			cols.content = i
		case colURL:
			cols.url = i
		}
	}
	if cols.nodeID == -1 {
		return cols, fmt.Errorf("missing required column NodeId")
	}
	return cols, nil
}

// mapTable converts a raw cell table into the flat row stream. Rows
// with a dotted NodeId become headings whose level is the dot depth
// after the trailing ".0" is normalized away; rows with body text but
// no NodeId become content rows. Fully empty rows are skipped.
func mapTable(table [][]string, headerRow int) ([]record.Row, error) {
	if headerRow < 0 || headerRow >= len(table) {
		return nil, fmt.Errorf("header row %d out of range (%d rows)", headerRow, len(table))
	}
	cols, err := resolveColumns(table[headerRow])
	if err != nil {
		return nil, err
	}

	var rows []record.Row
	seq := 0
	for _, cells := range table[headerRow+1:] {
		nodeID := cell(cells, cols.nodeID)
		title := cell(cells, cols.title)
		subtitle := cell(cells, cols.subtitle)
		content := cell(cells, cols.content)

		if nodeID == "" && title == "" && content == "" {
			continue
		}
		seq++

		if nodeID == "" {
			rows = append(rows, record.Row{
				Level:   record.LevelContent,
				Content: content,
				Seq:     seq,
			})
			continue
		}

		rows = append(rows, record.Row{
			Level:   nodeLevel(nodeID),
			Title:   headingTitle(title, subtitle),
			Content: content,
			Seq:     seq,
		})
	}

	return rows, nil
}

func cell(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

// normalizeNodeID strips the trailing ".0" some exports use to mark a
// section container ("1.2.0" and "1.2" address the same node).
func normalizeNodeID(nodeID string) string {
	return strings.TrimSuffix(nodeID, ".0")
}

// nodeLevel derives the heading depth from the dotted NodeId: "1" is
// top level, "1.2" one below, and so on. A non-dotted NodeId (a named
// section like "Glossary") is treated as top level.
func nodeLevel(nodeID string) int {
	if !dottedNodeID.MatchString(nodeID) {
		return 0
	}
	return strings.Count(normalizeNodeID(nodeID), ".")
}

// headingTitle prefers the descriptive Subtitle over a bare numeric
// Title so semantic paths read as names, not section numbers.
func headingTitle(title, subtitle string) string {
	if subtitle != "" {
		return subtitle
	}
	return title
}

package parser

import (
	"strings"
	"testing"

	"github.com/regdocs/sheetchunk/internal/record"
)

const sampleCSV = `NodeId,Title,Subtitle,Content,Url
1,1,General,,
1.1,1.1,Purpose,This manual defines the criteria.,
1.2.0,1.2.0,Environmental Resource Inventory,,https://example.com
1.2.1,1.2.1,Definitions,Section 25-8-184 defines the terms.,
,,,Supplemental note without a node id.,
`

func TestCSVParser_MapsColumns(t *testing.T) {
	p := &CSVParser{}
	rows, err := p.Parse(strings.NewReader(sampleCSV), "manual.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}

	// "1" is a top-level heading.
	if rows[0].Level != 0 || rows[0].Title != "General" {
		t.Errorf("row 0: expected level 0 General, got level %d %q", rows[0].Level, rows[0].Title)
	}
	// "1.1" nests one below.
	if rows[1].Level != 1 {
		t.Errorf("row 1: expected level 1, got %d", rows[1].Level)
	}
	if rows[1].Content != "This manual defines the criteria." {
		t.Errorf("row 1: content not carried: %q", rows[1].Content)
	}
	// "1.2.0" normalizes to "1.2", still level 1.
	if rows[2].Level != 1 {
		t.Errorf("row 2: expected trailing .0 normalized to level 1, got %d", rows[2].Level)
	}
	// "1.2.1" is level 2.
	if rows[3].Level != 2 {
		t.Errorf("row 3: expected level 2, got %d", rows[3].Level)
	}
	// No NodeId means a content row.
	if rows[4].Level != record.LevelContent {
		t.Errorf("row 4: expected content sentinel, got %d", rows[4].Level)
	}

	for i, row := range rows {
		if row.Seq != i+1 {
			t.Errorf("row %d: expected seq %d, got %d", i, i+1, row.Seq)
		}
	}
}

func TestCSVParser_SubtitlePreferredOverNumericTitle(t *testing.T) {
	in := "NodeId,Title,Subtitle,Content\n2,2,Administrative,\n3,Glossary,,\n"
	p := &CSVParser{}
	rows, err := p.Parse(strings.NewReader(in), "manual.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0].Title != "Administrative" {
		t.Errorf("expected subtitle to win, got %q", rows[0].Title)
	}
	if rows[1].Title != "Glossary" {
		t.Errorf("expected bare title when subtitle empty, got %q", rows[1].Title)
	}
}

func TestCSVParser_MissingNodeIdColumn(t *testing.T) {
	p := &CSVParser{}
	_, err := p.Parse(strings.NewReader("Title,Content\nA,x\n"), "manual.csv")
	if err == nil || !strings.Contains(err.Error(), "NodeId") {
		t.Fatalf("expected missing-column error, got %v", err)
	}
}

func TestCSVParser_HeaderRowOffset(t *testing.T) {
	in := ",,\nNodeId,Title,Content\n1,General,\n"
	p := &CSVParser{HeaderRow: 1}
	rows, err := p.Parse(strings.NewReader(in), "manual.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Title != "General" {
		t.Fatalf("expected one General row, got %+v", rows)
	}
}

func TestCSVParser_SkipsEmptyRows(t *testing.T) {
	in := "NodeId,Title,Content\n1,A,\n,,\n2,B,\n"
	p := &CSVParser{}
	rows, err := p.Parse(strings.NewReader(in), "manual.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].Seq != 2 {
		t.Errorf("sequence must not skip over ignored rows: got %d", rows[1].Seq)
	}
}

func TestNodeLevel(t *testing.T) {
	tests := []struct {
		id   string
		want int
	}{
		{"1", 0},
		{"1.2", 1},
		{"1.2.0", 1}, // trailing .0 marks the container itself
		{"1.2.1", 2},
		{"1.2.1.1", 3},
		{"Glossary", 0},
	}
	for _, tt := range tests {
		if got := nodeLevel(tt.id); got != tt.want {
			t.Errorf("nodeLevel(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestValidate_CSV(t *testing.T) {
	report, err := Validate(strings.NewReader(sampleCSV), "manual.csv", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.OK() {
		t.Fatalf("expected report to pass, missing: %v", report.MissingRequired)
	}
	if report.Rows != 5 {
		t.Errorf("expected 5 data rows, got %d", report.Rows)
	}
	if report.DottedNodeIDs != 4 {
		t.Errorf("expected 4 dotted node ids, got %d", report.DottedNodeIDs)
	}
	if report.TrailingZeroIDs != 1 {
		t.Errorf("expected 1 trailing-zero id, got %d", report.TrailingZeroIDs)
	}
	if report.MaxDepth != 3 {
		t.Errorf("expected max depth 3, got %d", report.MaxDepth)
	}
}

func TestValidate_MissingColumn(t *testing.T) {
	report, err := Validate(strings.NewReader("Title,Content\nA,x\n"), "manual.csv", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.OK() {
		t.Fatalf("expected validation to flag the missing NodeId column")
	}
}

func TestForFile_Dispatch(t *testing.T) {
	for _, name := range []string{"m.xlsx", "m.csv", "m.md", "m.html", "m.docx"} {
		if _, err := ForFile(name, Options{}); err != nil {
			t.Errorf("ForFile(%q): %v", name, err)
		}
	}
	if _, err := ForFile("m.pdf", Options{}); err == nil {
		t.Errorf("expected error for unsupported extension")
	}
}

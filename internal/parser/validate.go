package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Report summarizes the shape of a tabular source without running the
// pipeline.
type Report struct {
	Rows            int      `json:"rows"`
	Columns         []string `json:"columns"`
	MissingRequired []string `json:"missing_required,omitempty"`
	OptionalPresent []string `json:"optional_present"`
	DottedNodeIDs   int      `json:"dotted_node_ids"`
	TrailingZeroIDs int      `json:"trailing_zero_ids"`
	MaxDepth        int      `json:"max_depth"`
}

// OK reports whether the source can be ingested.
func (r *Report) OK() bool {
	return len(r.MissingRequired) == 0
}

// Validate inspects a tabular source's column layout and NodeId shape.
// Only spreadsheet formats carry a column layout to check.
func Validate(r io.Reader, filename string, opts Options) (*Report, error) {
	var table [][]string
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		table, err = readSheet(r)
	case ".csv":
		p := &CSVParser{HeaderRow: opts.HeaderRow}
		table, err = p.readAll(r)
	default:
		return nil, fmt.Errorf("validation applies to tabular sources, not %s", filepath.Ext(filename))
	}
	if err != nil {
		return nil, err
	}

	if opts.HeaderRow < 0 || opts.HeaderRow >= len(table) {
		return nil, fmt.Errorf("header row %d out of range (%d rows)", opts.HeaderRow, len(table))
	}

	header := table[opts.HeaderRow]
	report := &Report{
		Rows:    len(table) - opts.HeaderRow - 1,
		Columns: header,
	}

	cols, err := resolveColumns(header)
	if err != nil {
		report.MissingRequired = append(report.MissingRequired, "NodeId")
	}
	for _, opt := range []struct {
		name string
		idx  int
	}{
		{"Title", cols.title},
		{"Subtitle", cols.subtitle},
		{"Content", cols.content},
		{"Url", cols.url},
	} {
		if opt.idx >= 0 {
			report.OptionalPresent = append(report.OptionalPresent, opt.name)
		}
	}

	if cols.nodeID >= 0 {
		for _, cells := range table[opts.HeaderRow+1:] {
			id := cell(cells, cols.nodeID)
			if id == "" {
				continue
			}
			if strings.HasSuffix(id, ".0") {
				report.TrailingZeroIDs++
			}
			if dottedNodeID.MatchString(id) {
				report.DottedNodeIDs++
				if depth := strings.Count(normalizeNodeID(id), ".") + 1; depth > report.MaxDepth {
					report.MaxDepth = depth
				}
			}
		}
	}

	return report, nil
}

package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/regdocs/sheetchunk/internal/record"
)

// CSVParser handles CSV exports with the same column layout as xlsx.
type CSVParser struct {
	HeaderRow int
}

func (p *CSVParser) Parse(r io.Reader, filename string) ([]record.Row, error) {
	table, err := p.readAll(r)
	if err != nil {
		return nil, err
	}
	return mapTable(table, p.HeaderRow)
}

func (p *CSVParser) readAll(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	table, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return table, nil
}

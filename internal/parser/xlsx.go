package parser

import (
	"fmt"
	"io"

	"github.com/regdocs/sheetchunk/internal/record"
	"github.com/xuri/excelize/v2"
)

// XLSXParser reads the first sheet of an .xlsx workbook.
type XLSXParser struct {
	HeaderRow int
}

func (p *XLSXParser) Parse(r io.Reader, filename string) ([]record.Row, error) {
	table, err := readSheet(r)
	if err != nil {
		return nil, err
	}
	return mapTable(table, p.HeaderRow)
}

func readSheet(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	table, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return table, nil
}

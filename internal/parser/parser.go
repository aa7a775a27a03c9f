// Package parser converts source documents into the flat, ordered row
// stream the outline builder consumes. Spreadsheet formats carry the
// hierarchy in a dotted NodeId column; document formats carry it in
// heading markup.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/regdocs/sheetchunk/internal/record"
)

// Parser converts raw document bytes into an ordered row stream.
// Sequence indexes are assigned in document order starting at 1.
type Parser interface {
	Parse(r io.Reader, filename string) ([]record.Row, error)
}

// Options tunes readers that need to know about file layout.
type Options struct {
	// HeaderRow is the zero-based index of the header row in tabular
	// sources. Exported manuals often ship with a blank first row.
	HeaderRow int
}

// SupportedExtensions lists file extensions this tool can read.
var SupportedExtensions = map[string]bool{
	".xlsx": true,
	".csv":  true,
	".md":   true,
	".html": true,
	".htm":  true,
	".docx": true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return &XLSXParser{HeaderRow: opts.HeaderRow}, nil
	case ".csv":
		return &CSVParser{HeaderRow: opts.HeaderRow}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filename))
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".markdown" {
		return true
	}
	return SupportedExtensions[ext]
}

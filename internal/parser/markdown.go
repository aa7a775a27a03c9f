package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/regdocs/sheetchunk/internal/record"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Headings become
// heading rows (h1 is level 0); every other top-level block becomes a
// content row.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) ([]record.Row, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var rows []record.Row
	seq := 0

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			seq++
			rows = append(rows, record.Row{
				Level: node.Level - 1,
				Title: string(node.Text(src)),
				Seq:   seq,
			})
		default:
			t := extractText(n, src)
			if t == "" {
				continue
			}
			seq++
			rows = append(rows, record.Row{
				Level:   record.LevelContent,
				Content: t,
				Seq:     seq,
			})
		}
	}

	return rows, nil
}

// extractText gets the text content of a goldmark AST node. Blocks with
// inline children (paragraphs) are read through the children; raw blocks
// (code fences) keep their text in Lines only.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.FirstChild() == nil {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}

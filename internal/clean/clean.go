// Package clean normalizes body text before outlining and chunking:
// residual markup from web-exported spreadsheets is stripped, entities
// are decoded, and whitespace and punctuation spacing are tidied.
package clean

import (
	stdhtml "html"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	spaceRun       = regexp.MustCompile(`[ \t]+`)
	newlineRun     = regexp.MustCompile(`\n{3,}`)
	spacedNewline  = regexp.MustCompile(`[ \t]*\n[ \t]*`)
	beforePunct    = regexp.MustCompile(`[ \t]+([.,;:!?])`)
	afterOpen      = regexp.MustCompile(`([(\[])[ \t]+`)
	beforeClose    = regexp.MustCompile(`[ \t]+([)\]])`)
	looseTableCell = regexp.MustCompile(`[ \t]*\|[ \t]*`)
)

// Normalize cleans one content value. Paragraph separators (blank
// lines) survive so downstream paragraph-boundary splitting still has
// something to cut on.
func Normalize(content string) string {
	if content == "" {
		return content
	}

	if strings.Contains(content, "<") {
		// The tokenizer already decodes entities in text nodes.
		content = stripMarkup(content)
	} else {
		content = stdhtml.UnescapeString(content)
	}
	content = strings.ReplaceAll(content, " ", " ")

	content = spacedNewline.ReplaceAllString(content, "\n")
	content = newlineRun.ReplaceAllString(content, "\n\n")
	content = spaceRun.ReplaceAllString(content, " ")

	content = beforePunct.ReplaceAllString(content, "$1")
	content = afterOpen.ReplaceAllString(content, "$1")
	content = beforeClose.ReplaceAllString(content, "$1")
	content = looseTableCell.ReplaceAllString(content, " | ")

	return strings.TrimSpace(content)
}

// stripMarkup drops element tags and keeps text content. Text without
// a '<' is returned untouched.
func stripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}

package chunker

import (
	"unicode"
	"unicode/utf8"
)

// The split functions below are lossless: each returns non-empty pieces
// whose concatenation equals the input, with boundary whitespace kept
// on the preceding piece. Trailing whitespace never becomes its own
// piece.

// splitAfterParagraphs cuts after whitespace runs that contain at least
// two newlines (blank-line paragraph separators).
func splitAfterParagraphs(text string) []string {
	var parts []string
	start, i := 0, 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r != '\n' {
			i += size
			continue
		}
		j := i + size
		newlines := 1
		for j < len(text) {
			r2, s2 := utf8.DecodeRuneInString(text[j:])
			if !unicode.IsSpace(r2) {
				break
			}
			if r2 == '\n' {
				newlines++
			}
			j += s2
		}
		if newlines >= 2 && j < len(text) {
			parts = append(parts, text[start:j])
			start = j
		}
		i = j
	}
	if start < len(text) {
		parts = append(parts, text[start:])
	}
	return parts
}

// splitAfterSentences cuts after a sentence terminator followed by
// whitespace. The whitespace run stays with the finished sentence.
func splitAfterSentences(text string) []string {
	var parts []string
	start, i := 0, 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		j := i
		for j < len(text) {
			r2, s2 := utf8.DecodeRuneInString(text[j:])
			if !unicode.IsSpace(r2) {
				break
			}
			j += s2
		}
		if j > i && j < len(text) {
			parts = append(parts, text[start:j])
			start = j
		}
		i = j
	}
	if start < len(text) {
		parts = append(parts, text[start:])
	}
	return parts
}

// splitAfterWhitespace cuts after every maximal whitespace run,
// yielding word-sized units.
func splitAfterWhitespace(text string) []string {
	var parts []string
	start, i := 0, 0
	inSpace := false
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		isSpace := unicode.IsSpace(r)
		if inSpace && !isSpace {
			parts = append(parts, text[start:i])
			start = i
		}
		inSpace = isSpace
		i += size
	}
	if start < len(text) {
		parts = append(parts, text[start:])
	}
	return parts
}

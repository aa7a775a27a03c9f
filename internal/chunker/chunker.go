// Package chunker splits path-annotated records into token-bounded
// chunks. Splitting is lossless: a record's chunks concatenate back to
// its original content byte-for-byte, so boundary whitespace always
// stays attached to the piece that precedes it.
package chunker

import (
	"strings"
	"unicode"

	"github.com/regdocs/sheetchunk/internal/record"
	"github.com/regdocs/sheetchunk/internal/token"
)

const (
	// charsPerToken is the rough character width of one token, used only
	// to size the hard-cut lookback window.
	charsPerToken = 4

	// boundaryLookbackFraction bounds how far a hard cut scans backward
	// for a whitespace boundary, as a fraction of MaxTokens measured in
	// charsPerToken-sized characters.
	boundaryLookbackFraction = 0.20
)

// Config controls chunking behavior.
type Config struct {
	MaxTokens int           // Token budget per chunk. Required, >= 1.
	Counter   token.Counter // Injected token counter. Defaults to the word heuristic.
}

// cascade lists boundary splitters strongest-first. A unit that still
// exceeds the budget after the last entry is hard-cut at rune level.
var cascade = []func(string) []string{
	splitAfterParagraphs,
	splitAfterSentences,
	splitAfterWhitespace,
}

// Split measures every record against the token budget and splits the
// oversized ones at the strongest available boundary: paragraph, then
// sentence, then whitespace, then a hard character cut as a last
// resort. Output order follows input order; chunks from one record are
// contiguous and indexed 0..ChunkCount-1.
func Split(recs []record.PathRecord, cfg Config) ([]record.Chunk, error) {
	if cfg.MaxTokens < 1 {
		return nil, &record.ChunkingError{Seq: -1, Reason: "max tokens must be at least 1"}
	}
	counter := cfg.Counter
	if counter == nil {
		counter = token.WordCounter{}
	}

	s := &splitter{max: cfg.MaxTokens, counter: counter}

	var chunks []record.Chunk
	for _, rec := range recs {
		n, err := s.count(rec.Content, rec.Seq)
		if err != nil {
			return nil, err
		}
		if n <= cfg.MaxTokens {
			chunks = append(chunks, record.Chunk{
				SemanticPath: copyPath(rec.SemanticPath),
				ChunkIndex:   0,
				ChunkCount:   1,
				Content:      rec.Content,
				TokenCount:   n,
				Seq:          rec.Seq,
			})
			continue
		}

		pieces, err := s.split(rec.Content, rec.Seq)
		if err != nil {
			return nil, err
		}
		for i, piece := range pieces {
			pn, err := s.count(piece, rec.Seq)
			if err != nil {
				return nil, err
			}
			chunks = append(chunks, record.Chunk{
				SemanticPath: copyPath(rec.SemanticPath),
				ChunkIndex:   i,
				ChunkCount:   len(pieces),
				Content:      piece,
				TokenCount:   pn,
				Seq:          rec.Seq,
			})
		}
	}

	return chunks, nil
}

type splitter struct {
	max     int
	counter token.Counter
}

func (s *splitter) count(text string, seq int) (int, error) {
	n := s.counter.Count(text)
	if n < 0 {
		return 0, &record.ChunkingError{Seq: seq, Reason: "token counter returned a negative count"}
	}
	return n, nil
}

// split refines the text into budget-sized units down the cascade, then
// packs consecutive units greedily: a unit that would push the current
// piece over the budget closes it and opens the next.
func (s *splitter) split(text string, seq int) ([]string, error) {
	units, err := s.refine(text, seq, 0)
	if err != nil {
		return nil, err
	}

	var pieces []string
	var current strings.Builder

	for _, unit := range units {
		if current.Len() > 0 {
			n, err := s.count(current.String()+unit, seq)
			if err != nil {
				return nil, err
			}
			if n > s.max {
				pieces = append(pieces, current.String())
				current.Reset()
			}
		}
		current.WriteString(unit)
	}
	if current.Len() > 0 {
		pieces = append(pieces, current.String())
	}

	return pieces, nil
}

// refine applies the cascade entry at depth and recursively refines any
// unit that still exceeds the budget at the next boundary strength.
// Every splitter preserves concatenation, so the cascade does too.
func (s *splitter) refine(text string, seq, depth int) ([]string, error) {
	if depth >= len(cascade) {
		return s.hardCut(text), nil
	}

	var out []string
	for _, unit := range cascade[depth](text) {
		n, err := s.count(unit, seq)
		if err != nil {
			return nil, err
		}
		if n <= s.max {
			out = append(out, unit)
			continue
		}
		sub, err := s.refine(unit, seq, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

// hardCut slices an unbreakable unit into rune-level pieces that fit
// the budget, preferring a whitespace cut within the lookback window
// when one exists. It always consumes at least one rune per piece, so
// it never emits an empty piece and never loops; a single rune that
// alone exceeds the budget is still emitted.
func (s *splitter) hardCut(text string) []string {
	runes := []rune(text)
	lookback := int(boundaryLookbackFraction * float64(s.max) * charsPerToken)

	var out []string
	for len(runes) > 0 {
		cut := s.fitPrefix(runes)

		if cut < len(runes) {
			for back := 1; back <= lookback && cut-back > 0; back++ {
				if unicode.IsSpace(runes[cut-back]) {
					cut = cut - back + 1 // keep the space on the left piece
					break
				}
			}
		}

		out = append(out, string(runes[:cut]))
		runes = runes[cut:]
	}
	return out
}

// fitPrefix finds the longest rune prefix within the token budget by
// binary search, clamped to at least one rune.
func (s *splitter) fitPrefix(runes []rune) int {
	lo, hi := 1, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.counter.Count(string(runes[:mid])) <= s.max {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func copyPath(path []string) []string {
	if len(path) == 0 {
		return []string{}
	}
	out := make([]string, len(path))
	copy(out, path)
	return out
}

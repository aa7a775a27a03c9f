// Package token provides the token-counting collaborators injected into
// the chunker. Counting is a black box to the rest of the pipeline.
package token

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter measures text against a token budget. Implementations must be
// deterministic: the same text always yields the same count.
type Counter interface {
	Count(text string) int
}

// HeuristicName selects the word-based estimator instead of a BPE encoding.
const HeuristicName = "heuristic"

// WordCounter estimates tokens from the word count using the ~1.33
// tokens-per-word ratio for English text. Exact tokenization is not
// required when an embedding-accurate budget doesn't matter.
type WordCounter struct{}

func (WordCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	tokens := int(float64(words) * 1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}

// Tiktoken counts with a real BPE encoding (e.g. cl100k_base),
// matching what embedding providers meter against.
type Tiktoken struct {
	enc *tiktoken.Tiktoken
}

// NewTiktoken loads the named encoding.
func NewTiktoken(encoding string) (*Tiktoken, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load encoding %q: %w", encoding, err)
	}
	return &Tiktoken{enc: enc}, nil
}

func (t *Tiktoken) Count(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}

// ForName resolves a counter by name: "heuristic" for the word estimator,
// anything else is treated as a tiktoken encoding name.
func ForName(name string) (Counter, error) {
	if name == "" || name == HeuristicName {
		return WordCounter{}, nil
	}
	return NewTiktoken(name)
}

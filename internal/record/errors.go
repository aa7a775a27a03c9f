package record

import "fmt"

// MalformedInputError reports a row stream that violates the input
// contract: a bad level value or a non-increasing sequence index.
// It aborts the run; there is nothing to retry.
type MalformedInputError struct {
	Seq    int
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input at seq %d: %s", e.Seq, e.Reason)
}

// ChunkingError reports a token-budget or counter-contract violation.
// A partial chunk stream would be ambiguous to consumers, so the whole
// input is abandoned.
type ChunkingError struct {
	Seq    int
	Reason string
}

func (e *ChunkingError) Error() string {
	if e.Seq < 0 {
		return fmt.Sprintf("chunking failed: %s", e.Reason)
	}
	return fmt.Sprintf("chunking failed at seq %d: %s", e.Seq, e.Reason)
}

// Package pipeline sequences the three processing stages: outline
// reconstruction, semantic path assignment, and chunking. Each stage
// materializes its full output before the next runs, so a run either
// yields a complete chunk stream or fails with no partial output.
package pipeline

import (
	"log/slog"

	"github.com/regdocs/sheetchunk/internal/chunker"
	"github.com/regdocs/sheetchunk/internal/clean"
	"github.com/regdocs/sheetchunk/internal/config"
	"github.com/regdocs/sheetchunk/internal/outline"
	"github.com/regdocs/sheetchunk/internal/record"
	"github.com/regdocs/sheetchunk/internal/token"
)

// Runner holds the resolved configuration for one or more runs. Runs
// are pure over their inputs: the same rows always produce the same
// chunks.
type Runner struct {
	chunkCfg     chunker.Config
	cleanContent bool
	emitHeadings bool
	log          *slog.Logger
}

// Result carries the materialized stage outputs of one run.
type Result struct {
	Paths  []record.PathRecord
	Chunks []record.Chunk
	Stats  Stats
}

// Stats summarizes a run for the CLI report.
type Stats struct {
	Rows         int `json:"rows"`
	HeadingRows  int `json:"heading_rows"`
	ContentRows  int `json:"content_rows"`
	Records      int `json:"records"`
	Chunks       int `json:"chunks"`
	SplitRecords int `json:"split_records"`
	TotalTokens  int `json:"total_tokens"`
	MaxDepth     int `json:"max_depth"`
}

// NewRunner builds a runner from resolved configuration.
func NewRunner(cfg config.Config, counter token.Counter, log *slog.Logger) *Runner {
	return &Runner{
		chunkCfg: chunker.Config{
			MaxTokens: cfg.MaxTokens,
			Counter:   counter,
		},
		cleanContent: cfg.CleanContent,
		emitHeadings: cfg.EmitHeadings,
		log:          log,
	}
}

// Paths runs the first two stages and returns the path-annotated
// record stream in document order.
func (r *Runner) Paths(rows []record.Row) ([]record.PathRecord, error) {
	rows = r.prepare(rows)

	root, err := outline.Build(rows)
	if err != nil {
		return nil, err
	}
	paths := outline.Assign(root, outline.AssignOptions{EmitHeadings: r.emitHeadings})
	r.log.Debug("paths assigned", "rows", len(rows), "records", len(paths))
	return paths, nil
}

// Run executes the full pipeline.
func (r *Runner) Run(rows []record.Row) (*Result, error) {
	paths, err := r.Paths(rows)
	if err != nil {
		return nil, err
	}

	chunks, err := chunker.Split(paths, r.chunkCfg)
	if err != nil {
		return nil, err
	}
	r.log.Debug("chunking complete", "records", len(paths), "chunks", len(chunks))

	return &Result{
		Paths:  paths,
		Chunks: chunks,
		Stats:  collectStats(rows, paths, chunks),
	}, nil
}

// prepare normalizes content when cleaning is enabled, leaving the
// incoming slice untouched.
func (r *Runner) prepare(rows []record.Row) []record.Row {
	if !r.cleanContent {
		return rows
	}
	out := make([]record.Row, len(rows))
	copy(out, rows)
	for i := range out {
		out[i].Content = clean.Normalize(out[i].Content)
	}
	return out
}

func collectStats(rows []record.Row, paths []record.PathRecord, chunks []record.Chunk) Stats {
	s := Stats{
		Rows:    len(rows),
		Records: len(paths),
		Chunks:  len(chunks),
	}
	for _, row := range rows {
		if row.IsHeading() {
			s.HeadingRows++
		} else {
			s.ContentRows++
		}
	}
	for _, p := range paths {
		if len(p.SemanticPath) > s.MaxDepth {
			s.MaxDepth = len(p.SemanticPath)
		}
	}
	for _, c := range chunks {
		s.TotalTokens += c.TokenCount
		if c.ChunkCount > 1 && c.ChunkIndex == 0 {
			s.SplitRecords++
		}
	}
	return s
}

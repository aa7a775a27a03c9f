package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/regdocs/sheetchunk/internal/config"
	"github.com/regdocs/sheetchunk/internal/jsonl"
	"github.com/regdocs/sheetchunk/internal/parser"
	"github.com/regdocs/sheetchunk/internal/pipeline"
	"github.com/regdocs/sheetchunk/internal/record"
	"github.com/regdocs/sheetchunk/internal/token"
	"github.com/spf13/cobra"
)

func chunkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chunk <file>",
		Short: "Run the full pipeline and write token-bounded chunks as JSONL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			rows, runner, err := readInput(cfg, args[0])
			if err != nil {
				return err
			}

			result, err := runner.Run(rows)
			if err != nil {
				return err
			}

			out := outputPath(args[0], "chunks.jsonl")
			if err := writeJSONL(out, result.Chunks); err != nil {
				return err
			}

			slog.Info("chunking complete", "input", args[0], "output", out)
			printStats(cmd, result.Stats)
			return nil
		},
	}
}

func pathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths <file>",
		Short: "Stop after semantic path assignment and write the annotated records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			rows, runner, err := readInput(cfg, args[0])
			if err != nil {
				return err
			}

			paths, err := runner.Paths(rows)
			if err != nil {
				return err
			}

			out := outputPath(args[0], "paths.jsonl")
			if err := writeJSONL(out, paths); err != nil {
				return err
			}

			slog.Info("path assignment complete", "input", args[0], "output", out, "records", len(paths))
			return nil
		},
	}
}

func ingestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file>",
		Short: "Read the source into the flat row stream and write it as JSONL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			rows, err := readRows(cfg, args[0])
			if err != nil {
				return err
			}

			out := outputPath(args[0], "rows.jsonl")
			if err := writeJSONL(out, rows); err != nil {
				return err
			}

			slog.Info("ingest complete", "input", args[0], "output", out, "rows", len(rows))
			return nil
		},
	}
}

// readRows parses a source document, or resumes from a previously
// ingested .jsonl row stream.
func readRows(cfg config.Config, path string) ([]record.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		return jsonl.Read[record.Row](f)
	}

	p, err := parser.ForFile(path, parser.Options{HeaderRow: cfg.HeaderRow})
	if err != nil {
		return nil, err
	}
	return p.Parse(f, filepath.Base(path))
}

func readInput(cfg config.Config, path string) ([]record.Row, *pipeline.Runner, error) {
	rows, err := readRows(cfg, path)
	if err != nil {
		return nil, nil, err
	}
	counter, err := token.ForName(cfg.Tokenizer)
	if err != nil {
		return nil, nil, err
	}
	return rows, pipeline.NewRunner(cfg, counter, slog.Default()), nil
}

// outputPath honors --output or derives <input>.<suffix>.
func outputPath(input, suffix string) string {
	if flagOutput != "" {
		return flagOutput
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "." + suffix
}

func writeJSONL[T any](path string, records []T) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := jsonl.Write(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printStats(cmd *cobra.Command, s pipeline.Stats) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "rows:          %d (%d headings, %d content)\n", s.Rows, s.HeadingRows, s.ContentRows)
	fmt.Fprintf(w, "records:       %d\n", s.Records)
	fmt.Fprintf(w, "chunks:        %d (%d records split)\n", s.Chunks, s.SplitRecords)
	fmt.Fprintf(w, "total tokens:  %d\n", s.TotalTokens)
	fmt.Fprintf(w, "max depth:     %d\n", s.MaxDepth)
}

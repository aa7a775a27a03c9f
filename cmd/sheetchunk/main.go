package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/regdocs/sheetchunk/internal/config"
	"github.com/spf13/cobra"
)

var (
	flagVerbose      bool
	flagOutput       string
	flagMaxTokens    int
	flagTokenizer    string
	flagClean        bool
	flagEmitHeadings bool
	flagHeaderRow    int
)

func main() {
	root := &cobra.Command{
		Use:   "sheetchunk",
		Short: "Convert a structured spreadsheet manual into token-bounded, path-annotated chunks",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if flagVerbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output file (default: derived from input)")
	root.PersistentFlags().IntVar(&flagMaxTokens, "max-tokens", 0, "token budget per chunk")
	root.PersistentFlags().StringVar(&flagTokenizer, "tokenizer", "", "token counter: heuristic or a tiktoken encoding (e.g. cl100k_base)")
	root.PersistentFlags().BoolVar(&flagClean, "clean", false, "normalize content before chunking")
	root.PersistentFlags().BoolVar(&flagEmitHeadings, "emit-headings", false, "also emit pure heading rows as zero-content records")
	root.PersistentFlags().IntVar(&flagHeaderRow, "header-row", -1, "zero-based header row index for tabular sources")

	root.AddCommand(chunkCmd(), pathsCmd(), ingestCmd(), validateCmd(), previewCmd(), serveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves env configuration and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Load()
	if cmd.Flags().Changed("max-tokens") {
		cfg.MaxTokens = flagMaxTokens
	}
	if cmd.Flags().Changed("tokenizer") {
		cfg.Tokenizer = flagTokenizer
	}
	if cmd.Flags().Changed("clean") {
		cfg.CleanContent = flagClean
	}
	if cmd.Flags().Changed("emit-headings") {
		cfg.EmitHeadings = flagEmitHeadings
	}
	if flagHeaderRow >= 0 {
		cfg.HeaderRow = flagHeaderRow
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

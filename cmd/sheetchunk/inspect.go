package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/regdocs/sheetchunk/internal/parser"
	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a tabular source's column layout without processing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			report, err := parser.Validate(f, filepath.Base(args[0]), parser.Options{HeaderRow: cfg.HeaderRow})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "rows:             %d\n", report.Rows)
			fmt.Fprintf(w, "columns:          %s\n", strings.Join(report.Columns, ", "))
			fmt.Fprintf(w, "optional present: %s\n", strings.Join(report.OptionalPresent, ", "))
			fmt.Fprintf(w, "dotted node ids:  %d (%d with trailing .0)\n", report.DottedNodeIDs, report.TrailingZeroIDs)
			fmt.Fprintf(w, "max depth:        %d\n", report.MaxDepth)

			if !report.OK() {
				return fmt.Errorf("missing required columns: %s", strings.Join(report.MissingRequired, ", "))
			}
			fmt.Fprintln(w, "validation passed")
			return nil
		},
	}
}

func previewCmd() *cobra.Command {
	var previewRows int

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Show how the first rows of a source map onto the row stream",
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

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-5s %-6s %-40s %s\n", "SEQ", "LEVEL", "TITLE", "CONTENT")
			for i, row := range rows {
				if i >= previewRows {
					break
				}
				level := fmt.Sprintf("%d", row.Level)
				if !row.IsHeading() {
					level = "-"
				}
				fmt.Fprintf(w, "%-5d %-6s %-40s %s\n", row.Seq, level, truncate(row.Title, 40), truncate(row.Content, 60))
			}
			fmt.Fprintf(w, "(%d rows total)\n", len(rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&previewRows, "rows", "r", 5, "number of rows to preview")
	return cmd
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tsawler/readorder"
	"github.com/tsawler/readorder/internal/logging"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var legacy bool

	cmd := &cobra.Command{
		Use:   "run <file>...",
		Short: "Order the text of one or more OCR result files",
		Long: "Run clusters each file's fragments and prints the assembled text.\n" +
			"Inputs may be fragment JSON, Google Cloud Vision JSON, hOCR, or images\n" +
			"when built with -tags ocr.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.loggerFor("run")
			if err != nil {
				return err
			}
			proc := ctx.processor()

			results := make([]*readorder.Result, 0, len(args))
			for _, path := range args {
				res, err := proc.ProcessFile(cmd.Context(), path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				for _, w := range res.Warnings {
					logger.Warn("pipeline warning",
						slog.String(logging.FieldFile, filepath.Base(path)),
						slog.String("kind", string(w.Kind)),
						slog.String("detail", w.Message),
					)
				}
				results = append(results, res)
			}

			switch {
			case legacy:
				out := make([]readorder.LegacyResult, len(results))
				for i, res := range results {
					out[i] = res.Legacy()
				}
				if len(out) == 1 {
					return writeJSON(cmd, out[0])
				}
				return writeJSON(cmd, out)
			case asJSON:
				if len(results) == 1 {
					return writeJSON(cmd, results[0])
				}
				return writeJSON(cmd, results)
			}

			out := cmd.OutOrStdout()
			for i, res := range results {
				if len(results) > 1 {
					fmt.Fprintf(out, "===== %s =====\n", filepath.Base(args[i]))
				}
				fmt.Fprintln(out, res.FullText)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "Print only text and blocks as JSON")
	cmd.MarkFlagsMutuallyExclusive("json", "legacy")
	return cmd
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tsawler/readorder/internal/batch"
	"github.com/tsawler/readorder/internal/journal"
	"github.com/tsawler/readorder/internal/output"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var (
		workers   int
		resume    bool
		outDir    string
		writeJSON bool
		quiet     bool
	)

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Order every supported file in a directory",
		Long: "Batch processes the directory's files in name order and appends the\n" +
			"results to <dir>_text.txt. Failed files are reported and skipped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			logger, err := ctx.loggerFor("cli")
			if err != nil {
				return err
			}
			dir := args[0]

			if cmd.Flags().Changed("workers") {
				cfg.Batch.Workers = workers
			}
			if cmd.Flags().Changed("resume") {
				cfg.Batch.Resume = resume
			}
			if cmd.Flags().Changed("out") {
				cfg.Output.Dir = outDir
			}
			if cmd.Flags().Changed("write-json") {
				cfg.Output.WriteJSON = writeJSON
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}

			writer, err := output.New(dir, output.Options{Dir: cfg.Output.Dir, WriteJSON: cfg.Output.WriteJSON})
			if err != nil {
				return err
			}

			var store *journal.Store
			if cfg.Journal.Enabled || cfg.Batch.Resume {
				store, err = journal.Open(cmd.Context(), cfg.Journal.Path)
				if err != nil {
					return fmt.Errorf("open journal: %w", err)
				}
				defer store.Close()
			}

			runner := batch.New(ctx.processor(), batch.Options{
				Workers: cfg.Batch.Workers,
				Resume:  cfg.Batch.Resume,
				Output:  writer,
				Journal: store,
				Logger:  logger,
			})

			summary, err := runner.Run(cmd.Context(), dir)
			if summary != nil && !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary))
				fmt.Fprintf(cmd.OutOrStdout(), "Results appended to %s\n", writer.TextPath())
			}
			if err != nil {
				return err
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d files failed", summary.Failed, len(summary.Files))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Files processed concurrently")
	cmd.Flags().BoolVar(&resume, "resume", false, "Skip files unchanged since the last journaled run")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: the input's parent)")
	cmd.Flags().BoolVar(&writeJSON, "write-json", false, "Also write one JSON result per file")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the summary table")
	return cmd
}

func renderSummary(s *batch.Summary) string {
	headers := []string{"File", "Status", "Direction", "Clusters", "Method"}
	rows := make([][]string, 0, len(s.Files))
	for _, f := range s.Files {
		switch {
		case f.Err != nil:
			rows = append(rows, []string{f.Name, "failed: " + f.Err.Error(), "", "", ""})
		case f.Skipped:
			rows = append(rows, []string{f.Name, "unchanged", "", "", ""})
		default:
			res := f.Result
			rows = append(rows, []string{
				f.Name,
				"ok",
				fmt.Sprintf("%s (%s)", res.Direction, res.DirectionConfidence),
				strconv.Itoa(res.ClusterCount()),
				string(res.ProcessingMethod),
			})
		}
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft})
}

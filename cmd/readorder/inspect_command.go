package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/readorder"
)

const maxPreviewRunes = 40

func newInspectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the direction verdict, tolerances and clusters for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := ctx.processor().ProcessFile(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			renderInspection(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func renderInspection(out io.Writer, res *readorder.Result) {
	v := res.Verdict
	fmt.Fprintln(out, renderTable(
		[]string{"Property", "Value"},
		[][]string{
			{"Direction", res.Direction.String()},
			{"Confidence", res.DirectionConfidence.String()},
			{"Vertical ratio", formatFloat(v.VerticalRatio)},
			{"Horizontal ratio", formatFloat(v.HorizontalRatio)},
			{"Fragments analyzed", strconv.Itoa(v.Analyzed)},
			{"Fragments", strconv.Itoa(len(res.TextBlocks))},
			{"Image estimate", fmt.Sprintf("%s x %s", formatFloat(res.ImageDimensions.Width), formatFloat(res.ImageDimensions.Height))},
			{"Cluster tolerance", fmt.Sprintf("x %s, y %s", formatFloat(res.Tolerances.ClusterX), formatFloat(res.Tolerances.ClusterY))},
			{"Block tolerance", fmt.Sprintf("x %s, y %s", formatFloat(res.Tolerances.BlockX), formatFloat(res.Tolerances.BlockY))},
			{"Method", string(res.ProcessingMethod)},
		},
		nil,
	))

	if len(res.Clusters) > 0 {
		rows := make([][]string, 0, len(res.Clusters))
		for _, c := range res.Clusters {
			rows = append(rows, []string{
				strconv.Itoa(c.Index),
				fmt.Sprintf("(%s, %s)", formatFloat(c.Center.X), formatFloat(c.Center.Y)),
				strconv.Itoa(c.FragmentCount),
				preview(c.Text),
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"#", "Center", "Fragments", "Text"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
		))
	}

	if len(res.Warnings) > 0 {
		fmt.Fprintln(out, "Warnings:")
		fmt.Fprintln(out, readorder.FormatWarnings(res.Warnings))
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func preview(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= maxPreviewRunes {
		return s
	}
	return string(runes[:maxPreviewRunes-1]) + "…"
}

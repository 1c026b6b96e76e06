/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"os"

	"chainguard.dev/evalkit/agents/runner"
	"chainguard.dev/evalkit/agents/score"
	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"
)

func newBatchCommand(root *rootOptions) *cobra.Command {
	var (
		file         string
		out          string
		showFeedback bool
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Generate and judge every row of a CSV file, then judge the batch as a whole",
		Long: `Reads a CSV file with 'type' and 'input' columns. Each row is generated,
judged for relevance and clarity, validated and logged. The batch is then judged
once for consistency and creativity.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()
			inputs, err := runner.ReadInputs(f)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			r, err := root.cfg.newRunner(ctx)
			if err != nil {
				return err
			}
			res, err := r.RunBatch(ctx, inputs)
			if err != nil {
				return err
			}

			failed := 0
			for _, item := range res.Items {
				if item.Failed() {
					failed++
				}
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Batch %s: %d rows, %d failed\n", res.ID, len(res.Items), failed)
			fmt.Fprintf(w, "Consistency (1-10): %s\n", res.Judge.Scores.Format(score.Consistency))
			fmt.Fprintf(w, "Creativity (1-10): %s\n", res.Judge.Scores.Format(score.Creativity))
			if showFeedback {
				fmt.Fprintf(w, "\n## Batch Feedback\n\n%s\n\n## Batch Judge Prompt\n\n%s\n", res.Judge.Feedback, res.Judge.Prompt)
			}

			o, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := runner.WriteResults(o, res.Items); err != nil {
				o.Close()
				return fmt.Errorf("writing %s: %w", out, err)
			}
			if err := o.Close(); err != nil {
				return err
			}
			clog.InfoContextf(ctx, "Wrote %d results to %s", len(res.Items), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "CSV file with type and input columns")
	cmd.Flags().StringVar(&out, "out", "batch_evaluation_results.csv", "per-item results CSV")
	cmd.Flags().BoolVar(&showFeedback, "show-feedback", false, "print the batch feedback and prompt")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

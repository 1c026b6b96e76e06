/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"chainguard.dev/evalkit/agents/prompts"
	"chainguard.dev/evalkit/agents/runner"
	"chainguard.dev/evalkit/agents/score"
	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"
)

func newEvaluateCommand(root *rootOptions) *cobra.Command {
	var (
		kind       string
		data       string
		file       string
		showPrompt bool
	)
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Generate and judge a single answer",
		Example: `  evalkit evaluate --type emt --data '{"scores":{"EMT1":[40,60]},"metadata":{"class_id":"5A"}}'
  evalkit evaluate --type curriculum --file input.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			raw, err := readInput(cmd.InOrStdin(), data, file)
			if err != nil {
				return err
			}
			r, err := root.cfg.newRunner(ctx)
			if err != nil {
				return err
			}

			item, err := r.RunOne(ctx, prompts.Kind(kind), raw)
			if err != nil {
				return err
			}
			printItem(cmd.OutOrStdout(), item, showPrompt)
			clog.InfoContextf(ctx, "Results saved to %s", root.cfg.HistoryFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "type", string(prompts.EMT), "prompt type (emt or curriculum)")
	cmd.Flags().StringVar(&data, "data", "", "input JSON document")
	cmd.Flags().StringVar(&file, "file", "", "file holding the input JSON document (- for stdin)")
	cmd.Flags().BoolVar(&showPrompt, "show-prompt", false, "print the generation and judge prompts")
	cmd.MarkFlagsMutuallyExclusive("data", "file")
	return cmd
}

func readInput(stdin io.Reader, data, file string) ([]byte, error) {
	switch {
	case data != "":
		return []byte(data), nil
	case file == "-":
		return io.ReadAll(stdin)
	case file != "":
		return os.ReadFile(file)
	default:
		return nil, errors.New("one of --data or --file is required")
	}
}

func printItem(w io.Writer, item *runner.ItemResult, showPrompt bool) {
	if showPrompt {
		fmt.Fprintf(w, "## Prompt\n\n%s\n\n", item.Prompt)
	}
	fmt.Fprintf(w, "## Answer\n\n%s\n\n", item.Answer)
	fmt.Fprintf(w, "Completeness: %s\n\n", item.ValidationStatus)
	fmt.Fprintf(w, "## Judge Feedback\n\n%s\n\n", item.Judge.Feedback)
	fmt.Fprintf(w, "Relevance: %s\nClarity: %s\n", item.Judge.Scores.Format(score.Relevance), item.Judge.Scores.Format(score.Clarity))
	if showPrompt {
		fmt.Fprintf(w, "\n## Judge Prompt\n\n%s\n", item.Judge.Prompt)
	}
}

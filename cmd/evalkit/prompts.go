/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"

	"chainguard.dev/evalkit/agents/judge"
	"chainguard.dev/evalkit/agents/prompts"
	"github.com/spf13/cobra"
)

func newPromptsCommand(root *rootOptions) *cobra.Command {
	var (
		kind string
		data string
		file string
	)
	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "Print the judge rubrics, or render a generation prompt for an input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if data == "" && file == "" {
				fmt.Fprintf(w, "## Individual Rubric\n\n%s\n\n## Batch Rubric\n\n%s\n", judge.IndividualTemplate, judge.BatchGuide)
				return nil
			}
			raw, err := readInput(cmd.InOrStdin(), data, file)
			if err != nil {
				return err
			}
			prompt, err := prompts.Build(prompts.Kind(kind), root.cfg.GeneratorProvider, raw)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, prompt)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "type", string(prompts.EMT), "prompt type (emt or curriculum)")
	cmd.Flags().StringVar(&data, "data", "", "input JSON document to render")
	cmd.Flags().StringVar(&file, "file", "", "file holding the input JSON document (- for stdin)")
	cmd.MarkFlagsMutuallyExclusive("data", "file")
	return cmd
}

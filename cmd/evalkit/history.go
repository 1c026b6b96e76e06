/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"

	"chainguard.dev/evalkit/agents/report"
	"github.com/spf13/cobra"
)

func newHistoryCommand(root *rootOptions) *cobra.Command {
	var rows bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Summarize the evaluation log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := root.cfg.store().History(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(w, "No evaluation history found. Run some evaluations to see history here.")
				return nil
			}
			fmt.Fprintln(w, report.Table(report.Summarize(records)))
			if rows {
				fmt.Fprintln(w, report.Tree(records))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&rows, "rows", false, "list rows grouped by batch")
	return cmd
}

/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"log/slog"
	"os"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	verbose bool
	dotenv  string

	judgeModel       string
	judgeTemperature float32
	provider         string
	model            string
	temperature      float32
	historyFile      string

	cfg *config
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "evalkit",
		Short:         "Generate answers with an LLM and score them with an LLM judge",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			logger := clog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			ctx := clog.WithLogger(cmd.Context(), logger)
			cmd.SetContext(ctx)

			cfg, err := loadConfig(ctx, opts.dotenv)
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)
			opts.cfg = cfg
			return cfg.validate()
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&opts.dotenv, "env-file", ".env", "dotenv file loaded before the environment")
	flags.StringVar(&opts.judgeModel, "judge-model", "", "judge model (overrides JUDGE_MODEL)")
	flags.Float32Var(&opts.judgeTemperature, "judge-temperature", 0, "judge temperature (overrides JUDGE_TEMPERATURE)")
	flags.StringVar(&opts.provider, "provider", "", "generator provider (overrides GENERATOR_PROVIDER)")
	flags.StringVar(&opts.model, "model", "", "generator model (overrides GENERATOR_MODEL)")
	flags.Float32Var(&opts.temperature, "temperature", 0, "generator temperature (overrides GENERATOR_TEMPERATURE)")
	flags.StringVar(&opts.historyFile, "history-file", "", "evaluation log (overrides EVAL_HISTORY_FILE)")

	cmd.AddCommand(
		newEvaluateCommand(opts),
		newBatchCommand(opts),
		newHistoryCommand(opts),
		newPromptsCommand(opts),
	)
	return cmd
}

// apply lets explicitly set flags override the environment.
func (o *rootOptions) apply(cmd *cobra.Command, cfg *config) {
	flags := cmd.Flags()
	if flags.Changed("judge-model") {
		cfg.JudgeModel = o.judgeModel
	}
	if flags.Changed("judge-temperature") {
		cfg.JudgeTemperature = o.judgeTemperature
	}
	if flags.Changed("provider") {
		cfg.GeneratorProvider = o.provider
	}
	if flags.Changed("model") {
		cfg.GeneratorModel = o.model
	}
	if flags.Changed("temperature") {
		cfg.GeneratorTemperature = o.temperature
	}
	if flags.Changed("history-file") {
		cfg.HistoryFile = o.historyFile
	}
}

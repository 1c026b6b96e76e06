/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"chainguard.dev/evalkit/agents/backend/googlebackend"
	"chainguard.dev/evalkit/agents/generator"
	"chainguard.dev/evalkit/agents/history"
	"chainguard.dev/evalkit/agents/judge"
	"chainguard.dev/evalkit/agents/metrics"
	"chainguard.dev/evalkit/agents/runner"
	"github.com/chainguard-dev/clog"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"google.golang.org/genai"
)

type config struct {
	APIKey string `env:"GOOGLE_API_KEY"`

	JudgeModel       string  `env:"JUDGE_MODEL,default=gemini-2.5-flash"`
	JudgeTemperature float32 `env:"JUDGE_TEMPERATURE,default=0.5"`

	GeneratorProvider    string  `env:"GENERATOR_PROVIDER,default=gemini"`
	GeneratorModel       string  `env:"GENERATOR_MODEL,default=gemini-2.5-flash"`
	GeneratorTemperature float32 `env:"GENERATOR_TEMPERATURE,default=0.5"`

	HistoryFile    string        `env:"EVAL_HISTORY_FILE,default=evaluations.csv"`
	RateLimitPause time.Duration `env:"RATE_LIMIT_PAUSE,default=1s"`
}

// loadConfig reads .env when present, then the process environment.
func loadConfig(ctx context.Context, dotenv string) (*config, error) {
	if err := godotenv.Load(dotenv); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", dotenv, err)
		}
		clog.FromContext(ctx).With("path", dotenv).Debug("No .env file, using process environment")
	}

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("processing config: %w", err)
	}
	return &cfg, nil
}

func (c *config) validate() error {
	if c.JudgeTemperature < 0 || c.JudgeTemperature > 1 {
		return fmt.Errorf("JUDGE_TEMPERATURE must be between 0.0 and 1.0, got %g", c.JudgeTemperature)
	}
	if c.GeneratorTemperature < 0 || c.GeneratorTemperature > 1 {
		return fmt.Errorf("GENERATOR_TEMPERATURE must be between 0.0 and 1.0, got %g", c.GeneratorTemperature)
	}
	if c.RateLimitPause < 0 {
		return fmt.Errorf("RATE_LIMIT_PAUSE cannot be negative, got %v", c.RateLimitPause)
	}
	return nil
}

func (c *config) store() *history.Store {
	return history.New(c.HistoryFile)
}

// newRunner wires the Gemini backend into a generator, a judge and the history store.
func (c *config) newRunner(ctx context.Context) (*runner.Runner, error) {
	if c.APIKey == "" {
		return nil, errors.New("GOOGLE_API_KEY is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	m := metrics.NewGenAI("chainguard.ai.evalkit")
	b, err := googlebackend.New(client, googlebackend.WithMetrics(m))
	if err != nil {
		return nil, fmt.Errorf("creating backend: %w", err)
	}

	gen, err := generator.New(
		generator.WithBackend(generator.Gemini, b),
		generator.WithMetrics(m),
	)
	if err != nil {
		return nil, fmt.Errorf("creating generator: %w", err)
	}

	j, err := judge.New(b,
		judge.WithModel(c.JudgeModel),
		judge.WithTemperature(c.JudgeTemperature),
		judge.WithMetrics(m),
	)
	if err != nil {
		return nil, fmt.Errorf("creating judge: %w", err)
	}

	return runner.New(gen, j, c.store(),
		runner.WithGenerator(generator.Provider(c.GeneratorProvider), c.GeneratorModel, c.GeneratorTemperature),
		runner.WithJudgeModel(c.JudgeModel),
		runner.WithPause(c.RateLimitPause),
	)
}

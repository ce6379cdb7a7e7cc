// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/tenderfeed"
	"github.com/poiesic/tenderfeed/ai"
	"github.com/poiesic/tenderfeed/ai/openai"
	"github.com/urfave/cli/v2"
)

// newProvider builds the AI provider used by every command.
var newProvider = openai.NewProvider

func main() {
	if err := loadEnvFile(".env"); err != nil {
		log.Fatal(err)
	}
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadEnvFile loads variables from path without overriding ones already set.
// A missing file is not an error.
func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func newApp() *cli.App {
	defaults := ai.DefaultConfig()

	return &cli.App{
		Name:  "tenderfeed",
		Usage: "Personalized tender recommendations for company profiles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"TENDERFEED_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:     "db",
				Aliases:  []string{"d"},
				Usage:    "Path to BadgerDB database directory",
				EnvVars:  []string{"TENDERFEED_DB"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "embedding-host",
				Usage:   "Embedding service host URL",
				Value:   defaults.EmbeddingHost,
				EnvVars: []string{"TENDERFEED_EMBEDDING_HOST"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model name",
				Value:   defaults.EmbeddingModel,
				EnvVars: []string{"TENDERFEED_EMBEDDING_MODEL"},
			},
			&cli.IntFlag{
				Name:    "embedding-dimensions",
				Usage:   "Embedding vector dimensions",
				Value:   defaults.EmbeddingDimensions,
				EnvVars: []string{"TENDERFEED_EMBEDDING_DIMENSIONS"},
			},
			&cli.StringFlag{
				Name:    "tagger-host",
				Usage:   "Keyword tagger host URL (defaults to embedding-host)",
				EnvVars: []string{"TENDERFEED_TAGGER_HOST"},
			},
			&cli.StringFlag{
				Name:    "tagger-model",
				Usage:   "Keyword tagger model name",
				Value:   defaults.TaggerModel,
				EnvVars: []string{"TENDERFEED_TAGGER_MODEL"},
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "API key for the AI services",
				EnvVars: []string{"TENDERFEED_API_KEY", "OPENAI_API_KEY"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "seed",
				Usage:     "Load profiles and tenders from a YAML fixture file and embed them",
				ArgsUsage: "FILE",
				Action:    seedCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "tag",
						Usage: "Extract keyword tags for tenders that have none",
					},
				},
			},
			{
				Name:   "recommend",
				Usage:  "Show recommendations for a profile",
				Action: recommendCommand,
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:     "profile",
						Aliases:  []string{"p"},
						Usage:    "Profile ID",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of recommendations (0 uses the default)",
					},
					&cli.Float64Flag{
						Name:  "min-score",
						Usage: "Minimum score between 0 and 100 (defaults to the profile's threshold)",
					},
					&cli.IntFlag{
						Name:  "days-ahead",
						Usage: "Only consider tenders closing within this many days (0 uses the default)",
					},
				},
			},
			{
				Name:   "similar",
				Usage:  "Show tenders similar to a tender",
				Action: similarCommand,
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:     "tender",
						Aliases:  []string{"t"},
						Usage:    "Tender ID",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of similar tenders (0 uses the default)",
					},
				},
			},
			{
				Name:   "feedback",
				Usage:  "Record a user interaction with a tender",
				Action: feedbackCommand,
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "User ID",
						Required: true,
					},
					&cli.Uint64Flag{
						Name:     "tender",
						Aliases:  []string{"t"},
						Usage:    "Tender ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "type",
						Usage:    "Interaction type (view, save, apply, dismiss, rate_positive, rate_negative) or feedback (relevant, not_relevant, applied, saved, dismissed)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "reason",
						Usage: "Optional free-text reason",
					},
					&cli.Float64Flag{
						Name:  "score",
						Usage: "Match score shown to the user when the interaction happened",
					},
				},
			},
			{
				Name:   "undismiss",
				Usage:  "Let a dismissed tender be recommended again",
				Action: undismissCommand,
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "User ID",
						Required: true,
					},
					&cli.Uint64Flag{
						Name:     "tender",
						Aliases:  []string{"t"},
						Usage:    "Tender ID",
						Required: true,
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Regenerate embeddings of all tenders or profiles",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Entity kind to reembed (tender or profile)",
						Value: "tender",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of entities to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N entities",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Number of entities embedded in parallel",
						Value: 4,
					},
				},
			},
			{
				Name:   "sweep",
				Usage:  "Expire tenders whose deadline has passed",
				Action: sweepCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "daemon",
						Usage: "Keep running and sweep once a day",
					},
					&cli.StringFlag{
						Name:  "at",
						Usage: "UTC time of day for daemon sweeps (HH:MM)",
						Value: "00:05",
					},
				},
			},
			{
				Name:   "catalog",
				Usage:  "List the known sectors and regions",
				Action: catalogCommand,
			},
		},
	}
}

// openEngine opens the engine configured by the global flags.
func openEngine(c *cli.Context, opts ...tenderfeed.EngineOption) (*tenderfeed.Engine, error) {
	taggerHost := c.String("tagger-host")
	if taggerHost == "" {
		taggerHost = c.String("embedding-host")
	}
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithEmbeddingDimensions(c.Int("embedding-dimensions")),
		ai.WithTaggerHost(taggerHost),
		ai.WithTaggerModel(c.String("tagger-model")),
		ai.WithAPIKey(c.String("api-key")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	provider, err := newProvider(aiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI provider: %w", err)
	}

	opts = append([]tenderfeed.EngineOption{
		tenderfeed.WithProvider(provider),
		tenderfeed.WithLogger(slog.Default()),
	}, opts...)
	engine, err := tenderfeed.NewEngine(c.String("db"), opts...)
	if err != nil {
		provider.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return engine, nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

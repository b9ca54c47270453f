// Copyright 2025 Ripplica Authors
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
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/ripplica/ripplica"
	"github.com/ripplica/ripplica/ai"
	"github.com/ripplica/ripplica/cache"
	"github.com/ripplica/ripplica/core"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "ripplica",
		Usage: "Query answering engine with a semantic similarity cache",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before:   setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "query",
				Usage:     "Answer a query, serving from the cache when possible",
				ArgsUsage: "<query text>",
				Action:    queryCommand,
				Flags: append(engineFlags(),
					&cli.BoolFlag{
						Name:  "watch",
						Usage: "Print pipeline step events to stderr as they happen",
					},
				),
			},
			{
				Name:      "classify",
				Usage:     "Classify a query without answering it",
				ArgsUsage: "<query text>",
				Action:    classifyCommand,
				Flags:     engineFlags(),
			},
			{
				Name:  "cache",
				Usage: "Inspect and manage the similarity cache",
				Subcommands: []*cli.Command{
					{
						Name:   "stats",
						Usage:  "Show entry count and stored queries",
						Action: cacheStatsCommand,
						Flags:  engineFlags(),
					},
					{
						Name:   "clear",
						Usage:  "Remove every cached entry",
						Action: cacheClearCommand,
						Flags:  engineFlags(),
					},
					{
						Name:      "add",
						Usage:     "Store a query and summary directly",
						ArgsUsage: "<query text>",
						Action:    cacheAddCommand,
						Flags: append(engineFlags(),
							&cli.StringFlag{
								Name:     "summary",
								Usage:    "Summary text to store",
								Required: true,
							},
						),
					},
					{
						Name:      "check",
						Usage:     "Check whether a query would hit the cache",
						ArgsUsage: "<query text>",
						Action:    cacheCheckCommand,
						Flags: append(engineFlags(),
							&cli.Float64Flag{
								Name:  "threshold",
								Usage: "Hit threshold override",
								Value: -1,
							},
						),
					},
					{
						Name:      "similar",
						Usage:     "List cached queries similar to the given one",
						ArgsUsage: "<query text>",
						Action:    cacheSimilarCommand,
						Flags: append(engineFlags(),
							&cli.IntFlag{
								Name:  "top-k",
								Usage: "Maximum matches to list (0 = all)",
								Value: 5,
							},
							&cli.Float64Flag{
								Name:  "threshold",
								Usage: "Minimum combined score",
								Value: 0,
							},
						),
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB database directory",
			Value:   defaultDBPath(),
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "chat-host",
			Usage: "Chat completion service host URL (defaults to embedding-host)",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "judge-model",
			Usage: "Model used for query validity judgements",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:  "summary-model",
			Usage: "Model used for extraction and summarization",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for the model hosts",
			EnvVars: []string{"RIPPLICA_API_KEY"},
		},
		&cli.Float64Flag{
			Name:  "hit-threshold",
			Usage: "Combined similarity score treated as a cache hit",
			Value: cache.DefaultThreshold,
		},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ripplica"
	}
	return home + "/.ripplica/db"
}

func openEngine(c *cli.Context) (*ripplica.Engine, error) {
	configOpts := []ai.ConfigOption{
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithJudgeModel(c.String("judge-model")),
		ai.WithSummaryModel(c.String("summary-model")),
	}
	if host := c.String("chat-host"); host != "" {
		configOpts = append(configOpts, ai.WithChatHost(host))
	} else {
		configOpts = append(configOpts, ai.WithChatHost(c.String("embedding-host")))
	}
	if key := c.String("api-key"); key != "" {
		configOpts = append(configOpts, ai.WithAPIKey(key))
	}

	return ripplica.NewEngine(c.String("db"),
		ripplica.WithAIConfig(ai.NewConfig(configOpts...)),
		ripplica.WithCacheOptions(cache.WithThreshold(c.Float64("hit-threshold"))),
	)
}

func queryArg(c *cli.Context) (string, error) {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return "", fmt.Errorf("%w: query text is required", core.ErrInvalidQuery)
	}
	return query, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func queryCommand(c *cli.Context) error {
	query, err := queryArg(c)
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	runID := engine.NewRun(query)

	var wg sync.WaitGroup
	if c.Bool("watch") {
		events, cancel := engine.Events().Subscribe(runID)
		defer cancel()

		wg.Add(1)
		go func() {
			defer wg.Done()
			for ev := range events {
				if ev.Detail != "" {
					fmt.Fprintf(os.Stderr, "[%s] %s\n", ev.Step, ev.Detail)
				} else {
					fmt.Fprintf(os.Stderr, "[%s]\n", ev.Step)
				}
			}
		}()
	}

	response, err := engine.Run(c.Context, runID, query)
	wg.Wait()
	if err != nil {
		return err
	}
	return printJSON(response)
}

func classifyCommand(c *cli.Context) error {
	query, err := queryArg(c)
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	return printJSON(engine.Classify(c.Context, query))
}

func cacheStatsCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	stats, err := engine.Cache().Stats(c.Context)
	if err != nil {
		return err
	}

	fmt.Printf("Entries: %d\n", stats.Count)
	for _, query := range stats.Queries {
		fmt.Printf("  %s\n", query)
	}
	return nil
}

func cacheClearCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.Cache().Clear(c.Context); err != nil {
		return err
	}
	fmt.Println("Cache cleared")
	return nil
}

func cacheAddCommand(c *cli.Context) error {
	query, err := queryArg(c)
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	entry, err := engine.Cache().Add(c.Context, query, c.String("summary"))
	if err != nil {
		return err
	}
	fmt.Printf("Stored entry %d\n", entry.Id)
	return nil
}

func cacheCheckCommand(c *cli.Context) error {
	query, err := queryArg(c)
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	match, err := engine.Cache().CheckHit(c.Context, query, c.Float64("threshold"))
	if err != nil {
		return err
	}
	if match == nil {
		fmt.Println("miss")
		return nil
	}

	fmt.Printf("hit: %q (combined %.3f, semantic %.3f, lexical %.3f)\n",
		match.CachedQuery, match.Combined, match.Semantic, match.Lexical)
	return nil
}

func cacheSimilarCommand(c *cli.Context) error {
	query, err := queryArg(c)
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	matches, err := engine.Cache().FindSimilar(c.Context, query, c.Int("top-k"), c.Float64("threshold"))
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Println("no similar queries")
		return nil
	}

	for _, match := range matches {
		fmt.Printf("%.3f  %s\n", match.Combined, match.CachedQuery)
	}
	return nil
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

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

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
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/rankit"
	"github.com/poiesic/rankit/ai"
	"github.com/poiesic/rankit/core"
	"github.com/poiesic/rankit/rank"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "rankit",
		Usage:  "Rank activity catalogues with exact-match, BM25, or embedding similarity",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "rank",
				Usage:     "Rank catalogue documents against a query",
				ArgsUsage: "<query>",
				Action:    rankCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "strategy",
						Aliases: []string{"s"},
						Usage:   "Ranking strategy: exact, bm25, or embedding",
						Value:   "bm25",
					},
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results (0 = all)",
						Value:   5,
					},
					&cli.BoolFlag{
						Name:  "drop-zero",
						Usage: "Drop zero-score documents from lexical results",
					},
					&cli.BoolFlag{
						Name:  "trace",
						Usage: "Print ranking stages as they happen",
					},
				}, dataFlags()...),
			},
			{
				Name:      "compare",
				Usage:     "Run all three strategies on one query side by side",
				ArgsUsage: "<query>",
				Action:    compareCommand,
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results per strategy",
						Value:   3,
					},
				}, dataFlags()...),
			},
			{
				Name:   "stats",
				Usage:  "Show catalogue statistics",
				Action: statsCommand,
				Flags:  dataFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// dataFlags are shared by every command that opens a catalogue.
func dataFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Usage:   "Path to the activities CSV file (omit to use the built-in demo corpus)",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "cache",
			Usage: "Directory for the persistent vector cache (omit to disable)",
		},
	}
}

// openEngine builds an engine from the shared flags, falling back to
// the built-in demo corpus when no dataset is given.
func openEngine(c *cli.Context, extra ...rankit.EngineOption) (*rankit.Engine, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)

	opts := append([]rankit.EngineOption{rankit.WithAIConfig(aiConfig)}, extra...)
	if cachePath := c.String("cache"); cachePath != "" {
		opts = append(opts, rankit.WithVectorCachePath(cachePath))
	}

	if dataPath := c.String("data"); dataPath != "" {
		return rankit.Open(dataPath, opts...)
	}

	store, err := demoStore()
	if err != nil {
		return nil, err
	}
	return rankit.NewEngine(store, opts...)
}

func rankCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query argument is required")
	}

	strategy, err := rank.ParseStrategy(c.String("strategy"))
	if err != nil {
		return err
	}

	var extra []rankit.EngineOption
	if c.Bool("drop-zero") {
		extra = append(extra, rankit.WithZeroScoreFilter())
	}

	engine, err := openEngine(c, extra...)
	if err != nil {
		return err
	}
	defer engine.Close()

	var monitor rank.RankMonitor
	if c.Bool("trace") {
		monitor = &traceMonitor{out: os.Stderr}
	}

	results, err := engine.Ranker().RankWithMonitor(
		context.Background(), query, strategy, c.Int("top"), monitor)
	if err != nil {
		if errors.Is(err, core.ErrEncoderUnavailable) {
			return fmt.Errorf("%w (try --strategy bm25 or exact)", err)
		}
		return err
	}

	fmt.Printf("Query: %q (%s)\n", query, strategy)
	printResults(results)
	return nil
}

func compareCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query argument is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	comparison, err := engine.Compare(context.Background(), query, c.Int("top"))
	if err != nil {
		return err
	}

	fmt.Printf("Query: %q\n", comparison.Query)

	fmt.Println("\n== Exact keyword match ==")
	printResults(comparison.Exact)

	fmt.Println("\n== BM25 ==")
	printResults(comparison.BM25)

	fmt.Println("\n== Embedding similarity ==")
	if comparison.EmbeddingErr != nil {
		fmt.Printf("  (unavailable: %v)\n", comparison.EmbeddingErr)
	} else {
		printResults(comparison.Embedding)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	stats := engine.Store().Stats()
	fmt.Printf("Documents: %d\n", stats.Documents)
	fmt.Printf("Cities:    %d (%s)\n", len(stats.Cities), strings.Join(stats.Cities, ", "))
	fmt.Printf("Themes:    %d (%s)\n", len(stats.Themes), strings.Join(stats.Themes, ", "))
	if stats.HasCosts {
		fmt.Printf("Cost:      $%.0f-$%.0f\n", stats.MinCost, stats.MaxCost)
	}
	return nil
}

func printResults(results []core.ScoreEntry) {
	if len(results) == 0 {
		fmt.Println("  (no results)")
		return
	}
	for i, entry := range results {
		fmt.Printf("  %d: %8.4f | %s\n", i+1, entry.Score, entry.Document.Text)
	}
}

// traceMonitor prints ranking stages for the --trace flag.
type traceMonitor struct {
	out *os.File
}

var _ rank.RankMonitor = (*traceMonitor)(nil)

func (m *traceMonitor) Start(query string, strategy rank.Strategy) {
	fmt.Fprintf(m.out, "-- ranking %q with %s\n", query, strategy)
}

func (m *traceMonitor) AfterTokenize(tokens []string) {
	fmt.Fprintf(m.out, "-- query tokens: %v\n", tokens)
}

func (m *traceMonitor) AfterScore(entries []core.ScoreEntry) {
	fmt.Fprintf(m.out, "-- scored %d documents\n", len(entries))
}

func (m *traceMonitor) Finish(results []core.ScoreEntry) {
	fmt.Fprintf(m.out, "-- returning %d results\n", len(results))
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

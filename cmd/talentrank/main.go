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
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/poiesic/talentrank"
	"github.com/poiesic/talentrank/config"
	"github.com/poiesic/talentrank/core"
	"github.com/poiesic/talentrank/ranking"
	"github.com/poiesic/talentrank/server"
	"github.com/poiesic/talentrank/tabular"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "talentrank",
		Usage: "Rank employees from a spreadsheet against a free-text role query",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Set logging format (text, json)",
				Value: "text",
			},
			&cli.StringFlag{
				Name:  "provider",
				Usage: "Embedding provider (openai, hash)",
			},
			&cli.StringFlag{
				Name:  "embedding-host",
				Usage: "Embedding service host URL",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
			},
			&cli.IntFlag{
				Name:  "dimension",
				Usage: "Vector size for the hash provider",
			},
			&cli.StringFlag{
				Name:  "cache-dir",
				Usage: "Directory for the persistent embedding cache (in memory if unset)",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Disable the embedding cache",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the dataset upload and search HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Listen address",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Load a spreadsheet and run a single query against it",
				ArgsUsage: "<file.xlsx|file.csv|file.tsv>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Free-text description of the role",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:    "skill",
						Aliases: []string{"s"},
						Usage:   "Required skill (repeatable or comma separated)",
					},
					&cli.IntFlag{
						Name:  "age-min",
						Usage: "Minimum age, inclusive",
						Value: server.DefaultAgeMin,
					},
					&cli.IntFlag{
						Name:  "age-max",
						Usage: "Maximum age, inclusive",
						Value: server.DefaultAgeMax,
					},
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of candidates to return",
						Value:   server.DefaultTopK,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print results as JSON",
					},
					&cli.IntFlag{
						Name:  "progress",
						Usage: "Report embedding progress on stderr every N rows (0 disables)",
					},
				},
			},
		},
	}
}

// loadConfig reads the --config file and applies flag overrides. The result
// is cached on the app so the Before hook and the command share it.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]interface{})
	}
	if cfg, ok := c.App.Metadata[configKey].(*config.Config); ok {
		return cfg, nil
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Logging.Format = c.String("log-format")
	}
	if c.IsSet("provider") {
		cfg.Embedding.Provider = c.String("provider")
	}
	if c.IsSet("embedding-host") {
		cfg.Embedding.Host = c.String("embedding-host")
	}
	if c.IsSet("embedding-model") {
		cfg.Embedding.Model = c.String("embedding-model")
	}
	if c.IsSet("dimension") {
		cfg.Embedding.Dimension = c.Int("dimension")
	}
	if c.IsSet("cache-dir") {
		cfg.Cache.Dir = c.String("cache-dir")
	}
	if c.Bool("no-cache") {
		cfg.Cache.Enabled = false
	}

	c.App.Metadata[configKey] = cfg
	return cfg, nil
}

func serveCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("addr") {
		cfg.Server.Addr = c.String("addr")
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := talentrank.NewService(
		talentrank.WithConfig(cfg),
		talentrank.WithLogger(slog.Default()),
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	defer svc.Close()

	srv, err := server.New(svc,
		server.WithMaxUploadBytes(cfg.Server.MaxUploadBytes),
		server.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		server.WithLogger(slog.Default()),
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.ErrWriter, "Embedding provider: %s\n", cfg.Embedding.Provider)
	fmt.Fprintf(c.App.ErrWriter, "Embedding model: %s\n", cfg.Embedding.Model)
	fmt.Fprintf(c.App.ErrWriter, "Listening on: %s\n", cfg.Server.Addr)

	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

func searchCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("a dataset file is required")
	}

	q := ranking.Query{
		Text:   c.String("query"),
		Skills: c.StringSlice("skill"),
		AgeMin: c.Int("age-min"),
		AgeMax: c.Int("age-max"),
		TopK:   c.Int("top-k"),
	}
	if err := checkBounds(q); err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	var engineOpts []ranking.Option
	if n := c.Int("progress"); n > 0 {
		engineOpts = append(engineOpts, ranking.WithProgress(c.App.ErrWriter, n))
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := talentrank.NewService(
		talentrank.WithConfig(cfg),
		talentrank.WithLogger(slog.Default()),
		talentrank.WithEngineOptions(engineOpts...),
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	defer svc.Close()

	table, err := tabular.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	id, err := svc.LoadDataset(ctx, table)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	results, err := svc.Search(ctx, id, q)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if c.Bool("json") {
		return writeJSON(c.App.Writer, results)
	}
	return writeTable(c.App.Writer, results)
}

func checkBounds(q ranking.Query) error {
	if q.AgeMin < server.MinAge || q.AgeMin > server.MaxAge {
		return fmt.Errorf("age-min must be between %d and %d", server.MinAge, server.MaxAge)
	}
	if q.AgeMax < server.MinAge || q.AgeMax > server.MaxAge {
		return fmt.Errorf("age-max must be between %d and %d", server.MinAge, server.MaxAge)
	}
	if q.TopK < server.MinTopK || q.TopK > server.MaxTopK {
		return fmt.Errorf("top-k must be between %d and %d", server.MinTopK, server.MaxTopK)
	}
	return nil
}

func writeJSON(w io.Writer, results []core.Candidate) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string][]core.Candidate{"results": results})
}

func writeTable(w io.Writer, results []core.Candidate) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No matching candidates")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tAGE\tSCORE\tSKILLS\tJUSTIFICATION")
	for i, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.3f\t%s\t%s\n",
			i+1, r.Name, r.Age, r.Score, strings.Join(r.Skills, ", "), r.Justification)
	}
	return tw.Flush()
}

func setupLogger(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	levelStr := strings.ToLower(cfg.Logging.Level)
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

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(cfg.Logging.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "text", "":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("invalid log format %q: must be text or json", cfg.Logging.Format)
	}
	slog.SetDefault(slog.New(handler))

	return nil
}

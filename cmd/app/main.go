package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/castellan/internal"
	pkgconfig "github.com/starford/castellan/pkg/config"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	path := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if _, err := os.Stat(path); err != nil {
		if cmd.IsSet("config") {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		// No config file: run on defaults.
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("default config invalid: %w", err)
		}
		return cfg, nil
	}

	if err := pkgconfig.Load(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func newPipeline(cmd *cli.Command) (*internal.Pipeline, *slog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger := internal.NewLogger(cfg)
	pipe, err := internal.NewPipeline(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return pipe, logger, nil
}

func runGrow(ctx context.Context, cmd *cli.Command) error {
	pipe, logger, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	added, err := pipe.Grow(int(cmd.Int("count")))
	if err != nil {
		return err
	}
	if added > 0 {
		if err := pipe.Enhance(); err != nil {
			return err
		}
		if err := pipe.Render(); err != nil {
			return err
		}
	}
	logger.Info("grow complete", slog.Int("added", added))
	return nil
}

func runEnhance(ctx context.Context, cmd *cli.Command) error {
	pipe, _, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	return pipe.Enhance()
}

func runScore(ctx context.Context, cmd *cli.Command) error {
	pipe, logger, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	castles := pipe.Score()

	sum := 0
	for _, c := range castles {
		score := 0
		if c.Metadata != nil {
			score = c.Metadata.CompletenessScore
		}
		sum += score
		logger.Info("score", slog.String("id", c.ID), slog.Int("completeness", score))
	}
	if len(castles) > 0 {
		logger.Info("score complete",
			slog.Int("castles", len(castles)),
			slog.Int("average", sum/len(castles)))
	}
	return nil
}

func runExtract(ctx context.Context, cmd *cli.Command) error {
	pipe, logger, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	n, err := pipe.Extract(ctx, cmd.String("source"))
	if err != nil {
		return err
	}
	logger.Info("extract complete", slog.Int("records", n),
		slog.String("dataset", internal.ExtractedDataset))
	return nil
}

func runRender(ctx context.Context, cmd *cli.Command) error {
	pipe, _, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	return pipe.Render()
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg), internal.WithLogger(internal.NewLogger(cfg))); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.RunMCP(cfg)
}

func main() {
	cmd := &cli.Command{
		Name:  "castellan",
		Usage: "Self-expanding castle encyclopedia with enhancement merging, completeness scoring, and static site output",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "grow",
				Usage:  "Add castles from the candidate registry, then enhance and re-render",
				Action: runGrow,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Usage:   "Maximum number of castles to add",
						Value:   1,
					},
				},
			},
			{
				Name:   "enhance",
				Usage:  "Merge enhancement datasets into the collection and rescore",
				Action: runEnhance,
			},
			{
				Name:   "score",
				Usage:  "Recompute completeness scores and print a report",
				Action: runScore,
			},
			{
				Name:   "extract",
				Usage:  "Fetch enrichment data from reference APIs into an enhancement dataset",
				Action: runExtract,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "source",
						Usage: "Reference source: wikipedia, wikidata, or all",
						Value: "all",
					},
				},
			},
			{
				Name:   "render",
				Usage:  "Generate the static site from the collection",
				Action: runRender,
			},
			{
				Name:   "serve",
				Usage:  "Serve the site and JSON API with live reload",
				Action: runServe,
			},
			{
				Name:   "mcp",
				Usage:  "Expose the collection over the Model Context Protocol on stdio",
				Action: runMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

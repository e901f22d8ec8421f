// Command mtree-replay replays scenario fixtures against an M-tree and
// cross-checks every query with a linear scan.
//
// Usage:
//
//	mtree-replay [flags] [fixture globs...]
//
// Settings are read from MTREE_* environment variables, optionally seeded
// from a dotenv file, and flags take precedence.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/hupe1980/mtree"
	"github.com/hupe1980/mtree/promcollector"
	"github.com/hupe1980/mtree/scenario"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "mtree-replay:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		return err
	}
	if err := ValidateConfig(cfg); err != nil {
		return err
	}

	handler := newHandler(cfg, stderr)
	logger := slog.New(handler)

	fixtures, err := collectFixtures(cfg)
	if err != nil {
		return err
	}
	logger.Info("replaying fixtures",
		"fixtures", len(fixtures),
		"max_capacity", cfg.MaxCapacity,
		"min_capacity", cfg.MinCapacity,
		"promotion", cfg.Promotion,
		"partition", cfg.Partition,
		"parallelism", cfg.Parallelism,
	)

	reg := prometheus.NewRegistry()
	collector := promcollector.New(reg, "mtree")

	reports := make([]scenario.Report, len(fixtures))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallelism)

	for i, fx := range fixtures {
		g.Go(func() error {
			policy, err := scenario.PolicyByName(cfg.Promotion, cfg.Partition, cfg.Seed+uint64(i))
			if err != nil {
				return err
			}

			report, err := scenario.Replay(gctx, fx, scenario.Options{
				MaxCapacity: cfg.MaxCapacity,
				MinCapacity: cfg.MinCapacity,
				Policy:      policy,
				Logger:      mtree.NewLogger(handler).WithTree(fx.Name),
				Metrics:     collector,
			})
			if err != nil {
				return fmt.Errorf("fixture %s: %w", fx.Name, err)
			}

			logger.Debug("fixture replayed", "fixture", fx.Name, "duration", report.Duration)
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range reports {
		fmt.Fprintf(stdout, "%-24s actions=%-5d queries=%-5d results=%-7d size=%-5d height=%-3d %v\n",
			r.Fixture, r.Actions, r.Queries, r.Results, r.Size, r.Height, r.Duration)
	}

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		logger.Info("metrics written", "path", cfg.MetricsFile)
	}

	logger.Info("all fixtures passed", "fixtures", len(fixtures))
	return nil
}

// parseConfig loads the environment configuration and applies the flags that
// were set explicitly. Positional arguments are fixture globs.
func parseConfig(args []string, stderr io.Writer) (*Config, error) {
	fs := flag.NewFlagSet("mtree-replay", flag.ContinueOnError)
	fs.SetOutput(stderr)

	envFile := fs.String("env-file", ".env", "dotenv file to load if present")
	maxCapacity := fs.Int("max-capacity", 0, "maximum entries per node")
	minCapacity := fs.Int("min-capacity", 0, "minimum entries per non-root node (negative: max/2)")
	promotion := fs.String("promotion", "", "promotion: minmax, random or maxdistance")
	partition := fs.String("partition", "", "partition: balanced or hyperplane")
	seed := fs.Uint64("seed", 0, "seed for random promotion and generated fixtures")
	parallelism := fs.Int("parallelism", 0, "fixtures replayed concurrently")
	generate := fs.Int("generate", 0, "number of random fixtures to add")
	generateActions := fs.Int("generate-actions", 0, "actions per generated fixture")
	dimensions := fs.Int("dimensions", 0, "dimensions of generated fixtures")
	metricsFile := fs.String("metrics-file", "", "write Prometheus metrics to this textfile")
	logFormat := fs.String("log-format", "", "log format: json or text")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(*envFile)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max-capacity":
			cfg.MaxCapacity = *maxCapacity
		case "min-capacity":
			cfg.MinCapacity = *minCapacity
		case "promotion":
			cfg.Promotion = *promotion
		case "partition":
			cfg.Partition = *partition
		case "seed":
			cfg.Seed = *seed
		case "parallelism":
			cfg.Parallelism = *parallelism
		case "generate":
			cfg.Generate = *generate
		case "generate-actions":
			cfg.GenerateActions = *generateActions
		case "dimensions":
			cfg.Dimensions = *dimensions
		case "metrics-file":
			cfg.MetricsFile = *metricsFile
		case "log-format":
			cfg.LogFormat = *logFormat
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	cfg.Fixtures = append(cfg.Fixtures, fs.Args()...)

	return cfg, nil
}

func newHandler(cfg *Config, w io.Writer) slog.Handler {
	var level slog.Level
	_ = level.UnmarshalText([]byte(cfg.LogLevel))

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// collectFixtures expands the fixture globs and appends generated fixtures.
func collectFixtures(cfg *Config) ([]*scenario.Fixture, error) {
	var paths []string
	for _, pattern := range cfg.Fixtures {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad fixture pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("fixture pattern %q matches no files", pattern)
		}
		paths = append(paths, matches...)
	}
	slices.Sort(paths)
	paths = slices.Compact(paths)

	fixtures := make([]*scenario.Fixture, 0, len(paths)+cfg.Generate)
	for _, path := range paths {
		fx, err := scenario.Load(path)
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, fx)
	}

	gen := scenario.DefaultGenerateConfig()
	gen.Dimensions = cfg.Dimensions
	gen.Actions = cfg.GenerateActions
	for i := range cfg.Generate {
		r := rand.New(rand.NewPCG(cfg.Seed, uint64(i)))
		fixtures = append(fixtures, scenario.Generate(fmt.Sprintf("generated-%03d", i), gen, r))
	}
	return fixtures, nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/dd0wney/cluso-polarization/pkg/config"
	"github.com/dd0wney/cluso-polarization/pkg/logging"
	"github.com/dd0wney/cluso-polarization/pkg/metrics"
	"github.com/dd0wney/cluso-polarization/pkg/runner"
)

// clusterList collects -clusters, given repeated or comma separated
type clusterList []int

func (c *clusterList) String() string {
	parts := make([]string, len(*c))
	for i, id := range *c {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func (c *clusterList) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("invalid community id %q", part)
		}
		*c = append(*c, id)
	}
	return nil
}

func main() {
	configFile := flag.String("config", "", "YAML or TOML configuration file")
	dataDir := flag.String("path", ".", "Directory holding nodes.csv and edges.csv")
	logDir := flag.String("log-dir", "", "Directory for polarization.log (default stdout)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error")
	var clusters clusterList
	flag.Var(&clusters, "clusters", "Community ids to compare (repeatable or comma separated)")
	workers := flag.Int("workers", 0, "Pairs analysed in parallel (default number of CPUs)")
	minFraction := flag.Float64("min-fraction", 0.05, "Minimum share of nodes a community needs to be kept")
	output := flag.String("output", config.DefaultOutputFile, "Pair polarization CSV, relative to -path")
	nodeScores := flag.String("node-scores", "", "Optional per-node polarization CSV, relative to -path")
	compress := flag.Bool("compress", false, "Snappy-compress written tables")
	renderTable := flag.Bool("table", false, "Print a summary table when done")
	metricsFile := flag.String("metrics-file", "", "Write Prometheus metrics in textfile format")
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		cfg = loaded
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		cfg.Log.Level = strings.ToLower(lvl)
	}

	// Explicit flags win over the file and the environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "path":
			cfg.DataDir = *dataDir
		case "log-dir":
			cfg.Log.Dir = *logDir
		case "log-level":
			cfg.Log.Level = *logLevel
		case "clusters":
			cfg.Communities = clusters
		case "workers":
			cfg.Workers = *workers
		case "min-fraction":
			cfg.MinCommunityFraction = *minFraction
		case "output":
			cfg.OutputFile = *output
		case "node-scores":
			cfg.NodeScoresFile = *nodeScores
		case "compress":
			cfg.Compress = *compress
		case "table":
			cfg.RenderTable = *renderTable
		case "metrics-file":
			cfg.MetricsFile = *metricsFile
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "polarization:", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger, logCloser, err := logging.Open(logging.Options{
		Dir:        cfg.Log.Dir,
		Level:      logging.ParseLevel(cfg.Log.Level),
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sinks, sinkCloser, err := runner.BuildSinks(ctx, cfg)
	if err != nil {
		logger.Error("failed to open result sinks", logging.Error(err))
		return err
	}
	defer func() {
		if err := sinkCloser.Close(); err != nil {
			logger.Warn("failed to close result sinks", logging.Error(err))
		}
	}()

	r := runner.New(cfg, logger, metrics.NewRegistry(),
		runner.WithSinks(sinks...),
		runner.WithConsole(os.Stdout),
	)
	logger.Info("polarization run starting",
		logging.RunID(r.RunID()),
		logging.Path(cfg.DataDir),
		logging.Any("communities", cfg.Communities),
		logging.Int("workers", cfg.Workers))

	if _, err := r.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("run interrupted")
		} else {
			logger.Error("run failed", logging.Error(err))
		}
		return err
	}
	return nil
}

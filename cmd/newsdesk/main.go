package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/newsdesk/pkg/aggregator"
	"github.com/umputun/newsdesk/pkg/breaking"
	"github.com/umputun/newsdesk/pkg/cache"
	"github.com/umputun/newsdesk/pkg/classify"
	"github.com/umputun/newsdesk/pkg/config"
	"github.com/umputun/newsdesk/pkg/dedup"
	"github.com/umputun/newsdesk/pkg/feed"
	"github.com/umputun/newsdesk/pkg/frontpage"
	"github.com/umputun/newsdesk/pkg/geo"
	"github.com/umputun/newsdesk/pkg/normalize"
	"github.com/umputun/newsdesk/pkg/repository"
	"github.com/umputun/newsdesk/pkg/scheduler"
	"github.com/umputun/newsdesk/pkg/scoring"
	"github.com/umputun/newsdesk/pkg/sentiment"
	"github.com/umputun/newsdesk/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"newsdesk.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	color.NoColor = color.NoColor || opts.NoColor
	SetupLog(opts.Debug)

	lgr.Printf("[INFO] starting newsdesk version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	lgr.Print("[INFO] shutdown complete")
}

// run wires all components and blocks until ctx is canceled or the server fails
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()
	if n, err := repos.FeedStatus.Forget(ctx, cfg.Sections); err != nil {
		lgr.Printf("[WARN] failed to drop unconfigured feeds from health log: %v", err)
	} else if n > 0 {
		lgr.Printf("[INFO] dropped %d unconfigured feeds from health log", n)
	}

	strategies, err := feed.NewStrategies(cfg.Fetch)
	if err != nil {
		return fmt.Errorf("failed to make fetch strategies: %w", err)
	}
	fetcher := feed.NewFetcher(cfg.Fetch.Timeout, strategies...)

	settings := cfg.Settings
	tuning := settings.Tuning
	detector := breaking.New(breaking.Config{
		Similarity: tuning.BreakingSimilarity,
		Window:     tuning.BreakingWindow,
		Retention:  tuning.BreakingRetention,
	})
	gazetteer := geo.New()
	sectionCache := cache.New(settings.CacheTTL)

	agg := aggregator.New(aggregator.Params{
		Sections:   cfg.Sections,
		Settings:   &settings,
		Fetcher:    fetcher,
		Recorder:   repos.FeedStatus,
		Normalizer: normalize.New(classify.New(), sentiment.New()),
		Scorer: scoring.New(scoring.Params{
			Settings:  &settings,
			Detector:  detector,
			Corpus:    scoring.NewNoveltyCorpus(0),
			Gazetteer: gazetteer,
		}),
		Clusterer:  dedup.New(tuning.ClusterSimilarity, tuning.ConsensusBoostPerSource),
		Composer:   frontpage.New(gazetteer),
		Cache:      sectionCache,
		MaxWorkers: cfg.Fetch.MaxWorkers,
	})
	lgr.Printf("[INFO] serving %d sections, %d fetch endpoints", len(cfg.Sections), len(strategies))

	sched := scheduler.NewScheduler(scheduler.Params{
		Refresher:       agg,
		Pruner:          detector,
		RefreshInterval: cfg.Fetch.RefreshInterval,
		PruneInterval:   cfg.Fetch.PruneInterval,
	})
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(cfg, server.Services{
		Aggregator: agg,
		Stories:    detector,
		Cache:      sectionCache,
		Endpoints:  fetcher,
		FeedStatus: repos.FeedStatus,
	}, revision, opts.Debug)

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	agg.Wait()
	return nil
}

// SetupLog configures lgr and the std logger, debug mode adds debug level, msec timestamps and caller info
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(os.Stdout), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError, lgr.CallerFunc}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}

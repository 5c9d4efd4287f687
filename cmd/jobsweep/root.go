package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jobsweep/jobsweep/internal/adapter"
	"github.com/jobsweep/jobsweep/internal/aggregator"
	"github.com/jobsweep/jobsweep/internal/config"
	"github.com/jobsweep/jobsweep/internal/filter"
	"github.com/jobsweep/jobsweep/internal/history"
	"github.com/jobsweep/jobsweep/internal/model"
	"github.com/jobsweep/jobsweep/internal/notifier"
	"github.com/jobsweep/jobsweep/internal/ratelimit"
	"github.com/jobsweep/jobsweep/internal/retry"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobsweep",
	Short: "Sweep job boards and deliver matches to Slack",
	Long:  "Jobsweep fetches postings from multiple job boards, filters them by role, location and recency, and posts the matches to a Slack channel in one threaded batch.",
	// Default to `run` so that `jobsweep` with no args performs a sweep.
	// This keeps cron entries that invoke the binary directly working.
	RunE: runSweep,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBSWEEP_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBSWEEP_CONFIG env var > "./config.yaml".
// A missing file at the implicit default path is not an error; the built-in
// defaults apply.
func loadConfig(path string) (*config.Config, error) {
	explicit := path != ""
	if path == "" {
		if env := os.Getenv("JOBSWEEP_CONFIG"); env != "" {
			path = env
			explicit = true
		} else {
			path = "config.yaml"
		}
	}

	cfg, err := config.Load(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func buildCriteria(cfg *config.Config) filter.Criteria {
	return filter.NewCriteria(
		cfg.Filters.RoleKeywords,
		cfg.Filters.LocationKeywords,
		cfg.Filters.ExperienceKeywords,
		cfg.Filters.Window,
	)
}

func toBoards(configs []config.BoardConfig) []adapter.Board {
	boards := make([]adapter.Board, 0, len(configs))
	for _, b := range configs {
		boards = append(boards, adapter.Board{Slug: b.Slug, Name: b.Name})
	}
	return boards
}

// buildAdapters assembles the enabled sources in a fixed order so the merged
// output is stable across runs. Every source is wrapped with the retry
// decorator.
func buildAdapters(cfg *config.Config, client *http.Client, logger *slog.Logger) []model.SourceAdapter {
	criteria := buildCriteria(cfg)
	limiter := ratelimit.NewLimiter(cfg.RateLimit.MinDelay)

	var sources []model.SourceAdapter
	if cfg.Sources.Remotive {
		sources = append(sources, adapter.NewRemotiveAdapter(criteria, client))
	}
	if cfg.Sources.ArbeitNow {
		sources = append(sources, adapter.NewArbeitNowAdapter(criteria, client))
	}
	if len(cfg.Sources.LeverBoards) > 0 {
		sources = append(sources, adapter.NewLeverAdapter(toBoards(cfg.Sources.LeverBoards), criteria, client, limiter, logger))
	}
	if len(cfg.Sources.GreenhouseBoards) > 0 {
		sources = append(sources, adapter.NewGreenhouseAdapter(toBoards(cfg.Sources.GreenhouseBoards), criteria, client, limiter, logger))
	}
	if len(cfg.Sources.LinkedInKeywords) > 0 {
		sources = append(sources, adapter.NewLinkedInAdapter(cfg.Sources.LinkedInKeywords, criteria, client, limiter, logger))
	}
	if cfg.Sources.WeWorkRemotely {
		sources = append(sources, adapter.NewWeWorkRemotelyAdapter(criteria, client))
	}

	wrapped := make([]model.SourceAdapter, 0, len(sources))
	for _, src := range sources {
		wrapped = append(wrapped, retry.Wrap(src, cfg.Retry.MaxRetries, cfg.Retry.BaseDelay, logger))
		logger.Debug("registered source", "source", src.Name())
	}
	return wrapped
}

func buildDeliverer(cfg *config.Config, client *http.Client, logger *slog.Logger) model.Deliverer {
	if cfg.Slack.Token != "" && cfg.Slack.Channel != "" {
		logger.Info("using slack delivery", "channel", cfg.Slack.Channel)
		return notifier.NewSlackDelivery(
			cfg.Slack.Token,
			cfg.Slack.Channel,
			client,
			cfg.Delivery.PageSize,
			cfg.Delivery.MaxJobs,
			cfg.Filters.Window,
			logger,
		)
	}
	logger.Info("slack not configured, logging matches instead")
	return notifier.NewLogDelivery(logger)
}

func openHistory(cfg *config.Config, logger *slog.Logger) history.Store {
	if cfg.History.Path == "" {
		return history.NopStore{}
	}
	store, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		logger.Warn("run history unavailable", "path", cfg.History.Path, "error", err)
		return history.NopStore{}
	}
	return store
}

func pageCount(delivered, pageSize int) int {
	if delivered == 0 || pageSize <= 0 {
		return 0
	}
	return (delivered + pageSize - 1) / pageSize
}

func summarizeSources(results []aggregator.SourceResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			parts = append(parts, r.Source+":error")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%d", r.Source, r.Count))
	}
	return strings.Join(parts, " ")
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jobsweep/jobsweep/internal/aggregator"
	"github.com/jobsweep/jobsweep/internal/config"
	"github.com/jobsweep/jobsweep/internal/history"
	"github.com/jobsweep/jobsweep/internal/model"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Perform one sweep and deliver the matches",
	Long:  "Fetches from every enabled source, filters, and delivers the merged batch. Exits when delivery completes.",
	RunE:  runSweep,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"role_keywords", len(cfg.Filters.RoleKeywords),
		"location_keywords", len(cfg.Filters.LocationKeywords),
		"window", cfg.Filters.Window.String(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := &http.Client{Timeout: cfg.HTTPTimeout}
	sources := buildAdapters(cfg, client, logger)
	if len(sources) == 0 {
		logger.Error("no sources enabled")
		os.Exit(1)
	}

	store := openHistory(cfg, logger)
	defer store.Close()

	deliverer := buildDeliverer(cfg, client, logger)
	return sweep(ctx, cfg, sources, deliverer, store, logger)
}

// sweep runs one aggregate-and-deliver pass. Partial failures, delivery
// included, are logged and recorded in run history but never change the
// process outcome: the sweep runs unattended from cron, where a nonzero exit
// over a transient Slack error would mask real misconfiguration.
func sweep(ctx context.Context, cfg *config.Config, sources []model.SourceAdapter, deliverer model.Deliverer, store history.Store, logger *slog.Logger) error {
	started := time.Now()
	jobs, results := aggregator.New(sources, logger).Collect(ctx)
	logger.Info("sweep complete", "sources", len(results), "matched", len(jobs))

	deliveryErr := deliverer.Deliver(ctx, jobs)

	delivered := len(jobs)
	if cfg.Delivery.MaxJobs > 0 && delivered > cfg.Delivery.MaxJobs {
		delivered = cfg.Delivery.MaxJobs
	}

	run := history.Run{
		StartedAt: started,
		Duration:  time.Since(started),
		TotalJobs: len(jobs),
		Pages:     pageCount(delivered, cfg.Delivery.PageSize),
		Sources:   summarizeSources(results),
	}
	if deliveryErr != nil {
		run.DeliveryError = deliveryErr.Error()
	}
	if err := store.Record(run); err != nil {
		logger.Warn("failed to record run", "error", err)
	}

	if deliveryErr != nil {
		logger.Error("delivery failed", "error", deliveryErr)
	}
	return nil
}

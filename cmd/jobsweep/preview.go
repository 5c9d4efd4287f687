package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jobsweep/jobsweep/internal/aggregator"
	"github.com/jobsweep/jobsweep/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Sweep and browse the matches in the terminal",
	Long:  "Performs a sweep like `run` but opens the matches in an interactive terminal browser instead of delivering them.",
	RunE:  runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := &http.Client{Timeout: cfg.HTTPTimeout}
	sources := buildAdapters(cfg, client, logger)
	if len(sources) == 0 {
		logger.Error("no sources enabled")
		os.Exit(1)
	}

	jobs, results := aggregator.New(sources, logger).Collect(ctx)
	logger.Info("sweep complete", "sources", len(results), "matched", len(jobs))

	return preview.Run(jobs)
}

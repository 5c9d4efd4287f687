package main

import (
	"context"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/jobsweep/jobsweep/internal/notifier"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Delivery subcommands",
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test message to the configured Slack channel",
	RunE:  runNotifyTest,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyTestCmd)
}

func runNotifyTest(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: cfg.HTTPTimeout}
	d := notifier.NewSlackDelivery(
		cfg.Slack.Token,
		cfg.Slack.Channel,
		client,
		cfg.Delivery.PageSize,
		cfg.Delivery.MaxJobs,
		cfg.Filters.Window,
		logger,
	)

	if err := d.SendTestMessage(context.Background()); err != nil {
		logger.Error("test message failed", "error", err)
		os.Exit(1)
	}
	logger.Info("test message sent successfully")
	return nil
}

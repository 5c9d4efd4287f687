package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jobsweep/jobsweep/internal/history"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent sweep history",
	Long:  "Lists recent sweeps recorded in the history database (history.path in config.yaml).",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 10, "number of runs to show")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.History.Path == "" {
		return fmt.Errorf("run history is disabled; set history.path in the config")
	}

	store, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	runs, err := store.Recent(runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	for _, r := range runs {
		status := "ok"
		if r.DeliveryError != "" {
			status = "delivery failed: " + r.DeliveryError
		}
		fmt.Printf("%s  jobs=%d pages=%d took=%s  [%s]  %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.TotalJobs,
			r.Pages,
			r.Duration.Round(time.Millisecond),
			r.Sources,
			status,
		)
	}
	return nil
}

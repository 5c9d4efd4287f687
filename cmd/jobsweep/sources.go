package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the sources a sweep would use",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	onOff := func(enabled bool) string {
		if enabled {
			return "enabled"
		}
		return "disabled"
	}

	fmt.Printf("Remotive         %s\n", onOff(cfg.Sources.Remotive))
	fmt.Printf("ArbeitNow        %s\n", onOff(cfg.Sources.ArbeitNow))
	fmt.Printf("WeWorkRemotely   %s\n", onOff(cfg.Sources.WeWorkRemotely))
	fmt.Printf("Lever            %d board(s)\n", len(cfg.Sources.LeverBoards))
	for _, b := range cfg.Sources.LeverBoards {
		fmt.Printf("  - %s (%s)\n", b.Name, b.Slug)
	}
	fmt.Printf("Greenhouse       %d board(s)\n", len(cfg.Sources.GreenhouseBoards))
	for _, b := range cfg.Sources.GreenhouseBoards {
		fmt.Printf("  - %s (%s)\n", b.Name, b.Slug)
	}
	fmt.Printf("LinkedIn         %d keyword(s)\n", len(cfg.Sources.LinkedInKeywords))
	for _, k := range cfg.Sources.LinkedInKeywords {
		fmt.Printf("  - %s\n", k)
	}
	return nil
}

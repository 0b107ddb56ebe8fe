package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"PairSignal/pkg/config"
)

var configPath string

// rootCmd is the base command for the PairSignal CLI
var rootCmd = &cobra.Command{
	Use:   "pairsignal",
	Short: "Pair-trading signal engine",
	Long: `PairSignal fits a rolling regression between the log returns of two
instruments, measures each bar's distance from the fitted line and labels
threshold breaches as take-profit or stop-loss events.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "config file path")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

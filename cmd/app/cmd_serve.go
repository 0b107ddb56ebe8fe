package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"PairSignal/internal/di"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve pair signals over HTTP until interrupted.

Endpoints:
  GET /api/pairs/signals?symbol_a=EURUSD&symbol_b=GBPUSD&tf=1h&n=500
  GET /healthz
  GET /metrics`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("app initialization failed: %w", err)
	}
	defer cleanup()

	return app.Run(cmd.Context())
}

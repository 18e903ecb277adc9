package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridsight/hexviz/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "hexviz",
	Short: "Hexagonal-grid choropleth viewer",
	Long:  "Loads a CSV of H3-indexed values, maps them onto a viridis-like color ramp, and serves an interactive map with per-cell tooltips.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

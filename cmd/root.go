package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opterra-labs/opterra-cli/internal/config"
)

// version is stamped by the release build via -ldflags.
var version = "dev"

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:     "opterra",
	Version: version,
	Short:   "Water heater risk and lifecycle assessment",
	Long:    "Turns a forensic field inspection of a water heater into biological age, failure probability, a verdict, replacement budgeting, and a maintenance schedule.",
	// Runtime failures (bad input file, unreachable store) should not dump
	// the flag listing over the actual error.
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "root: load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "root: init logger")
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

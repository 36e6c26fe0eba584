package main

import (
	"fmt"
	"os"

	"certgen/internal/batch"
	"certgen/internal/logger"

	"github.com/spf13/cobra"
)

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch",
		Short: "Run every job in the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(cfg.Jobs) == 0 {
				fmt.Printf("No jobs configured in %s\n", configPath)
				return nil
			}

			gen, err := newGenerator(cfg.Strategy)
			if err != nil {
				return err
			}

			logger.Info("Starting batch run", "jobs", len(cfg.Jobs), "strategy", cfg.Strategy)
			summary := batch.Run(cmd.Context(), cfg, gen, os.Stdout)
			summary.Print(os.Stdout)
			writeMetrics()

			logger.Info("Batch run completed",
				"certificates", summary.Certificates(),
				"failed_jobs", summary.Failed())
			if n := summary.Failed(); n > 0 {
				return fmt.Errorf("%d of %d jobs failed", n, len(summary.Jobs))
			}
			return nil
		},
	}
}

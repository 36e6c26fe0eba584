package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"certgen/internal/certificate"
	"certgen/internal/config"
	"certgen/internal/logger"
	"certgen/internal/metrics"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logDir     string
	verbose    bool

	cfg *config.Config
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Printf("❌ %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "certgen",
		Short: "Generate BTU meter calibration certificates from calibration workbooks",
		Long: `certgen reads meter calibration rows from a workbook and writes one
certificate sheet per meter, copied from a certificate template.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/config.toml", "Config file (.toml, .json or .yaml)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "logs", "Directory for certgen.log")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug messages")

	rootCmd.AddCommand(
		newBatchCmd(),
		newGenerateCmd(),
		newInteractiveCmd(),
		newExportCmd(),
		newSheetsCmd(),
	)
	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	if err := logger.Init(logDir, verbose); err != nil {
		return err
	}

	var err error
	cfg, err = config.LoadConfig(configPath)
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		return fmt.Errorf("error loading config: %w", err)
	}
	return nil
}

func newGenerator(strategy string) (*certificate.Generator, error) {
	dup, err := certificate.NewDuplicator(strategy)
	if err != nil {
		return nil, err
	}
	return certificate.NewGenerator(dup), nil
}

// writeMetrics refreshes the textfile collector output when configured.
func writeMetrics() {
	if cfg == nil || cfg.Metrics.Textfile == "" {
		return
	}
	path := cfg.Resolve(cfg.Metrics.Textfile)
	if err := metrics.WriteTextfile(path); err != nil {
		logger.Warn("Failed to write metrics", "path", path, "error", err)
	}
}

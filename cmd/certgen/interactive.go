package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"certgen/internal/certificate"
	"certgen/internal/meter"
	"certgen/internal/metrics"
	"certgen/internal/tui"

	"github.com/spf13/cobra"
)

func newInteractiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Pick files in a wizard and watch generation progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := certificate.Request{
				TemplatePath: cfg.Resolve(cfg.TemplateFile),
				Input:        meter.Options{Sheet: cfg.Input.Sheet, StartRow: cfg.Input.StartRow},
			}
			if len(cfg.Jobs) > 0 {
				job := cfg.Jobs[0]
				defaults.InputPath = cfg.Resolve(job.InputFile)
				defaults.OutputPath = cfg.Resolve(job.OutputFile)
				defaults.SheetPrefix = job.SheetPrefix
			}

			req, ok, err := tui.RunWizard(defaults)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled")
				return nil
			}

			gen, err := newGenerator(cfg.Strategy)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			start := time.Now()
			events := gen.Stream(ctx, req)
			res, err := tui.RunProgress(events)
			if errors.Is(err, tui.ErrCancelled) {
				cancel()
				fmt.Println("Cancelling, closing the output workbook...")
				final := tui.Drain(events)
				metrics.ObserveJob(false, final.Result.Count, time.Since(start))
				writeMetrics()
				fmt.Println("Cancelled")
				return nil
			}
			metrics.ObserveJob(err == nil, res.Count, time.Since(start))
			writeMetrics()
			if err != nil {
				return err
			}

			fmt.Printf("✓ Created %d certificates in %s\n", res.Count, res.OutputPath)
			return nil
		},
	}
}

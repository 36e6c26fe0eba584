package main

import (
	"fmt"
	"time"

	"certgen/internal/certificate"
	"certgen/internal/meter"
	"certgen/internal/metrics"

	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		input, output, prefix string
		template, strategy    string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate certificates for a single calibration workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if template == "" {
				template = cfg.Resolve(cfg.TemplateFile)
			}
			if strategy == "" {
				strategy = cfg.Strategy
			}
			gen, err := newGenerator(strategy)
			if err != nil {
				return err
			}

			req := certificate.Request{
				InputPath:    input,
				TemplatePath: template,
				OutputPath:   output,
				SheetPrefix:  prefix,
				Input:        meter.Options{Sheet: cfg.Input.Sheet, StartRow: cfg.Input.StartRow},
			}

			start := time.Now()
			res, err := gen.Generate(cmd.Context(), req, func(p certificate.Progress) {
				fmt.Printf("\rCreating certificate %d of %d", p.Current, p.Total)
			})
			fmt.Println()
			metrics.ObserveJob(err == nil, res.Count, time.Since(start))
			writeMetrics()
			if err != nil {
				return err
			}

			fmt.Printf("✓ Created %d certificates in %s\n", res.Count, res.OutputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Calibration workbook")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Certificate workbook to write")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Sheet name prefix, e.g. TowerB")
	cmd.Flags().StringVar(&template, "template", "", "Template workbook or folder (default: template_file from config)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Sheet duplication strategy: library or automation (default: from config)")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")
	cmd.MarkFlagRequired("prefix")
	return cmd
}

package main

import (
	"errors"
	"fmt"

	"certgen/internal/config"
	"certgen/internal/export"
	"certgen/internal/logger"
	"certgen/internal/tui"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var (
		workbook, outDir, exporter string
		sheets                     []string
		all                        bool
	)

	cmd := &cobra.Command{
		Use:   "export-pdf",
		Short: "Export certificate sheets to one PDF each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" {
				outDir = cfg.Resolve(cfg.Export.OutputDirectory)
			}
			if exporter == "" {
				exporter = cfg.Export.Exporter
			}

			if all || len(sheets) == 0 {
				names, err := export.ListSheets(workbook)
				if err != nil {
					return err
				}
				if all {
					sheets = names
				} else {
					sheets, err = tui.RunSheetPicker(names)
					if errors.Is(err, tui.ErrCancelled) {
						fmt.Println("Cancelled")
						return nil
					}
					if err != nil {
						return err
					}
				}
			}

			exp, err := export.New(config.ExportConfig{Exporter: exporter, SofficePath: cfg.Export.SofficePath})
			if err != nil {
				return err
			}

			logger.Info("Exporting sheets to PDF", "workbook", workbook, "sheets", len(sheets), "exporter", exporter)
			report, err := exp.Export(cmd.Context(), workbook, sheets, outDir)
			writeMetrics()
			if err != nil {
				return err
			}

			for _, path := range report.Exported {
				fmt.Printf("✓ %s\n", path)
			}
			for _, failed := range report.Failed {
				fmt.Printf("❌ %v\n", failed)
			}
			fmt.Printf("\nExported %d of %d sheets to %s\n", len(report.Exported), len(sheets), outDir)
			if !report.OK() {
				return fmt.Errorf("%d sheets failed to export", len(report.Failed))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workbook, "workbook", "w", "", "Certificate workbook")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output folder (default: export output_directory from config)")
	cmd.Flags().StringSliceVarP(&sheets, "sheet", "s", nil, "Sheet to export (repeatable)")
	cmd.Flags().BoolVar(&all, "all", false, "Export every sheet")
	cmd.Flags().StringVar(&exporter, "exporter", "", "PDF exporter: libreoffice or automation (default: from config)")
	cmd.MarkFlagRequired("workbook")
	return cmd
}

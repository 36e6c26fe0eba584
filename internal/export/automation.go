package export

import (
	"context"
	"fmt"
	"path/filepath"

	"certgen/internal/excel"
	"certgen/internal/logger"
	"certgen/internal/metrics"
)

// Automation prints each sheet with the installed spreadsheet application,
// so pictures and page setup come out exactly as on screen. Windows only.
type Automation struct{}

func (Automation) Export(ctx context.Context, workbookPath string, sheets []string, outDir string) (Report, error) {
	if err := prepare(workbookPath, outDir); err != nil {
		return Report{}, err
	}
	workbookPath, err := filepath.Abs(workbookPath)
	if err != nil {
		return Report{}, err
	}
	outDir, err = filepath.Abs(outDir)
	if err != nil {
		return Report{}, err
	}

	app, err := excel.StartApplication()
	if err != nil {
		return Report{}, err
	}
	defer app.Quit()

	wb, err := app.Open(workbookPath)
	if err != nil {
		return Report{}, err
	}
	defer wb.Close()

	var report Report
	for _, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		pdfPath := PDFPath(outDir, sheet)
		err := exportSheet(wb, sheet, pdfPath)
		metrics.ObservePDFExport(err == nil)
		if err != nil {
			logger.Error("PDF export failed", "workbook", workbookPath, "sheet", sheet, "error", err)
			report.Failed = append(report.Failed, SheetError{Sheet: sheet, Err: err})
			continue
		}
		logger.Info("Exported sheet to PDF", "sheet", sheet, "pdf", pdfPath)
		report.Exported = append(report.Exported, pdfPath)
	}
	return report, nil
}

func exportSheet(wb *excel.AutomatedWorkbook, sheet, pdfPath string) error {
	ws, err := wb.Sheet(sheet)
	if err != nil {
		return err
	}
	defer ws.Release()

	if err := ws.ExportPDF(pdfPath); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return nil
}

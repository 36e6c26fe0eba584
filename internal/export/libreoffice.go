package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"certgen/internal/excel"
	"certgen/internal/logger"
	"certgen/internal/metrics"
)

// ConvertFunc converts one workbook to PDF inside outDir and returns the PDF path.
type ConvertFunc func(ctx context.Context, soffice, workbookPath, outDir string) (string, error)

// LibreOffice copies each sheet into a workbook of its own and converts that
// workbook with soffice, since LibreOffice prints whole workbooks only.
type LibreOffice struct {
	SofficePath string
	Convert     ConvertFunc
}

func NewLibreOffice(sofficePath string) *LibreOffice {
	return &LibreOffice{SofficePath: sofficePath, Convert: excel.ConvertToPDF}
}

func (l *LibreOffice) Export(ctx context.Context, workbookPath string, sheets []string, outDir string) (Report, error) {
	if err := prepare(workbookPath, outDir); err != nil {
		return Report{}, err
	}

	src, err := excel.OpenFile(workbookPath)
	if err != nil {
		return Report{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer src.Close()

	workDir, err := os.MkdirTemp(outDir, ".certgen-export-")
	if err != nil {
		return Report{}, fmt.Errorf("failed to create work folder: %w", err)
	}
	defer os.RemoveAll(workDir)

	var report Report
	for _, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		pdfPath, err := l.exportSheet(ctx, src, sheet, workDir, outDir)
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

func (l *LibreOffice) exportSheet(ctx context.Context, src *excel.Editor, sheet, workDir, outDir string) (string, error) {
	if !src.HasSheet(sheet) {
		return "", fmt.Errorf("no such sheet")
	}

	single := excel.CreateNewFile()
	defer single.Close()

	placeholder, _ := single.FirstSheet()
	if err := single.CloneSheet(src, sheet, sheet); err != nil {
		return "", err
	}
	if !strings.EqualFold(placeholder, sheet) {
		if err := single.DeleteSheet(placeholder); err != nil {
			return "", err
		}
	}

	base := strings.TrimSuffix(filepath.Base(PDFPath("", sheet)), ".pdf")
	tmpPath := filepath.Join(workDir, base+".xlsx")
	if err := single.SaveAs(tmpPath); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}

	convert := l.Convert
	if convert == nil {
		convert = excel.ConvertToPDF
	}
	produced, err := convert(ctx, l.SofficePath, tmpPath, workDir)
	if err != nil {
		return "", err
	}

	pdfPath := PDFPath(outDir, sheet)
	if err := os.Rename(produced, pdfPath); err != nil {
		return "", fmt.Errorf("failed to move PDF into place: %w", err)
	}
	return pdfPath, nil
}

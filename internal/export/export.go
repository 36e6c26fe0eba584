// Package export turns certificate sheets into one PDF per sheet.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"certgen/internal/config"
	"certgen/internal/excel"
)

// ErrWorkbookNotFound indicates the workbook to export does not exist.
var ErrWorkbookNotFound = errors.New("workbook not found")

// Exporter writes <outDir>/<sheet>.pdf for every requested sheet.
type Exporter interface {
	Export(ctx context.Context, workbookPath string, sheets []string, outDir string) (Report, error)
}

// Report lists what was exported. A failing sheet does not stop the others.
type Report struct {
	Exported []string
	Failed   []SheetError
}

// OK reports whether every sheet was exported.
func (r Report) OK() bool {
	return len(r.Failed) == 0
}

// SheetError is the failure to export a single sheet.
type SheetError struct {
	Sheet string
	Err   error
}

func (e SheetError) Error() string {
	return fmt.Sprintf("sheet %q: %v", e.Sheet, e.Err)
}

func (e SheetError) Unwrap() error {
	return e.Err
}

// New returns the exporter configured in cfg.
func New(cfg config.ExportConfig) (Exporter, error) {
	switch cfg.Exporter {
	case "", config.ExporterLibreOffice:
		return NewLibreOffice(cfg.SofficePath), nil
	case config.ExporterAutomation:
		return Automation{}, nil
	default:
		return nil, fmt.Errorf("unknown exporter %q", cfg.Exporter)
	}
}

// ListSheets returns the sheet names of the workbook, in order.
func ListSheets(workbookPath string) ([]string, error) {
	if _, err := os.Stat(workbookPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrWorkbookNotFound, workbookPath)
	}
	return excel.ListSheets(workbookPath)
}

var fileNameReplacer = strings.NewReplacer(
	"<", "_",
	">", "_",
	":", "_",
	"\"", "_",
	"/", "_",
	"\\", "_",
	"|", "_",
	"?", "_",
	"*", "_",
)

// PDFPath is where the PDF of sheet ends up inside outDir.
func PDFPath(outDir, sheet string) string {
	return filepath.Join(outDir, fileNameReplacer.Replace(sheet)+".pdf")
}

func prepare(workbookPath, outDir string) error {
	if _, err := os.Stat(workbookPath); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrWorkbookNotFound, workbookPath)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}
	return nil
}

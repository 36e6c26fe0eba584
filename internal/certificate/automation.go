package certificate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"certgen/internal/excel"
	"certgen/internal/logger"
)

// AutomationDuplicator copies the template file to the output path and lets
// the installed spreadsheet application duplicate the first sheet, so
// pictures and drawings survive.
type AutomationDuplicator struct{}

func (AutomationDuplicator) Name() string { return "automation" }

func (AutomationDuplicator) Open(templatePath, outputPath string) (Workbook, error) {
	templatePath, err := filepath.Abs(templatePath)
	if err != nil {
		return nil, err
	}
	outputPath, err = filepath.Abs(outputPath)
	if err != nil {
		return nil, err
	}

	app, err := excel.StartApplication()
	if err != nil {
		return nil, err
	}

	if err := copyFile(templatePath, outputPath); err != nil {
		app.Quit()
		return nil, err
	}

	wb, err := app.Open(outputPath)
	if err != nil {
		app.Quit()
		return nil, err
	}
	tpl, err := wb.SheetAt(1)
	if err != nil {
		wb.Close()
		app.Quit()
		return nil, err
	}

	logger.Info("Opened output workbook in spreadsheet application", "path", outputPath)
	return &automationWorkbook{app: app, wb: wb, tpl: tpl, tplPos: 1}, nil
}

type automationWorkbook struct {
	app    *excel.Application
	wb     *excel.AutomatedWorkbook
	tpl    *excel.AutomatedSheet
	tplPos int // 1-based position of the pristine template sheet
	sheets []*excel.AutomatedSheet
}

// Duplicate inserts a copy of the untouched template in front of it, so
// every certificate starts from the untouched layout and they stay in order.
func (w *automationWorkbook) Duplicate(name string) (SheetWriter, error) {
	if err := w.tpl.CopyBefore(w.tpl); err != nil {
		return nil, fmt.Errorf("failed to copy template sheet: %w", err)
	}
	ws, err := w.wb.SheetAt(w.tplPos)
	if err != nil {
		return nil, err
	}
	w.tplPos++
	w.sheets = append(w.sheets, ws)

	if err := ws.Rename(name); err != nil {
		return nil, fmt.Errorf("failed to rename sheet to %q: %w", name, err)
	}
	return automationSheet{ws: ws}, nil
}

func (w *automationWorkbook) Save() error {
	if len(w.sheets) > 0 {
		if err := w.tpl.Delete(); err != nil {
			return fmt.Errorf("failed to remove template sheet: %w", err)
		}
	}
	if err := w.wb.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Close closes the workbook and always quits the application.
func (w *automationWorkbook) Close() error {
	for _, ws := range w.sheets {
		ws.Release()
	}
	w.tpl.Release()
	closeErr := w.wb.Close()
	quitErr := w.app.Quit()
	if closeErr != nil {
		return closeErr
	}
	return quitErr
}

type automationSheet struct {
	ws *excel.AutomatedSheet
}

func (s automationSheet) SetString(cell, value string) error {
	return s.ws.SetValue(cell, value)
}

func (s automationSheet) SetFloat(cell string, value float64) error {
	return s.ws.SetValue(cell, value)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open template: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy template to %s: %w", dst, err)
	}
	return out.Close()
}

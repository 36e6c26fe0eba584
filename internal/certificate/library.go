package certificate

import (
	"fmt"
	"strings"

	"certgen/internal/excel"
)

// LibraryDuplicator clones the template cell by cell into a fresh workbook.
// Embedded pictures are not carried over.
type LibraryDuplicator struct{}

func (LibraryDuplicator) Name() string { return "library" }

func (LibraryDuplicator) Open(templatePath, outputPath string) (Workbook, error) {
	tpl, err := excel.OpenFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open template: %w", err)
	}
	tplSheet, err := tpl.FirstSheet()
	if err != nil {
		tpl.Close()
		return nil, fmt.Errorf("template %s: %w", templatePath, err)
	}

	out := excel.CreateNewFile()
	placeholder, _ := out.FirstSheet()
	return &libraryWorkbook{
		tpl:         tpl,
		tplSheet:    tplSheet,
		out:         out,
		outputPath:  outputPath,
		placeholder: placeholder,
	}, nil
}

type libraryWorkbook struct {
	tpl        *excel.Editor
	tplSheet   string
	out        *excel.Editor
	outputPath string

	// default sheet of a new workbook, dropped before saving
	placeholder     string
	placeholderUsed bool
	sheets          int
}

func (w *libraryWorkbook) Duplicate(name string) (SheetWriter, error) {
	if strings.EqualFold(name, w.placeholder) {
		w.placeholderUsed = true
	}
	if err := w.out.CloneSheet(w.tpl, w.tplSheet, name); err != nil {
		return nil, err
	}
	w.sheets++
	return librarySheet{editor: w.out, sheet: name}, nil
}

func (w *libraryWorkbook) Save() error {
	if w.sheets > 0 && !w.placeholderUsed {
		if err := w.out.DeleteSheet(w.placeholder); err != nil {
			return fmt.Errorf("failed to remove default sheet: %w", err)
		}
		w.placeholderUsed = true
	}
	if err := w.out.SaveAs(w.outputPath); err != nil {
		return fmt.Errorf("failed to save %s: %w", w.outputPath, err)
	}
	return nil
}

func (w *libraryWorkbook) Close() error {
	tplErr := w.tpl.Close()
	outErr := w.out.Close()
	if tplErr != nil {
		return tplErr
	}
	return outErr
}

type librarySheet struct {
	editor *excel.Editor
	sheet  string
}

func (s librarySheet) SetString(cell, value string) error {
	return s.editor.SetCellStr(s.sheet, cell, value)
}

func (s librarySheet) SetFloat(cell string, value float64) error {
	return s.editor.SetCellFloat(s.sheet, cell, value)
}

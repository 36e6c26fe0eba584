package excel

import (
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

type Editor struct {
	file *excelize.File

	// template style ID -> local style ID, per source file
	styles map[*excelize.File]map[int]int
}

// OpenFile opens an existing Excel file
func OpenFile(filepath string) (*Editor, error) {
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", os.ErrNotExist, filepath)
	}
	file, err := excelize.OpenFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return newEditor(file), nil
}

// CreateNewFile creates a new Excel file in memory
func CreateNewFile() *Editor {
	return newEditor(excelize.NewFile())
}

func newEditor(file *excelize.File) *Editor {
	return &Editor{
		file:   file,
		styles: make(map[*excelize.File]map[int]int),
	}
}

// File exposes the underlying workbook.
func (e *Editor) File() *excelize.File {
	return e.file
}

// SetCellStr writes text without type detection.
func (e *Editor) SetCellStr(sheet, cell, value string) error {
	return e.file.SetCellStr(sheet, cell, value)
}

// SetCellFloat writes a number with the shortest exact representation.
func (e *Editor) SetCellFloat(sheet, cell string, value float64) error {
	return e.file.SetCellFloat(sheet, cell, value, -1, 64)
}

// GetSheetNames returns all sheet names in the workbook
func (e *Editor) GetSheetNames() []string {
	return e.file.GetSheetList()
}

// FirstSheet returns the name of the first sheet.
func (e *Editor) FirstSheet() (string, error) {
	names := e.file.GetSheetList()
	if len(names) == 0 {
		return "", errors.New("workbook has no sheets")
	}
	return names[0], nil
}

// HasSheet reports whether sheetName exists.
func (e *Editor) HasSheet(sheetName string) bool {
	idx, err := e.file.GetSheetIndex(sheetName)
	return err == nil && idx >= 0
}

// AddSheet creates a new sheet
func (e *Editor) AddSheet(sheetName string) error {
	_, err := e.file.NewSheet(sheetName)
	return err
}

// DeleteSheet removes a sheet and keeps the first remaining sheet active.
func (e *Editor) DeleteSheet(sheetName string) error {
	if err := e.file.DeleteSheet(sheetName); err != nil {
		return err
	}
	e.file.SetActiveSheet(0)
	return nil
}

// SaveAs saves the Excel file with a new name
func (e *Editor) SaveAs(filepath string) error {
	return e.file.SaveAs(filepath)
}

// Close closes the Excel file
func (e *Editor) Close() error {
	return e.file.Close()
}

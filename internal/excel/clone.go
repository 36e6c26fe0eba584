package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CloneSheet copies srcSheet of src into dstSheet of e, creating dstSheet if
// needed. Values, formulas, rich text, cell and column styles, column widths,
// row heights, merged ranges, page setup and gridline visibility are copied.
// Pictures and charts are not.
func (e *Editor) CloneSheet(src *Editor, srcSheet, dstSheet string) error {
	if !src.HasSheet(srcSheet) {
		return fmt.Errorf("sheet %q not found in template", srcSheet)
	}
	if !e.HasSheet(dstSheet) {
		if err := e.AddSheet(dstSheet); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", dstSheet, err)
		}
	}

	maxCol, maxRow, err := src.usedRange(srcSheet)
	if err != nil {
		return err
	}

	for col := 1; col <= maxCol; col++ {
		if err := e.copyColumn(src, srcSheet, dstSheet, col); err != nil {
			return err
		}
	}

	for row := 1; row <= maxRow; row++ {
		height, err := src.file.GetRowHeight(srcSheet, row)
		if err != nil {
			return fmt.Errorf("failed to read height of row %d: %w", row, err)
		}
		if err := e.file.SetRowHeight(dstSheet, row, height); err != nil {
			return fmt.Errorf("failed to set height of row %d: %w", row, err)
		}
		for col := 1; col <= maxCol; col++ {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}
			if err := e.copyCell(src, srcSheet, dstSheet, cell); err != nil {
				return fmt.Errorf("failed to copy cell %s: %w", cell, err)
			}
		}
	}

	merges, err := src.file.GetMergeCells(srcSheet)
	if err != nil {
		return fmt.Errorf("failed to read merged cells: %w", err)
	}
	for _, mc := range merges {
		if err := e.file.MergeCell(dstSheet, mc.GetStartAxis(), mc.GetEndAxis()); err != nil {
			return fmt.Errorf("failed to merge %s:%s: %w", mc.GetStartAxis(), mc.GetEndAxis(), err)
		}
	}

	return e.copySheetSetup(src, srcSheet, dstSheet)
}

// usedRange returns the last column and row holding content or formatting.
func (e *Editor) usedRange(sheet string) (int, int, error) {
	maxCol, maxRow := 1, 1

	dim, err := e.file.GetSheetDimension(sheet)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read dimension of %q: %w", sheet, err)
	}
	if dim != "" {
		parts := strings.Split(dim, ":")
		col, row, err := excelize.CellNameToCoordinates(parts[len(parts)-1])
		if err == nil {
			maxCol, maxRow = max(maxCol, col), max(maxRow, row)
		}
	}

	rows, err := e.file.Rows(sheet)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read rows of %q: %w", sheet, err)
	}
	row := 0
	for rows.Next() {
		row++
		cols, err := rows.Columns()
		if err != nil {
			rows.Close()
			return 0, 0, fmt.Errorf("failed to read row %d of %q: %w", row, sheet, err)
		}
		maxRow = max(maxRow, row)
		maxCol = max(maxCol, len(cols))
	}
	if err := rows.Close(); err != nil {
		return 0, 0, err
	}

	merges, err := e.file.GetMergeCells(sheet)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read merged cells of %q: %w", sheet, err)
	}
	for _, mc := range merges {
		col, row, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err == nil {
			maxCol, maxRow = max(maxCol, col), max(maxRow, row)
		}
	}

	return maxCol, maxRow, nil
}

func (e *Editor) copyColumn(src *Editor, srcSheet, dstSheet string, col int) error {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return err
	}
	width, err := src.file.GetColWidth(srcSheet, name)
	if err != nil {
		return fmt.Errorf("failed to read width of column %s: %w", name, err)
	}
	if err := e.file.SetColWidth(dstSheet, name, name, width); err != nil {
		return fmt.Errorf("failed to set width of column %s: %w", name, err)
	}

	styleID, err := src.file.GetColStyle(srcSheet, name)
	if err != nil || styleID == 0 {
		return nil
	}
	local, err := e.importStyle(src, styleID)
	if err != nil {
		return err
	}
	return e.file.SetColStyle(dstSheet, name, local)
}

func (e *Editor) copyCell(src *Editor, srcSheet, dstSheet, cell string) error {
	if err := e.copyCellContent(src, srcSheet, dstSheet, cell); err != nil {
		return err
	}

	styleID, err := src.file.GetCellStyle(srcSheet, cell)
	if err != nil {
		return err
	}
	if styleID == 0 {
		return nil
	}
	local, err := e.importStyle(src, styleID)
	if err != nil {
		return err
	}
	return e.file.SetCellStyle(dstSheet, cell, cell, local)
}

func (e *Editor) copyCellContent(src *Editor, srcSheet, dstSheet, cell string) error {
	formula, err := src.file.GetCellFormula(srcSheet, cell)
	if err != nil {
		return err
	}
	if formula != "" {
		return e.file.SetCellFormula(dstSheet, cell, formula)
	}

	raw, err := src.file.GetCellValue(srcSheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return err
	}
	if raw == "" {
		return nil
	}

	cellType, err := src.file.GetCellType(srcSheet, cell)
	if err != nil {
		return err
	}

	switch cellType {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		return e.file.SetCellDefault(dstSheet, cell, raw)
	case excelize.CellTypeBool:
		return e.file.SetCellBool(dstSheet, cell, raw == "1" || strings.EqualFold(raw, "TRUE"))
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		runs, err := src.file.GetCellRichText(srcSheet, cell)
		if err == nil && len(runs) > 1 {
			return e.file.SetCellRichText(dstSheet, cell, runs)
		}
		return e.file.SetCellStr(dstSheet, cell, raw)
	default:
		return e.file.SetCellValue(dstSheet, cell, raw)
	}
}

// importStyle registers a style of src in e once and returns the local ID.
func (e *Editor) importStyle(src *Editor, styleID int) (int, error) {
	cache, ok := e.styles[src.file]
	if !ok {
		cache = make(map[int]int)
		e.styles[src.file] = cache
	}
	if local, ok := cache[styleID]; ok {
		return local, nil
	}

	style, err := src.file.GetStyle(styleID)
	if err != nil {
		return 0, fmt.Errorf("failed to read style %d: %w", styleID, err)
	}
	local, err := e.file.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("failed to register style %d: %w", styleID, err)
	}
	cache[styleID] = local
	return local, nil
}

func (e *Editor) copySheetSetup(src *Editor, srcSheet, dstSheet string) error {
	if layout, err := src.file.GetPageLayout(srcSheet); err == nil {
		if err := e.file.SetPageLayout(dstSheet, &layout); err != nil {
			return fmt.Errorf("failed to copy page layout: %w", err)
		}
	}
	if margins, err := src.file.GetPageMargins(srcSheet); err == nil {
		if err := e.file.SetPageMargins(dstSheet, &margins); err != nil {
			return fmt.Errorf("failed to copy page margins: %w", err)
		}
	}
	if view, err := src.file.GetSheetView(srcSheet, 0); err == nil && view.ShowGridLines != nil {
		if err := e.file.SetSheetView(dstSheet, 0, &excelize.ViewOptions{ShowGridLines: view.ShowGridLines}); err != nil {
			return fmt.Errorf("failed to copy sheet view: %w", err)
		}
	}
	return nil
}

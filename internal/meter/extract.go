package meter

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"certgen/internal/logger"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ErrInputNotFound indicates the calibration workbook does not exist.
var ErrInputNotFound = errors.New("input file not found")

// Column positions in the calibration sheet (0-based).
const (
	colLocation     = 0
	colSerial       = 1
	colMeterSize    = 2
	colBeforeOutlet = 4
	colBeforeInlet  = 5
	colBeforeFlow   = 6
	colBeforeMWH    = 7
	colBeforeKWH    = 8
	colAfterOutlet  = 10
	colAfterInlet   = 11
	colAfterFlow    = 12
	colAfterMWH     = 13
	colAfterKWH     = 14
)

// Options selects where the data lives in the input workbook.
type Options struct {
	Sheet    string
	StartRow int // 1-based
}

// DefaultOptions matches the calibration workbook layout: data starts on row 5 of Sheet1.
func DefaultOptions() Options {
	return Options{Sheet: "Sheet1", StartRow: 5}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Sheet == "" {
		o.Sheet = d.Sheet
	}
	if o.StartRow < 1 {
		o.StartRow = d.StartRow
	}
	return o
}

// ExtractFile opens path, extracts all records and closes the workbook.
func ExtractFile(path string, opts Options) ([]Record, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input %s: %w", path, err)
	}
	defer f.Close()

	return Extract(f, opts)
}

// Extract reads every data row of the input sheet and returns the rows that
// carry both a location and a serial number, in sheet order.
func Extract(f *excelize.File, opts Options) ([]Record, error) {
	opts = opts.withDefaults()

	rows, err := f.GetRows(opts.Sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", opts.Sheet, err)
	}

	var records []Record
	for i := opts.StartRow - 1; i < len(rows); i++ {
		rec, ok := recordFromRow(rows[i], i+1)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	logger.Info("Extracted meter records", "sheet", opts.Sheet, "rows", len(rows), "records", len(records))
	return records, nil
}

func recordFromRow(row []string, rowNum int) (Record, bool) {
	location := strings.TrimSpace(cell(row, colLocation))
	serial := strings.TrimSpace(cell(row, colSerial))
	if location == "" || serial == "" {
		return Record{}, false
	}

	rec := Record{
		Row:       rowNum,
		Location:  location,
		Serial:    serial,
		MeterSize: normalize(cell(row, colMeterSize)),
		Before: Pass{
			Inlet:  reading(row, colBeforeInlet, rowNum),
			Outlet: reading(row, colBeforeOutlet, rowNum),
			Flow:   reading(row, colBeforeFlow, rowNum),
		},
		After: Pass{
			Inlet:  reading(row, colAfterInlet, rowNum),
			Outlet: reading(row, colAfterOutlet, rowNum),
			Flow:   reading(row, colAfterFlow, rowNum),
		},
	}
	rec.Before.Unit, rec.Before.Value = resolveUnit(cell(row, colBeforeMWH), cell(row, colBeforeKWH))
	rec.After.Unit, rec.After.Value = resolveUnit(cell(row, colAfterMWH), cell(row, colAfterKWH))
	return rec, true
}

// resolveUnit prefers the MWH column over the KWH column. A zero MWH reading
// counts as blank and falls through to KWH.
func resolveUnit(mwh, kwh string) (Unit, string) {
	if truthy(mwh) {
		return UnitMWH, normalize(mwh)
	}
	if truthy(kwh) {
		return UnitKWH, normalize(kwh)
	}
	return UnitNone, ""
}

func cell(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}

// truthy is false for blank cells and numeric zero.
func truthy(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return !d.IsZero()
	}
	return true
}

// normalize trims the value and renders numbers in their shortest decimal form.
func normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if d, err := decimal.NewFromString(s); err == nil {
		return d.String()
	}
	return s
}

func reading(row []string, col, rowNum int) *float64 {
	s := strings.TrimSpace(cell(row, col))
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		logger.Warn("Ignoring non-numeric reading", "row", rowNum, "column", col, "value", s)
		return nil
	}
	v := d.InexactFloat64()
	return &v
}

package certificate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeTemplate saves a certificate template whose data cells carry
// placeholder text, so untouched cells can be told apart.
func writeTemplate(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Certificate"
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	require.NoError(t, err)

	require.NoError(t, f.SetCellValue(sheet, "A1", "BTU METER CALIBRATION CERTIFICATE"))
	require.NoError(t, f.MergeCell(sheet, "A1", "I1"))
	require.NoError(t, f.SetCellStyle(sheet, "A1", "A1", bold))
	for cell, v := range map[string]any{
		"B7": "Serial No:", "B8": "Meter Location :", "B9": "Meter Size :",
		"I13": "UNIT", "D14": "inlet", "D15": "outlet", "F16": "flow", "D16": "delta",
		"I19": "UNIT AFTER", "D20": "inlet after", "D21": "outlet after", "F22": "flow after",
		"B25": "Calibrated by: ________",
	} {
		require.NoError(t, f.SetCellValue(sheet, cell, v))
	}
	require.NoError(t, f.SetColWidth(sheet, "B", "B", 24))
	_, err = f.NewSheet("Notes")
	require.NoError(t, err)

	path := filepath.Join(dir, "template.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// writeInput saves a calibration workbook with rows starting at row 5.
func writeInput(t *testing.T, dir, name string, rows ...[]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetCellValue("Sheet1", "A1", "CALIBRATION DATA"))
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, 5+i)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", axis, &r))
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func cellValue(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell)
	require.NoError(t, err)
	return v
}

// recordingWriter captures Fill output.
type recordingWriter struct {
	strings map[string]string
	floats  map[string]float64
}

func newRecordingWriter() *recordingWriter {
	return &recordingWriter{strings: map[string]string{}, floats: map[string]float64{}}
}

func (w *recordingWriter) SetString(cell, value string) error {
	w.strings[cell] = value
	return nil
}

func (w *recordingWriter) SetFloat(cell string, value float64) error {
	w.floats[cell] = value
	return nil
}

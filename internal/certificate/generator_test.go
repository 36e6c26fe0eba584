package certificate

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newRequest(t *testing.T, rows ...[]any) Request {
	t.Helper()
	dir := t.TempDir()
	return Request{
		InputPath:    writeInput(t, dir, "input.xlsx", rows...),
		TemplatePath: writeTemplate(t, dir),
		OutputPath:   filepath.Join(dir, "out", "certificates.xlsx"),
		SheetPrefix:  "TowerA",
	}
}

func TestGenerate_EndToEnd(t *testing.T) {
	req := newRequest(t,
		[]any{"Shop 1", "SN-001", 65, nil, 20.0, 25.0, 1.2, 100},
	)

	res, err := NewGenerator(LibraryDuplicator{}).Generate(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, []string{"TowerA_SHOP_1"}, res.Sheets)
	assert.Equal(t, req.OutputPath, res.OutputPath)

	f, err := excelize.OpenFile(req.OutputPath)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"TowerA_SHOP_1"}, f.GetSheetList())
	sheet := "TowerA_SHOP_1"
	assert.Equal(t, "Serial No: SN-001", cellValue(t, f, sheet, "B7"))
	assert.Equal(t, "Meter Location : Shop 1", cellValue(t, f, sheet, "B8"))
	assert.Equal(t, "Meter Size : DN-65", cellValue(t, f, sheet, "B9"))
	assert.Equal(t, "MWH= BTU*100", cellValue(t, f, sheet, "I13"))
	assert.Equal(t, "25", cellValue(t, f, sheet, "D14"))
	assert.Equal(t, "20", cellValue(t, f, sheet, "D15"))
	assert.Equal(t, "5", cellValue(t, f, sheet, "D16"))
	assert.Equal(t, "1.2", cellValue(t, f, sheet, "F16"))

	// no after-calibration data: template content shows through
	assert.Equal(t, "UNIT AFTER", cellValue(t, f, sheet, "I19"))
	assert.Equal(t, "inlet after", cellValue(t, f, sheet, "D20"))
	assert.Equal(t, "outlet after", cellValue(t, f, sheet, "D21"))
	assert.Equal(t, "flow after", cellValue(t, f, sheet, "F22"))

	// static template content is carried over
	assert.Equal(t, "BTU METER CALIBRATION CERTIFICATE", cellValue(t, f, sheet, "A1"))
	assert.Equal(t, "Calibrated by: ________", cellValue(t, f, sheet, "B25"))
	merges, err := f.GetMergeCells(sheet)
	require.NoError(t, err)
	require.Len(t, merges, 1)
	assert.Equal(t, "A1", merges[0].GetStartAxis())
	assert.Equal(t, "I1", merges[0].GetEndAxis())
	width, err := f.GetColWidth(sheet, "B")
	require.NoError(t, err)
	assert.InDelta(t, 24, width, 0.01)
}

func TestGenerate_SheetsFollowRowOrder(t *testing.T) {
	req := newRequest(t,
		[]any{"Shop 1", "SN-001"},
		[]any{"", "SN-SKIP"},
		[]any{"Kiosk 2", "SN-002", 80, nil, 30.0, 35.0, 2.0, 0, 7},
		[]any{"shop 1", "SN-003"},
	)

	var seen []Progress
	res, err := NewGenerator(LibraryDuplicator{}).Generate(context.Background(), req, func(p Progress) {
		seen = append(seen, p)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"TowerA_SHOP_1", "TowerA_KIOSK_2", "TowerA_SHOP_1_2"}, res.Sheets)

	require.Len(t, seen, 3)
	for i, p := range seen {
		assert.Equal(t, i+1, p.Current)
		assert.Equal(t, 3, p.Total)
		assert.Equal(t, res.Sheets[i], p.Sheet)
	}

	f, err := excelize.OpenFile(req.OutputPath)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, res.Sheets, f.GetSheetList())
	// zero MWH falls through to KWH
	assert.Equal(t, "KWH= BTU*7", cellValue(t, f, "TowerA_KIOSK_2", "I13"))
	assert.Equal(t, "Meter Size : DN-80", cellValue(t, f, "TowerA_KIOSK_2", "B9"))
	assert.Equal(t, "Serial No: SN-003", cellValue(t, f, "TowerA_SHOP_1_2", "B7"))
	// each copy starts from the pristine template
	assert.Equal(t, "inlet", cellValue(t, f, "TowerA_SHOP_1_2", "D14"))
}

func TestGenerate_Errors(t *testing.T) {
	gen := NewGenerator(LibraryDuplicator{})
	ctx := context.Background()

	t.Run("missing input", func(t *testing.T) {
		req := newRequest(t, []any{"Shop 1", "SN-001"})
		req.InputPath = filepath.Join(t.TempDir(), "nope.xlsx")
		_, err := gen.Generate(ctx, req, nil)
		assert.ErrorIs(t, err, ErrInputNotFound)
	})

	t.Run("missing template", func(t *testing.T) {
		req := newRequest(t, []any{"Shop 1", "SN-001"})
		req.TemplatePath = filepath.Join(t.TempDir(), "nope.xlsx")
		_, err := gen.Generate(ctx, req, nil)
		assert.ErrorIs(t, err, ErrTemplateNotFound)
	})

	t.Run("empty template folder", func(t *testing.T) {
		req := newRequest(t, []any{"Shop 1", "SN-001"})
		req.TemplatePath = t.TempDir()
		_, err := gen.Generate(ctx, req, nil)
		assert.ErrorIs(t, err, ErrTemplateNotFound)
	})

	t.Run("no records", func(t *testing.T) {
		req := newRequest(t, []any{"", "SN-001"}, []any{"Shop 1", ""})
		_, err := gen.Generate(ctx, req, nil)
		assert.ErrorIs(t, err, ErrNoRecords)
		assert.NoFileExists(t, req.OutputPath)
	})

	t.Run("output is a directory", func(t *testing.T) {
		req := newRequest(t, []any{"Shop 1", "SN-001"})
		req.OutputPath = t.TempDir()
		_, err := gen.Generate(ctx, req, nil)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrFileLocked)
	})

	t.Run("prefix required", func(t *testing.T) {
		req := newRequest(t, []any{"Shop 1", "SN-001"})
		req.SheetPrefix = ""
		_, err := gen.Generate(ctx, req, nil)
		assert.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		req := newRequest(t, []any{"Shop 1", "SN-001"})
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := gen.Generate(cctx, req, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGenerate_TemplateFolder(t *testing.T) {
	req := newRequest(t, []any{"Shop 1", "SN-001"})
	req.TemplatePath = filepath.Dir(writeTemplate(t, t.TempDir()))

	res, err := NewGenerator(nil).Generate(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
}

// fakeDuplicator records the calls made by Generate.
type fakeDuplicator struct {
	failOn string
	wb     *fakeWorkbook
}

type fakeWorkbook struct {
	sheets map[string]*recordingWriter
	order  []string
	saved  bool
	closed bool
	failOn string
}

func (d *fakeDuplicator) Name() string { return "fake" }

func (d *fakeDuplicator) Open(templatePath, outputPath string) (Workbook, error) {
	d.wb = &fakeWorkbook{sheets: map[string]*recordingWriter{}, failOn: d.failOn}
	return d.wb, nil
}

func (w *fakeWorkbook) Duplicate(name string) (SheetWriter, error) {
	if name == w.failOn {
		return nil, errors.New("copy failed")
	}
	rw := newRecordingWriter()
	w.sheets[name] = rw
	w.order = append(w.order, name)
	return rw, nil
}

func (w *fakeWorkbook) Save() error  { w.saved = true; return nil }
func (w *fakeWorkbook) Close() error { w.closed = true; return nil }

func TestGenerate_UsesDuplicator(t *testing.T) {
	req := newRequest(t,
		[]any{"Shop 1", "SN-001", 65, nil, 20.0, 25.0, 1.2, 100, nil, nil, 21.0, 26.0, 1.1, nil, 55},
	)
	dup := &fakeDuplicator{}

	res, err := NewGenerator(dup).Generate(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.True(t, dup.wb.saved)
	assert.True(t, dup.wb.closed)

	w := dup.wb.sheets["TowerA_SHOP_1"]
	require.NotNil(t, w)
	assert.Equal(t, "KWH= BTU*55", w.strings["I19"])
	assert.Equal(t, 26.0, w.floats["D20"])
	assert.Equal(t, 21.0, w.floats["D21"])
	assert.Equal(t, 1.1, w.floats["F22"])
}

func TestGenerate_ClosesOnFailure(t *testing.T) {
	req := newRequest(t, []any{"Shop 1", "SN-001"}, []any{"Shop 2", "SN-002"})
	dup := &fakeDuplicator{failOn: "TowerA_SHOP_2"}

	_, err := NewGenerator(dup).Generate(context.Background(), req, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 6")
	assert.False(t, dup.wb.saved)
	assert.True(t, dup.wb.closed)
}

func TestNewDuplicator(t *testing.T) {
	for _, name := range []string{"", "library"} {
		d, err := NewDuplicator(name)
		require.NoError(t, err)
		assert.Equal(t, "library", d.Name())
	}

	d, err := NewDuplicator("automation")
	require.NoError(t, err)
	assert.Equal(t, "automation", d.Name())

	_, err = NewDuplicator("magic")
	assert.Error(t, err)
}

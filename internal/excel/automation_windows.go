//go:build windows

package excel

import (
	"errors"
	"fmt"
	"runtime"

	"certgen/internal/logger"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// Application drives an installed Excel over COM. All calls must come from
// the goroutine that started it.
type Application struct {
	unknown *ole.IUnknown
	app     *ole.IDispatch
}

// AutomatedWorkbook is a workbook opened inside Application.
type AutomatedWorkbook struct {
	wb     *ole.IDispatch
	sheets *ole.IDispatch
	closed bool
}

// AutomatedSheet is a worksheet of an AutomatedWorkbook.
type AutomatedSheet struct {
	ws *ole.IDispatch
}

// StartApplication launches a hidden Excel instance with alerts disabled.
func StartApplication() (*Application, error) {
	runtime.LockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		var oleErr *ole.OleError
		// S_FALSE: already initialised on this thread
		if !errors.As(err, &oleErr) || oleErr.Code() != 1 {
			runtime.UnlockOSThread()
			return nil, fmt.Errorf("%w: %v", ErrAutomationUnavailable, err)
		}
	}

	unknown, err := oleutil.CreateObject("Excel.Application")
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("%w: %v", ErrAutomationUnavailable, err)
	}
	app, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		unknown.Release()
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("%w: %v", ErrAutomationUnavailable, err)
	}

	if _, err := oleutil.PutProperty(app, "Visible", false); err != nil {
		logger.Warn("Failed to hide Excel window", "error", err)
	}
	if _, err := oleutil.PutProperty(app, "DisplayAlerts", false); err != nil {
		logger.Warn("Failed to disable Excel alerts", "error", err)
	}

	logger.Info("Started Excel automation")
	return &Application{unknown: unknown, app: app}, nil
}

// Open opens the workbook at an absolute path.
func (a *Application) Open(path string) (*AutomatedWorkbook, error) {
	books, err := oleutil.GetProperty(a.app, "Workbooks")
	if err != nil {
		return nil, fmt.Errorf("failed to get Workbooks: %w", err)
	}
	booksDisp := books.ToIDispatch()
	defer booksDisp.Release()

	wb, err := oleutil.CallMethod(booksDisp, "Open", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s in Excel: %w", path, err)
	}
	wbDisp := wb.ToIDispatch()

	sheets, err := oleutil.GetProperty(wbDisp, "Worksheets")
	if err != nil {
		oleutil.CallMethod(wbDisp, "Close", false)
		wbDisp.Release()
		return nil, fmt.Errorf("failed to get Worksheets: %w", err)
	}
	return &AutomatedWorkbook{wb: wbDisp, sheets: sheets.ToIDispatch()}, nil
}

// Quit closes Excel and releases COM for this thread.
func (a *Application) Quit() error {
	defer runtime.UnlockOSThread()
	defer ole.CoUninitialize()

	_, err := oleutil.CallMethod(a.app, "Quit")
	a.app.Release()
	a.unknown.Release()
	if err != nil {
		return fmt.Errorf("failed to quit Excel: %w", err)
	}
	logger.Info("Stopped Excel automation")
	return nil
}

// SheetAt returns the 1-based index-th worksheet.
func (w *AutomatedWorkbook) SheetAt(index int) (*AutomatedSheet, error) {
	v, err := oleutil.GetProperty(w.sheets, "Item", index)
	if err != nil {
		return nil, fmt.Errorf("failed to get worksheet %d: %w", index, err)
	}
	return &AutomatedSheet{ws: v.ToIDispatch()}, nil
}

func (w *AutomatedWorkbook) Sheet(name string) (*AutomatedSheet, error) {
	v, err := oleutil.GetProperty(w.sheets, "Item", name)
	if err != nil {
		return nil, fmt.Errorf("failed to get worksheet %q: %w", name, err)
	}
	return &AutomatedSheet{ws: v.ToIDispatch()}, nil
}

func (w *AutomatedWorkbook) Save() error {
	_, err := oleutil.CallMethod(w.wb, "Save")
	return err
}

// Close closes without saving. Safe to call more than once.
func (w *AutomatedWorkbook) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	_, err := oleutil.CallMethod(w.wb, "Close", false)
	w.sheets.Release()
	w.wb.Release()
	return err
}

func (s *AutomatedSheet) Rename(name string) error {
	_, err := oleutil.PutProperty(s.ws, "Name", name)
	return err
}

// CopyBefore inserts a copy of s in front of before.
func (s *AutomatedSheet) CopyBefore(before *AutomatedSheet) error {
	_, err := oleutil.CallMethod(s.ws, "Copy", before.ws)
	return err
}

func (s *AutomatedSheet) Delete() error {
	_, err := oleutil.CallMethod(s.ws, "Delete")
	return err
}

func (s *AutomatedSheet) SetValue(cell string, value interface{}) error {
	rng, err := oleutil.GetProperty(s.ws, "Range", cell)
	if err != nil {
		return fmt.Errorf("failed to get range %s: %w", cell, err)
	}
	rngDisp := rng.ToIDispatch()
	defer rngDisp.Release()

	_, err = oleutil.PutProperty(rngDisp, "Value", value)
	return err
}

func (s *AutomatedSheet) ExportPDF(path string) error {
	_, err := oleutil.CallMethod(s.ws, "ExportAsFixedFormat", xlTypePDF, path)
	return err
}

func (s *AutomatedSheet) Release() {
	if s.ws != nil {
		s.ws.Release()
		s.ws = nil
	}
}

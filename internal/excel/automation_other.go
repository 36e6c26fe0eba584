//go:build !windows

package excel

// Application drives an installed Excel over COM. It is only available on Windows.
type Application struct{}

// AutomatedWorkbook is a workbook opened inside Application.
type AutomatedWorkbook struct{}

// AutomatedSheet is a worksheet of an AutomatedWorkbook.
type AutomatedSheet struct{}

func StartApplication() (*Application, error) {
	return nil, ErrAutomationUnavailable
}

func (a *Application) Open(path string) (*AutomatedWorkbook, error) {
	return nil, ErrAutomationUnavailable
}

func (a *Application) Quit() error {
	return nil
}

func (w *AutomatedWorkbook) SheetAt(index int) (*AutomatedSheet, error) {
	return nil, ErrAutomationUnavailable
}

func (w *AutomatedWorkbook) Sheet(name string) (*AutomatedSheet, error) {
	return nil, ErrAutomationUnavailable
}

func (w *AutomatedWorkbook) Save() error {
	return ErrAutomationUnavailable
}

func (w *AutomatedWorkbook) Close() error {
	return nil
}

func (s *AutomatedSheet) Rename(name string) error {
	return ErrAutomationUnavailable
}

func (s *AutomatedSheet) CopyBefore(before *AutomatedSheet) error {
	return ErrAutomationUnavailable
}

func (s *AutomatedSheet) Delete() error {
	return ErrAutomationUnavailable
}

func (s *AutomatedSheet) SetValue(cell string, value interface{}) error {
	return ErrAutomationUnavailable
}

func (s *AutomatedSheet) ExportPDF(path string) error {
	return ErrAutomationUnavailable
}

func (s *AutomatedSheet) Release() {}

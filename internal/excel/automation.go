package excel

import "errors"

// ErrAutomationUnavailable is returned when no scriptable spreadsheet
// application can be started on this machine.
var ErrAutomationUnavailable = errors.New("spreadsheet application automation is not available on this platform")

// xlTypePDF is the fixed-format type passed to ExportAsFixedFormat.
const xlTypePDF = 0

package certificate

import (
	"errors"

	"certgen/internal/excel"
	"certgen/internal/meter"
)

var (
	// ErrInputNotFound indicates the calibration workbook does not exist.
	ErrInputNotFound = meter.ErrInputNotFound

	// ErrTemplateNotFound indicates the certificate template does not exist.
	ErrTemplateNotFound = errors.New("template file not found")

	// ErrFileLocked indicates the output workbook is held open by another process.
	ErrFileLocked = errors.New("file is locked by another process")

	// ErrNoRecords indicates the input sheet has no row with both location and serial.
	ErrNoRecords = errors.New("no meter records found")

	// ErrAutomationUnavailable indicates the spreadsheet application cannot be driven here.
	ErrAutomationUnavailable = excel.ErrAutomationUnavailable
)

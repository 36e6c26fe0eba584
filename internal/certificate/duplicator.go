package certificate

import (
	"fmt"

	"certgen/internal/config"
)

// Workbook is an output workbook being filled with certificate sheets.
type Workbook interface {
	// Duplicate adds a copy of the template sheet named name.
	Duplicate(name string) (SheetWriter, error)
	// Save writes the workbook to its output path.
	Save() error
	// Close releases every resource, whether or not Save succeeded.
	Close() error
}

// Duplicator produces output workbooks whose sheets are copies of a template.
type Duplicator interface {
	Name() string
	Open(templatePath, outputPath string) (Workbook, error)
}

// NewDuplicator returns the strategy registered under name.
func NewDuplicator(name string) (Duplicator, error) {
	switch name {
	case "", config.StrategyLibrary:
		return LibraryDuplicator{}, nil
	case config.StrategyAutomation:
		return AutomationDuplicator{}, nil
	default:
		return nil, fmt.Errorf("unknown duplication strategy %q", name)
	}
}

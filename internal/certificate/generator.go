// Package certificate builds one certificate sheet per meter record from a
// template workbook.
package certificate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"certgen/internal/excel"
	"certgen/internal/logger"
	"certgen/internal/meter"
	"certgen/internal/sheetname"
)

// Request is everything one generation run needs.
type Request struct {
	InputPath    string
	TemplatePath string // file, or directory holding the template
	OutputPath   string
	SheetPrefix  string
	Input        meter.Options
}

// Progress is reported after each certificate sheet is written.
type Progress struct {
	Current int
	Total   int
	Sheet   string
}

// Result summarises a successful run.
type Result struct {
	Count      int
	Sheets     []string
	OutputPath string
	Duration   time.Duration
}

type Generator struct {
	Duplicator Duplicator
	Layout     Layout
}

func NewGenerator(dup Duplicator) *Generator {
	return &Generator{Duplicator: dup, Layout: DefaultLayout()}
}

// Generate extracts every record from the input workbook and writes one
// certificate sheet per record to the output workbook. observe may be nil.
func (g *Generator) Generate(ctx context.Context, req Request, observe func(Progress)) (Result, error) {
	start := time.Now()
	dup := g.Duplicator
	if dup == nil {
		dup = LibraryDuplicator{}
	}
	layout := g.Layout
	if layout == (Layout{}) {
		layout = DefaultLayout()
	}

	templatePath, err := validateRequest(req)
	if err != nil {
		return Result{}, err
	}

	records, err := meter.ExtractFile(req.InputPath, req.Input)
	if err != nil {
		return Result{}, err
	}
	if len(records) == 0 {
		return Result{}, fmt.Errorf("%w in %s", ErrNoRecords, req.InputPath)
	}

	logger.Info("Generating certificates",
		"input", req.InputPath,
		"template", templatePath,
		"output", req.OutputPath,
		"prefix", req.SheetPrefix,
		"strategy", dup.Name(),
		"records", len(records))

	wb, err := dup.Open(templatePath, req.OutputPath)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if cerr := wb.Close(); cerr != nil {
			logger.Warn("Failed to close output workbook", "output", req.OutputPath, "error", cerr)
		}
	}()

	names := sheetname.NewRegistry()
	sheets := make([]string, 0, len(records))
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		name := names.Claim(sheetname.Derive(req.SheetPrefix, rec.Location, i+1))
		w, err := wb.Duplicate(name)
		if err != nil {
			return Result{}, fmt.Errorf("row %d (%s): %w", rec.Row, rec.Location, err)
		}
		if err := Fill(w, rec, layout); err != nil {
			return Result{}, fmt.Errorf("row %d (%s): %w", rec.Row, rec.Location, err)
		}
		sheets = append(sheets, name)

		logger.Debug("Created certificate sheet", "sheet", name, "row", rec.Row, "serial", rec.Serial)
		if observe != nil {
			observe(Progress{Current: i + 1, Total: len(records), Sheet: name})
		}
	}

	if err := wb.Save(); err != nil {
		return Result{}, err
	}

	res := Result{
		Count:      len(sheets),
		Sheets:     sheets,
		OutputPath: req.OutputPath,
		Duration:   time.Since(start),
	}
	logger.Info("Certificates generated", "output", req.OutputPath, "count", res.Count, "duration", res.Duration)
	return res, nil
}

// validateRequest checks the files involved and returns the resolved template path.
func validateRequest(req Request) (string, error) {
	if req.SheetPrefix == "" {
		return "", fmt.Errorf("sheet prefix is required")
	}
	if req.OutputPath == "" {
		return "", fmt.Errorf("output path is required")
	}
	if _, err := os.Stat(req.InputPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrInputNotFound, req.InputPath)
	}

	templatePath, err := excel.FindTemplate(req.TemplatePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, req.TemplatePath)
		}
		return "", err
	}

	if dir := filepath.Dir(req.OutputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output folder: %w", err)
		}
	}
	if err := checkNotLocked(req.OutputPath); err != nil {
		return "", err
	}
	return templatePath, nil
}

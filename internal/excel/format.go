package excel

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"certgen/internal/logger"
)

// ConvertToPDF runs LibreOffice headless to convert a workbook to PDF in
// outDir and returns the path of the produced file.
func ConvertToPDF(ctx context.Context, soffice, inputFilePath, outDir string) (string, error) {
	if _, err := os.Stat(inputFilePath); os.IsNotExist(err) {
		return "", fmt.Errorf("workbook not found: %s", inputFilePath)
	}
	if soffice == "" {
		soffice = "soffice"
	}
	if _, err := exec.LookPath(soffice); err != nil {
		return "", fmt.Errorf("libreoffice not found (%s): %w", soffice, err)
	}

	cmd := exec.CommandContext(ctx, soffice, "--headless", "--norestore", "--convert-to", "pdf", "--outdir", outDir, inputFilePath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		logger.Error("LibreOffice conversion failed", "input", inputFilePath, "output", string(output), "error", err)
		return "", fmt.Errorf("libreoffice conversion failed: %w: %s", err, strings.TrimSpace(string(output)))
	}

	base := strings.TrimSuffix(filepath.Base(inputFilePath), filepath.Ext(inputFilePath))
	pdfPath := filepath.Join(outDir, base+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("libreoffice reported success but %s is missing: %s", pdfPath, strings.TrimSpace(string(output)))
	}

	logger.Debug("Converted workbook to PDF", "input", inputFilePath, "pdf", pdfPath)
	return pdfPath, nil
}

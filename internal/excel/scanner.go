package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindTemplate resolves a template location. A file path is returned as is;
// for a directory the first .xlsx file by name is used, skipping the "~$"
// lock files Excel leaves next to open workbooks.
func FindTemplate(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return path, nil
	}

	xlsxFiles, err := getXlsxFiles(path)
	if err != nil {
		return "", fmt.Errorf("failed to list templates in %s: %w", path, err)
	}
	if len(xlsxFiles) == 0 {
		return "", fmt.Errorf("no .xlsx template found in directory: %s: %w", path, os.ErrNotExist)
	}
	return xlsxFiles[0], nil
}

// getXlsxFiles returns the .xlsx files directly inside dir, sorted by name.
func getXlsxFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var xlsxFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "~$") {
			continue
		}
		if strings.ToLower(filepath.Ext(name)) == ".xlsx" {
			xlsxFiles = append(xlsxFiles, filepath.Join(dir, name))
		}
	}
	sort.Strings(xlsxFiles)
	return xlsxFiles, nil
}

// ListSheets returns the sheet names of the workbook at path.
func ListSheets(path string) ([]string, error) {
	editor, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer editor.Close()

	return editor.GetSheetNames(), nil
}

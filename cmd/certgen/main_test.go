package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func saveWorkbook(t *testing.T, path string, fill func(f *excelize.File)) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	fill(f)
	require.NoError(t, f.SaveAs(path))
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

// newWorkspace writes a config with one good job followed by one missing
// its sheet prefix.
func newWorkspace(t *testing.T) (dir, configFile string) {
	t.Helper()
	dir = t.TempDir()
	saveWorkbook(t, filepath.Join(dir, "template.xlsx"), func(f *excelize.File) {
		require.NoError(t, f.SetCellValue("Sheet1", "A1", "CERTIFICATE"))
	})
	saveWorkbook(t, filepath.Join(dir, "towerA.xlsx"), func(f *excelize.File) {
		require.NoError(t, f.SetSheetRow("Sheet1", "A5", &[]any{"Shop 1", "SN-1", 65, nil, 20.0, 25.0, 1.2, 100}))
	})

	configFile = filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
base_directory = "`+filepath.ToSlash(dir)+`"
template_file = "template.xlsx"

[metrics]
textfile = "certgen.prom"

[[jobs]]
name = "Tower A"
input_file = "towerA.xlsx"
output_file = "out/towerA_certificates.xlsx"
sheet_prefix = "TowerA"

[[jobs]]
name = "Broken"
input_file = "towerA.xlsx"
output_file = "out/broken.xlsx"
`), 0644))
	return dir, configFile
}

func TestBatchCommand(t *testing.T) {
	dir, configFile := newWorkspace(t)

	err := execute(t, "batch", "--config", configFile, "--log-dir", filepath.Join(dir, "logs"))
	assert.EqualError(t, err, "1 of 2 jobs failed")
	assert.FileExists(t, filepath.Join(dir, "out", "towerA_certificates.xlsx"))
	assert.NoFileExists(t, filepath.Join(dir, "out", "broken.xlsx"))
	assert.FileExists(t, filepath.Join(dir, "certgen.prom"))
	assert.FileExists(t, filepath.Join(dir, "logs", "certgen.log"))
}

func TestBatchCommand_FailsWhenAJobFails(t *testing.T) {
	dir, configFile := newWorkspace(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "towerA.xlsx")))

	err := execute(t, "batch", "--config", configFile, "--log-dir", filepath.Join(dir, "logs"))
	assert.EqualError(t, err, "2 of 2 jobs failed")
}

func TestGenerateCommand(t *testing.T) {
	dir, configFile := newWorkspace(t)
	output := filepath.Join(dir, "single.xlsx")

	err := execute(t, "generate", "--config", configFile, "--log-dir", filepath.Join(dir, "logs"),
		"--input", filepath.Join(dir, "towerA.xlsx"),
		"--output", output,
		"--prefix", "GF")
	require.NoError(t, err)

	f, err := excelize.OpenFile(output)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"GF_SHOP_1"}, f.GetSheetList())
}

func TestGenerateCommand_RequiresFlags(t *testing.T) {
	dir, configFile := newWorkspace(t)
	err := execute(t, "generate", "--config", configFile, "--log-dir", filepath.Join(dir, "logs"))
	assert.Error(t, err)
}

func TestGenerateCommand_UnknownStrategy(t *testing.T) {
	dir, configFile := newWorkspace(t)
	err := execute(t, "generate", "--config", configFile, "--log-dir", filepath.Join(dir, "logs"),
		"-i", "a.xlsx", "-o", "b.xlsx", "-p", "X", "--strategy", "magic")
	assert.ErrorContains(t, err, "unknown duplication strategy")
}

func TestSheetsCommand(t *testing.T) {
	dir, configFile := newWorkspace(t)
	err := execute(t, "sheets", "--config", configFile, "--log-dir", filepath.Join(dir, "logs"),
		"--workbook", filepath.Join(dir, "towerA.xlsx"))
	assert.NoError(t, err)

	err = execute(t, "sheets", "--config", configFile, "--log-dir", filepath.Join(dir, "logs"),
		"--workbook", filepath.Join(dir, "missing.xlsx"))
	assert.Error(t, err)
}

func TestExportCommand_UnknownExporter(t *testing.T) {
	dir, configFile := newWorkspace(t)
	err := execute(t, "export-pdf", "--config", configFile, "--log-dir", filepath.Join(dir, "logs"),
		"--workbook", filepath.Join(dir, "towerA.xlsx"), "--all", "--exporter", "printer")
	assert.ErrorContains(t, err, "unknown exporter")
}

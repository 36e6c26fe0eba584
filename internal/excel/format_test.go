package excel

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToPDF_MissingInput(t *testing.T) {
	_, err := ConvertToPDF(context.Background(), "soffice", filepath.Join(t.TempDir(), "nope.xlsx"), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workbook not found")
}

func TestConvertToPDF_MissingBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	saveEmptyWorkbook(t, path)

	_, err := ConvertToPDF(context.Background(), "certgen-no-such-office-binary", path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "libreoffice not found")
}

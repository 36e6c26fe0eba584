//go:build !windows

package certificate

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutomationUnavailable(t *testing.T) {
	req := newRequest(t, []any{"Shop 1", "SN-001"})

	_, err := NewGenerator(AutomationDuplicator{}).Generate(context.Background(), req, nil)
	assert.ErrorIs(t, err, ErrAutomationUnavailable)
	assert.NoFileExists(t, req.OutputPath)
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := writeTemplate(t, dir)
	dst := filepath.Join(dir, "copy.xlsx")

	require.NoError(t, copyFile(src, dst))
	assert.FileExists(t, dst)

	err := copyFile(filepath.Join(dir, "missing.xlsx"), dst)
	assert.Error(t, err)
}

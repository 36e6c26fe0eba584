//go:build !windows

package export

import (
	"context"
	"testing"

	"certgen/internal/excel"

	"github.com/stretchr/testify/assert"
)

func TestAutomation_Unavailable(t *testing.T) {
	wb := writeCertificates(t, "A")
	_, err := Automation{}.Export(context.Background(), wb, []string{"A"}, t.TempDir())
	assert.ErrorIs(t, err, excel.ErrAutomationUnavailable)
}

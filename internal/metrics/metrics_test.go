package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveJob(t *testing.T) {
	ok := testutil.ToFloat64(jobsTotal.WithLabelValues(StatusSuccess))
	failed := testutil.ToFloat64(jobsTotal.WithLabelValues(StatusFailed))
	certs := testutil.ToFloat64(certificatesTotal)

	ObserveJob(true, 12, 2*time.Second)
	ObserveJob(false, 0, time.Second)

	assert.Equal(t, ok+1, testutil.ToFloat64(jobsTotal.WithLabelValues(StatusSuccess)))
	assert.Equal(t, failed+1, testutil.ToFloat64(jobsTotal.WithLabelValues(StatusFailed)))
	assert.Equal(t, certs+12, testutil.ToFloat64(certificatesTotal))
}

func TestObservePDFExport(t *testing.T) {
	before := testutil.ToFloat64(pdfExportsTotal.WithLabelValues(StatusFailed))
	ObservePDFExport(false)
	assert.Equal(t, before+1, testutil.ToFloat64(pdfExportsTotal.WithLabelValues(StatusFailed)))
}

func TestWriteTextfile(t *testing.T) {
	ObserveJob(true, 1, time.Millisecond)
	path := filepath.Join(t.TempDir(), "certgen.prom")

	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "certgen_jobs_total")
	assert.Contains(t, string(data), "certgen_certificates_total")
	assert.Contains(t, string(data), "certgen_job_duration_seconds_bucket")
}

package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counts(t *testing.T) {
	r := NewRecorder()

	r.RungAttempted(1, 10*time.Millisecond, 2*time.Second)
	r.RungAttempted(2, 12*time.Millisecond, 3*time.Second)
	r.Accepted(2)
	r.FileProcessed(StatusRenamed)
	r.FileProcessed(StatusRenamed)
	r.FileProcessed(StatusFailed)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.RungsTotal.WithLabelValues("1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.RungsTotal.WithLabelValues("2")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.RungsTotal.WithLabelValues("3")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.AcceptedTotal.WithLabelValues("2")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.FilesTotal.WithLabelValues(StatusRenamed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.FilesTotal.WithLabelValues(StatusFailed)))
	assert.Equal(t, 1, testutil.CollectAndCount(r.ModelSeconds))

	expected := `
# HELP v2n_accepted_total Transcriptions returned, by the rung that produced them
# TYPE v2n_accepted_total counter
v2n_accepted_total{rung="2"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected), "v2n_accepted_total"))
}

func TestRecorder_SeparateRegistries(t *testing.T) {
	first := NewRecorder()
	second := NewRecorder()

	first.FileProcessed(StatusDryRun)
	assert.Equal(t, 1.0, testutil.ToFloat64(first.FilesTotal.WithLabelValues(StatusDryRun)))
	assert.Equal(t, 0.0, testutil.ToFloat64(second.FilesTotal.WithLabelValues(StatusDryRun)))
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.RungAttempted(1, time.Second, time.Second)
		r.Accepted(1)
		r.FileProcessed(StatusFailed)
	})
	assert.Nil(t, r.Registry())
	assert.NoError(t, r.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.RungAttempted(3, time.Millisecond, time.Second)
	r.Accepted(3)

	path := filepath.Join(t.TempDir(), "textfile", "v2n.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `v2n_rungs_total{rung="3"} 1`)
	assert.Contains(t, string(data), "v2n_model_seconds_count 1")

	assert.NoError(t, r.WriteTextfile(""), "an empty path disables the export")
}

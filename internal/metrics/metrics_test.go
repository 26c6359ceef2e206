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

func TestObserve(t *testing.T) {
	m := New()
	m.ObserveCreated("rings", 480, 0)
	m.ObserveCreated("radials", 120, 120)
	m.ObserveCreated("radials", 1, 2)
	m.ObserveErase(7, 3)
	m.ObservePlacement(60)
	m.ObserveRun(15 * time.Millisecond)

	assert.Equal(t, 480.0, testutil.ToFloat64(m.TracesCreated.WithLabelValues("rings")))
	assert.Equal(t, 122.0, testutil.ToFloat64(m.ViasCreated.WithLabelValues("radials")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.TracesRemoved))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ViasRemoved))
	assert.Equal(t, 60.0, testutil.ToFloat64(m.FootprintsPlaced))
}

func TestNilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveCreated("taps", 1, 1)
		m.ObserveErase(1, 1)
		m.ObservePlacement(1)
		m.ObserveRun(time.Second)
	})
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveErase(2, 0)
	path := filepath.Join(t.TempDir(), "ringroute.prom")
	require.NoError(t, m.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ringroute_traces_removed_total 2")
}

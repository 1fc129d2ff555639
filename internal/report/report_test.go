package report

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsfeat/tsfeat/internal/engine"
	"github.com/tsfeat/tsfeat/internal/features"
	"github.com/tsfeat/tsfeat/internal/series"
)

func computedRun(t *testing.T) (*series.Series, *engine.Result) {
	t.Helper()
	data := make([]float64, 64)
	for i := range data {
		data[i] = math.Sin(float64(i)/4) + 0.1*float64(i%5)
	}
	s := &series.Series{Name: "report-test", ID: 1, Data: data}

	masters, ops := features.DefaultCatalog()
	res, err := engine.Run(engine.Config{}, s, ops, masters)
	require.NoError(t, err)
	return s, res
}

func TestWriteHTML(t *testing.T) {
	t.Parallel()

	s, res := computedRun(t)
	_, ops := features.DefaultCatalog()

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, s.Name, ops, res))

	out := buf.String()
	assert.Contains(t, out, "Output quality")
	assert.Contains(t, out, "Feature values")
	assert.Contains(t, out, s.Name)
}

func TestWriteHTMLLengthMismatch(t *testing.T) {
	t.Parallel()

	_, res := computedRun(t)
	err := WriteHTML(&bytes.Buffer{}, "bad", nil, res)
	assert.Error(t, err)
}

func TestSaveSeriesPlot(t *testing.T) {
	t.Parallel()

	s, _ := computedRun(t)
	path := filepath.Join(t.TempDir(), "series.png")
	require.NoError(t, SaveSeriesPlot(path, s, s.Standardize()))
}

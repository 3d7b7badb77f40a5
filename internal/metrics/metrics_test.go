package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tableparser "github.com/RedSunAtNight/TableParser"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorObserve(t *testing.T) {
	t.Parallel()

	c := NewCollector()

	res, err := tableparser.Detect(tableparser.NewRows("a", []string{"a,b", "c,d", "e,f"}))
	require.NoError(t, err)
	c.Observe(res, err)

	res, err = tableparser.Detect(tableparser.NewRows("b", []string{"abc"}))
	require.NoError(t, err)
	c.Observe(res, err)

	c.Observe(tableparser.Detect(tableparser.NewRows("c", nil)))
	c.Observe(tableparser.Result{}, &tableparser.DetectError{Source: "d", Err: errors.New("gone")})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.detections.WithLabelValues("single_delimiter")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.detections.WithLabelValues("no_delimiter")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.errors.WithLabelValues("no_rows")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.errors.WithLabelValues("row_source")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.candidates))
	assert.Equal(t, 1, testutil.CollectAndCount(c.rowsScanned))

	expected := `
# HELP tableparser_detections_total Total number of completed delimiter detections
# TYPE tableparser_detections_total counter
tableparser_detections_total{status="no_delimiter"} 1
tableparser_detections_total{status="single_delimiter"} 1
`
	require.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected), "tableparser_detections_total"))
}

func TestCollectorWriteTextfile(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	res, err := tableparser.Detect(tableparser.NewRows("a", []string{"x;y", "z;w"}))
	require.NoError(t, err)
	c.Observe(res, nil)

	path := filepath.Join(t.TempDir(), "tableparser.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `tableparser_detections_total{status="single_delimiter"} 1`)
	assert.Contains(t, string(data), "tableparser_candidates 1")

	assert.Error(t, c.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom")))
}

// Package metrics records delimiter detection outcomes as Prometheus metrics.
//
// Each Collector owns its registry so tests and one-shot CLI runs never share
// state through the global default registerer. The CLI exports the registry
// with WriteTextfile for the node-exporter textfile collector.
//
// Example:
//
//	c := metrics.NewCollector()
//	res, err := tableparser.Detect(rows)
//	c.Observe(res, err)
//	_ = c.WriteTextfile("/var/lib/node_exporter/tableparser.prom")
package metrics

import (
	"errors"
	"fmt"

	tableparser "github.com/RedSunAtNight/TableParser"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the detection metrics.
type Collector struct {
	registry *prometheus.Registry

	detections  *prometheus.CounterVec
	errors      *prometheus.CounterVec
	rowsScanned prometheus.Histogram
	candidates  prometheus.Gauge
}

// NewCollector creates a Collector registered on a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,

		// Labels: status (no_delimiter/single_delimiter/resolved_by_precedence)
		detections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tableparser_detections_total",
				Help: "Total number of completed delimiter detections",
			},
			[]string{"status"},
		),

		// Labels: reason (no_rows/row_source/file/other)
		errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tableparser_detection_errors_total",
				Help: "Total number of failed delimiter detections",
			},
			[]string{"reason"},
		),

		rowsScanned: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name: "tableparser_rows_scanned",
				Help: "Rows replayed during occurrence counting",
				Buckets: []float64{
					0,   // single-row tables
					1,   // two rows
					10,  // small tables
					50,  // medium tables
					98,  // truncated window
					100, // full scan of the largest untruncated table
				},
			},
		),

		candidates: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tableparser_candidates",
				Help: "Consistent delimiter candidates in the last detection",
			},
		),
	}
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Observe records the outcome of one detection run.
func (c *Collector) Observe(res tableparser.Result, err error) {
	if err != nil {
		c.errors.WithLabelValues(errorReason(err)).Inc()
		return
	}
	c.detections.WithLabelValues(res.Status.String()).Inc()
	c.rowsScanned.Observe(float64(res.Window.ScannedRows))
	c.candidates.Set(float64(len(res.Candidates)))
}

// WriteTextfile writes every metric to path in the Prometheus text format.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}

func errorReason(err error) string {
	var (
		derr *tableparser.DetectError
		ferr *tableparser.FileError
	)
	switch {
	case errors.Is(err, tableparser.ErrNoRows):
		return "no_rows"
	case errors.As(err, &derr):
		return "row_source"
	case errors.As(err, &ferr):
		return "file"
	default:
		return "other"
	}
}

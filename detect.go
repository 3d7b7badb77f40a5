package tableparser

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

// Result is the outcome of a detection run.
type Result struct {
	// Delimiter is the chosen separator; empty when Status is StatusNoDelimiter.
	Delimiter string
	// Columns is the number of cells per row implied by the delimiter.
	Columns int
	// Status reports how the delimiter was chosen.
	Status Status
	// Window describes the rows replayed during counting.
	Window SamplingWindow
	// Candidates holds the consistent candidates the decision was made from,
	// ordered by character code.
	Candidates []Candidate
}

// Found reports whether a delimiter was chosen.
func (r Result) Found() bool {
	return r.Delimiter != ""
}

// Detector infers the delimiter of a RowSource. The zero value is not usable;
// create one with NewDetector. A Detector holds no per-run state and may be
// shared.
type Detector struct {
	// TruncateAbove is the row count above which counting uses a fixed window.
	TruncateAbove int
	// SampleRows is the window size used for tables longer than TruncateAbove.
	SampleRows int

	logger *zap.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithLogger sets the logger used for detection diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(d *Detector) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithSampling overrides the truncation threshold and window size. Values
// below one are ignored.
func WithSampling(truncateAbove, sampleRows int) Option {
	return func(d *Detector) {
		if truncateAbove > 0 {
			d.TruncateAbove = truncateAbove
		}
		if sampleRows > 0 {
			d.SampleRows = sampleRows
		}
	}
}

// NewDetector returns a Detector with the default sampling window.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		TruncateAbove: DefaultTruncateAbove,
		SampleRows:    DefaultSampleRows,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDetector = NewDetector()

// Detect infers the delimiter of src using a default Detector.
func Detect(src RowSource) (Result, error) {
	return defaultDetector.Detect(src)
}

// Detect infers the delimiter of src. The last row seeds the candidates, the
// sampled rows discard every candidate with an inconsistent count, and the
// precedence rules pick among the survivors.
//
// A sample row without candidates is not an error: the result has
// StatusNoDelimiter and a single column. Row source failures are returned as
// *DetectError.
func (d *Detector) Detect(src RowSource) (Result, error) {
	total := src.RowCount()
	if total == 0 {
		return Result{Status: StatusNeverRun}, ErrNoRows
	}
	log := d.logger.With(zap.String("source", src.Name()), zap.Int("rows", total))

	sample, err := src.Row(total - 1)
	if err != nil {
		return Result{Status: StatusNeverRun}, &DetectError{Source: src.Name(), Row: total - 1, Err: err}
	}
	set := scanCandidates(sample)
	log.Debug("scanned sample row", zap.String("candidates", describeSet(set)))

	window := newSamplingWindow(total, d.TruncateAbove, d.SampleRows)
	if err := countOccurrences(set, src, window); err != nil {
		if errors.Is(err, ErrNoCandidates) {
			log.Warn("no delimiters found; the table may contain only one column")
			return Result{Columns: 1, Status: StatusNoDelimiter, Window: window}, nil
		}
		return Result{Status: StatusNeverRun, Window: window}, err
	}

	set = filterConsistent(set)
	log.Debug("filtered inconsistent candidates",
		zap.String("consistent", describeSet(set)),
		zap.Int("scanned_rows", window.ScannedRows),
		zap.Bool("truncated", window.Truncated))

	res, decidedBy := resolve(set)
	res.Window = window
	res.Candidates = set.clone()

	if res.Status == StatusNoDelimiter {
		log.Warn("no consistent delimiter; the table may contain only one column, or the data may be malformed")
		return res, nil
	}
	log.Debug("delimiter chosen",
		zap.String("delimiter", DelimiterName(res.Delimiter)),
		zap.Int("columns", res.Columns),
		zap.String("rule", decidedBy),
		zap.Stringer("status", res.Status))
	return res, nil
}

// describeSet renders a candidate set as name=count pairs for logging.
func describeSet(set candidateSet) string {
	buf := make([]byte, 0, len(set)*8)
	for i, c := range set {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, DelimiterName(string([]byte{c.Char}))...)
		buf = append(buf, '=')
		buf = strconv.AppendInt(buf, int64(c.Count()), 10)
	}
	return string(buf)
}

// DelimiterName returns a printable name for a delimiter, spelling out
// whitespace and control characters.
func DelimiterName(d string) string {
	switch d {
	case "":
		return "none"
	case "\t":
		return "tab"
	case " ":
		return "space"
	}
	if len(d) == 1 && (d[0] < 0x20 || d[0] == 0x7f) {
		return fmt.Sprintf("0x%02x", d[0])
	}
	return d
}

package tableparser

import "strings"

// Table splits the rows of a RowSource into columns. The delimiter is
// detected automatically unless the caller sets one.
type Table struct {
	src      RowSource
	detector *Detector

	delim   string
	manual  bool
	columns int
	status  Status
	result  Result
}

// NewTable creates a Table over src that detects its delimiter with d. A nil
// detector selects the default one.
func NewTable(src RowSource, d *Detector) *Table {
	if d == nil {
		d = defaultDetector
	}
	return &Table{src: src, detector: d, status: StatusNeverRun}
}

// SetDelimiter fixes the delimiter, which may be several characters long, and
// disables detection. An empty delimiter is the same as UnsetDelimiter.
func (t *Table) SetDelimiter(delim string) {
	t.UnsetDelimiter()
	if delim == "" {
		return
	}
	t.delim = delim
	t.manual = true
}

// UnsetDelimiter clears a delimiter set with SetDelimiter and re-enables
// detection.
func (t *Table) UnsetDelimiter() {
	t.delim = ""
	t.manual = false
	t.columns = 0
	t.status = StatusNeverRun
	t.result = Result{}
}

// Delimiter returns the delimiter in use, or "" while none is known.
func (t *Table) Delimiter() string {
	return t.delim
}

// Manual reports whether the delimiter was set by the caller.
func (t *Table) Manual() bool {
	return t.manual
}

// Status returns the status of the last detection run.
func (t *Table) Status() Status {
	return t.status
}

// NumColumns returns the column count established by Detect or Columns, or
// zero before either has run.
func (t *Table) NumColumns() int {
	return t.columns
}

// Result returns the outcome of the last successful detection run.
func (t *Table) Result() Result {
	return t.result
}

// DelimiterInfo describes the status of the last detection run.
func (t *Table) DelimiterInfo() string {
	return t.status.Describe()
}

// Detect runs delimiter detection and records its outcome on the table. It
// is a no-op returning a StatusNeverRun Result when the delimiter was set
// manually.
func (t *Table) Detect() (Result, error) {
	if t.manual {
		return Result{Status: StatusNeverRun}, nil
	}
	res, err := t.detector.Detect(t.src)
	t.status = res.Status
	if err != nil {
		return res, err
	}
	t.result = res
	t.delim = res.Delimiter
	t.columns = res.Columns
	return res, nil
}

// Columns splits every row into cells and returns them column by column.
// With a manual delimiter the column count is taken from the first row.
// Every row must hold at least columns-1 delimiters; the last cell keeps the
// remainder of the row.
func (t *Table) Columns() ([][]string, error) {
	if err := t.establishColumns(); err != nil {
		return nil, err
	}

	cols := make([][]string, t.columns)
	n := t.src.RowCount()
	for i := range cols {
		cols[i] = make([]string, 0, n)
	}
	var cells []string
	for i := 0; i < n; i++ {
		row, err := t.src.Row(i)
		if err != nil {
			return nil, &SplitError{Source: t.src.Name(), Row: i, Err: err}
		}
		var ok bool
		cells, ok = splitRow(cells[:0], row, t.delim, t.columns)
		if !ok {
			return nil, &SplitError{Source: t.src.Name(), Row: i, Err: ErrMissingDelimiter}
		}
		for c, cell := range cells {
			cols[c] = append(cols[c], cell)
		}
	}
	return cols, nil
}

// Records splits every row into cells and returns them row by row.
func (t *Table) Records() ([][]string, error) {
	cols, err := t.Columns()
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, nil
	}
	records := make([][]string, len(cols[0]))
	for r := range records {
		rec := make([]string, len(cols))
		for c := range cols {
			rec[c] = cols[c][r]
		}
		records[r] = rec
	}
	return records, nil
}

func (t *Table) establishColumns() error {
	if !t.manual {
		if t.status == StatusNeverRun {
			if _, err := t.Detect(); err != nil {
				return err
			}
		}
		return nil
	}
	if t.columns > 0 {
		return nil
	}
	first, err := t.src.Row(0)
	if err != nil {
		return &SplitError{Source: t.src.Name(), Row: 0, Err: err}
	}
	t.columns = strings.Count(first, t.delim) + 1
	return nil
}

// splitRow appends the first n cells of row to dst. The last cell holds the
// remainder of the row, delimiters included. It reports false when the row
// has fewer than n-1 delimiters. An empty delimiter yields the whole row.
func splitRow(dst []string, row, delim string, n int) ([]string, bool) {
	if delim == "" || n <= 1 {
		return append(dst, row), true
	}
	for i := 0; i < n-1; i++ {
		idx := strings.Index(row, delim)
		if idx < 0 {
			return dst, false
		}
		dst = append(dst, row[:idx])
		row = row[idx+len(delim):]
	}
	return append(dst, row), true
}

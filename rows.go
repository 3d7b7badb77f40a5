package tableparser

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// RowSource is an ordered, immutable sequence of raw table rows.
type RowSource interface {
	// RowCount returns the number of rows.
	RowCount() int
	// Row returns the raw text of row i; it fails when i is out of range.
	Row(i int) (string, error)
	// Name identifies the source in diagnostics.
	Name() string
}

// Rows is an in-memory RowSource.
type Rows struct {
	name string
	rows []string
}

// NewRows wraps rows as a RowSource. The slice is not copied and must not be
// modified afterwards.
func NewRows(name string, rows []string) *Rows {
	return &Rows{name: name, rows: rows}
}

// RowCount returns the number of rows.
func (r *Rows) RowCount() int {
	if r == nil {
		return 0
	}
	return len(r.rows)
}

// Row returns the raw text of row i.
func (r *Rows) Row(i int) (string, error) {
	if i < 0 || i >= r.RowCount() {
		return "", fmt.Errorf("tableparser: row %d out of range [0,%d)", i, r.RowCount())
	}
	return r.rows[i], nil
}

// Name identifies the source in diagnostics.
func (r *Rows) Name() string {
	if r == nil {
		return ""
	}
	return r.name
}

// LoadRows reads every line of src into memory. Lines end at '\n'; a trailing
// '\r' is stripped so CRLF input yields the same rows as LF input, while a
// lone '\r' stays part of the row. A single empty line at the very end is
// dropped. Reader splits a stream into the same rows.
func LoadRows(name string, src io.Reader) (*Rows, error) {
	br := bufio.NewReaderSize(src, defaultBufferSize)
	var rows []string
	for {
		text, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, &FileError{Path: name, Line: len(rows) + 1, Err: err}
		}
		if len(text) > 0 || err == nil {
			text = strings.TrimSuffix(text, "\n")
			text = strings.TrimSuffix(text, "\r")
			rows = append(rows, text)
		}
		if err == io.EOF {
			break
		}
	}
	if n := len(rows); n > 0 && rows[n-1] == "" {
		rows = rows[:n-1]
	}
	return NewRows(name, rows), nil
}

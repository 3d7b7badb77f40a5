package tableparser

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

var (
	errNilWriter      = errors.New("tableparser: writer is nil")
	errWriterNoTarget = errors.New("tableparser: writer destination cannot be nil")
)

// Writer emits split rows joined by an output delimiter.
type Writer struct {
	dst *bufio.Writer

	// Delimiter separates cells and may be several bytes long. Default is ",".
	Delimiter string
	// Quote wraps cells that contain the delimiter, a quote or a line break.
	// Default is '"'. Zero disables quoting; a record with a cell that would
	// need it is rejected with ErrDelimiterInField before any of it is
	// written, and the writer stays usable.
	Quote byte
	// UseCRLF writes records terminated with \r\n when set.
	UseCRLF bool
	// AlwaysQuote forces quoting for all cells when enabled. It has no effect
	// while Quote is zero.
	AlwaysQuote bool

	err error
}

// NewWriter creates a new Writer with internal buffering tuned for bulk writes.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		panic(errWriterNoTarget.Error())
	}
	return &Writer{
		dst:       bufio.NewWriterSize(w, defaultBufferSize),
		Delimiter: ",",
		Quote:     '"',
	}
}

// Write emits a single record terminated with the configured newline sequence.
func (w *Writer) Write(record []string) error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}

	delim := w.Delimiter
	if delim == "" {
		delim = ","
	}
	if w.Quote == 0 {
		for _, cell := range record {
			if cellNeedsQuote(cell, delim, 0) {
				return ErrDelimiterInField
			}
		}
	}

	for i := range record {
		if i > 0 {
			if _, err := w.dst.WriteString(delim); err != nil {
				return w.fail(err)
			}
		}
		if err := w.writeCell(record[i], delim); err != nil {
			return w.fail(err)
		}
	}

	newline := "\n"
	if w.UseCRLF {
		newline = "\r\n"
	}
	if _, err := w.dst.WriteString(newline); err != nil {
		return w.fail(err)
	}
	return nil
}

// WriteAll writes multiple records, stopping at the first error.
func (w *Writer) WriteAll(records [][]string) error {
	if w == nil {
		return errNilWriter
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes pending buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		return w.fail(err)
	}
	return nil
}

// Reset discards buffered data and the stored error and points the writer at
// dst. Options are kept; on a zero Writer Quote stays zero, so quoting is off.
func (w *Writer) Reset(dst io.Writer) {
	if w == nil {
		return
	}
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	if w.dst == nil {
		w.dst = bufio.NewWriterSize(dst, defaultBufferSize)
	} else {
		w.dst.Reset(dst)
	}
	w.err = nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	if w == nil {
		return errNilWriter
	}
	return w.err
}

func (w *Writer) fail(err error) error {
	w.err = err
	return err
}

func (w *Writer) writeCell(cell, delim string) error {
	needsQuote := w.Quote != 0 && (w.AlwaysQuote || cellNeedsQuote(cell, delim, w.Quote))
	if !needsQuote {
		_, err := w.dst.WriteString(cell)
		return err
	}

	q := string([]byte{w.Quote})
	if _, err := w.dst.WriteString(q); err != nil {
		return err
	}
	if _, err := w.dst.WriteString(strings.ReplaceAll(cell, q, q+q)); err != nil {
		return err
	}
	_, err := w.dst.WriteString(q)
	return err
}

func cellNeedsQuote(cell, delim string, quote byte) bool {
	if strings.Contains(cell, delim) || strings.ContainsAny(cell, "\r\n") {
		return true
	}
	return quote != 0 && strings.IndexByte(cell, quote) >= 0
}

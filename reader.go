package tableparser

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unsafe"
)

const defaultBufferSize = 1 << 10 // 1024 bytes

// ParseError contains location information for row splitting errors.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

// Error formats the parse error message with the stored line, column, and Err values.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("tableparser: parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying Err so ParseError participates in errors.Unwrap.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Reader splits a stream of rows into cells using a known delimiter. It is
// the streaming counterpart of Table for inputs whose delimiter does not need
// to be detected. Quotes carry no meaning. Rows are terminated the same way as
// in LoadRows: at '\n', with a trailing '\r' dropped and a single empty line
// at the end of the stream ignored.
type Reader struct {
	src io.Reader

	// Delimiter separates cells and may be several bytes long. Default is ",".
	Delimiter string
	// Columns is the number of cells per record. Zero takes the count from the
	// first record. The last cell of a record keeps any surplus delimiters.
	Columns int
	// ReuseRecord indicates whether Read should reuse the backing array of the returned slice.
	ReuseRecord bool

	buf    []byte
	bufPos int
	bufLen int
	bufErr error

	record   []string
	lineBuf  []byte
	finished bool
	line     int
}

// NewReader creates a Reader that consumes rows from r, panicking if r is nil.
func NewReader(r io.Reader) *Reader {
	if r == nil {
		panic("tableparser: reader source cannot be nil")
	}

	return &Reader{
		src:       r,
		Delimiter: ",",
		buf:       make([]byte, defaultBufferSize),
		record:    make([]string, 0, 16),
		lineBuf:   make([]byte, 0, 512),
	}
}

// Read splits the next row of the stream. It returns io.EOF when no rows
// remain. A row with too few delimiters yields a *ParseError wrapping
// ErrMissingDelimiter.
func (r *Reader) Read() (dst []string, err error) {
	if r == nil || r.src == nil || r.finished {
		return nil, io.EOF
	}

	done, err := r.readLine()
	if err != nil {
		r.finished = true
		return nil, err
	}
	if done {
		r.finished = true
		return nil, io.EOF
	}
	r.line++
	return r.buildRecord()
}

// ReadAll exhausts the reader, repeatedly calling Read to collect records until io.EOF
// and returning the accumulated records slice plus the first non-EOF error encountered.
func (r *Reader) ReadAll() (records [][]string, err error) {
	for {
		record, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

// Line returns the number of the last row returned by Read, starting at one.
func (r *Reader) Line() int {
	return r.line
}

// readLine fills lineBuf with the next row, without its terminator. Rows end
// at '\n' and a '\r' before it is dropped; a lone '\r' is part of the row.
// It reports done when the stream ended before any byte of a new row was
// seen, or when only one empty line remained.
func (r *Reader) readLine() (done bool, err error) {
	r.lineBuf = r.lineBuf[:0]
	sawData := false

	for {
		if r.bufPos >= r.bufLen {
			if r.bufErr != nil {
				err := r.bufErr
				r.bufErr = nil
				if err == io.EOF {
					// A final row without a terminator still counts.
					r.trimCR()
					return !sawData, nil
				}
				return false, err
			}

			// Pull the next chunk from the source.
			n, err := r.src.Read(r.buf)
			if n == 0 {
				if err != nil {
					r.bufErr = err
				}
				continue
			}
			r.bufPos = 0
			r.bufLen = n
			r.bufErr = err
		}

		data := r.buf[r.bufPos:r.bufLen]
		end := bytes.IndexByte(data, '\n')
		if end < 0 {
			r.lineBuf = append(r.lineBuf, data...)
			r.bufPos = r.bufLen
			sawData = true
			continue
		}

		r.lineBuf = append(r.lineBuf, data[:end]...)
		r.bufPos += end + 1
		r.trimCR()
		if len(r.lineBuf) == 0 {
			// A single empty line at the very end is not a row.
			if _, err := r.peekByte(); err == io.EOF {
				r.bufErr = nil
				return true, nil
			} else if err != nil {
				return false, err
			}
		}
		return false, nil
	}
}

func (r *Reader) trimCR() {
	if n := len(r.lineBuf); n > 0 && r.lineBuf[n-1] == '\r' {
		r.lineBuf = r.lineBuf[:n-1]
	}
}

// buildRecord splits lineBuf into Columns cells, respecting ReuseRecord.
func (r *Reader) buildRecord() ([]string, error) {
	var line string
	if r.ReuseRecord {
		if len(r.lineBuf) > 0 {
			// Zero-copy string construction so cells can share a single backing buffer.
			line = unsafe.String(unsafe.SliceData(r.lineBuf), len(r.lineBuf))
		}
		r.record = r.record[:0]
	} else {
		line = string(r.lineBuf)
		r.record = nil
	}

	delim := r.Delimiter
	if delim == "" {
		delim = ","
	}
	if r.Columns <= 0 {
		r.Columns = strings.Count(line, delim) + 1
	}

	rec, ok := splitRow(r.record, line, delim, r.Columns)
	r.record = rec
	if !ok {
		return nil, &ParseError{Line: r.line, Column: len(r.lineBuf) + 1, Err: ErrMissingDelimiter}
	}
	return r.record, nil
}

// peekByte returns the next buffered byte (refilling from src as needed) and propagates any read error.
func (r *Reader) peekByte() (byte, error) {
	for {
		if r.bufPos < r.bufLen {
			return r.buf[r.bufPos], nil
		}
		if r.bufErr != nil {
			return 0, r.bufErr
		}

		n, err := r.src.Read(r.buf)
		if n == 0 && err != nil {
			return 0, err
		}
		if n == 0 {
			continue
		}
		r.bufPos = 0
		r.bufLen = n
		r.bufErr = err
	}
}

package tableparser

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCandidates is returned when the sample row holds no character that
	// could act as a delimiter. Detect reports it as StatusNoDelimiter.
	ErrNoCandidates = errors.New("tableparser: no delimiter candidates in sample row")
	// ErrNoRows is returned when detection is asked to run on an empty table.
	ErrNoRows = errors.New("tableparser: table has no rows")
	// ErrMissingDelimiter is returned when a row holds fewer delimiters than
	// the column count requires.
	ErrMissingDelimiter = errors.New("tableparser: too few delimiters in row")
	// ErrDelimiterInField is returned by a Writer with quoting disabled when a
	// cell contains the output delimiter.
	ErrDelimiterInField = errors.New("tableparser: delimiter inside unquoted field")
)

// DetectError reports a row source failure during detection.
type DetectError struct {
	Source string
	Row    int
	Err    error
}

// Error formats the failure with the source name and row index.
func (e *DetectError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("tableparser: detecting delimiter for %s at row %d: %v", e.Source, e.Row, e.Err)
}

// Unwrap returns the underlying Err.
func (e *DetectError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// SplitError reports a row that could not be split into the expected number
// of cells.
type SplitError struct {
	Source string
	Row    int
	Err    error
}

// Error formats the failure with the source name and row index.
func (e *SplitError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("tableparser: splitting row %d of %s: %v", e.Row, e.Source, e.Err)
}

// Unwrap returns the underlying Err.
func (e *SplitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FileError reports a failure opening, decompressing or reading a table file.
// Line is zero when the failure is not tied to a line.
type FileError struct {
	Path string
	Line int
	Err  error
}

// Error formats the failure with the path and, when known, the line.
func (e *FileError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line == 0 {
		return fmt.Sprintf("tableparser: reading %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("tableparser: reading %s at line %d: %v", e.Path, e.Line, e.Err)
}

// Unwrap returns the underlying Err.
func (e *FileError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

package tableparser

import "fmt"

// Status reports how a detection run reached its result. The numeric values
// are stable and may be shown to users as diagnostic codes.
type Status int

const (
	// StatusNeverRun means detection has not executed.
	StatusNeverRun Status = -10
	// StatusNoDelimiter means no consistent delimiter was found; the table is
	// treated as a single column.
	StatusNoDelimiter Status = 0
	// StatusSingleDelimiter means exactly one consistent candidate remained.
	StatusSingleDelimiter Status = 1
	// StatusResolvedByPrecedence means several consistent candidates remained
	// and one was chosen by the precedence rules.
	StatusResolvedByPrecedence Status = 2
)

// String returns a short name for the status.
func (s Status) String() string {
	switch s {
	case StatusNeverRun:
		return "never_run"
	case StatusNoDelimiter:
		return "no_delimiter"
	case StatusSingleDelimiter:
		return "single_delimiter"
	case StatusResolvedByPrecedence:
		return "resolved_by_precedence"
	default:
		return fmt.Sprintf("invalid(%d)", int(s))
	}
}

// Valid reports whether s is one of the established status codes.
func (s Status) Valid() bool {
	switch s {
	case StatusNeverRun, StatusNoDelimiter, StatusSingleDelimiter, StatusResolvedByPrecedence:
		return true
	}
	return false
}

// Describe explains the status code in a sentence suitable for diagnostics.
func (s Status) Describe() string {
	prefix := fmt.Sprintf("delimiter detection returned %d. ", int(s))
	switch s {
	case StatusNoDelimiter:
		return prefix + "No valid delimiter was found; the table may contain only one column."
	case StatusSingleDelimiter:
		return prefix + "Exactly one valid delimiter was found."
	case StatusResolvedByPrecedence:
		return prefix + "More than one character could have been the delimiter; one was chosen by the built-in order of precedence."
	case StatusNeverRun:
		return prefix + "Detection never executed."
	default:
		return prefix + "This is not an established status code; detection hit an internal error."
	}
}

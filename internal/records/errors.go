package records

import "fmt"

// MalformedDataError reports estimator output that violates the CSV schema.
// Line is 1-based; Text is the offending line as read.
type MalformedDataError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedDataError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("malformed estimator output: %s", e.Reason)
	}
	return fmt.Sprintf("malformed estimator output at line %d (%q): %s", e.Line, e.Text, e.Reason)
}

// InsufficientDataError is returned by operations that need at least one
// record. Op names the operation that gave up.
type InsufficientDataError struct {
	Op string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: record set is empty", e.Op)
}

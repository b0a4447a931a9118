package hydromet

import (
	"errors"
	"fmt"
)

var (
	// ErrFetch is returned when the source page cannot be retrieved.
	ErrFetch = errors.New("fetch failed")
	// ErrNotFound is returned when the intermediate file is missing.
	ErrNotFound = errors.New("record file not found")
	// ErrMalformedRecord is returned when a line does not carry the expected fields.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrNumericFormat is returned when a numeric field cannot be parsed.
	ErrNumericFormat = errors.New("invalid numeric field")
	// ErrEmptyStore is returned when an aggregate is requested over no observations.
	ErrEmptyStore = errors.New("store holds no observations")
	// ErrNoReport is returned when no run has completed yet.
	ErrNoReport = errors.New("no report available")
)

// RecordError ties a parse failure to the line it came from.
type RecordError struct {
	Date  string
	Line  string
	Field string
	Err   error
}

func (e *RecordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s %q (%s): %v", e.Date, e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Date, e.Line, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

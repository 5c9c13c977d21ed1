package sale

import "fmt"

// Record fields, used to pinpoint which part of a line failed to parse.
const (
	FieldRecord    = "record"
	FieldStaffID   = "staff_id"
	FieldTimestamp = "timestamp"
	FieldProducts  = "products"
	FieldAmount    = "amount"
)

// MalformedRecordError reports a structurally invalid transaction line.
// It carries the raw line and the violated expectation so a bad data
// feed can be triaged without re-running the ingest under a debugger.
type MalformedRecordError struct {
	Line   string // the raw input line, as received
	Field  string // which field failed (see Field* constants)
	Reason string // the violated expectation
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record (%s): %s: %q", e.Field, e.Reason, e.Line)
}

// NewFieldCountError reports a line that does not split into exactly
// four top-level comma-separated fields.
func NewFieldCountError(line string, got int) *MalformedRecordError {
	return &MalformedRecordError{
		Line:   line,
		Field:  FieldRecord,
		Reason: fmt.Sprintf("expected 4 comma-separated fields, got %d", got),
	}
}

// NewFieldError reports a single field that failed validation or
// conversion.
func NewFieldError(line, field, reason string) *MalformedRecordError {
	return &MalformedRecordError{Line: line, Field: field, Reason: reason}
}

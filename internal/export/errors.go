// Package export implements the cleaning-history export pipeline:
// window planning, facility resolution, bounded history streaming,
// row formatting and batch-flushed spreadsheet writing.
package export

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or contradictory window input.
// Field names the offending request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports that no facility cleared the match threshold
// for the given query.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no facility matches %q", e.Query)
}

// CapExceededError reports that the record cap was reached mid-stream.
// Seen is the running total at the page boundary where the cap tripped.
type CapExceededError struct {
	Cap  int
	Seen int
}

func (e *CapExceededError) Error() string {
	return fmt.Sprintf("record cap of %d exceeded (%d records matched)", e.Cap, e.Seen)
}

// StorageError wraps a retrieval or connectivity failure. Callers
// surface it as a generic operation failure; the wrapped detail is for
// logs only.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// FormattingError wraps a single-row projection failure. It is caught
// per entry and the row is skipped; it never aborts the batch.
type FormattingError struct {
	Err error
}

func (e *FormattingError) Error() string {
	return fmt.Sprintf("row formatting failed: %v", e.Err)
}

func (e *FormattingError) Unwrap() error { return e.Err }

// IsTerminal reports whether err ends the job before any rows are
// written (validation and not-found failures).
func IsTerminal(err error) bool {
	var ve *ValidationError
	var nf *NotFoundError
	return errors.As(err, &ve) || errors.As(err, &nf)
}

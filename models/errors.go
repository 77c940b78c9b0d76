package models

import (
	"errors"
	"fmt"
)

// ValidationError is a recoverable, per-field rejection at the edit
// boundary. The store is never mutated when one is returned, so the UI can
// highlight the field and keep the rest of the page editable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError, i.e. a local
// input problem rather than a broken reference or storage failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Referential-integrity guards. These are returned by the edit protocol
// when a delete would leave a dangling reference; the aggregation engine
// itself never fails on a dangling reference, it skips and logs it.
var (
	ErrTrackableInUse  = errors.New("trackable is referenced by a chartable or chart")
	ErrChartableInUse  = errors.New("chartable is referenced by a chart")
	ErrHasResponses    = errors.New("trackable still has recorded responses")
	ErrNoSuchTrackable = errors.New("no such trackable")
	ErrNoSuchChartable = errors.New("no such chartable")
	ErrNoSuchChart     = errors.New("no such chart")
	ErrNoSuchEntry     = errors.New("no such chart entry")
)

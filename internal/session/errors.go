package session

import (
	"errors"
	"fmt"
)

// ErrIncompatibleFormat indicates a document whose major format version does
// not match FormatVersion. The load fails outright; no partial session is
// constructed, because field semantics may differ across majors.
var ErrIncompatibleFormat = errors.New("incompatible session format")

// ErrMalformedDocument is the sentinel matched by errors.Is for any
// structurally invalid persisted document.
var ErrMalformedDocument = errors.New("malformed session document")

// MalformedDocumentError reports which part of a persisted document failed to
// parse or validate.
type MalformedDocumentError struct {
	Field string
	Err   error
}

func (e *MalformedDocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed session document: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("malformed session document: %s", e.Field)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrMalformedDocument) match typed instances.
func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}

func malformed(field string, err error) error {
	return &MalformedDocumentError{Field: field, Err: err}
}

func malformedf(field, format string, args ...any) error {
	return &MalformedDocumentError{Field: field, Err: fmt.Errorf(format, args...)}
}

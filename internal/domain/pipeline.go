package domain

import "fmt"

// The errors below are terminal for the user action that raised them. None is
// retried; the caller surfaces them and waits for the user to try again.

// UploadError reports a failed image upload. Its message is the storage
// service's message, unchanged.
type UploadError struct {
	Slot string
	Err  error
}

func (e *UploadError) Error() string { return e.Err.Error() }
func (e *UploadError) Unwrap() error { return e.Err }

// ResolutionError reports a failed geocoding call. It never blocks anything by
// itself: the location simply stays unset.
type ResolutionError struct {
	Op  string
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve location (%s): %v", e.Op, e.Err)
}
func (e *ResolutionError) Unwrap() error { return e.Err }

// WriteError reports a failed insert or update of a record.
type WriteError struct {
	Entity string
	Err    error
}

func (e *WriteError) Error() string { return e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }

// ReadError reports a failed fetch of a record list or a single record.
type ReadError struct {
	Entity string
	Err    error
}

func (e *ReadError) Error() string { return e.Err.Error() }
func (e *ReadError) Unwrap() error { return e.Err }

// DeleteError reports a failed delete. The row is still present.
type DeleteError struct {
	Entity string
	Err    error
}

func (e *DeleteError) Error() string { return e.Err.Error() }
func (e *DeleteError) Unwrap() error { return e.Err }

// DecodeError reports a stored row that does not match the typed record shape.
type DecodeError struct {
	Entity string
	Column string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s.%s: %v", e.Entity, e.Column, e.Err)
}
func (e *DecodeError) Unwrap() error { return e.Err }

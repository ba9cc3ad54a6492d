package store

import (
	"errors"
	"fmt"
)

// SaveError reports that a mutation was applied in memory but could not be
// persisted. The store stays authoritative; callers surface it as a warning.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string { return fmt.Sprintf("saving tasks: %v", e.Err) }

func (e *SaveError) Unwrap() error { return e.Err }

// IsSaveError reports whether err is (or wraps) a *SaveError.
func IsSaveError(err error) bool {
	var se *SaveError
	return errors.As(err, &se)
}

// CorruptError reports stored data that could not be decoded. The store
// starts empty when it occurs.
type CorruptError struct {
	Err error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("stored tasks are unreadable, starting empty: %v", e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

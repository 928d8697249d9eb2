package pidfile

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyLocked indicates acquisition failed because another process
	// holds the claim and the caller did not ask to wait.
	ErrAlreadyLocked = errors.New("lock is held by another process")

	// ErrLockTimeout indicates a bounded wait expired before the claim freed.
	ErrLockTimeout = errors.New("timed out waiting for lock")

	// ErrNotLocked indicates a release was attempted while no claim exists.
	ErrNotLocked = errors.New("lock is not held")

	// ErrNotMyLock indicates a release was attempted by a process that is not
	// the recorded holder.
	ErrNotMyLock = errors.New("lock is held by a different process")
)

// AccessError reports a filesystem failure unrelated to lock semantics, such
// as permission denial or an I/O error. It is deliberately distinct from the
// sentinel errors above: a caller must never treat a permission failure as
// "someone else holds the lock" or as "the lock is free".
type AccessError struct {
	Op   string
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("pidfile: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

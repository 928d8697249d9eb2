package pidfile

import "time"

// TimeoutLock wraps a Lock with a stored default acquire timeout. It carries
// no state of its own: every operation delegates to the underlying lock, and
// only Acquire injects the default. A zero default keeps the underlying
// fail-fast policy; a negative default waits indefinitely.
type TimeoutLock struct {
	lock    *Lock
	timeout time.Duration
}

// NewTimeout returns a TimeoutLock bound to path with the given default
// acquire timeout.
func NewTimeout(path string, acquireTimeout time.Duration, opts ...Option) *TimeoutLock {
	return &TimeoutLock{
		lock:    New(path, opts...),
		timeout: acquireTimeout,
	}
}

// Acquire takes the lock using the stored default timeout.
func (t *TimeoutLock) Acquire() error { return t.lock.Acquire(t.timeout) }

// AcquireTimeout takes the lock with an explicit timeout, overriding the
// stored default for this call only.
func (t *TimeoutLock) AcquireTimeout(timeout time.Duration) error {
	return t.lock.Acquire(timeout)
}

// DefaultTimeout returns the stored default acquire timeout.
func (t *TimeoutLock) DefaultTimeout() time.Duration { return t.timeout }

func (t *TimeoutLock) Release() error { return t.lock.Release() }

func (t *TimeoutLock) BreakLock() error { return t.lock.BreakLock() }

func (t *TimeoutLock) IsLocked() (bool, error) { return t.lock.IsLocked() }

func (t *TimeoutLock) IAmLocking() (bool, error) { return t.lock.IAmLocking() }

func (t *TimeoutLock) ReadPID() (int, error) { return t.lock.ReadPID() }

func (t *TimeoutLock) Path() string { return t.lock.Path() }

package pidfile

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultPollInterval is how often a waiting Acquire rechecks the claim.
const DefaultPollInterval = 100 * time.Millisecond

// Lock is a PID-file lock bound to a filesystem path. The zero value is not
// usable; construct with New. A Lock holds no cached state, so one value may
// be shared across goroutines: an internal mutex serializes the mutating
// operations within the owning process while the hard-link primitive
// arbitrates between processes.
type Lock struct {
	path string
	sys  System
	poll time.Duration

	mu sync.Mutex
}

// Option adjusts Lock construction.
type Option func(*Lock)

// WithSystem replaces the os-backed filesystem and process-identity provider.
func WithSystem(sys System) Option {
	return func(l *Lock) {
		if sys != nil {
			l.sys = sys
		}
	}
}

// WithPollInterval overrides the wait-loop recheck interval.
func WithPollInterval(d time.Duration) Option {
	return func(l *Lock) {
		if d > 0 {
			l.poll = d
		}
	}
}

// New returns a Lock bound to path.
func New(path string, opts ...Option) *Lock {
	l := &Lock{
		path: path,
		sys:  osSystem{},
		poll: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the lock's PID file location.
func (l *Lock) Path() string { return l.path }

// ReadPID returns the PID recorded in the lock file. It returns 0 with a nil
// error when the file does not exist or its content is not a valid
// non-negative integer; any other read failure surfaces as an *AccessError.
func (l *Lock) ReadPID() (int, error) {
	data, err := l.sys.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, &AccessError{Op: "read", Path: l.path, Err: err}
	}
	return parsePID(data), nil
}

// IsLocked reports whether any process currently holds the claim. The probe
// only checks claim existence; the PID content may still be unreadable.
func (l *Lock) IsLocked() (bool, error) {
	if _, err := l.sys.Stat(l.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, &AccessError{Op: "stat", Path: l.path, Err: err}
	}
	return true, nil
}

// IAmLocking reports whether the calling process is the recorded holder.
func (l *Lock) IAmLocking() (bool, error) {
	locked, err := l.IsLocked()
	if err != nil || !locked {
		return false, err
	}
	pid, err := l.ReadPID()
	if err != nil {
		return false, err
	}
	return pid != 0 && pid == l.sys.Getpid(), nil
}

// Acquire attempts to take the claim and record the caller's PID.
//
// A zero timeout fails immediately with ErrAlreadyLocked when the claim is
// held elsewhere. A positive timeout polls until the claim frees or the
// deadline passes, then fails with ErrLockTimeout. A negative timeout polls
// indefinitely. Re-acquiring a lock this process already holds is a no-op.
func (l *Lock) Acquire(timeout time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	mine, err := l.IAmLocking()
	if err != nil {
		return err
	}
	if mine {
		return nil
	}

	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	for {
		err := l.takeClaim()
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrAlreadyLocked) {
			return err
		}
		if timeout == 0 {
			return ErrAlreadyLocked
		}
		if timeout > 0 && !time.Now().Before(deadline) {
			return ErrLockTimeout
		}
		time.Sleep(l.poll)
	}
}

// takeClaim writes the caller's PID to a uniquely named sidecar in the same
// directory and hard-links it to the lock path. The link either transfers the
// fully written content or fails with EEXIST, so no other process can observe
// a claim without its PID.
func (l *Lock) takeClaim() error {
	pid := l.sys.Getpid()
	sidecar := fmt.Sprintf("%s.%d", l.path, pid)

	content := []byte(strconv.Itoa(pid) + "\n")
	if err := l.sys.WriteFile(sidecar, content, 0o644); err != nil {
		return &AccessError{Op: "write", Path: sidecar, Err: err}
	}
	defer func() { _ = l.sys.Remove(sidecar) }()

	if err := l.sys.Link(sidecar, l.path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrAlreadyLocked
		}
		return &AccessError{Op: "link", Path: l.path, Err: err}
	}
	return nil
}

// Release drops the claim held by the calling process. It fails with
// ErrNotLocked when no claim exists and ErrNotMyLock when the claim belongs
// to a different process or its recorded PID cannot be read, since ownership
// cannot be proven in either case.
func (l *Lock) Release() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	locked, err := l.IsLocked()
	if err != nil {
		return err
	}
	if !locked {
		return ErrNotLocked
	}
	pid, err := l.ReadPID()
	if err != nil {
		return err
	}
	if pid == 0 || pid != l.sys.Getpid() {
		return ErrNotMyLock
	}
	if err := l.sys.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &AccessError{Op: "remove", Path: l.path, Err: err}
	}
	return nil
}

// BreakLock force-clears the claim regardless of holder. It exists for
// administrative recovery of stale locks and is idempotent: breaking an
// absent lock succeeds.
func (l *Lock) BreakLock() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.sys.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &AccessError{Op: "remove", Path: l.path, Err: err}
	}
	return nil
}

func parsePID(data []byte) int {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return 0
	}
	pid, err := strconv.Atoi(text)
	if err != nil || pid < 0 {
		return 0
	}
	return pid
}

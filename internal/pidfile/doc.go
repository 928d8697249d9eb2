// Package pidfile implements a single-instance process lock backed by a Unix
// PID file.
//
// The lock is the file itself: acquisition writes the caller's PID to a
// uniquely named sidecar file and hard-links it to the lock path, so claim
// creation and PID content appear to other processes as one atomic step.
// Exactly one concurrent acquirer wins the link; the rest observe
// ErrAlreadyLocked or poll until a deadline. The file's presence is
// authoritative for held/free; its content only identifies the holder and may
// be stale or unreadable after a crash.
//
// No lock state is cached. Every query re-reads the filesystem because the
// claim can change underneath a process at any time. Waiters are not served in
// any particular order: whichever process observes the freed claim first
// during its poll cycle wins.
//
// A crashed holder leaves the file dangling. Nothing in this package reaps it
// automatically; callers decide when a lock is stale (for example by probing
// the recorded PID) and call BreakLock to recover.
package pidfile

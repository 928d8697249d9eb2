// Package supervise runs a managed command while holding the PID-file lock.
//
// The supervisor is the lock's primary consumer: it acquires the lock before
// starting the child, keeps it for the child's lifetime, and releases it on
// exit. On ctx cancellation the child receives SIGTERM, then SIGKILL after
// the configured grace period. If the supervisor itself dies abnormally the
// claim is left dangling for `pidlock break` to recover.
//
// A flock-based control file serializes concurrent supervisor invocations for
// the same lock path, independent of the PID file itself.
package supervise

// Package journal persists lock lifecycle events in SQLite.
//
// Every acquire, release, break, denial, and supervised run writes one row,
// giving operators an audit trail for `pidlock history` and stale-lock
// forensics. The journal is strictly advisory: lock correctness never depends
// on it, and callers treat journal failures as log-worthy, not fatal.
//
// Schema changes are applied through ordered migration files embedded in the
// binary; applied versions are tracked in schema_migrations.
package journal

// Package main hosts the pidlock CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the PID-file lock: inspecting lock
// state and the recorded owner, running a supervised command under the lock,
// breaking stale locks, browsing the activity journal, and configuration
// scaffolding. It centralizes configuration resolution so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: lock semantics live in internal/pidfile and the
// supervisor in internal/supervise; commands only translate flags and render
// output.
package main

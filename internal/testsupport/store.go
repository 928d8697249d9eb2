package testsupport

import (
	"context"
	"testing"

	"pidlock/internal/config"
	"pidlock/internal/journal"
)

// MustOpenJournal opens a journal.Store for tests and registers cleanup.
func MustOpenJournal(t testing.TB, cfg *config.Config) *journal.Store {
	t.Helper()

	store, err := journal.Open(cfg)
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// RecordEvent inserts an event for tests using the provided store.
func RecordEvent(t testing.TB, store *journal.Store, event journal.Event) {
	t.Helper()

	if err := store.Record(context.Background(), event); err != nil {
		t.Fatalf("store.Record: %v", err)
	}
}

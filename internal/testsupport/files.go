package testsupport

import (
	"os"
	"strconv"
	"testing"
)

// WriteLockFile seeds a pid file at path claiming ownership by pid.
func WriteLockFile(t testing.TB, path string, pid int) {
	t.Helper()

	if err := os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o644); err != nil {
		t.Fatalf("write lock file: %v", err)
	}
}

// CorruptLockFile seeds a pid file whose content is not a valid pid.
func CorruptLockFile(t testing.TB, path string) {
	t.Helper()

	if err := os.WriteFile(path, []byte("b0gUs"), 0o644); err != nil {
		t.Fatalf("write lock file: %v", err)
	}
}

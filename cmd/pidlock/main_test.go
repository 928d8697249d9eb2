package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"pidlock/internal/config"
	"pidlock/internal/journal"
	"pidlock/internal/testsupport"
)

// deadPID sits at the top of the default pid_max range and is effectively
// never in use on test machines.
const deadPID = 4194000

type cliTestEnv struct {
	configPath  string
	lockPath    string
	journalPath string
	baseDir     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	lockPath := filepath.Join(base, "pidlock.pid")
	journalPath := filepath.Join(base, "journal.db")

	content := `
[lock]
path = "` + lockPath + `"

[journal]
enabled = true
path = "` + journalPath + `"
`
	configPath := filepath.Join(base, "config.toml")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{configPath: configPath, lockPath: lockPath, journalPath: journalPath, baseDir: base}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestStatusReportsFreeLock(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "status")
	if err != nil {
		t.Fatalf("status failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "free") {
		t.Fatalf("expected free state in output:\n%s", out)
	}
	if !strings.Contains(out, env.lockPath) {
		t.Fatalf("expected lock path in output:\n%s", out)
	}
}

func TestStatusReportsStaleLock(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteLockFile(t, env.lockPath, deadPID)

	out, err := runCLI(t, env, "status")
	if err != nil {
		t.Fatalf("status failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "stale") {
		t.Fatalf("expected stale owner warning in output:\n%s", out)
	}
}

func TestStatusReportsUnknownOwner(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.CorruptLockFile(t, env.lockPath)

	out, err := runCLI(t, env, "status")
	if err != nil {
		t.Fatalf("status failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "owner unknown") {
		t.Fatalf("expected unknown-owner warning in output:\n%s", out)
	}
}

func TestBreakRefusesLiveOwnerWithoutForce(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteLockFile(t, env.lockPath, os.Getpid())

	if _, err := runCLI(t, env, "break"); err == nil {
		t.Fatal("expected break to refuse a live owner")
	} else if !strings.Contains(err.Error(), "refusing to break") {
		t.Fatalf("unexpected error: %v", err)
	}

	// Forcing clears the lock even with a live owner.
	out, err := runCLI(t, env, "break", "--force")
	if err != nil {
		t.Fatalf("forced break failed: %v\n%s", err, out)
	}
	if _, err := os.Stat(env.lockPath); !os.IsNotExist(err) {
		t.Fatalf("expected lock file removed, stat err=%v", err)
	}
}

func TestBreakClearsStaleLockAndJournals(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteLockFile(t, env.lockPath, deadPID)

	out, err := runCLI(t, env, "break")
	if err != nil {
		t.Fatalf("break failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Broke lock") {
		t.Fatalf("unexpected break output:\n%s", out)
	}

	history, err := runCLI(t, env, "history")
	if err != nil {
		t.Fatalf("history failed: %v\n%s", err, history)
	}
	if !strings.Contains(history, "Broken") {
		t.Fatalf("expected Broken event in history:\n%s", history)
	}
}

func TestBreakWithoutLockIsNoop(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "break")
	if err != nil {
		t.Fatalf("break failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "nothing to break") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRunExecutesCommandAndReleasesLock(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "run", "--", "/bin/true")
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	if _, err := os.Stat(env.lockPath); !os.IsNotExist(err) {
		t.Fatalf("expected lock released after run, stat err=%v", err)
	}

	history, err := runCLI(t, env, "history")
	if err != nil {
		t.Fatalf("history failed: %v\n%s", err, history)
	}
	for _, want := range []string{"Acquired", "Run Began", "Run Ended", "Released"} {
		if !strings.Contains(history, want) {
			t.Fatalf("expected %q in history:\n%s", want, history)
		}
	}
}

func TestRunFailsFastAgainstForeignLock(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteLockFile(t, env.lockPath, 8642)

	if _, err := runCLI(t, env, "run", "--", "/bin/true"); err == nil {
		t.Fatal("expected run to fail against a held lock")
	}
}

func TestHistoryEmptyJournal(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "history")
	if err != nil {
		t.Fatalf("history failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No journal entries") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestHistoryHonorsLimit(t *testing.T) {
	env := setupCLITestEnv(t)

	cfg := config.Default()
	cfg.Lock.Path = env.lockPath
	cfg.Journal.Path = env.journalPath
	store := testsupport.MustOpenJournal(t, &cfg)
	for i := 0; i < 5; i++ {
		testsupport.RecordEvent(t, store, journal.Event{
			RunID:    uuid.NewString(),
			Kind:     journal.KindDenied,
			PID:      8642,
			LockPath: env.lockPath,
		})
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close seeded store: %v", err)
	}

	out, err := runCLI(t, env, "history", "-n", "2")
	if err != nil {
		t.Fatalf("history failed: %v\n%s", err, out)
	}
	if got := strings.Count(out, "Denied"); got != 2 {
		t.Fatalf("expected 2 rows, found %d in:\n%s", got, out)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "generated", "config.toml")

	out, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v\n%s", err, out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read generated config: %v", err)
	}
	if !strings.Contains(string(data), "[lock]") {
		t.Fatalf("generated config missing [lock] section:\n%s", data)
	}

	// A second init without --overwrite must refuse.
	if _, err := runCLI(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init to fail without --overwrite")
	}
}

func TestConfigValidateUsesFlagPath(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "config", "validate")
	if err != nil {
		t.Fatalf("config validate failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, env.configPath) {
		t.Fatalf("expected resolved config path in output:\n%s", out)
	}
	if !strings.Contains(out, "Configuration valid") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

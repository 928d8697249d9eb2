package supervise

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"pidlock/internal/config"
	"pidlock/internal/journal"
	"pidlock/internal/logging"
	"pidlock/internal/pidfile"
)

// ErrSupervisorActive indicates another supervisor invocation already manages
// this lock path.
var ErrSupervisorActive = errors.New("another supervisor is already managing this lock")

// Supervisor runs one command at a time under the PID-file lock.
type Supervisor struct {
	cfg     *config.Config
	logger  *slog.Logger
	lock    *pidfile.TimeoutLock
	store   *journal.Store
	control *flock.Flock

	// Stdout and Stderr receive the child's output. They default to the
	// supervisor process's own streams.
	Stdout io.Writer
	Stderr io.Writer
}

// New constructs a supervisor around an existing lock. The journal store may
// be nil when journaling is disabled.
func New(cfg *config.Config, logger *slog.Logger, lock *pidfile.TimeoutLock, store *journal.Store) (*Supervisor, error) {
	if cfg == nil || lock == nil {
		return nil, errors.New("supervisor requires config and lock")
	}
	return &Supervisor{
		cfg:     cfg,
		logger:  logging.NewComponentLogger(logger, "supervisor"),
		lock:    lock,
		store:   store,
		control: flock.New(lock.Path() + ".control"),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}, nil
}

// Run acquires the lock, executes argv (falling back to the configured
// daemon.command), and releases the lock when the child exits. Cancelling ctx
// stops the child gracefully.
func (s *Supervisor) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		argv = s.cfg.Daemon.Command
	}
	if len(argv) == 0 {
		return errors.New("no command configured: set daemon.command or pass one explicitly")
	}

	ok, err := s.control.TryLock()
	if err != nil {
		return fmt.Errorf("acquire control lock: %w", err)
	}
	if !ok {
		return ErrSupervisorActive
	}
	defer func() { _ = s.control.Unlock() }()

	runID := uuid.NewString()
	logger := s.logger.With(
		logging.String(logging.FieldRunID, runID),
		logging.String(logging.FieldLockPath, s.lock.Path()),
	)

	if err := s.lock.Acquire(); err != nil {
		kind := journal.KindDenied
		if errors.Is(err, pidfile.ErrLockTimeout) {
			kind = journal.KindTimeout
		}
		s.record(ctx, runID, kind, err.Error())
		return fmt.Errorf("acquire pid lock: %w", err)
	}
	s.record(ctx, runID, journal.KindAcquired, "")
	logger.Info("lock acquired", logging.Int(logging.FieldPID, os.Getpid()))

	defer func() {
		if releaseErr := s.lock.Release(); releaseErr != nil {
			logger.Warn("failed to release pid lock", logging.Error(releaseErr))
			return
		}
		s.record(context.WithoutCancel(ctx), runID, journal.KindReleased, "")
		logger.Info("lock released")
	}()

	s.record(ctx, runID, journal.KindRunBegan, strings.Join(argv, " "))
	runErr := s.runChild(ctx, logger, argv)

	detail := ""
	if runErr != nil {
		detail = runErr.Error()
	}
	s.record(context.WithoutCancel(ctx), runID, journal.KindRunEnded, detail)
	return runErr
}

func (s *Supervisor) runChild(ctx context.Context, logger *slog.Logger, argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", argv[0], err)
	}
	logger.Info("child started", logging.Int("child_pid", cmd.Process.Pid))

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("child exited: %w", err)
		}
		logger.Info("child exited cleanly")
		return nil
	case <-ctx.Done():
	}

	logger.Info("stopping child", logging.Duration("grace", s.cfg.ShutdownGrace()))
	_ = cmd.Process.Signal(syscall.SIGTERM)

	select {
	case <-done:
	case <-time.After(s.cfg.ShutdownGrace()):
		logger.Warn("child did not exit within grace period, killing")
		_ = cmd.Process.Kill()
		<-done
	}
	// A shutdown the supervisor requested is not a child failure.
	return nil
}

func (s *Supervisor) record(ctx context.Context, runID string, kind journal.Kind, detail string) {
	event := journal.Event{
		RunID:    runID,
		Kind:     kind,
		PID:      os.Getpid(),
		LockPath: s.lock.Path(),
		Detail:   detail,
	}
	if err := s.store.Record(ctx, event); err != nil {
		s.logger.Warn("journal write failed", logging.Error(err))
	}
}

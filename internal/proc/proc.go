// Package proc inspects the liveness and identity of the process a lock file
// records. It is the stale-lock extension point: the lock itself never
// consults process state, so callers combine these probes with BreakLock when
// recovering from a crashed holder.
package proc

import (
	"errors"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sys/unix"
)

// Alive reports whether a process with the given PID currently exists, via a
// signal-0 probe. EPERM from the kernel means the process exists but belongs
// to another user, which still counts as alive.
func Alive(pid int) (bool, error) {
	if pid <= 0 {
		return false, nil
	}
	err := unix.Kill(pid, 0)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, unix.ESRCH):
		return false, nil
	case errors.Is(err, unix.EPERM):
		return true, nil
	default:
		return false, fmt.Errorf("probe pid %d: %w", pid, err)
	}
}

// Info describes the process a lock file records, for operator-facing status
// output.
type Info struct {
	PID     int
	Known   bool
	Name    string
	Started time.Time
}

// Uptime returns how long the process has been running, or zero when the
// start time is unknown.
func (i Info) Uptime() time.Duration {
	if !i.Known || i.Started.IsZero() {
		return 0
	}
	return time.Since(i.Started)
}

// Describe resolves the name and start time of pid. Known is false when the
// process no longer exists; attribute lookups are best effort because the
// process can exit mid-inspection.
func Describe(pid int) (Info, error) {
	info := Info{PID: pid}
	if pid <= 0 {
		return info, nil
	}

	p, err := process.NewProcess(int32(pid))
	if err != nil {
		if errors.Is(err, process.ErrorProcessNotRunning) {
			return info, nil
		}
		return info, fmt.Errorf("inspect pid %d: %w", pid, err)
	}

	info.Known = true
	if name, nameErr := p.Name(); nameErr == nil {
		info.Name = name
	}
	if created, createErr := p.CreateTime(); createErr == nil && created > 0 {
		info.Started = time.UnixMilli(created)
	}
	return info, nil
}

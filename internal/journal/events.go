package journal

import "time"

// Kind classifies a lock lifecycle event.
type Kind string

const (
	KindAcquired Kind = "acquired"
	KindReleased Kind = "released"
	KindBroken   Kind = "broken"
	KindDenied   Kind = "denied"
	KindTimeout  Kind = "timeout"
	KindRunBegan Kind = "run_began"
	KindRunEnded Kind = "run_ended"
)

// Event is one journal row.
type Event struct {
	ID        int64
	RunID     string
	Kind      Kind
	PID       int
	LockPath  string
	Detail    string
	CreatedAt time.Time
}

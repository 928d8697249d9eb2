package logging

// Shared attribute keys so log consumers can rely on stable field names.
const (
	FieldComponent = "component"
	FieldEventType = "event_type"
	FieldLockPath  = "lock_path"
	FieldPID       = "pid"
	FieldRunID     = "run_id"
)

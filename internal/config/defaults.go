package config

const (
	defaultLockPath             = "~/.local/share/pidlock/pidlock.pid"
	defaultJournalPath          = "~/.local/share/pidlock/journal.db"
	defaultPollIntervalMillis   = 100
	defaultShutdownGraceSeconds = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Lock: Lock{
			Path:               defaultLockPath,
			PollIntervalMillis: defaultPollIntervalMillis,
		},
		Daemon: Daemon{
			ShutdownGraceSeconds: defaultShutdownGraceSeconds,
		},
		Journal: Journal{
			Enabled: true,
			Path:    defaultJournalPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

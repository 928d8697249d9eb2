package testsupport

import (
	"testing"

	"path/filepath"

	"pidlock/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp paths per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Lock.Path = filepath.Join(base, "pidlock.pid")
	cfgVal.Journal.Path = filepath.Join(base, "journal.db")
	cfgVal.Daemon.ShutdownGraceSeconds = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAcquireTimeout sets the default lock acquisition timeout in seconds.
func WithAcquireTimeout(seconds int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Lock.AcquireTimeoutSeconds = seconds
	}
}

// WithPollInterval overrides the acquisition poll interval in milliseconds.
func WithPollInterval(millis int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Lock.PollIntervalMillis = millis
	}
}

// WithJournalDisabled turns journal recording off for the test config.
func WithJournalDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = false
	}
}

// WithCommand sets the configured daemon command.
func WithCommand(argv ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Daemon.Command = argv
	}
}

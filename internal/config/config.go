package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Lock contains configuration for the PID-file lock.
type Lock struct {
	// Path is the PID file location. The file's existence is the claim.
	Path string `toml:"path"`
	// AcquireTimeoutSeconds is the default wait when acquiring a held lock:
	// 0 fails immediately, a negative value waits indefinitely.
	AcquireTimeoutSeconds int `toml:"acquire_timeout_seconds"`
	// PollIntervalMillis is how often a waiting acquire rechecks the claim.
	PollIntervalMillis int `toml:"poll_interval_ms"`
}

// Daemon contains configuration for the supervised child process.
type Daemon struct {
	// Command is the argv of the process run while holding the lock.
	Command []string `toml:"command"`
	// ShutdownGraceSeconds is how long the supervisor waits between SIGTERM
	// and SIGKILL when stopping the child.
	ShutdownGraceSeconds int `toml:"shutdown_grace_seconds"`
}

// Journal contains configuration for the lock activity journal.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for pidlock.
type Config struct {
	Lock    Lock    `toml:"lock"`
	Daemon  Daemon  `toml:"daemon"`
	Journal Journal `toml:"journal"`
	Logging Logging `toml:"logging"`
}

// AcquireTimeout returns the configured default acquire timeout as a
// duration. Negative config values map to a negative duration, which the lock
// treats as "wait indefinitely".
func (c *Config) AcquireTimeout() time.Duration {
	return time.Duration(c.Lock.AcquireTimeoutSeconds) * time.Second
}

// PollInterval returns the configured wait-loop recheck interval.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Lock.PollIntervalMillis) * time.Millisecond
}

// ShutdownGrace returns how long to wait for the supervised child to exit
// after SIGTERM before escalating.
func (c *Config) ShutdownGrace() time.Duration {
	return time.Duration(c.Daemon.ShutdownGraceSeconds) * time.Second
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/pidlock/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("pidlock.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the lock and journal live in.
func (c *Config) EnsureDirectories() error {
	dirs := []string{filepath.Dir(c.Lock.Path)}
	if c.Journal.Enabled && strings.TrimSpace(c.Journal.Path) != "" {
		dirs = append(dirs, filepath.Dir(c.Journal.Path))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

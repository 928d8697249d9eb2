package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeLock(); err != nil {
		return err
	}
	if err := c.normalizeJournal(); err != nil {
		return err
	}
	c.normalizeDaemon()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeLock() error {
	var err error
	if strings.TrimSpace(c.Lock.Path) == "" {
		c.Lock.Path = defaultLockPath
	}
	if c.Lock.Path, err = expandPath(c.Lock.Path); err != nil {
		return fmt.Errorf("lock.path: %w", err)
	}
	if c.Lock.PollIntervalMillis <= 0 {
		c.Lock.PollIntervalMillis = defaultPollIntervalMillis
	}
	return nil
}

func (c *Config) normalizeJournal() error {
	var err error
	if strings.TrimSpace(c.Journal.Path) == "" {
		c.Journal.Path = defaultJournalPath
	}
	if c.Journal.Path, err = expandPath(c.Journal.Path); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeDaemon() {
	args := make([]string, 0, len(c.Daemon.Command))
	for _, arg := range c.Daemon.Command {
		if strings.TrimSpace(arg) == "" {
			continue
		}
		args = append(args, arg)
	}
	c.Daemon.Command = args
	if c.Daemon.ShutdownGraceSeconds <= 0 {
		c.Daemon.ShutdownGraceSeconds = defaultShutdownGraceSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

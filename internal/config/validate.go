package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLock(); err != nil {
		return err
	}
	if err := c.validateJournal(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLock() error {
	if strings.TrimSpace(c.Lock.Path) == "" {
		return errors.New("lock.path must be set")
	}
	if !filepath.IsAbs(c.Lock.Path) {
		return fmt.Errorf("lock.path %q must be absolute after expansion", c.Lock.Path)
	}
	if c.Lock.PollIntervalMillis > 1000 {
		return errors.New("lock.poll_interval_ms must not exceed 1000")
	}
	return nil
}

func (c *Config) validateJournal() error {
	if !c.Journal.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Journal.Path) == "" {
		return errors.New("journal.path must be set when journal.enabled is true")
	}
	return nil
}

package main

import (
	"strings"
	"sync"

	"pidlock/internal/config"
	"pidlock/internal/journal"
	"pidlock/internal/pidfile"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) newLock(cfg *config.Config) *pidfile.TimeoutLock {
	return pidfile.NewTimeout(
		cfg.Lock.Path,
		cfg.AcquireTimeout(),
		pidfile.WithPollInterval(cfg.PollInterval()),
	)
}

func (c *commandContext) openJournal(cfg *config.Config) (*journal.Store, error) {
	return journal.Open(cfg)
}

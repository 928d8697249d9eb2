package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pidlock/internal/logging"
	"pidlock/internal/pidfile"
	"pidlock/internal/supervise"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var timeoutFlag time.Duration

	cmd := &cobra.Command{
		Use:   "run [flags] -- command [args...]",
		Short: "Run a command while holding the lock",
		Long: "Acquires the PID-file lock, runs the given command (or the configured\n" +
			"daemon.command), and releases the lock when it exits. SIGINT and SIGTERM\n" +
			"stop the child gracefully.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			acquireTimeout := cfg.AcquireTimeout()
			if cmd.Flags().Changed("timeout") {
				acquireTimeout = timeoutFlag
			}
			lock := pidfile.NewTimeout(
				cfg.Lock.Path,
				acquireTimeout,
				pidfile.WithPollInterval(cfg.PollInterval()),
			)

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			store, err := ctx.openJournal(cfg)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			sup, err := supervise.New(cfg, logger, lock, store)
			if err != nil {
				return err
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return sup.Run(signalCtx, args)
		},
	}

	cmd.Flags().DurationVar(&timeoutFlag, "timeout", 0,
		"Max wait for the lock (0 fails immediately, negative waits forever); overrides the configured default")
	return cmd
}

package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"pidlock/internal/journal"
	"pidlock/internal/proc"
)

func newBreakCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "break",
		Short: "Force-clear the lock after its owner died",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			lock := ctx.newLock(cfg)

			locked, err := lock.IsLocked()
			if err != nil {
				return fmt.Errorf("probe lock: %w", err)
			}
			out := cmd.OutOrStdout()
			if !locked {
				fmt.Fprintln(out, "Lock is not held; nothing to break")
				return nil
			}

			pid, err := lock.ReadPID()
			if err != nil {
				return fmt.Errorf("read pid: %w", err)
			}

			detail := "owner unknown"
			if pid > 0 {
				alive, err := proc.Alive(pid)
				if err != nil {
					return fmt.Errorf("probe owner: %w", err)
				}
				if alive && !force {
					info, _ := proc.Describe(pid)
					name := info.Name
					if name == "" {
						name = "unknown process"
					}
					return fmt.Errorf("refusing to break: owner pid %d (%s) is still running (use --force)", pid, name)
				}
				detail = fmt.Sprintf("owner pid %d", pid)
				if alive {
					detail += ", forced while running"
				} else {
					detail += ", not running"
				}
			}

			if err := lock.BreakLock(); err != nil {
				return fmt.Errorf("break lock: %w", err)
			}

			store, err := ctx.openJournal(cfg)
			if err == nil {
				defer store.Close()
				_ = store.Record(cmd.Context(), journal.Event{
					RunID:    uuid.NewString(),
					Kind:     journal.KindBroken,
					PID:      os.Getpid(),
					LockPath: lock.Path(),
					Detail:   detail,
				})
			}

			fmt.Fprintf(out, "Broke lock %s (%s)\n", lock.Path(), detail)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Break the lock even if the recorded owner is still running")
	return cmd
}

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pidlock/internal/proc"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show lock state and the recorded owner",
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
			pid, err := lock.ReadPID()
			if err != nil {
				return fmt.Errorf("read pid: %w", err)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			fmt.Fprintln(out, renderStatusLine("Lock file", statusInfo, lock.Path(), colorize))

			if !locked {
				fmt.Fprintln(out, renderStatusLine("State", statusOK, "free", colorize))
				return nil
			}

			if pid == 0 {
				fmt.Fprintln(out, renderStatusLine("State", statusWarn, "held, owner unknown (unreadable pid)", colorize))
				return nil
			}

			fmt.Fprintln(out, renderStatusLine("State", statusInfo, fmt.Sprintf("held by pid %d", pid), colorize))

			alive, err := proc.Alive(pid)
			if err != nil {
				return fmt.Errorf("probe owner: %w", err)
			}
			if !alive {
				fmt.Fprintln(out, renderStatusLine("Owner", statusError, "not running (stale lock, run 'pidlock break')", colorize))
				return nil
			}

			info, err := proc.Describe(pid)
			if err != nil {
				return fmt.Errorf("describe owner: %w", err)
			}
			detail := "running"
			if info.Known && info.Name != "" {
				detail = fmt.Sprintf("%s, up %s", info.Name, formatUptime(info.Uptime()))
			}
			fmt.Fprintln(out, renderStatusLine("Owner", statusOK, detail, colorize))
			return nil
		},
	}
}

func formatUptime(d time.Duration) string {
	if d <= 0 {
		return "unknown"
	}
	return d.Truncate(time.Second).String()
}

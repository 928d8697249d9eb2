package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var prune int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent lock activity from the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Journal.Enabled {
				return fmt.Errorf("journal is disabled (set journal.enabled = true)")
			}

			store, err := ctx.openJournal(cfg)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()

			if cmd.Flags().Changed("prune") {
				removed, err := store.Prune(cmd.Context(), prune)
				if err != nil {
					return fmt.Errorf("prune journal: %w", err)
				}
				fmt.Fprintf(out, "Pruned %d journal rows\n", removed)
			}

			events, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("read journal: %w", err)
			}
			if len(events) == 0 {
				fmt.Fprintln(out, "No journal entries")
				return nil
			}

			caser := cases.Title(language.English)
			rows := make([][]string, 0, len(events))
			for _, event := range events {
				rows = append(rows, []string{
					event.CreatedAt.Local().Format(time.DateTime),
					caser.String(strings.ReplaceAll(string(event.Kind), "_", " ")),
					strconv.Itoa(event.PID),
					shortRunID(event.RunID),
					event.Detail,
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Time", "Event", "PID", "Run", "Detail"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of events to show")
	cmd.Flags().IntVar(&prune, "prune", 0, "Delete all but the newest N journal rows first")
	return cmd
}

func shortRunID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}

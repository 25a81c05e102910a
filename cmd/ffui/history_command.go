package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"ffui/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past transcode sessions",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			records, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No sessions recorded yet.")
				return nil
			}

			headers := []string{"FINISHED", "SOURCE", "FORMAT", "DEVICE", "CODEC", "STATUS", "PERCENT"}
			rows := make([][]string, 0, len(records))
			for _, record := range records {
				rows = append(rows, []string{
					formatTimestamp(record.FinishedAt),
					filepath.Base(record.SourcePath),
					record.TargetFormat,
					record.Device,
					record.VideoCodec,
					record.Status,
					fmt.Sprintf("%.0f%%", record.Percent),
				})
			}
			fmt.Fprintln(out, renderTable(headers, rows, 6))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum sessions to show (0 for all)")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d session record(s)\n", removed)
			return nil
		},
	}
}

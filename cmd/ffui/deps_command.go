package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ffui/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check that required external tools are installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))

			headers := []string{"TOOL", "COMMAND", "AVAILABLE", "DETAIL"}
			rows := make([][]string, 0, len(statuses))
			missing := 0
			for _, status := range statuses {
				detail := status.Description
				if !status.Available {
					missing++
					detail = status.Detail
				}
				rows = append(rows, []string{
					status.Name,
					status.Command,
					yesNo(status.Available),
					detail,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows))

			if missing > 0 {
				return fmt.Errorf("%d required tool(s) missing", missing)
			}
			return nil
		},
	}
}

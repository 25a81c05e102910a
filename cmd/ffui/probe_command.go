package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ffui/internal/config"
	"ffui/internal/media/ffprobe"
	"ffui/internal/services"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <source>",
		Short: "Show ffprobe's report for a media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			source, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve source path: %w", err)
			}
			if _, err := os.Stat(source); err != nil {
				return fmt.Errorf("source file: %w", err)
			}

			cli := ffprobe.NewCLI(ffprobe.WithBinary(cfg.FFprobeBinary()))
			report, err := cli.Describe(cmd.Context(), source)
			if err != nil {
				if services.IsExternalTool(err) {
					return fmt.Errorf("%w (run 'ffui deps' to check the installation)", err)
				}
				return err
			}

			out := cmd.OutOrStdout()
			if trimmed := strings.TrimRight(report, "\n"); trimmed != "" {
				fmt.Fprintln(out, trimmed)
			}
			seconds := cli.Duration(cmd.Context(), source)
			if seconds > 0 {
				fmt.Fprintf(out, "\nDuration: %s (%.3f seconds)\n", formatSeconds(seconds), seconds)
			} else {
				fmt.Fprintln(out, "\nDuration: unknown")
			}
			return nil
		},
	}
}

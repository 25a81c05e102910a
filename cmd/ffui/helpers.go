package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

// formatSeconds renders a duration in seconds as hh:mm:ss.
func formatSeconds(seconds float64) string {
	if seconds <= 0 {
		return "unknown"
	}
	total := int(seconds + 0.5)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

func formatTimestamp(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Local().Format("2006-01-02 15:04:05")
}

// lastLogLine returns the trailing non-empty line of a session log, which
// carries the terminal marker explaining how the run ended.
func lastLogLine(log string) string {
	lines := strings.Split(strings.TrimSpace(log), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

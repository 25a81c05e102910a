package ffprobe

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"

	"ffui/internal/services"
)

var commandContext = exec.CommandContext

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if trimmed := strings.TrimSpace(binary); trimmed != "" {
			c.binary = trimmed
		}
	}
}

// CLI wraps the ffprobe command-line tool.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffprobe"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Duration returns the container duration in seconds. Probe or parse
// failures report 0, which downstream code treats as "duration unknown"
// rather than an error.
func (c *CLI) Duration(ctx context.Context, path string) float64 {
	cmd := commandContext(ctx, c.binary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return 0
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(stdout.String()), 64)
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}

// Describe returns ffprobe's diagnostic report for display. ffprobe writes
// the report to stderr and exits nonzero when invoked without an output
// target, so a nonzero exit still yields the text verbatim; only a launch
// failure is an error.
func (c *CLI) Describe(ctx context.Context, path string) (string, error) {
	cmd := commandContext(ctx, c.binary, "-i", path, "-hide_banner")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", services.Wrap(
				services.ErrExternalTool,
				"probe",
				"describe media",
				"ffprobe could not be launched; confirm it is installed and on PATH",
				err,
			)
		}
	}
	return stderr.String(), nil
}

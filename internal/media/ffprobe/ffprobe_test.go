package ffprobe_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"ffui/internal/media/ffprobe"
	"ffui/internal/services"
	"ffui/internal/testsupport"
)

func TestDurationParsesSeconds(t *testing.T) {
	dir := t.TempDir()
	bin := testsupport.StubFFprobe(t, dir, "123.456000", "unused")

	cli := ffprobe.NewCLI(ffprobe.WithBinary(bin))
	if got := cli.Duration(context.Background(), "movie.mkv"); got != 123.456 {
		t.Fatalf("unexpected duration %v", got)
	}
}

func TestDurationReportsZeroOnBadOutput(t *testing.T) {
	cases := map[string]string{
		"not a number": "N/A",
		"negative":     "-3.0",
		"empty":        "",
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			bin := testsupport.StubFFprobe(t, dir, value, "unused")
			cli := ffprobe.NewCLI(ffprobe.WithBinary(bin))
			if got := cli.Duration(context.Background(), "movie.mkv"); got != 0 {
				t.Fatalf("expected 0 for %q, got %v", value, got)
			}
		})
	}
}

func TestDurationReportsZeroOnProbeFailure(t *testing.T) {
	dir := t.TempDir()
	bin := testsupport.WriteScript(t, dir, "ffprobe", "exit 1\n")

	cli := ffprobe.NewCLI(ffprobe.WithBinary(bin))
	if got := cli.Duration(context.Background(), "movie.mkv"); got != 0 {
		t.Fatalf("expected 0 on probe failure, got %v", got)
	}
}

func TestDurationReportsZeroWhenBinaryMissing(t *testing.T) {
	cli := ffprobe.NewCLI(ffprobe.WithBinary(filepath.Join(t.TempDir(), "no-such-ffprobe")))
	if got := cli.Duration(context.Background(), "movie.mkv"); got != 0 {
		t.Fatalf("expected 0 when the binary is missing, got %v", got)
	}
}

// ffprobe exits nonzero when invoked without an output target; the report on
// stderr must still come back verbatim.
func TestDescribeReturnsStderrDespiteNonzeroExit(t *testing.T) {
	dir := t.TempDir()
	report := "Input #0, matroska,webm, from 'movie.mkv':\n  Duration: 00:02:03.45"
	bin := testsupport.StubFFprobe(t, dir, "0", report)

	cli := ffprobe.NewCLI(ffprobe.WithBinary(bin))
	got, err := cli.Describe(context.Background(), "movie.mkv")
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if got != report {
		t.Fatalf("expected report %q, got %q", report, got)
	}
}

func TestDescribeLaunchFailureIsFatal(t *testing.T) {
	cli := ffprobe.NewCLI(ffprobe.WithBinary(filepath.Join(t.TempDir(), "no-such-ffprobe")))

	_, err := cli.Describe(context.Background(), "movie.mkv")
	if err == nil {
		t.Fatal("expected an error when the binary cannot be launched")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected an external tool error, got %v", err)
	}
}

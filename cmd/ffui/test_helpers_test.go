package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	logDir     string
	historyDB  string
	binDir     string
}

// setupCLITestEnv isolates HOME and writes a config pointing every path at
// the test's temp directory. Tool binaries default to stubs the individual
// test writes into binDir.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		logDir:     filepath.Join(base, "logs"),
		historyDB:  filepath.Join(base, "history.db"),
		binDir:     filepath.Join(base, "bin"),
	}
	if err := os.MkdirAll(env.binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	env.writeConfig(t, filepath.Join(env.binDir, "ffmpeg"), filepath.Join(env.binDir, "ffprobe"))
	return env
}

func (e *cliTestEnv) writeConfig(t *testing.T, ffmpeg, ffprobe string) {
	t.Helper()

	content := fmt.Sprintf(`[paths]
log_dir = %q
history_db = %q

[tools]
ffmpeg = %q
ffprobe = %q
`, e.logDir, e.historyDB, ffmpeg, ffprobe)
	if err := os.WriteFile(e.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()

	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ffui/internal/services"
	"ffui/internal/testsupport"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// A second init without --overwrite refuses to clobber the file.
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting an existing file")
	}
}

func TestConfigShowPrintsEffectiveConfig(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "# loaded from "+env.configPath)
	requireContains(t, out, "[transcode]")
	requireContains(t, out, env.historyDB)
}

func TestDepsCommandReportsMissingTools(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"deps"}, env.configPath)
	if err == nil {
		t.Fatal("expected an error while the stub binaries do not exist")
	}

	testsupport.WriteScript(t, env.binDir, "ffmpeg", "exit 0\n")
	testsupport.WriteScript(t, env.binDir, "ffprobe", "exit 0\n")

	out, _, err := runCLI(t, []string{"deps"}, env.configPath)
	if err != nil {
		t.Fatalf("deps with stubs present: %v", err)
	}
	requireContains(t, out, "FFmpeg")
	requireContains(t, out, "yes")
}

func TestProbeCommandPrintsReportAndDuration(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.StubFFprobe(t, env.binDir, "83.5", "Input #0, matroska, from 'movie.mkv'")

	source := filepath.Join(env.baseDir, "movie.mkv")
	if err := os.WriteFile(source, []byte("media"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	out, _, err := runCLI(t, []string{"probe", source}, env.configPath)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	requireContains(t, out, "Input #0, matroska")
	requireContains(t, out, "Duration: 00:01:24 (83.500 seconds)")
}

func TestProbeCommandRejectsMissingSource(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"probe", filepath.Join(env.baseDir, "absent.mkv")}, env.configPath)
	if err == nil {
		t.Fatal("expected an error for a missing source file")
	}
}

func TestHistoryListEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"history", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "No sessions recorded yet.")
}

func TestTranscodeCommandEndToEnd(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.StubFFprobe(t, env.binDir, "10.0", "Input #0, matroska, from 'movie.mkv'")
	testsupport.WriteScript(t, env.binDir, "ffmpeg", `printf 'out_time_ms=5000000\nout_time_ms=10000000\n'
printf 'encoded' > "$6"
`)

	source := filepath.Join(env.baseDir, "movie.mkv")
	if err := os.WriteFile(source, []byte("media"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	out, _, err := runCLI(t, []string{"transcode", source, "--format", "mp4"}, env.configPath)
	if err != nil {
		t.Fatalf("transcode: %v", err)
	}
	requireContains(t, out, "Completed: "+source+".mp4")
	if data, err := os.ReadFile(source + ".mp4"); err != nil || len(data) == 0 {
		t.Fatalf("expected a non-empty output file, err=%v", err)
	}

	out, _, err = runCLI(t, []string{"history", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "movie.mkv")
	requireContains(t, out, "completed")
}

func TestTranscodeRejectsUnknownFormatAndDevice(t *testing.T) {
	env := setupCLITestEnv(t)

	source := filepath.Join(env.baseDir, "movie.mkv")
	if err := os.WriteFile(source, []byte("media"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	if _, _, err := runCLI(t, []string{"transcode", source, "--format", "divx"}, env.configPath); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected a validation error for the container, got %v", err)
	}
	if _, _, err := runCLI(t, []string{"transcode", source, "--device", "Voodoo3"}, env.configPath); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected a validation error for the device, got %v", err)
	}
	missing := filepath.Join(env.baseDir, "absent.mkv")
	if _, _, err := runCLI(t, []string{"transcode", missing}, env.configPath); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected a validation error for a missing source, got %v", err)
	}
}

func TestProbeCommandHintsAtDepsWhenToolMissing(t *testing.T) {
	env := setupCLITestEnv(t)

	source := filepath.Join(env.baseDir, "movie.mkv")
	if err := os.WriteFile(source, []byte("media"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	// The configured ffprobe stub was never written, so the probe cannot
	// launch at all.
	_, _, err := runCLI(t, []string{"probe", source}, env.configPath)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected an external tool error, got %v", err)
	}
	requireContains(t, err.Error(), "ffui deps")
}

package testsupport

import (
	"path/filepath"
	"testing"

	"ffui/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.HistoryDB = filepath.Join(base, "history.db")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithFFmpeg overrides the ffmpeg binary on the test config.
func WithFFmpeg(path string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Tools.FFmpeg = path
	}
}

// WithFFprobe overrides the ffprobe binary on the test config.
func WithFFprobe(path string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Tools.FFprobe = path
	}
}
